package config

import (
	"fmt"
	"time"
)

// RedisConfig содержит настройки подключения к Redis.
type RedisConfig struct {
	Host           string        `yaml:"host" env:"ZAMETKA_REDIS_HOST" env-default:"0.0.0.0"`
	Port           int           `yaml:"port" env:"ZAMETKA_REDIS_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"ZAMETKA_REDIS_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"ZAMETKA_REDIS_DB" env-default:"0"`
	PoolSize       int           `yaml:"pool_size" env:"ZAMETKA_REDIS_POOL_SIZE" env-default:"10"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"ZAMETKA_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"ZAMETKA_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"ZAMETKA_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	DefaultTTL     time.Duration `yaml:"default_ttl" env:"ZAMETKA_REDIS_DEFAULT_TTL" env-default:"5m"`
}

// GetAddress возвращает адрес Redis сервера.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
