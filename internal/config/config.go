// Package config содержит конфигурацию сервиса заметок.
package config

import (
	"context"
	"fmt"

	pkgconfig "zametka/pkg/config"
)

// ServiceName - имя сервиса для логирования конфигурации.
const ServiceName = "zametka"

// Config представляет полную конфигурацию приложения.
type Config struct {
	Postgres PostgresConfig `yaml:"postgres"`
	HTTP     HTTPConfig     `yaml:"http"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName)
	if err != nil {
		return nil, fmt.Errorf("failed to load service configuration: %w", err)
	}
	return cfg, nil
}
