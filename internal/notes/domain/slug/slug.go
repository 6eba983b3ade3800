// Package slug derives URL-safe identifiers for notes from their titles.
package slug

import (
	"strings"

	gosimple "github.com/gosimple/slug"
)

// MaxLength - максимально допустимая длина slug.
const MaxLength = 100

// Normalize строит slug из заголовка: транслитерация, нижний регистр,
// дефисы вместо пробелов, ограничение по длине. Используется только когда
// slug не задан явно.
func Normalize(title string) string {
	s := gosimple.Make(title)
	if len(s) <= MaxLength {
		return s
	}

	// Обрезаем по границе слова, чтобы не оставлять оборванный хвост.
	s = s[:MaxLength]
	if idx := strings.LastIndex(s, "-"); idx > 0 {
		s = s[:idx]
	}
	return strings.Trim(s, "-")
}
