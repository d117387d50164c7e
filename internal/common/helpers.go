// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: нормализация названий мест, форматирование давности
// и короткие строки локаций для карточек постов.
package common

import (
	"fmt"
	"strings"
	"time"
)

// NormalizeName приводит название места к канонической форме для сравнения:
// обрезает пробелы и переводит в нижний регистр. Сравнение локаций
// везде регистронезависимое, поэтому сравнивать надо только
// нормализованные значения.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SameName сравнивает два названия места без учёта регистра и краевых пробелов.
func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}

// TimeAgo возвращает давность события в человекочитаемом виде: "3 days ago".
// Тексты английские — продукт англоязычный.
func TimeAgo(t time.Time, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = 0
	}

	seconds := int(diff.Seconds())
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24
	weeks := days / 7
	months := weeks / 4
	years := months / 12

	switch {
	case years > 0:
		return pluralizeEn(years, "year")
	case months > 0:
		return pluralizeEn(months, "month")
	case weeks > 0:
		return pluralizeEn(weeks, "week")
	case days > 0:
		return pluralizeEn(days, "day")
	case hours > 0:
		return pluralizeEn(hours, "hour")
	case minutes > 0:
		return pluralizeEn(minutes, "minute")
	default:
		return pluralizeEn(seconds, "second")
	}
}

// pluralizeEn собирает строку вида "1 day ago" / "5 days ago".
func pluralizeEn(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// LocationLabel описывает минимум, который нужен для строки "Город, Страна".
type LocationLabel struct {
	City    string
	Country string
}

// ShortLocationsString возвращает короткую строку локаций для карточки поста.
// Одна локация — "Lima, Peru", две — через "and", больше — "... and N more".
func ShortLocationsString(locations []LocationLabel) string {
	switch len(locations) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("%s, %s", locations[0].City, locations[0].Country)
	case 2:
		return fmt.Sprintf("%s, %s and %s, %s",
			locations[0].City, locations[0].Country,
			locations[1].City, locations[1].Country)
	default:
		return fmt.Sprintf("%s, %s and %d more",
			locations[0].City, locations[0].Country, len(locations)-1)
	}
}

// FullLocationsString возвращает полный список локаций через "; ".
func FullLocationsString(locations []LocationLabel) string {
	parts := make([]string, 0, len(locations))
	for _, l := range locations {
		parts = append(parts, fmt.Sprintf("%s, %s", l.City, l.Country))
	}
	return strings.Join(parts, "; ")
}
