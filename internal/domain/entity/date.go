package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/colorstock/internal/domain"
)

// DateLayout formato de fecha calendario usado en formularios y almacenamiento.
const DateLayout = "2006-01-02"

// ParseDate interpreta una fecha AAAA-MM-DD como fecha calendario (medianoche UTC).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
	}
	return t, nil
}

// DateOf trunca un instante a su fecha calendario (medianoche UTC del mismo día local).
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate formatea una fecha calendario; cero devuelve "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// DaysBetween días enteros de from a to. Negativo si to es anterior a from.
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)).Hours() / 24)
}
