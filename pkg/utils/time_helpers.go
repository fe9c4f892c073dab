package utils

import (
	"fmt"
	"time"
)

// ParseDate принимает дату из тела запроса: либо "2006-01-02", либо RFC3339.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("неверный формат даты: %q", value)
}

// FormatLocalDate воспроизводит формат en-US toLocaleDateString: M/D/YYYY,
// без ведущих нулей. Используется в сгенерированных именах инвентаризаций.
func FormatLocalDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

// FormatTimestamp — формат отметок времени в ответах API.
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02, 15:04:05")
}
