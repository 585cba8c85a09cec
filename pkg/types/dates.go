package types

import (
	"strings"
	"time"
)

const (
	// DateLayout is the wire format of calendar dates such as harvest dates.
	DateLayout = "2006-01-02"
	// DateTimeLayout is the wire format of order timestamps.
	DateTimeLayout = "2006-01-02 15:04:05"
)

// FormatDate renders an optional date, returning nil when unset.
func FormatDate(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ParseDate parses an optional YYYY-MM-DD value. Blank input yields nil.
func ParseDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(*raw))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDateTime renders a timestamp in UTC using DateTimeLayout.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateTimeLayout)
}
