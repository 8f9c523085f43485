package vaccines

import (
	"strings"
	"time"
)

// Formatos de fecha aceptados en applicationDate/expirationDate.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// ParseDate intenta YYYY-MM-DD primero y RFC3339 como fallback.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
