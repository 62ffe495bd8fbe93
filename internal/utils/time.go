package utils

import (
	"strings"
	"time"
)

const (
	layoutDate    = "2006-01-02"
	layoutDocDate = "02/01/2006"
)

// DocDate renders a stored YYYY-MM-DD (or full timestamp) as DD/MM/YYYY for
// printed documents. Unparseable input is returned trimmed, empty stays empty.
func DocDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 10 {
		if t, err := time.Parse(layoutDate, s[:10]); err == nil {
			return t.Format(layoutDocDate)
		}
	}
	return s
}
