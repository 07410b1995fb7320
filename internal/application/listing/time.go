package listing

import (
	"errors"
	"time"
)

// deadline accepted formats, most specific first.
var deadlineFormats = []string{time.RFC3339, "2006-01-02"}

// ParseDeadline parses a listing deadline from its wire form.
func ParseDeadline(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("deadline is required")
	}
	for _, f := range deadlineFormats {
		if t, err := time.Parse(f, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("deadline must be RFC 3339 or YYYY-MM-DD")
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
