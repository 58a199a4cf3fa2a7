package utils

import (
	"cycleparadise/src/config"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// Slugify falls back to the title when no explicit slug is given.
func Slugify(explicit, title string) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return slug.Make(s)
	}
	return slug.Make(title)
}

// SplitName splits "Jane van Doe" into ("Jane", "van Doe").
func SplitName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ParseDate accepts a bare YYYY-MM-DD date or a full RFC 3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(config.DATE_FORMAT, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
