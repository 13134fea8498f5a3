package tags

import (
	"time"
	"unicode"
)

// dateLayouts are the accepted date forms, from bare year up to a full
// "YYYY-MM-DD HH:MM:SS" timestamp. Parsing instead of shape-matching means
// impossible dates like "2021-13-40" are rejected.
var dateLayouts = []string{
	"2006",
	"2006-01",
	"2006-01-02",
	"2006-01-02 15",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// ValidDate reports whether a date string is acceptable for the date field.
// The empty string is valid (no date tag).
func ValidDate(date string) bool {
	if date == "" {
		return true
	}

	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, date); err == nil {
			return true
		}
	}

	return false
}

// ValidTrackNumber reports whether a track number string is acceptable:
// empty, or composed entirely of digits.
func ValidTrackNumber(track string) bool {
	for _, r := range track {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}
