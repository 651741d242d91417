package reminder

import "time"

const (
	layout24 = "15:04"
	layout12 = "3:04 PM"
)

// FormatTimeForDisplay converts "19:05" to "7:05 PM". Input that does not
// parse is returned unchanged.
func FormatTimeForDisplay(hhmm string) string {
	t, err := time.Parse(layout24, hhmm)
	if err != nil {
		return hhmm
	}
	return t.Format(layout12)
}

// To24Hour converts "7:05 PM" to "19:05". Input that does not parse is
// returned unchanged.
func To24Hour(s string) string {
	t, err := time.Parse(layout12, s)
	if err != nil {
		return s
	}
	return t.Format(layout24)
}

// ValidTime reports whether s is a 24-hour HH:MM time.
func ValidTime(s string) bool {
	_, err := time.Parse(layout24, s)
	return err == nil && len(s) == 5
}
