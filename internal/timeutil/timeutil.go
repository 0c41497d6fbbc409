package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// StampLayout defines the compact timestamp format used in dataset file names.
const StampLayout = "20060102_150405"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatStamp formats a time as a filesystem-safe timestamp.
func FormatStamp(t time.Time) string {
	return t.Format(StampLayout)
}

// ParseStamp parses a timestamp produced by FormatStamp.
func ParseStamp(value string) (time.Time, error) {
	return time.Parse(StampLayout, value)
}
