package store

import "time"

// timeFormat is the UTC timestamp layout persisted in every table. Lexical
// order matches chronological order, so window cutoffs compare as strings.
const timeFormat = "2006-01-02T15:04:05.000Z"

// Now returns the current UTC time in the persisted timestamp format.
func Now() string {
	return time.Now().UTC().Format(timeFormat)
}

// Cutoff returns the timestamp d before now, for windowed queries.
func Cutoff(d time.Duration) string {
	return time.Now().UTC().Add(-d).Format(timeFormat)
}

// ParseTime parses a persisted timestamp back into a time.Time.
func ParseTime(ts string) (time.Time, error) {
	return time.Parse(timeFormat, ts)
}
