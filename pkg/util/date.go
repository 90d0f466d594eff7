package util

import (
    "strconv"
    "time"
)

// DateLayout is the observation date format used by the FRED API.
const DateLayout = "2006-01-02"

// ParseDate tries YYYY-MM-DD, RFC3339, and unix seconds. Returns (t, true) if any worked.
func ParseDate(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(DateLayout, s); err == nil {
        return t, true
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t, true
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
        return time.Unix(ts, 0).UTC(), true
    }
    return time.Time{}, false
}

// ParseDateDefault parses a date or returns default if empty/invalid.
func ParseDateDefault(s string, def time.Time) time.Time {
    if t, ok := ParseDate(s); ok {
        return t
    }
    return def
}

// FormatDate renders a time as a FRED observation date.
func FormatDate(t time.Time) string {
    return t.Format(DateLayout)
}

// Today returns the current date truncated to midnight UTC.
func Today() time.Time {
    return time.Now().UTC().Truncate(24 * time.Hour)
}
