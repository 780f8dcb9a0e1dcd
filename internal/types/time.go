package types

import "time"

// WeekdayIndex returns the Monday-indexed weekday (0=Monday .. 6=Sunday)
// used by all rule tables
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ParseTimestamp parses an ISO-8601 timestamp with optional Z suffix or
// missing offset, normalizing to a fixed representation
func ParseTimestamp(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
