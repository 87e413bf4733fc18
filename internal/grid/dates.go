package grid

import "time"

// Window sizes for the two layouts.
const (
	CompactWindow = 3
	FullWindow    = 7
)

// Window returns size consecutive calendar dates ending with the day of now,
// oldest first, each normalized to midnight in now's location. Two calls
// within the same calendar day produce identical output.
func Window(now time.Time, size int) []time.Time {
	today := startOfDay(now)
	dates := make([]time.Time, size)
	for i := range dates {
		dates[i] = today.AddDate(0, 0, i-(size-1))
	}
	return dates
}

// DateKey formats a date as the ISO YYYY-MM-DD key used by habit logs.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
