package grid

import (
	"time"

	"github.com/tallyhq/tally/internal/model"
)

// StreakScanDays caps how far back the streak scan walks. A habit completed
// every day for longer than this still reports StreakScanDays.
const StreakScanDays = 90

// Streak counts consecutive completed calendar days ending with the day of
// now, walking backward and stopping at the first day with no completed
// entry. A habit not completed today has streak 0 regardless of history.
// Logs need not be sorted.
func Streak(logs []model.HabitLog, now time.Time) int {
	idx := NewCompletionIndex(logs)
	day := startOfDay(now)
	streak := 0
	for i := 0; i < StreakScanDays; i++ {
		if !idx.Completed(DateKey(day)) {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
