package grid

import (
	"testing"
	"time"

	"github.com/tallyhq/tally/internal/model"
)

var streakNow = time.Date(2026, 8, 23, 10, 0, 0, 0, time.Local)

// completedDaysAgo builds one completed log entry per offset, where 0 is
// today.
func completedDaysAgo(offsets ...int) []model.HabitLog {
	logs := make([]model.HabitLog, 0, len(offsets))
	for _, off := range offsets {
		logs = append(logs, model.HabitLog{
			Date:      DateKey(streakNow.AddDate(0, 0, -off)),
			Completed: true,
		})
	}
	return logs
}

func TestStreakEmpty(t *testing.T) {
	if got := Streak(nil, streakNow); got != 0 {
		t.Errorf("streak = %d, want 0", got)
	}
}

func TestStreakSevenDays(t *testing.T) {
	logs := completedDaysAgo(0, 1, 2, 3, 4, 5, 6)
	if got := Streak(logs, streakNow); got != 7 {
		t.Errorf("streak = %d, want 7", got)
	}
}

func TestStreakStopsAtGap(t *testing.T) {
	// Completed today through two days ago, gap at three days back, then
	// more completions further back.
	logs := completedDaysAgo(0, 1, 2, 4, 5, 6, 7)
	if got := Streak(logs, streakNow); got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}
}

func TestStreakRequiresToday(t *testing.T) {
	logs := completedDaysAgo(1, 2, 3, 4)
	if got := Streak(logs, streakNow); got != 0 {
		t.Errorf("streak = %d, want 0 when today is not completed", got)
	}
}

func TestStreakNotCompletedBreaks(t *testing.T) {
	logs := completedDaysAgo(0, 2)
	logs = append(logs, model.HabitLog{
		Date:      DateKey(streakNow.AddDate(0, 0, -1)),
		Completed: false,
	})
	if got := Streak(logs, streakNow); got != 1 {
		t.Errorf("streak = %d, want 1 when yesterday is marked not completed", got)
	}
}

func TestStreakCapAtNinety(t *testing.T) {
	offsets := make([]int, 90)
	for i := range offsets {
		offsets[i] = i
	}
	logs := completedDaysAgo(offsets...)
	if got := Streak(logs, streakNow); got != 90 {
		t.Errorf("streak = %d, want 90", got)
	}

	// A 91st consecutive completion further back does not change the result.
	logs = append(logs, completedDaysAgo(90)...)
	if got := Streak(logs, streakNow); got != 90 {
		t.Errorf("streak with 91 completions = %d, want 90", got)
	}
}

func TestStreakUnsortedInput(t *testing.T) {
	logs := completedDaysAgo(4, 0, 2, 1, 3)
	if got := Streak(logs, streakNow); got != 5 {
		t.Errorf("streak = %d, want 5 for unsorted logs", got)
	}
}
