package grid

import "github.com/tallyhq/tally/internal/model"

// CompletionIndex answers whether a habit has a completed entry for a date.
// Keys are ISO YYYY-MM-DD strings; a missing date reads as not completed.
type CompletionIndex map[string]bool

// NewCompletionIndex builds an index from one habit's logs. Rows with
// completed=false are not recorded, so they read the same as missing rows.
func NewCompletionIndex(logs []model.HabitLog) CompletionIndex {
	idx := make(CompletionIndex, len(logs))
	for _, l := range logs {
		if l.Completed {
			idx[l.Date] = true
		}
	}
	return idx
}

func (idx CompletionIndex) Completed(date string) bool {
	return idx[date]
}
