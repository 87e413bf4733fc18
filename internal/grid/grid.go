package grid

import (
	"time"

	"github.com/tallyhq/tally/internal/model"
)

// Cell is one date column of a habit row.
type Cell struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Today     bool   `json:"today"`
}

// Row pairs a habit with its cells for the visible window. Streak is only
// meaningful when the grid was built with the streak column.
type Row struct {
	Habit  model.Habit `json:"habit"`
	Cells  []Cell      `json:"cells"`
	Streak int         `json:"streak"`
}

// Grid is the assembled date × habit display structure. The same structure
// backs the JSON API, the full server-rendered page, and the compact page;
// only the window size and the streak column differ between them.
type Grid struct {
	Dates      []string `json:"dates"`
	Rows       []Row    `json:"rows"`
	WithStreak bool     `json:"with_streak"`
	Empty      bool     `json:"empty"`
}

// Build assembles a grid from an ordered habit list and the date window from
// Window. The last date is marked as today; streaks are computed against it.
// A habit with no logs renders all cells uncompleted. An empty habit list
// yields the empty-state grid rather than a grid with zero rows.
func Build(habits []model.HabitWithLogs, dates []time.Time, withStreak bool) Grid {
	g := Grid{
		Dates:      make([]string, len(dates)),
		WithStreak: withStreak,
	}
	for i, d := range dates {
		g.Dates[i] = DateKey(d)
	}

	if len(habits) == 0 {
		g.Empty = true
		return g
	}

	today := dates[len(dates)-1]
	for _, h := range habits {
		idx := NewCompletionIndex(h.Logs)
		row := Row{Habit: h.Habit, Cells: make([]Cell, len(dates))}
		for i, d := range dates {
			key := DateKey(d)
			row.Cells[i] = Cell{
				Date:      key,
				Completed: idx.Completed(key),
				Today:     i == len(dates)-1,
			}
		}
		if withStreak {
			row.Streak = Streak(h.Logs, today)
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}
