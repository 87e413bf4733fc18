package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tallyhq/tally/internal/grid"
	"github.com/tallyhq/tally/internal/model"
	"github.com/tallyhq/tally/internal/store"
)

// Grid serves the assembled date × habit grid. Desktop and mobile clients
// hit this with window=7 and window=3 instead of carrying their own copies
// of the streak and date logic.
func (h *HabitHandler) Grid(w http.ResponseWriter, r *http.Request) {
	tn := h.resolveTenant(w, r)
	if tn == nil {
		return
	}

	window := grid.FullWindow
	if ws := r.URL.Query().Get("window"); ws != "" {
		n, err := strconv.Atoi(ws)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid window"})
			return
		}
		window = n
	}

	var habits []model.HabitWithLogs
	err := tn.Do(func(s *store.HabitStore) error {
		var err error
		habits, err = loadRows(s)
		return err
	})
	if err != nil {
		h.logger.Error("build grid", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to build grid"})
		return
	}

	dates := grid.Window(time.Now(), window)
	g := grid.Build(habits, dates, window >= grid.FullWindow)
	writeJSON(w, http.StatusOK, g)
}

// loadRows fetches every habit with its recent log window, in display order.
// Callers hold the tenant lock.
func loadRows(s *store.HabitStore) ([]model.HabitWithLogs, error) {
	habits, err := s.List()
	if err != nil {
		return nil, err
	}
	rows := make([]model.HabitWithLogs, 0, len(habits))
	for _, habit := range habits {
		logs, err := s.ListLogs(habit.ID, store.LogWindow)
		if err != nil {
			return nil, err
		}
		rows = append(rows, model.HabitWithLogs{Habit: habit, Logs: logs})
	}
	return rows, nil
}
