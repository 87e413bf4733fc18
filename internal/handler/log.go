package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/tallyhq/tally/internal/model"
	"github.com/tallyhq/tally/internal/store"
)

const dateLayout = "2006-01-02"

type toggleRequest struct {
	HabitID int64  `json:"habit_id"`
	Date    string `json:"date"`
}

// ToggleLog flips the completion state for (habit, date), creating the log
// row on first touch. Two identical toggles are a net no-op; one toggle
// never is.
func (h *HabitHandler) ToggleLog(w http.ResponseWriter, r *http.Request) {
	tn := h.resolveTenant(w, r)
	if tn == nil {
		return
	}

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return
	}

	var completed, notFound bool
	err := tn.Do(func(s *store.HabitStore) error {
		habit, err := s.GetByID(req.HabitID)
		if err != nil {
			return err
		}
		if habit == nil {
			notFound = true
			return nil
		}
		completed, err = s.ToggleLog(req.HabitID, req.Date)
		return err
	})
	if err != nil {
		h.logger.Error("toggle log", "habit_id", req.HabitID, "date", req.Date, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to toggle log"})
		return
	}
	if notFound {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "habit not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"habit_id":  req.HabitID,
		"date":      req.Date,
		"completed": completed,
	})
}

type logUpdateRequest struct {
	Completed bool   `json:"completed"`
	Notes     string `json:"notes"`
}

func (h *HabitHandler) UpdateLog(w http.ResponseWriter, r *http.Request) {
	tn := h.resolveTenant(w, r)
	if tn == nil {
		return
	}
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req logUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	var updated *model.HabitLog
	err = tn.Do(func(s *store.HabitStore) error {
		existing, err := s.GetLogByID(id)
		if err != nil || existing == nil {
			return err
		}
		updated, err = s.UpdateLog(id, req.Completed, req.Notes)
		return err
	})
	if err != nil {
		h.logger.Error("update log", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update log"})
		return
	}
	if updated == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "log not found"})
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *HabitHandler) ListLogsByRange(w http.ResponseWriter, r *http.Request) {
	tn := h.resolveTenant(w, r)
	if tn == nil {
		return
	}

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if _, err := time.Parse(dateLayout, start); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "start must be YYYY-MM-DD"})
		return
	}
	if _, err := time.Parse(dateLayout, end); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "end must be YYYY-MM-DD"})
		return
	}

	var logs []model.HabitLog
	err := tn.Do(func(s *store.HabitStore) error {
		var err error
		logs, err = s.ListLogsByRange(start, end)
		return err
	})
	if err != nil {
		h.logger.Error("list logs by range", "start", start, "end", end, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list logs"})
		return
	}
	if logs == nil {
		logs = []model.HabitLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}
