package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/tallyhq/tally/internal/model"
	"github.com/tallyhq/tally/internal/store"
	"github.com/tallyhq/tally/internal/tenant"
)

type HabitHandler struct {
	tenants *tenant.Manager
	logger  *slog.Logger
}

func NewHabitHandler(tenants *tenant.Manager, logger *slog.Logger) *HabitHandler {
	return &HabitHandler{tenants: tenants, logger: logger}
}

type habitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	tn := h.resolveTenant(w, r)
	if tn == nil {
		return
	}

	var habits []model.Habit
	err := tn.Do(func(s *store.HabitStore) error {
		var err error
		habits, err = s.List()
		return err
	})
	if err != nil {
		h.logger.Error("list habits", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list habits"})
		return
	}
	if habits == nil {
		habits = []model.Habit{}
	}
	writeJSON(w, http.StatusOK, habits)
}

// Get returns a habit with its recent log window, enough history for the
// client to rebuild the grid and streak without a second request.
func (h *HabitHandler) Get(w http.ResponseWriter, r *http.Request) {
	tn := h.resolveTenant(w, r)
	if tn == nil {
		return
	}
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var resp *model.HabitWithLogs
	err = tn.Do(func(s *store.HabitStore) error {
		habit, err := s.GetByID(id)
		if err != nil || habit == nil {
			return err
		}
		logs, err := s.ListLogs(id, store.LogWindow)
		if err != nil {
			return err
		}
		if logs == nil {
			logs = []model.HabitLog{}
		}
		resp = &model.HabitWithLogs{Habit: *habit, Logs: logs}
		return nil
	})
	if err != nil {
		h.logger.Error("get habit", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get habit"})
		return
	}
	if resp == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "habit not found"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	tn := h.resolveTenant(w, r)
	if tn == nil {
		return
	}

	var req habitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	var habit *model.Habit
	err := tn.Do(func(s *store.HabitStore) error {
		var err error
		habit, err = s.Create(req.Name, req.Description)
		return err
	})
	if err != nil {
		h.logger.Error("create habit", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create habit"})
		return
	}
	writeJSON(w, http.StatusCreated, habit)
}

// Update overwrites name and description. An unknown id reports success
// without changing anything, matching the historical behavior callers rely
// on.
func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	tn := h.resolveTenant(w, r)
	if tn == nil {
		return
	}
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req habitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	var habit *model.Habit
	err = tn.Do(func(s *store.HabitStore) error {
		var err error
		habit, err = s.Update(id, req.Name, req.Description)
		return err
	})
	if err != nil {
		h.logger.Error("update habit", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update habit"})
		return
	}
	if habit == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tn := h.resolveTenant(w, r)
	if tn == nil {
		return
	}
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	notFound := false
	err = tn.Do(func(s *store.HabitStore) error {
		habit, err := s.GetByID(id)
		if err != nil {
			return err
		}
		if habit == nil {
			notFound = true
			return nil
		}
		return s.Delete(id)
	})
	if err != nil {
		h.logger.Error("delete habit", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete habit"})
		return
	}
	if notFound {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "habit not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reorder applies position updates best-effort and responds with the fresh
// list so the client can confirm the final order even after a partial
// failure.
func (h *HabitHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	tn := h.resolveTenant(w, r)
	if tn == nil {
		return
	}

	var updates []model.PositionUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	var habits []model.Habit
	err := tn.Do(func(s *store.HabitStore) error {
		if err := s.Reorder(updates); err != nil {
			return err
		}
		var err error
		habits, err = s.List()
		return err
	})
	if err != nil {
		h.logger.Error("reorder habits", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to reorder habits"})
		return
	}
	if habits == nil {
		habits = []model.Habit{}
	}
	writeJSON(w, http.StatusOK, habits)
}

// --- shared helpers ---

// resolveTenant resolves the tenant query parameter to an open handle,
// writing the error response itself and returning nil when the request
// cannot proceed.
func (h *HabitHandler) resolveTenant(w http.ResponseWriter, r *http.Request) *tenant.Handle {
	tn, err := h.tenants.Resolve(r.URL.Query().Get("tenant"))
	if err != nil {
		if errors.Is(err, tenant.ErrInvalidName) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tenant"})
			return nil
		}
		h.logger.Error("resolve tenant", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to open tenant storage"})
		return nil
	}
	return tn
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
