package handler

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/tallyhq/tally/internal/grid"
	"github.com/tallyhq/tally/internal/model"
	"github.com/tallyhq/tally/internal/store"
	"github.com/tallyhq/tally/internal/tenant"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageHandler renders the server-side grid pages. The grid it embeds is the
// same structure the JSON API serves; the page inlines it as initial state
// so the client skips its first fetch.
type PageHandler struct {
	tenants   *tenant.Manager
	templates *template.Template
	logger    *slog.Logger
}

func NewPageHandler(tenants *tenant.Manager, logger *slog.Logger) *PageHandler {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/*.html"))
	return &PageHandler{tenants: tenants, templates: tmpl, logger: logger}
}

// Board renders the full layout: 7-day window with the streak column.
func (h *PageHandler) Board(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.renderBoard(w, r, "board.html", grid.FullWindow, true)
}

// CompactBoard renders the mobile layout: 3-day window, no streak column.
func (h *PageHandler) CompactBoard(w http.ResponseWriter, r *http.Request) {
	h.renderBoard(w, r, "compact.html", grid.CompactWindow, false)
}

func (h *PageHandler) renderBoard(w http.ResponseWriter, r *http.Request, name string, window int, withStreak bool) {
	tenantName := r.URL.Query().Get("tenant")
	tn, err := h.tenants.Resolve(tenantName)
	if err != nil {
		if errors.Is(err, tenant.ErrInvalidName) {
			http.Error(w, "invalid tenant", http.StatusBadRequest)
			return
		}
		h.logger.Error("resolve tenant", "error", err)
		http.Error(w, "failed to open tenant storage", http.StatusInternalServerError)
		return
	}

	var habits []model.HabitWithLogs
	err = tn.Do(func(s *store.HabitStore) error {
		var err error
		habits, err = loadRows(s)
		return err
	})
	if err != nil {
		h.logger.Error("load grid", "error", err)
		http.Error(w, "failed to load data", http.StatusInternalServerError)
		return
	}

	g := grid.Build(habits, grid.Window(time.Now(), window), withStreak)

	data := map[string]any{
		"Title":  "Tally",
		"Tenant": tenantName,
		"Grid":   g,
	}
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("render page", "template", name, "error", err)
	}
}
