package tenant

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/tallyhq/tally/internal/database"
	"github.com/tallyhq/tally/internal/store"
)

// ErrInvalidName rejects tenant identifiers that are empty or contain
// anything besides letters, digits, hyphen, underscore. The identifier
// becomes a filename, so nothing else is allowed through.
var ErrInvalidName = errors.New("tenant name must contain only letters, digits, hyphen, underscore")

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Sanitize validates a raw tenant identifier. An identifier that would need
// characters stripped is rejected outright rather than silently rewritten.
func Sanitize(raw string) (string, error) {
	if !namePattern.MatchString(raw) {
		return "", ErrInvalidName
	}
	return raw, nil
}

// Handle is one tenant's open database plus its single-writer lock. Mutating
// operations rewrite the on-disk file, and the engine is not built for
// interleaved writers, so every store call for a tenant goes through Do.
type Handle struct {
	mu     sync.Mutex
	db     *sql.DB
	habits *store.HabitStore
}

// Do runs fn against the tenant's habit store while holding the tenant's
// lock. Requests for different tenants do not contend with each other.
func (h *Handle) Do(fn func(*store.HabitStore) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.habits)
}

// Manager maps sanitized tenant identifiers to open handles. A handle is
// opened on first use and kept for the process lifetime; the cache is
// unbounded, which is accepted for small tenant counts.
type Manager struct {
	dataDir string
	logger  *slog.Logger

	mu      sync.Mutex
	handles map[string]*Handle
}

func NewManager(dataDir string, logger *slog.Logger) *Manager {
	return &Manager{
		dataDir: dataDir,
		logger:  logger,
		handles: make(map[string]*Handle),
	}
}

// Resolve sanitizes name and returns the tenant's handle. First use creates
// the tenant's database file and runs schema migrations before any query
// touches it.
func (m *Manager) Resolve(name string) (*Handle, error) {
	name, err := Sanitize(name)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if h, ok := m.handles[name]; ok {
		return h, nil
	}

	db, err := database.Open(filepath.Join(m.dataDir, name+".db"))
	if err != nil {
		return nil, fmt.Errorf("open tenant %q: %w", name, err)
	}

	h := &Handle{db: db, habits: store.NewHabitStore(db)}
	m.handles[name] = h
	m.logger.Info("tenant storage opened", "tenant", name)
	return h, nil
}

// Close closes every open tenant handle.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for name, h := range m.handles {
		if err := h.db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close tenant %q: %w", name, err)
		}
		delete(m.handles, name)
	}
	return firstErr
}
