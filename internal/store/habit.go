package store

import (
	"database/sql"
	"fmt"

	"github.com/tallyhq/tally/internal/model"
)

// LogWindow is how many recent log entries travel with a habit by default.
// It matches the streak scan depth, so a fetched habit always carries enough
// history to recompute its streak.
const LogWindow = 90

type HabitStore struct {
	db *sql.DB
}

func NewHabitStore(db *sql.DB) *HabitStore {
	return &HabitStore{db: db}
}

// --- Habit methods ---

func scanHabit(scanner interface{ Scan(...any) error }) (*model.Habit, error) {
	var h model.Habit
	err := scanner.Scan(&h.ID, &h.Name, &h.Description, &h.OrderPosition, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

const habitCols = `id, name, description, order_position, created_at`

func (s *HabitStore) List() ([]model.Habit, error) {
	rows, err := s.db.Query(`SELECT ` + habitCols + ` FROM habits ORDER BY order_position ASC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var habits []model.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		habits = append(habits, *h)
	}
	return habits, rows.Err()
}

func (s *HabitStore) GetByID(id int64) (*model.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitCols+` FROM habits WHERE id = ?`, id)
	h, err := scanHabit(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get habit: %w", err)
	}
	return h, nil
}

// Create appends the habit at the end of the display order: max position
// plus one, or 0 for the first habit.
func (s *HabitStore) Create(name, description string) (*model.Habit, error) {
	result, err := s.db.Exec(
		`INSERT INTO habits (name, description, order_position)
		 VALUES (?, ?, (SELECT COALESCE(MAX(order_position) + 1, 0) FROM habits))`,
		name, description,
	)
	if err != nil {
		return nil, fmt.Errorf("insert habit: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

// Update overwrites name and description. Updating an id that does not
// exist succeeds and returns nil; callers that care check the return.
func (s *HabitStore) Update(id int64, name, description string) (*model.Habit, error) {
	_, err := s.db.Exec(
		`UPDATE habits SET name = ?, description = ? WHERE id = ?`,
		name, description, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update habit: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes the habit; its log rows go with it via the cascade.
func (s *HabitStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return nil
}

// Reorder applies each position update as its own statement, deliberately
// not wrapped in a transaction: a mid-batch failure leaves earlier updates
// committed, and callers re-fetch the list to confirm the final order.
func (s *HabitStore) Reorder(updates []model.PositionUpdate) error {
	for _, u := range updates {
		if _, err := s.db.Exec(`UPDATE habits SET order_position = ? WHERE id = ?`, u.OrderPosition, u.ID); err != nil {
			return fmt.Errorf("reorder habit %d: %w", u.ID, err)
		}
	}
	return nil
}

// --- Log methods ---

func scanLog(scanner interface{ Scan(...any) error }) (*model.HabitLog, error) {
	var l model.HabitLog
	err := scanner.Scan(&l.ID, &l.HabitID, &l.Date, &l.Completed, &l.Notes)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

const logCols = `id, habit_id, date, completed, notes`

// ListLogs returns the habit's most recent entries by date descending,
// capped at limit.
func (s *HabitStore) ListLogs(habitID int64, limit int) ([]model.HabitLog, error) {
	rows, err := s.db.Query(
		`SELECT `+logCols+` FROM habit_logs WHERE habit_id = ? ORDER BY date DESC LIMIT ?`,
		habitID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	var logs []model.HabitLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

func (s *HabitStore) GetLogByID(id int64) (*model.HabitLog, error) {
	row := s.db.QueryRow(`SELECT `+logCols+` FROM habit_logs WHERE id = ?`, id)
	l, err := scanLog(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	return l, nil
}

// ToggleLog is the only write path for completion state. An existing row for
// (habitID, date) gets its completed flag flipped; a first touch inserts a
// row with completed=true. Returns the resulting state.
func (s *HabitStore) ToggleLog(habitID int64, date string) (bool, error) {
	var id int64
	var completed bool
	err := s.db.QueryRow(
		`SELECT id, completed FROM habit_logs WHERE habit_id = ? AND date = ?`,
		habitID, date,
	).Scan(&id, &completed)
	if err == sql.ErrNoRows {
		if _, err := s.db.Exec(
			`INSERT INTO habit_logs (habit_id, date, completed) VALUES (?, ?, 1)`,
			habitID, date,
		); err != nil {
			return false, fmt.Errorf("insert log: %w", err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("find log: %w", err)
	}

	if _, err := s.db.Exec(`UPDATE habit_logs SET completed = ? WHERE id = ?`, !completed, id); err != nil {
		return false, fmt.Errorf("flip log: %w", err)
	}
	return !completed, nil
}

func (s *HabitStore) UpdateLog(id int64, completed bool, notes string) (*model.HabitLog, error) {
	_, err := s.db.Exec(
		`UPDATE habit_logs SET completed = ?, notes = ? WHERE id = ?`,
		completed, notes, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update log: %w", err)
	}
	return s.GetLogByID(id)
}

// ListLogsByRange returns all of the tenant's logs with start <= date <= end,
// date ascending. Dates are ISO strings, so string comparison is date order.
func (s *HabitStore) ListLogsByRange(start, end string) ([]model.HabitLog, error) {
	rows, err := s.db.Query(
		`SELECT `+logCols+` FROM habit_logs WHERE date >= ? AND date <= ? ORDER BY date ASC, habit_id ASC`,
		start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("list logs by range: %w", err)
	}
	defer rows.Close()

	var logs []model.HabitLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}
