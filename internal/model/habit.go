package model

import "time"

type Habit struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	OrderPosition int       `json:"order_position"`
	CreatedAt     time.Time `json:"created_at"`
}

// HabitLog is one habit's state for one calendar day. Date is the ISO
// YYYY-MM-DD form of the local calendar date; there is at most one row per
// (habit_id, date) pair.
type HabitLog struct {
	ID        int64  `json:"id"`
	HabitID   int64  `json:"habit_id"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Notes     string `json:"notes"`
}

type HabitWithLogs struct {
	Habit
	Logs []HabitLog `json:"logs"`
}

// PositionUpdate is one entry of a reorder request.
type PositionUpdate struct {
	ID            int64 `json:"id"`
	OrderPosition int   `json:"order_position"`
}
