package grid

import (
	"testing"
	"time"
)

func TestWindowLengthAndOrder(t *testing.T) {
	now := time.Date(2026, 8, 23, 15, 42, 7, 0, time.Local)

	for _, size := range []int{CompactWindow, FullWindow, 1, 30} {
		dates := Window(now, size)
		if len(dates) != size {
			t.Fatalf("size %d: got %d dates", size, len(dates))
		}
		for i := 1; i < len(dates); i++ {
			if !dates[i].Equal(dates[i-1].AddDate(0, 0, 1)) {
				t.Errorf("size %d: dates[%d] = %v, want one day after %v", size, i, dates[i], dates[i-1])
			}
		}
		last := dates[len(dates)-1]
		if DateKey(last) != "2026-08-23" {
			t.Errorf("size %d: last date = %s, want 2026-08-23", size, DateKey(last))
		}
	}
}

func TestWindowNormalizedToMidnight(t *testing.T) {
	now := time.Date(2026, 8, 23, 23, 59, 59, 999, time.Local)

	for _, d := range Window(now, FullWindow) {
		h, m, s := d.Clock()
		if h != 0 || m != 0 || s != 0 || d.Nanosecond() != 0 {
			t.Errorf("date %v not normalized to midnight", d)
		}
	}
}

func TestWindowPureWithinDay(t *testing.T) {
	morning := time.Date(2026, 8, 23, 0, 0, 1, 0, time.Local)
	evening := time.Date(2026, 8, 23, 23, 0, 0, 0, time.Local)

	a := Window(morning, FullWindow)
	b := Window(evening, FullWindow)
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Errorf("dates[%d]: morning %v != evening %v", i, a[i], b[i])
		}
	}
}

func TestWindowCrossesMonthBoundary(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)

	dates := Window(now, CompactWindow)
	want := []string{"2026-02-28", "2026-03-01", "2026-03-02"}
	for i, w := range want {
		if DateKey(dates[i]) != w {
			t.Errorf("dates[%d] = %s, want %s", i, DateKey(dates[i]), w)
		}
	}
}
