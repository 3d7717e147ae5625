package treatment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ExpectedEnd is reserved_at plus the total duration of the booked items.
func ExpectedEnd(reservedAt time.Time, totalDurationMin int) time.Time {
	return reservedAt.Add(time.Duration(totalDurationMin) * time.Minute)
}

// IsDue reports whether an unfinished booking has run past its expected end at now.
// Zero-duration bookings become due at their reserved time.
func IsDue(status Status, finishedAt *time.Time, reservedAt time.Time, totalDurationMin int, now time.Time) bool {
	if !IsUnfinished(status) || finishedAt != nil {
		return false
	}
	return !now.Before(ExpectedEnd(reservedAt, totalDurationMin))
}

// ApplyStatus moves t to next and keeps finished_at consistent with it.
func ApplyStatus(t *models.Treatment, next Status, now time.Time) {
	prev := Status(t.Status)
	t.Status = string(next)

	switch {
	case next == StatusCompleted && prev != StatusCompleted:
		n := now.UTC()
		t.FinishedAt = &n
	case next != StatusCompleted:
		t.FinishedAt = nil
	}
}
