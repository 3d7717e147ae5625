package treatment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/treatment"
)

func TestAutoCompleteOnlyDueUnfinished(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	start := f.clock.Now()

	due := f.book(t, start, "")
	visited := f.book(t, start, "VISITED")
	cancelled := f.book(t, start, "CANCELLED")
	noShow := f.book(t, start, "NO_SHOW")
	later := f.book(t, start.Add(2*time.Hour), "")

	f.clock.Advance(61 * time.Minute)

	res, err := f.job.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Scanned)
	assert.Equal(t, int64(2), res.Completed)

	want := map[uint]domain.Status{
		due.ID:       domain.StatusCompleted,
		visited.ID:   domain.StatusCompleted,
		cancelled.ID: domain.StatusCancelled,
		noShow.ID:    domain.StatusNoShow,
		later.ID:     domain.StatusReserved,
	}
	for id, status := range want {
		got, err := f.get.Execute(ctx, f.shopID, id)
		require.NoError(t, err)
		assert.Equal(t, string(status), got.Status, id)
		if status == domain.StatusCompleted {
			require.NotNil(t, got.FinishedAt)
			assert.Equal(t, f.clock.Now(), *got.FinishedAt)
		}
	}
}

func TestAutoCompleteIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v := f.book(t, f.clock.Now(), "")
	f.clock.Advance(2 * time.Hour)

	first, err := f.job.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Completed)

	before, err := f.get.Execute(ctx, f.shopID, v.ID)
	require.NoError(t, err)

	f.clock.Advance(30 * time.Minute)
	second, err := f.job.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Scanned)
	assert.Equal(t, int64(0), second.Completed)

	after, err := f.get.Execute(ctx, f.shopID, v.ID)
	require.NoError(t, err)
	assert.Equal(t, before.FinishedAt, after.FinishedAt)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestAutoCompleteZeroDurationAtReservedTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	at := f.clock.Now().Add(10 * time.Minute)
	v := f.book(t, at, "", []ItemInput{}...)
	require.Equal(t, 0, v.TotalDurationMin)

	res, err := f.job.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Completed)

	f.clock.Set(at)
	res, err = f.job.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Completed)
}
