package job

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	ucTreatment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/treatment"
)

type fakeCompleter struct {
	calls atomic.Int32
	err   error
}

func (f *fakeCompleter) Execute(ctx context.Context) (ucTreatment.AutoCompleteResult, error) {
	f.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return ucTreatment.AutoCompleteResult{}, errors.New("run without deadline")
	}
	return ucTreatment.AutoCompleteResult{Scanned: 1, Completed: 1}, f.err
}

func TestAddAutoCompleteRejectsBadSpec(t *testing.T) {
	s := NewScheduler(time.UTC, zap.NewNop())

	err := s.AddAutoComplete("every half hour", &fakeCompleter{})
	assert.Error(t, err)

	require.NoError(t, s.AddAutoComplete("*/30 * * * *", &fakeCompleter{}))
	assert.Len(t, s.cron.Entries(), 1)
}

func TestRunAutoCompleteSwallowsFailure(t *testing.T) {
	s := NewScheduler(time.UTC, zap.NewNop())
	uc := &fakeCompleter{err: errors.New("db down")}

	assert.NotPanics(t, func() { s.RunAutoComplete(uc) })
	assert.Equal(t, int32(1), uc.calls.Load())
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(time.UTC, zap.NewNop())
	require.NoError(t, s.AddAutoComplete("@every 1h", &fakeCompleter{}))

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
	assert.NoError(t, ctx.Err())
}
