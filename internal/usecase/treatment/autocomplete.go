package treatment

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/treatment"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
)

type AutoCompleteResult struct {
	Scanned   int
	Completed int64
}

// AutoComplete promotes unfinished bookings whose expected end has passed to COMPLETED.
// It runs across every shop.
type AutoComplete struct {
	repo domain.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewAutoComplete(repo domain.Repository, now func() time.Time, log *zap.Logger) *AutoComplete {
	return &AutoComplete{repo: repo, now: now, log: log}
}

func (uc *AutoComplete) Execute(ctx context.Context) (res AutoCompleteResult, err error) {
	defer func() {
		metrics.AutoCompleteRuns.WithLabelValues(strconv.FormatBool(err == nil)).Inc()
	}()

	candidates, err := uc.repo.ListUnfinished(ctx)
	if err != nil {
		uc.log.Error("autocomplete scan failed", zap.Error(err))
		return res, err
	}
	res.Scanned = len(candidates)

	now := uc.now().UTC()
	var due []uint
	for _, c := range candidates {
		if domain.IsDue(domain.Status(c.Status), nil, c.ReservedAt, c.TotalDurationMin, now) {
			due = append(due, c.ID)
		}
	}

	if len(due) == 0 {
		uc.log.Debug("autocomplete: nothing due", zap.Int("scanned", res.Scanned))
		return res, nil
	}

	res.Completed, err = uc.repo.CompleteMany(ctx, due, now)
	if err != nil {
		uc.log.Error("autocomplete update rolled back", zap.Int("due", len(due)), zap.Error(err))
		return res, err
	}

	metrics.AutoCompleted.Add(float64(res.Completed))
	uc.log.Info("autocomplete finished",
		zap.Int("scanned", res.Scanned),
		zap.Int("due", len(due)),
		zap.Int64("completed", res.Completed),
	)
	return res, nil
}
