// Package job runs background work on cron schedules.
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	ucTreatment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/treatment"
)

// AutoCompleter is the completion use case as seen by the scheduler.
type AutoCompleter interface {
	Execute(ctx context.Context) (ucTreatment.AutoCompleteResult, error)
}

type Scheduler struct {
	cron    *cron.Cron
	log     *zap.Logger
	timeout time.Duration
}

func NewScheduler(loc *time.Location, log *zap.Logger) *Scheduler {
	cl := cronLogger{log: log}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log:     log,
		timeout: 5 * time.Minute,
	}
}

// AddAutoComplete schedules the completion job. Overlapping runs are skipped.
func (s *Scheduler) AddAutoComplete(spec string, uc AutoCompleter) error {
	_, err := s.cron.AddFunc(spec, func() { s.RunAutoComplete(uc) })
	if err != nil {
		return fmt.Errorf("schedule autocomplete %q: %w", spec, err)
	}
	s.log.Info("autocomplete scheduled", zap.String("spec", spec))
	return nil
}

// RunAutoComplete executes one run. Failures are logged and reported, never retried.
func (s *Scheduler) RunAutoComplete(uc AutoCompleter) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := uc.Execute(ctx); err != nil {
		s.log.Error("autocomplete job failed", zap.Error(err))
		sentry.CaptureException(fmt.Errorf("autocomplete job: %w", err))
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out")
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Debugw("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
