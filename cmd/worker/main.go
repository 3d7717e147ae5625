// Command worker runs the scheduled completion job without the HTTP API.
// With -migrate-down N it rolls the schema back N steps and exits.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/job"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucTreatment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/treatment"
)

func main() {
	once := flag.Bool("once", false, "run the completion job once and exit")
	down := flag.Int("migrate-down", 0, "roll back N schema migrations and exit")
	flag.Parse()

	cfg := config.Load()
	if *down > 0 {
		cfg.AutoMigrate = false
	}

	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN, Environment: cfg.AppEnv}); err != nil {
			zl.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	db, err := dbpkg.NewDB(cfg, zl)
	if err != nil {
		zl.Fatal("failed to connect database", zap.Error(err))
	}
	defer func() { _ = dbpkg.Close(db) }()

	if *down > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			zl.Fatal("failed to get sql.DB", zap.Error(err))
		}
		if err := dbpkg.MigrateDown(sqlDB, *down, zl); err != nil {
			zl.Fatal("rollback failed", zap.Int("steps", *down), zap.Error(err))
		}
		return
	}

	uc := ucTreatment.NewAutoComplete(infraRepo.NewTreatmentGormRepository(db), time.Now, zl)
	scheduler := job.NewScheduler(timezone.Location(cfg.ShopTimezone), zl)

	if *once {
		scheduler.RunAutoComplete(uc)
		return
	}

	if err := scheduler.AddAutoComplete(cfg.AutoCompleteSchedule, uc); err != nil {
		zl.Fatal("failed to schedule job", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler.Start()
	zl.Info("worker running", zap.String("schedule", cfg.AutoCompleteSchedule))
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	scheduler.Stop(stopCtx)
}
