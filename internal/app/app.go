// Package app builds the process-wide dependencies once at startup and tears them
// down on shutdown.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	devicetokendomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/devicetoken"
	menudomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/menu"
	phonebookdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/phonebook"
	shopdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/shop"
	statisticsdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/statistics"
	treatmentdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/treatment"
	userdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/push"
	"github.com/BruksfildServices01/salon-scheduler/internal/security"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type Repositories struct {
	Users        userdomain.Repository
	Shops        shopdomain.Repository
	Phonebooks   phonebookdomain.Repository
	Menus        menudomain.Repository
	Treatments   treatmentdomain.Repository
	DeviceTokens devicetokendomain.Repository
	Statistics   statisticsdomain.Repository
}

func GormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:        infraRepo.NewUserGormRepository(db),
		Shops:        infraRepo.NewShopGormRepository(db),
		Phonebooks:   infraRepo.NewPhonebookGormRepository(db),
		Menus:        infraRepo.NewMenuGormRepository(db),
		Treatments:   infraRepo.NewTreatmentGormRepository(db),
		DeviceTokens: infraRepo.NewDeviceTokenGormRepository(db),
		Statistics:   infraRepo.NewStatisticsGormRepository(db),
	}
}

// AppContext holds every shared handle. HTTP handlers and jobs receive it instead
// of reaching for package globals.
type AppContext struct {
	Config *config.Config
	Log    *zap.Logger

	DB    *gorm.DB
	Redis *redis.Client
	Cache *cache.Cache
	Repos Repositories

	Tokens *security.TokenService
	Push   push.Sender

	Audit     audit.Recorder
	AuditLogs *audit.Logger

	Location *time.Location
	Now      func() time.Time

	closers []func()
}

// New connects the store, the cache and the push provider.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*AppContext, error) {
	a := &AppContext{
		Config:   cfg,
		Log:      log,
		Location: timezone.Location(cfg.ShopTimezone),
		Now:      time.Now,
		Tokens:   security.NewTokenService(cfg.JWTSecret, cfg.AccessTTL(), cfg.RefreshTTL(), nil),
	}

	// --------------------------------------------------
	// Database
	// --------------------------------------------------
	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		return nil, err
	}
	a.DB = db
	a.Repos = GormRepositories(db)
	a.onClose(func() {
		if err := dbpkg.Close(db); err != nil {
			log.Warn("close database", zap.Error(err))
		}
	})

	// --------------------------------------------------
	// Cache
	// --------------------------------------------------
	rdb, err := cache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	a.Redis = rdb
	a.Cache = cache.New(rdb)
	a.onClose(func() { _ = rdb.Close() })

	// --------------------------------------------------
	// Push
	// --------------------------------------------------
	if cfg.FirebaseCredentialsFile != "" {
		sender, err := push.NewFCMSender(ctx, cfg.FirebaseCredentialsFile)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Push = sender
	} else {
		log.Info("firebase credentials not configured, push messages are logged only")
		a.Push = push.NewLogSender(log)
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	a.AuditLogs = audit.New(db)
	dispatcher := audit.NewDispatcher(a.AuditLogs, log)
	a.Audit = dispatcher
	a.onClose(dispatcher.Close)

	return a, nil
}

func (a *AppContext) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

// Close releases resources in reverse order of acquisition.
func (a *AppContext) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
