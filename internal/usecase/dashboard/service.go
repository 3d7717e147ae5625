package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/statistics"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/statistics"
)

// Cache fields. Each (shop, field, period) is cached on its own key.
const (
	FieldSummary   = "summary"
	FieldSales     = "sales"
	FieldStaff     = "staff"
	FieldCustomers = "customer_insight"
)

type Request struct {
	ShopID uint
	// TargetDate is a local YYYY-MM-DD date; empty means today.
	TargetDate   string
	ForceRefresh bool
}

type Pair[T any] struct {
	TargetDate T `json:"target_date"`
	Month      T `json:"month"`
}

type Response struct {
	TargetDate       string                        `json:"target_date"`
	Summary          Pair[domain.TreatmentSummary] `json:"summary"`
	Sales            Pair[[]domain.MenuSales]      `json:"sales"`
	Staff            Pair[[]domain.StaffSummary]   `json:"staff"`
	CustomerInsights []domain.CustomerInsight      `json:"customer_insights"`
}

type Service struct {
	engine *statistics.Engine
	cache  *cache.Cache
	ttl    time.Duration
	loc    *time.Location
	now    func() time.Time
	log    *zap.Logger
}

func NewService(
	engine *statistics.Engine,
	c *cache.Cache,
	ttl time.Duration,
	loc *time.Location,
	now func() time.Time,
	log *zap.Logger,
) *Service {
	return &Service{
		engine: engine,
		cache:  c,
		ttl:    ttl,
		loc:    loc,
		now:    now,
		log:    log,
	}
}

// cached wraps one metric in the cache-aside lookup for (shop, field, period).
func cached[T any](
	ctx context.Context,
	s *Service,
	req Request,
	field, period string,
	load func(context.Context) (T, error),
) (T, error) {
	key := cache.DashboardKey(req.ShopID, field, period)

	v, hit, err := cache.Aside(ctx, s.cache, key, s.ttl, req.ForceRefresh, load)
	if err != nil {
		return v, err
	}

	metrics.DashboardCache.WithLabelValues(field, metrics.CacheResult(hit)).Inc()
	s.log.Debug("dashboard metric",
		zap.String("key", key),
		zap.Bool("hit", hit),
		zap.Bool("force", req.ForceRefresh),
	)
	return v, nil
}

func (s *Service) Get(ctx context.Context, req Request) (*Response, error) {
	day := timezone.StartOfDay(s.now(), s.loc)
	if req.TargetDate != "" {
		d, err := timezone.ParseDate(req.TargetDate, s.loc)
		if err != nil {
			return nil, httperr.Validation("SUMMARY", "target_date must be YYYY-MM-DD.")
		}
		day = d
	}

	dayPeriod := day.Format("2006-01-02")
	monthPeriod := day.Format("2006-01")
	dayWin := statistics.Days(day, day, s.loc)
	monthWin := statistics.Month(day, s.loc)

	out := &Response{TargetDate: dayPeriod}
	var err error

	// --------------------------------------------------
	// Treatment summary
	// --------------------------------------------------
	if out.Summary.TargetDate, err = cached(ctx, s, req, FieldSummary, dayPeriod,
		func(ctx context.Context) (domain.TreatmentSummary, error) {
			return s.engine.Summary(ctx, req.ShopID, dayWin)
		}); err != nil {
		return nil, err
	}
	if out.Summary.Month, err = cached(ctx, s, req, FieldSummary, monthPeriod,
		func(ctx context.Context) (domain.TreatmentSummary, error) {
			return s.engine.Summary(ctx, req.ShopID, monthWin)
		}); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Sales by menu
	// --------------------------------------------------
	if out.Sales.TargetDate, err = cached(ctx, s, req, FieldSales, dayPeriod,
		func(ctx context.Context) ([]domain.MenuSales, error) {
			return s.engine.MenuSales(ctx, req.ShopID, dayWin)
		}); err != nil {
		return nil, err
	}
	if out.Sales.Month, err = cached(ctx, s, req, FieldSales, monthPeriod,
		func(ctx context.Context) ([]domain.MenuSales, error) {
			return s.engine.MenuSales(ctx, req.ShopID, monthWin)
		}); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Staff
	// --------------------------------------------------
	if out.Staff.TargetDate, err = cached(ctx, s, req, FieldStaff, dayPeriod,
		func(ctx context.Context) ([]domain.StaffSummary, error) {
			return s.engine.Staff(ctx, req.ShopID, dayWin)
		}); err != nil {
		return nil, err
	}
	if out.Staff.Month, err = cached(ctx, s, req, FieldStaff, monthPeriod,
		func(ctx context.Context) ([]domain.StaffSummary, error) {
			return s.engine.Staff(ctx, req.ShopID, monthWin)
		}); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Customer insight (target day only)
	// --------------------------------------------------
	if out.CustomerInsights, err = cached(ctx, s, req, FieldCustomers, dayPeriod,
		func(ctx context.Context) ([]domain.CustomerInsight, error) {
			return s.engine.Customers(ctx, req.ShopID, dayWin)
		}); err != nil {
		return nil, err
	}

	return out, nil
}
