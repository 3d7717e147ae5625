package statistics

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/statistics"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase"
)

const domainTag = "SUMMARY"

// Window is a UTC half-open interval [From, To) on reserved_at.
type Window struct {
	From time.Time
	To   time.Time
}

// Days converts the inclusive local dates [start, end] to a Window.
func Days(start, end time.Time, loc *time.Location) Window {
	from, to := timezone.DayRange(start, end, loc)
	return Window{From: from, To: to}
}

// Month covers the whole calendar month of day.
func Month(day time.Time, loc *time.Location) Window {
	first, last := timezone.MonthBounds(day, loc)
	return Days(first, last, loc)
}

// Engine runs the grouped queries and folds them into result DTOs.
type Engine struct {
	repo domain.Repository
}

func NewEngine(repo domain.Repository) *Engine {
	return &Engine{repo: repo}
}

func (e *Engine) Summary(ctx context.Context, shopID uint, w Window) (domain.TreatmentSummary, error) {
	rows, err := e.repo.StatusPaymentTotals(ctx, shopID, w.From, w.To)
	if err != nil {
		return domain.TreatmentSummary{}, usecase.StoreError(domainTag, err)
	}
	return domain.SummarizeTreatments(rows), nil
}

func (e *Engine) MenuSales(ctx context.Context, shopID uint, w Window) ([]domain.MenuSales, error) {
	rows, err := e.repo.MenuSalesTotals(ctx, shopID, w.From, w.To)
	if err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}
	return domain.FoldMenuSales(rows), nil
}

// Customers reports every contact booked inside w, with totals over their whole history.
func (e *Engine) Customers(ctx context.Context, shopID uint, w Window) ([]domain.CustomerInsight, error) {
	contacts, err := e.repo.CustomersInRange(ctx, shopID, w.From, w.To)
	if err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}
	if len(contacts) == 0 {
		return []domain.CustomerInsight{}, nil
	}

	ids := make([]uint, 0, len(contacts))
	for _, c := range contacts {
		ids = append(ids, c.PhonebookID)
	}

	history, err := e.repo.CustomerHistory(ctx, shopID, ids)
	if err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}
	return domain.FoldCustomerInsights(contacts, history), nil
}

func (e *Engine) Staff(ctx context.Context, shopID uint, w Window) ([]domain.StaffSummary, error) {
	rows, err := e.repo.StaffCounts(ctx, shopID, w.From, w.To)
	if err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}
	return domain.FoldStaff(rows), nil
}
