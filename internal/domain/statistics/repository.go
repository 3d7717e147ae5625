package statistics

import (
	"context"
	"time"
)

// Repository runs the grouped queries. from/to are a UTC half-open interval on reserved_at.
type Repository interface {
	StatusPaymentTotals(ctx context.Context, shopID uint, from, to time.Time) ([]StatusPaymentRow, error)
	MenuSalesTotals(ctx context.Context, shopID uint, from, to time.Time) ([]MenuSalesRow, error)
	CustomersInRange(ctx context.Context, shopID uint, from, to time.Time) ([]Contact, error)
	CustomerHistory(ctx context.Context, shopID uint, phonebookIDs []uint) ([]CustomerHistoryRow, error)
	StaffCounts(ctx context.Context, shopID uint, from, to time.Time) ([]StaffCountRow, error)
}
