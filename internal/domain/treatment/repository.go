package treatment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListFilter struct {
	ShopID      uint
	From        *time.Time
	To          *time.Time
	Status      *Status
	StaffUserID *uint
	Search      string
	SortBy      string
	SortDesc    bool
	Offset      int
	Limit       int
}

// Candidate is an unfinished booking with the summed duration of its items.
type Candidate struct {
	ID               uint
	ReservedAt       time.Time
	Status           string
	TotalDurationMin int
}

type Repository interface {
	// -------- Lookups used while booking --------
	GetPhonebook(ctx context.Context, shopID, phonebookID uint) (*models.Phonebook, error)
	GetMenuDetail(ctx context.Context, shopID, detailID uint) (*models.TreatmentMenuDetail, error)

	// -------- Treatment --------
	Create(ctx context.Context, t *models.Treatment) error
	Get(ctx context.Context, shopID, id uint) (*models.Treatment, error)
	List(ctx context.Context, f ListFilter) ([]models.Treatment, int64, error)
	Update(ctx context.Context, t *models.Treatment, replaceItems bool) error
	Delete(ctx context.Context, shopID, id uint, hard bool) error

	// -------- Completion job --------
	ListUnfinished(ctx context.Context) ([]Candidate, error)
	CompleteMany(ctx context.Context, ids []uint, finishedAt time.Time) (int64, error)
}
