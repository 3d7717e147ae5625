package phonebook

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListFilter struct {
	ShopID    uint
	Search    string
	GroupName *string
	Offset    int
	Limit     int
}

type GroupCount struct {
	GroupName *string `json:"group_name"`
	Count     int64   `json:"count"`
}

type Repository interface {
	Create(ctx context.Context, p *models.Phonebook) error
	Get(ctx context.Context, shopID, id uint) (*models.Phonebook, error)
	GetIncludingDeleted(ctx context.Context, shopID, id uint) (*models.Phonebook, error)
	List(ctx context.Context, f ListFilter) ([]models.Phonebook, int64, error)
	Groups(ctx context.Context, shopID uint) ([]GroupCount, error)
	Update(ctx context.Context, p *models.Phonebook) error
	Delete(ctx context.Context, shopID, id uint) error
	Restore(ctx context.Context, shopID, id uint) error
}
