package user

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Create inserts u. When shopID is set, a non-owner membership is created in the
	// same transaction.
	Create(ctx context.Context, u *models.User, shopID *uint) error
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id uint, hard bool) error
}
