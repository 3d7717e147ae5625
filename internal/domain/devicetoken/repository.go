package devicetoken

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	// Upsert inserts t or updates the row holding the same token.
	Upsert(ctx context.Context, t *models.DevicePushToken) error
	Get(ctx context.Context, id uint) (*models.DevicePushToken, error)
	ListByUser(ctx context.Context, userID uint) ([]models.DevicePushToken, error)
	Update(ctx context.Context, t *models.DevicePushToken) error
	Delete(ctx context.Context, id uint) error
	// ActiveTokens returns the active tokens of a user or of a shop.
	ActiveTokens(ctx context.Context, userID, shopID *uint) ([]string, error)
}
