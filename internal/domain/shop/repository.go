package shop

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Shop --------
	// Create inserts s and its primary-owner membership in one transaction.
	Create(ctx context.Context, s *models.Shop) error
	Get(ctx context.Context, id uint) (*models.Shop, error)
	// GetForUser resolves a live shop the user owns or belongs to.
	GetForUser(ctx context.Context, userID, shopID uint) (*models.Shop, error)
	ListForUser(ctx context.Context, userID uint, offset, limit int) ([]models.Shop, int64, error)
	Update(ctx context.Context, s *models.Shop) error
	Delete(ctx context.Context, id uint) error

	// -------- Membership --------
	GetMembership(ctx context.Context, shopID, userID uint) (*models.ShopUser, error)
	ListMembers(ctx context.Context, shopID uint) ([]models.ShopUser, error)

	// -------- Invites --------
	LatestInvite(ctx context.Context, shopID uint) (*models.ShopInvite, error)
	GetInviteByCode(ctx context.Context, code string) (*models.ShopInvite, error)
	CreateInvite(ctx context.Context, inv *models.ShopInvite) error
	DeleteInvites(ctx context.Context, shopID uint) (int64, error)
	DeleteExpiredInvites(ctx context.Context, shopID uint, now time.Time) error
}
