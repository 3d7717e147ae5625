package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/shop"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ShopGormRepository struct {
	db *gorm.DB
}

func NewShopGormRepository(db *gorm.DB) *ShopGormRepository {
	return &ShopGormRepository{db: db}
}

var _ domain.Repository = (*ShopGormRepository)(nil)

const shopAccessible = "shops.user_id = ? OR EXISTS (SELECT 1 FROM shop_users su WHERE su.shop_id = shops.id AND su.user_id = ?)"

// --------------------------------------------------
// Shop
// --------------------------------------------------

func (r *ShopGormRepository) Create(ctx context.Context, s *models.Shop) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(s).Error; err != nil {
			return err
		}
		return tx.Create(&models.ShopUser{
			ShopID:         s.ID,
			UserID:         s.UserID,
			IsPrimaryOwner: 1,
		}).Error
	}))
}

func (r *ShopGormRepository) Get(ctx context.Context, id uint) (*models.Shop, error) {
	var s models.Shop
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *ShopGormRepository) GetForUser(ctx context.Context, userID, shopID uint) (*models.Shop, error) {
	var s models.Shop
	if err := r.db.WithContext(ctx).
		Where("shops.id = ?", shopID).
		Where(shopAccessible, userID, userID).
		First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *ShopGormRepository) ListForUser(
	ctx context.Context,
	userID uint,
	offset, limit int,
) ([]models.Shop, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Shop{}).
		Where(shopAccessible, userID, userID)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var out []models.Shop
	if err := q.Order("shops.id").Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return nil, 0, translate(err)
	}
	return out, total, nil
}

func (r *ShopGormRepository) Update(ctx context.Context, s *models.Shop) error {
	return translate(r.db.WithContext(ctx).Save(s).Error)
}

// Delete soft deletes the shop and drops its invites in the same transaction.
func (r *ShopGormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := affected(tx.Delete(&models.Shop{}, id)); err != nil {
			return err
		}
		return translate(tx.Where("shop_id = ?", id).Delete(&models.ShopInvite{}).Error)
	})
}

// --------------------------------------------------
// Membership
// --------------------------------------------------

func (r *ShopGormRepository) GetMembership(ctx context.Context, shopID, userID uint) (*models.ShopUser, error) {
	var su models.ShopUser
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND user_id = ?", shopID, userID).
		First(&su).Error; err != nil {
		return nil, translate(err)
	}
	return &su, nil
}

func (r *ShopGormRepository) ListMembers(ctx context.Context, shopID uint) ([]models.ShopUser, error) {
	var out []models.ShopUser
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("shop_id = ?", shopID).
		Order("is_primary_owner DESC, user_id").
		Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// --------------------------------------------------
// Invites
// --------------------------------------------------

func (r *ShopGormRepository) LatestInvite(ctx context.Context, shopID uint) (*models.ShopInvite, error) {
	var inv models.ShopInvite
	if err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("expired_at DESC").
		First(&inv).Error; err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

// GetInviteByCode ignores invites of deleted shops.
func (r *ShopGormRepository) GetInviteByCode(ctx context.Context, code string) (*models.ShopInvite, error) {
	var inv models.ShopInvite
	if err := r.db.WithContext(ctx).
		Joins("JOIN shops ON shops.id = shop_invites.shop_id AND shops.deleted_at IS NULL").
		Where("shop_invites.code = ?", code).
		First(&inv).Error; err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

func (r *ShopGormRepository) CreateInvite(ctx context.Context, inv *models.ShopInvite) error {
	return translate(r.db.WithContext(ctx).Create(inv).Error)
}

func (r *ShopGormRepository) DeleteInvites(ctx context.Context, shopID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Delete(&models.ShopInvite{})
	return res.RowsAffected, translate(res.Error)
}

func (r *ShopGormRepository) DeleteExpiredInvites(ctx context.Context, shopID uint, now time.Time) error {
	return translate(r.db.WithContext(ctx).
		Where("shop_id = ? AND expired_at <= ?", shopID, now).
		Delete(&models.ShopInvite{}).Error)
}
