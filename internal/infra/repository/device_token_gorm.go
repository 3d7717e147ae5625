package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/devicetoken"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type DeviceTokenGormRepository struct {
	db *gorm.DB
}

func NewDeviceTokenGormRepository(db *gorm.DB) *DeviceTokenGormRepository {
	return &DeviceTokenGormRepository{db: db}
}

var _ domain.Repository = (*DeviceTokenGormRepository)(nil)

func (r *DeviceTokenGormRepository) Upsert(ctx context.Context, t *models.DevicePushToken) error {
	return translate(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"user_id", "shop_id", "device_id", "platform", "is_active", "updated_at",
			}),
		}).
		Create(t).Error)
}

func (r *DeviceTokenGormRepository) Get(ctx context.Context, id uint) (*models.DevicePushToken, error) {
	var t models.DevicePushToken
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *DeviceTokenGormRepository) ListByUser(ctx context.Context, userID uint) ([]models.DevicePushToken, error) {
	var out []models.DevicePushToken
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *DeviceTokenGormRepository) Update(ctx context.Context, t *models.DevicePushToken) error {
	return translate(r.db.WithContext(ctx).Save(t).Error)
}

func (r *DeviceTokenGormRepository) Delete(ctx context.Context, id uint) error {
	return affected(r.db.WithContext(ctx).Delete(&models.DevicePushToken{}, id))
}

// ActiveTokens filters by owner and/or shop. Shop tokens count only while their owner is
// still a member of that shop.
func (r *DeviceTokenGormRepository) ActiveTokens(ctx context.Context, userID, shopID *uint) ([]string, error) {
	q := r.db.WithContext(ctx).
		Model(&models.DevicePushToken{}).
		Where("device_push_tokens.is_active = ?", true)

	if userID != nil {
		q = q.Where("device_push_tokens.user_id = ?", *userID)
	}
	if shopID != nil {
		q = q.
			Joins("JOIN shop_users su ON su.shop_id = device_push_tokens.shop_id AND su.user_id = device_push_tokens.user_id").
			Where("device_push_tokens.shop_id = ?", *shopID)
	}

	var tokens []string
	if err := q.Order("device_push_tokens.id").Pluck("device_push_tokens.token", &tokens).Error; err != nil {
		return nil, translate(err)
	}
	return tokens, nil
}
