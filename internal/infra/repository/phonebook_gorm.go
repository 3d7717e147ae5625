package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/phonebook"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type PhonebookGormRepository struct {
	db *gorm.DB
}

func NewPhonebookGormRepository(db *gorm.DB) *PhonebookGormRepository {
	return &PhonebookGormRepository{db: db}
}

var _ domain.Repository = (*PhonebookGormRepository)(nil)

func (r *PhonebookGormRepository) Create(ctx context.Context, p *models.Phonebook) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *PhonebookGormRepository) Get(ctx context.Context, shopID, id uint) (*models.Phonebook, error) {
	var p models.Phonebook
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PhonebookGormRepository) GetIncludingDeleted(ctx context.Context, shopID, id uint) (*models.Phonebook, error) {
	var p models.Phonebook
	if err := r.db.WithContext(ctx).
		Unscoped().
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PhonebookGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Phonebook, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Phonebook{}).
		Where("shop_id = ?", f.ShopID)

	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		digits := "%" + strings.ReplaceAll(s, "-", "") + "%"
		q = q.Where(
			"name ILIKE ? OR phone_number LIKE ? OR REPLACE(phone_number, '-', '') LIKE ? OR memo ILIKE ?",
			like, like, digits, like,
		)
	}
	if f.GroupName != nil {
		if *f.GroupName == "" {
			q = q.Where("group_name IS NULL")
		} else {
			q = q.Where("group_name = ?", *f.GroupName)
		}
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var out []models.Phonebook
	if err := q.Order("name, id").Offset(f.Offset).Limit(f.Limit).Find(&out).Error; err != nil {
		return nil, 0, translate(err)
	}
	return out, total, nil
}

func (r *PhonebookGormRepository) Groups(ctx context.Context, shopID uint) ([]domain.GroupCount, error) {
	var out []domain.GroupCount
	if err := r.db.WithContext(ctx).
		Model(&models.Phonebook{}).
		Select("group_name, COUNT(*) AS count").
		Where("shop_id = ?", shopID).
		Group("group_name").
		Order("group_name NULLS LAST").
		Scan(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *PhonebookGormRepository) Update(ctx context.Context, p *models.Phonebook) error {
	return translate(r.db.WithContext(ctx).Save(p).Error)
}

func (r *PhonebookGormRepository) Delete(ctx context.Context, shopID, id uint) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", id, shopID).
		Delete(&models.Phonebook{}))
}

// Restore clears deleted_at. A live row holding the same number yields ErrDuplicate.
func (r *PhonebookGormRepository) Restore(ctx context.Context, shopID, id uint) error {
	return affected(r.db.WithContext(ctx).
		Unscoped().
		Model(&models.Phonebook{}).
		Where("id = ? AND shop_id = ? AND deleted_at IS NOT NULL", id, shopID).
		Update("deleted_at", nil))
}
