package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/menu"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type MenuGormRepository struct {
	db *gorm.DB
}

func NewMenuGormRepository(db *gorm.DB) *MenuGormRepository {
	return &MenuGormRepository{db: db}
}

var _ domain.Repository = (*MenuGormRepository)(nil)

func preloadDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
}

// --------------------------------------------------
// Menu
// --------------------------------------------------

func (r *MenuGormRepository) ListMenus(
	ctx context.Context,
	shopID uint,
	search string,
) ([]models.TreatmentMenu, error) {

	q := preloadDetails(r.db.WithContext(ctx)).Where("shop_id = ?", shopID)

	if s := strings.TrimSpace(search); s != "" {
		like := "%" + s + "%"
		q = q.Where(
			"name ILIKE ? OR EXISTS (SELECT 1 FROM treatment_menu_details d WHERE d.menu_id = treatment_menus.id AND d.deleted_at IS NULL AND d.name ILIKE ?)",
			like, like,
		)
	}

	var out []models.TreatmentMenu
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *MenuGormRepository) GetMenu(ctx context.Context, shopID, id uint) (*models.TreatmentMenu, error) {
	var m models.TreatmentMenu
	if err := preloadDetails(r.db.WithContext(ctx)).
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *MenuGormRepository) CreateMenu(ctx context.Context, m *models.TreatmentMenu) error {
	return translate(r.db.WithContext(ctx).Create(m).Error)
}

func (r *MenuGormRepository) UpdateMenu(ctx context.Context, m *models.TreatmentMenu) error {
	return translate(r.db.WithContext(ctx).Omit("Details").Save(m).Error)
}

func (r *MenuGormRepository) DeleteMenu(ctx context.Context, shopID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := affected(tx.
			Where("id = ? AND shop_id = ?", id, shopID).
			Delete(&models.TreatmentMenu{})); err != nil {
			return err
		}
		return translate(tx.
			Where("menu_id = ?", id).
			Delete(&models.TreatmentMenuDetail{}).Error)
	})
}

// --------------------------------------------------
// Detail
// --------------------------------------------------

func (r *MenuGormRepository) ListDetails(ctx context.Context, menuID uint) ([]models.TreatmentMenuDetail, error) {
	var out []models.TreatmentMenuDetail
	if err := r.db.WithContext(ctx).
		Where("menu_id = ?", menuID).
		Order("id").
		Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *MenuGormRepository) GetDetail(ctx context.Context, menuID, detailID uint) (*models.TreatmentMenuDetail, error) {
	var d models.TreatmentMenuDetail
	if err := r.db.WithContext(ctx).
		Where("id = ? AND menu_id = ?", detailID, menuID).
		First(&d).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (r *MenuGormRepository) CreateDetail(ctx context.Context, d *models.TreatmentMenuDetail) error {
	return translate(r.db.WithContext(ctx).Create(d).Error)
}

func (r *MenuGormRepository) UpdateDetail(ctx context.Context, d *models.TreatmentMenuDetail) error {
	return translate(r.db.WithContext(ctx).Save(d).Error)
}

func (r *MenuGormRepository) DeleteDetail(ctx context.Context, menuID, detailID uint) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ? AND menu_id = ?", detailID, menuID).
		Delete(&models.TreatmentMenuDetail{}))
}
