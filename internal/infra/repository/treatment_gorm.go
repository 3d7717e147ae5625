package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/treatment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type TreatmentGormRepository struct {
	db *gorm.DB
}

func NewTreatmentGormRepository(db *gorm.DB) *TreatmentGormRepository {
	return &TreatmentGormRepository{db: db}
}

var _ domain.Repository = (*TreatmentGormRepository)(nil)

var treatmentSortColumns = map[string]string{
	"reserved_at": "treatments.reserved_at",
	"created_at":  "treatments.created_at",
	"updated_at":  "treatments.updated_at",
	"status":      "treatments.status",
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *TreatmentGormRepository) GetPhonebook(
	ctx context.Context,
	shopID uint,
	phonebookID uint,
) (*models.Phonebook, error) {

	var p models.Phonebook
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", phonebookID, shopID).
		First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *TreatmentGormRepository) GetMenuDetail(
	ctx context.Context,
	shopID uint,
	detailID uint,
) (*models.TreatmentMenuDetail, error) {

	var d models.TreatmentMenuDetail
	if err := r.db.WithContext(ctx).
		Joins("JOIN treatment_menus m ON m.id = treatment_menu_details.menu_id AND m.deleted_at IS NULL").
		Where("treatment_menu_details.id = ? AND m.shop_id = ?", detailID, shopID).
		First(&d).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

// --------------------------------------------------
// Treatment
// --------------------------------------------------

func (r *TreatmentGormRepository) Create(ctx context.Context, t *models.Treatment) error {
	return translate(r.db.WithContext(ctx).Omit("Phonebook").Create(t).Error)
}

func (r *TreatmentGormRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Phonebook", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })
}

func (r *TreatmentGormRepository) Get(
	ctx context.Context,
	shopID uint,
	id uint,
) (*models.Treatment, error) {

	var t models.Treatment
	if err := r.withRelations(r.db.WithContext(ctx)).
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&t).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *TreatmentGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Treatment, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Treatment{}).
		Where("treatments.shop_id = ?", f.ShopID)

	if f.From != nil {
		q = q.Where("treatments.reserved_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("treatments.reserved_at < ?", *f.To)
	}
	if f.Status != nil {
		q = q.Where("treatments.status = ?", string(*f.Status))
	}
	if f.StaffUserID != nil {
		q = q.Where("treatments.staff_user_id = ?", *f.StaffUserID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q = q.
			Joins("JOIN phonebooks p ON p.id = treatments.phonebook_id").
			Where("p.name ILIKE ? OR p.phone_number LIKE ? OR treatments.memo ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	col, ok := treatmentSortColumns[f.SortBy]
	if !ok {
		col = treatmentSortColumns["reserved_at"]
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}

	var out []models.Treatment
	if err := r.withRelations(q).
		Order(fmt.Sprintf("%s %s, treatments.id %s", col, dir, dir)).
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&out).Error; err != nil {
		return nil, 0, translate(err)
	}

	return out, total, nil
}

func (r *TreatmentGormRepository) Update(
	ctx context.Context,
	t *models.Treatment,
	replaceItems bool,
) error {

	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Phonebook").Save(t).Error; err != nil {
			return err
		}
		if !replaceItems {
			return nil
		}

		if err := tx.Where("treatment_id = ?", t.ID).Delete(&models.TreatmentItem{}).Error; err != nil {
			return err
		}
		for i := range t.Items {
			t.Items[i].ID = 0
			t.Items[i].TreatmentID = t.ID
		}
		if len(t.Items) == 0 {
			return nil
		}
		return tx.Create(&t.Items).Error
	}))
}

func (r *TreatmentGormRepository) Delete(
	ctx context.Context,
	shopID uint,
	id uint,
	hard bool,
) error {

	if !hard {
		return affected(r.db.WithContext(ctx).
			Where("id = ? AND shop_id = ?", id, shopID).
			Delete(&models.Treatment{}))
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("treatment_id = ?", id).Delete(&models.TreatmentItem{}).Error; err != nil {
			return translate(err)
		}
		return affected(tx.Unscoped().
			Where("id = ? AND shop_id = ?", id, shopID).
			Delete(&models.Treatment{}))
	})
}

// --------------------------------------------------
// Completion job
// --------------------------------------------------

// ListUnfinished scans every shop. Bookings without items have a total duration of 0.
func (r *TreatmentGormRepository) ListUnfinished(ctx context.Context) ([]domain.Candidate, error) {
	var out []domain.Candidate

	err := r.db.WithContext(ctx).
		Table("treatments AS t").
		Select("t.id, t.reserved_at, t.status, COALESCE(SUM(i.duration_min), 0) AS total_duration_min").
		Joins("LEFT JOIN treatment_items i ON i.treatment_id = t.id").
		Where("t.status IN ? AND t.finished_at IS NULL AND t.deleted_at IS NULL", domain.UnfinishedStatuses()).
		Group("t.id, t.reserved_at, t.status").
		Scan(&out).Error
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// CompleteMany promotes ids in one transaction. Rows whose status changed since the
// scan are skipped by the WHERE clause.
func (r *TreatmentGormRepository) CompleteMany(
	ctx context.Context,
	ids []uint,
	finishedAt time.Time,
) (int64, error) {

	if len(ids) == 0 {
		return 0, nil
	}

	var n int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Treatment{}).
			Where("id IN ? AND status IN ? AND finished_at IS NULL", ids, domain.UnfinishedStatuses()).
			Updates(map[string]any{
				"status":      string(domain.StatusCompleted),
				"finished_at": finishedAt,
				"updated_at":  finishedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		n = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, translate(err)
	}
	return n, nil
}
