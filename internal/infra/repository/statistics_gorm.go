package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/statistics"
)

type StatisticsGormRepository struct {
	db *gorm.DB
}

func NewStatisticsGormRepository(db *gorm.DB) *StatisticsGormRepository {
	return &StatisticsGormRepository{db: db}
}

var _ statistics.Repository = (*StatisticsGormRepository)(nil)

const inShopRange = "t.shop_id = ? AND t.deleted_at IS NULL AND t.reserved_at >= ? AND t.reserved_at < ?"

func (r *StatisticsGormRepository) StatusPaymentTotals(
	ctx context.Context,
	shopID uint,
	from, to time.Time,
) ([]statistics.StatusPaymentRow, error) {

	var rows []statistics.StatusPaymentRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT t.status, t.payment_method,
		       COUNT(DISTINCT t.id) AS count,
		       COALESCE(SUM(i.base_price), 0) AS total_price
		FROM treatments t
		LEFT JOIN treatment_items i ON i.treatment_id = t.id
		WHERE `+inShopRange+`
		GROUP BY t.status, t.payment_method`,
		shopID, from, to,
	).Scan(&rows).Error
	return rows, translate(err)
}

func (r *StatisticsGormRepository) MenuSalesTotals(
	ctx context.Context,
	shopID uint,
	from, to time.Time,
) ([]statistics.MenuSalesRow, error) {

	var rows []statistics.MenuSalesRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT i.menu_detail_id,
		       COALESCE(m.name, '') AS menu_name,
		       COALESCE(d.name, '') AS detail_name,
		       t.status, t.payment_method,
		       COUNT(i.id) AS count,
		       COALESCE(SUM(i.base_price), 0) AS total_price
		FROM treatment_items i
		JOIN treatments t ON t.id = i.treatment_id
		LEFT JOIN treatment_menu_details d ON d.id = i.menu_detail_id
		LEFT JOIN treatment_menus m ON m.id = d.menu_id
		WHERE `+inShopRange+`
		GROUP BY i.menu_detail_id, m.name, d.name, t.status, t.payment_method`,
		shopID, from, to,
	).Scan(&rows).Error
	return rows, translate(err)
}

func (r *StatisticsGormRepository) CustomersInRange(
	ctx context.Context,
	shopID uint,
	from, to time.Time,
) ([]statistics.Contact, error) {

	var rows []statistics.Contact
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT p.id AS phonebook_id, p.name, p.phone_number, p.group_name
		FROM treatments t
		JOIN phonebooks p ON p.id = t.phonebook_id
		WHERE `+inShopRange+`
		ORDER BY p.name, p.id`,
		shopID, from, to,
	).Scan(&rows).Error
	return rows, translate(err)
}

func (r *StatisticsGormRepository) CustomerHistory(
	ctx context.Context,
	shopID uint,
	phonebookIDs []uint,
) ([]statistics.CustomerHistoryRow, error) {

	if len(phonebookIDs) == 0 {
		return nil, nil
	}

	var rows []statistics.CustomerHistoryRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT t.phonebook_id, t.status, t.payment_method,
		       COUNT(DISTINCT t.id) AS count,
		       COALESCE(SUM(i.base_price), 0) AS total_price
		FROM treatments t
		LEFT JOIN treatment_items i ON i.treatment_id = t.id
		WHERE t.shop_id = ? AND t.deleted_at IS NULL AND t.phonebook_id IN ?
		GROUP BY t.phonebook_id, t.status, t.payment_method`,
		shopID, phonebookIDs,
	).Scan(&rows).Error
	return rows, translate(err)
}

func (r *StatisticsGormRepository) StaffCounts(
	ctx context.Context,
	shopID uint,
	from, to time.Time,
) ([]statistics.StaffCountRow, error) {

	var rows []statistics.StaffCountRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT t.staff_user_id, u.name AS staff_name, COUNT(t.id) AS count
		FROM treatments t
		LEFT JOIN users u ON u.id = t.staff_user_id
		WHERE `+inShopRange+`
		GROUP BY t.staff_user_id, u.name`,
		shopID, from, to,
	).Scan(&rows).Error
	return rows, translate(err)
}
