package menu

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Menu --------
	// ListMenus preloads live details. search matches the menu name or any live detail name.
	ListMenus(ctx context.Context, shopID uint, search string) ([]models.TreatmentMenu, error)
	GetMenu(ctx context.Context, shopID, id uint) (*models.TreatmentMenu, error)
	CreateMenu(ctx context.Context, m *models.TreatmentMenu) error
	UpdateMenu(ctx context.Context, m *models.TreatmentMenu) error
	// DeleteMenu soft-deletes the menu and its details together.
	DeleteMenu(ctx context.Context, shopID, id uint) error

	// -------- Detail --------
	ListDetails(ctx context.Context, menuID uint) ([]models.TreatmentMenuDetail, error)
	GetDetail(ctx context.Context, menuID, detailID uint) (*models.TreatmentMenuDetail, error)
	CreateDetail(ctx context.Context, d *models.TreatmentMenuDetail) error
	UpdateDetail(ctx context.Context, d *models.TreatmentMenuDetail) error
	DeleteDetail(ctx context.Context, menuID, detailID uint) error
}
