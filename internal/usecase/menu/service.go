package menu

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/menu"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase"
)

const (
	domainTag = "TREATMENT_MENU"
	detailTag = "TREATMENT_MENU_DETAIL"
)

type DetailInput struct {
	Name        string
	DurationMin int
	BasePrice   int
}

type MenuInput struct {
	Name    string
	Details []DetailInput
}

type DetailUpdate struct {
	Name        *string
	DurationMin *int
	BasePrice   *int
}

type Service struct {
	repo domain.Repository
}

func NewService(repo domain.Repository) *Service {
	return &Service{repo: repo}
}

func duplicateName() error {
	return httperr.Conflict(domainTag, "A menu with this name already exists in the shop.")
}

func validateDetail(name string, duration, price int) error {
	if strings.TrimSpace(name) == "" {
		return httperr.Validation(detailTag, "Detail name is required.")
	}
	if duration < 0 || price < 0 {
		return httperr.Validation(detailTag, "Duration and price cannot be negative.")
	}
	return nil
}

func (s *Service) List(ctx context.Context, shopID uint, search string) ([]models.TreatmentMenu, error) {
	menus, err := s.repo.ListMenus(ctx, shopID, search)
	if err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}
	return menus, nil
}

func (s *Service) Get(ctx context.Context, shopID, id uint) (*models.TreatmentMenu, error) {
	m, err := s.repo.GetMenu(ctx, shopID, id)
	if err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}
	return m, nil
}

func (s *Service) Create(ctx context.Context, shopID uint, in MenuInput) (*models.TreatmentMenu, error) {
	m := &models.TreatmentMenu{ShopID: shopID, Name: strings.TrimSpace(in.Name)}
	for _, d := range in.Details {
		if err := validateDetail(d.Name, d.DurationMin, d.BasePrice); err != nil {
			return nil, err
		}
		m.Details = append(m.Details, models.TreatmentMenuDetail{
			Name:        strings.TrimSpace(d.Name),
			DurationMin: d.DurationMin,
			BasePrice:   d.BasePrice,
		})
	}

	if err := s.repo.CreateMenu(ctx, m); err != nil {
		if usecase.IsDuplicate(err) {
			return nil, duplicateName()
		}
		return nil, usecase.StoreError(domainTag, err)
	}
	return m, nil
}

func (s *Service) Rename(ctx context.Context, shopID, id uint, name string) (*models.TreatmentMenu, error) {
	m, err := s.repo.GetMenu(ctx, shopID, id)
	if err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}

	m.Name = strings.TrimSpace(name)
	if err := s.repo.UpdateMenu(ctx, m); err != nil {
		if usecase.IsDuplicate(err) {
			return nil, duplicateName()
		}
		return nil, usecase.StoreError(domainTag, err)
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, shopID, id uint) error {
	return usecase.StoreError(domainTag, s.repo.DeleteMenu(ctx, shopID, id))
}

// ======================================================
// DETAILS
// ======================================================

func (s *Service) ListDetails(ctx context.Context, shopID, menuID uint) ([]models.TreatmentMenuDetail, error) {
	if _, err := s.Get(ctx, shopID, menuID); err != nil {
		return nil, err
	}
	details, err := s.repo.ListDetails(ctx, menuID)
	if err != nil {
		return nil, usecase.StoreError(detailTag, err)
	}
	return details, nil
}

func (s *Service) CreateDetail(ctx context.Context, shopID, menuID uint, in DetailInput) (*models.TreatmentMenuDetail, error) {
	if _, err := s.Get(ctx, shopID, menuID); err != nil {
		return nil, err
	}
	if err := validateDetail(in.Name, in.DurationMin, in.BasePrice); err != nil {
		return nil, err
	}

	d := &models.TreatmentMenuDetail{
		MenuID:      menuID,
		Name:        strings.TrimSpace(in.Name),
		DurationMin: in.DurationMin,
		BasePrice:   in.BasePrice,
	}
	if err := s.repo.CreateDetail(ctx, d); err != nil {
		return nil, usecase.StoreError(detailTag, err)
	}
	return d, nil
}

func (s *Service) UpdateDetail(ctx context.Context, shopID, menuID, detailID uint, in DetailUpdate) (*models.TreatmentMenuDetail, error) {
	if _, err := s.Get(ctx, shopID, menuID); err != nil {
		return nil, err
	}

	d, err := s.repo.GetDetail(ctx, menuID, detailID)
	if err != nil {
		return nil, usecase.StoreError(detailTag, err)
	}
	if in.Name != nil {
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.DurationMin != nil {
		d.DurationMin = *in.DurationMin
	}
	if in.BasePrice != nil {
		d.BasePrice = *in.BasePrice
	}
	if err := validateDetail(d.Name, d.DurationMin, d.BasePrice); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateDetail(ctx, d); err != nil {
		return nil, usecase.StoreError(detailTag, err)
	}
	return d, nil
}

func (s *Service) DeleteDetail(ctx context.Context, shopID, menuID, detailID uint) error {
	if _, err := s.Get(ctx, shopID, menuID); err != nil {
		return err
	}
	return usecase.StoreError(detailTag, s.repo.DeleteDetail(ctx, menuID, detailID))
}
