package phonebook

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/phonebook"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

const domainTag = "PHONEBOOK"

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	GroupName   *string
	Name        string
	PhoneNumber string
	Memo        *string
}

type UpdateInput struct {
	GroupName   *string
	Name        *string
	PhoneNumber *string
	Memo        *string
}

// ======================================================
// SERVICE
// ======================================================

type Service struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewService(repo domain.Repository, recorder audit.Recorder) *Service {
	return &Service{repo: repo, audit: recorder}
}

func normalizePhone(raw string) (string, error) {
	phone, err := validators.NormalizePhone(raw)
	if err != nil {
		return "", httperr.Validation(domainTag, "Phone number format is invalid.").
			WithHint("Use a form like 010-1234-5678.")
	}
	return phone, nil
}

func duplicatePhone() *httperr.AppError {
	return httperr.Conflict(domainTag, "This phone number is already registered in the shop.")
}

// optional trims s and maps blank values to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (s *Service) record(shopID, userID uint, action string, id uint) {
	s.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   action,
		Entity:   models.AuditEntityPhonebook,
		EntityID: &id,
	})
}

func (s *Service) Create(ctx context.Context, actor usecase.Actor, shopID uint, in CreateInput) (*models.Phonebook, error) {
	phone, err := normalizePhone(in.PhoneNumber)
	if err != nil {
		return nil, err
	}

	p := &models.Phonebook{
		ShopID:      shopID,
		GroupName:   optional(in.GroupName),
		Name:        strings.TrimSpace(in.Name),
		PhoneNumber: phone,
		Memo:        optional(in.Memo),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if usecase.IsDuplicate(err) {
			return nil, duplicatePhone()
		}
		return nil, usecase.StoreError(domainTag, err)
	}

	s.record(shopID, actor.UserID, models.AuditPhonebookCreated, p.ID)
	return p, nil
}

func (s *Service) List(ctx context.Context, f domain.ListFilter) ([]models.Phonebook, int64, error) {
	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, 0, usecase.StoreError(domainTag, err)
	}
	return items, total, nil
}

func (s *Service) Groups(ctx context.Context, shopID uint) ([]domain.GroupCount, error) {
	groups, err := s.repo.Groups(ctx, shopID)
	if err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}
	return groups, nil
}

func (s *Service) Get(ctx context.Context, shopID, id uint) (*models.Phonebook, error) {
	p, err := s.repo.Get(ctx, shopID, id)
	if err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, actor usecase.Actor, shopID, id uint, in UpdateInput) (*models.Phonebook, error) {
	p, err := s.repo.Get(ctx, shopID, id)
	if err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}

	if in.PhoneNumber != nil {
		phone, err := normalizePhone(*in.PhoneNumber)
		if err != nil {
			return nil, err
		}
		p.PhoneNumber = phone
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.GroupName != nil {
		p.GroupName = optional(in.GroupName)
	}
	if in.Memo != nil {
		p.Memo = optional(in.Memo)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if usecase.IsDuplicate(err) {
			return nil, duplicatePhone()
		}
		return nil, usecase.StoreError(domainTag, err)
	}

	s.record(shopID, actor.UserID, models.AuditPhonebookUpdated, p.ID)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, actor usecase.Actor, shopID, id uint) error {
	if err := s.repo.Delete(ctx, shopID, id); err != nil {
		return usecase.StoreError(domainTag, err)
	}
	s.record(shopID, actor.UserID, models.AuditPhonebookDeleted, id)
	return nil
}

// Restore brings back a soft-deleted contact unless its number was reused meanwhile.
func (s *Service) Restore(ctx context.Context, actor usecase.Actor, shopID, id uint) (*models.Phonebook, error) {
	p, err := s.repo.GetIncludingDeleted(ctx, shopID, id)
	if err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}
	if !p.IsDeleted() {
		return nil, httperr.BadRequest(domainTag, "Contact is not deleted.")
	}

	if err := s.repo.Restore(ctx, shopID, id); err != nil {
		if usecase.IsDuplicate(err) {
			return nil, duplicatePhone().WithHint("Another live contact uses this number.")
		}
		return nil, usecase.StoreError(domainTag, err)
	}

	p.Restore()
	s.record(shopID, actor.UserID, models.AuditPhonebookRestored, id)
	return p, nil
}
