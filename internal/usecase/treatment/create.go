package treatment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/treatment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase"
)

// ======================================================
// INPUT
// ======================================================

type CreateTreatmentInput struct {
	ShopID  uint
	ActorID uint

	PhonebookID   uint
	ReservedAt    time.Time
	Memo          *string
	Status        string
	PaymentMethod string
	StaffUserID   *uint

	Items []ItemInput
}

// ======================================================
// USE CASE
// ======================================================

type CreateTreatment struct {
	repo    domain.Repository
	members MemberFinder
	audit   audit.Recorder
	now     func() time.Time
}

func NewCreateTreatment(
	repo domain.Repository,
	members MemberFinder,
	recorder audit.Recorder,
	now func() time.Time,
) *CreateTreatment {
	return &CreateTreatment{
		repo:    repo,
		members: members,
		audit:   recorder,
		now:     now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateTreatment) Execute(ctx context.Context, in CreateTreatmentInput) (*View, error) {

	// --------------------------------------------------
	// Customer
	// --------------------------------------------------
	pb, err := uc.repo.GetPhonebook(ctx, in.ShopID, in.PhonebookID)
	if err != nil {
		if usecase.IsNotFound(err) {
			return nil, httperr.NotFound("PHONEBOOK", "Customer was not found in this shop.")
		}
		return nil, usecase.StoreError(domainTag, err)
	}

	// --------------------------------------------------
	// Status / payment
	// --------------------------------------------------
	status := domain.StatusReserved
	if in.Status != "" {
		if status, err = parseStatus(in.Status); err != nil {
			return nil, err
		}
	}

	payment := domain.PaymentUnpaid
	if in.PaymentMethod != "" {
		if payment, err = parsePayment(in.PaymentMethod); err != nil {
			return nil, err
		}
	}

	if err := checkStaff(ctx, uc.members, in.ShopID, in.StaffUserID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Items (price / duration snapshot)
	// --------------------------------------------------
	items, err := buildItems(ctx, uc.repo, in.ShopID, in.Items)
	if err != nil {
		return nil, err
	}

	actorID := in.ActorID
	t := &models.Treatment{
		ShopID:        in.ShopID,
		PhonebookID:   pb.ID,
		ReservedAt:    in.ReservedAt.UTC(),
		Memo:          trimmed(in.Memo),
		PaymentMethod: string(payment),
		StaffUserID:   in.StaffUserID,
		CreatedUserID: &actorID,
		Items:         items,
	}
	domain.ApplyStatus(t, status, uc.now())

	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}
	t.Phonebook = *pb

	uc.audit.Dispatch(audit.Event{
		ShopID:   in.ShopID,
		UserID:   &actorID,
		Action:   models.AuditTreatmentCreated,
		Entity:   models.AuditEntityTreatment,
		EntityID: &t.ID,
	})

	v := NewView(t)
	return &v, nil
}
