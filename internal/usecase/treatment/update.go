package treatment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/treatment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase"
)

// UpdateTreatmentInput is a partial update; nil fields are left alone.
// A non-nil Items replaces every item of the booking.
type UpdateTreatmentInput struct {
	ShopID  uint
	ActorID uint
	ID      uint

	ReservedAt    *time.Time
	Memo          *string
	Status        *string
	PaymentMethod *string
	StaffUserID   *uint
	Items         *[]ItemInput
}

type UpdateTreatment struct {
	repo    domain.Repository
	members MemberFinder
	audit   audit.Recorder
	now     func() time.Time
}

func NewUpdateTreatment(
	repo domain.Repository,
	members MemberFinder,
	recorder audit.Recorder,
	now func() time.Time,
) *UpdateTreatment {
	return &UpdateTreatment{
		repo:    repo,
		members: members,
		audit:   recorder,
		now:     now,
	}
}

func (uc *UpdateTreatment) Execute(ctx context.Context, in UpdateTreatmentInput) (*View, error) {
	t, err := uc.repo.Get(ctx, in.ShopID, in.ID)
	if err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}
	prevStatus := t.Status

	if in.ReservedAt != nil {
		t.ReservedAt = in.ReservedAt.UTC()
	}
	if in.Memo != nil {
		t.Memo = trimmed(in.Memo)
	}
	if in.PaymentMethod != nil {
		m, err := parsePayment(*in.PaymentMethod)
		if err != nil {
			return nil, err
		}
		t.PaymentMethod = string(m)
	}
	if in.StaffUserID != nil {
		if err := checkStaff(ctx, uc.members, in.ShopID, in.StaffUserID); err != nil {
			return nil, err
		}
		t.StaffUserID = in.StaffUserID
	}
	if in.Status != nil {
		s, err := parseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		domain.ApplyStatus(t, s, uc.now())
	}

	replace := in.Items != nil
	if replace {
		items, err := buildItems(ctx, uc.repo, in.ShopID, *in.Items)
		if err != nil {
			return nil, err
		}
		t.Items = items
	}

	if err := uc.repo.Update(ctx, t, replace); err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}

	actorID := in.ActorID
	uc.audit.Dispatch(audit.Event{
		ShopID:   in.ShopID,
		UserID:   &actorID,
		Action:   models.AuditTreatmentUpdated,
		Entity:   models.AuditEntityTreatment,
		EntityID: &t.ID,
		Metadata: map[string]string{"from": prevStatus, "to": t.Status},
	})

	v := NewView(t)
	return &v, nil
}

type DeleteTreatment struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewDeleteTreatment(repo domain.Repository, recorder audit.Recorder) *DeleteTreatment {
	return &DeleteTreatment{repo: repo, audit: recorder}
}

func (uc *DeleteTreatment) Execute(ctx context.Context, shopID, actorID, id uint, hard bool) error {
	if err := uc.repo.Delete(ctx, shopID, id, hard); err != nil {
		return usecase.StoreError(domainTag, err)
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &actorID,
		Action:   models.AuditTreatmentDeleted,
		Entity:   models.AuditEntityTreatment,
		EntityID: &id,
		Metadata: map[string]bool{"hard": hard},
	})
	return nil
}
