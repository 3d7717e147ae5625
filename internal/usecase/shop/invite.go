package shop

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	shopdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/shop"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase"
)

const inviteDomain = "SHOP_INVITE"

// NewInviteCode returns 8 url-safe characters drawn from the random part of a v4 uuid.
func NewInviteCode() string {
	u := uuid.New()
	return base64.RawURLEncoding.EncodeToString(u[:6])
}

type Invites struct {
	shops   shopdomain.Repository
	service *Service
	audit   audit.Recorder
	now     func() time.Time
	ttl     time.Duration
}

func NewInvites(
	shops shopdomain.Repository,
	service *Service,
	recorder audit.Recorder,
	now func() time.Time,
	ttl time.Duration,
) *Invites {
	return &Invites{
		shops:   shops,
		service: service,
		audit:   recorder,
		now:     now,
		ttl:     ttl,
	}
}

// Create issues a new code. At most one unexpired code exists per shop.
func (uc *Invites) Create(ctx context.Context, actor usecase.Actor, shopID uint) (*models.ShopInvite, error) {
	if err := uc.service.requirePrimaryOwner(ctx, actor, shopID, inviteDomain); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	if err := uc.shops.DeleteExpiredInvites(ctx, shopID, now); err != nil {
		return nil, usecase.StoreError(inviteDomain, err)
	}

	current, err := uc.shops.LatestInvite(ctx, shopID)
	if err != nil && !usecase.IsNotFound(err) {
		return nil, usecase.StoreError(inviteDomain, err)
	}
	if current != nil && current.IsValidAt(now) {
		return nil, httperr.Conflict(inviteDomain, "A valid invite code already exists.").
			WithHint("Delete the current code before issuing a new one.")
	}

	inv := &models.ShopInvite{
		ShopID:    shopID,
		Code:      NewInviteCode(),
		ExpiredAt: now.Add(uc.ttl),
	}
	if err := uc.shops.CreateInvite(ctx, inv); err != nil {
		return nil, usecase.StoreError(inviteDomain, err)
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &actor.UserID,
		Action:   models.AuditInviteCreated,
		Entity:   models.AuditEntityShopInvite,
		EntityID: &inv.ID,
	})
	return inv, nil
}

func (uc *Invites) Get(ctx context.Context, actor usecase.Actor, shopID uint) (*models.ShopInvite, error) {
	if err := uc.service.requirePrimaryOwner(ctx, actor, shopID, inviteDomain); err != nil {
		return nil, err
	}

	inv, err := uc.shops.LatestInvite(ctx, shopID)
	if err != nil && !usecase.IsNotFound(err) {
		return nil, usecase.StoreError(inviteDomain, err)
	}
	if inv == nil || !inv.IsValidAt(uc.now()) {
		return nil, httperr.NotFound(inviteDomain, "No valid invite code.")
	}
	return inv, nil
}

func (uc *Invites) Delete(ctx context.Context, actor usecase.Actor, shopID uint) error {
	if err := uc.service.requirePrimaryOwner(ctx, actor, shopID, inviteDomain); err != nil {
		return err
	}

	n, err := uc.shops.DeleteInvites(ctx, shopID)
	if err != nil {
		return usecase.StoreError(inviteDomain, err)
	}
	if n == 0 {
		return httperr.NotFound(inviteDomain, "No invite code to delete.")
	}

	uc.audit.Dispatch(audit.Event{
		ShopID: shopID,
		UserID: &actor.UserID,
		Action: models.AuditInviteDeleted,
		Entity: models.AuditEntityShopInvite,
	})
	return nil
}
