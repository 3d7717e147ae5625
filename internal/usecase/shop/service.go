package shop

import (
	"context"
	"strings"

	"go.uber.org/zap"

	shopdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/shop"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase"
)

type Input struct {
	Name           string
	Address        string
	PostCode       string
	Phone          string
	BusinessRegNum string
	OwnerName      string
}

func (in Input) apply(sh *models.Shop) {
	sh.Name = strings.TrimSpace(in.Name)
	sh.Address = strings.TrimSpace(in.Address)
	sh.PostCode = strings.TrimSpace(in.PostCode)
	sh.Phone = strings.TrimSpace(in.Phone)
	sh.BusinessRegNum = strings.TrimSpace(in.BusinessRegNum)
	sh.OwnerName = strings.TrimSpace(in.OwnerName)
}

type Service struct {
	shops     shopdomain.Repository
	selection *Selection
	log       *zap.Logger
}

func NewService(shops shopdomain.Repository, selection *Selection, log *zap.Logger) *Service {
	return &Service{shops: shops, selection: selection, log: log}
}

// Create registers a shop owned by a MASTER together with its primary-owner membership.
func (s *Service) Create(ctx context.Context, actor usecase.Actor, in Input) (*models.Shop, error) {
	if !actor.IsMaster() {
		return nil, httperr.Forbidden(domainTag, "Only MASTER accounts can create shops.")
	}

	sh := &models.Shop{UserID: actor.UserID}
	in.apply(sh)

	if err := s.shops.Create(ctx, sh); err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}

	s.log.Info("shop created", zap.Uint("shop_id", sh.ID), zap.Uint("user_id", actor.UserID))
	return sh, nil
}

func (s *Service) List(ctx context.Context, actor usecase.Actor, offset, limit int) ([]models.Shop, int64, error) {
	items, total, err := s.shops.ListForUser(ctx, actor.UserID, offset, limit)
	if err != nil {
		return nil, 0, usecase.StoreError(domainTag, err)
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, actor usecase.Actor, id uint) (*models.Shop, error) {
	return s.selection.resolve(ctx, actor.UserID, id)
}

func (s *Service) Update(ctx context.Context, actor usecase.Actor, id uint, in Input) (*models.Shop, error) {
	sh, err := s.selection.resolve(ctx, actor.UserID, id)
	if err != nil {
		return nil, err
	}
	if sh.UserID != actor.UserID {
		return nil, httperr.Forbidden(domainTag, "Only the shop owner can edit it.")
	}

	in.apply(sh)
	if err := s.shops.Update(ctx, sh); err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}
	return sh, nil
}

// requirePrimaryOwner fails unless the actor holds the primary-owner membership of shopID.
func (s *Service) requirePrimaryOwner(ctx context.Context, actor usecase.Actor, shopID uint, domain string) error {
	if _, err := s.selection.resolve(ctx, actor.UserID, shopID); err != nil {
		return err
	}

	m, err := s.shops.GetMembership(ctx, shopID, actor.UserID)
	if err != nil && !usecase.IsNotFound(err) {
		return usecase.StoreError(domain, err)
	}
	if m == nil || m.IsPrimaryOwner != 1 {
		return httperr.Forbidden(domain, "Only the primary owner can do this.")
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, actor usecase.Actor, id uint) error {
	if err := s.requirePrimaryOwner(ctx, actor, id, domainTag); err != nil {
		return err
	}
	if err := s.shops.Delete(ctx, id); err != nil {
		return usecase.StoreError(domainTag, err)
	}

	s.selection.ClearIf(ctx, actor.UserID, id)
	s.log.Info("shop deleted", zap.Uint("shop_id", id), zap.Uint("user_id", actor.UserID))
	return nil
}

func (s *Service) Members(ctx context.Context, actor usecase.Actor, id uint) ([]models.ShopUser, error) {
	if _, err := s.selection.resolve(ctx, actor.UserID, id); err != nil {
		return nil, err
	}
	members, err := s.shops.ListMembers(ctx, id)
	if err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}
	return members, nil
}
