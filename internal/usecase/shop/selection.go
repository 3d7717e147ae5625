package shop

import (
	"context"
	"strconv"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	shopdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/shop"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase"
)

const domainTag = "SHOP"

func notSelected() error {
	return httperr.NotFound(domainTag, "No shop is selected.").
		WithCode("NOT_SELECTED").
		WithHint("Select a shop with POST /shops/selected.")
}

func notFound() error {
	return httperr.NotFound(domainTag, "Shop was not found or you have no access to it.")
}

// Selection keeps the shop each user is working in under user:{id}:selected_shop.
// The TTL slides on every successful read.
type Selection struct {
	shops shopdomain.Repository
	cache *cache.Cache
	ttl   time.Duration
}

func NewSelection(shops shopdomain.Repository, c *cache.Cache, ttl time.Duration) *Selection {
	return &Selection{shops: shops, cache: c, ttl: ttl}
}

func (s *Selection) resolve(ctx context.Context, userID, shopID uint) (*models.Shop, error) {
	sh, err := s.shops.GetForUser(ctx, userID, shopID)
	if err != nil {
		if usecase.IsNotFound(err) {
			return nil, notFound()
		}
		return nil, usecase.StoreError(domainTag, err)
	}
	return sh, nil
}

func (s *Selection) Select(ctx context.Context, userID, shopID uint) (*models.Shop, error) {
	sh, err := s.resolve(ctx, userID, shopID)
	if err != nil {
		return nil, err
	}

	key := cache.SelectedShopKey(userID)
	if err := s.cache.SetString(ctx, key, strconv.FormatUint(uint64(sh.ID), 10), s.ttl); err != nil {
		return nil, httperr.Internal(domainTag, err)
	}
	return sh, nil
}

// Current returns the selected shop. SHOP_NOT_SELECTED means there is no pointer;
// SHOP_NOT_FOUND means the pointer no longer resolves for the user.
func (s *Selection) Current(ctx context.Context, userID uint) (*models.Shop, error) {
	key := cache.SelectedShopKey(userID)

	raw, ok, err := s.cache.GetString(ctx, key)
	if err != nil {
		return nil, httperr.Internal(domainTag, err)
	}
	if !ok {
		return nil, notSelected()
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		_, _ = s.cache.Delete(ctx, key)
		return nil, notSelected()
	}

	sh, err := s.resolve(ctx, userID, uint(id))
	if err != nil {
		return nil, err
	}

	_ = s.cache.Expire(ctx, key, s.ttl)
	return sh, nil
}

func (s *Selection) Clear(ctx context.Context, userID uint) error {
	n, err := s.cache.Delete(ctx, cache.SelectedShopKey(userID))
	if err != nil {
		return httperr.Internal(domainTag, err)
	}
	if n == 0 {
		return notSelected()
	}
	return nil
}

// ClearIf removes the pointer only when it references shopID.
func (s *Selection) ClearIf(ctx context.Context, userID, shopID uint) {
	key := cache.SelectedShopKey(userID)
	raw, ok, err := s.cache.GetString(ctx, key)
	if err != nil || !ok {
		return
	}
	if raw == strconv.FormatUint(uint64(shopID), 10) {
		_, _ = s.cache.Delete(ctx, key)
	}
}
