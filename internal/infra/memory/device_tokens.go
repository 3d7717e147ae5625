package memory

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/devicetoken"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type DeviceTokens struct{ s *Store }

var _ devicetoken.Repository = (*DeviceTokens)(nil)

func (r *DeviceTokens) Upsert(_ context.Context, t *models.DevicePushToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.stamp()
	for _, cur := range r.s.tokens {
		if cur.Token != t.Token {
			continue
		}
		t.ID = cur.ID
		t.CreatedAt = cur.CreatedAt
		t.UpdatedAt = now
		cp := *t
		r.s.tokens[t.ID] = &cp
		return nil
	}

	t.ID = r.s.nextID()
	t.CreatedAt, t.UpdatedAt = now, now
	cp := *t
	r.s.tokens[t.ID] = &cp
	return nil
}

func (r *DeviceTokens) Get(_ context.Context, id uint) (*models.DevicePushToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tokens[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *DeviceTokens) ListByUser(_ context.Context, userID uint) ([]models.DevicePushToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []models.DevicePushToken{}
	for _, id := range sortedKeys(r.s.tokens) {
		t := r.s.tokens[id]
		if t.UserID != nil && *t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *DeviceTokens) Update(_ context.Context, t *models.DevicePushToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tokens[t.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, cur := range r.s.tokens {
		if cur.ID != t.ID && cur.Token == t.Token {
			return repository.ErrDuplicate
		}
	}
	t.UpdatedAt = r.s.stamp()
	cp := *t
	r.s.tokens[t.ID] = &cp
	return nil
}

func (r *DeviceTokens) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tokens[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.tokens, id)
	return nil
}

func (r *DeviceTokens) ActiveTokens(_ context.Context, userID, shopID *uint) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []string
	for _, id := range sortedKeys(r.s.tokens) {
		t := r.s.tokens[id]
		if !t.IsActive {
			continue
		}
		if userID != nil && (t.UserID == nil || *t.UserID != *userID) {
			continue
		}
		if shopID != nil && (t.ShopID == nil || *t.ShopID != *shopID || t.UserID == nil || !r.s.isMember(*shopID, *t.UserID)) {
			continue
		}
		out = append(out, t.Token)
	}
	return out, nil
}
