package memory

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/shop"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Shops struct{ s *Store }

var _ shop.Repository = (*Shops)(nil)

func (r *Shops) accessible(sh *models.Shop, userID uint) bool {
	if sh.UserID == userID {
		return true
	}
	for _, m := range r.s.members {
		if m.ShopID == sh.ID && m.UserID == userID {
			return true
		}
	}
	return false
}

func (r *Shops) Create(_ context.Context, sh *models.Shop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.stamp()
	sh.ID = r.s.nextID()
	sh.CreatedAt, sh.UpdatedAt = now, now

	cp := *sh
	r.s.shops[sh.ID] = &cp
	r.s.members = append(r.s.members, models.ShopUser{
		ShopID:         sh.ID,
		UserID:         sh.UserID,
		IsPrimaryOwner: 1,
		CreatedAt:      now,
	})
	return nil
}

func (r *Shops) Get(_ context.Context, id uint) (*models.Shop, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sh, ok := r.s.shops[id]
	if !ok || sh.IsDeleted() {
		return nil, repository.ErrNotFound
	}
	cp := *sh
	return &cp, nil
}

func (r *Shops) GetForUser(_ context.Context, userID, shopID uint) (*models.Shop, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sh, ok := r.s.shops[shopID]
	if !ok || sh.IsDeleted() || !r.accessible(sh, userID) {
		return nil, repository.ErrNotFound
	}
	cp := *sh
	return &cp, nil
}

func (r *Shops) ListForUser(_ context.Context, userID uint, offset, limit int) ([]models.Shop, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.Shop
	for _, id := range sortedKeys(r.s.shops) {
		sh := r.s.shops[id]
		if !sh.IsDeleted() && r.accessible(sh, userID) {
			out = append(out, *sh)
		}
	}
	return page(out, offset, limit), int64(len(out)), nil
}

func (r *Shops) Update(_ context.Context, sh *models.Shop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.shops[sh.ID]; !ok {
		return repository.ErrNotFound
	}
	sh.UpdatedAt = r.s.stamp()
	cp := *sh
	r.s.shops[sh.ID] = &cp
	return nil
}

func (r *Shops) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sh, ok := r.s.shops[id]
	if !ok || sh.IsDeleted() {
		return repository.ErrNotFound
	}
	sh.MarkDeleted(r.s.stamp())
	for invID, inv := range r.s.invites {
		if inv.ShopID == id {
			delete(r.s.invites, invID)
		}
	}
	return nil
}

func (r *Shops) GetMembership(_ context.Context, shopID, userID uint) (*models.ShopUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, m := range r.s.members {
		if m.ShopID == shopID && m.UserID == userID {
			cp := m
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Shops) ListMembers(_ context.Context, shopID uint) ([]models.ShopUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var owners, others []models.ShopUser
	for _, m := range r.s.members {
		if m.ShopID != shopID {
			continue
		}
		if u, ok := r.s.users[m.UserID]; ok {
			m.User = *u
		}
		if m.IsPrimaryOwner == 1 {
			owners = append(owners, m)
		} else {
			others = append(others, m)
		}
	}
	return append(owners, others...), nil
}

func (r *Shops) LatestInvite(_ context.Context, shopID uint) (*models.ShopInvite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var latest *models.ShopInvite
	for _, inv := range r.s.invites {
		if inv.ShopID == shopID && (latest == nil || inv.ExpiredAt.After(latest.ExpiredAt)) {
			latest = inv
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (r *Shops) GetInviteByCode(_ context.Context, code string) (*models.ShopInvite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, inv := range r.s.invites {
		if inv.Code != code {
			continue
		}
		if sh, ok := r.s.shops[inv.ShopID]; ok && !sh.IsDeleted() {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Shops) CreateInvite(_ context.Context, inv *models.ShopInvite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.invites {
		if existing.Code == inv.Code {
			return repository.ErrDuplicate
		}
	}
	inv.ID = r.s.nextID()
	inv.CreatedAt = r.s.stamp()
	cp := *inv
	r.s.invites[inv.ID] = &cp
	return nil
}

func (r *Shops) DeleteInvites(_ context.Context, shopID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, inv := range r.s.invites {
		if inv.ShopID == shopID {
			delete(r.s.invites, id)
			n++
		}
	}
	return n, nil
}

func (r *Shops) DeleteExpiredInvites(_ context.Context, shopID uint, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, inv := range r.s.invites {
		if inv.ShopID == shopID && !inv.ExpiredAt.After(now) {
			delete(r.s.invites, id)
		}
	}
	return nil
}

// AddMember inserts a membership directly.
func (r *Shops) AddMember(shopID, userID uint) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.members = append(r.s.members, models.ShopUser{ShopID: shopID, UserID: userID, CreatedAt: r.s.stamp()})
}
