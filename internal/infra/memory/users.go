package memory

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Users struct{ s *Store }

var _ user.Repository = (*Users)(nil)

func (r *Users) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok || u.IsDeleted() {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.s.users {
		if u.Email == email && !u.IsDeleted() {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Users) emailTaken(email string, except uint) bool {
	for _, u := range r.s.users {
		if u.Email == email && u.ID != except {
			return true
		}
	}
	return false
}

func (r *Users) Create(_ context.Context, u *models.User, shopID *uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTaken(u.Email, 0) {
		return repository.ErrDuplicate
	}

	now := r.s.stamp()
	u.ID = r.s.nextID()
	u.CreatedAt, u.UpdatedAt = now, now

	cp := *u
	r.s.users[u.ID] = &cp

	if shopID != nil {
		r.s.members = append(r.s.members, models.ShopUser{
			ShopID:    *shopID,
			UserID:    u.ID,
			CreatedAt: now,
		})
	}
	return nil
}

func (r *Users) Update(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return repository.ErrDuplicate
	}

	u.UpdatedAt = r.s.stamp()
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *Users) Delete(_ context.Context, id uint, hard bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok || (!hard && u.IsDeleted()) {
		return repository.ErrNotFound
	}

	if !hard {
		u.MarkDeleted(r.s.stamp())
		return nil
	}

	delete(r.s.users, id)
	kept := r.s.members[:0]
	for _, m := range r.s.members {
		if m.UserID != id {
			kept = append(kept, m)
		}
	}
	r.s.members = kept
	return nil
}
