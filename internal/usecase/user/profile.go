package user

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	userdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase"
)

// Profile is the user snapshot kept under user:{id}.
type Profile struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func ProfileOf(u *models.User) Profile {
	return Profile{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// ProfileCache reads user snapshots from the cache and falls back to the store.
type ProfileCache struct {
	users userdomain.Repository
	cache *cache.Cache
	ttl   time.Duration
}

func NewProfileCache(users userdomain.Repository, c *cache.Cache, ttl time.Duration) *ProfileCache {
	return &ProfileCache{users: users, cache: c, ttl: ttl}
}

func (p *ProfileCache) Get(ctx context.Context, id uint) (*Profile, error) {
	prof, _, err := cache.Aside(ctx, p.cache, cache.UserKey(id), p.ttl, false,
		func(ctx context.Context) (Profile, error) {
			u, err := p.users.GetByID(ctx, id)
			if err != nil {
				return Profile{}, usecase.StoreError(domainTag, err)
			}
			return ProfileOf(u), nil
		})
	if err != nil {
		return nil, err
	}
	return &prof, nil
}

func (p *ProfileCache) Evict(ctx context.Context, id uint) {
	_, _ = p.cache.Delete(ctx, cache.UserKey(id))
}
