package user

import (
	"context"
	"strings"

	"go.uber.org/zap"

	userdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/security"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

const domainTag = "USER"

type CreateInput struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// UpdateInput carries optional fields; nil means unchanged.
type UpdateInput struct {
	Email    *string
	Name     *string
	Password *string
	Role     *string
}

type Service struct {
	users    userdomain.Repository
	profiles *ProfileCache
	log      *zap.Logger
}

func NewService(users userdomain.Repository, profiles *ProfileCache, log *zap.Logger) *Service {
	return &Service{users: users, profiles: profiles, log: log}
}

func forbidden() error {
	return httperr.Forbidden(domainTag, "You cannot access this user.")
}

// Create lets an administrator add an account of any role.
func (s *Service) Create(ctx context.Context, actor usecase.Actor, in CreateInput) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, httperr.Forbidden(domainTag, "Only administrators can create users.")
	}

	role := strings.ToUpper(strings.TrimSpace(in.Role))
	if !models.ValidRole(role) {
		return nil, httperr.BadRequest(domainTag, "Unknown role.")
	}

	hashed, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, httperr.Internal(domainTag, err)
	}

	u := &models.User{
		Email:        validators.NormalizeEmail(in.Email),
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hashed,
		Role:         role,
	}
	if err := s.users.Create(ctx, u, nil); err != nil {
		if usecase.IsDuplicate(err) {
			return nil, httperr.Conflict(domainTag, "Email is already registered.")
		}
		return nil, usecase.StoreError(domainTag, err)
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, actor usecase.Actor, id uint) (*models.User, error) {
	if !actor.CanActOn(id) {
		return nil, forbidden()
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}
	return u, nil
}

func (s *Service) Update(ctx context.Context, actor usecase.Actor, id uint, in UpdateInput) (*models.User, error) {
	if !actor.CanActOn(id) {
		return nil, forbidden()
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, usecase.StoreError(domainTag, err)
	}

	if in.Email != nil {
		u.Email = validators.NormalizeEmail(*in.Email)
	}
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Password != nil {
		hashed, err := security.HashPassword(*in.Password)
		if err != nil {
			return nil, httperr.Internal(domainTag, err)
		}
		u.PasswordHash = hashed
	}
	if in.Role != nil {
		role := strings.ToUpper(strings.TrimSpace(*in.Role))
		if !actor.IsAdmin() && role != u.Role {
			return nil, httperr.Forbidden(domainTag, "Only administrators can change roles.")
		}
		if !models.ValidRole(role) {
			return nil, httperr.BadRequest(domainTag, "Unknown role.")
		}
		u.Role = role
	}

	if err := s.users.Update(ctx, u); err != nil {
		if usecase.IsDuplicate(err) {
			return nil, httperr.Conflict(domainTag, "Email is already registered.")
		}
		return nil, usecase.StoreError(domainTag, err)
	}

	s.profiles.Evict(ctx, id)
	return u, nil
}

func (s *Service) Delete(ctx context.Context, actor usecase.Actor, id uint, hard bool) error {
	if !actor.CanActOn(id) {
		return forbidden()
	}
	if err := s.users.Delete(ctx, id, hard); err != nil {
		return usecase.StoreError(domainTag, err)
	}

	s.profiles.Evict(ctx, id)
	s.log.Info("user deleted", zap.Uint("user_id", id), zap.Bool("hard", hard), zap.Uint("by", actor.UserID))
	return nil
}
