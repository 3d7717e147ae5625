package auth

import (
	"context"
	"strings"
	"time"

	userdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/security"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	Email      string
	Name       string
	Password   string
	Role       string
	InviteCode string
}

type InviteFinder interface {
	GetInviteByCode(ctx context.Context, code string) (*models.ShopInvite, error)
}

// ======================================================
// USE CASE
// ======================================================

type Register struct {
	users          userdomain.Repository
	invites        InviteFinder
	now            func() time.Time
	validateDomain bool
}

func NewRegister(
	users userdomain.Repository,
	invites InviteFinder,
	now func() time.Time,
	validateDomain bool,
) *Register {
	return &Register{
		users:          users,
		invites:        invites,
		now:            now,
		validateDomain: validateDomain,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute creates a MASTER, or a MANAGER joined to the shop of a valid invite code.
func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*models.User, error) {
	role := strings.ToUpper(strings.TrimSpace(in.Role))
	if role == "" {
		role = models.RoleMaster
	}

	switch role {
	case models.RoleAdmin:
		return nil, httperr.BadRequest("USER", "ADMIN accounts cannot be registered.")
	case models.RoleMaster, models.RoleManager:
	default:
		return nil, httperr.BadRequest("USER", "Unknown role.")
	}

	email := validators.NormalizeEmail(in.Email)
	if uc.validateDomain && !validators.IsEmailDomainValid(ctx, nil, email) {
		return nil, httperr.BadRequest("USER", "Email domain does not accept mail.")
	}

	// --------------------------------------------------
	// Invite (managers only)
	// --------------------------------------------------
	var shopID *uint
	if role == models.RoleManager {
		code := strings.TrimSpace(in.InviteCode)
		if code == "" {
			return nil, httperr.BadRequest("USER", "Invite code is required.").
				WithHint("Ask the shop owner for an invite code.")
		}

		inv, err := uc.invites.GetInviteByCode(ctx, code)
		if err != nil {
			if usecase.IsNotFound(err) {
				return nil, httperr.BadRequest("USER", "Invalid invite code.")
			}
			return nil, usecase.StoreError("USER", err)
		}
		if !inv.IsValidAt(uc.now()) {
			return nil, httperr.BadRequest("USER", "Invite code has expired.")
		}
		shopID = &inv.ShopID
	}

	// --------------------------------------------------
	// User (+ membership)
	// --------------------------------------------------
	hashed, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, httperr.Internal("USER", err)
	}

	u := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hashed,
		Role:         role,
	}

	if err := uc.users.Create(ctx, u, shopID); err != nil {
		if usecase.IsDuplicate(err) {
			return nil, httperr.Conflict("USER", "Email is already registered.")
		}
		return nil, usecase.StoreError("USER", err)
	}

	return u, nil
}
