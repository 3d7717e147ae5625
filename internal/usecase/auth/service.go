package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	userdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/security"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase"
)

const domainTag = "AUTH"

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Service issues token pairs. The current refresh token of each user lives in the
// cache under auth:refresh:{id}; a token that does not match it is rejected.
type Service struct {
	users  userdomain.Repository
	cache  *cache.Cache
	tokens *security.TokenService
	log    *zap.Logger
}

func NewService(
	users userdomain.Repository,
	c *cache.Cache,
	tokens *security.TokenService,
	log *zap.Logger,
) *Service {
	return &Service{
		users:  users,
		cache:  c,
		tokens: tokens,
		log:    log,
	}
}

func invalidCredentials() error {
	return httperr.Unauthorized(domainTag, "Invalid email or password.")
}

func invalidRefresh() error {
	return httperr.Unauthorized(domainTag, "Invalid or expired refresh token.").
		WithHint("Log in again.")
}

// Authenticate looks the user up by email and verifies the password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if usecase.IsNotFound(err) {
			return nil, invalidCredentials()
		}
		return nil, usecase.StoreError(domainTag, err)
	}

	if !security.CheckPassword(u.PasswordHash, password) {
		return nil, invalidCredentials()
	}
	return u, nil
}

// IssueTokens signs a new pair and records the refresh token server-side.
func (s *Service) IssueTokens(ctx context.Context, u *models.User) (*Tokens, error) {
	access, err := s.tokens.IssueAccess(u.ID, u.Role, u.Email)
	if err != nil {
		return nil, httperr.Internal(domainTag, err)
	}

	refresh, err := s.tokens.IssueRefresh(u.ID)
	if err != nil {
		return nil, httperr.Internal(domainTag, err)
	}

	if err := s.cache.SetString(ctx, cache.RefreshTokenKey(u.ID), refresh, s.tokens.RefreshTTL()); err != nil {
		return nil, httperr.Internal(domainTag, err)
	}

	return &Tokens{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*Tokens, *models.User, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}

	t, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return t, u, nil
}

// Refresh returns a new access token. The refresh token is rotated only once less
// than half of its lifetime remains; otherwise the presented one is returned as is.
func (s *Service) Refresh(ctx context.Context, raw string) (*Tokens, error) {
	claims, err := s.tokens.Parse(raw, security.TokenTypeRefresh)
	if err != nil {
		return nil, invalidRefresh()
	}
	userID, _ := claims.UserID()

	stored, ok, err := s.cache.GetString(ctx, cache.RefreshTokenKey(userID))
	if err != nil {
		return nil, httperr.Internal(domainTag, err)
	}
	if !ok || stored != raw {
		s.log.Warn("refresh token mismatch", zap.Uint("user_id", userID), zap.Bool("stored", ok))
		return nil, invalidRefresh()
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if usecase.IsNotFound(err) {
			return nil, invalidRefresh()
		}
		return nil, usecase.StoreError(domainTag, err)
	}

	access, err := s.tokens.IssueAccess(u.ID, u.Role, u.Email)
	if err != nil {
		return nil, httperr.Internal(domainTag, err)
	}

	refresh := raw
	if s.tokens.Remaining(claims) < s.tokens.RefreshTTL()/2 {
		refresh, err = s.tokens.IssueRefresh(u.ID)
		if err != nil {
			return nil, httperr.Internal(domainTag, err)
		}
		if err := s.cache.SetString(ctx, cache.RefreshTokenKey(u.ID), refresh, s.tokens.RefreshTTL()); err != nil {
			return nil, httperr.Internal(domainTag, err)
		}
	}

	return &Tokens{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

// Logout revokes the stored refresh token and the cached profile.
// It reports false instead of failing when the token is unusable or already revoked.
func (s *Service) Logout(ctx context.Context, raw string) bool {
	claims, err := s.tokens.Parse(raw, security.TokenTypeRefresh)
	if err != nil {
		return false
	}
	userID, _ := claims.UserID()

	stored, ok, err := s.cache.GetString(ctx, cache.RefreshTokenKey(userID))
	if err != nil {
		s.log.Warn("logout cache read failed", zap.Uint("user_id", userID), zap.Error(err))
		return false
	}
	if !ok || stored != raw {
		return false
	}

	if _, err := s.cache.Delete(ctx, cache.RefreshTokenKey(userID), cache.UserKey(userID)); err != nil {
		s.log.Warn("logout cache delete failed", zap.Uint("user_id", userID), zap.Error(err))
		return false
	}
	return true
}
