package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/security"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/user"
)

const (
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"
	ContextUserEmail = "userEmail"
	ContextShopID    = "shopID"
)

// ProfileLoader resolves the live snapshot of an authenticated user.
type ProfileLoader interface {
	Get(ctx context.Context, id uint) (*user.Profile, error)
}

func unauthorized(detail string) error {
	return httperr.Unauthorized("AUTH", detail).WithHint("Send a valid access token as 'Authorization: Bearer <token>'.")
}

// AuthMiddleware accepts an access token only. The role and email come from the user
// snapshot, so a deleted user is rejected even while the token is still valid.
func AuthMiddleware(tokens *security.TokenService, profiles ProfileLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, unauthorized("Missing authorization header."))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, unauthorized("Invalid authorization header."))
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(parts[1]), security.TokenTypeAccess)
		if err != nil {
			httperr.Abort(c, unauthorized("Invalid or expired access token."))
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			httperr.Abort(c, unauthorized("Invalid token payload."))
			return
		}

		prof, err := profiles.Get(c.Request.Context(), userID)
		if err != nil {
			if httperr.StatusOf(err) == http.StatusNotFound {
				httperr.Abort(c, unauthorized("User no longer exists."))
				return
			}
			httperr.Abort(c, err)
			return
		}

		c.Set(ContextUserID, prof.ID)
		c.Set(ContextUserRole, prof.Role)
		c.Set(ContextUserEmail, prof.Email)

		c.Next()
	}
}

// Actor reads the authenticated caller set by AuthMiddleware.
func Actor(c *gin.Context) usecase.Actor {
	return usecase.Actor{
		UserID: c.GetUint(ContextUserID),
		Role:   c.GetString(ContextUserRole),
		Email:  c.GetString(ContextUserEmail),
	}
}

// RequireRole lets through only the listed roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httperr.Abort(c, httperr.Forbidden("AUTH", "Your role cannot use this endpoint."))
	}
}
