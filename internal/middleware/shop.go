package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ShopResolver interface {
	Current(ctx context.Context, userID uint) (*models.Shop, error)
}

// RequireShop resolves the caller's selected shop and refreshes the selection TTL.
// Must run after AuthMiddleware.
func RequireShop(shops ShopResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh, err := shops.Current(c.Request.Context(), c.GetUint(ContextUserID))
		if err != nil {
			httperr.Abort(c, err)
			return
		}

		c.Set(ContextShopID, sh.ID)
		c.Next()
	}
}

func ShopID(c *gin.Context) uint {
	return c.GetUint(ContextShopID)
}
