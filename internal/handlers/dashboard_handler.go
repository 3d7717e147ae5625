package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/dashboard"
)

type DashboardHandler struct {
	dashboard *dashboard.Service
}

func NewDashboardHandler(svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboard: svc}
}

// Get serves ?target_date=YYYY-MM-DD&force_refresh=true|false for the selected shop.
func (h *DashboardHandler) Get(c *gin.Context) {
	res, err := h.dashboard.Get(c.Request.Context(), dashboard.Request{
		ShopID:       middleware.ShopID(c),
		TargetDate:   c.Query("target_date"),
		ForceRefresh: queryBool(c, "force_refresh"),
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, res)
}
