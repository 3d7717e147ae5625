package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const auditDomain = "AUDIT_LOG"

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs *audit.Logger
	loc  *time.Location
}

func NewAuditLogsHandler(logs *audit.Logger, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, loc: loc}
}

// List filters by ?action=&entity=&from=&to= (local dates, inclusive).
func (h *AuditLogsHandler) List(c *gin.Context) {
	p := httpresp.ParsePagination(c)

	f := audit.ListFilter{
		ShopID: middleware.ShopID(c),
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Offset: p.Offset(),
		Limit:  p.Size,
	}

	// --------------------------------------------------
	// Optional date window
	// --------------------------------------------------
	if raw := c.Query("from"); raw != "" {
		d, err := timezone.ParseDate(raw, h.loc)
		if err != nil {
			httperr.Abort(c, httperr.Validation(auditDomain, "from must be YYYY-MM-DD."))
			return
		}
		from, _ := timezone.DayRange(d, d, h.loc)
		f.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		d, err := timezone.ParseDate(raw, h.loc)
		if err != nil {
			httperr.Abort(c, httperr.Validation(auditDomain, "to must be YYYY-MM-DD."))
			return
		}
		_, to := timezone.DayRange(d, d, h.loc)
		f.To = &to
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Abort(c, httperr.Internal(auditDomain, err))
		return
	}
	httpresp.List(c, logs, total, p)
}
