package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucTreatment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/treatment"
)

const treatmentDomain = "TREATMENT"

// ======================================================
// HANDLER
// ======================================================

type TreatmentHandler struct {
	createTreatmentUC *ucTreatment.CreateTreatment
	listTreatmentsUC  *ucTreatment.ListTreatments
	getTreatmentUC    *ucTreatment.GetTreatment
	updateTreatmentUC *ucTreatment.UpdateTreatment
	deleteTreatmentUC *ucTreatment.DeleteTreatment
	loc               *time.Location
}

func NewTreatmentHandler(
	createTreatmentUC *ucTreatment.CreateTreatment,
	listTreatmentsUC *ucTreatment.ListTreatments,
	getTreatmentUC *ucTreatment.GetTreatment,
	updateTreatmentUC *ucTreatment.UpdateTreatment,
	deleteTreatmentUC *ucTreatment.DeleteTreatment,
	loc *time.Location,
) *TreatmentHandler {
	return &TreatmentHandler{
		createTreatmentUC: createTreatmentUC,
		listTreatmentsUC:  listTreatmentsUC,
		getTreatmentUC:    getTreatmentUC,
		updateTreatmentUC: updateTreatmentUC,
		deleteTreatmentUC: deleteTreatmentUC,
		loc:               loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type TreatmentItemRequest struct {
	MenuDetailID *uint `json:"menu_detail_id"`
	BasePrice    *int  `json:"base_price" binding:"omitempty,min=0"`
	DurationMin  *int  `json:"duration_min" binding:"omitempty,min=0"`
	SessionNo    *int  `json:"session_no" binding:"omitempty,min=1"`
}

type CreateTreatmentRequest struct {
	PhonebookID   uint                   `json:"phonebook_id" binding:"required"`
	ReservedAt    string                 `json:"reserved_at" binding:"required"`
	Memo          *string                `json:"memo"`
	Status        string                 `json:"status"`
	PaymentMethod string                 `json:"payment_method"`
	StaffUserID   *uint                  `json:"staff_user_id"`
	Items         []TreatmentItemRequest `json:"items" binding:"dive"`
}

type UpdateTreatmentRequest struct {
	ReservedAt    *string                 `json:"reserved_at"`
	Memo          *string                 `json:"memo"`
	Status        *string                 `json:"status"`
	PaymentMethod *string                 `json:"payment_method"`
	StaffUserID   *uint                   `json:"staff_user_id"`
	Items         *[]TreatmentItemRequest `json:"items" binding:"omitempty,dive"`
}

func itemInputs(items []TreatmentItemRequest) []ucTreatment.ItemInput {
	out := make([]ucTreatment.ItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, ucTreatment.ItemInput{
			MenuDetailID: it.MenuDetailID,
			BasePrice:    it.BasePrice,
			DurationMin:  it.DurationMin,
			SessionNo:    it.SessionNo,
		})
	}
	return out
}

func (h *TreatmentHandler) reservedAt(c *gin.Context, raw string) (time.Time, bool) {
	t, err := parseDateTimeInShop(strings.TrimSpace(raw), h.loc)
	if err != nil {
		httperr.Abort(c, httperr.Validation(treatmentDomain, "reserved_at must be an ISO-8601 date-time.").
			WithHint("Use 2025-03-10T14:00:00+09:00, or omit the offset for shop local time."))
		return time.Time{}, false
	}
	return t, true
}

// ======================================================
// CREATE
// ======================================================

func (h *TreatmentHandler) Create(c *gin.Context) {
	var req CreateTreatmentRequest
	if !bindJSON(c, treatmentDomain, &req) {
		return
	}

	at, ok := h.reservedAt(c, req.ReservedAt)
	if !ok {
		return
	}

	view, err := h.createTreatmentUC.Execute(c.Request.Context(), ucTreatment.CreateTreatmentInput{
		ShopID:        middleware.ShopID(c),
		ActorID:       middleware.Actor(c).UserID,
		PhonebookID:   req.PhonebookID,
		ReservedAt:    at,
		Memo:          req.Memo,
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		StaffUserID:   req.StaffUserID,
		Items:         itemInputs(req.Items),
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.Created(c, view)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *TreatmentHandler) List(c *gin.Context) {
	p := httpresp.ParsePagination(c)

	staffID, ok := queryUint(c, "staff_user_id", treatmentDomain)
	if !ok {
		return
	}

	items, total, err := h.listTreatmentsUC.Execute(c.Request.Context(), ucTreatment.ListTreatmentsInput{
		ShopID:      middleware.ShopID(c),
		StartDate:   c.Query("start_date"),
		EndDate:     c.Query("end_date"),
		Status:      c.Query("status"),
		StaffUserID: staffID,
		Search:      strings.TrimSpace(c.Query("search")),
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
		Offset:      p.Offset(),
		Limit:       p.Size,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.List(c, items, total, p)
}

func (h *TreatmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", treatmentDomain)
	if !ok {
		return
	}

	view, err := h.getTreatmentUC.Execute(c.Request.Context(), middleware.ShopID(c), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, view)
}

// ======================================================
// UPDATE / DELETE
// ======================================================

func (h *TreatmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", treatmentDomain)
	if !ok {
		return
	}

	var req UpdateTreatmentRequest
	if !bindJSON(c, treatmentDomain, &req) {
		return
	}

	in := ucTreatment.UpdateTreatmentInput{
		ShopID:        middleware.ShopID(c),
		ActorID:       middleware.Actor(c).UserID,
		ID:            id,
		Memo:          req.Memo,
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		StaffUserID:   req.StaffUserID,
	}
	if req.ReservedAt != nil {
		at, ok := h.reservedAt(c, *req.ReservedAt)
		if !ok {
			return
		}
		in.ReservedAt = &at
	}
	if req.Items != nil {
		items := itemInputs(*req.Items)
		in.Items = &items
	}

	view, err := h.updateTreatmentUC.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, view)
}

func (h *TreatmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", treatmentDomain)
	if !ok {
		return
	}

	err := h.deleteTreatmentUC.Execute(
		c.Request.Context(),
		middleware.ShopID(c),
		middleware.Actor(c).UserID,
		id,
		queryBool(c, "hard"),
	)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.NoContent(c)
}
