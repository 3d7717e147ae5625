package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/menu"
)

const (
	menuDomain   = "TREATMENT_MENU"
	detailDomain = "TREATMENT_MENU_DETAIL"
)

type MenuHandler struct {
	menus *menu.Service
}

func NewMenuHandler(menus *menu.Service) *MenuHandler {
	return &MenuHandler{menus: menus}
}

// ======================================================
// REQUESTS
// ======================================================

type MenuDetailRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	DurationMin int    `json:"duration_min" binding:"min=0"`
	BasePrice   int    `json:"base_price" binding:"min=0"`
}

type CreateMenuRequest struct {
	Name    string              `json:"name" binding:"required,max=100"`
	Details []MenuDetailRequest `json:"details" binding:"dive"`
}

type RenameMenuRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type UpdateMenuDetailRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	DurationMin *int    `json:"duration_min" binding:"omitempty,min=0"`
	BasePrice   *int    `json:"base_price" binding:"omitempty,min=0"`
}

func (r MenuDetailRequest) input() menu.DetailInput {
	return menu.DetailInput{Name: r.Name, DurationMin: r.DurationMin, BasePrice: r.BasePrice}
}

// ======================================================
// MENUS
// ======================================================

func (h *MenuHandler) List(c *gin.Context) {
	menus, err := h.menus.List(c.Request.Context(), middleware.ShopID(c), strings.TrimSpace(c.Query("search")))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, menus)
}

func (h *MenuHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", menuDomain)
	if !ok {
		return
	}

	m, err := h.menus.Get(c.Request.Context(), middleware.ShopID(c), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, m)
}

func (h *MenuHandler) Create(c *gin.Context) {
	var req CreateMenuRequest
	if !bindJSON(c, menuDomain, &req) {
		return
	}

	in := menu.MenuInput{Name: req.Name}
	for _, d := range req.Details {
		in.Details = append(in.Details, d.input())
	}

	m, err := h.menus.Create(c.Request.Context(), middleware.ShopID(c), in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.Created(c, m)
}

func (h *MenuHandler) Rename(c *gin.Context) {
	id, ok := pathID(c, "id", menuDomain)
	if !ok {
		return
	}

	var req RenameMenuRequest
	if !bindJSON(c, menuDomain, &req) {
		return
	}

	m, err := h.menus.Rename(c.Request.Context(), middleware.ShopID(c), id, req.Name)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, m)
}

func (h *MenuHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", menuDomain)
	if !ok {
		return
	}

	if err := h.menus.Delete(c.Request.Context(), middleware.ShopID(c), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// DETAILS
// ======================================================

func (h *MenuHandler) ListDetails(c *gin.Context) {
	menuID, ok := pathID(c, "id", menuDomain)
	if !ok {
		return
	}

	details, err := h.menus.ListDetails(c.Request.Context(), middleware.ShopID(c), menuID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, details)
}

func (h *MenuHandler) CreateDetail(c *gin.Context) {
	menuID, ok := pathID(c, "id", menuDomain)
	if !ok {
		return
	}

	var req MenuDetailRequest
	if !bindJSON(c, detailDomain, &req) {
		return
	}

	d, err := h.menus.CreateDetail(c.Request.Context(), middleware.ShopID(c), menuID, req.input())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.Created(c, d)
}

func (h *MenuHandler) UpdateDetail(c *gin.Context) {
	menuID, ok := pathID(c, "id", menuDomain)
	if !ok {
		return
	}
	detailID, ok := pathID(c, "detail_id", detailDomain)
	if !ok {
		return
	}

	var req UpdateMenuDetailRequest
	if !bindJSON(c, detailDomain, &req) {
		return
	}

	d, err := h.menus.UpdateDetail(c.Request.Context(), middleware.ShopID(c), menuID, detailID, menu.DetailUpdate{
		Name:        req.Name,
		DurationMin: req.DurationMin,
		BasePrice:   req.BasePrice,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, d)
}

func (h *MenuHandler) DeleteDetail(c *gin.Context) {
	menuID, ok := pathID(c, "id", menuDomain)
	if !ok {
		return
	}
	detailID, ok := pathID(c, "detail_id", detailDomain)
	if !ok {
		return
	}

	if err := h.menus.DeleteDetail(c.Request.Context(), middleware.ShopID(c), menuID, detailID); err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.NoContent(c)
}
