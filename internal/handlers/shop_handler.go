package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/shop"
)

const shopDomain = "SHOP"

// ======================================================
// HANDLER
// ======================================================

type ShopHandler struct {
	shops     *shop.Service
	selection *shop.Selection
	invites   *shop.Invites
}

func NewShopHandler(shops *shop.Service, selection *shop.Selection, invites *shop.Invites) *ShopHandler {
	return &ShopHandler{shops: shops, selection: selection, invites: invites}
}

// ======================================================
// REQUESTS
// ======================================================

type ShopRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	Address        string `json:"address" binding:"max=255"`
	PostCode       string `json:"post_code" binding:"max=10"`
	Phone          string `json:"phone" binding:"max=20"`
	BusinessRegNum string `json:"business_reg_num" binding:"max=20"`
	OwnerName      string `json:"owner_name" binding:"max=100"`
}

func (r ShopRequest) input() shop.Input {
	return shop.Input{
		Name:           r.Name,
		Address:        r.Address,
		PostCode:       r.PostCode,
		Phone:          r.Phone,
		BusinessRegNum: r.BusinessRegNum,
		OwnerName:      r.OwnerName,
	}
}

type SelectShopRequest struct {
	ShopID uint `json:"shop_id" binding:"required"`
}

// ======================================================
// SHOPS
// ======================================================

func (h *ShopHandler) List(c *gin.Context) {
	p := httpresp.ParsePagination(c)

	shops, total, err := h.shops.List(c.Request.Context(), middleware.Actor(c), p.Offset(), p.Size)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.List(c, shops, total, p)
}

func (h *ShopHandler) Create(c *gin.Context) {
	var req ShopRequest
	if !bindJSON(c, shopDomain, &req) {
		return
	}

	sh, err := h.shops.Create(c.Request.Context(), middleware.Actor(c), req.input())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.Created(c, sh)
}

func (h *ShopHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", shopDomain)
	if !ok {
		return
	}

	sh, err := h.shops.Get(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, sh)
}

func (h *ShopHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", shopDomain)
	if !ok {
		return
	}

	var req ShopRequest
	if !bindJSON(c, shopDomain, &req) {
		return
	}

	sh, err := h.shops.Update(c.Request.Context(), middleware.Actor(c), id, req.input())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, sh)
}

func (h *ShopHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", shopDomain)
	if !ok {
		return
	}

	if err := h.shops.Delete(c.Request.Context(), middleware.Actor(c), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *ShopHandler) Members(c *gin.Context) {
	id, ok := pathID(c, "id", shopDomain)
	if !ok {
		return
	}

	members, err := h.shops.Members(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, members)
}

// ======================================================
// SELECTION
// ======================================================

func (h *ShopHandler) Select(c *gin.Context) {
	var req SelectShopRequest
	if !bindJSON(c, shopDomain, &req) {
		return
	}

	sh, err := h.selection.Select(c.Request.Context(), middleware.Actor(c).UserID, req.ShopID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, sh)
}

func (h *ShopHandler) Selected(c *gin.Context) {
	sh, err := h.selection.Current(c.Request.Context(), middleware.Actor(c).UserID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, sh)
}

func (h *ShopHandler) ClearSelected(c *gin.Context) {
	if err := h.selection.Clear(c.Request.Context(), middleware.Actor(c).UserID); err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// INVITES
// ======================================================

func (h *ShopHandler) CreateInvite(c *gin.Context) {
	id, ok := pathID(c, "id", "SHOP_INVITE")
	if !ok {
		return
	}

	inv, err := h.invites.Create(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.Created(c, inv)
}

func (h *ShopHandler) GetInvite(c *gin.Context) {
	id, ok := pathID(c, "id", "SHOP_INVITE")
	if !ok {
		return
	}

	inv, err := h.invites.Get(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, inv)
}

func (h *ShopHandler) DeleteInvite(c *gin.Context) {
	id, ok := pathID(c, "id", "SHOP_INVITE")
	if !ok {
		return
	}

	if err := h.invites.Delete(c.Request.Context(), middleware.Actor(c), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.NoContent(c)
}
