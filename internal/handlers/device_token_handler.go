package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/devicetoken"
)

const deviceTokenDomain = "DEVICE_TOKEN"

type DeviceTokenHandler struct {
	tokens *devicetoken.Service
}

func NewDeviceTokenHandler(tokens *devicetoken.Service) *DeviceTokenHandler {
	return &DeviceTokenHandler{tokens: tokens}
}

type RegisterDeviceTokenRequest struct {
	Token    string  `json:"token" binding:"required,max=512"`
	Platform string  `json:"platform" binding:"required,oneof=ios android web IOS ANDROID WEB"`
	DeviceID *string `json:"device_id" binding:"omitempty,max=255"`
	ShopID   *uint   `json:"shop_id"`
}

type UpdateDeviceTokenRequest struct {
	Platform *string `json:"platform" binding:"omitempty,oneof=ios android web IOS ANDROID WEB"`
	DeviceID *string `json:"device_id" binding:"omitempty,max=255"`
	IsActive *bool   `json:"is_active"`
}

// SendPushRequest targets user_id within the selected shop, or every device of the
// selected shop when user_id is absent.
type SendPushRequest struct {
	UserID *uint             `json:"user_id"`
	Title  string            `json:"title" binding:"required,max=200"`
	Body   string            `json:"body" binding:"max=2000"`
	Data   map[string]string `json:"data"`
}

func (h *DeviceTokenHandler) Register(c *gin.Context) {
	var req RegisterDeviceTokenRequest
	if !bindJSON(c, deviceTokenDomain, &req) {
		return
	}

	t, err := h.tokens.Register(c.Request.Context(), middleware.Actor(c), devicetoken.RegisterInput{
		Token:    req.Token,
		Platform: req.Platform,
		DeviceID: req.DeviceID,
		ShopID:   req.ShopID,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.Created(c, t)
}

func (h *DeviceTokenHandler) Mine(c *gin.Context) {
	tokens, err := h.tokens.Mine(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, tokens)
}

func (h *DeviceTokenHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", deviceTokenDomain)
	if !ok {
		return
	}

	var req UpdateDeviceTokenRequest
	if !bindJSON(c, deviceTokenDomain, &req) {
		return
	}

	t, err := h.tokens.Update(c.Request.Context(), middleware.Actor(c), id, devicetoken.UpdateInput{
		Platform: req.Platform,
		DeviceID: req.DeviceID,
		IsActive: req.IsActive,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, t)
}

func (h *DeviceTokenHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", deviceTokenDomain)
	if !ok {
		return
	}

	if err := h.tokens.Delete(c.Request.Context(), middleware.Actor(c), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *DeviceTokenHandler) Send(c *gin.Context) {
	var req SendPushRequest
	if !bindJSON(c, "PUSH", &req) {
		return
	}

	res, err := h.tokens.Send(c.Request.Context(), devicetoken.SendInput{
		ShopID: middleware.ShopID(c),
		UserID: req.UserID,
		Title:  req.Title,
		Body:   req.Body,
		Data:   req.Data,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, res)
}
