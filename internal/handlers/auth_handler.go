package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/user"
)

const authDomain = "AUTH"

type AuthHandler struct {
	auth     *auth.Service
	register *auth.Register
}

func NewAuthHandler(authService *auth.Service, register *auth.Register) *AuthHandler {
	return &AuthHandler{auth: authService, register: register}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name" binding:"required,max=100"`
	Password   string `json:"password" binding:"required,min=8"`
	Role       string `json:"role"`
	InviteCode string `json:"invite_code"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, "USER", &req) {
		return
	}

	u, err := h.register.Execute(c.Request.Context(), auth.RegisterInput{
		Email:      req.Email,
		Name:       req.Name,
		Password:   req.Password,
		Role:       req.Role,
		InviteCode: req.InviteCode,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.Created(c, user.ProfileOf(u))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, authDomain, &req) {
		return
	}

	tokens, u, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"token_type":    tokens.TokenType,
		"user":          user.ProfileOf(u),
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, authDomain, &req) {
		return
	}

	tokens, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.OK(c, tokens)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, authDomain, &req) {
		return
	}

	httpresp.OK(c, gin.H{"success": h.auth.Logout(c.Request.Context(), req.RefreshToken)})
}
