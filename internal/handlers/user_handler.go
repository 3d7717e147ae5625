package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/user"
)

const userDomain = "USER"

type UserHandler struct {
	users *user.Service
}

func NewUserHandler(users *user.Service) *UserHandler {
	return &UserHandler{users: users}
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Role     *string `json:"role"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, userDomain, &req) {
		return
	}

	u, err := h.users.Create(c.Request.Context(), middleware.Actor(c), user.CreateInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.Created(c, u)
}

// GetMe returns the caller.
func (h *UserHandler) GetMe(c *gin.Context) {
	actor := middleware.Actor(c)

	u, err := h.users.Get(c.Request.Context(), actor, actor.UserID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", userDomain)
	if !ok {
		return
	}

	u, err := h.users.Get(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", userDomain)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !bindJSON(c, userDomain, &req) {
		return
	}

	u, err := h.users.Update(c.Request.Context(), middleware.Actor(c), id, user.UpdateInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", userDomain)
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), middleware.Actor(c), id, queryBool(c, "hard")); err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.NoContent(c)
}
