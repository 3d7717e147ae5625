package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/phonebook"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/phonebook"
)

const phonebookDomain = "PHONEBOOK"

type PhonebookHandler struct {
	phonebooks *phonebook.Service
}

func NewPhonebookHandler(phonebooks *phonebook.Service) *PhonebookHandler {
	return &PhonebookHandler{phonebooks: phonebooks}
}

type CreatePhonebookRequest struct {
	GroupName   *string `json:"group_name" binding:"omitempty,max=100"`
	Name        string  `json:"name" binding:"required,max=100"`
	PhoneNumber string  `json:"phone_number" binding:"required"`
	Memo        *string `json:"memo"`
}

type UpdatePhonebookRequest struct {
	GroupName   *string `json:"group_name" binding:"omitempty,max=100"`
	Name        *string `json:"name" binding:"omitempty,max=100"`
	PhoneNumber *string `json:"phone_number"`
	Memo        *string `json:"memo"`
}

// List supports ?search= and ?group_name=. An empty group_name selects ungrouped contacts.
func (h *PhonebookHandler) List(c *gin.Context) {
	p := httpresp.ParsePagination(c)

	f := domain.ListFilter{
		ShopID: middleware.ShopID(c),
		Search: strings.TrimSpace(c.Query("search")),
		Offset: p.Offset(),
		Limit:  p.Size,
	}
	if group, ok := c.GetQuery("group_name"); ok {
		group = strings.TrimSpace(group)
		f.GroupName = &group
	}

	items, total, err := h.phonebooks.List(c.Request.Context(), f)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.List(c, items, total, p)
}

func (h *PhonebookHandler) Groups(c *gin.Context) {
	groups, err := h.phonebooks.Groups(c.Request.Context(), middleware.ShopID(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, groups)
}

func (h *PhonebookHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", phonebookDomain)
	if !ok {
		return
	}

	pb, err := h.phonebooks.Get(c.Request.Context(), middleware.ShopID(c), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, pb)
}

func (h *PhonebookHandler) Create(c *gin.Context) {
	var req CreatePhonebookRequest
	if !bindJSON(c, phonebookDomain, &req) {
		return
	}

	pb, err := h.phonebooks.Create(c.Request.Context(), middleware.Actor(c), middleware.ShopID(c), phonebook.CreateInput{
		GroupName:   req.GroupName,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Memo:        req.Memo,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.Created(c, pb)
}

func (h *PhonebookHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", phonebookDomain)
	if !ok {
		return
	}

	var req UpdatePhonebookRequest
	if !bindJSON(c, phonebookDomain, &req) {
		return
	}

	pb, err := h.phonebooks.Update(c.Request.Context(), middleware.Actor(c), middleware.ShopID(c), id, phonebook.UpdateInput{
		GroupName:   req.GroupName,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Memo:        req.Memo,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, pb)
}

func (h *PhonebookHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", phonebookDomain)
	if !ok {
		return
	}

	if err := h.phonebooks.Delete(c.Request.Context(), middleware.Actor(c), middleware.ShopID(c), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *PhonebookHandler) Restore(c *gin.Context) {
	id, ok := pathID(c, "id", phonebookDomain)
	if !ok {
		return
	}

	pb, err := h.phonebooks.Restore(c.Request.Context(), middleware.Actor(c), middleware.ShopID(c), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, pb)
}
