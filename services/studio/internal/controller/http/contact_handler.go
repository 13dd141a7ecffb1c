package http

import (
	"net/http"

	"studio-portfolio/pkg/logger"
	"studio-portfolio/services/studio/internal/entity"
	"studio-portfolio/services/studio/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUseCase usecase.ContactUseCase
	logger         *logger.Logger
}

func NewContactHandler(contactUseCase usecase.ContactUseCase, logger *logger.Logger) *ContactHandler {
	return &ContactHandler{
		contactUseCase: contactUseCase,
		logger:         logger,
	}
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message" binding:"required"`
}

type ContactListResponse struct {
	Items      []*entity.ContactMessage `json:"items"`
	Pagination entity.Pagination        `json:"pagination"`
}

type MarkHandledRequest struct {
	Handled *bool `json:"handled"`
}

// Submit godoc
// @Summary      Send a contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        request body ContactRequest true "Message"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Failure      429  {object}  ErrorResponse
// @Router       /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	msg := &entity.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Service: req.Service,
		Message: req.Message,
	}
	if err := h.contactUseCase.Submit(c.Request.Context(), msg); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": msg.ID, "message": "Message sent"})
}

// List godoc
// @Summary      List contact messages
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Param        handled query bool false "Filter by handled state"
// @Param        page query int false "Page"
// @Param        limit query int false "Page size"
// @Success      200  {object}  ContactListResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /contact [get]
func (h *ContactHandler) List(c *gin.Context) {
	handled, ok := boolQuery(c, "handled")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "handled must be true or false"})
		return
	}
	page, limit := pageQuery(c)

	items, pagination, err := h.contactUseCase.List(c.Request.Context(), handled, page, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if items == nil {
		items = []*entity.ContactMessage{}
	}
	c.JSON(http.StatusOK, ContactListResponse{Items: items, Pagination: pagination})
}

// MarkHandled godoc
// @Summary      Mark a contact message handled
// @Description  Body is optional; handled defaults to true
// @Tags         contact
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Message id"
// @Param        request body MarkHandledRequest false "State"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /contact/{id}/handled [put]
func (h *ContactHandler) MarkHandled(c *gin.Context) {
	handled := true
	if c.Request.ContentLength > 0 {
		var req MarkHandledRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		if req.Handled != nil {
			handled = *req.Handled
		}
	}

	if err := h.contactUseCase.MarkHandled(c.Request.Context(), c.Param("id"), handled); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Message updated"})
}
