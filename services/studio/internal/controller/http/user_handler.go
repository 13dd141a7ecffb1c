package http

import (
	"net/http"
	"strings"

	"studio-portfolio/pkg/logger"
	"studio-portfolio/services/studio/internal/entity"
	"studio-portfolio/services/studio/internal/usecase"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *logger.Logger
}

func NewUserHandler(userUseCase usecase.UserUseCase, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

type UserListResponse struct {
	Items      []*entity.User    `json:"items"`
	Pagination entity.Pagination `json:"pagination"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type UpdateStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role query string false "Role" Enums(admin, photographer, client)
// @Param        search query string false "Name or email"
// @Param        page query int false "Page"
// @Param        limit query int false "Page size"
// @Success      200  {object}  UserListResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	filter := entity.UserFilter{
		Role:   entity.UserRole(strings.ToLower(strings.TrimSpace(c.Query("role")))),
		Search: strings.TrimSpace(c.Query("search")),
	}
	page, limit := pageQuery(c)

	users, pagination, err := h.userUseCase.ListUsers(filter, page, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if users == nil {
		users = []*entity.User{}
	}
	c.JSON(http.StatusOK, UserListResponse{Items: users, Pagination: pagination})
}

// GetUser godoc
// @Summary      Get user
// @Description  Includes the number of photos and videos the user uploaded
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User id"
// @Success      200  {object}  usecase.UserProfile
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	profile, err := h.userUseCase.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateRole godoc
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User id"
// @Param        request body UpdateRoleRequest true "New role"
// @Success      200  {object}  entity.User
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /users/{id}/role [put]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	role := entity.UserRole(strings.ToLower(strings.TrimSpace(req.Role)))
	user, err := h.userUseCase.UpdateRole(viewerFrom(c).UserID, c.Param("id"), role)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateStatus godoc
// @Summary      Activate or deactivate a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User id"
// @Param        request body UpdateStatusRequest true "Status"
// @Success      200  {object}  entity.User
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /users/{id}/status [put]
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.userUseCase.SetActive(viewerFrom(c).UserID, c.Param("id"), *req.IsActive)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary      Delete a user and their media
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User id"
// @Success      200  {object}  MessageResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userUseCase.DeleteUser(c.Request.Context(), viewerFrom(c).UserID, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "User deleted"})
}
