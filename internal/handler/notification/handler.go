package notification

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ang3lito/rabiesresq/internal/handler"
	"github.com/Ang3lito/rabiesresq/internal/middleware"
	"github.com/Ang3lito/rabiesresq/internal/model"
	notificationService "github.com/Ang3lito/rabiesresq/internal/service/notification"
)

type Handler struct {
	service *notificationService.Service
}

func NewHandler(service *notificationService.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the self-service inbox. Mount behind
// authentication; any role.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/notifications", h.ListMine)
}

// RegisterStaffRoutes mounts notification creation for staff.
func (h *Handler) RegisterStaffRoutes(r *gin.RouterGroup) {
	r.POST("/notifications", h.Create)
}

func (h *Handler) ListMine(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user id"))
		return
	}

	notifs, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	role := c.GetString(middleware.CtxUserRole)
	broadcast, err := h.service.ListForRole(c.Request.Context(), role)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"personal":  notifs,
		"broadcast": broadcast,
	}))
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	n, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, notificationService.ErrNoRecipient) ||
			errors.Is(err, notificationService.ErrUnknownRole) {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(n))
}
