package guideline

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ang3lito/rabiesresq/internal/handler"
	"github.com/Ang3lito/rabiesresq/internal/middleware"
	"github.com/Ang3lito/rabiesresq/internal/model"
	prescreeningService "github.com/Ang3lito/rabiesresq/internal/service/prescreening"
)

type Handler struct {
	service *prescreeningService.Service
}

func NewHandler(service *prescreeningService.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts guideline catalog management. Mount behind
// authentication with the clinic personnel role and ResolvePersonnel.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	guidelines := r.Group("/guidelines")
	{
		guidelines.POST("", h.Create)
		guidelines.GET("", h.List)
		guidelines.POST("/:id/deactivate", h.Deactivate)
	}
}

func (h *Handler) Create(c *gin.Context) {
	personnelID, err := middleware.PersonnelID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("no staff profile for user"))
		return
	}

	var req model.CreateGuidelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	g, err := h.service.CreateGuideline(c.Request.Context(), personnelID, &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(g))
}

func (h *Handler) List(c *gin.Context) {
	guidelines, err := h.service.ListGuidelines(c.Request.Context())
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(guidelines))
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid guideline id"))
		return
	}
	personnelID, err := middleware.PersonnelID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("no staff profile for user"))
		return
	}

	if err := h.service.DeactivateGuideline(c.Request.Context(), personnelID, id); err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"is_active": 0}))
}
