package content

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ang3lito/rabiesresq/internal/handler"
	"github.com/Ang3lito/rabiesresq/internal/middleware"
	"github.com/Ang3lito/rabiesresq/internal/model"
	contentService "github.com/Ang3lito/rabiesresq/internal/service/content"
)

type Handler struct {
	service *contentService.Service
}

func NewHandler(service *contentService.Service) *Handler {
	return &Handler{service: service}
}

// RegisterPatientRoutes mounts the published guidance library.
func (h *Handler) RegisterPatientRoutes(r *gin.RouterGroup) {
	r.GET("/clinics/:id/guidance", h.ListPublishedGuidance)
}

// RegisterStaffRoutes mounts report and guidance authoring. Mount
// behind authentication with the clinic personnel role and
// ResolvePersonnel.
func (h *Handler) RegisterStaffRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.POST("", h.CreateReport)
		reports.GET("", h.ListReports)
		reports.GET("/:id", h.GetReport)
	}
	guidance := r.Group("/guidance")
	{
		guidance.POST("", h.CreateGuidance)
		guidance.GET("", h.ListAllGuidance)
		guidance.POST("/:id/publish", h.PublishGuidance)
	}
}

func (h *Handler) CreateReport(c *gin.Context) {
	personnelID, err := middleware.PersonnelID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("no staff profile for user"))
		return
	}

	var req model.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rep, err := h.service.CreateReport(c.Request.Context(), &personnelID, &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(rep))
}

func (h *Handler) GetReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid report id"))
		return
	}

	rep, err := h.service.GetReport(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(rep))
}

func (h *Handler) ListReports(c *gin.Context) {
	clinicID, err := middleware.ClinicID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("no staff profile for user"))
		return
	}

	reps, err := h.service.ListReports(c.Request.Context(), clinicID)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(reps))
}

func (h *Handler) CreateGuidance(c *gin.Context) {
	personnelID, err := middleware.PersonnelID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("no staff profile for user"))
		return
	}

	var req model.CreateGuidanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	g, err := h.service.CreateGuidance(c.Request.Context(), &personnelID, &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(g))
}

func (h *Handler) PublishGuidance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid guidance id"))
		return
	}

	if err := h.service.PublishGuidance(c.Request.Context(), id); err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"is_published": 1}))
}

func (h *Handler) ListAllGuidance(c *gin.Context) {
	clinicID, err := middleware.ClinicID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("no staff profile for user"))
		return
	}

	items, err := h.service.ListAllGuidance(c.Request.Context(), clinicID)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(items))
}

func (h *Handler) ListPublishedGuidance(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic id"))
		return
	}

	items, err := h.service.ListPublishedGuidance(c.Request.Context(), clinicID)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(items))
}
