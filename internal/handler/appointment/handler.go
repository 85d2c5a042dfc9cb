package appointment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ang3lito/rabiesresq/internal/handler"
	"github.com/Ang3lito/rabiesresq/internal/middleware"
	"github.com/Ang3lito/rabiesresq/internal/model"
	apptService "github.com/Ang3lito/rabiesresq/internal/service/appointment"
)

type Handler struct {
	service *apptService.Service
}

func NewHandler(service *apptService.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the staff appointment routes. Mount behind
// authentication with the clinic personnel role and ResolvePersonnel.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appts := r.Group("/appointments")
	{
		appts.POST("", h.Schedule)
		appts.GET("", h.List)
		appts.GET("/:id", h.Get)
		appts.PATCH("/:id/status", h.UpdateStatus)
	}
}

// RegisterPatientRoutes mounts self-service appointment routes. Mount
// behind authentication with the patient role.
func (h *Handler) RegisterPatientRoutes(r *gin.RouterGroup) {
	appts := r.Group("/appointments")
	{
		appts.GET("/mine", h.ListMine)
		appts.POST("/:id/cancel", h.CancelMine)
	}
}

func (h *Handler) Schedule(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	appt, err := h.service.Schedule(c.Request.Context(), &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(appt))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment id"))
		return
	}

	appt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appt))
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.AppointmentFilters{
		Status: c.Query("status"),
		Date:   c.Query("date"),
	}
	if raw := c.Query("clinic_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic id"))
			return
		}
		filters.ClinicID = id
	}
	if raw := c.Query("case_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid case id"))
			return
		}
		filters.CaseID = id
	}
	if raw := c.Query("patient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient id"))
			return
		}
		filters.PatientID = id
	}

	appts, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appts))
}

func (h *Handler) ListMine(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user id"))
		return
	}

	appts, err := h.service.ListOwn(c.Request.Context(), userID)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appts))
}

func (h *Handler) CancelMine(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user id"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment id"))
		return
	}

	if err := h.service.CancelOwn(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, apptService.ErrInvalidTransition) {
			c.JSON(http.StatusUnprocessableEntity, handler.NewErrorResponse(err.Error()))
			return
		}
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"status": model.AppointmentStatusCancelled}))
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Completed Cancelled Missed"`
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment id"))
		return
	}
	personnelID, err := middleware.PersonnelID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("no staff profile for user"))
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), personnelID, id, req.Status); err != nil {
		if errors.Is(err, apptService.ErrInvalidTransition) {
			c.JSON(http.StatusUnprocessableEntity, handler.NewErrorResponse(err.Error()))
			return
		}
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"status": req.Status}))
}
