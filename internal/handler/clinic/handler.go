package clinic

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ang3lito/rabiesresq/internal/handler"
	"github.com/Ang3lito/rabiesresq/internal/middleware"
	"github.com/Ang3lito/rabiesresq/internal/model"
	clinicService "github.com/Ang3lito/rabiesresq/internal/service/clinic"
)

type Handler struct {
	service *clinicService.Service
}

func NewHandler(service *clinicService.Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the unauthenticated clinic directory.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/clinics", h.ListClinics)
}

// RegisterStaffRoutes mounts staff self-service routes. Mount behind
// authentication with the clinic personnel role.
func (h *Handler) RegisterStaffRoutes(r *gin.RouterGroup) {
	r.GET("/me", h.MyStaffProfile)
}

// RegisterAdminRoutes mounts clinic and account management. Mount
// behind authentication with the system admin role.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.GET("/me", h.MyAdminProfile)
	clinics := r.Group("/clinics")
	{
		clinics.POST("", h.CreateClinic)
		clinics.GET("/:id", h.GetClinic)
		clinics.PUT("/:id", h.UpdateClinic)
		clinics.DELETE("/:id", h.DeleteClinic)
		clinics.GET("/:id/staff", h.ListStaff)
	}
	r.POST("/staff", h.CreateStaff)
	r.DELETE("/staff/:id", h.RemoveStaff)
	r.POST("/admins", h.CreateAdmin)
}

func (h *Handler) MyStaffProfile(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user id"))
		return
	}

	profile, err := h.service.StaffProfile(c.Request.Context(), userID)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(profile))
}

func (h *Handler) MyAdminProfile(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user id"))
		return
	}

	profile, err := h.service.AdminProfile(c.Request.Context(), userID)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(profile))
}

func (h *Handler) CreateClinic(c *gin.Context) {
	var req model.CreateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	clinic, err := h.service.CreateClinic(c.Request.Context(), &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(clinic))
}

func (h *Handler) GetClinic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic id"))
		return
	}

	clinic, err := h.service.GetClinic(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(clinic))
}

func (h *Handler) ListClinics(c *gin.Context) {
	clinics, err := h.service.ListClinics(c.Request.Context())
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(clinics))
}

func (h *Handler) UpdateClinic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic id"))
		return
	}

	var req model.CreateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	clinic, err := h.service.GetClinic(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}
	clinic.Name = req.Name
	clinic.Address = req.Address
	clinic.ContactNumber = req.ContactNumber

	if err := h.service.UpdateClinic(c.Request.Context(), clinic); err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(clinic))
}

func (h *Handler) DeleteClinic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic id"))
		return
	}

	if err := h.service.DeleteClinic(c.Request.Context(), id); err != nil {
		if errors.Is(err, clinicService.ErrClinicInUse) {
			c.JSON(http.StatusConflict, handler.NewErrorResponse(err.Error()))
			return
		}
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"deleted": true}))
}

func (h *Handler) CreateStaff(c *gin.Context) {
	var req model.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	personnel, err := h.service.CreateStaff(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, clinicService.ErrDuplicate):
			c.JSON(http.StatusConflict, handler.NewErrorResponse(err.Error()))
		case errors.Is(err, clinicService.ErrUnknownClinic):
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		default:
			handler.WriteError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(personnel))
}

func (h *Handler) ListStaff(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic id"))
		return
	}

	staff, err := h.service.ListStaff(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(staff))
}

func (h *Handler) RemoveStaff(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid personnel id"))
		return
	}

	if err := h.service.RemoveStaff(c.Request.Context(), id); err != nil {
		if errors.Is(err, clinicService.ErrStaffInUse) {
			c.JSON(http.StatusConflict, handler.NewErrorResponse(err.Error()))
			return
		}
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"deleted": true}))
}

func (h *Handler) CreateAdmin(c *gin.Context) {
	var req model.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	admin, err := h.service.CreateAdmin(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, clinicService.ErrDuplicate) {
			c.JSON(http.StatusConflict, handler.NewErrorResponse(err.Error()))
			return
		}
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(admin))
}
