package casefile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ang3lito/rabiesresq/internal/handler"
	"github.com/Ang3lito/rabiesresq/internal/middleware"
	"github.com/Ang3lito/rabiesresq/internal/model"
	casenoteService "github.com/Ang3lito/rabiesresq/internal/service/casenote"
	prescreeningService "github.com/Ang3lito/rabiesresq/internal/service/prescreening"
	vaccinationService "github.com/Ang3lito/rabiesresq/internal/service/vaccination"
)

// Handler serves both sides of a case: the patient-facing intake and
// the staff-facing case file.
type Handler struct {
	prescreening *prescreeningService.Service
	vaccination  *vaccinationService.Service
	notes        *casenoteService.Service
}

func NewHandler(prescreening *prescreeningService.Service, vaccination *vaccinationService.Service,
	notes *casenoteService.Service) *Handler {
	return &Handler{
		prescreening: prescreening,
		vaccination:  vaccination,
		notes:        notes,
	}
}

// RegisterPatientRoutes mounts intake and own-case routes. Mount
// behind authentication with the patient role.
func (h *Handler) RegisterPatientRoutes(r *gin.RouterGroup) {
	cases := r.Group("/cases")
	{
		cases.POST("", h.SubmitIntake)
		cases.GET("/mine", h.ListOwnCases)
	}
}

// RegisterStaffRoutes mounts the clinical case-file routes. Mount
// behind authentication with the clinic personnel role and
// ResolvePersonnel.
func (h *Handler) RegisterStaffRoutes(r *gin.RouterGroup) {
	cases := r.Group("/cases")
	{
		cases.GET("", h.ListCases)
		cases.GET("/:id", h.GetCase)
		cases.GET("/lookup/:code", h.LookupByReferenceCode)
		cases.POST("/:id/close", h.CloseCase)
		cases.POST("/:id/notes", h.AddNote)
		cases.GET("/:id/notes", h.ListNotes)
		cases.POST("/:id/vaccinations", h.RecordDose)
		cases.GET("/:id/vaccinations", h.ListDoses)
	}
}

type intakeRequest struct {
	ClinicID string `json:"clinic_id" binding:"required,uuid"`
	model.PreScreeningSubmission
}

func (h *Handler) SubmitIntake(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user id"))
		return
	}

	var req intakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic id"))
		return
	}

	result, err := h.prescreening.SubmitIntake(c.Request.Context(), userID, clinicID, &req.PreScreeningSubmission)
	if err != nil {
		if errors.Is(err, prescreeningService.ErrNoPatientProfile) {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("no patient profile for user"))
			return
		}
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(result))
}

func (h *Handler) ListOwnCases(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user id"))
		return
	}

	cases, err := h.prescreening.ListCasesForUser(c.Request.Context(), userID)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(cases))
}

func (h *Handler) ListCases(c *gin.Context) {
	filters := &model.CaseFilters{
		RiskLevel: c.Query("risk_level"),
		Status:    c.Query("status"),
	}
	if raw := c.Query("clinic_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic id"))
			return
		}
		filters.ClinicID = id
	}
	if raw := c.Query("patient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient id"))
			return
		}
		filters.PatientID = id
	}

	cases, err := h.prescreening.ListCases(c.Request.Context(), filters)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(cases))
}

func (h *Handler) GetCase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid case id"))
		return
	}

	file, err := h.prescreening.GetCase(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(file))
}

func (h *Handler) LookupByReferenceCode(c *gin.Context) {
	file, err := h.prescreening.LookupByReferenceCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(file))
}

func (h *Handler) CloseCase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid case id"))
		return
	}
	personnelID, err := middleware.PersonnelID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("no staff profile for user"))
		return
	}

	if err := h.prescreening.CloseCase(c.Request.Context(), personnelID, id); err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"status": model.CaseStatusClosed}))
}

func (h *Handler) AddNote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid case id"))
		return
	}
	userID, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user id"))
		return
	}
	personnelID, err := middleware.PersonnelID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("no staff profile for user"))
		return
	}

	var req model.CreateCaseNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	note, err := h.notes.Append(c.Request.Context(), userID, personnelID, id, req.Note)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(note))
}

func (h *Handler) ListNotes(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid case id"))
		return
	}

	notes, err := h.notes.List(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(notes))
}

func (h *Handler) RecordDose(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid case id"))
		return
	}
	personnelID, err := middleware.PersonnelID(c)
	if err != nil {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("no staff profile for user"))
		return
	}

	var req model.CreateVaccinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rec, err := h.vaccination.RecordDose(c.Request.Context(), personnelID, id, &req)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(rec))
}

func (h *Handler) ListDoses(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid case id"))
		return
	}

	recs, err := h.vaccination.Schedule(c.Request.Context(), id)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(recs))
}
