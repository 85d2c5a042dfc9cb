package audit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ang3lito/rabiesresq/internal/handler"
	"github.com/Ang3lito/rabiesresq/internal/model"
	auditService "github.com/Ang3lito/rabiesresq/internal/service/audit"
)

type Handler struct {
	service *auditService.Service
}

func NewHandler(service *auditService.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the audit trail reader. Mount behind
// authentication with the system admin role.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/audit", h.List)
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.AuditFilters{
		EntityType: c.Query("entity_type"),
		Action:     c.Query("action"),
	}
	if raw := c.Query("personnel_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid personnel id"))
			return
		}
		filters.PersonnelID = id
	}
	if raw := c.Query("case_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid case id"))
			return
		}
		filters.CaseID = id
	}
	if raw := c.Query("entity_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid entity id"))
			return
		}
		filters.EntityID = id
	}

	entries, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		handler.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(entries))
}
