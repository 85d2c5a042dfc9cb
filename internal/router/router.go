package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Ang3lito/rabiesresq/config"
	"github.com/Ang3lito/rabiesresq/internal/handler"
	apptHandler "github.com/Ang3lito/rabiesresq/internal/handler/appointment"
	auditHandler "github.com/Ang3lito/rabiesresq/internal/handler/audit"
	authHandler "github.com/Ang3lito/rabiesresq/internal/handler/auth"
	casefileHandler "github.com/Ang3lito/rabiesresq/internal/handler/casefile"
	clinicHandler "github.com/Ang3lito/rabiesresq/internal/handler/clinic"
	contentHandler "github.com/Ang3lito/rabiesresq/internal/handler/content"
	guidelineHandler "github.com/Ang3lito/rabiesresq/internal/handler/guideline"
	notificationHandler "github.com/Ang3lito/rabiesresq/internal/handler/notification"
	patientHandler "github.com/Ang3lito/rabiesresq/internal/handler/patient"
	"github.com/Ang3lito/rabiesresq/internal/middleware"
	"github.com/Ang3lito/rabiesresq/internal/model"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Base         *handler.Handler
	Auth         *authHandler.Handler
	Patient      *patientHandler.Handler
	CaseFile     *casefileHandler.Handler
	Appointment  *apptHandler.Handler
	Clinic       *clinicHandler.Handler
	Guideline    *guidelineHandler.Handler
	Notification *notificationHandler.Handler
	Audit        *auditHandler.Handler
	Content      *contentHandler.Handler
}

type Router struct {
	engine *gin.Engine
	auth   *middleware.AuthMiddleware
	h      Handlers
}

func NewRouter(auth *middleware.AuthMiddleware, h Handlers, cfg *config.Config, logger zerolog.Logger) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(),
		middleware.CORS(middleware.DefaultCORSConfig()),
	)

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		engine.Use(limiter.RateLimit())
	}

	return &Router{engine: engine, auth: auth, h: h}
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	r.setupHealthCheck(api)

	// Public routes
	r.h.Auth.RegisterRoutes(api)
	r.h.Clinic.RegisterPublicRoutes(api)

	// Authenticated routes
	authed := api.Group("")
	authed.Use(r.auth.Authenticate())
	r.h.Notification.RegisterRoutes(authed)
	r.h.Content.RegisterPatientRoutes(authed)

	// Patient routes
	patients := authed.Group("")
	patients.Use(r.auth.RequireRole(model.RolePatient))
	r.h.Patient.RegisterRoutes(patients)
	r.h.CaseFile.RegisterPatientRoutes(patients)
	r.h.Appointment.RegisterPatientRoutes(patients)

	// Clinic staff routes
	staff := authed.Group("/clinic")
	staff.Use(
		r.auth.RequireRole(model.RoleClinicPersonnel),
		r.auth.ResolvePersonnel(),
	)
	r.h.CaseFile.RegisterStaffRoutes(staff)
	r.h.Appointment.RegisterRoutes(staff)
	r.h.Guideline.RegisterRoutes(staff)
	r.h.Notification.RegisterStaffRoutes(staff)
	r.h.Content.RegisterStaffRoutes(staff)
	r.h.Clinic.RegisterStaffRoutes(staff)

	// System admin routes
	admin := authed.Group("/admin")
	admin.Use(r.auth.RequireRole(model.RoleSystemAdmin))
	r.h.Clinic.RegisterAdminRoutes(admin)
	r.h.Audit.RegisterRoutes(admin)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.Base.LivenessCheck)
		health.GET("/ready", r.h.Base.ReadinessCheck)
		health.GET("/metrics", r.h.Base.MetricsHandler)
	}
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
