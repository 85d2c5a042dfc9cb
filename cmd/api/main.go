package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Ang3lito/rabiesresq/config"
	"github.com/Ang3lito/rabiesresq/internal/email"
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
	"github.com/Ang3lito/rabiesresq/internal/repository/postgres"
	"github.com/Ang3lito/rabiesresq/internal/router"
	"github.com/Ang3lito/rabiesresq/internal/schema"
	apptService "github.com/Ang3lito/rabiesresq/internal/service/appointment"
	auditService "github.com/Ang3lito/rabiesresq/internal/service/audit"
	authService "github.com/Ang3lito/rabiesresq/internal/service/auth"
	casenoteService "github.com/Ang3lito/rabiesresq/internal/service/casenote"
	clinicService "github.com/Ang3lito/rabiesresq/internal/service/clinic"
	contentService "github.com/Ang3lito/rabiesresq/internal/service/content"
	notificationService "github.com/Ang3lito/rabiesresq/internal/service/notification"
	patientService "github.com/Ang3lito/rabiesresq/internal/service/patient"
	prescreeningService "github.com/Ang3lito/rabiesresq/internal/service/prescreening"
	vaccinationService "github.com/Ang3lito/rabiesresq/internal/service/vaccination"
	"github.com/Ang3lito/rabiesresq/pkg/auth"
	"github.com/Ang3lito/rabiesresq/pkg/logger"
	"github.com/Ang3lito/rabiesresq/pkg/messaging"
	redisBroker "github.com/Ang3lito/rabiesresq/pkg/messaging/redis"
	"github.com/Ang3lito/rabiesresq/pkg/metrics"
	"github.com/Ang3lito/rabiesresq/pkg/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(&logger.Config{
		Level:      logger.InfoLevel,
		TimeFormat: time.RFC3339,
	})
	zl := *appLogger.Zerolog()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := schema.Create(db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}

	m := metrics.New("rabiesresq")

	// Redis broker is optional; without it audit and notification
	// events simply are not published.
	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		broker, err = redisBroker.NewBroker(redisBroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, &zl)
		if err != nil {
			zl.Warn().Err(err).Msg("redis unavailable, event publishing disabled")
			broker = nil
		} else {
			defer broker.Close()
		}
	}

	var emailSvc email.Service = email.NoopService{}
	if cfg.SMTP.Host != "" {
		emailSvc = email.NewSMTPService(cfg.SMTP, cfg.BaseURL)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	clinicRepo := postgres.NewClinicRepository(db)
	personnelRepo := postgres.NewPersonnelRepository(db)
	adminRepo := postgres.NewAdminRepository(db)
	caseRepo := postgres.NewCaseRepository(db)
	guidelineRepo := postgres.NewGuidelineRepository(db)
	apptRepo := postgres.NewAppointmentRepository(db)
	vaccRepo := postgres.NewVaccinationRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	guidanceRepo := postgres.NewGuidanceRepository(db)

	// Services
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessExpiry:  time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
		RefreshExpiry: time.Duration(cfg.JWT.RefreshExpiryHours) * time.Hour,
	})
	hasher := security.NewBcryptHasher(12)

	auditSvc := auditService.NewService(auditRepo, broker, m, zl)
	authSvc := authService.NewService(userRepo, jwtSvc, hasher, emailSvc, zl)
	patientSvc := patientService.NewService(patientRepo, userRepo, hasher, zl)
	prescreeningSvc := prescreeningService.NewService(caseRepo, patientRepo, guidelineRepo,
		apptRepo, emailSvc, auditSvc, m, zl)
	apptSvc := apptService.NewService(apptRepo, caseRepo, patientRepo, auditSvc, m, zl)
	vaccSvc := vaccinationService.NewService(vaccRepo, caseRepo, auditSvc, m, zl)
	noteSvc := casenoteService.NewService(caseRepo, auditSvc)
	clinicSvc := clinicService.NewService(clinicRepo, personnelRepo, adminRepo, userRepo, hasher, zl)
	notificationSvc := notificationService.NewService(notificationRepo, zl)
	contentSvc := contentService.NewService(reportRepo, guidanceRepo, zl)

	// HTTP surface
	model.RegisterValidations()
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc, personnelRepo)
	handlers := router.Handlers{
		Base:         handler.NewHandler(db),
		Auth:         authHandler.NewHandler(authSvc),
		Patient:      patientHandler.NewHandler(patientSvc),
		CaseFile:     casefileHandler.NewHandler(prescreeningSvc, vaccSvc, noteSvc),
		Appointment:  apptHandler.NewHandler(apptSvc),
		Clinic:       clinicHandler.NewHandler(clinicSvc),
		Guideline:    guidelineHandler.NewHandler(prescreeningSvc),
		Notification: notificationHandler.NewHandler(notificationSvc),
		Audit:        auditHandler.NewHandler(auditSvc),
		Content:      contentHandler.NewHandler(contentSvc),
	}

	r := router.NewRouter(authMiddleware, handlers, cfg, zl)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zl.Info().Int("port", cfg.Server.Port).Msg("starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error().Err(err).Msg("forced shutdown")
	}
}
