package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vigilohq/vigilo/internal/app"
	iauth "github.com/vigilohq/vigilo/internal/auth"
	"github.com/vigilohq/vigilo/internal/handlers"
	"github.com/vigilohq/vigilo/internal/middleware"
	"github.com/vigilohq/vigilo/internal/provisioning"
	"github.com/vigilohq/vigilo/internal/services"
)

// serviceSet bundles the domain services built once per router.
type serviceSet struct {
	audit      *services.AuditService
	users      *services.UserService
	guards     *services.GuardService
	training   *services.TrainingService
	sites      *services.SiteService
	attendance *services.AttendanceService
	incidents  *services.IncidentService
	visits     *services.VisitService
	payroll    *services.PayrollService
	compliance *services.ComplianceService
	navigation *services.NavigationService
}

func buildServices(db *gorm.DB) (*serviceSet, error) {
	audit, err := services.NewAuditService(db)
	if err != nil {
		return nil, err
	}
	users, err := services.NewUserService(db, audit)
	if err != nil {
		return nil, err
	}
	guards, err := services.NewGuardService(db, audit)
	if err != nil {
		return nil, err
	}
	training, err := services.NewTrainingService(db, audit)
	if err != nil {
		return nil, err
	}
	sites, err := services.NewSiteService(db, audit)
	if err != nil {
		return nil, err
	}
	attendance, err := services.NewAttendanceService(db, audit)
	if err != nil {
		return nil, err
	}
	incidents, err := services.NewIncidentService(db, audit)
	if err != nil {
		return nil, err
	}
	visits, err := services.NewVisitService(db, audit)
	if err != nil {
		return nil, err
	}
	payroll, err := services.NewPayrollService(db, audit)
	if err != nil {
		return nil, err
	}
	compliance, err := services.NewComplianceService(db)
	if err != nil {
		return nil, err
	}
	navigation, err := services.NewNavigationService(db)
	if err != nil {
		return nil, err
	}

	return &serviceSet{
		audit:      audit,
		users:      users,
		guards:     guards,
		training:   training,
		sites:      sites,
		attendance: attendance,
		incidents:  incidents,
		visits:     visits,
		payroll:    payroll,
		compliance: compliance,
		navigation: navigation,
	}, nil
}

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, cfg *app.Config) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	svc, err := buildServices(db)
	if err != nil {
		return nil, err
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	registerHealthRoutes(r, cfg)

	// Public onboarding route
	provisioner, err := provisioning.NewProvisioner(db, svc.audit)
	if err != nil {
		return nil, err
	}
	registrationHandler := handlers.NewRegistrationHandler(provisioner)
	r.POST("/api/agencies/register", registrationHandler.Register)

	authHandler := handlers.NewAuthHandler(svc.users, jwt)

	// Public auth routes
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes
	api := r.Group("/api")
	api.Use(middleware.Auth(jwt))

	// Authenticated auth routes
	api.GET("/auth/me", authHandler.Me)
	api.POST("/auth/change-password", authHandler.ChangePassword)

	registerGuardRoutes(api, svc)
	registerSiteRoutes(api, svc)
	registerAttendanceRoutes(api, svc)
	registerIncidentRoutes(api, svc)
	registerVisitRoutes(api, svc)
	registerPayrollRoutes(api, svc)
	registerComplianceRoutes(api, svc)
	registerNavigationRoutes(api, svc)
	registerUserRoutes(api, svc)
	registerAuditRoutes(api, svc)

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
