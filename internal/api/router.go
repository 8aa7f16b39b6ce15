package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/jlbernardo/barangaylink/internal/app"
	iauth "github.com/jlbernardo/barangaylink/internal/auth"
	"github.com/jlbernardo/barangaylink/internal/handlers"
	"github.com/jlbernardo/barangaylink/internal/middleware"
	"github.com/jlbernardo/barangaylink/internal/services"
)

// NewRouter builds the Gin engine, wires middleware, and registers all routes.
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

	activity, err := services.NewActivityService(db)
	if err != nil {
		return nil, err
	}
	notifications, err := services.NewNotificationService(db)
	if err != nil {
		return nil, err
	}
	ledger, err := services.NewTrackingLedger(db)
	if err != nil {
		return nil, err
	}
	requests, err := services.NewRequestService(db, ledger, notifications, activity)
	if err != nil {
		return nil, err
	}
	users, err := services.NewUserService(db, jwt, activity)
	if err != nil {
		return nil, err
	}
	catalog, err := services.NewCatalogService(db)
	if err != nil {
		return nil, err
	}
	announcements, err := services.NewAnnouncementService(db, activity)
	if err != nil {
		return nil, err
	}
	officials, err := services.NewOfficialService(db, activity)
	if err != nil {
		return nil, err
	}
	contact, err := services.NewContactService(db, notifications)
	if err != nil {
		return nil, err
	}
	dashboard, err := services.NewDashboardService(db)
	if err != nil {
		return nil, err
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	r.NoRoute(middleware.NotFoundHandler)

	registerHealthRoutes(r, cfg, db)

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := cfg.Monitoring.Prometheus.Endpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	requireAuth := middleware.Auth(jwt)
	requireStaff := middleware.RequireRole("staff", "admin")

	api := r.Group("/api")

	registerAuthRoutes(api, handlers.NewAuthHandler(users), requireAuth)
	registerPublicRoutes(api,
		handlers.NewCatalogHandler(catalog),
		handlers.NewAnnouncementHandler(announcements),
		handlers.NewOfficialHandler(officials),
		handlers.NewContactHandler(contact),
	)
	registerRequestRoutes(api, handlers.NewRequestHandler(requests), requireAuth, requireStaff)
	registerNotificationRoutes(api, handlers.NewNotificationHandler(notifications), requireAuth)
	registerAdminRoutes(api,
		handlers.NewDashboardHandler(dashboard),
		handlers.NewActivityHandler(activity),
		handlers.NewAnnouncementHandler(announcements),
		handlers.NewOfficialHandler(officials),
		handlers.NewContactHandler(contact),
		requireAuth, requireStaff,
	)

	return r, nil
}
