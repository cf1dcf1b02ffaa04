// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/swasthikkulal/parking-backend/internal/analytics"
	"github.com/swasthikkulal/parking-backend/internal/auth"
	"github.com/swasthikkulal/parking-backend/internal/sessions"
	"github.com/swasthikkulal/parking-backend/internal/shared/config"
	"github.com/swasthikkulal/parking-backend/internal/shared/database"
	"github.com/swasthikkulal/parking-backend/internal/slots"
	"github.com/swasthikkulal/parking-backend/pkg/cache"
	"github.com/swasthikkulal/parking-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config         *config.Config
	db             *database.DB
	log            *logger.Logger
	cacheService   cache.Service
	eventPublisher sessions.EventPublisher
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, log *logger.Logger) *Router {
	return &Router{
		config: cfg,
		db:     db,
		log:    log,
	}
}

// SetCacheService injects the cache service shared by all features
func (r *Router) SetCacheService(cacheService cache.Service) {
	r.cacheService = cacheService
}

// SetEventPublisher injects the session event producer
func (r *Router) SetEventPublisher(publisher sessions.EventPublisher) {
	r.eventPublisher = publisher
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupSlotRoutes(api)
		r.setupSessionRoutes(api)
		r.setupAnalyticsRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "parking-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "parking-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures admin authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config, r.log)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, authController)
}

// setupSlotRoutes configures slot registry routes
func (r *Router) setupSlotRoutes(rg *gin.RouterGroup) {
	slotRepo := slots.NewRepository(r.db.GetPostgreSQL())
	slotService := slots.NewService(slotRepo, r.log)
	if r.cacheService != nil {
		slotService.SetCacheService(r.cacheService)
	}
	slotController := slots.NewController(slotService)

	slots.SetupSlotRoutes(rg, slotController)
}

// setupSessionRoutes configures booking and session lifecycle routes
func (r *Router) setupSessionRoutes(rg *gin.RouterGroup) {
	sessionRepo := sessions.NewRepository(r.db.GetPostgreSQL())
	slotRepo := slots.NewRepository(r.db.GetPostgreSQL())
	sessionService := sessions.NewService(sessionRepo, slotRepo, r.config.Parking, r.log)
	if r.cacheService != nil {
		sessionService.SetCacheService(r.cacheService)
	}
	if r.eventPublisher != nil {
		sessionService.SetEventPublisher(r.eventPublisher)
	}
	sessionController := sessions.NewController(sessionService)

	sessions.SetupSessionRoutes(rg, sessionController)
}

// setupAnalyticsRoutes configures dashboard and reporting routes
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsRepo := analytics.NewRepository(r.db.GetPostgreSQL())
	analyticsService := analytics.NewService(analyticsRepo)
	if r.cacheService != nil {
		analyticsService.SetCacheService(r.cacheService)
	}
	analyticsController := analytics.NewController(analyticsService)

	analytics.SetupAnalyticsRoutes(rg, analyticsController)
}
