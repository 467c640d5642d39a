package app

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/brightsteps/brightsteps-backend/internal/http/middleware"
	"github.com/brightsteps/brightsteps-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, h Handlers, mw Middleware) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("brightsteps-backend"))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	// Public
	router.GET("/healthcheck", h.Health.HealthCheck)
	router.POST("/register", h.Auth.Register)
	router.POST("/login", h.Auth.Login)

	// Protected
	protected := router.Group("/")
	protected.Use(mw.Auth.RequireAuth())

	// Children and catalog
	protected.POST("/children", h.Child.Create)
	protected.GET("/children", h.Child.List)
	protected.GET("/behavior-types", h.Child.ListBehaviorTypes)

	// Goals
	protected.POST("/children/:id/goal", h.Child.SetGoal)
	protected.GET("/children/:id/goal", h.Child.ActiveGoal)

	// Behavior events
	protected.POST("/children/:id/events", h.Event.Log)
	protected.GET("/children/:id/events", h.Event.ListWindow)

	// Coach cards and impression feed
	protected.GET("/children/:id/coach-cards", h.Coach.Cards)
	protected.POST("/coach-cards/:id/visible", h.Coach.Visible)
	protected.POST("/coach-cards/:id/hidden", h.Coach.Hidden)
	protected.POST("/coach-cards/:id/interaction", h.Coach.Interaction)

	return router
}
