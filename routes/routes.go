package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"slotbook/config"
	"slotbook/handlers"
	"slotbook/middleware"
	"slotbook/models"
	"slotbook/utils"
)

// RegisterProviderRoutes registers provider directory and availability endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		// Public reads; a token is accepted but not required.
		public := api.Group("")
		public.Use(middleware.SessionMiddleware(true))
		public.GET("", hb.ListProvidersHandler)
		public.GET("/:id/availability", hb.GetAvailabilityHandler)
		public.GET("/:id/slots", hb.GetSlotsHandler)
		public.GET("/:id/calendar", hb.GetCalendarHandler)

		// Only the provider may change their own availability.
		protected := api.Group("")
		protected.Use(middleware.SessionMiddleware(false), middleware.RequireRole(models.RoleProvider))
		protected.PUT("/:id/availability", hb.UpdateAvailabilityHandler)
	}
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterMetricsRoute exposes Prometheus metrics gathered from g.
func RegisterMetricsRoute(r *gin.Engine, g prometheus.Gatherer) {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, cfg config.Config, g prometheus.Gatherer) {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(
		utils.ErrorHandler(),
		middleware.RequestLogger(utils.GetLogger()),
		cors.New(corsCfg),
		middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin),
	)

	RegisterHealthRoute(r)
	RegisterMetricsRoute(r, g)
	RegisterProviderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
}
