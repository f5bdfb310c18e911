package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	ginprom "github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/solvikcrm/solvik_crm/cmd/docs"
	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/middleware"
	"github.com/solvikcrm/solvik_crm/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(ginprom.Handler()))

	r.GET("/", getHome)

	// Setup API v1 routes behind identity resolution and rate limiting
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		slog.Warn("Invalid RATE_LIMIT format, falling back to 100-M", slog.String("value", cfg.RateLimit))
		rate, _ = limiter.NewRateFromFormatted("100-M")
	}
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)

	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1",
		middleware.RateLimit(ipLimiter),
		middleware.AuthMiddleware(services.Identity),
	)

	// Delegate route registration to specific handlers, passing required services
	registerProfileRoutes(v1, services.Profile)
	registerTeamRoutes(v1, services.Team)
	registerCustomerRoutes(v1, services.Customer)
	registerCompanyRoutes(v1, services.Company)
	registerDealRoutes(v1, services.Deal)
	registerTaskRoutes(v1, services.Task)
	registerInteractionRoutes(v1, services.Interaction)
	registerActivityRoutes(v1, services.Activity)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
