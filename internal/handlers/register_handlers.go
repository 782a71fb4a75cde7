package handlers

import (
	"github.com/borport/borport_backend/cmd/docs"
	"github.com/borport/borport_backend/internal/core/domain"
	portssvc "github.com/borport/borport_backend/internal/core/ports/services"
	"github.com/borport/borport_backend/internal/middleware"
	"github.com/borport/borport_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// loginLimiter may be nil to disable rate limiting of the sign-in endpoints.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	resolver *middleware.SessionResolver,
	loginLimiter *limiter.Limiter,
) {
	r.GET("/health", getHealth)

	api := r.Group("/api")

	registerAuthRoutes(api, cfg, services, loginLimiter)

	postHandler := newGuidePostHandler(services.GuidePost, services.Availability, services.Review)
	registerPublicGuidePostRoutes(api, postHandler)

	setupAuthenticatedRoutes(api, services, resolver, postHandler, cfg)

	setupSwaggerRoutes(r, cfg)

	if cfg.StaticDir != "" {
		r.NoRoute(spaHandler(cfg.StaticDir))
	}
}

// setupAuthenticatedRoutes configures everything behind the session check and
// delegates to the role scoped groups.
func setupAuthenticatedRoutes(
	api *gin.RouterGroup,
	services *portssvc.ServiceContainer,
	resolver *middleware.SessionResolver,
	postHandler *guidePostHandler,
	cfg *config.Config,
) {
	authed := api.Group("", middleware.AuthMiddleware(resolver))

	authHandler := NewAuthHandler(services.Auth, services.User, cfg)
	authed.GET("/me", authHandler.Me)

	bookingHandler := newBookingHandler(services.Booking)
	financeHandler := newFinanceHandler(services.Finance)
	applicationHandler := newApplicationHandler(services.Application)

	registerGuidePostRoutes(authed, postHandler)
	registerBookingRoutes(authed, bookingHandler)
	registerNotificationRoutes(authed, newNotificationHandler(services.Notification))
	registerApplicationRoutes(authed, applicationHandler, middleware.RequireRole(domain.RoleUser))

	guide := authed.Group("/guide", middleware.RequireRole(domain.RoleGuide))
	registerGuideListingRoutes(guide, postHandler)
	registerGuideFinanceRoutes(guide, financeHandler)

	admin := authed.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	registerAdminBookingRoutes(admin, bookingHandler)
	registerAdminFinanceRoutes(admin, financeHandler)
	registerAdminApplicationRoutes(admin, applicationHandler)
	registerReportingRoutes(admin, newReportingHandler(services.Reporting))
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
