package api

import (
	"github.com/gin-gonic/gin"

	"github.com/smartlink-app/smartlink/internal/repository"
	"github.com/smartlink-app/smartlink/internal/services"
)

// Services bundles the dependencies the HTTP layer needs.
type Services struct {
	Store     *repository.Store
	Links     *services.LinkService
	Analytics *services.AnalyticsService
	Auth      *services.AuthService
	Chat      *services.ChatService
	BaseURL   string
}

// SetupRoutes configures all Gin API routes and injects the necessary
// dependencies. The top-level /:shortCode route and the legacy
// /api/links/track/:shortCode route share one handler so the
// redirect/analytics policy lives in a single place.
func SetupRoutes(router *gin.Engine, svcs Services) {
	// Health check, used by load balancers. Database connectivity is
	// probed on every call instead of being cached in a flag.
	router.GET("/health", HealthCheckHandler(svcs.Store))

	authRequired := RequireAuth(svcs.Auth)
	adminRequired := RequireAdmin(svcs.Auth)

	auth := router.Group("/api/auth")
	{
		auth.POST("/signup", SignUpHandler(svcs.Auth))
		auth.POST("/signin", SignInHandler(svcs.Auth))
	}

	links := router.Group("/api/links")
	{
		links.GET("", authRequired, ListLinksHandler(svcs.Links))
		links.POST("/create", authRequired, CreateLinkHandler(svcs.Links))
		links.GET("/:id", authRequired, GetLinkHandler(svcs.Links))
		links.PUT("/:id", authRequired, UpdateLinkHandler(svcs.Links))
		links.DELETE("/:id", authRequired, DeleteLinkHandler(svcs.Links))
		links.GET("/:id/qrcode", authRequired, QRCodeHandler(svcs.Links, svcs.BaseURL))

		// Public tracking endpoint, kept for legacy clients.
		links.GET("/track/:shortCode", RedirectHandler(svcs.Links))
	}

	analytics := router.Group("/api/analytics", authRequired)
	{
		analytics.GET("/dashboard/stats", DashboardStatsHandler(svcs.Analytics))
		analytics.GET("/:linkId", LinkAnalyticsHandler(svcs.Analytics))
	}

	chat := router.Group("/api/chat")
	{
		chat.POST("", authRequired, ChatHandler(svcs.Chat))
		// Legacy route with an explicit user ID and no auth.
		chat.POST("/:userId", LegacyChatHandler(svcs.Chat))
	}

	router.POST("/api/ingest", IngestHandler(svcs.Chat))

	admin := router.Group("/api/admin", authRequired, adminRequired)
	{
		admin.GET("/users", AdminListUsersHandler(svcs.Auth))
		admin.GET("/users/:id", AdminUserDetailHandler(svcs.Auth, svcs.Links))
		admin.GET("/links", AdminListLinksHandler(svcs.Auth, svcs.Links))
	}

	// Redirection route at root level; this is where short URLs resolve.
	router.GET("/:shortCode", RedirectHandler(svcs.Links))
}
