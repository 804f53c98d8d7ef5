package routes

import (
	adminapi "jarvis-app/internal/api/admin"
	authapi "jarvis-app/internal/api/auth"
	billingapi "jarvis-app/internal/api/billing"
	plansapi "jarvis-app/internal/api/plans"
	settingsapi "jarvis-app/internal/api/settings"
	"jarvis-app/internal/api/shopifywebhook"
	widgetapi "jarvis-app/internal/api/widget"
	"jarvis-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, widgetHandler *widgetapi.Handler, billingHandler *billingapi.Handler) {
	r.POST("/webhooks", shopifywebhook.HandleWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/auth", authapi.Install)
	r.GET("/auth/callback", authapi.Callback)

	// Merchant app (embedded admin), session-token authenticated
	api := r.Group("/api")
	api.Use(middleware.SessionToken(), middleware.SanitizeInput())
	api.GET("/settings", settingsapi.GetSettings)
	api.POST("/settings", settingsapi.SaveSettings)
	api.GET("/subscription", billingapi.GetSubscription)
	api.GET("/access", billingapi.GetAccess)
	api.GET("/payments", billingapi.GetPaymentHistory)
	api.GET("/plans", plansapi.ListPlans)
	api.POST("/subscribe", billingHandler.Subscribe)

	// Storefront widget, open CORS
	wg := r.Group("/apps/widget")
	wg.Use(middleware.WidgetCORS())
	wg.GET("/config", widgetHandler.GetConfig)
	wg.POST("/chat", widgetHandler.Chat)
	wg.POST("/session", widgetHandler.Session)
	wg.POST("/recommendations", widgetHandler.Recommendations)
	wg.POST("/discount", widgetHandler.IssueDiscount)

	// Operator surface
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAdminToken())
	admin.GET("/shops", adminapi.ListShops)
	admin.POST("/actions", adminapi.HandleAction)
	admin.POST("/seed-plans", plansapi.SeedPlans)
}
