package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// WidgetCORS attaches permissive CORS headers on every widget-facing
// response, error paths included, since the widget runs inside arbitrary
// storefront origins.
func WidgetCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Session-Id")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
