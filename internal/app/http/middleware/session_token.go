package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"jarvis-app/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionToken authenticates merchant requests with the embedded-app session
// token: an HS256 JWT signed with the app secret whose dest claim names the
// shop. The shop domain lands in the context under "shop".
func SessionToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := []byte(config.SHOPIFY_API_SECRET)
		if len(secret) == 0 {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "App secret not configured"})
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token malformed"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		dest, _ := claims["dest"].(string)
		shop := shopFromDest(dest)
		if shop == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token missing shop destination"})
			c.Abort()
			return
		}

		c.Set("shop", shop)
		c.Next()
	}
}

// shopFromDest extracts the shop domain from a dest claim like
// "https://example.myshopify.com".
func shopFromDest(dest string) string {
	if dest == "" {
		return ""
	}
	u, err := url.Parse(dest)
	if err != nil {
		return ""
	}
	if u.Host != "" {
		return u.Host
	}
	return strings.TrimSuffix(dest, "/")
}
