package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"jarvis-app/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func adminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", RequireAdminToken(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func TestAdminTokenAcceptsCorrectToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("super-token"), bcrypt.MinCost)
	require.NoError(t, err)
	config.ADMIN_TOKEN_HASH = string(hash)

	r := adminRouter()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("X-Admin-Token", "super-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminTokenRejectsWrongToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("super-token"), bcrypt.MinCost)
	require.NoError(t, err)
	config.ADMIN_TOKEN_HASH = string(hash)

	r := adminRouter()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("X-Admin-Token", "guess")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminTokenLockedWhenUnconfigured(t *testing.T) {
	config.ADMIN_TOKEN_HASH = ""

	r := adminRouter()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("X-Admin-Token", "anything")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
