package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jarvis-app/internal/domain/billing"
	"jarvis-app/internal/domain/plans"
	"jarvis-app/internal/domain/shops"
	"jarvis-app/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/actions", HandleAction)
	r.GET("/admin/shops", ListShops)
	return r
}

func postAction(r *gin.Engine, form string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/admin/actions", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCleanupShopAction(t *testing.T) {
	db := testutil.OpenTestDB(t)
	shop := "cleanup.myshopify.com"
	token := "shpat_token"
	now := time.Now()
	require.NoError(t, db.Create(&shops.Shop{
		Domain:       shop,
		AccessToken:  &token,
		Active:       true,
		TokenVersion: 3,
		InstalledAt:  &now,
	}).Error)
	testutil.ActiveSubscription(t, db, shop, 500, 5)

	w := postAction(adminRouter(), "action=cleanup-shop&shop="+shop)
	assert.Equal(t, http.StatusOK, w.Code)

	var got shops.Shop
	require.NoError(t, db.Where("domain = ?", shop).First(&got).Error)
	assert.False(t, got.Active)
	assert.Nil(t, got.AccessToken)
	assert.Equal(t, 4, got.TokenVersion, "forced cleanup bumps the token version")

	var subCount int64
	db.Model(&billing.Subscription{}).Where("shop_domain = ?", shop).Count(&subCount)
	assert.Zero(t, subCount)
}

func TestFixSubscriptionAction(t *testing.T) {
	db := testutil.OpenTestDB(t)
	shop := "drifted.myshopify.com"
	_, err := plans.SeedDefaultPlans(db)
	require.NoError(t, err)

	sub := testutil.ActiveSubscription(t, db, shop, 10, 10)
	require.NoError(t, db.Model(sub).Update("status", billing.StatusExpired).Error)

	w := postAction(adminRouter(), "action=fix-subscription&shop="+shop+"&plan=Pro")
	assert.Equal(t, http.StatusOK, w.Code)

	var got billing.Subscription
	require.NoError(t, db.Preload("Plan").Where("shop_domain = ?", shop).First(&got).Error)
	assert.Equal(t, billing.StatusActive, got.Status)
	assert.Equal(t, 0, got.MessagesUsed)
	assert.Equal(t, 2000, got.MessagesLimit)
	require.NotNil(t, got.Plan)
	assert.Equal(t, "Pro", got.Plan.Name)
}

func TestUnknownActionRejected(t *testing.T) {
	testutil.OpenTestDB(t)

	w := postAction(adminRouter(), "action=drop-tables&shop=x.myshopify.com")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListShops(t *testing.T) {
	db := testutil.OpenTestDB(t)
	require.NoError(t, db.Create(&shops.Shop{Domain: "a.myshopify.com", Active: true, TokenVersion: 1}).Error)
	testutil.ActiveSubscription(t, db, "a.myshopify.com", 500, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/shops", nil)
	adminRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a.myshopify.com")
	assert.Contains(t, w.Body.String(), `"messages_used":7`)
}
