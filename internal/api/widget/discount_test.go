package widget

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jarvis-app/database"
	"jarvis-app/internal/domain/billing"
	domainwidget "jarvis-app/internal/domain/widget"
	"jarvis-app/internal/infra/chatbot"
	"jarvis-app/internal/infra/proxycache"
	"jarvis-app/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discountRouter(upstream string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(chatbot.New(upstream, 5*time.Second), proxycache.New(time.Minute))
	r := gin.New()
	r.POST("/apps/widget/discount", h.IssueDiscount)
	return r
}

func fakeDiscountService(t *testing.T, code string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discounts", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"discount_code":%q}`, code)
	}))
}

func postDiscount(r *gin.Engine, shop, session string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(map[string]string{"session_id": session, "shop": shop})
	req := httptest.NewRequest(http.MethodPost, "/apps/widget/discount", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func enableCartAbandonment(t *testing.T, shop string) {
	t.Helper()
	settings, err := domainwidget.GetOrCreate(database.DB, shop)
	require.NoError(t, err)
	settings.CartAbandonmentEnabled = true
	settings.CartAbandonmentDiscount = 15
	require.NoError(t, database.DB.Save(settings).Error)
}

func TestIssueDiscountHappyPath(t *testing.T) {
	testutil.OpenTestDB(t)
	shop := "cart.myshopify.com"
	enableCartAbandonment(t, shop)

	srv := fakeDiscountService(t, "SAVE15")
	defer srv.Close()

	w := postDiscount(discountRouter(srv.URL), shop, "session-1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SAVE15")
	assert.Contains(t, w.Body.String(), "15")

	var entry billing.CartAbandonmentLog
	require.NoError(t, database.DB.Where("shop_domain = ?", shop).First(&entry).Error)
	assert.Equal(t, "SAVE15", entry.DiscountCode)
	assert.Equal(t, "session-1", entry.SessionID)
}

func TestIssueDiscountRateLimitedWithinWindow(t *testing.T) {
	db := testutil.OpenTestDB(t)
	shop := "cart2.myshopify.com"
	enableCartAbandonment(t, shop)

	require.NoError(t, db.Create(&billing.CartAbandonmentLog{
		ID:           uuid.NewString(),
		ShopDomain:   shop,
		SessionID:    "session-2",
		DiscountCode: "FIRST10",
		IssuedAt:     time.Now().Add(-30 * time.Minute),
	}).Error)

	srv := fakeDiscountService(t, "SECOND10")
	defer srv.Close()

	w := postDiscount(discountRouter(srv.URL), shop, "session-2")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "FIRST10", "the prior code is returned")
}

func TestIssueDiscountAllowedAfterWindow(t *testing.T) {
	db := testutil.OpenTestDB(t)
	shop := "cart3.myshopify.com"
	enableCartAbandonment(t, shop)

	require.NoError(t, db.Create(&billing.CartAbandonmentLog{
		ID:           uuid.NewString(),
		ShopDomain:   shop,
		SessionID:    "session-3",
		DiscountCode: "OLD10",
		IssuedAt:     time.Now().Add(-61 * time.Minute),
	}).Error)

	srv := fakeDiscountService(t, "FRESH10")
	defer srv.Close()

	w := postDiscount(discountRouter(srv.URL), shop, "session-3")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "FRESH10")
}

func TestIssueDiscountFeatureDisabled(t *testing.T) {
	testutil.OpenTestDB(t)
	shop := "nocart.myshopify.com"
	// Defaults leave cart abandonment off.
	_, err := domainwidget.GetOrCreate(database.DB, shop)
	require.NoError(t, err)

	w := postDiscount(discountRouter("http://unused"), shop, "session-4")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIssueDiscountMissingParams(t *testing.T) {
	testutil.OpenTestDB(t)

	r := discountRouter("http://unused")
	req := httptest.NewRequest(http.MethodPost, "/apps/widget/discount", bytes.NewReader([]byte(`{"shop":"x.myshopify.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIssueDiscountUpstreamFailure(t *testing.T) {
	testutil.OpenTestDB(t)
	shop := "broken.myshopify.com"
	enableCartAbandonment(t, shop)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	w := postDiscount(discountRouter(srv.URL), shop, "session-5")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
