package shopifywebhook

import (
	"fmt"
	"testing"
	"time"

	"jarvis-app/internal/domain/billing"
	"jarvis-app/internal/domain/plans"
	"jarvis-app/internal/domain/shops"
	"jarvis-app/internal/domain/widget"
	"jarvis-app/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subscriptionPayload(chargeID int64, status string) *subscriptionUpdatePayload {
	var p subscriptionUpdatePayload
	p.AppSubscription.AdminGraphqlAPIID = fmt.Sprintf("gid://shopify/AppSubscription/%d", chargeID)
	p.AppSubscription.Name = "Pro"
	p.AppSubscription.Status = status
	return &p
}

func purchasePayload(chargeID int64, name, status string) *oneTimePurchasePayload {
	var p oneTimePurchasePayload
	p.AppPurchaseOneTime.AdminGraphqlAPIID = fmt.Sprintf("gid://shopify/AppPurchaseOneTime/%d", chargeID)
	p.AppPurchaseOneTime.Name = name
	p.AppPurchaseOneTime.Status = status
	return &p
}

func TestSubscriptionActivationResetsUsage(t *testing.T) {
	db := testutil.OpenTestDB(t)
	shop := "pending.myshopify.com"
	sub := testutil.ActiveSubscription(t, db, shop, 500, 123)
	chargeID := "777"
	require.NoError(t, db.Model(sub).Updates(map[string]interface{}{
		"status":    billing.StatusPending,
		"charge_id": chargeID,
	}).Error)

	require.NoError(t, handleSubscriptionUpdate(shop, subscriptionPayload(777, "active")))

	var got billing.Subscription
	require.NoError(t, db.Where("shop_domain = ?", shop).First(&got).Error)
	assert.Equal(t, billing.StatusActive, got.Status)
	assert.Equal(t, 0, got.MessagesUsed)
	require.NotNil(t, got.CurrentPeriodEnd)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), *got.CurrentPeriodEnd, time.Minute)
}

func TestSubscriptionActiveRedeliveryKeepsUsage(t *testing.T) {
	db := testutil.OpenTestDB(t)
	shop := "stable.myshopify.com"
	sub := testutil.ActiveSubscription(t, db, shop, 500, 42)
	require.NoError(t, db.Model(sub).Update("charge_id", "888").Error)

	require.NoError(t, handleSubscriptionUpdate(shop, subscriptionPayload(888, "active")))

	var got billing.Subscription
	require.NoError(t, db.Where("shop_domain = ?", shop).First(&got).Error)
	assert.Equal(t, 42, got.MessagesUsed, "redelivered active update must not reset usage")
}

func TestSubscriptionCancellation(t *testing.T) {
	db := testutil.OpenTestDB(t)
	shop := "leaving.myshopify.com"
	sub := testutil.ActiveSubscription(t, db, shop, 500, 10)
	require.NoError(t, db.Model(sub).Update("charge_id", "999").Error)

	require.NoError(t, handleSubscriptionUpdate(shop, subscriptionPayload(999, "cancelled")))

	var got billing.Subscription
	require.NoError(t, db.Where("shop_domain = ?", shop).First(&got).Error)
	assert.Equal(t, billing.StatusCancelled, got.Status)
	assert.Equal(t, 10, got.MessagesUsed)
}

func TestSubscriptionFallbackCreation(t *testing.T) {
	db := testutil.OpenTestDB(t)
	shop := "newcomer.myshopify.com"
	_, err := plans.SeedDefaultPlans(db)
	require.NoError(t, err)

	require.NoError(t, handleSubscriptionUpdate(shop, subscriptionPayload(1234, "active")))

	var got billing.Subscription
	require.NoError(t, db.Preload("Plan").Where("shop_domain = ?", shop).First(&got).Error)
	assert.Equal(t, billing.StatusActive, got.Status)
	require.NotNil(t, got.Plan)
	assert.Equal(t, "Starter", got.Plan.Name, "fallback picks the cheapest paid plan")
}

func TestOneTimePurchaseCreditsMessagePack(t *testing.T) {
	db := testutil.OpenTestDB(t)
	shop := "buyer.myshopify.com"
	testutil.ActiveSubscription(t, db, shop, 500, 100)

	require.NoError(t, handleOneTimePurchase(shop, purchasePayload(11, "1000 Message Pack", "accepted")))

	var got billing.Subscription
	require.NoError(t, db.Where("shop_domain = ?", shop).First(&got).Error)
	assert.Equal(t, 1500, got.MessagesLimit)

	// Redelivery credits nothing: the payment row already exists.
	require.NoError(t, handleOneTimePurchase(shop, purchasePayload(11, "1000 Message Pack", "accepted")))
	require.NoError(t, db.Where("shop_domain = ?", shop).First(&got).Error)
	assert.Equal(t, 1500, got.MessagesLimit)

	var payments []billing.Payment
	require.NoError(t, db.Where("shop_domain = ?", shop).Find(&payments).Error)
	assert.Len(t, payments, 1)
}

func TestOneTimePurchaseIgnoresDeclined(t *testing.T) {
	db := testutil.OpenTestDB(t)
	shop := "declined.myshopify.com"
	testutil.ActiveSubscription(t, db, shop, 500, 0)

	require.NoError(t, handleOneTimePurchase(shop, purchasePayload(12, "1000 Message Pack", "declined")))

	var got billing.Subscription
	require.NoError(t, db.Where("shop_domain = ?", shop).First(&got).Error)
	assert.Equal(t, 500, got.MessagesLimit)
}

func TestAppUninstalledCleansUp(t *testing.T) {
	db := testutil.OpenTestDB(t)
	shop := "gone.myshopify.com"
	token := "shpat_secret"
	now := time.Now()
	require.NoError(t, db.Create(&shops.Shop{
		Domain:       shop,
		AccessToken:  &token,
		Active:       true,
		TokenVersion: 1,
		InstalledAt:  &now,
	}).Error)
	testutil.ActiveSubscription(t, db, shop, 500, 0)
	_, err := widget.GetOrCreate(db, shop)
	require.NoError(t, err)

	require.NoError(t, handleAppUninstalled(shop))

	var gotShop shops.Shop
	require.NoError(t, db.Where("domain = ?", shop).First(&gotShop).Error)
	assert.False(t, gotShop.Active)
	assert.Nil(t, gotShop.AccessToken)
	assert.Equal(t, 2, gotShop.TokenVersion)
	assert.NotNil(t, gotShop.UninstalledAt)

	var subCount, settingsCount int64
	db.Model(&billing.Subscription{}).Where("shop_domain = ?", shop).Count(&subCount)
	db.Model(&widget.WidgetSettings{}).Where("shop_domain = ?", shop).Count(&settingsCount)
	assert.Zero(t, subCount)
	assert.Zero(t, settingsCount)
}

func TestShopRedactPurgesEverything(t *testing.T) {
	db := testutil.OpenTestDB(t)
	shop := "redact.myshopify.com"
	require.NoError(t, db.Create(&shops.Shop{Domain: shop, Active: true, TokenVersion: 1}).Error)
	testutil.ActiveSubscription(t, db, shop, 500, 0)
	_, err := widget.GetOrCreate(db, shop)
	require.NoError(t, err)

	require.NoError(t, handleShopRedact(shop, &shopRedactPayload{ShopDomain: shop}))

	var shopCount int64
	db.Model(&shops.Shop{}).Where("domain = ?", shop).Count(&shopCount)
	assert.Zero(t, shopCount)
}
