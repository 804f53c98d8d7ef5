package testutil

import (
	"os"
	"testing"

	"jarvis-app/database"
	"jarvis-app/internal/domain/billing"
	"jarvis-app/internal/domain/plans"
	"jarvis-app/internal/domain/shops"
	"jarvis-app/internal/domain/widget"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB connects to the database named by TEST_DB_URL, migrates the
// schema, wipes all app tables, and wires database.DB for handler code. Tests
// that need a database skip when the variable is unset.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_URL")
	if dsn == "" {
		t.Skip("TEST_DB_URL not set, skipping database test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	for _, model := range []interface{}{
		&billing.CartAbandonmentLog{},
		&billing.Payment{},
		&billing.Subscription{},
		&widget.WidgetSettings{},
		&plans.Plan{},
		&shops.Shop{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			t.Fatalf("failed to clean test table: %v", err)
		}
	}

	database.DB = db
	return db
}

// ActiveSubscription inserts a plan and an ACTIVE subscription for the shop.
func ActiveSubscription(t *testing.T, db *gorm.DB, shopDomain string, quota, used int) *billing.Subscription {
	t.Helper()

	plan := plans.Plan{
		Name:         "Test Plan " + shopDomain,
		Price:        9.99,
		BillingCycle: plans.CycleMonthly,
		MessageQuota: quota,
		Active:       true,
	}
	if err := db.Create(&plan).Error; err != nil {
		t.Fatalf("failed to create plan: %v", err)
	}

	sub := billing.Subscription{
		ShopDomain:    shopDomain,
		PlanID:        plan.ID,
		Status:        billing.StatusActive,
		MessagesUsed:  used,
		MessagesLimit: quota,
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("failed to create subscription: %v", err)
	}
	return &sub
}
