package billing

import (
	"time"

	"gorm.io/gorm"
)

// CartAbandonmentLog is an append-only record of discount codes handed out to
// storefront sessions. It backs the one-code-per-session-per-hour limit.
type CartAbandonmentLog struct {
	ID                 string `gorm:"primaryKey"` // uuid
	ShopDomain         string `gorm:"not null;index:idx_cart_logs_shop_session"`
	SessionID          string `gorm:"not null;index:idx_cart_logs_shop_session"`
	DiscountCode       string
	DiscountPercentage float64
	IssuedAt           time.Time `gorm:"not null"`
}

// RecentDiscount returns the log row issued to (shop, session) inside the
// trailing window, or nil when the session is clear to receive a new code.
func RecentDiscount(db *gorm.DB, shopDomain, sessionID string, window time.Duration) (*CartAbandonmentLog, error) {
	var entry CartAbandonmentLog
	err := db.Where("shop_domain = ? AND session_id = ? AND issued_at > ?",
		shopDomain, sessionID, time.Now().Add(-window)).
		Order("issued_at DESC").
		First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}
