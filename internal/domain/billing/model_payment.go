package billing

import "time"

const (
	PaymentKindRecurring = "recurring"
	PaymentKindOneTime   = "one_time"
)

// Payment is one charge as reported by the billing provider. ChargeID
// uniqueness is what keeps webhook re-deliveries from double-crediting
// message packs.
type Payment struct {
	ID         uint   `gorm:"primaryKey"`
	ShopDomain string `gorm:"not null;index:idx_payments_shop_domain"`
	ChargeID   string `gorm:"not null;uniqueIndex:idx_payments_charge_id"`
	Name       string
	Amount     float64
	Status     string
	Kind       string `gorm:"not null;default:'recurring'"`
	CreatedAt  time.Time
}
