package widget

import (
	"time"

	"gorm.io/gorm"
)

// WidgetSettings holds the storefront widget's presentation config for one
// shop, created lazily with defaults on first read or write.
type WidgetSettings struct {
	ID         uint   `gorm:"primaryKey"`
	ShopDomain string `gorm:"not null;uniqueIndex:idx_widget_settings_shop_domain"`

	Enabled        bool   `gorm:"not null;default:true"`
	Position       string `gorm:"not null;default:'bottom-right'"`
	PrimaryColor   string `gorm:"not null;default:'#4F46E5'"`
	BotName        string `gorm:"not null;default:'Jarvis'"`
	WelcomeMessage string

	CartAbandonmentEnabled  bool    `gorm:"not null;default:false"`
	CartAbandonmentDiscount float64 `gorm:"not null;default:10"` // percent
	CartAbandonmentDelay    int     `gorm:"not null;default:30"` // minutes
	DiscountMessageTemplate string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func Defaults(shopDomain string) WidgetSettings {
	return WidgetSettings{
		ShopDomain:              shopDomain,
		Enabled:                 true,
		Position:                "bottom-right",
		PrimaryColor:            "#4F46E5",
		BotName:                 "Jarvis",
		WelcomeMessage:          "Hi! How can I help you today?",
		CartAbandonmentEnabled:  false,
		CartAbandonmentDiscount: 10,
		CartAbandonmentDelay:    30,
		DiscountMessageTemplate: "Here is {discount_percentage}% off at {shop_name}: use code {discount_code} at checkout!",
	}
}

// GetOrCreate loads the shop's settings, inserting the default row on first
// access.
func GetOrCreate(db *gorm.DB, shopDomain string) (*WidgetSettings, error) {
	var settings WidgetSettings
	err := db.Where("shop_domain = ?", shopDomain).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	settings = Defaults(shopDomain)
	if err := db.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}
