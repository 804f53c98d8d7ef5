package shops

import "time"

// Shop is one installed store, keyed by its myshopify domain.
type Shop struct {
	ID          uint    `gorm:"primaryKey"`
	Domain      string  `gorm:"not null;uniqueIndex:idx_shops_domain"`
	AccessToken *string `gorm:"column:access_token"`
	Scope       string

	Active bool `gorm:"not null;default:false"`

	// TokenVersion increments whenever a stored token is invalidated, so
	// anything still holding the old token can be told apart from the
	// current install.
	TokenVersion int `gorm:"not null;default:1"`

	InstalledAt   *time.Time
	UninstalledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Shop) HasToken() bool {
	return s.AccessToken != nil && *s.AccessToken != ""
}
