package plans

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type seedPlan struct {
	Name     string
	Price    float64
	Cycle    string
	Quota    int
	Features []string
}

var defaultCatalog = []seedPlan{
	{Name: "Free", Price: 0, Cycle: CycleMonthly, Quota: 50,
		Features: []string{"basic_chat"}},
	{Name: "Starter", Price: 9.99, Cycle: CycleMonthly, Quota: 500,
		Features: []string{"basic_chat", "product_recommendations"}},
	{Name: "Pro", Price: 29.99, Cycle: CycleMonthly, Quota: 2000,
		Features: []string{"basic_chat", "product_recommendations", "cart_abandonment"}},
	{Name: "Unlimited", Price: 59.99, Cycle: CycleMonthly, Quota: UnlimitedQuota,
		Features: []string{"basic_chat", "product_recommendations", "cart_abandonment", "priority_support"}},
}

// SeedDefaultPlans inserts the default tier catalog. Existing plans are left
// untouched, so it is safe to call repeatedly.
func SeedDefaultPlans(db *gorm.DB) (created int, err error) {
	for _, sp := range defaultCatalog {
		var existing Plan
		if err := db.Where("name = ?", sp.Name).First(&existing).Error; err == nil {
			continue
		}

		features, err := json.Marshal(sp.Features)
		if err != nil {
			return created, err
		}

		plan := Plan{
			Name:         sp.Name,
			Price:        sp.Price,
			BillingCycle: sp.Cycle,
			MessageQuota: sp.Quota,
			Features:     datatypes.JSON(features),
			Active:       true,
		}
		if err := db.Create(&plan).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// CheapestPaidPlan is the fallback when a billing webhook references a
// subscription we have no local record for.
func CheapestPaidPlan(db *gorm.DB) (*Plan, error) {
	var plan Plan
	err := db.Where("active = ? AND price > 0", true).
		Order("price ASC").
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}
