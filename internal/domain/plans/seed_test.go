package plans_test

import (
	"testing"

	"jarvis-app/internal/domain/plans"
	"jarvis-app/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaultPlansIsIdempotent(t *testing.T) {
	db := testutil.OpenTestDB(t)

	created, err := plans.SeedDefaultPlans(db)
	require.NoError(t, err)
	assert.Equal(t, 4, created)

	created, err = plans.SeedDefaultPlans(db)
	require.NoError(t, err)
	assert.Zero(t, created, "second seed inserts nothing")

	var count int64
	db.Model(&plans.Plan{}).Count(&count)
	assert.Equal(t, int64(4), count)
}

func TestCheapestPaidPlanSkipsFreeTier(t *testing.T) {
	db := testutil.OpenTestDB(t)
	_, err := plans.SeedDefaultPlans(db)
	require.NoError(t, err)

	plan, err := plans.CheapestPaidPlan(db)
	require.NoError(t, err)
	assert.Equal(t, "Starter", plan.Name)
	assert.Greater(t, plan.Price, 0.0)
}

func TestUnlimitedSentinel(t *testing.T) {
	p := plans.Plan{MessageQuota: plans.UnlimitedQuota}
	assert.True(t, p.Unlimited())

	capped := plans.Plan{MessageQuota: 500}
	assert.False(t, capped.Unlimited())
}
