package commands_test

import (
	"testing"

	"eventrent/internal/core/application/usecases/commands"
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTier(f *fixture, loc kernel.Location, lo, hi int64, price string) (kernel.UUID, error) {
	f.t.Helper()
	cmd, err := commands.NewCreatePricingTierCommand(loc, decimal.NewFromInt(lo), decimal.NewFromInt(hi), decimal.RequireFromString(price))
	require.NoError(f.t, err)
	return commands.NewCreatePricingTierCommandHandler(pricingFactory{f.uow}).Handle(f.ctx, cmd)
}

func TestCreatePricingTier(t *testing.T) {
	f := newFixture(t)
	abuDhabi, err := kernel.NewLocation("UAE", "Abu Dhabi")
	require.NoError(t, err)

	id, err := createTier(f, abuDhabi, 0, 5, "500")
	require.NoError(t, err)

	tier, err := f.uow.tiers.Get(f.ctx, id)
	require.NoError(t, err)
	assert.True(t, tier.IsActive())
	assert.Equal(t, "500.00", tier.BasePrice().StringFixed(2))
	assert.Equal(t, []string{"UAE"}, f.uow.tiers.locked, "the country is locked before the overlap check")
}

func TestCreatePricingTier_OverlapRejected(t *testing.T) {
	f := newFixture(t)
	// The fixture already covers Dubai [0, 100).
	_, err := createTier(f, f.dubai, 50, 150, "2000")

	assert.ErrorIs(t, err, pricing.ErrTierRangeOverlap)
	assert.Len(t, f.uow.tiers.rows, 1)
}

func TestCreatePricingTier_AdjacentAndWildcardAllowed(t *testing.T) {
	f := newFixture(t)
	anyCity, err := kernel.NewLocation("UAE", kernel.WildcardCity)
	require.NoError(t, err)

	_, err = createTier(f, f.dubai, 100, 200, "2000")
	require.NoError(t, err)
	_, err = createTier(f, anyCity, 0, 100, "900")
	require.NoError(t, err)

	assert.Len(t, f.uow.tiers.rows, 3)
}

func TestUpdatePricingTier(t *testing.T) {
	f := newFixture(t)
	upper, err := createTier(f, f.dubai, 100, 200, "2000")
	require.NoError(t, err)
	handler := commands.NewUpdatePricingTierCommandHandler(pricingFactory{f.uow})

	t.Run("growing into a neighbour is rejected", func(t *testing.T) {
		cmd, err := commands.NewUpdatePricingTierCommand(upper, decimal.NewFromInt(90), decimal.NewFromInt(200), decimal.NewFromInt(2000), true)
		require.NoError(t, err)

		assert.ErrorIs(t, handler.Handle(f.ctx, cmd), pricing.ErrTierRangeOverlap)
	})

	t.Run("inactive tiers never conflict", func(t *testing.T) {
		cmd, err := commands.NewUpdatePricingTierCommand(upper, decimal.NewFromInt(90), decimal.NewFromInt(200), decimal.NewFromInt(1800), false)
		require.NoError(t, err)

		require.NoError(t, handler.Handle(f.ctx, cmd))
		tier, err := f.uow.tiers.Get(f.ctx, upper)
		require.NoError(t, err)
		assert.False(t, tier.IsActive())
		assert.Equal(t, "1800.00", tier.BasePrice().StringFixed(2))
	})

	t.Run("unknown tier", func(t *testing.T) {
		cmd, err := commands.NewUpdatePricingTierCommand(kernel.NewUUID(), decimal.Zero, decimal.NewFromInt(1), decimal.NewFromInt(1), true)
		require.NoError(t, err)

		assert.Error(t, handler.Handle(f.ctx, cmd))
	})
}
