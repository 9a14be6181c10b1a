package pricing_test

import (
	"testing"

	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/core/domain/model/pricing"
	"eventrent/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func loc(t *testing.T, country, city string) kernel.Location {
	t.Helper()
	l, err := kernel.NewLocation(country, city)
	require.NoError(t, err)
	return l
}

func newTier(t *testing.T, l kernel.Location, minV, maxV, price string) *pricing.Tier {
	t.Helper()
	tier, err := pricing.NewTier(kernel.NewUUID(), l, dec(minV), dec(maxV), dec(price))
	require.NoError(t, err)
	return tier
}

func TestNewTier(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		tier := newTier(t, loc(t, "UAE", "Dubai"), "0", "10", "1000")

		require.NoError(t, tier.Validate())
		assert.True(t, tier.IsActive())
	})

	t.Run("empty range is rejected", func(t *testing.T) {
		_, err := pricing.NewTier(kernel.NewUUID(), loc(t, "UAE", "Dubai"), dec("10"), dec("10"), dec("1"))

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		_, err := pricing.NewTier(kernel.NewUUID(), loc(t, "UAE", "Dubai"), dec("0"), dec("10"), dec("-1"))

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestTier_Matches(t *testing.T) {
	tier := newTier(t, loc(t, "UAE", "Dubai"), "0", "10", "1000")

	tests := []struct {
		name   string
		l      kernel.Location
		volume string
		want   bool
	}{
		{name: "lower bound inclusive", l: loc(t, "UAE", "Dubai"), volume: "0", want: true},
		{name: "inside", l: loc(t, "uae", "dubai"), volume: "9.99", want: true},
		{name: "upper bound exclusive", l: loc(t, "UAE", "Dubai"), volume: "10", want: false},
		{name: "outside", l: loc(t, "UAE", "Dubai"), volume: "12", want: false},
		{name: "other city", l: loc(t, "UAE", "Sharjah"), volume: "5", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tier.Matches(tt.l, dec(tt.volume)))
		})
	}

	t.Run("inactive tier never matches", func(t *testing.T) {
		tier.Deactivate()

		assert.False(t, tier.Matches(loc(t, "UAE", "Dubai"), dec("5")))
	})
}

func TestTier_EnsureNoOverlap(t *testing.T) {
	dubai := loc(t, "UAE", "Dubai")
	existing := []*pricing.Tier{
		newTier(t, dubai, "0", "10", "1000"),
		newTier(t, dubai, "10", "20", "1800"),
	}

	t.Run("adjacent ranges do not overlap", func(t *testing.T) {
		candidate := newTier(t, loc(t, "uae", "DUBAI"), "20", "30", "2500")

		require.NoError(t, candidate.EnsureNoOverlap(existing))
	})

	t.Run("intersecting range is rejected", func(t *testing.T) {
		candidate := newTier(t, dubai, "15", "25", "2000")

		err := candidate.EnsureNoOverlap(existing)

		require.Error(t, err)
		assert.ErrorIs(t, err, pricing.ErrTierRangeOverlap)
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("other location is independent", func(t *testing.T) {
		candidate := newTier(t, loc(t, "UAE", "*"), "0", "100", "900")

		require.NoError(t, candidate.EnsureNoOverlap(existing))
	})

	t.Run("inactive tiers are ignored", func(t *testing.T) {
		candidate := newTier(t, dubai, "5", "15", "1200")
		candidate.Deactivate()

		require.NoError(t, candidate.EnsureNoOverlap(existing))
	})

	t.Run("a tier does not overlap itself", func(t *testing.T) {
		require.NoError(t, existing[0].EnsureNoOverlap(existing))
	})
}

func TestTier_Update(t *testing.T) {
	tier := newTier(t, loc(t, "UAE", "Dubai"), "0", "10", "1000")

	require.NoError(t, tier.Update(dec("0"), dec("12"), dec("1100.456"), true))
	assert.Equal(t, "12", tier.VolumeMax().String())
	assert.Equal(t, "1100.46", tier.BasePrice().StringFixed(2))

	err := tier.Update(dec("5"), dec("1"), dec("1"), true)
	require.Error(t, err)
	assert.Equal(t, "12", tier.VolumeMax().String(), "failed update leaves the tier untouched")
}
