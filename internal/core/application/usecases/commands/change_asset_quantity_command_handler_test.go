package commands_test

import (
	"testing"

	"eventrent/internal/core/application/usecases/commands"
	"eventrent/internal/core/domain/model/asset"
	"eventrent/internal/core/domain/model/kernel"
	"eventrent/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func changeQuantity(f *fixture, assetID kernel.UUID, qty int) error {
	f.t.Helper()
	cmd, err := commands.NewChangeAssetQuantityCommand(assetID, qty)
	require.NoError(f.t, err)
	return commands.NewChangeAssetQuantityCommandHandler(inventoryFactory{f.uow}, f.engine, f.clock).Handle(f.ctx, cmd)
}

func TestChangeAssetQuantity(t *testing.T) {
	f := newFixture(t)
	chair := f.addAsset("Chair", 10)
	orderID := f.submit(commands.CartItem{AssetID: chair.ID(), Quantity: 6})
	f.quote(orderID)
	require.NoError(t, f.confirm(orderID))

	t.Run("growing is always allowed", func(t *testing.T) {
		require.NoError(t, changeQuantity(f, chair.ID(), 12))
		assert.Equal(t, 12, chair.TotalQuantity())
	})

	t.Run("shrinking down to the booked peak is allowed", func(t *testing.T) {
		require.NoError(t, changeQuantity(f, chair.ID(), 6))
		assert.Equal(t, 6, chair.TotalQuantity())
	})

	t.Run("shrinking below the booked peak is rejected", func(t *testing.T) {
		err := changeQuantity(f, chair.ID(), 5)

		assert.ErrorIs(t, err, asset.ErrQuantityBelowBooked)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, 6, chair.TotalQuantity())
	})
}

func TestNewChangeAssetQuantityCommand_Invalid(t *testing.T) {
	_, err := commands.NewChangeAssetQuantityCommand(kernel.NewUUID(), 0)

	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
