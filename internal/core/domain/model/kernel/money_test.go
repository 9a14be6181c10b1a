package kernel_test

import (
	"testing"

	"eventrent/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "1250", want: "1250"},
		{in: "10.005", want: "10.01"},
		{in: "10.004", want: "10"},
		{in: "-10.005", want: "-10.01"},
		{in: "0.125", want: "0.13"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := kernel.RoundMoney(decimal.RequireFromString(tt.in))

			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestPercentOf(t *testing.T) {
	got := kernel.PercentOf(decimal.NewFromInt(1000), decimal.NewFromInt(25))
	assert.Equal(t, "250.00", got.StringFixed(2))

	got = kernel.PercentOf(decimal.RequireFromString("333.33"), decimal.RequireFromString("12.5"))
	assert.Equal(t, "41.67", got.StringFixed(2))
}
