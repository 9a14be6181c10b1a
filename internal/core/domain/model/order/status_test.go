package order_test

import (
	"testing"

	"eventrent/internal/core/domain/model/order"
	"eventrent/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.Draft, order.Submitted, order.PricingReview, order.PendingApproval, order.Quoted,
		order.Confirmed, order.Declined, order.InPreparation, order.ReadyForDelivery, order.InTransit,
		order.Delivered, order.InUse, order.AwaitingReturn, order.Closed,
	}
}

func allFinancialStatuses() []order.FinancialStatus {
	return []order.FinancialStatus{
		order.PendingQuote, order.QuoteSent, order.QuoteAccepted, order.PendingInvoice, order.Invoiced, order.Paid,
	}
}

func TestIsValidTransition(t *testing.T) {
	valid := map[order.Status][]order.Status{
		order.Draft:            {order.Submitted},
		order.Submitted:        {order.PricingReview},
		order.PricingReview:    {order.Quoted, order.PendingApproval},
		order.PendingApproval:  {order.Quoted},
		order.Quoted:           {order.Confirmed, order.Declined},
		order.Confirmed:        {order.InPreparation},
		order.InPreparation:    {order.ReadyForDelivery},
		order.ReadyForDelivery: {order.InTransit},
		order.InTransit:        {order.Delivered},
		order.Delivered:        {order.InUse},
		order.InUse:            {order.AwaitingReturn},
		order.AwaitingReturn:   {order.Closed},
	}

	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			want := false
			for _, next := range valid[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, order.IsValidTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatusesRejectEverything(t *testing.T) {
	for _, terminal := range []order.Status{order.Closed, order.Declined} {
		assert.True(t, terminal.IsTerminal())
		for _, to := range append(allStatuses(), order.UnknownStatus) {
			assert.False(t, order.IsValidTransition(terminal, to), "%s -> %s", terminal, to)
		}
	}
	assert.False(t, order.Quoted.IsTerminal())
	assert.False(t, order.UnknownStatus.IsTerminal())
}

func TestIsValidFinancialTransition(t *testing.T) {
	valid := map[order.FinancialStatus][]order.FinancialStatus{
		order.PendingQuote:   {order.QuoteSent},
		order.QuoteSent:      {order.QuoteAccepted, order.PendingQuote},
		order.QuoteAccepted:  {order.PendingInvoice},
		order.PendingInvoice: {order.Invoiced},
		order.Invoiced:       {order.Paid},
	}

	for _, from := range allFinancialStatuses() {
		for _, to := range allFinancialStatuses() {
			want := false
			for _, next := range valid[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, order.IsValidFinancialTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.True(t, order.Paid.IsTerminal())
}

func TestStatus_ParseAndValidate(t *testing.T) {
	for _, s := range allStatuses() {
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
		require.NoError(t, s.Validate())
	}

	_, err := order.ParseStatus("SHIPPED")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, order.Status(99).Validate(), errs.ErrValueIsInvalid)
	assert.ErrorIs(t, order.UnknownStatus.Validate(), errs.ErrValueIsInvalid)
	assert.Equal(t, "UNKNOWN", order.Status(99).String())

	for _, s := range allFinancialStatuses() {
		parsed, err := order.ParseFinancialStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err = order.ParseFinancialStatus("REFUNDED")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_HoldsBookings(t *testing.T) {
	holding := map[order.Status]bool{
		order.Confirmed: true, order.InPreparation: true, order.ReadyForDelivery: true,
		order.InTransit: true, order.Delivered: true, order.InUse: true, order.AwaitingReturn: true,
	}
	for _, s := range allStatuses() {
		assert.Equal(t, holding[s], s.HoldsBookings(), s.String())
	}
}

func TestNotificationFor(t *testing.T) {
	tests := []struct {
		from, to order.Status
		want     order.NotificationType
		ok       bool
	}{
		{order.Draft, order.Submitted, order.NotificationOrderSubmitted, true},
		{order.Submitted, order.PricingReview, "", false},
		{order.PricingReview, order.Quoted, order.NotificationQuoteSent, true},
		{order.PricingReview, order.PendingApproval, order.NotificationA2AdjustedPricing, true},
		{order.PendingApproval, order.Quoted, order.NotificationQuoteSent, true},
		{order.Quoted, order.Confirmed, order.NotificationQuoteApproved, true},
		{order.Quoted, order.Declined, order.NotificationQuoteDeclined, true},
		{order.Confirmed, order.InPreparation, "", false},
		{order.ReadyForDelivery, order.InTransit, order.NotificationInTransit, true},
		{order.Delivered, order.InUse, "", false},
		{order.AwaitingReturn, order.Closed, order.NotificationOrderClosed, true},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			got, ok := order.NotificationFor(tt.from, tt.to)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	n, ok := order.FinancialNotificationFor(order.Invoiced, order.Paid)
	assert.True(t, ok)
	assert.Equal(t, order.NotificationPaymentConfirmed, n)

	_, ok = order.FinancialNotificationFor(order.QuoteSent, order.QuoteAccepted)
	assert.False(t, ok)
}
