package order

import "eventrent/internal/core/domain/model/kernel"

// NotificationType tags a stakeholder-facing event. Delivery is external.
type NotificationType string

const (
	NotificationOrderSubmitted    NotificationType = "ORDER_SUBMITTED"
	NotificationQuoteSent         NotificationType = "QUOTE_SENT"
	NotificationA2AdjustedPricing NotificationType = "A2_ADJUSTED_PRICING"
	NotificationQuoteApproved     NotificationType = "QUOTE_APPROVED"
	NotificationQuoteDeclined     NotificationType = "QUOTE_DECLINED"
	NotificationReadyForDelivery  NotificationType = "READY_FOR_DELIVERY"
	NotificationInTransit         NotificationType = "IN_TRANSIT"
	NotificationDelivered         NotificationType = "DELIVERED"
	NotificationOrderClosed       NotificationType = "ORDER_CLOSED"
	NotificationInvoiceGenerated  NotificationType = "INVOICE_GENERATED"
	NotificationPaymentConfirmed  NotificationType = "PAYMENT_CONFIRMED"
	NotificationQuoteReminder     NotificationType = "QUOTE_REMINDER"
)

// Notification is an intent recorded by the aggregate and dispatched after commit.
type Notification struct {
	Type    NotificationType
	OrderID kernel.UUID
}

type statusEdge struct {
	from, to Status
}

type financialEdge struct {
	from, to FinancialStatus
}

// Edges missing from these maps are internal steps with no notification.
//
//nolint:gochecknoglobals // read-only lookup table
var statusNotifications = map[statusEdge]NotificationType{
	{Draft, Submitted}:                NotificationOrderSubmitted,
	{PricingReview, Quoted}:           NotificationQuoteSent,
	{PricingReview, PendingApproval}:  NotificationA2AdjustedPricing,
	{PendingApproval, Quoted}:         NotificationQuoteSent,
	{Quoted, Confirmed}:               NotificationQuoteApproved,
	{Quoted, Declined}:                NotificationQuoteDeclined,
	{InPreparation, ReadyForDelivery}: NotificationReadyForDelivery,
	{ReadyForDelivery, InTransit}:     NotificationInTransit,
	{InTransit, Delivered}:            NotificationDelivered,
	{AwaitingReturn, Closed}:          NotificationOrderClosed,
}

//nolint:gochecknoglobals // read-only lookup table
var financialNotifications = map[financialEdge]NotificationType{
	{PendingInvoice, Invoiced}: NotificationInvoiceGenerated,
	{Invoiced, Paid}:           NotificationPaymentConfirmed,
}

// NotificationFor returns the notification emitted by the status edge from -> to.
func NotificationFor(from, to Status) (NotificationType, bool) {
	n, ok := statusNotifications[statusEdge{from, to}]
	return n, ok
}

// FinancialNotificationFor returns the notification emitted by the financial edge from -> to.
func FinancialNotificationFor(from, to FinancialStatus) (NotificationType, bool) {
	n, ok := financialNotifications[financialEdge{from, to}]
	return n, ok
}
