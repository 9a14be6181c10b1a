// Package order implements the Order aggregate and the two state machines it
// composes.
//
// Status is the fulfillment lifecycle, from DRAFT through quoting and
// confirmation to CLOSED (or DECLINED). FinancialStatus is the commercial
// lifecycle, from PENDING_QUOTE to PAID. Both are plain adjacency tables
// queried with IsValidTransition and IsValidFinancialTransition; terminal
// states have no outgoing edges.
//
// The machines move independently with one coupling: an order can only enter
// IN_PREPARATION or any later fulfillment state once its financial status has
// reached QUOTE_ACCEPTED or beyond.
//
// Each transition appends an immutable HistoryEntry. Edges that matter to
// stakeholders also record a Notification (see NotificationFor), which the
// application layer dispatches after the surrounding transaction commits.
//
// OrderItems are snapshots of the asset at submission time; totals and
// bookings derive from them rather than from the live catalogue.
package order
