// Package services holds the domain services of the rental core.
//
// The package includes:
//   - AvailabilityEngine: blocked-period arithmetic and quantity checks over a
//     given set of bookings, configured with an injected BufferPolicy
//   - BookingLedger: the transactional writer and reader of bookings, built
//     on the engine and on repositories bound to one unit of work
//   - PricingEngine: tier lookup with wildcard-city fallback and margin layering
//
// Failed checks and bookings surface as *AvailabilityError, which lists the
// shortfall of every asset and unwraps to ErrInsufficientAvailability.
package services
