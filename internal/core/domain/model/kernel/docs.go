// Package kernel provides the value objects shared by every aggregate of the
// rental core.
//
// The package includes:
//   - UUID: identifier wrapper that rejects the nil UUID
//   - Date and DateRange: whole calendar days in UTC with inclusive overlap
//   - Location: venue country and city, compared case-insensitively, with a
//     '*' wildcard city used by pricing tiers
//   - RoundMoney and PercentOf: two-decimal money arithmetic on shopspring/decimal
//
// Values are immutable and safe for concurrent use.
package kernel
