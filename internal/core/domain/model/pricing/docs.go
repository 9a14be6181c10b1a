// Package pricing holds the PricingTier aggregate: the administrator-managed
// lookup row that turns a venue location and an order volume into a base
// logistics price.
//
// Active tiers of one (country, city) pair never overlap. Location names are
// compared case-insensitively and city "*" is the country-wide fallback.
package pricing
