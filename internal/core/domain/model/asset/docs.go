// Package asset holds the Asset aggregate: a company-owned physical item type
// with a unit count, an inspection condition and the refurbishment estimate
// that widens its blocked period when the condition is not green.
package asset
