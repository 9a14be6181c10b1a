package commands

import "errors"

var (
	// ErrEventStartInPast rejects a cart whose event starts before today.
	ErrEventStartInPast = errors.New("event start date is in the past")
	// ErrAssetIsDeleted rejects a cart line pointing at a soft-deleted asset.
	ErrAssetIsDeleted = errors.New("asset is no longer offered")
	// ErrNoMatchingTier is the cause of a standard pricing approval for an
	// order no active tier covers; such orders need a manual adjustment.
	ErrNoMatchingTier = errors.New("no pricing tier matches the order")
)
