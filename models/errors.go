package models

import "errors"

// Store-boundary errors. Handlers map these to status codes.
var (
	ErrNotFound            = errors.New("record not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrListingUnavailable  = errors.New("listing is no longer available")
	ErrOfferTooLow         = errors.New("offer must be at least 90% of the listing price")
	ErrOfferLimit          = errors.New("offer limit reached for this listing")
	ErrOwnListing          = errors.New("cannot act on your own listing")
	ErrOfferNotPending     = errors.New("offer is not pending")
	ErrCancelWindowClosed  = errors.New("order can no longer be cancelled")
	ErrInsufficientBalance = errors.New("insufficient withdrawable balance")
	ErrInvalidOTP          = errors.New("invalid or expired OTP")
	ErrNotYours            = errors.New("record belongs to another user")
	ErrBadTransition       = errors.New("invalid status transition")
)
