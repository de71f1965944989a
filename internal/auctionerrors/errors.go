package auctionerrors

import "errors"

// Storage-level errors
var (
	ErrAuctionNotFound    = errors.New("auction not found")
	ErrAuctionExists      = errors.New("auction already exists")
	ErrStalePrice         = errors.New("auction price changed since read")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Business logic errors
var (
	ErrInvalidAuction = errors.New("invalid auction")
	ErrInvalidBid     = errors.New("invalid bid")
	ErrInvalidImage   = errors.New("invalid image record")
	ErrBidTooLow      = errors.New("bid amount too low")
	ErrContention     = errors.New("bid retry budget exhausted")
	ErrInvalidFilter  = errors.New("invalid filter bounds")
)

// Messaging errors
var (
	ErrDeliveryFailed = errors.New("event delivery failed")
)
