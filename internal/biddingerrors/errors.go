package biddingerrors

import "errors"

// Account errors
var (
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Auction and bid errors
var (
	ErrAuctionNotFound = errors.New("auction not found or ended")
	ErrDuplicateBid    = errors.New("user has already placed a bid on this auction")
	ErrBidTooLow       = errors.New("bid must be higher than current bid")
)

// business logic errors
var (
	ErrInvalidBid     = errors.New("invalid bid")
	ErrInvalidRequest = errors.New("invalid request")
)

// ErrStorageFailure wraps any backing-store error not covered above
var ErrStorageFailure = errors.New("storage failure")
