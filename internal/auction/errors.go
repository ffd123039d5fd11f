package auction

import "errors"

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrAuctionNotStarted = errors.New("auction has not started")
	ErrAuctionEnded      = errors.New("auction has ended")
	ErrBidTooLow         = errors.New("bid amount too low")
	ErrAuctionActive     = errors.New("auction is already active")
	ErrInvalidInput      = errors.New("invalid input")
)
