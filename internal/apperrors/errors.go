package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Lookup errors
var (
	ErrNotFound             = errors.New("not found")
	ErrPaintingNotInAuction = errors.New("painting is not part of this auction")
)

// Bid admission errors
var (
	ErrAuctionNotLive    = errors.New("bidding is not open for this auction")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrBidTooLow         = errors.New("bid amount too low")
	ErrImmutableAuction  = errors.New("auction has ended and can no longer be modified")
)

// Identity errors
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// Generic request errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

// BidTooLowError reports the threshold a rejected bid failed to reach.
type BidTooLowError struct {
	Minimum decimal.Decimal
	Floor   decimal.Decimal
	Highest decimal.Decimal
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid must be >= %s (minBid: %s, current: %s)",
		e.Minimum.StringFixed(2), e.Floor.StringFixed(2), e.Highest.StringFixed(2))
}

func (e *BidTooLowError) Is(target error) bool { return target == ErrBidTooLow }

// kindError carries a caller facing message while matching one of the
// sentinels above through errors.Is.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// Invalid returns an ErrInvalidInput carrying the given message.
func Invalid(format string, args ...any) error {
	return &kindError{kind: ErrInvalidInput, msg: fmt.Sprintf(format, args...)}
}

// Conflict returns an ErrConflict carrying the given message.
func Conflict(format string, args ...any) error {
	return &kindError{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

// Unauthenticated returns an ErrUnauthenticated carrying the given message.
func Unauthenticated(format string, args ...any) error {
	return &kindError{kind: ErrUnauthenticated, msg: fmt.Sprintf(format, args...)}
}

// Forbidden returns an ErrForbidden carrying the given message.
func Forbidden(format string, args ...any) error {
	return &kindError{kind: ErrForbidden, msg: fmt.Sprintf(format, args...)}
}

// NotFound returns an ErrNotFound naming the missing entity.
func NotFound(entity string) error {
	return &kindError{kind: ErrNotFound, msg: entity + " not found"}
}

var sentinels = []error{
	ErrNotFound, ErrPaintingNotInAuction, ErrAuctionNotLive, ErrNonPositiveAmount,
	ErrBidTooLow, ErrImmutableAuction, ErrUnauthenticated, ErrForbidden,
	ErrInvalidInput, ErrConflict,
}

// Message returns the caller facing part of err, dropping the context that
// was wrapped around it on the way up.
func Message(err error) string {
	var tooLow *BidTooLowError
	if errors.As(err, &tooLow) {
		return tooLow.Error()
	}
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.msg
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return err.Error()
}
