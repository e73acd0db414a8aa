package bidding

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"paintingauction/internal/apperrors"
	"paintingauction/internal/auth"
	"paintingauction/internal/services/auction"
)

// MinIncrement is the fixed step over the leading bid: one cent.
var MinIncrement = decimal.New(1, -2)

// Admission is everything the rule needs to judge one proposed bid on a lot.
type Admission struct {
	Status    auction.Status
	StartsAt  time.Time
	EndsAt    time.Time
	InAuction bool

	FloorPrice decimal.Decimal
	// Highest is the leading amount on the lot, zero when there are no bids.
	Highest decimal.Decimal

	Amount decimal.Decimal
	Now    time.Time
}

// Decision is the threshold computed for an admission, returned on
// acceptance and rejection alike.
type Decision struct {
	Minimum decimal.Decimal
	Highest decimal.Decimal
}

// Evaluate applies the admission rule. Checks run in a fixed order:
// membership, live window, positive amount, minimum.
func Evaluate(a Admission) (Decision, error) {
	d := Decision{
		Minimum: MinimumRequired(a.FloorPrice, a.Highest),
		Highest: a.Highest,
	}

	if !a.InAuction {
		return d, apperrors.ErrPaintingNotInAuction
	}
	if !IsLive(a.Status, a.StartsAt, a.EndsAt, a.Now) {
		return d, apperrors.ErrAuctionNotLive
	}
	if !a.Amount.IsPositive() {
		return d, apperrors.ErrNonPositiveAmount
	}
	if a.Amount.LessThan(d.Minimum) {
		return d, &apperrors.BidTooLowError{
			Minimum: d.Minimum,
			Floor:   a.FloorPrice,
			Highest: a.Highest,
		}
	}
	return d, nil
}

// MinimumRequired is max(floor, highest+MinIncrement).
func MinimumRequired(floor, highest decimal.Decimal) decimal.Decimal {
	return decimal.Max(floor, highest.Add(MinIncrement))
}

// IsLive reports whether bids are accepted: status Live and now inside the
// closed window [start, end].
func IsLive(status auction.Status, start, end, now time.Time) bool {
	return status == auction.StatusLive && !now.Before(start) && !now.After(end)
}

// HighestAmount returns the largest amount among bids, zero if none.
func HighestAmount(bids []BidDTO) decimal.Decimal {
	highest := decimal.Zero
	for _, b := range bids {
		if b.Amount.GreaterThan(highest) {
			highest = b.Amount
		}
	}
	return highest
}

// LeadingBid returns the highest bid; among equal amounts the earliest placed
// one leads.
func LeadingBid(bids []BidDTO) (BidDTO, bool) {
	if len(bids) == 0 {
		return BidDTO{}, false
	}
	lead := bids[0]
	for _, b := range bids[1:] {
		switch {
		case b.Amount.GreaterThan(lead.Amount):
			lead = b
		case b.Amount.Equal(lead.Amount) && b.PlacedAt.Before(lead.PlacedAt):
			lead = b
		}
	}
	return lead, true
}

// SortLeaderboard orders bids by amount, then placement time, then id, all
// descending.
func SortLeaderboard(bids []BidDTO) {
	sort.SliceStable(bids, func(i, j int) bool {
		if c := bids[i].Amount.Cmp(bids[j].Amount); c != 0 {
			return c > 0
		}
		if !bids[i].PlacedAt.Equal(bids[j].PlacedAt) {
			return bids[i].PlacedAt.After(bids[j].PlacedAt)
		}
		return bids[i].ID > bids[j].ID
	})
}

// CanDelete guards bid removal: nothing is removed from an ended auction,
// admins may remove any other bid, bidders only their own.
func CanDelete(actor auth.Identity, owner uuid.UUID, status auction.Status) error {
	if status == auction.StatusEnded {
		return apperrors.ErrImmutableAuction
	}
	if actor.IsAdmin() {
		return nil
	}
	if actor.UserID == uuid.Nil {
		return apperrors.ErrUnauthenticated
	}
	if !actor.Owns(owner) {
		return apperrors.ErrForbidden
	}
	return nil
}
