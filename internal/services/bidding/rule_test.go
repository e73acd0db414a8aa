package bidding

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paintingauction/internal/apperrors"
	"paintingauction/internal/auth"
	"paintingauction/internal/services/auction"
)

var (
	windowStart = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)
	insideNow   = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func liveAdmission(floor, highest, amount string) Admission {
	return Admission{
		Status:     auction.StatusLive,
		StartsAt:   windowStart,
		EndsAt:     windowEnd,
		InAuction:  true,
		FloorPrice: dec(floor),
		Highest:    dec(highest),
		Amount:     dec(amount),
		Now:        insideNow,
	}
}

func TestEvaluate_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		admission   Admission
		wantErr     error
		wantMinimum string
	}{
		{"floor met exactly with no bids", liveAdmission("1000.00", "0", "1000.00"), nil, "1000.00"},
		{"one cent under floor", liveAdmission("1000.00", "0", "999.99"), apperrors.ErrBidTooLow, "1000.00"},
		{"equal to highest", liveAdmission("1000.00", "1500.00", "1500.00"), apperrors.ErrBidTooLow, "1500.01"},
		{"one cent over highest", liveAdmission("1000.00", "1500.00", "1500.01"), nil, "1500.01"},
		{"floor above highest plus increment", liveAdmission("2000.00", "1500.00", "1600.00"), apperrors.ErrBidTooLow, "2000.00"},
		{"zero floor no bids", liveAdmission("0", "0", "0.01"), nil, "0.01"},
		{"zero amount", liveAdmission("0", "0", "0"), apperrors.ErrNonPositiveAmount, "0.01"},
		{"negative amount", liveAdmission("10", "0", "-5"), apperrors.ErrNonPositiveAmount, "10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Evaluate(tt.admission)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
			assert.True(t, d.Minimum.Equal(dec(tt.wantMinimum)), "minimum %s", d.Minimum)
		})
	}
}

func TestEvaluate_BidTooLowCarriesAmounts(t *testing.T) {
	_, err := Evaluate(liveAdmission("1000.00", "1500.00", "1500.00"))

	var tooLow *apperrors.BidTooLowError
	require.True(t, errors.As(err, &tooLow))
	assert.True(t, tooLow.Minimum.Equal(dec("1500.01")))
	assert.True(t, tooLow.Floor.Equal(dec("1000")))
	assert.True(t, tooLow.Highest.Equal(dec("1500")))
	assert.Equal(t, "bid must be >= 1500.01 (minBid: 1000.00, current: 1500.00)", err.Error())
}

func TestEvaluate_NotLive(t *testing.T) {
	for _, st := range []auction.Status{
		auction.StatusDraft, auction.StatusScheduled, auction.StatusPaused,
		auction.StatusEnded, auction.StatusCancelled,
	} {
		t.Run(string(st), func(t *testing.T) {
			a := liveAdmission("1000", "0", "1000000")
			a.Status = st
			_, err := Evaluate(a)
			assert.ErrorIs(t, err, apperrors.ErrAuctionNotLive)
		})
	}

	outside := map[string]time.Time{
		"before start": windowStart.Add(-time.Nanosecond),
		"after end":    windowEnd.Add(time.Nanosecond),
	}
	for name, now := range outside {
		t.Run(name, func(t *testing.T) {
			a := liveAdmission("1000", "0", "1000000")
			a.Now = now
			_, err := Evaluate(a)
			assert.ErrorIs(t, err, apperrors.ErrAuctionNotLive)
		})
	}

	edges := map[string]time.Time{"at start": windowStart, "at end": windowEnd}
	for name, now := range edges {
		t.Run(name, func(t *testing.T) {
			a := liveAdmission("1000", "0", "1000")
			a.Now = now
			_, err := Evaluate(a)
			assert.NoError(t, err)
		})
	}
}

func TestEvaluate_Precedence(t *testing.T) {
	a := liveAdmission("1000", "0", "-1")
	a.InAuction = false
	a.Status = auction.StatusScheduled
	_, err := Evaluate(a)
	assert.ErrorIs(t, err, apperrors.ErrPaintingNotInAuction)

	a.InAuction = true
	_, err = Evaluate(a)
	assert.ErrorIs(t, err, apperrors.ErrAuctionNotLive)

	a.Status = auction.StatusLive
	_, err = Evaluate(a)
	assert.ErrorIs(t, err, apperrors.ErrNonPositiveAmount)
}

func TestEvaluate_OneCentOverLeader(t *testing.T) {
	a := liveAdmission("100", "150", "150.009")
	d, err := Evaluate(a)
	assert.ErrorIs(t, err, apperrors.ErrBidTooLow)
	assert.True(t, d.Minimum.Equal(dec("150.01")))

	a.Amount = dec("150.01")
	_, err = Evaluate(a)
	assert.NoError(t, err)
}

// Sweeps amounts in cents around the computed minimum: everything below is
// rejected, everything at or above accepted.
func TestEvaluate_ThresholdIsExact(t *testing.T) {
	cases := []struct{ floor, highest string }{
		{"1000.00", "0"},
		{"1000.00", "1500.00"},
		{"250.50", "250.49"},
		{"0", "0"},
		{"99.99", "12.00"},
	}
	for _, c := range cases {
		min := MinimumRequired(dec(c.floor), dec(c.highest))
		for cents := int64(-300); cents <= 300; cents++ {
			amount := min.Add(decimal.New(cents, -2))
			if !amount.IsPositive() {
				continue
			}
			a := liveAdmission(c.floor, c.highest, "1")
			a.Amount = amount
			_, err := Evaluate(a)
			if cents < 0 {
				assert.ErrorIs(t, err, apperrors.ErrBidTooLow, "floor %s highest %s amount %s", c.floor, c.highest, amount)
			} else {
				assert.NoError(t, err, "floor %s highest %s amount %s", c.floor, c.highest, amount)
			}
		}
	}
}

func TestMinimumRequired(t *testing.T) {
	// no bids: the floor
	assert.True(t, MinimumRequired(dec("1000"), decimal.Zero).Equal(dec("1000")))
	// highest at or above the floor: highest plus one cent
	assert.True(t, MinimumRequired(dec("1000"), dec("1000")).Equal(dec("1000.01")))
	assert.True(t, MinimumRequired(dec("1000"), dec("4321.99")).Equal(dec("4322")))
}

func TestLeadingBid(t *testing.T) {
	_, ok := LeadingBid(nil)
	assert.False(t, ok)

	t0 := insideNow
	bids := []BidDTO{
		{ID: 1, Amount: dec("100"), PlacedAt: t0},
		{ID: 2, Amount: dec("300"), PlacedAt: t0.Add(2 * time.Minute)},
		{ID: 3, Amount: dec("300"), PlacedAt: t0.Add(time.Minute)},
		{ID: 4, Amount: dec("200"), PlacedAt: t0.Add(3 * time.Minute)},
	}
	lead, ok := LeadingBid(bids)
	require.True(t, ok)
	assert.Equal(t, int64(3), lead.ID, "earliest of equal amounts leads")
	assert.True(t, HighestAmount(bids).Equal(dec("300")))
	assert.True(t, HighestAmount(nil).IsZero())
}

// A tie on the leading amount cannot be produced through the rule: after any
// accepted bid of amount X, another bid of X is rejected.
func TestEvaluate_TieOnLeadIsUnreachable(t *testing.T) {
	accepted := []BidDTO{}
	amounts := []string{"1000", "1000", "1000.01", "1200", "1200", "1199.99", "1500"}
	for i, s := range amounts {
		a := liveAdmission("1000", "0", s)
		a.Highest = HighestAmount(accepted)
		if _, err := Evaluate(a); err == nil {
			accepted = append(accepted, BidDTO{ID: int64(i + 1), Amount: dec(s), PlacedAt: insideNow.Add(time.Duration(i) * time.Second)})
		}
	}

	require.Len(t, accepted, 4)
	seen := map[string]bool{}
	for _, b := range accepted {
		key := b.Amount.StringFixed(2)
		assert.False(t, seen[key], "duplicate accepted amount %s", key)
		seen[key] = true
	}
}

func TestSortLeaderboard(t *testing.T) {
	t0 := insideNow
	bids := []BidDTO{
		{ID: 1, Amount: dec("100"), PlacedAt: t0},
		{ID: 2, Amount: dec("300"), PlacedAt: t0.Add(time.Minute)},
		{ID: 3, Amount: dec("300"), PlacedAt: t0.Add(2 * time.Minute)},
		{ID: 4, Amount: dec("200"), PlacedAt: t0.Add(3 * time.Minute)},
		{ID: 5, Amount: dec("300"), PlacedAt: t0.Add(2 * time.Minute)},
	}
	SortLeaderboard(bids)

	ids := make([]int64, len(bids))
	for i, b := range bids {
		ids[i] = b.ID
	}
	assert.Equal(t, []int64{5, 3, 2, 4, 1}, ids)
}

func TestCanDelete(t *testing.T) {
	owner := uuid.New()
	admin := auth.Identity{UserID: uuid.New(), Role: auth.RoleAdmin}
	bidder := auth.Identity{UserID: owner, Role: auth.RoleBidder}
	stranger := auth.Identity{UserID: uuid.New(), Role: auth.RoleBidder}

	tests := []struct {
		name    string
		actor   auth.Identity
		status  auction.Status
		wantErr error
	}{
		{"admin on live", admin, auction.StatusLive, nil},
		{"admin on ended", admin, auction.StatusEnded, apperrors.ErrImmutableAuction},
		{"owner on live", bidder, auction.StatusLive, nil},
		{"owner on paused", bidder, auction.StatusPaused, nil},
		{"owner on ended", bidder, auction.StatusEnded, apperrors.ErrImmutableAuction},
		{"stranger", stranger, auction.StatusLive, apperrors.ErrForbidden},
		{"anonymous", auth.Identity{}, auction.StatusLive, apperrors.ErrUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanDelete(tt.actor, owner, tt.status)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
