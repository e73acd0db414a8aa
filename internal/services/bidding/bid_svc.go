package bidding

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"paintingauction/internal/apperrors"
	"paintingauction/internal/auth"
	"paintingauction/internal/database/db_client"
	"paintingauction/internal/redis/publisher"
	"paintingauction/internal/services/auction"
)

type BidDTO struct {
	ID          int64           `json:"id"`
	AuctionID   int64           `json:"auctionId"`
	PaintingID  int64           `json:"paintingId"`
	UserID      uuid.UUID       `json:"-"`
	Amount      decimal.Decimal `json:"amount"      example:"1500.01"`
	BidderName  string          `json:"bidderName"`
	BidderEmail string          `json:"bidderEmail"`
	PlacedAt    time.Time       `json:"placedAtUtc" example:"2026-05-01T12:00:00Z"`
} // @name Bid

// LotSummaryDTO is the read-through view of a lot's current standing.
type LotSummaryDTO struct {
	AuctionID       int64           `json:"auctionId"`
	PaintingID      int64           `json:"paintingId"`
	FloorPrice      decimal.Decimal `json:"floorPrice"`
	HighestBid      decimal.Decimal `json:"highestBid"`
	MinimumRequired decimal.Decimal `json:"minimumRequired"`
	BidCount        int             `json:"bidCount"`
	LeadingBid      *BidDTO         `json:"leadingBid,omitempty"`
	Live            bool            `json:"live"`
} // @name LotSummary

// PaintingBidsFilter narrows the cross-auction bid history of a painting.
type PaintingBidsFilter struct {
	AuctionID *int64
	Sort      string // "time" or "amount"
	Dir       string // "asc" or "desc"
}

type IBidService interface {
	PlaceBid(ctx context.Context, actor auth.Identity, auctionID, paintingID int64, amount decimal.Decimal) (*BidDTO, error)
	ListBids(ctx context.Context, auctionID, paintingID int64) ([]BidDTO, error)
	ListPaintingBids(ctx context.Context, paintingID int64, f PaintingBidsFilter) ([]BidDTO, error)
	HighestBid(ctx context.Context, auctionID, paintingID int64) (*LotSummaryDTO, error)
	DeleteBid(ctx context.Context, actor auth.Identity, bidID int64) error
	DeleteScopedBid(ctx context.Context, actor auth.Identity, auctionID, paintingID, bidID int64) error
}

type bidService struct {
	db  *sql.DB
	pub publisher.Publisher
	now func() time.Time
}

var _ IBidService = (*bidService)(nil)

func NewBidService(db *sql.DB, pub publisher.Publisher) IBidService {
	if pub == nil {
		pub = publisher.Nop{}
	}
	return &bidService{
		db:  db,
		pub: pub,
		now: time.Now,
	}
}

const bidColumns = `id, auction_id, painting_id, user_id, bidder_name, bidder_email, amount, placed_at`

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// lot is the state of one (auction, painting) pair as the rule sees it.
type lot struct {
	status    auction.Status
	startsAt  time.Time
	endsAt    time.Time
	floor     decimal.Decimal
	inAuction bool
}

// loadLot reads the auction and painting of a lot. With lock set the auction
// row is held FOR UPDATE until the surrounding transaction ends, which
// serializes admissions and deletions on every lot of that auction.
func loadLot(ctx context.Context, q queryer, auctionID, paintingID int64, lock bool) (*lot, error) {
	query := `SELECT status, starts_at, ends_at FROM auctions WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	l := &lot{}
	err := q.QueryRowContext(ctx, query, auctionID).Scan(&l.status, &l.startsAt, &l.endsAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("auction")
	}
	if err != nil {
		return nil, err
	}

	const paintingQ = `SELECT p.min_bid, EXISTS(SELECT 1 FROM auction_paintings ap WHERE ap.auction_id = $1 AND ap.painting_id = p.id) FROM paintings p WHERE p.id = $2`
	err = q.QueryRowContext(ctx, paintingQ, auctionID, paintingID).Scan(&l.floor, &l.inAuction)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("painting")
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func highestOnLot(ctx context.Context, q queryer, auctionID, paintingID int64) (decimal.Decimal, error) {
	var highest decimal.Decimal
	err := q.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(amount), 0) FROM bids WHERE auction_id = $1 AND painting_id = $2`,
		auctionID, paintingID).Scan(&highest)
	return highest, err
}

// PlaceBid admits a bid inside one transaction: the highest bid is re-read
// under the auction row lock, so two concurrent bids cannot both clear the
// same stale threshold.
func (svc *bidService) PlaceBid(ctx context.Context, actor auth.Identity, auctionID, paintingID int64, amount decimal.Decimal) (*BidDTO, error) {
	// Non-positive amounts are left to Evaluate.
	if amount.IsPositive() {
		if err := db_client.CheckAmount("amount", amount); err != nil {
			return nil, err
		}
	}
	if actor.UserID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}
	now := svc.now().UTC()

	tx, err := svc.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("place bid: %w", err)
	}
	defer tx.Rollback()

	l, err := loadLot(ctx, tx, auctionID, paintingID, true)
	if err != nil {
		return nil, fmt.Errorf("place bid: %w", err)
	}
	highest, err := highestOnLot(ctx, tx, auctionID, paintingID)
	if err != nil {
		return nil, fmt.Errorf("place bid: %w", err)
	}

	if _, err := Evaluate(Admission{
		Status:     l.status,
		StartsAt:   l.startsAt,
		EndsAt:     l.endsAt,
		InAuction:  l.inAuction,
		FloorPrice: l.floor,
		Highest:    highest,
		Amount:     amount,
		Now:        now,
	}); err != nil {
		return nil, fmt.Errorf("place bid: %w", err)
	}

	// Snapshot the bidder as stored now; later profile edits do not touch it.
	bid := &BidDTO{
		AuctionID:  auctionID,
		PaintingID: paintingID,
		UserID:     actor.UserID,
		Amount:     amount,
		PlacedAt:   now,
	}
	err = tx.QueryRowContext(ctx, `SELECT name, email FROM users WHERE id = $1`, actor.UserID).
		Scan(&bid.BidderName, &bid.BidderEmail)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("place bid: user not found: %w", apperrors.ErrUnauthenticated)
	}
	if err != nil {
		return nil, fmt.Errorf("place bid: %w", err)
	}

	const ins = `INSERT INTO bids (auction_id, painting_id, user_id, bidder_name, bidder_email, amount, placed_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err = tx.QueryRowContext(ctx, ins,
		bid.AuctionID, bid.PaintingID, bid.UserID, bid.BidderName, bid.BidderEmail, bid.Amount, bid.PlacedAt,
	).Scan(&bid.ID)
	if err != nil {
		return nil, fmt.Errorf("place bid: insert: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("place bid: commit: %w", err)
	}

	svc.publish(ctx, publisher.Event{
		Event:      publisher.EventBidPlaced,
		AuctionID:  bid.AuctionID,
		PaintingID: bid.PaintingID,
		BidID:      bid.ID,
		Amount:     &bid.Amount,
		BidderName: bid.BidderName,
		At:         now,
	})
	return bid, nil
}

// ListBids returns the leaderboard of a lot.
func (svc *bidService) ListBids(ctx context.Context, auctionID, paintingID int64) ([]BidDTO, error) {
	l, err := loadLot(ctx, svc.db, auctionID, paintingID, false)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	if !l.inAuction {
		return nil, fmt.Errorf("list bids: %w", apperrors.ErrPaintingNotInAuction)
	}

	rows, err := svc.db.QueryContext(ctx, `SELECT `+bidColumns+` FROM bids WHERE auction_id = $1 AND painting_id = $2 ORDER BY amount DESC, placed_at DESC, id DESC`,
		auctionID, paintingID)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	return scanBids(rows)
}

func (svc *bidService) ListPaintingBids(ctx context.Context, paintingID int64, f PaintingBidsFilter) ([]BidDTO, error) {
	var exists bool
	if err := svc.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM paintings WHERE id = $1)`, paintingID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("list painting bids: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("list painting bids: %w", apperrors.NotFound("painting"))
	}

	query := `SELECT ` + bidColumns + ` FROM bids WHERE painting_id = $1`
	args := []any{paintingID}
	if f.AuctionID != nil {
		query += ` AND auction_id = $2`
		args = append(args, *f.AuctionID)
	}
	query += ` ORDER BY ` + historyOrder(f.Sort, f.Dir)

	rows, err := svc.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list painting bids: %w", err)
	}
	return scanBids(rows)
}

// historyOrder maps the sort/dir query values onto a fixed ORDER BY clause.
func historyOrder(sortBy, dir string) string {
	d := "DESC"
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		d = "ASC"
	}
	if strings.EqualFold(strings.TrimSpace(sortBy), "amount") {
		return "amount " + d + ", placed_at " + d + ", id " + d
	}
	return "placed_at " + d + ", id " + d
}

// HighestBid computes the lot standing at request time; nothing is cached.
func (svc *bidService) HighestBid(ctx context.Context, auctionID, paintingID int64) (*LotSummaryDTO, error) {
	l, err := loadLot(ctx, svc.db, auctionID, paintingID, false)
	if err != nil {
		return nil, fmt.Errorf("highest bid: %w", err)
	}
	if !l.inAuction {
		return nil, fmt.Errorf("highest bid: %w", apperrors.ErrPaintingNotInAuction)
	}

	rows, err := svc.db.QueryContext(ctx, `SELECT `+bidColumns+` FROM bids WHERE auction_id = $1 AND painting_id = $2 ORDER BY amount DESC, placed_at ASC, id ASC LIMIT 1`,
		auctionID, paintingID)
	if err != nil {
		return nil, fmt.Errorf("highest bid: %w", err)
	}
	top, err := scanBids(rows)
	if err != nil {
		return nil, fmt.Errorf("highest bid: %w", err)
	}

	sum := &LotSummaryDTO{
		AuctionID:  auctionID,
		PaintingID: paintingID,
		FloorPrice: l.floor,
		HighestBid: decimal.Zero,
		Live:       IsLive(l.status, l.startsAt, l.endsAt, svc.now().UTC()),
	}
	if len(top) > 0 {
		sum.LeadingBid = &top[0]
		sum.HighestBid = top[0].Amount
		if err := svc.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bids WHERE auction_id = $1 AND painting_id = $2`,
			auctionID, paintingID).Scan(&sum.BidCount); err != nil {
			return nil, fmt.Errorf("highest bid: %w", err)
		}
	}
	sum.MinimumRequired = MinimumRequired(sum.FloorPrice, sum.HighestBid)
	return sum, nil
}

// DeleteBid is the admin-wide removal by bid id.
func (svc *bidService) DeleteBid(ctx context.Context, actor auth.Identity, bidID int64) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("delete bid: %w", apperrors.ErrForbidden)
	}

	tx, err := svc.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete bid: %w", err)
	}
	defer tx.Rollback()

	var (
		auctionID, paintingID int64
		owner                 uuid.UUID
		status                auction.Status
	)
	const q = `SELECT b.auction_id, b.painting_id, b.user_id, a.status FROM bids b JOIN auctions a ON a.id = b.auction_id WHERE b.id = $1 FOR UPDATE OF a`
	err = tx.QueryRowContext(ctx, q, bidID).Scan(&auctionID, &paintingID, &owner, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("delete bid: %w", apperrors.NotFound("bid"))
	}
	if err != nil {
		return fmt.Errorf("delete bid: %w", err)
	}

	if err := CanDelete(actor, owner, status); err != nil {
		return fmt.Errorf("delete bid: %w", err)
	}
	return svc.removeBid(ctx, tx, auctionID, paintingID, bidID)
}

// DeleteScopedBid removes a bid addressed through its lot. Admins may remove
// any bid, bidders only their own.
func (svc *bidService) DeleteScopedBid(ctx context.Context, actor auth.Identity, auctionID, paintingID, bidID int64) error {
	tx, err := svc.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete bid: %w", err)
	}
	defer tx.Rollback()

	var status auction.Status
	err = tx.QueryRowContext(ctx, `SELECT status FROM auctions WHERE id = $1 FOR UPDATE`, auctionID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("delete bid: %w", apperrors.NotFound("auction"))
	}
	if err != nil {
		return fmt.Errorf("delete bid: %w", err)
	}

	var member bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM auction_paintings WHERE auction_id = $1 AND painting_id = $2)`,
		auctionID, paintingID).Scan(&member)
	if err != nil {
		return fmt.Errorf("delete bid: %w", err)
	}
	if !member {
		return fmt.Errorf("delete bid: %w", apperrors.ErrPaintingNotInAuction)
	}

	var owner uuid.UUID
	err = tx.QueryRowContext(ctx, `SELECT user_id FROM bids WHERE id = $1 AND auction_id = $2 AND painting_id = $3`,
		bidID, auctionID, paintingID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("delete bid: %w", apperrors.NotFound("bid"))
	}
	if err != nil {
		return fmt.Errorf("delete bid: %w", err)
	}

	if err := CanDelete(actor, owner, status); err != nil {
		return fmt.Errorf("delete bid: %w", err)
	}
	return svc.removeBid(ctx, tx, auctionID, paintingID, bidID)
}

// removeBid deletes the row and commits. The lot's highest bid is not
// recomputed here; readers derive it on their next query.
func (svc *bidService) removeBid(ctx context.Context, tx *sql.Tx, auctionID, paintingID, bidID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM bids WHERE id = $1`, bidID); err != nil {
		return fmt.Errorf("delete bid: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete bid: commit: %w", err)
	}
	svc.publish(ctx, publisher.Event{
		Event:      publisher.EventBidDeleted,
		AuctionID:  auctionID,
		PaintingID: paintingID,
		BidID:      bidID,
		At:         svc.now().UTC(),
	})
	return nil
}

func (svc *bidService) publish(ctx context.Context, evt publisher.Event) {
	if err := svc.pub.Publish(ctx, evt); err != nil {
		zap.L().Warn("bid_event_publish_failed",
			zap.String("event", evt.Event),
			zap.Int64("auction_id", evt.AuctionID),
			zap.Int64("bid_id", evt.BidID),
			zap.Error(err))
	}
}

func scanBids(rows *sql.Rows) ([]BidDTO, error) {
	defer rows.Close()

	list := make([]BidDTO, 0)
	for rows.Next() {
		var b BidDTO
		if err := rows.Scan(&b.ID, &b.AuctionID, &b.PaintingID, &b.UserID,
			&b.BidderName, &b.BidderEmail, &b.Amount, &b.PlacedAt); err != nil {
			return nil, err
		}
		b.PlacedAt = b.PlacedAt.UTC()
		list = append(list, b)
	}
	return list, rows.Err()
}
