package auction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"paintingauction/internal/apperrors"
	"paintingauction/internal/database/db_client"
	"paintingauction/internal/redis/expiry"
	"paintingauction/internal/redis/publisher"
)

type AuctionDTO struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	StartsAt    time.Time  `json:"startsAtUtc" example:"2026-05-01T10:00:00Z"`
	EndsAt      time.Time  `json:"endsAtUtc"   example:"2026-05-01T18:00:00Z"`
	Status      Status     `json:"status"      example:"Live"`
	PaintingIDs []int64    `json:"paintingIds"`
	CreatedAt   time.Time  `json:"createdAtUtc"`
	UpdatedAt   *time.Time `json:"updatedAtUtc,omitempty"`
} // @name Auction

type CreateAuctionInput struct {
	Title       string
	Description *string
	StartsAt    time.Time
	EndsAt      time.Time
	PaintingIDs []int64
}

// UpdateAuctionInput is a partial update; nil fields are left unchanged and a
// non-nil PaintingIDs replaces the whole painting set.
type UpdateAuctionInput struct {
	Title       *string
	Description *string
	StartsAt    *time.Time
	EndsAt      *time.Time
	Status      *string
	PaintingIDs *[]int64
}

type ListFilter struct {
	Q      string
	Status string
}

type IAuctionService interface {
	ListAuctions(ctx context.Context, f ListFilter) ([]AuctionDTO, error)
	GetAuction(ctx context.Context, id int64) (*AuctionDTO, error)
	CreateAuction(ctx context.Context, in CreateAuctionInput) (*AuctionDTO, error)
	UpdateAuction(ctx context.Context, id int64, in UpdateAuctionInput) error
	DeleteAuction(ctx context.Context, id int64) error
	// CloseExpired ends one Live auction whose window has passed. It reports
	// whether the auction was closed by this call.
	CloseExpired(ctx context.Context, id int64) (bool, error)
	// SweepExpired ends every Live auction whose window has passed.
	SweepExpired(ctx context.Context) (int, error)
}

type auctionService struct {
	db     *sql.DB
	timers expiry.Timers
	pub    publisher.Publisher
	now    func() time.Time
}

var _ IAuctionService = (*auctionService)(nil)

func NewAuctionService(db *sql.DB, timers expiry.Timers, pub publisher.Publisher) IAuctionService {
	if timers == nil {
		timers = expiry.Nop{}
	}
	if pub == nil {
		pub = publisher.Nop{}
	}
	return &auctionService{
		db:     db,
		timers: timers,
		pub:    pub,
		now:    time.Now,
	}
}

const auctionSelect = `SELECT a.id, a.title, a.description, a.starts_at, a.ends_at, a.status, a.created_at, a.updated_at,
       COALESCE((SELECT string_agg(ap.painting_id::text, ',' ORDER BY ap.painting_id) FROM auction_paintings ap WHERE ap.auction_id = a.id), '')
  FROM auctions a`

var errInvalidPaintings = apperrors.Invalid("one or more paintingIds are invalid")

func (svc *auctionService) ListAuctions(ctx context.Context, f ListFilter) ([]AuctionDTO, error) {
	var (
		where []string
		args  []any
	)
	if q := strings.TrimSpace(f.Q); q != "" {
		args = append(args, db_client.LikePattern(q))
		where = append(where, fmt.Sprintf("(a.title ILIKE $%d OR a.description ILIKE $%d)", len(args), len(args)))
	}
	if strings.TrimSpace(f.Status) != "" {
		st, err := ParseStatus(f.Status)
		if err != nil {
			return nil, err
		}
		args = append(args, st)
		where = append(where, fmt.Sprintf("a.status = $%d", len(args)))
	}

	query := auctionSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY a.starts_at, a.id"

	rows, err := svc.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	defer rows.Close()

	list := make([]AuctionDTO, 0)
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("list auctions: %w", err)
		}
		list = append(list, *a)
	}
	return list, rows.Err()
}

func (svc *auctionService) GetAuction(ctx context.Context, id int64) (*AuctionDTO, error) {
	row := svc.db.QueryRowContext(ctx, auctionSelect+" WHERE a.id = $1", id)
	dto, err := scanAuction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("auction")
	}
	if err != nil {
		return nil, fmt.Errorf("get auction %d: %w", id, err)
	}
	return dto, nil
}

// CreateAuction stores a new auction in the Scheduled state together with
// its painting set.
func (svc *auctionService) CreateAuction(ctx context.Context, in CreateAuctionInput) (*AuctionDTO, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.Invalid("title is required")
	}
	if !in.StartsAt.Before(in.EndsAt) {
		return nil, apperrors.Invalid("startsAtUtc must be earlier than endsAtUtc")
	}

	dto := &AuctionDTO{
		Title:       title,
		Description: trimmed(in.Description),
		StartsAt:    in.StartsAt.UTC(),
		EndsAt:      in.EndsAt.UTC(),
		Status:      StatusScheduled,
		PaintingIDs: distinct(in.PaintingIDs),
	}

	tx, err := svc.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create auction: %w", err)
	}
	defer tx.Rollback()

	const ins = `INSERT INTO auctions (title, description, starts_at, ends_at, status) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err = tx.QueryRowContext(ctx, ins, dto.Title, dto.Description, dto.StartsAt, dto.EndsAt, dto.Status).
		Scan(&dto.ID, &dto.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create auction: %w", err)
	}
	if err := attachPaintings(ctx, tx, dto.ID, dto.PaintingIDs); err != nil {
		return nil, fmt.Errorf("create auction: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create auction: commit: %w", err)
	}

	zap.L().Info("auction_created", zap.Int64("auction_id", dto.ID), zap.Int("paintings", len(dto.PaintingIDs)))
	return dto, nil
}

func (svc *auctionService) UpdateAuction(ctx context.Context, id int64, in UpdateAuctionInput) error {
	tx, err := svc.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update auction: %w", err)
	}
	defer tx.Rollback()

	var (
		a        AuctionDTO
		previous Status
	)
	err = tx.QueryRowContext(ctx, `SELECT title, description, starts_at, ends_at, status FROM auctions WHERE id = $1 FOR UPDATE`, id).
		Scan(&a.Title, &a.Description, &a.StartsAt, &a.EndsAt, &previous)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("auction")
	}
	if err != nil {
		return fmt.Errorf("update auction: %w", err)
	}
	a.Status = previous

	if in.Title != nil {
		if a.Title = strings.TrimSpace(*in.Title); a.Title == "" {
			return apperrors.Invalid("title must not be empty")
		}
	}
	if in.Description != nil {
		a.Description = trimmed(in.Description)
	}
	if in.StartsAt != nil {
		a.StartsAt = in.StartsAt.UTC()
	}
	if in.EndsAt != nil {
		a.EndsAt = in.EndsAt.UTC()
	}
	if !a.StartsAt.Before(a.EndsAt) {
		return apperrors.Invalid("startsAtUtc must be earlier than endsAtUtc")
	}
	if in.Status != nil && strings.TrimSpace(*in.Status) != "" {
		if a.Status, err = ParseStatus(*in.Status); err != nil {
			return err
		}
	}

	now := svc.now().UTC()
	const upd = `UPDATE auctions SET title = $1, description = $2, starts_at = $3, ends_at = $4, status = $5, updated_at = $6 WHERE id = $7`
	if _, err := tx.ExecContext(ctx, upd, a.Title, a.Description, a.StartsAt, a.EndsAt, a.Status, now, id); err != nil {
		return fmt.Errorf("update auction: %w", err)
	}

	if in.PaintingIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM auction_paintings WHERE auction_id = $1`, id); err != nil {
			return fmt.Errorf("update auction: %w", err)
		}
		if err := attachPaintings(ctx, tx, id, distinct(*in.PaintingIDs)); err != nil {
			return fmt.Errorf("update auction: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update auction: commit: %w", err)
	}

	svc.syncTimer(ctx, id, a.Status, a.EndsAt)
	if a.Status == StatusEnded && previous != StatusEnded {
		svc.announceEnded(ctx, id, now)
	}
	return nil
}

func (svc *auctionService) DeleteAuction(ctx context.Context, id int64) error {
	res, err := svc.db.ExecContext(ctx, `DELETE FROM auctions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete auction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("auction")
	}
	svc.syncTimer(ctx, id, StatusCancelled, time.Time{})
	return nil
}

// CloseExpired is called when an auction timer key expires.
func (svc *auctionService) CloseExpired(ctx context.Context, id int64) (bool, error) {
	now := svc.now().UTC()
	const q = `UPDATE auctions SET status = 'Ended', updated_at = $2 WHERE id = $1 AND status = 'Live' AND ends_at < $2`
	res, err := svc.db.ExecContext(ctx, q, id, now)
	if err != nil {
		return false, fmt.Errorf("close auction %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("close auction %d: %w", id, err)
	}
	if n == 0 {
		return false, nil
	}

	zap.L().Info("auction_closed", zap.Int64("auction_id", id))
	svc.announceEnded(ctx, id, now)
	return true, nil
}

func (svc *auctionService) SweepExpired(ctx context.Context) (int, error) {
	now := svc.now().UTC()
	const q = `UPDATE auctions SET status = 'Ended', updated_at = $1 WHERE status = 'Live' AND ends_at < $1 RETURNING id`
	rows, err := svc.db.QueryContext(ctx, q, now)
	if err != nil {
		return 0, fmt.Errorf("sweep auctions: %w", err)
	}
	var closed []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("sweep auctions: %w", err)
		}
		closed = append(closed, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("sweep auctions: %w", err)
	}

	for _, id := range closed {
		svc.syncTimer(ctx, id, StatusEnded, time.Time{})
		svc.announceEnded(ctx, id, now)
	}
	return len(closed), nil
}

// syncTimer arms the expiry key of a Live auction and drops it otherwise.
// Failures are logged; the sweeper closes auctions whose timer went missing.
func (svc *auctionService) syncTimer(ctx context.Context, id int64, status Status, endsAt time.Time) {
	var err error
	if status == StatusLive {
		err = svc.timers.Arm(ctx, id, endsAt)
	} else {
		err = svc.timers.Disarm(ctx, id)
	}
	if err != nil {
		zap.L().Warn("auction_timer_sync_failed",
			zap.Int64("auction_id", id), zap.String("status", string(status)), zap.Error(err))
	}
}

func (svc *auctionService) announceEnded(ctx context.Context, id int64, at time.Time) {
	err := svc.pub.Publish(ctx, publisher.Event{
		Event:     publisher.EventAuctionEnded,
		AuctionID: id,
		At:        at,
	})
	if err != nil {
		zap.L().Warn("auction_event_publish_failed", zap.Int64("auction_id", id), zap.Error(err))
	}
}

func attachPaintings(ctx context.Context, tx *sql.Tx, auctionID int64, paintingIDs []int64) error {
	for _, pid := range paintingIDs {
		_, err := tx.ExecContext(ctx, `INSERT INTO auction_paintings (auction_id, painting_id) VALUES ($1, $2)`, auctionID, pid)
		if db_client.IsForeignKeyViolation(err) {
			return errInvalidPaintings
		}
		if err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuction(row rowScanner) (*AuctionDTO, error) {
	var (
		a   AuctionDTO
		ids string
	)
	if err := row.Scan(&a.ID, &a.Title, &a.Description, &a.StartsAt, &a.EndsAt,
		&a.Status, &a.CreatedAt, &a.UpdatedAt, &ids); err != nil {
		return nil, err
	}
	a.StartsAt = a.StartsAt.UTC()
	a.EndsAt = a.EndsAt.UTC()
	a.CreatedAt = a.CreatedAt.UTC()
	a.PaintingIDs = make([]int64, 0)
	for _, s := range strings.Split(ids, ",") {
		if s == "" {
			continue
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("painting id %q: %w", s, err)
		}
		a.PaintingIDs = append(a.PaintingIDs, id)
	}
	return &a, nil
}

func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
