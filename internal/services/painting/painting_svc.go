package painting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"paintingauction/internal/apperrors"
	"paintingauction/internal/database/db_client"
)

const DefaultCategory = "General"

type PaintingDTO struct {
	ID           int64            `json:"id"`
	Title        string           `json:"title"`
	ArtistID     int64            `json:"artistId"`
	ArtistName   string           `json:"artistName"`
	Category     string           `json:"category"`
	Description  *string          `json:"description,omitempty"`
	ImageURL     *string          `json:"imageUrl,omitempty"`
	MinBid       decimal.Decimal  `json:"minBid"       example:"1000.00"`
	Featured     bool             `json:"featured"`
	Year         *int             `json:"year,omitempty"`
	Medium       *string          `json:"medium,omitempty"`
	Dimensions   *string          `json:"dimensions,omitempty"`
	Condition    *string          `json:"condition,omitempty"`
	EstimateLow  *decimal.Decimal `json:"estimateLow,omitempty"`
	EstimateHigh *decimal.Decimal `json:"estimateHigh,omitempty"`
	CreatedAt    time.Time        `json:"createdAtUtc"`
	UpdatedAt    *time.Time       `json:"updatedAtUtc,omitempty"`
} // @name Painting

type CreatePaintingInput struct {
	Title        string
	ArtistID     int64
	Category     string
	Description  *string
	ImageURL     *string
	MinBid       decimal.Decimal
	Featured     bool
	Year         *int
	Medium       *string
	Dimensions   *string
	Condition    *string
	EstimateLow  *decimal.Decimal
	EstimateHigh *decimal.Decimal
}

// UpdatePaintingInput is a partial update; nil fields keep their value.
type UpdatePaintingInput struct {
	Title        *string
	ArtistID     *int64
	Category     *string
	Description  *string
	ImageURL     *string
	MinBid       *decimal.Decimal
	Featured     *bool
	Year         *int
	Medium       *string
	Dimensions   *string
	Condition    *string
	EstimateLow  *decimal.Decimal
	EstimateHigh *decimal.Decimal
}

type ListFilter struct {
	Q        string
	Category string
	ArtistID *int64
	Featured *bool
}

type IPaintingService interface {
	ListPaintings(ctx context.Context, f ListFilter) ([]PaintingDTO, error)
	GetPainting(ctx context.Context, id int64) (*PaintingDTO, error)
	CreatePainting(ctx context.Context, in CreatePaintingInput) (*PaintingDTO, error)
	UpdatePainting(ctx context.Context, id int64, in UpdatePaintingInput) error
	DeletePainting(ctx context.Context, id int64) error
}

type paintingService struct {
	db  *sql.DB
	now func() time.Time
}

var _ IPaintingService = (*paintingService)(nil)

func NewPaintingService(db *sql.DB) IPaintingService {
	return &paintingService{db: db, now: time.Now}
}

const paintingSelect = `SELECT p.id, p.title, p.artist_id, ar.name, p.category, p.description, p.image_url, p.min_bid, p.featured,
       p.year, p.medium, p.dimensions, p.condition, p.estimate_low, p.estimate_high, p.created_at, p.updated_at
  FROM paintings p JOIN artists ar ON ar.id = p.artist_id`

var errArtistNotFound = apperrors.Invalid("artist not found")

func (svc *paintingService) ListPaintings(ctx context.Context, f ListFilter) ([]PaintingDTO, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) int {
		args = append(args, v)
		return len(args)
	}
	if q := strings.TrimSpace(f.Q); q != "" {
		n := arg(db_client.LikePattern(q))
		where = append(where, fmt.Sprintf("(p.title ILIKE $%d OR ar.name ILIKE $%d)", n, n))
	}
	if c := strings.TrimSpace(f.Category); c != "" && !strings.EqualFold(c, "all") {
		where = append(where, fmt.Sprintf("p.category = $%d", arg(c)))
	}
	if f.ArtistID != nil {
		where = append(where, fmt.Sprintf("p.artist_id = $%d", arg(*f.ArtistID)))
	}
	if f.Featured != nil {
		where = append(where, fmt.Sprintf("p.featured = $%d", arg(*f.Featured)))
	}

	query := paintingSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY p.featured DESC, p.title, p.id"

	rows, err := svc.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list paintings: %w", err)
	}
	defer rows.Close()

	list := make([]PaintingDTO, 0)
	for rows.Next() {
		p, err := scanPainting(rows)
		if err != nil {
			return nil, fmt.Errorf("list paintings: %w", err)
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

func (svc *paintingService) GetPainting(ctx context.Context, id int64) (*PaintingDTO, error) {
	p, err := scanPainting(svc.db.QueryRowContext(ctx, paintingSelect+" WHERE p.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("painting")
	}
	if err != nil {
		return nil, fmt.Errorf("get painting %d: %w", id, err)
	}
	return p, nil
}

func (svc *paintingService) CreatePainting(ctx context.Context, in CreatePaintingInput) (*PaintingDTO, error) {
	p := &PaintingDTO{
		Title:        strings.TrimSpace(in.Title),
		ArtistID:     in.ArtistID,
		Category:     strings.TrimSpace(in.Category),
		Description:  trimmed(in.Description),
		ImageURL:     blankToNil(in.ImageURL),
		MinBid:       in.MinBid,
		Featured:     in.Featured,
		Year:         in.Year,
		Medium:       trimmed(in.Medium),
		Dimensions:   trimmed(in.Dimensions),
		Condition:    trimmed(in.Condition),
		EstimateLow:  in.EstimateLow,
		EstimateHigh: in.EstimateHigh,
	}
	if p.Title == "" {
		return nil, apperrors.Invalid("title is required")
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	if err := validate(p); err != nil {
		return nil, err
	}

	name, err := artistName(ctx, svc.db, p.ArtistID)
	if err != nil {
		return nil, fmt.Errorf("create painting: %w", err)
	}
	p.ArtistName = name

	const ins = `INSERT INTO paintings (title, artist_id, category, description, image_url, min_bid, featured, year, medium, dimensions, condition, estimate_low, estimate_high) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id, created_at`
	err = svc.db.QueryRowContext(ctx, ins,
		p.Title, p.ArtistID, p.Category, p.Description, p.ImageURL, p.MinBid, p.Featured,
		p.Year, p.Medium, p.Dimensions, p.Condition, p.EstimateLow, p.EstimateHigh,
	).Scan(&p.ID, &p.CreatedAt)
	if db_client.IsForeignKeyViolation(err) {
		return nil, errArtistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("create painting: %w", err)
	}

	zap.L().Info("painting_created", zap.Int64("painting_id", p.ID), zap.Int64("artist_id", p.ArtistID))
	return p, nil
}

func (svc *paintingService) UpdatePainting(ctx context.Context, id int64, in UpdatePaintingInput) error {
	tx, err := svc.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update painting: %w", err)
	}
	defer tx.Rollback()

	p, err := scanPainting(tx.QueryRowContext(ctx, paintingSelect+" WHERE p.id = $1 FOR UPDATE OF p", id))
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("painting")
	}
	if err != nil {
		return fmt.Errorf("update painting: %w", err)
	}

	if in.Title != nil {
		if p.Title = strings.TrimSpace(*in.Title); p.Title == "" {
			return apperrors.Invalid("title must not be empty")
		}
	}
	if in.Category != nil {
		if p.Category = strings.TrimSpace(*in.Category); p.Category == "" {
			p.Category = DefaultCategory
		}
	}
	if in.Description != nil {
		p.Description = trimmed(in.Description)
	}
	if in.ImageURL != nil {
		p.ImageURL = blankToNil(in.ImageURL)
	}
	if in.MinBid != nil {
		p.MinBid = *in.MinBid
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if in.Year != nil {
		p.Year = in.Year
	}
	if in.Medium != nil {
		p.Medium = trimmed(in.Medium)
	}
	if in.Dimensions != nil {
		p.Dimensions = trimmed(in.Dimensions)
	}
	if in.Condition != nil {
		p.Condition = trimmed(in.Condition)
	}
	if in.EstimateLow != nil {
		p.EstimateLow = in.EstimateLow
	}
	if in.EstimateHigh != nil {
		p.EstimateHigh = in.EstimateHigh
	}
	if err := validate(p); err != nil {
		return err
	}
	if in.ArtistID != nil && *in.ArtistID != p.ArtistID {
		if _, err := artistName(ctx, tx, *in.ArtistID); err != nil {
			return fmt.Errorf("update painting: %w", err)
		}
		p.ArtistID = *in.ArtistID
	}

	const upd = `UPDATE paintings SET title = $1, artist_id = $2, category = $3, description = $4, image_url = $5, min_bid = $6, featured = $7, year = $8, medium = $9, dimensions = $10, condition = $11, estimate_low = $12, estimate_high = $13, updated_at = $14 WHERE id = $15`
	_, err = tx.ExecContext(ctx, upd,
		p.Title, p.ArtistID, p.Category, p.Description, p.ImageURL, p.MinBid, p.Featured,
		p.Year, p.Medium, p.Dimensions, p.Condition, p.EstimateLow, p.EstimateHigh,
		svc.now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update painting: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update painting: commit: %w", err)
	}
	return nil
}

// DeletePainting removes the painting; its auction memberships and bids go
// with it.
func (svc *paintingService) DeletePainting(ctx context.Context, id int64) error {
	res, err := svc.db.ExecContext(ctx, `DELETE FROM paintings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete painting: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("painting")
	}
	return nil
}

func validate(p *PaintingDTO) error {
	if p.MinBid.IsNegative() {
		return apperrors.Invalid("minBid must not be negative")
	}
	if err := db_client.CheckAmount("minBid", p.MinBid); err != nil {
		return err
	}
	if p.Year != nil && (*p.Year < 1000 || *p.Year > 3000) {
		return apperrors.Invalid("year must be between 1000 and 3000")
	}
	if (p.EstimateLow != nil && p.EstimateLow.IsNegative()) || (p.EstimateHigh != nil && p.EstimateHigh.IsNegative()) {
		return apperrors.Invalid("estimates must not be negative")
	}
	if p.EstimateLow != nil {
		if err := db_client.CheckAmount("estimateLow", *p.EstimateLow); err != nil {
			return err
		}
	}
	if p.EstimateHigh != nil {
		if err := db_client.CheckAmount("estimateHigh", *p.EstimateHigh); err != nil {
			return err
		}
	}
	if p.EstimateLow != nil && p.EstimateHigh != nil && p.EstimateLow.GreaterThan(*p.EstimateHigh) {
		return apperrors.Invalid("estimate low cannot be greater than estimate high")
	}
	return nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func artistName(ctx context.Context, q queryer, artistID int64) (string, error) {
	var name string
	err := q.QueryRowContext(ctx, `SELECT name FROM artists WHERE id = $1`, artistID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errArtistNotFound
	}
	return name, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPainting(row rowScanner) (*PaintingDTO, error) {
	var p PaintingDTO
	if err := row.Scan(&p.ID, &p.Title, &p.ArtistID, &p.ArtistName, &p.Category, &p.Description,
		&p.ImageURL, &p.MinBid, &p.Featured, &p.Year, &p.Medium, &p.Dimensions, &p.Condition,
		&p.EstimateLow, &p.EstimateHigh, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return trimmed(s)
}
