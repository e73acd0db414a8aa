package artist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"paintingauction/internal/apperrors"
	"paintingauction/internal/database/db_client"
)

type ArtistDTO struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Bio          *string         `json:"bio,omitempty"`
	Image        *string         `json:"image,omitempty"`
	Nationality  *string         `json:"nationality,omitempty"`
	BirthYear    *int            `json:"birthYear,omitempty"`
	Style        *string         `json:"style,omitempty"`
	Verified     bool            `json:"verified"`
	Trending     bool            `json:"trending"`
	TotalSales   decimal.Decimal `json:"totalSales"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	CreatedAt    time.Time       `json:"createdAtUtc"`
	UpdatedAt    *time.Time      `json:"updatedAtUtc,omitempty"`
} // @name Artist

// ArtistInput carries create and update fields. On update nil fields keep
// their stored value; on create Name is required.
type ArtistInput struct {
	Name         *string
	Bio          *string
	Image        *string
	Nationality  *string
	BirthYear    *int
	Style        *string
	Verified     *bool
	Trending     *bool
	TotalSales   *decimal.Decimal
	AveragePrice *decimal.Decimal
}

type ListFilter struct {
	Q           string
	Style       string
	Nationality string
	Verified    *bool
	Trending    *bool
}

type IArtistService interface {
	ListArtists(ctx context.Context, f ListFilter) ([]ArtistDTO, error)
	GetArtist(ctx context.Context, id int64) (*ArtistDTO, error)
	CreateArtist(ctx context.Context, in ArtistInput) (*ArtistDTO, error)
	UpdateArtist(ctx context.Context, id int64, in ArtistInput) error
	DeleteArtist(ctx context.Context, id int64) error
}

type artistService struct {
	db  *sql.DB
	now func() time.Time
}

var _ IArtistService = (*artistService)(nil)

func NewArtistService(db *sql.DB) IArtistService {
	return &artistService{db: db, now: time.Now}
}

const artistSelect = `SELECT id, name, bio, image, nationality, birth_year, style, verified, trending, total_sales, average_price, created_at, updated_at FROM artists`

func (svc *artistService) ListArtists(ctx context.Context, f ListFilter) ([]ArtistDTO, error) {
	var (
		where []string
		args  []any
	)
	if q := strings.TrimSpace(f.Q); q != "" {
		args = append(args, db_client.LikePattern(q))
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR bio ILIKE $%d)", len(args), len(args)))
	}
	if s := strings.TrimSpace(f.Style); s != "" {
		args = append(args, s)
		where = append(where, fmt.Sprintf("style = $%d", len(args)))
	}
	if n := strings.TrimSpace(f.Nationality); n != "" {
		args = append(args, n)
		where = append(where, fmt.Sprintf("nationality = $%d", len(args)))
	}
	if f.Verified != nil {
		args = append(args, *f.Verified)
		where = append(where, fmt.Sprintf("verified = $%d", len(args)))
	}
	if f.Trending != nil {
		args = append(args, *f.Trending)
		where = append(where, fmt.Sprintf("trending = $%d", len(args)))
	}

	query := artistSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY trending DESC, name, id"

	rows, err := svc.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()

	list := make([]ArtistDTO, 0)
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("list artists: %w", err)
		}
		list = append(list, *a)
	}
	return list, rows.Err()
}

func (svc *artistService) GetArtist(ctx context.Context, id int64) (*ArtistDTO, error) {
	a, err := scanArtist(svc.db.QueryRowContext(ctx, artistSelect+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("artist")
	}
	if err != nil {
		return nil, fmt.Errorf("get artist %d: %w", id, err)
	}
	return a, nil
}

func (svc *artistService) CreateArtist(ctx context.Context, in ArtistInput) (*ArtistDTO, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, apperrors.Invalid("name is required")
	}
	a := &ArtistDTO{TotalSales: decimal.Zero, AveragePrice: decimal.Zero}
	if err := apply(a, in); err != nil {
		return nil, err
	}

	const ins = `INSERT INTO artists (name, bio, image, nationality, birth_year, style, verified, trending, total_sales, average_price) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at`
	err := svc.db.QueryRowContext(ctx, ins,
		a.Name, a.Bio, a.Image, a.Nationality, a.BirthYear, a.Style, a.Verified, a.Trending, a.TotalSales, a.AveragePrice,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create artist: %w", err)
	}
	return a, nil
}

func (svc *artistService) UpdateArtist(ctx context.Context, id int64, in ArtistInput) error {
	tx, err := svc.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update artist: %w", err)
	}
	defer tx.Rollback()

	a, err := scanArtist(tx.QueryRowContext(ctx, artistSelect+" WHERE id = $1 FOR UPDATE", id))
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("artist")
	}
	if err != nil {
		return fmt.Errorf("update artist: %w", err)
	}
	if err := apply(a, in); err != nil {
		return err
	}

	const upd = `UPDATE artists SET name = $1, bio = $2, image = $3, nationality = $4, birth_year = $5, style = $6, verified = $7, trending = $8, total_sales = $9, average_price = $10, updated_at = $11 WHERE id = $12`
	_, err = tx.ExecContext(ctx, upd,
		a.Name, a.Bio, a.Image, a.Nationality, a.BirthYear, a.Style, a.Verified, a.Trending, a.TotalSales, a.AveragePrice,
		svc.now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update artist: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update artist: commit: %w", err)
	}
	return nil
}

// DeleteArtist refuses to remove an artist that paintings still reference.
func (svc *artistService) DeleteArtist(ctx context.Context, id int64) error {
	res, err := svc.db.ExecContext(ctx, `DELETE FROM artists WHERE id = $1`, id)
	if db_client.IsForeignKeyViolation(err) {
		return apperrors.Conflict("artist still has paintings")
	}
	if err != nil {
		return fmt.Errorf("delete artist: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NotFound("artist")
	}
	return nil
}

// apply merges the non-nil fields of in into a and validates the result.
func apply(a *ArtistDTO, in ArtistInput) error {
	if in.Name != nil {
		if a.Name = strings.TrimSpace(*in.Name); a.Name == "" {
			return apperrors.Invalid("name must not be empty")
		}
	}
	if in.Bio != nil {
		a.Bio = trimmed(in.Bio)
	}
	if in.Image != nil {
		a.Image = trimmed(in.Image)
	}
	if in.Nationality != nil {
		a.Nationality = trimmed(in.Nationality)
	}
	if in.BirthYear != nil {
		a.BirthYear = in.BirthYear
	}
	if in.Style != nil {
		a.Style = trimmed(in.Style)
	}
	if in.Verified != nil {
		a.Verified = *in.Verified
	}
	if in.Trending != nil {
		a.Trending = *in.Trending
	}
	if in.TotalSales != nil {
		a.TotalSales = *in.TotalSales
	}
	if in.AveragePrice != nil {
		a.AveragePrice = *in.AveragePrice
	}

	if a.TotalSales.IsNegative() || a.AveragePrice.IsNegative() {
		return apperrors.Invalid("sales figures must not be negative")
	}
	if err := db_client.CheckAmount("totalSales", a.TotalSales); err != nil {
		return err
	}
	return db_client.CheckAmount("averagePrice", a.AveragePrice)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtist(row rowScanner) (*ArtistDTO, error) {
	var a ArtistDTO
	if err := row.Scan(&a.ID, &a.Name, &a.Bio, &a.Image, &a.Nationality, &a.BirthYear, &a.Style,
		&a.Verified, &a.Trending, &a.TotalSales, &a.AveragePrice, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
