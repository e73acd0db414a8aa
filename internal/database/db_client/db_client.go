package db_client

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"

	"paintingauction/internal/apperrors"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func Open(host, port, user, pass, database string, maxOpen int) (*sql.DB, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		url.QueryEscape(user), url.QueryEscape(pass), host, port, database,
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetConnMaxIdleTime(time.Minute)
	return db, db.Ping()
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool { return hasCode(err, codeUniqueViolation) }

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key violation.
func IsForeignKeyViolation(err error) bool { return hasCode(err, codeForeignKeyViolation) }

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern wraps q for a case-insensitive substring match with ILIKE,
// escaping the wildcard characters it contains.
func LikePattern(q string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(q)) + "%"
}

// MaxAmount is the smallest value a NUMERIC(18,2) money column cannot hold.
var MaxAmount = decimal.New(1, 16)

// CheckAmount rejects money values the schema cannot store: more than two
// decimal places, or a magnitude of MaxAmount or more.
func CheckAmount(field string, v decimal.Decimal) error {
	if !v.Equal(v.Round(2)) {
		return apperrors.Invalid("%s must have at most two decimal places", field)
	}
	if !v.Abs().LessThan(MaxAmount) {
		return apperrors.Invalid("%s must be less than %s", field, MaxAmount)
	}
	return nil
}
