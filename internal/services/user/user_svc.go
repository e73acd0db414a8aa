package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"paintingauction/internal/apperrors"
	"paintingauction/internal/auth"
	"paintingauction/internal/database/db_client"
)

type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"         example:"Bidder"`
	CreatedAt time.Time `json:"createdAtUtc"`
} // @name User

type AuthResponse struct {
	Token         string `json:"token"`
	UserID        string `json:"userId"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	ExpiresAtUnix int64  `json:"expiresAtUnix"`
} // @name AuthResponse

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

type IUserService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Me(ctx context.Context, id auth.Identity) (*UserDTO, error)
	ListUsers(ctx context.Context) ([]UserDTO, error)
	SetRole(ctx context.Context, actor auth.Identity, userID uuid.UUID, role string) error
	// SeedAdmin creates the bootstrap admin account unless the email is
	// already registered. It reports whether a user was created.
	SeedAdmin(ctx context.Context, email, password, name string) (bool, error)
}

type userService struct {
	db     *sql.DB
	tokens *auth.TokenService
	hasher *auth.Hasher
	newID  func() uuid.UUID
	now    func() time.Time
}

var _ IUserService = (*userService)(nil)

func NewUserService(db *sql.DB, tokens *auth.TokenService, hasher *auth.Hasher) IUserService {
	return &userService{
		db:     db,
		tokens: tokens,
		hasher: hasher,
		newID:  uuid.New,
		now:    time.Now,
	}
}

var errInvalidCredentials = apperrors.Unauthenticated("invalid credentials")

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// canonicalRole maps role onto one of the known roles ignoring case.
func canonicalRole(role string) (string, bool) {
	role = strings.TrimSpace(role)
	for _, r := range []string{auth.RoleUser, auth.RoleAdmin, auth.RoleBidder} {
		if strings.EqualFold(role, r) {
			return r, true
		}
	}
	return "", false
}

// Register creates a Bidder (or User) account and signs it in. The Admin
// role is only granted by another admin.
func (svc *userService) Register(ctx context.Context, in RegisterInput) (*AuthResponse, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || strings.TrimSpace(in.Password) == "" || name == "" {
		return nil, apperrors.Invalid("email, password and name are required")
	}

	role := auth.RoleBidder
	if strings.TrimSpace(in.Role) != "" {
		r, ok := canonicalRole(in.Role)
		if !ok {
			return nil, apperrors.Invalid("invalid role, allowed: User, Bidder")
		}
		if r == auth.RoleAdmin {
			return nil, apperrors.Forbidden("the Admin role cannot be self-assigned")
		}
		role = r
	}

	u, err := svc.insert(ctx, email, name, in.Password, role)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	zap.L().Info("user_registered", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return svc.signIn(u)
}

func (svc *userService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.Invalid("email and password are required")
	}

	var (
		u    UserDTO
		hash string
	)
	err := svc.db.QueryRowContext(ctx, `SELECT id, email, name, role, created_at, password_hash FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if !svc.hasher.Compare(hash, password) {
		return nil, errInvalidCredentials
	}
	return svc.signIn(&u)
}

// Me resolves the caller's identity to the stored user.
func (svc *userService) Me(ctx context.Context, id auth.Identity) (*UserDTO, error) {
	if id.UserID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}
	var u UserDTO
	err := svc.db.QueryRowContext(ctx, `SELECT id, email, name, role, created_at FROM users WHERE id = $1`, id.UserID).
		Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func (svc *userService) ListUsers(ctx context.Context) ([]UserDTO, error) {
	rows, err := svc.db.QueryContext(ctx, `SELECT id, email, name, role, created_at FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	list := make([]UserDTO, 0)
	for rows.Next() {
		var u UserDTO
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		u.CreatedAt = u.CreatedAt.UTC()
		list = append(list, u)
	}
	return list, rows.Err()
}

// SetRole changes a user's role. The last remaining admin cannot be demoted,
// whoever asks.
func (svc *userService) SetRole(ctx context.Context, actor auth.Identity, userID uuid.UUID, role string) error {
	if strings.TrimSpace(role) == "" {
		return apperrors.Invalid("role is required")
	}
	newRole, ok := canonicalRole(role)
	if !ok {
		return apperrors.Invalid("invalid role, allowed: User, Admin, Bidder")
	}

	tx, err := svc.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRowContext(ctx, `SELECT role FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("user")
	}
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}

	if current == auth.RoleAdmin && newRole != auth.RoleAdmin {
		// Locking every admin row serializes concurrent demotions.
		var admins int
		err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM (SELECT id FROM users WHERE role = 'Admin' FOR UPDATE) admins`).Scan(&admins)
		if err != nil {
			return fmt.Errorf("set role: %w", err)
		}
		if admins <= 1 {
			return apperrors.Conflict("cannot demote the only admin, create another admin first")
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE users SET role = $1 WHERE id = $2`, newRole, userID); err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("set role: commit: %w", err)
	}

	zap.L().Info("user_role_changed",
		zap.String("user_id", userID.String()),
		zap.String("from", current),
		zap.String("to", newRole),
		zap.String("actor_id", actor.UserID.String()))
	return nil
}

func (svc *userService) SeedAdmin(ctx context.Context, email, password, name string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}
	if name = strings.TrimSpace(name); name == "" {
		name = "Admin"
	}

	var exists bool
	if err := svc.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	if exists {
		return false, nil
	}
	if _, err := svc.insert(ctx, email, name, password, auth.RoleAdmin); err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return true, nil
}

func (svc *userService) insert(ctx context.Context, email, name, password, role string) (*UserDTO, error) {
	hash, err := svc.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &UserDTO{
		ID:        svc.newID(),
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: svc.now().UTC(),
	}
	const ins = `INSERT INTO users (id, email, name, password_hash, role, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = svc.db.ExecContext(ctx, ins, u.ID, u.Email, u.Name, hash, u.Role, u.CreatedAt)
	if db_client.IsUniqueViolation(err) {
		return nil, apperrors.Conflict("email already in use")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (svc *userService) signIn(u *UserDTO) (*AuthResponse, error) {
	token, expires, err := svc.tokens.Issue(auth.Identity{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:         token,
		UserID:        u.ID.String(),
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		ExpiresAtUnix: expires.Unix(),
	}, nil
}
