package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// Store-level sentinel errors. The service layer translates these into
// apperror values; keeping them as plain sentinels lets tests swap the pgx
// implementation for an in-memory fake.
var (
	// ErrDuplicateEmail signals a unique-constraint violation on the email column.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrUserNotFound signals that no user matched the lookup.
	ErrUserNotFound = errors.New("user not found")
)

// UserStore is the credential store contract: it persists user identity
// records and answers lookups by email. The AuthService depends on this
// interface, not on pgx directly.
type UserStore interface {
	CreateUser(ctx context.Context, email, hashedPassword string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// pgxUserStore is the PostgreSQL-backed UserStore.
type pgxUserStore struct {
	db *pgxpool.Pool
}

// NewPgxUserStore creates a UserStore backed by the given connection pool.
func NewPgxUserStore(db *pgxpool.Pool) UserStore {
	return &pgxUserStore{db: db}
}

func (s *pgxUserStore) CreateUser(ctx context.Context, email, hashedPassword string) (*User, error) {
	user := &User{
		Email:          email,
		HashedPassword: hashedPassword,
	}
	query := `INSERT INTO users (email, password)
              VALUES ($1, $2)
              RETURNING id, created_at`
	err := s.db.QueryRow(ctx, query, email, hashedPassword).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && strings.Contains(pgErr.ConstraintName, "email") {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

func (s *pgxUserStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	query := `SELECT id, email, password, created_at FROM users WHERE email = $1`
	err := s.db.QueryRow(ctx, query, email).Scan(&user.ID, &user.Email, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
