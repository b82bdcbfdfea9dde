package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresUserStore is the production Postgres-backed implementation.
type PostgresUserStore struct {
	db *pgxpool.Pool
}

func NewPostgresUserStore(db *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) CreateUser(ctx context.Context, email, passwordHash string) (User, error) {
	const q = `INSERT INTO users (email, password_hash)
	           VALUES ($1, $2)
	           RETURNING id, email, password_hash, created_at`
	var u User
	err := s.db.QueryRow(ctx, q, email, passwordHash).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrConflict
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *PostgresUserStore) GetUserByEmail(ctx context.Context, email string) (User, bool, error) {
	const q = `SELECT id, email, password_hash, created_at FROM users WHERE email=$1`
	var u User
	err := s.db.QueryRow(ctx, q, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, false, nil
		}
		return User{}, false, fmt.Errorf("get user by email: %w", err)
	}
	return u, true, nil
}

func (s *PostgresUserStore) GetUserByID(ctx context.Context, id int64) (User, bool, error) {
	const q = `SELECT id, email, password_hash, created_at FROM users WHERE id=$1`
	var u User
	err := s.db.QueryRow(ctx, q, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, false, nil
		}
		return User{}, false, fmt.Errorf("get user by id: %w", err)
	}
	return u, true, nil
}
