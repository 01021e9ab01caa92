package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jenca-cloud/authcore/credstore/migrations"
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

// PostgresStore is a PostgreSQL-backed Store.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection pool for the given DSN and runs
// the embedded schema migrations.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	store := &PostgresStore{db: db}
	if err := store.runMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, s.db, ".")
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Create(ctx context.Context, account Account) (Account, error) {
	query := `INSERT INTO accounts (identity, password_hash)
	          VALUES ($1, $2)
	          RETURNING created_at`

	err := s.db.QueryRowContext(ctx, query,
		account.Identity, account.PasswordHash).Scan(&account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return Account{}, ErrDuplicateIdentity
		}
		return Account{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return account, nil
}

func (s *PostgresStore) Find(ctx context.Context, identity string) (Account, error) {
	query := `SELECT identity, password_hash, created_at, revoked
	          FROM accounts
	          WHERE identity = $1`

	var account Account
	err := s.db.QueryRowContext(ctx, query, identity).Scan(
		&account.Identity, &account.PasswordHash, &account.CreatedAt, &account.Revoked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return account, nil
}

func (s *PostgresStore) UpdatePasswordHash(ctx context.Context, identity, passwordHash string) error {
	query := `UPDATE accounts SET password_hash = $2 WHERE identity = $1`

	result, err := s.db.ExecContext(ctx, query, identity, passwordHash)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Revoke(ctx context.Context, identity string) error {
	query := `UPDATE accounts SET revoked = TRUE WHERE identity = $1`

	result, err := s.db.ExecContext(ctx, query, identity)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
