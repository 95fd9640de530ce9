package store

import (
	"affiliate-ledger/internal/observability"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // Import the pgx stdlib for sqlx
	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrUnavailable marks a storage I/O failure the caller may retry.
	ErrUnavailable = errors.New("store unavailable")
	// ErrDuplicateCode is returned when an insert collides with an existing affiliate code.
	ErrDuplicateCode = errors.New("affiliate code already exists")
	// ErrDuplicateReferral is returned when an order was already attributed to the link.
	ErrDuplicateReferral = errors.New("referral already recorded for order")
	// ErrStaleRecord is returned when a compare-and-set update matched no row.
	ErrStaleRecord = errors.New("record changed concurrently")
)

const pgUniqueViolation = "23505"

type Store struct {
	db     *sqlx.DB
	logger *observability.Logger
}

func New(connectionString string, logger *observability.Logger) (Store, error) {
	db, err := sqlx.Open("pgx", connectionString)
	if err != nil {
		return Store{}, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return Store{db: db, logger: logger}, nil
}

// DB returns the underlying database connection
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Ping verifies the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection pool
func (s *Store) Close() error {
	return s.db.Close()
}

// dbError marks err as a retryable storage failure.
func dbError(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, ErrUnavailable, err)
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgUniqueViolation && (constraint == "" || pgErr.ConstraintName == constraint)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// withTx runs fn inside a transaction, committing on success.
func (s *Store) withTx(ctx context.Context, opts *sql.TxOptions, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, opts)
	if err != nil {
		return dbError("begin transaction", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			s.logger.Error(ctx, "failed to rollback transaction", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return dbError("commit transaction", err)
	}
	return nil
}
