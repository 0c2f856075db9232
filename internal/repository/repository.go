package repository

import (
	"car-auction/internal/biddingerrors"
	model "car-auction/internal/models"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// AuctionStore defines the persistence operations of the car auction marketplace
type AuctionStore interface {
	Initialize(ctx context.Context) error
	RegisterUser(ctx context.Context, email, password, name string) (int64, error)
	LoginUser(ctx context.Context, email, password string) (model.User, error)
	ListActiveAuctions(ctx context.Context) ([]model.AuctionSummary, error)
	PlaceBid(ctx context.Context, auctionID, userID int64, amount float64) error
	ListBids(ctx context.Context, auctionID int64) ([]model.BidWithUser, error)
	SeedSampleData(ctx context.Context) error
}

// sqlite pragmas applied to every pooled connection through the DSN
var connPragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
	"journal_mode(WAL)",
}

// SQLStore is a SQLite-backed implementation of AuctionStore.
// Every operation checks out its own connection and returns it before exiting.
type SQLStore struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the SQLite database at path. Schema creation is
// left to Initialize.
func Open(path string) (*SQLStore, error) {
	if path == "" {
		return nil, fmt.Errorf("open store: empty path")
	}
	// the driver splits the DSN at '?' and would misread the file name
	if strings.ContainsAny(path, "?#") {
		return nil, fmt.Errorf("open store: path %q must not contain '?' or '#'", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("open store: create parent dir: %w", err)
	}

	db, err := sql.Open("sqlite", buildDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open store: ping: %w", err)
	}

	return &SQLStore{db: db, path: path}, nil
}

func buildDSN(path string) string {
	q := url.Values{}
	for _, p := range connPragmas {
		q.Add("_pragma", p)
	}
	return path + "?" + q.Encode()
}

// Close releases the underlying connection pool
func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location
func (s *SQLStore) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// withConn checks out a dedicated connection for fn and always returns it to the pool
func (s *SQLStore) withConn(ctx context.Context, op string, fn func(conn *sql.Conn) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return storageError(op+": acquire connection", err)
	}
	defer conn.Close()

	return fn(conn)
}

// withTx runs fn inside a transaction on a dedicated connection. Any error
// returned by fn rolls back every write fn made.
func (s *SQLStore) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	return s.withConn(ctx, op, func(conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return storageError(op+": begin transaction", err)
		}
		defer tx.Rollback()

		if err := fn(tx); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return storageError(op+": commit", err)
		}
		return nil
	})
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, biddingerrors.ErrStorageFailure, err)
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// compile-time interface check
var _ AuctionStore = (*SQLStore)(nil)
