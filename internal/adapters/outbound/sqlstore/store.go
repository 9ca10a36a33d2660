package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/abdidvp/inventario/internal/domain"
)

const (
	schemaSQL = `CREATE TABLE IF NOT EXISTS products (code TEXT)`
	insertSQL = `INSERT INTO products (code) VALUES (?)`
	existsSQL = `SELECT COUNT(*) FROM products WHERE code = ?`
	scanSQL   = `SELECT code FROM products`
	countSQL  = `SELECT COUNT(*) FROM products`

	savepoint = "inventario_batch"
)

// Store implements domain.ProductStore and domain.Session on top of sqlx.
//
// All reads and writes go through one session transaction opened by Open.
// Close(true) commits it; Close(false) or a killed process discards every
// insert made since the last commit. Each batch runs inside a savepoint of
// that transaction, so a failed batch leaves no rows behind. Methods are
// safe for concurrent use; calls are serialized on the session.
type Store struct {
	mu         sync.Mutex
	db         *sqlx.DB
	tx         *sqlx.Tx
	mode       domain.StoreMode
	autoCommit bool
	logger     *zap.Logger
}

// Open connects to the configured database, provisions the products table
// and begins the session transaction.
func Open(ctx context.Context, cfg domain.StoreConfig, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	name, err := driverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.ConnectContext(ctx, name, cfg.DSN)
	if err != nil {
		return nil, storageError("store.open", fmt.Errorf("connecting to %s: %w", cfg.Driver, err))
	}
	if cfg.Driver == domain.DriverSQLite {
		// a second pooled connection would not see the session transaction
		db.SetMaxOpenConns(1)
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, storageError("store.open", fmt.Errorf("creating products table: %w", err))
	}

	s := &Store{
		db:         db,
		mode:       cfg.Mode,
		autoCommit: cfg.AutoCommit,
		logger:     logger.With(zap.String("driver", string(cfg.Driver))),
	}
	if s.mode == "" {
		s.mode = domain.ModeMultiset
	}

	if err := s.begin(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s.logger.Debug("store opened", zap.String("mode", string(s.mode)), zap.Bool("autocommit", s.autoCommit))
	return s, nil
}

// Insert appends one row per code in batch order. In unique mode a code that
// is already stored fails the whole batch with a duplicate error.
func (s *Store) Insert(ctx context.Context, batch domain.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		return storageError("store.insert", domain.ErrStoreClosed)
	}

	if _, err := s.tx.ExecContext(ctx, "SAVEPOINT "+savepoint); err != nil {
		return storageError("store.insert", fmt.Errorf("opening savepoint: %w", err))
	}

	if err := s.insertRows(ctx, batch); err != nil {
		if _, rbErr := s.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
			s.logger.Error("rolling back batch", zap.Error(rbErr))
			return errors.Join(err, storageError("store.insert", rbErr))
		}
		_, _ = s.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+savepoint)
		return err
	}

	if _, err := s.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
		return storageError("store.insert", fmt.Errorf("releasing savepoint: %w", err))
	}

	if s.autoCommit {
		return s.commit(ctx)
	}
	return nil
}

func (s *Store) insertRows(ctx context.Context, batch domain.Batch) error {
	for _, code := range batch.Codes() {
		if s.mode == domain.ModeUnique {
			var n int
			if err := s.tx.GetContext(ctx, &n, s.tx.Rebind(existsSQL), string(code)); err != nil {
				return storageError("store.insert", fmt.Errorf("checking %q: %w", code, err))
			}
			if n > 0 {
				return &domain.OpError{Op: "store.insert", Kind: domain.KindDuplicate, Code: string(code), Err: domain.ErrDuplicateCode}
			}
		}

		if _, err := s.tx.ExecContext(ctx, s.tx.Rebind(insertSQL), string(code)); err != nil {
			return &domain.OpError{Op: "store.insert", Kind: domain.KindStorage, Code: string(code), Err: err}
		}
	}
	return nil
}

// Scan returns every stored code. No ordering is applied.
func (s *Store) Scan(ctx context.Context) ([]domain.ProductCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		return nil, storageError("store.scan", domain.ErrStoreClosed)
	}

	var rows []string
	if err := s.tx.SelectContext(ctx, &rows, scanSQL); err != nil {
		return nil, storageError("store.scan", err)
	}

	codes := make([]domain.ProductCode, len(rows))
	for i, r := range rows {
		codes[i] = domain.ProductCode(r)
	}
	return codes, nil
}

// Count returns the number of stored rows, duplicates included.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		return 0, storageError("store.count", domain.ErrStoreClosed)
	}

	var n int
	if err := s.tx.GetContext(ctx, &n, countSQL); err != nil {
		return 0, storageError("store.count", err)
	}
	return n, nil
}

// Commit makes everything inserted so far durable and starts a new session.
func (s *Store) Commit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx)
}

func (s *Store) commit(ctx context.Context) error {
	if s.tx == nil {
		return storageError("store.commit", domain.ErrStoreClosed)
	}

	if err := s.tx.Commit(); err != nil {
		s.tx = nil
		return storageError("store.commit", err)
	}
	s.tx = nil
	return s.begin(ctx)
}

// Close commits or discards the session and releases the connection.
// Calling Close on a closed store is a no-op.
func (s *Store) Close(commit bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	var txErr error
	if s.tx != nil {
		if commit {
			txErr = s.tx.Commit()
		} else {
			txErr = s.tx.Rollback()
		}
		s.tx = nil
	}

	dbErr := s.db.Close()
	s.db = nil
	s.logger.Debug("store closed", zap.Bool("commit", commit))

	if err := errors.Join(txErr, dbErr); err != nil {
		return storageError("store.close", err)
	}
	return nil
}

func (s *Store) begin(ctx context.Context) error {
	// the session outlives the call that opens it
	tx, err := s.db.BeginTxx(context.WithoutCancel(ctx), nil)
	if err != nil {
		return storageError("store.begin", err)
	}
	s.tx = tx
	return nil
}

func driverName(d domain.StoreDriver) (string, error) {
	switch d {
	case domain.DriverSQLite, "":
		return "sqlite", nil
	case domain.DriverMySQL:
		return "mysql", nil
	case domain.DriverPostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported store driver %q", d)
	}
}

func storageError(op string, err error) error {
	return &domain.OpError{Op: op, Kind: domain.KindStorage, Err: err}
}
