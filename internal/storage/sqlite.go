package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// DefaultProductCacheSize is the product cache size when no option overrides it
const DefaultProductCacheSize = 1024

// SQLiteStorage owns the database handle shared by the repositories
type SQLiteStorage struct {
	db        *sql.DB
	orders    *OrderRepository
	customers *CustomerRepository
	products  *ProductRepository
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from single writer; it also keeps :memory: databases alive
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// OpenDB opens dbPath with the connection settings used by SQLiteStorage but applies
// no migrations. It is meant for schema maintenance.
func OpenDB(dbPath string) (*sql.DB, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// NewSQLiteStorage opens dbPath, applies pending migrations and builds the repositories
func NewSQLiteStorage(dbPath string, opts ...Option) (*SQLiteStorage, error) {
	o := options{productCacheSize: DefaultProductCacheSize}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.orders = &OrderRepository{s: s}
	s.customers = &CustomerRepository{s: s}
	s.products, err = newProductRepository(s, o.productCacheSize)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStorage) Orders() *OrderRepository       { return s.orders }
func (s *SQLiteStorage) Customers() *CustomerRepository { return s.customers }
func (s *SQLiteStorage) Products() *ProductRepository   { return s.products }

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SchemaVersion reports the applied schema version
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (string, error) {
	return SchemaVersion(ctx, s.db)
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// querier returns the DB querier
func (s *SQLiteStorage) querier() querier {
	return s.db
}

// withTx runs fn in a transaction, rolling back when fn or the commit fails
func (s *SQLiteStorage) withTx(ctx context.Context, fn func(q querier) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// execOne runs a statement that must touch exactly one row, ErrNotFound otherwise
func execOne(ctx context.Context, q querier, query string, args ...interface{}) error {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
