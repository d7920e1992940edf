package storage

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when trying to create a duplicate entity
	ErrAlreadyExists = errors.New("already exists")
	// ErrConstraint is returned for any other constraint violation
	ErrConstraint = errors.New("constraint violation")
	// ErrTotalMismatch is returned when a stored order total disagrees with its items
	ErrTotalMismatch = errors.New("stored total does not match items")
)

// Error is the storage failure of one repository operation
type Error struct {
	Op  string // e.g. "order.create"
	ID  string
	Err error
}

func (e *Error) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("storage.%s [%s]: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("storage.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// fail wraps err for op, mapping driver constraint errors onto the sentinels.
// Both drivers report constraints with SQLite's own message text.
func fail(op, id string, err error) error {
	if err == nil {
		return nil
	}
	var serr *Error
	if errors.As(err, &serr) {
		return err
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"), strings.Contains(msg, "PRIMARY KEY constraint failed"):
		err = fmt.Errorf("%w: %v", ErrAlreadyExists, err)
	case strings.Contains(msg, "constraint failed"):
		err = fmt.Errorf("%w: %v", ErrConstraint, err)
	}
	return &Error{Op: op, ID: id, Err: err}
}

// totalsAgree compares a stored total with a recomputed one
func totalsAgree(stored, computed float64) bool {
	if stored == computed {
		return true
	}
	scale := math.Max(1, math.Max(math.Abs(stored), math.Abs(computed)))
	return math.Abs(stored-computed) <= 1e-9*scale
}

// Option configures a SQLiteStorage
type Option func(*options)

type options struct {
	productCacheSize int
}

// WithProductCacheSize sets the number of products kept in the read cache; 0 disables it
func WithProductCacheSize(size int) Option {
	return func(o *options) {
		o.productCacheSize = size
	}
}
