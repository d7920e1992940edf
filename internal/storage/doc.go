// Package storage provides SQLite-based persistence for customers, products and orders.
//
// # Database Schema
//
// Tables:
//   - schema_version: applied migration versions
//   - customers: customer state with the address embedded as nullable columns
//   - products: catalog entries with a non-negative price
//   - orders: order header with the denormalized total and a creation sequence
//   - order_items: order lines, kept in position order
//
// customer_id and product_id are plain values rather than foreign keys, so orders
// keep referring to entities that were never stored or later changed.
//
// # Basic Usage
//
//	db, err := storage.NewSQLiteStorage("checkout.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	if err := db.Orders().Create(ctx, order); err != nil {
//	    return err
//	}
//	found, err := db.Orders().Find(ctx, order.ID())
//
// # Transactions
//
// Order writes touch both order tables and always run inside a single transaction.
// Update replaces the whole item set: existing rows are deleted and the new items
// inserted, and the stored total is recomputed from them. A failed write leaves
// nothing behind.
//
// # Errors
//
// Every repository error is an *Error carrying the operation and entity id.
// Use errors.Is with ErrNotFound, ErrAlreadyExists, ErrConstraint or ErrTotalMismatch
// to classify it:
//
//	if _, err := db.Orders().Find(ctx, "123"); storage.IsNotFound(err) {
//	    // ...
//	}
//
// # Caching
//
// ProductRepository.Find is backed by an LRU cache sized with WithProductCacheSize.
// Update evicts the entry it writes; changes made outside the repository are not
// seen until the entry is evicted.
//
// # Build Modes
//
// The driver is chosen at build time:
//   - default (purego): modernc.org/sqlite, no C toolchain required
//   - cgo_sqlite tag: github.com/mattn/go-sqlite3
//
// BuildMode and DriverName report the active choice.
package storage
