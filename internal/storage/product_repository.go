package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dshills/gocheckout/pkg/types"
)

// ProductRepository persists products. Find is served from an LRU cache when enabled;
// the cache holds copies so callers never share a cached entity.
type ProductRepository struct {
	s     *SQLiteStorage
	cache *lru.Cache[string, types.Product]

	// mu makes a cache fill (read + Add) and an update (write + Remove) mutually
	// exclusive, so a fill can never cache a row an update has already replaced.
	mu sync.Mutex

	// loaded runs between the database read and the cache fill in Find; tests only
	loaded func(id string)
}

func newProductRepository(s *SQLiteStorage, cacheSize int) (*ProductRepository, error) {
	r := &ProductRepository{s: s}
	if cacheSize > 0 {
		cache, err := lru.New[string, types.Product](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create product cache: %w", err)
		}
		r.cache = cache
	}
	return r, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *types.Product) error {
	_, err := r.s.querier().ExecContext(ctx,
		`INSERT INTO products (id, name, price) VALUES (?, ?, ?)`,
		p.ID(), p.Name(), p.Price())
	return fail("product.create", p.ID(), err)
}

func (r *ProductRepository) Update(ctx context.Context, p *types.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := execOne(ctx, r.s.querier(),
		`UPDATE products SET name = ?, price = ? WHERE id = ?`,
		p.Name(), p.Price(), p.ID())
	r.forget(p.ID())
	return fail("product.update", p.ID(), err)
}

func (r *ProductRepository) Find(ctx context.Context, id string) (*types.Product, error) {
	if r.cache != nil {
		if cached, ok := r.cache.Get(id); ok {
			return &cached, nil
		}
		r.mu.Lock()
		defer r.mu.Unlock()
	}

	var name string
	var price float64
	err := r.s.querier().QueryRowContext(ctx, `SELECT name, price FROM products WHERE id = ?`, id).
		Scan(&name, &price)
	if err == sql.ErrNoRows {
		return nil, fail("product.find", id, ErrNotFound)
	}
	if err != nil {
		return nil, fail("product.find", id, err)
	}

	p, err := types.NewProduct(id, name, price)
	if err != nil {
		return nil, fail("product.find", id, fmt.Errorf("failed to rebuild product: %w", err))
	}
	if r.loaded != nil {
		r.loaded(id)
	}
	if r.cache != nil {
		r.cache.Add(id, *p)
	}
	return p, nil
}

// FindAll lists products ordered by id. It always reads the table.
func (r *ProductRepository) FindAll(ctx context.Context) ([]*types.Product, error) {
	rows, err := r.s.querier().QueryContext(ctx, `SELECT id, name, price FROM products ORDER BY id`)
	if err != nil {
		return nil, fail("product.find_all", "", err)
	}
	defer func() { _ = rows.Close() }()

	products := make([]*types.Product, 0)
	for rows.Next() {
		var id, name string
		var price float64
		if err := rows.Scan(&id, &name, &price); err != nil {
			return nil, fail("product.find_all", "", err)
		}
		p, err := types.NewProduct(id, name, price)
		if err != nil {
			return nil, fail("product.find_all", id, fmt.Errorf("failed to rebuild product: %w", err))
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fail("product.find_all", "", err)
	}
	return products, nil
}

// CacheLen reports how many products are cached
func (r *ProductRepository) CacheLen() int {
	if r.cache == nil {
		return 0
	}
	return r.cache.Len()
}

func (r *ProductRepository) forget(id string) {
	if r.cache != nil {
		r.cache.Remove(id)
	}
}
