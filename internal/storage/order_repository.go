package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dshills/gocheckout/pkg/types"
)

// OrderRepository persists the Order aggregate: one orders row plus one order_items
// row per item, always written and read as a unit.
type OrderRepository struct {
	s *SQLiteStorage
}

// orderRow is the orders table as read back
type orderRow struct {
	ID         string
	CustomerID string
	Total      float64
}

// orderItemRow is the order_items table as read back
type orderItemRow struct {
	ID        string
	OrderID   string
	ProductID string
	Name      string
	Price     float64
	Quantity  int
}

// Create inserts the order and its items in one transaction. The stored total is
// order.Total() at write time.
func (r *OrderRepository) Create(ctx context.Context, order *types.Order) error {
	err := r.s.withTx(ctx, func(q querier) error {
		query := `
			INSERT INTO orders (id, customer_id, total, seq)
			VALUES (?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM orders))
		`
		if _, err := q.ExecContext(ctx, query, order.ID(), order.CustomerID(), order.Total()); err != nil {
			return err
		}
		return insertItems(ctx, q, order)
	})
	return fail("order.create", order.ID(), err)
}

// Update replaces the scalar fields and the whole item set of an existing order.
func (r *OrderRepository) Update(ctx context.Context, order *types.Order) error {
	err := r.s.withTx(ctx, func(q querier) error {
		query := `UPDATE orders SET customer_id = ?, total = ? WHERE id = ?`
		if err := execOne(ctx, q, query, order.CustomerID(), order.Total(), order.ID()); err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, order.ID()); err != nil {
			return err
		}
		return insertItems(ctx, q, order)
	})
	return fail("order.update", order.ID(), err)
}

func insertItems(ctx context.Context, q querier, order *types.Order) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, name, price, quantity, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for pos, item := range order.Items() {
		_, err := q.ExecContext(ctx, query,
			item.ID(), order.ID(), item.ProductID(), item.Name(), item.Price(), item.Quantity(), pos)
		if err != nil {
			return err
		}
	}
	return nil
}

// Find loads the order and its items in item insertion order.
func (r *OrderRepository) Find(ctx context.Context, id string) (*types.Order, error) {
	var order *types.Order
	err := r.s.withTx(ctx, func(q querier) error {
		var row orderRow
		err := q.QueryRowContext(ctx, `SELECT id, customer_id, total FROM orders WHERE id = ?`, id).
			Scan(&row.ID, &row.CustomerID, &row.Total)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		items, err := scanItems(q.QueryContext(ctx, `
			SELECT id, order_id, product_id, name, price, quantity
			FROM order_items
			WHERE order_id = ?
			ORDER BY position
		`, id))
		if err != nil {
			return err
		}

		order, err = rebuildOrder(row, items)
		return err
	})
	if err != nil {
		return nil, fail("order.find", id, err)
	}
	return order, nil
}

// FindAll loads every order in creation order.
func (r *OrderRepository) FindAll(ctx context.Context) ([]*types.Order, error) {
	var orders []*types.Order
	err := r.s.withTx(ctx, func(q querier) error {
		rows, err := q.QueryContext(ctx, `SELECT id, customer_id, total FROM orders ORDER BY seq`)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()

		var orderRows []orderRow
		for rows.Next() {
			var row orderRow
			if err := rows.Scan(&row.ID, &row.CustomerID, &row.Total); err != nil {
				return err
			}
			orderRows = append(orderRows, row)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		_ = rows.Close()

		items, err := scanItems(q.QueryContext(ctx, `
			SELECT i.id, i.order_id, i.product_id, i.name, i.price, i.quantity
			FROM order_items i
			JOIN orders o ON o.id = i.order_id
			ORDER BY o.seq, i.position
		`))
		if err != nil {
			return err
		}
		byOrder := make(map[string][]orderItemRow, len(orderRows))
		for _, item := range items {
			byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
		}

		orders = make([]*types.Order, 0, len(orderRows))
		for _, row := range orderRows {
			order, err := rebuildOrder(row, byOrder[row.ID])
			if err != nil {
				return err
			}
			orders = append(orders, order)
		}
		return nil
	})
	if err != nil {
		return nil, fail("order.find_all", "", err)
	}
	return orders, nil
}

// Delete removes the order together with its items.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	err := r.s.withTx(ctx, func(q querier) error {
		if _, err := q.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, id); err != nil {
			return err
		}
		return execOne(ctx, q, `DELETE FROM orders WHERE id = ?`, id)
	})
	return fail("order.delete", id, err)
}

func scanItems(rows *sql.Rows, err error) ([]orderItemRow, error) {
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := make([]orderItemRow, 0)
	for rows.Next() {
		var item orderItemRow
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// rebuildOrder turns rows back into an Order and checks the stored total against it
func rebuildOrder(row orderRow, itemRows []orderItemRow) (*types.Order, error) {
	items := make([]types.OrderItem, 0, len(itemRows))
	for _, r := range itemRows {
		item, err := types.NewOrderItem(r.ID, r.Name, r.Price, r.ProductID, r.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to rebuild item %s: %w", r.ID, err)
		}
		items = append(items, item)
	}

	order, err := types.NewOrder(row.ID, row.CustomerID, items)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild order: %w", err)
	}

	if !totalsAgree(row.Total, order.Total()) {
		return nil, fmt.Errorf("%w: stored %v, items sum to %v", ErrTotalMismatch, row.Total, order.Total())
	}
	return order, nil
}
