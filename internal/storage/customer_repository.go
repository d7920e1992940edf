package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dshills/gocheckout/pkg/types"
)

// CustomerRepository persists customers with their address embedded in the row
type CustomerRepository struct {
	s *SQLiteStorage
}

type customerRow struct {
	ID           string
	Name         string
	Street       sql.NullString
	Number       sql.NullInt64
	Zip          sql.NullString
	City         sql.NullString
	Active       bool
	RewardPoints int
}

func customerArgs(c *types.Customer) (street, zip, city sql.NullString, number sql.NullInt64) {
	addr, ok := c.Address()
	if !ok {
		return
	}
	street = sql.NullString{String: addr.Street(), Valid: true}
	number = sql.NullInt64{Int64: int64(addr.Number()), Valid: true}
	zip = sql.NullString{String: addr.Zip(), Valid: true}
	city = sql.NullString{String: addr.City(), Valid: true}
	return
}

func (r *CustomerRepository) Create(ctx context.Context, c *types.Customer) error {
	street, zip, city, number := customerArgs(c)
	query := `
		INSERT INTO customers (id, name, street, number, zipcode, city, active, reward_points)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.s.querier().ExecContext(ctx, query,
		c.ID(), c.Name(), street, number, zip, city, c.IsActive(), c.RewardPoints())
	return fail("customer.create", c.ID(), err)
}

func (r *CustomerRepository) Update(ctx context.Context, c *types.Customer) error {
	street, zip, city, number := customerArgs(c)
	query := `
		UPDATE customers
		SET name = ?, street = ?, number = ?, zipcode = ?, city = ?, active = ?, reward_points = ?
		WHERE id = ?
	`
	err := execOne(ctx, r.s.querier(), query,
		c.Name(), street, number, zip, city, c.IsActive(), c.RewardPoints(), c.ID())
	return fail("customer.update", c.ID(), err)
}

const selectCustomers = `
	SELECT id, name, street, number, zipcode, city, active, reward_points
	FROM customers
`

func (r *CustomerRepository) Find(ctx context.Context, id string) (*types.Customer, error) {
	var row customerRow
	err := r.s.querier().QueryRowContext(ctx, selectCustomers+` WHERE id = ?`, id).Scan(
		&row.ID, &row.Name, &row.Street, &row.Number, &row.Zip, &row.City, &row.Active, &row.RewardPoints,
	)
	if err == sql.ErrNoRows {
		return nil, fail("customer.find", id, ErrNotFound)
	}
	if err != nil {
		return nil, fail("customer.find", id, err)
	}

	c, err := rebuildCustomer(row)
	if err != nil {
		return nil, fail("customer.find", id, err)
	}
	return c, nil
}

// FindAll lists customers ordered by id
func (r *CustomerRepository) FindAll(ctx context.Context) ([]*types.Customer, error) {
	rows, err := r.s.querier().QueryContext(ctx, selectCustomers+` ORDER BY id`)
	if err != nil {
		return nil, fail("customer.find_all", "", err)
	}
	defer func() { _ = rows.Close() }()

	customers := make([]*types.Customer, 0)
	for rows.Next() {
		var row customerRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Street, &row.Number, &row.Zip, &row.City, &row.Active, &row.RewardPoints); err != nil {
			return nil, fail("customer.find_all", "", err)
		}
		c, err := rebuildCustomer(row)
		if err != nil {
			return nil, fail("customer.find_all", row.ID, err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fail("customer.find_all", "", err)
	}
	return customers, nil
}

func rebuildCustomer(row customerRow) (*types.Customer, error) {
	c, err := types.NewCustomer(row.ID, row.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild customer: %w", err)
	}
	if row.Street.Valid {
		addr, err := types.NewAddress(row.Street.String, int(row.Number.Int64), row.Zip.String, row.City.String)
		if err != nil {
			return nil, fmt.Errorf("failed to rebuild address: %w", err)
		}
		if err := c.ChangeAddress(addr); err != nil {
			return nil, err
		}
	}
	if err := c.AddRewardPoints(row.RewardPoints); err != nil {
		return nil, fmt.Errorf("failed to rebuild reward points: %w", err)
	}
	if row.Active {
		if err := c.Activate(); err != nil {
			return nil, fmt.Errorf("failed to rebuild customer status: %w", err)
		}
	}
	return c, nil
}
