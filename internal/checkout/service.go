// Package checkout is the application layer: it mutates entities, persists them
// through the repositories and announces what happened on the event dispatcher.
package checkout

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/gocheckout/internal/event"
	"github.com/dshills/gocheckout/internal/logger"
	"github.com/dshills/gocheckout/pkg/types"
)

type OrderStore interface {
	Create(ctx context.Context, order *types.Order) error
	Update(ctx context.Context, order *types.Order) error
	Find(ctx context.Context, id string) (*types.Order, error)
	FindAll(ctx context.Context) ([]*types.Order, error)
}

type CustomerStore interface {
	Create(ctx context.Context, c *types.Customer) error
	Update(ctx context.Context, c *types.Customer) error
	Find(ctx context.Context, id string) (*types.Customer, error)
}

type ProductStore interface {
	Create(ctx context.Context, p *types.Product) error
	Find(ctx context.Context, id string) (*types.Product, error)
}

// Notifier delivers domain events; *event.Dispatcher satisfies it
type Notifier interface {
	Notify(ctx context.Context, evt event.Event) error
}

// Service coordinates entities, repositories and the dispatcher
type Service struct {
	orders    OrderStore
	customers CustomerStore
	products  ProductStore
	events    Notifier
	log       *logger.Logger

	// Worker pool size for batch operations
	workers int
}

type Option func(*Service)

// WithWorkers bounds the concurrency of CreateProducts (default: runtime.NumCPU())
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

func New(orders OrderStore, customers CustomerStore, products ProductStore, events Notifier, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	s := &Service{
		orders:    orders,
		customers: customers,
		products:  products,
		events:    events,
		log:       log,
		workers:   runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProductInput describes a product to create. An empty ID is generated.
type ProductInput struct {
	ID    string
	Name  string
	Price float64
}

// ItemInput describes one order line. Name and price come from the product.
type ItemInput struct {
	ID        string
	ProductID string
	Quantity  int
}

type PlaceOrderInput struct {
	ID         string
	CustomerID string
	Items      []ItemInput
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// notify publishes evt after its entity was stored. A handler error is returned
// to the caller but the stored state stays.
func (s *Service) notify(ctx context.Context, evt event.Event) error {
	if s.events == nil {
		return nil
	}
	if err := s.events.Notify(ctx, evt); err != nil {
		s.log.Warn("event handler failed", "event", evt.EventName(), "event_id", evt.EventID(), "error", err)
		return fmt.Errorf("failed to notify %s: %w", evt.EventName(), err)
	}
	return nil
}

// RegisterCustomer stores a new inactive customer and notifies CustomerCreatedEvent
func (s *Service) RegisterCustomer(ctx context.Context, id, name string) (*types.Customer, error) {
	c, err := types.NewCustomer(newID(id), name)
	if err != nil {
		return nil, err
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to store customer: %w", err)
	}
	s.log.Debug("customer registered", "customer_id", c.ID())
	return c, s.notify(ctx, event.NewCustomerCreated(c))
}

// ChangeCustomerAddress replaces the customer's address and notifies CustomerAddressChangedEvent
func (s *Service) ChangeCustomerAddress(ctx context.Context, id string, addr types.Address) (*types.Customer, error) {
	c, err := s.customers.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	if err := c.ChangeAddress(addr); err != nil {
		return nil, err
	}
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return c, s.notify(ctx, event.NewCustomerAddressChanged(c))
}

// SetCustomerActive activates or deactivates a customer. Activation needs an address.
func (s *Service) SetCustomerActive(ctx context.Context, id string, active bool) (*types.Customer, error) {
	c, err := s.customers.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	if active {
		if err := c.Activate(); err != nil {
			return nil, err
		}
	} else {
		c.Deactivate()
	}
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return c, nil
}

func (s *Service) AddRewardPoints(ctx context.Context, id string, points int) (*types.Customer, error) {
	c, err := s.customers.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	if err := c.AddRewardPoints(points); err != nil {
		return nil, err
	}
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return c, nil
}

// CreateProduct stores a product and notifies ProductCreatedEvent
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*types.Product, error) {
	p, err := types.NewProduct(newID(in.ID), in.Name, in.Price)
	if err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to store product: %w", err)
	}
	return p, s.notify(ctx, event.NewProductCreated(p))
}

// CreateProducts creates products concurrently. The result follows the input order;
// the first failure cancels the products not yet started.
func (s *Service) CreateProducts(ctx context.Context, inputs []ProductInput) ([]*types.Product, error) {
	products := make([]*types.Product, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := s.CreateProduct(gctx, in)
			if err != nil {
				return fmt.Errorf("product %d: %w", i, err)
			}
			products[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return products, nil
}

// buildItems resolves each product and copies its name and price into the item
func (s *Service) buildItems(ctx context.Context, inputs []ItemInput) ([]types.OrderItem, error) {
	items := make([]types.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		p, err := s.products.Find(ctx, in.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to find product %q: %w", in.ProductID, err)
		}
		item, err := types.NewOrderItem(newID(in.ID), p.Name(), p.Price(), p.ID(), in.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// PlaceOrder checks that the customer and every product exist, then stores the order
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*types.Order, error) {
	if in.CustomerID == "" {
		return nil, &types.ValidationError{Entity: "order", Field: "customer_id", Err: types.ErrEmptyCustomerID}
	}
	if _, err := s.customers.Find(ctx, in.CustomerID); err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	items, err := s.buildItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	order, err := types.NewOrder(newID(in.ID), in.CustomerID, items)
	if err != nil {
		return nil, err
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to store order: %w", err)
	}
	s.log.Info("order placed", "order_id", order.ID(), "customer_id", order.CustomerID(), "total", order.Total())
	return order, nil
}

// ReplaceOrderItems swaps the whole item set of an existing order
func (s *Service) ReplaceOrderItems(ctx context.Context, orderID string, inputs []ItemInput) (*types.Order, error) {
	order, err := s.orders.Find(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	items, err := s.buildItems(ctx, inputs)
	if err != nil {
		return nil, err
	}
	if err := order.ChangeItems(items); err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*types.Order, error) {
	order, err := s.orders.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*types.Order, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *Service) GetCustomer(ctx context.Context, id string) (*types.Customer, error) {
	c, err := s.customers.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return c, nil
}
