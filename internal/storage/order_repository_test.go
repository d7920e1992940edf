package storage

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dshills/gocheckout/pkg/types"
)

// OrderRepositorySuite runs every test against a fresh in-memory database holding
// customer "123"
type OrderRepositorySuite struct {
	suite.Suite
	ctx     context.Context
	storage *SQLiteStorage
	orders  *OrderRepository
}

func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(OrderRepositorySuite))
}

func (s *OrderRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	storage, err := NewSQLiteStorage(":memory:")
	s.Require().NoError(err)
	s.storage = storage
	s.orders = storage.Orders()

	customer, err := types.NewCustomer("123", "Customer 1")
	s.Require().NoError(err)
	address, err := types.NewAddress("Street 1", 1, "Zipcode 1", "City 1")
	s.Require().NoError(err)
	s.Require().NoError(customer.ChangeAddress(address))
	s.Require().NoError(storage.Customers().Create(s.ctx, customer))
}

func (s *OrderRepositorySuite) TearDownTest() {
	s.Require().NoError(s.storage.Close())
}

// item stores a product and returns an order item referencing it
func (s *OrderRepositorySuite) item(itemID, productID, name string, price float64, quantity int) types.OrderItem {
	product, err := types.NewProduct(productID, name, price)
	s.Require().NoError(err)
	s.Require().NoError(s.storage.Products().Create(s.ctx, product))

	item, err := types.NewOrderItem(itemID, product.Name(), product.Price(), product.ID(), quantity)
	s.Require().NoError(err)
	return item
}

// items builds n items with ids 1..n, price 10*i and quantity i
func (s *OrderRepositorySuite) items(n int) []types.OrderItem {
	items := make([]types.OrderItem, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("%d", i)
		items = append(items, s.item(id, id, "Product "+id, float64(10*i), i))
	}
	return items
}

func (s *OrderRepositorySuite) newOrder(id string, items ...types.OrderItem) *types.Order {
	order, err := types.NewOrder(id, "123", items)
	s.Require().NoError(err)
	return order
}

type storedItem struct {
	ID, Name, OrderID, ProductID string
	Price                        float64
	Quantity                     int
}

func (s *OrderRepositorySuite) storedItems(orderID string) []storedItem {
	rows, err := s.storage.db.Query(`
		SELECT id, name, price, quantity, order_id, product_id
		FROM order_items WHERE order_id = ? ORDER BY position`, orderID)
	s.Require().NoError(err)
	defer rows.Close()

	var items []storedItem
	for rows.Next() {
		var it storedItem
		s.Require().NoError(rows.Scan(&it.ID, &it.Name, &it.Price, &it.Quantity, &it.OrderID, &it.ProductID))
		items = append(items, it)
	}
	s.Require().NoError(rows.Err())
	return items
}

func (s *OrderRepositorySuite) TestCreate() {
	orderItem := s.item("1", "123", "Product 1", 10, 2)
	order := s.newOrder("123", orderItem)

	s.Require().NoError(s.orders.Create(s.ctx, order))

	var id, customerID string
	var total float64
	s.Require().NoError(s.storage.db.QueryRow(`SELECT id, customer_id, total FROM orders WHERE id = ?`, "123").
		Scan(&id, &customerID, &total))
	s.Equal("123", id)
	s.Equal("123", customerID)
	s.Equal(order.Total(), total)
	s.Equal(20.0, total)

	s.Equal([]storedItem{{
		ID:        orderItem.ID(),
		Name:      orderItem.Name(),
		Price:     orderItem.Price(),
		Quantity:  orderItem.Quantity(),
		OrderID:   "123",
		ProductID: "123",
	}}, s.storedItems("123"))
}

func (s *OrderRepositorySuite) TestFind() {
	orderItem := s.item("1", "123", "Product 1", 10, 2)
	orderItem2 := s.item("2", "1234", "Product 2", 25, 5)
	order := s.newOrder("123", orderItem, orderItem2)

	s.Require().NoError(s.orders.Create(s.ctx, order))

	found, err := s.orders.Find(s.ctx, order.ID())
	s.Require().NoError(err)
	s.Equal(order, found)
	s.Equal(145.0, found.Total())
}

func (s *OrderRepositorySuite) TestFind_SingleItemScenario() {
	order := s.newOrder("123", s.item("1", "123", "Product 1", 10, 2))
	s.Require().NoError(s.orders.Create(s.ctx, order))

	found, err := s.orders.Find(s.ctx, "123")
	s.Require().NoError(err)
	s.Equal(20.0, found.Total())
	s.Require().Len(found.Items(), 1)

	item := found.Items()[0]
	s.Equal("1", item.ID())
	s.Equal("Product 1", item.Name())
	s.Equal(10.0, item.Price())
	s.Equal("123", item.ProductID())
	s.Equal(2, item.Quantity())
}

func (s *OrderRepositorySuite) TestFind_NotFound() {
	_, err := s.orders.Find(s.ctx, "missing")
	s.True(IsNotFound(err))
}

func (s *OrderRepositorySuite) TestFind_PreservesItemOrder() {
	items := s.items(6)
	// deliberately not sorted by id
	order := s.newOrder("111", items[4], items[0], items[5], items[2])
	s.Require().NoError(s.orders.Create(s.ctx, order))

	found, err := s.orders.Find(s.ctx, "111")
	s.Require().NoError(err)
	s.Equal(order.Items(), found.Items())
}

func (s *OrderRepositorySuite) TestFind_DetectsTotalMismatch() {
	order := s.newOrder("123", s.item("1", "123", "Product 1", 10, 2))
	s.Require().NoError(s.orders.Create(s.ctx, order))

	_, err := s.storage.db.Exec(`UPDATE orders SET total = 999 WHERE id = ?`, "123")
	s.Require().NoError(err)

	_, err = s.orders.Find(s.ctx, "123")
	s.ErrorIs(err, ErrTotalMismatch)
}

func (s *OrderRepositorySuite) TestFindAll() {
	items := s.items(6)
	order := s.newOrder("111", items[0], items[1])
	order2 := s.newOrder("222", items[2], items[3])
	order3 := s.newOrder("333", items[4], items[5])

	s.Require().NoError(s.orders.Create(s.ctx, order))
	s.Require().NoError(s.orders.Create(s.ctx, order2))
	s.Require().NoError(s.orders.Create(s.ctx, order3))

	orders, err := s.orders.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Len(orders, 3)
	s.Equal([]*types.Order{order, order2, order3}, orders)
}

func (s *OrderRepositorySuite) TestFindAll_CreationOrder() {
	items := s.items(3)
	// ids in reverse lexical order of creation
	for i, id := range []string{"c", "b", "a"} {
		s.Require().NoError(s.orders.Create(s.ctx, s.newOrder(id, items[i])))
	}

	orders, err := s.orders.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(orders, 3)
	s.Equal("c", orders[0].ID())
	s.Equal("b", orders[1].ID())
	s.Equal("a", orders[2].ID())
}

func (s *OrderRepositorySuite) TestFindAll_Empty() {
	orders, err := s.orders.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(orders)
}

func (s *OrderRepositorySuite) TestUpdate() {
	items := s.items(6)
	order := s.newOrder("111", items[0], items[1], items[2])
	s.Require().NoError(s.orders.Create(s.ctx, order))

	updated := s.newOrder("111", items[3], items[4], items[5])
	s.Require().NoError(s.orders.Update(s.ctx, updated))

	found, err := s.orders.Find(s.ctx, order.ID())
	s.Require().NoError(err)
	s.Equal(updated, found)

	stored := s.storedItems("111")
	s.Require().Len(stored, 3)
	for _, it := range stored {
		s.NotContains([]string{"1", "2", "3"}, it.ID, "old items must be gone")
	}

	var total float64
	s.Require().NoError(s.storage.db.QueryRow(`SELECT total FROM orders WHERE id = ?`, "111").Scan(&total))
	s.Equal(updated.Total(), total)
}

func (s *OrderRepositorySuite) TestUpdate_ReusesItemIDs() {
	items := s.items(2)
	order := s.newOrder("111", items[0], items[1])
	s.Require().NoError(s.orders.Create(s.ctx, order))

	changed, err := types.NewOrderItem(items[0].ID(), items[0].Name(), items[0].Price(), items[0].ProductID(), 7)
	s.Require().NoError(err)
	s.Require().NoError(order.ChangeItems([]types.OrderItem{changed}))
	s.Require().NoError(s.orders.Update(s.ctx, order))

	found, err := s.orders.Find(s.ctx, "111")
	s.Require().NoError(err)
	s.Equal(order, found)
	s.Equal(70.0, found.Total())
}

func (s *OrderRepositorySuite) TestUpdate_NotFound() {
	order := s.newOrder("missing", s.items(1)...)

	err := s.orders.Update(s.ctx, order)
	s.True(IsNotFound(err))
	s.Empty(s.storedItems("missing"))
}

func (s *OrderRepositorySuite) TestUpdate_RollsBackOnFailure() {
	items := s.items(3)
	s.Require().NoError(s.orders.Create(s.ctx, s.newOrder("111", items[0])))
	s.Require().NoError(s.orders.Create(s.ctx, s.newOrder("222", items[1])))

	// item "2" belongs to order 222, so re-using it in 111 violates its primary key
	conflicting := s.newOrder("111", items[2], items[1])
	err := s.orders.Update(s.ctx, conflicting)
	s.True(IsAlreadyExists(err))

	found, err := s.orders.Find(s.ctx, "111")
	s.Require().NoError(err)
	s.Equal([]types.OrderItem{items[0]}, found.Items())
	s.Equal(items[0].Total(), found.Total())
}

func (s *OrderRepositorySuite) TestCreate_DuplicateID() {
	items := s.items(2)
	s.Require().NoError(s.orders.Create(s.ctx, s.newOrder("111", items[0])))

	err := s.orders.Create(s.ctx, s.newOrder("111", items[1]))
	s.True(IsAlreadyExists(err))

	var serr *Error
	s.Require().ErrorAs(err, &serr)
	s.Equal("order.create", serr.Op)

	// no partial insert of the second order's items
	s.Len(s.storedItems("111"), 1)
	var count int
	s.Require().NoError(s.storage.db.QueryRow(`SELECT COUNT(*) FROM order_items WHERE id = ?`, items[1].ID()).Scan(&count))
	s.Zero(count)
}

func (s *OrderRepositorySuite) TestCreate_RollsBackOrderRowOnItemFailure() {
	items := s.items(1)
	s.Require().NoError(s.orders.Create(s.ctx, s.newOrder("111", items[0])))

	// same item id in another order fails after the order row was inserted
	err := s.orders.Create(s.ctx, s.newOrder("222", items[0]))
	s.True(IsAlreadyExists(err))

	_, err = s.orders.Find(s.ctx, "222")
	s.True(IsNotFound(err))
}

func (s *OrderRepositorySuite) TestCreate_ProductIsWeakReference() {
	item, err := types.NewOrderItem("1", "Ghost", 5, "no-such-product", 1)
	s.Require().NoError(err)
	order, err := types.NewOrder("111", "no-such-customer", []types.OrderItem{item})
	s.Require().NoError(err)

	s.Require().NoError(s.orders.Create(s.ctx, order))

	found, err := s.orders.Find(s.ctx, "111")
	s.Require().NoError(err)
	s.Equal(order, found)
}

func (s *OrderRepositorySuite) TestDelete() {
	items := s.items(2)
	s.Require().NoError(s.orders.Create(s.ctx, s.newOrder("111", items...)))

	s.Require().NoError(s.orders.Delete(s.ctx, "111"))

	_, err := s.orders.Find(s.ctx, "111")
	s.True(IsNotFound(err))
	s.Empty(s.storedItems("111"))

	s.True(IsNotFound(s.orders.Delete(s.ctx, "111")))
}

func (s *OrderRepositorySuite) TestFindAll_LargeTotals() {
	half := s.item("1", "big", "Big", math.MaxFloat64/2, 1)
	other := s.item("2", "big2", "Big 2", math.MaxFloat64/2, 1)
	order := s.newOrder("111", half, other)
	s.Require().Equal(math.MaxFloat64, order.Total())
	s.Require().NoError(s.orders.Create(s.ctx, order))
	s.Require().NoError(s.orders.Create(s.ctx, s.newOrder("222", s.item("3", "small", "Small", 1, 1))))

	found, err := s.orders.Find(s.ctx, "111")
	s.Require().NoError(err)
	s.Equal(order, found)

	orders, err := s.orders.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Len(orders, 2)
}
