package types

import "math"

// OrderItem is a line of an Order. Name and price are copied from the product when the
// order is placed; ProductID is a weak reference and carries no ownership.
type OrderItem struct {
	id        string
	name      string
	price     float64
	productID string
	quantity  int
}

func NewOrderItem(id, name string, price float64, productID string, quantity int) (OrderItem, error) {
	item := OrderItem{id: id, name: name, price: price, productID: productID, quantity: quantity}
	if err := item.validate(); err != nil {
		return OrderItem{}, err
	}
	return item, nil
}

func (i OrderItem) validate() error {
	switch {
	case i.id == "":
		return invalid("order_item", "id", ErrEmptyID)
	case i.name == "":
		return invalid("order_item", "name", ErrEmptyName)
	case i.productID == "":
		return invalid("order_item", "product_id", ErrEmptyProductID)
	case i.quantity <= 0:
		return invalid("order_item", "quantity", ErrNonPositiveQuantity)
	}
	if err := checkPrice(i.price); err != nil {
		return invalid("order_item", "price", err)
	}
	if total := i.Total(); math.IsInf(total, 0) {
		return invalid("order_item", "total", ErrNonFiniteTotal)
	}
	return nil
}

func (i OrderItem) ID() string        { return i.id }
func (i OrderItem) Name() string      { return i.name }
func (i OrderItem) Price() float64    { return i.price }
func (i OrderItem) ProductID() string { return i.productID }
func (i OrderItem) Quantity() int     { return i.quantity }

// Total is price × quantity
func (i OrderItem) Total() float64 {
	return i.price * float64(i.quantity)
}

// Order is the aggregate root owning its items. Items keep insertion order and never
// outlive the order. CustomerID is a weak reference.
type Order struct {
	id         string
	customerID string
	items      []OrderItem
}

func NewOrder(id, customerID string, items []OrderItem) (*Order, error) {
	o := &Order{id: id, customerID: customerID}
	if err := o.setItems(items); err != nil {
		return nil, err
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Order) validate() error {
	if o.id == "" {
		return invalid("order", "id", ErrEmptyID)
	}
	if o.customerID == "" {
		return invalid("order", "customer_id", ErrEmptyCustomerID)
	}
	return nil
}

func (o *Order) setItems(items []OrderItem) error {
	if len(items) == 0 {
		return invalid("order", "items", ErrNoItems)
	}
	var total float64
	for _, item := range items {
		if err := item.validate(); err != nil {
			return err
		}
		total += item.Total()
	}
	if math.IsInf(total, 0) || math.IsNaN(total) {
		return invalid("order", "total", ErrNonFiniteTotal)
	}
	o.items = append([]OrderItem(nil), items...)
	return nil
}

func (o *Order) ID() string         { return o.id }
func (o *Order) CustomerID() string { return o.customerID }

// Items returns a copy of the order's items in insertion order
func (o *Order) Items() []OrderItem {
	return append([]OrderItem(nil), o.items...)
}

// ChangeItems replaces the whole item set; the previous items are kept on failure
func (o *Order) ChangeItems(items []OrderItem) error {
	return o.setItems(items)
}

// Total is the sum of price × quantity over all items. It is recomputed on every call.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.items {
		total += item.Total()
	}
	return total
}
