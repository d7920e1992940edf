// Package types provides the entities and value objects of the checkout domain.
//
// # Value Objects
//
// Address is immutable and validated at construction:
//
//	addr, err := types.NewAddress("Street 1", 1, "Zipcode 1", "City 1")
//
// # Entities
//
// Customer, Product and Order enforce their invariants on construction and on every
// mutation. A failed mutation leaves the entity unchanged:
//
//	customer, err := types.NewCustomer("123", "Customer 1")
//	err = customer.ChangeAddress(addr)
//
//	product, err := types.NewProduct("123", "Product 1", 10)
//
//	item, err := types.NewOrderItem("1", product.Name(), product.Price(), product.ID(), 2)
//	order, err := types.NewOrder("123", customer.ID(), []types.OrderItem{item})
//	order.Total() // 20
//
// Order owns its items. Customer and product references are plain identifiers; resolving
// them is the job of the owning repository.
//
// # Validation
//
// Every invariant violation is a *ValidationError that matches ErrValidation and the
// field-specific sentinel:
//
//	_, err := types.NewOrder("1", "c1", nil)
//	errors.Is(err, types.ErrValidation) // true
//	errors.Is(err, types.ErrNoItems)    // true
package types
