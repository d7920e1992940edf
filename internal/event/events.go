package event

import "github.com/dshills/gocheckout/pkg/types"

// ProductCreatedEvent is raised after a product is created.
type ProductCreatedEvent struct {
	Base
	Product *types.Product
}

func NewProductCreated(p *types.Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{Base: newBase(), Product: p}
}

func (*ProductCreatedEvent) EventName() Name { return ProductCreated }
func (e *ProductCreatedEvent) Data() any     { return e.Product }

// CustomerCreatedEvent is raised after a customer is registered.
type CustomerCreatedEvent struct {
	Base
	Customer *types.Customer
}

func NewCustomerCreated(c *types.Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{Base: newBase(), Customer: c}
}

func (*CustomerCreatedEvent) EventName() Name { return CustomerCreated }
func (e *CustomerCreatedEvent) Data() any     { return e.Customer }

// CustomerAddressChangedEvent is raised after a customer's address is replaced.
// Customer points at the live entity, so handlers read the address current at notify time.
type CustomerAddressChangedEvent struct {
	Base
	Customer *types.Customer
}

func NewCustomerAddressChanged(c *types.Customer) *CustomerAddressChangedEvent {
	return &CustomerAddressChangedEvent{Base: newBase(), Customer: c}
}

func (*CustomerAddressChangedEvent) EventName() Name { return CustomerAddressChanged }
func (e *CustomerAddressChangedEvent) Data() any     { return e.Customer }
