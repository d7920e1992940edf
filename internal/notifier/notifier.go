// Package notifier holds the side-effecting reactions to domain events. The side effects
// (emails, console messages) are stubbed as structured log lines.
package notifier

import (
	"context"
	"fmt"

	"github.com/dshills/gocheckout/internal/event"
	"github.com/dshills/gocheckout/internal/logger"
)

// ProductCreatedEmail sends an email when a product is created.
type ProductCreatedEmail struct {
	log *logger.Logger
}

func NewProductCreatedEmail(log *logger.Logger) *ProductCreatedEmail {
	return &ProductCreatedEmail{log: log}
}

func (h *ProductCreatedEmail) Handle(_ context.Context, evt event.Event) error {
	e, ok := evt.(*event.ProductCreatedEvent)
	if !ok {
		return unexpected(evt, event.ProductCreated)
	}
	h.log.Info("sending email: product created",
		"event_id", e.EventID().String(),
		"product_id", e.Product.ID(),
		"product_name", e.Product.Name(),
		"price", e.Product.Price(),
	)
	return nil
}

// CustomerCreatedLog1 is the first reaction to a new customer.
type CustomerCreatedLog1 struct {
	log *logger.Logger
}

func NewCustomerCreatedLog1(log *logger.Logger) *CustomerCreatedLog1 {
	return &CustomerCreatedLog1{log: log}
}

func (h *CustomerCreatedLog1) Handle(_ context.Context, evt event.Event) error {
	e, ok := evt.(*event.CustomerCreatedEvent)
	if !ok {
		return unexpected(evt, event.CustomerCreated)
	}
	h.log.Info("first console log of event: CustomerCreated", "customer_id", e.Customer.ID())
	return nil
}

// CustomerCreatedLog2 is the second reaction to a new customer.
type CustomerCreatedLog2 struct {
	log *logger.Logger
}

func NewCustomerCreatedLog2(log *logger.Logger) *CustomerCreatedLog2 {
	return &CustomerCreatedLog2{log: log}
}

func (h *CustomerCreatedLog2) Handle(_ context.Context, evt event.Event) error {
	e, ok := evt.(*event.CustomerCreatedEvent)
	if !ok {
		return unexpected(evt, event.CustomerCreated)
	}
	h.log.Info("second console log of event: CustomerCreated", "customer_id", e.Customer.ID())
	return nil
}

// CustomerAddressChangedLog reports the customer's new address.
type CustomerAddressChangedLog struct {
	log *logger.Logger
}

func NewCustomerAddressChangedLog(log *logger.Logger) *CustomerAddressChangedLog {
	return &CustomerAddressChangedLog{log: log}
}

func (h *CustomerAddressChangedLog) Handle(_ context.Context, evt event.Event) error {
	e, ok := evt.(*event.CustomerAddressChangedEvent)
	if !ok {
		return unexpected(evt, event.CustomerAddressChanged)
	}
	addr, _ := e.Customer.Address()
	h.log.Info(fmt.Sprintf("customer address: %s, %s changed to: %s", e.Customer.ID(), e.Customer.Name(), addr),
		"customer_id", e.Customer.ID(),
	)
	return nil
}

// RegisterDefaults wires every handler of this package to its event
func RegisterDefaults(d *event.Dispatcher, log *logger.Logger) {
	d.Register(event.ProductCreated, NewProductCreatedEmail(log))
	d.Register(event.CustomerCreated, NewCustomerCreatedLog1(log))
	d.Register(event.CustomerCreated, NewCustomerCreatedLog2(log))
	d.Register(event.CustomerAddressChanged, NewCustomerAddressChangedLog(log))
}

func unexpected(evt event.Event, want event.Name) error {
	return fmt.Errorf("%w: got %s (%T), want %s", event.ErrUnexpectedEvent, evt.EventName(), evt, want)
}
