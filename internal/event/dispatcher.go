package event

import (
	"context"
	"reflect"
	"sync"
)

// Handler reacts to a notified event.
type Handler interface {
	Handle(ctx context.Context, evt Event) error
}

// Dispatcher maps event names to ordered handler lists and fans events out synchronously.
//
// Handlers are not isolated from each other: the first handler returning an error stops
// the notification and that error is returned to the Notify caller as is.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[Name][]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[Name][]Handler)}
}

// Register appends h to the handlers of name. Registering the same handler twice makes it
// run twice per Notify.
func (d *Dispatcher) Register(name Name, h Handler) {
	if h == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = append(d.handlers[name], h)
}

// Unregister removes the first registration of h under name. Unknown names and
// handlers are ignored. The name stays registered even when its list becomes empty.
func (d *Dispatcher) Unregister(name Name, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	list, ok := d.handlers[name]
	if !ok {
		return
	}
	for i, registered := range list {
		if sameHandler(registered, h) {
			updated := make([]Handler, 0, len(list)-1)
			updated = append(updated, list[:i]...)
			d.handlers[name] = append(updated, list[i+1:]...)
			return
		}
	}
}

// UnregisterAll drops every event name, not only their handlers.
func (d *Dispatcher) UnregisterAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = make(map[Name][]Handler)
}

// Handlers returns a copy of the handlers registered for name. ok is false when
// the name is absent, which is different from present with no handlers.
func (d *Dispatcher) Handlers(name Name) (handlers []Handler, ok bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	list, ok := d.handlers[name]
	if !ok {
		return nil, false
	}
	return append([]Handler{}, list...), true
}

// Names returns the registered event names
func (d *Dispatcher) Names() []Name {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]Name, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	return names
}

// Notify runs the handlers registered for evt.EventName() in registration order.
// It runs on a snapshot of the list, so handlers may register or unregister.
func (d *Dispatcher) Notify(ctx context.Context, evt Event) error {
	if evt == nil {
		return ErrNilEvent
	}
	handlers, ok := d.Handlers(evt.EventName())
	if !ok {
		return nil
	}
	for _, h := range handlers {
		if err := h.Handle(ctx, evt); err != nil {
			return err
		}
	}
	return nil
}

// sameHandler compares by identity. Handlers whose dynamic type is not comparable
// (func or map based) never match. A comparable struct can still hold a func in an
// interface field, where == panics at run time; such handlers never match either.
func sameHandler(a, b Handler) (same bool) {
	if b == nil {
		return false
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
