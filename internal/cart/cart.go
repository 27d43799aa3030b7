// Package cart is the customer's cart persisted under the client's "cart" key.
//
// The Store keeps the decoded list in memory as the single source of truth and
// rewrites the whole list to storage on every mutation. Subscribers are called
// synchronously, in registration order, before the mutating call returns.
package cart

import (
	"context"
	"encoding/json"
	"sync"

	"wulf-order-services/internal/localstore"

	"go.uber.org/zap"
)

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	Image       string `json:"image,omitempty"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
}

func (i Item) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// MaxQuantity caps one cart line so totals stay well inside int64.
const MaxQuantity = 999

type Op string

const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpRemove Op = "remove"
	OpClear  Op = "clear"
	OpPurge  Op = "purge"
	OpReload Op = "reload"
)

type Event struct {
	Op         Op     `json:"op"`
	Items      []Item `json:"items"`
	TotalItems int    `json:"totalItems"`
	TotalPrice int64  `json:"totalPrice"`
}

type Listener func(Event)

type subscription struct {
	id uint64
	fn Listener
}

type Store struct {
	mu        sync.Mutex
	storage   localstore.Storage
	logger    *zap.Logger
	items     []Item
	listeners []subscription
	nextSubID uint64
}

func NewStore(ctx context.Context, storage localstore.Storage, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{storage: storage, logger: logger}
	if _, err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Load re-reads the persisted list. A missing or malformed value yields an
// empty cart; only storage failures are returned.
func (s *Store) Load(ctx context.Context) ([]Item, error) {
	raw, ok, err := s.storage.GetItem(ctx, localstore.KeyCart)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0)
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			s.logger.Warn("discarding malformed cart", zap.Error(err))
			items = make([]Item, 0)
		}
		if items == nil {
			items = make([]Item, 0)
		}
	}

	s.mu.Lock()
	s.items = items
	event := s.eventLocked(OpReload)
	listeners := s.listenersLocked()
	s.mu.Unlock()

	dispatch(listeners, event)
	return cloneItems(items), nil
}

func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

func (s *Store) Totals() (int, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Totals(s.items)
}

// Add merges by (id, category), incrementing the quantity, or appends.
func (s *Store) Add(ctx context.Context, item Item) ([]Item, error) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	item.Quantity = min(item.Quantity, MaxQuantity)
	return s.mutate(ctx, OpAdd, func(items []Item) []Item {
		for i := range items {
			if items[i].ID == item.ID && items[i].Category == item.Category {
				items[i].Quantity = min(items[i].Quantity+item.Quantity, MaxQuantity)
				return items
			}
		}
		return append(items, item)
	})
}

// SetQuantity updates the entry in place; a quantity below one removes it.
func (s *Store) SetQuantity(ctx context.Context, id int64, category string, quantity int) ([]Item, error) {
	if quantity < 1 {
		return s.Remove(ctx, id, category)
	}
	quantity = min(quantity, MaxQuantity)
	return s.mutate(ctx, OpUpdate, func(items []Item) []Item {
		for i := range items {
			if items[i].ID == id && items[i].Category == category {
				items[i].Quantity = quantity
			}
		}
		return items
	})
}

func (s *Store) Remove(ctx context.Context, id int64, category string) ([]Item, error) {
	return s.mutate(ctx, OpRemove, func(items []Item) []Item {
		out := items[:0]
		for _, item := range items {
			if item.ID == id && item.Category == category {
				continue
			}
			out = append(out, item)
		}
		return out
	})
}

// Clear persists an empty list.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.mutate(ctx, OpClear, func([]Item) []Item { return make([]Item, 0) })
	return err
}

// Purge drops the stored key entirely, as the payment page does once paid.
func (s *Store) Purge(ctx context.Context) error {
	s.mu.Lock()
	if err := s.storage.RemoveItem(ctx, localstore.KeyCart); err != nil {
		s.mu.Unlock()
		return err
	}
	s.items = make([]Item, 0)
	event := s.eventLocked(OpPurge)
	listeners := s.listenersLocked()
	s.mu.Unlock()

	dispatch(listeners, event)
	return nil
}

// Subscribe registers fn for change events. Listeners must not block; they run
// on the mutating goroutine.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) mutate(ctx context.Context, op Op, apply func([]Item) []Item) ([]Item, error) {
	s.mu.Lock()
	next := apply(cloneItems(s.items))
	raw, err := json.Marshal(next)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := s.storage.SetItem(ctx, localstore.KeyCart, string(raw)); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.items = next
	event := s.eventLocked(op)
	listeners := s.listenersLocked()
	s.mu.Unlock()

	dispatch(listeners, event)
	return cloneItems(next), nil
}

func (s *Store) eventLocked(op Op) Event {
	totalItems, totalPrice := Totals(s.items)
	return Event{Op: op, Items: cloneItems(s.items), TotalItems: totalItems, TotalPrice: totalPrice}
}

func (s *Store) listenersLocked() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for _, sub := range s.listeners {
		out = append(out, sub.fn)
	}
	return out
}

func dispatch(listeners []Listener, event Event) {
	for _, fn := range listeners {
		fn(event)
	}
}

func Totals(items []Item) (int, int64) {
	var (
		count int
		price int64
	)
	for _, item := range items {
		count += item.Quantity
		price += item.Subtotal()
	}
	return count, price
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
