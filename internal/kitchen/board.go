package kitchen

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"wulf-order-services/internal/localstore"

	"go.uber.org/zap"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrItemNotFound   = errors.New("order item not found")
	ErrInvalidStatus  = errors.New("item status must be ready or completed")
	ErrInvalidFilter  = errors.New("unknown status filter")
	ErrStatusBackward = errors.New("a completed item cannot go back to ready")
)

type Counts struct {
	All        int `json:"all"`
	Processing int `json:"processing"`
	Ready      int `json:"ready"`
	Completed  int `json:"completed"`
}

type Event struct {
	Orders []Order `json:"orders"`
	Counts Counts  `json:"counts"`
}

type Listener func(Event)

type subscription struct {
	id uint64
	fn Listener
}

type Board struct {
	mu        sync.Mutex
	storage   localstore.Storage
	logger    *zap.Logger
	now       func() time.Time
	orders    []Order
	listeners []subscription
	nextSubID uint64
}

func NewBoard(ctx context.Context, storage localstore.Storage, logger *zap.Logger, now func() time.Time) (*Board, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	b := &Board{storage: storage, logger: logger, now: now}
	if err := b.load(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// load falls back to the sample orders when nothing usable is stored.
func (b *Board) load(ctx context.Context) error {
	raw, ok, err := b.storage.GetItem(ctx, localstore.KeyKitchenOrders)
	if err != nil {
		return err
	}
	orders := SampleOrders(b.now())
	if ok && raw != "" {
		var stored []Order
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			b.logger.Warn("discarding malformed kitchen orders", zap.Error(err))
		} else if stored != nil {
			orders = stored
		}
	}
	b.mu.Lock()
	b.orders = orders
	b.mu.Unlock()
	return nil
}

func (b *Board) Orders() []Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return cloneOrders(b.orders)
}

func (b *Board) Find(orderID string) (Order, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, order := range b.orders {
		if order.ID == orderID {
			return order.clone(), true
		}
	}
	return Order{}, false
}

// Filter keeps orders with the given status, or all of them for FilterAll.
func (b *Board) Filter(filter string) ([]Order, error) {
	if filter == "" {
		filter = FilterAll
	}
	switch Status(filter) {
	case StatusProcessing, StatusReady, StatusCompleted:
	default:
		if filter != FilterAll {
			return nil, ErrInvalidFilter
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Order, 0, len(b.orders))
	for _, order := range b.orders {
		if filter == FilterAll || order.Status == Status(filter) {
			out = append(out, order.clone())
		}
	}
	return out, nil
}

func (b *Board) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()
	return countOrders(b.orders)
}

// UpdateItemStatus moves one item forward. The first move to ready stamps the
// item's ready time and actual minutes. The order follows its items: completed
// when all are completed, ready when all are at least ready.
func (b *Board) UpdateItemStatus(ctx context.Context, orderID string, itemID int64, status Status) (Order, error) {
	if status != StatusReady && status != StatusCompleted {
		return Order{}, ErrInvalidStatus
	}

	b.mu.Lock()
	next := cloneOrders(b.orders)
	idx := -1
	for i := range next {
		if next[i].ID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return Order{}, ErrOrderNotFound
	}

	order := &next[idx]
	now := b.now().UTC()
	found := false
	for i := range order.Items {
		item := &order.Items[i]
		if item.ID != itemID {
			continue
		}
		found = true
		if item.Status == StatusCompleted && status != StatusCompleted {
			b.mu.Unlock()
			return Order{}, ErrStatusBackward
		}
		item.Status = status
		if status == StatusReady && item.ReadyTime == nil {
			readyAt := now
			actual := minutesBetween(order.OrderTime, readyAt)
			item.ReadyTime = &readyAt
			item.ActualTime = &actual
		}
	}
	if !found {
		b.mu.Unlock()
		return Order{}, ErrItemNotFound
	}
	applyOrderStatus(order, now)

	if err := b.persistLocked(ctx, next); err != nil {
		b.mu.Unlock()
		return Order{}, err
	}
	b.orders = next
	updated := order.clone()
	event, listeners := b.eventLocked()
	b.mu.Unlock()

	dispatch(listeners, event)
	return updated, nil
}

func applyOrderStatus(order *Order, now time.Time) {
	allReady, allCompleted := true, true
	for _, item := range order.Items {
		if item.Status != StatusCompleted {
			allCompleted = false
		}
		if item.Status != StatusReady && item.Status != StatusCompleted {
			allReady = false
		}
	}
	switch {
	case allCompleted:
		order.Status = StatusCompleted
	case allReady:
		order.Status = StatusReady
	}
	if (allReady || allCompleted) && order.ReadyTime == nil {
		readyAt := now
		actual := minutesBetween(order.OrderTime, readyAt)
		order.ReadyTime = &readyAt
		order.ActualTime = &actual
	}
	if allCompleted && order.CompletedTime == nil {
		completedAt := now
		order.CompletedTime = &completedAt
	}
}

// Reset forgets stored progress and restores the sample orders.
func (b *Board) Reset(ctx context.Context) ([]Order, error) {
	if err := b.storage.RemoveItem(ctx, localstore.KeyKitchenOrders); err != nil {
		return nil, err
	}
	b.mu.Lock()
	b.orders = SampleOrders(b.now())
	orders := cloneOrders(b.orders)
	event, listeners := b.eventLocked()
	b.mu.Unlock()

	dispatch(listeners, event)
	return orders, nil
}

func (b *Board) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextSubID++
	id := b.nextSubID
	b.listeners = append(b.listeners, subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, sub := range b.listeners {
				if sub.id == id {
					b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (b *Board) persistLocked(ctx context.Context, orders []Order) error {
	raw, err := json.Marshal(orders)
	if err != nil {
		return err
	}
	return b.storage.SetItem(ctx, localstore.KeyKitchenOrders, string(raw))
}

func (b *Board) eventLocked() (Event, []Listener) {
	listeners := make([]Listener, 0, len(b.listeners))
	for _, sub := range b.listeners {
		listeners = append(listeners, sub.fn)
	}
	return Event{Orders: cloneOrders(b.orders), Counts: countOrders(b.orders)}, listeners
}

func dispatch(listeners []Listener, event Event) {
	for _, fn := range listeners {
		fn(event)
	}
}

func countOrders(orders []Order) Counts {
	counts := Counts{All: len(orders)}
	for _, order := range orders {
		switch order.Status {
		case StatusProcessing:
			counts.Processing++
		case StatusReady:
			counts.Ready++
		case StatusCompleted:
			counts.Completed++
		}
	}
	return counts
}

func cloneOrders(orders []Order) []Order {
	out := make([]Order, len(orders))
	for i, order := range orders {
		out[i] = order.clone()
	}
	return out
}
