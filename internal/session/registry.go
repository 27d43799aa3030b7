// Package session owns the state of every connected client. A client is one
// browser tab, keyed by the X-Client-Id header; its stores live in its own
// localstore namespace and are never shared.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"wulf-order-services/internal/admin"
	"wulf-order-services/internal/cart"
	"wulf-order-services/internal/checkout"
	"wulf-order-services/internal/kitchen"
	"wulf-order-services/internal/localstore"
	"wulf-order-services/internal/menu"
	"wulf-order-services/internal/metrics"
	"wulf-order-services/internal/queue"
	"wulf-order-services/internal/tablemap"
	"wulf-order-services/internal/wizard"

	"go.uber.org/zap"
)

var ErrClientIDRequired = errors.New("client id is required")

type Options struct {
	Backend              localstore.Backend
	Submitter            queue.Submitter
	Metrics              *metrics.Metrics
	Logger               *zap.Logger
	Location             *time.Location
	PaymentDelay         time.Duration
	TokenSecret          string
	TokenTTL             time.Duration
	ReservationMaxTables int
	CashierMaxTables     int
	IdleTTL              time.Duration
	MaxClients           int
	Now                  func() time.Time
}

const (
	defaultIdleTTL    = 30 * time.Minute
	defaultMaxClients = 10000
)

type Client struct {
	ID          string
	Storage     localstore.Storage
	Cart        *cart.Store
	Checkout    *checkout.Flow
	Reservation *wizard.Reservation
	Cashier     *wizard.Cashier
	Kitchen     *kitchen.Board
	Categories  *admin.CategoryManager

	lastSeen atomic.Int64
	holds    atomic.Int32
}

// Hold keeps the client from being evicted until release is called. Long-lived
// streams hold the client they subscribe to.
func (c *Client) Hold() (release func()) {
	c.holds.Add(1)
	var once sync.Once
	return func() {
		once.Do(func() { c.holds.Add(-1) })
	}
}

func (c *Client) touch(now time.Time) {
	c.lastSeen.Store(now.UnixNano())
}

func (c *Client) evictable(cutoff int64) bool {
	return c.holds.Load() == 0 && c.lastSeen.Load() < cutoff
}

// pendingBuild lets concurrent first requests for one id wait on a single build.
type pendingBuild struct {
	done   chan struct{}
	client *Client
	err    error
}

type Registry struct {
	opts Options

	mu      sync.Mutex
	clients map[string]*Client
	pending map[string]*pendingBuild
}

func NewRegistry(opts Options) *Registry {
	if opts.Backend == nil {
		opts.Backend = localstore.NewMemory()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Submitter == nil {
		opts.Submitter = queue.NewLogSubmitter(opts.Logger, opts.Metrics)
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = defaultIdleTTL
	}
	if opts.MaxClients <= 0 {
		opts.MaxClients = defaultMaxClients
	}
	return &Registry{
		opts:    opts,
		clients: make(map[string]*Client),
		pending: make(map[string]*pendingBuild),
	}
}

// Get returns the client's state, building it on first use. Stored cart and
// kitchen data are read from the backend at that point.
func (r *Registry) Get(ctx context.Context, clientID string) (*Client, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, ErrClientIDRequired
	}

	r.mu.Lock()
	if c, ok := r.clients[clientID]; ok {
		c.touch(r.opts.Now())
		r.mu.Unlock()
		return c, nil
	}
	if p, ok := r.pending[clientID]; ok {
		r.mu.Unlock()
		select {
		case <-p.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if p.err != nil {
			return nil, p.err
		}
		p.client.touch(r.opts.Now())
		return p.client, nil
	}
	p := &pendingBuild{done: make(chan struct{})}
	r.pending[clientID] = p
	r.mu.Unlock()

	c, err := r.build(ctx, clientID)

	r.mu.Lock()
	delete(r.pending, clientID)
	if err == nil {
		c.touch(r.opts.Now())
		r.clients[clientID] = c
		r.trimLocked(clientID)
	}
	p.client, p.err = c, err
	close(p.done)
	r.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return c, nil
}

// Sweep drops clients that have been idle longer than the idle TTL and returns
// how many were dropped. Stored data stays in the backend.
func (r *Registry) Sweep() int {
	cutoff := r.opts.Now().Add(-r.opts.IdleTTL).UnixNano()

	r.mu.Lock()
	defer r.mu.Unlock()
	dropped := 0
	for id, c := range r.clients {
		if c.evictable(cutoff) {
			delete(r.clients, id)
			dropped++
		}
	}
	return dropped
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = r.opts.IdleTTL / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.opts.Logger.Debug("idle clients dropped", zap.Int("count", n), zap.Int("remaining", r.Len()))
			}
		}
	}
}

// trimLocked drops least recently seen clients while the registry is over its
// cap. keep is never dropped, nor is a held client.
func (r *Registry) trimLocked(keep string) {
	for len(r.clients) > r.opts.MaxClients {
		oldestID := ""
		var oldest int64
		for id, c := range r.clients {
			if id == keep || c.holds.Load() > 0 {
				continue
			}
			if seen := c.lastSeen.Load(); oldestID == "" || seen < oldest {
				oldestID, oldest = id, seen
			}
		}
		if oldestID == "" {
			return
		}
		delete(r.clients, oldestID)
	}
}

// Len reports how many clients have state.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

func (r *Registry) build(ctx context.Context, clientID string) (*Client, error) {
	logger := r.opts.Logger.With(zap.String("clientId", clientID))
	storage := localstore.ForClient(r.opts.Backend, clientID)

	store, err := cart.NewStore(ctx, storage, logger)
	if err != nil {
		return nil, err
	}
	m := r.opts.Metrics
	store.Subscribe(func(e cart.Event) {
		if e.Op != cart.OpReload {
			m.IncCartMutation(string(e.Op))
		}
	})

	board, err := kitchen.NewBoard(ctx, storage, logger, r.opts.Now)
	if err != nil {
		return nil, err
	}

	catalog := menu.SampleCatalog()
	layout := tablemap.SampleLayout()

	return &Client{
		ID:      clientID,
		Storage: storage,
		Cart:    store,
		Checkout: checkout.New(checkout.Options{
			ClientID:     clientID,
			Storage:      storage,
			Cart:         store,
			Submitter:    r.opts.Submitter,
			Logger:       logger,
			PaymentDelay: r.opts.PaymentDelay,
			TokenSecret:  r.opts.TokenSecret,
			TokenTTL:     r.opts.TokenTTL,
			Now:          r.opts.Now,
		}),
		Reservation: wizard.NewReservation(wizard.ReservationOptions{
			ClientID:  clientID,
			Layout:    layout,
			Catalog:   catalog,
			MaxTables: r.opts.ReservationMaxTables,
			Location:  r.opts.Location,
			Submitter: r.opts.Submitter,
			Logger:    logger,
			Now:       r.opts.Now,
		}),
		Cashier: wizard.NewCashier(wizard.CashierOptions{
			ClientID:  clientID,
			Layout:    layout,
			Catalog:   catalog,
			MaxTables: r.opts.CashierMaxTables,
			Submitter: r.opts.Submitter,
			Logger:    logger,
			Now:       r.opts.Now,
		}),
		Kitchen:    board,
		Categories: admin.NewCategoryManager(),
	}, nil
}
