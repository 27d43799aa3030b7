// Package ws streams a client's cart and kitchen board to its other open
// views. Each connection gets the current state first and then one message
// per store event.
package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"wulf-order-services/internal/cart"
	"wulf-order-services/internal/kitchen"
	"wulf-order-services/internal/middleware"
	"wulf-order-services/internal/session"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	MessageCartState      = "cart.state"
	MessageCartUpdated    = "cart.updated"
	MessageKitchenState   = "kitchen.state"
	MessageKitchenUpdated = "kitchen.updated"

	writeTimeout = 10 * time.Second
	queueSize    = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
	At   int64  `json:"at"`
}

type Server struct {
	Sessions  *session.Registry
	Logger    *zap.Logger
	Heartbeat time.Duration
}

func New(sessions *session.Registry, logger *zap.Logger, heartbeat time.Duration) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	return &Server{Sessions: sessions, Logger: logger, Heartbeat: heartbeat}
}

type wsRealtimeClient struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *wsRealtimeClient) writeJSON(value any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(value)
}

func (c *wsRealtimeClient) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
}

func (s *Server) CartWS(w http.ResponseWriter, r *http.Request) {
	c, release, ok := s.resolve(w, r)
	if !ok {
		return
	}
	defer release()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	updates := make(chan Message, queueSize)
	unsubscribe := c.Cart.Subscribe(func(e cart.Event) {
		offer(updates, newMessage(MessageCartUpdated, e))
	})
	defer unsubscribe()

	count, total := c.Cart.Totals()
	initial := newMessage(MessageCartState, cart.Event{Op: cart.OpReload, Items: c.Cart.Items(), TotalItems: count, TotalPrice: total})
	s.stream(r.Context(), &wsRealtimeClient{conn: conn}, initial, updates)
}

func (s *Server) KitchenWS(w http.ResponseWriter, r *http.Request) {
	c, release, ok := s.resolve(w, r)
	if !ok {
		return
	}
	defer release()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	updates := make(chan Message, queueSize)
	unsubscribe := c.Kitchen.Subscribe(func(e kitchen.Event) {
		offer(updates, newMessage(MessageKitchenUpdated, e))
	})
	defer unsubscribe()

	initial := newMessage(MessageKitchenState, kitchen.Event{Orders: c.Kitchen.Orders(), Counts: c.Kitchen.Counts()})
	s.stream(r.Context(), &wsRealtimeClient{conn: conn}, initial, updates)
}

// resolve returns the caller's client held for the lifetime of the stream.
func (s *Server) resolve(w http.ResponseWriter, r *http.Request) (*session.Client, func(), bool) {
	clientID, _ := middleware.GetClientID(r.Context())
	c, err := s.Sessions.Get(r.Context(), clientID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}
	return c, c.Hold(), true
}

func (s *Server) stream(ctx context.Context, client *wsRealtimeClient, initial Message, updates <-chan Message) {
	if err := client.writeJSON(initial); err != nil {
		return
	}

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, readErr := client.conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.Heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-clientClosed:
			return
		case <-ctx.Done():
			return
		case msg := <-updates:
			if err := client.writeJSON(msg); err != nil {
				s.Logger.Debug("websocket write failed", zap.String("type", msg.Type), zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := client.ping(); err != nil {
				return
			}
		}
	}
}

func newMessage(kind string, data any) Message {
	return Message{Type: kind, Data: data, At: time.Now().UnixMilli()}
}

// offer never blocks the store that emitted the event. Every message carries
// the full state, so when the queue is full the oldest one is dropped.
func offer(ch chan Message, msg Message) {
	for {
		select {
		case ch <- msg:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
