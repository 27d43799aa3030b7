// Package localstore is the per-client key/value storage the customer and staff
// screens persist into. Values are opaque strings (serialized JSON) exactly as a
// browser's local storage would hold them; nothing here validates or migrates them.
package localstore

import (
	"context"
	"strings"
)

const (
	KeyCart          = "cart"
	KeyOrderData     = "orderData"
	KeyKitchenOrders = "kitchenOrders"

	keyNamespace = "wulf"
)

// Backend is a flat string store shared by every client.
type Backend interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// Storage is one client's view of a Backend.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

type clientStorage struct {
	backend  Backend
	clientID string
}

func ForClient(backend Backend, clientID string) Storage {
	return &clientStorage{backend: backend, clientID: strings.TrimSpace(clientID)}
}

func ClientKey(clientID, key string) string {
	return keyNamespace + ":" + clientID + ":" + key
}

func (s *clientStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	return s.backend.GetItem(ctx, ClientKey(s.clientID, key))
}

func (s *clientStorage) SetItem(ctx context.Context, key, value string) error {
	return s.backend.SetItem(ctx, ClientKey(s.clientID, key), value)
}

func (s *clientStorage) RemoveItem(ctx context.Context, key string) error {
	return s.backend.RemoveItem(ctx, ClientKey(s.clientID, key))
}
