package cart

import (
	"context"
	"testing"

	"wulf-order-services/internal/localstore"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, localstore.Storage) {
	t.Helper()
	storage := localstore.ForClient(localstore.NewMemory(), "tab-1")
	store, err := NewStore(context.Background(), storage, nil)
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}
	return store, storage
}

func TestAddMergesByIDAndCategory(t *testing.T) {
	ctx := context.Background()
	store, storage := newTestStore(t)
	espresso := Item{ID: 1, Name: "Espresso", Category: "coffee", Price: 18000}

	if _, err := store.Add(ctx, espresso); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	items, err := store.Add(ctx, espresso)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected one entry with quantity 2, got %+v", items)
	}

	// A fresh store over the same storage sees the persisted list.
	reloaded, err := NewStore(ctx, storage, nil)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	count, total := reloaded.Totals()
	if count != 2 || total != 36000 {
		t.Fatalf("expected 2 items totalling 36000, got %d/%d", count, total)
	}
}

func TestQuantityIsCapped(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	latte := Item{ID: 7, Category: "coffee", Price: 22000, Quantity: 900}

	_, _ = store.Add(ctx, latte)
	items, err := store.Add(ctx, latte)
	require.NoError(t, err)
	require.Equal(t, MaxQuantity, items[0].Quantity)

	items, err = store.SetQuantity(ctx, 7, "coffee", 1<<40)
	require.NoError(t, err)
	require.Equal(t, MaxQuantity, items[0].Quantity)

	_, total := store.Totals()
	require.Equal(t, int64(MaxQuantity)*22000, total)
}

func TestAddKeepsDistinctCategories(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	_, _ = store.Add(ctx, Item{ID: 1, Category: "coffee", Price: 18000})
	items, _ := store.Add(ctx, Item{ID: 1, Category: "snacks", Price: 15000, Quantity: 3})

	require.Len(t, items, 2)
	require.Equal(t, 1, items[0].Quantity)
	require.Equal(t, 3, items[1].Quantity)
}

func TestSetQuantity(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name     string
		quantity int
		wantLen  int
	}{
		{name: "update in place", quantity: 5, wantLen: 1},
		{name: "zero removes", quantity: 0, wantLen: 0},
		{name: "negative removes", quantity: -2, wantLen: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, _ := newTestStore(t)
			_, _ = store.Add(ctx, Item{ID: 7, Category: "mocktail", Price: 32000})

			items, err := store.SetQuantity(ctx, 7, "mocktail", tc.quantity)
			if err != nil {
				t.Fatalf("set quantity failed: %v", err)
			}
			if len(items) != tc.wantLen {
				t.Fatalf("expected %d entries, got %d", tc.wantLen, len(items))
			}
			if tc.wantLen == 1 && items[0].Quantity != tc.quantity {
				t.Fatalf("expected quantity %d, got %d", tc.quantity, items[0].Quantity)
			}
		})
	}
}

func TestClearZeroesBadgeAndPersistsEmptyList(t *testing.T) {
	ctx := context.Background()
	store, storage := newTestStore(t)

	badge := -1
	store.Subscribe(func(e Event) { badge = e.TotalItems })

	_, _ = store.Add(ctx, Item{ID: 1, Category: "coffee", Price: 18000, Quantity: 4})
	if badge != 4 {
		t.Fatalf("expected badge 4, got %d", badge)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if badge != 0 {
		t.Fatalf("expected badge 0 after clear, got %d", badge)
	}

	raw, ok, err := storage.GetItem(ctx, localstore.KeyCart)
	if err != nil || !ok {
		t.Fatalf("expected persisted cart, ok=%v err=%v", ok, err)
	}
	if raw != "[]" {
		t.Fatalf("expected [], got %s", raw)
	}
}

func TestPurgeRemovesKey(t *testing.T) {
	ctx := context.Background()
	store, storage := newTestStore(t)
	_, _ = store.Add(ctx, Item{ID: 1, Category: "coffee", Price: 18000})

	if err := store.Purge(ctx); err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if _, ok, _ := storage.GetItem(ctx, localstore.KeyCart); ok {
		t.Fatalf("expected cart key to be removed")
	}
	if len(store.Items()) != 0 {
		t.Fatalf("expected empty cart")
	}
}

func TestMalformedCartFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()

	for _, raw := range []string{"{not json", `{"id":1}`, "null", ""} {
		t.Run(raw, func(t *testing.T) {
			storage := localstore.ForClient(localstore.NewMemory(), "tab-1")
			if err := storage.SetItem(ctx, localstore.KeyCart, raw); err != nil {
				t.Fatalf("seed failed: %v", err)
			}
			store, err := NewStore(ctx, storage, nil)
			if err != nil {
				t.Fatalf("expected recovery, got %v", err)
			}
			if items := store.Items(); items == nil || len(items) != 0 {
				t.Fatalf("expected empty non-nil cart, got %#v", items)
			}
		})
	}
}

func TestListenersRunInOrderBeforeReturn(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	var calls []string
	store.Subscribe(func(e Event) { calls = append(calls, "badge:"+string(e.Op)) })
	unsubscribe := store.Subscribe(func(e Event) { calls = append(calls, "panel:"+string(e.Op)) })

	_, _ = store.Add(ctx, Item{ID: 1, Category: "coffee", Price: 18000})
	require.Equal(t, []string{"badge:add", "panel:add"}, calls)

	unsubscribe()
	unsubscribe()
	_, _ = store.Remove(ctx, 1, "coffee")
	require.Equal(t, []string{"badge:add", "panel:add", "badge:remove"}, calls)
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	ctx := context.Background()
	store, storage := newTestStore(t)

	if err := storage.SetItem(ctx, localstore.KeyCart, `[{"id":3,"name":"Chicken Pop","price":15000,"category":"snacks","quantity":2}]`); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	items, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(items) != 1 || items[0].Subtotal() != 30000 {
		t.Fatalf("unexpected items %+v", items)
	}
}
