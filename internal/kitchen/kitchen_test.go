package kitchen

import (
	"context"
	"errors"
	"testing"
	"time"

	"wulf-order-services/internal/localstore"

	"github.com/stretchr/testify/require"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func newTestBoard(t *testing.T) (*Board, localstore.Storage, *clock) {
	t.Helper()
	storage := localstore.ForClient(localstore.NewMemory(), "kitchen-1")
	clk := &clock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	board, err := NewBoard(context.Background(), storage, nil, clk.Now)
	require.NoError(t, err)
	return board, storage, clk
}

func TestBoardFallsBackToSamples(t *testing.T) {
	ctx := context.Background()
	storage := localstore.ForClient(localstore.NewMemory(), "kitchen-1")
	require.NoError(t, storage.SetItem(ctx, localstore.KeyKitchenOrders, "[{broken"))

	board, err := NewBoard(ctx, storage, nil, nil)
	require.NoError(t, err)
	require.Len(t, board.Orders(), 3)
	require.Equal(t, Counts{All: 3, Processing: 3}, board.Counts())
}

func TestUpdateItemStatusDrivesOrderStatus(t *testing.T) {
	ctx := context.Background()
	board, storage, clk := newTestBoard(t)

	clk.now = clk.now.Add(7*time.Minute + 40*time.Second)
	order, err := board.UpdateItemStatus(ctx, "WLF-2024-001", 1, StatusReady)
	require.NoError(t, err)
	require.Equal(t, StatusProcessing, order.Status)
	require.NotNil(t, order.Items[0].ActualTime)
	require.Equal(t, 8, *order.Items[0].ActualTime)
	firstReady := *order.Items[0].ReadyTime

	clk.now = clk.now.Add(3 * time.Minute)
	order, err = board.UpdateItemStatus(ctx, "WLF-2024-001", 1, StatusReady)
	require.NoError(t, err)
	require.Equal(t, firstReady, *order.Items[0].ReadyTime, "ready time is stamped once")

	order, err = board.UpdateItemStatus(ctx, "WLF-2024-001", 2, StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, StatusReady, order.Status)
	require.Equal(t, 11, *order.ActualTime)

	order, err = board.UpdateItemStatus(ctx, "WLF-2024-001", 1, StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, order.Status)
	require.NotNil(t, order.CompletedTime)

	require.Equal(t, Counts{All: 3, Processing: 2, Completed: 1}, board.Counts())

	reopened, err := NewBoard(ctx, storage, nil, clk.Now)
	require.NoError(t, err)
	persisted, ok := reopened.Find("WLF-2024-001")
	require.True(t, ok)
	require.Equal(t, StatusCompleted, persisted.Status)
}

func TestUpdateItemStatusErrors(t *testing.T) {
	ctx := context.Background()
	board, _, _ := newTestBoard(t)

	cases := []struct {
		name    string
		orderID string
		itemID  int64
		status  Status
		want    error
	}{
		{name: "unknown order", orderID: "WLF-0", itemID: 1, status: StatusReady, want: ErrOrderNotFound},
		{name: "item of another order", orderID: "WLF-2024-001", itemID: 3, status: StatusReady, want: ErrItemNotFound},
		{name: "back to processing", orderID: "WLF-2024-001", itemID: 1, status: StatusProcessing, want: ErrInvalidStatus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := board.UpdateItemStatus(ctx, tc.orderID, tc.itemID, tc.status); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCompletedItemStaysCompleted(t *testing.T) {
	ctx := context.Background()
	board, _, _ := newTestBoard(t)

	if _, err := board.UpdateItemStatus(ctx, "WLF-2024-001", 1, StatusCompleted); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if _, err := board.UpdateItemStatus(ctx, "WLF-2024-001", 1, StatusReady); !errors.Is(err, ErrStatusBackward) {
		t.Fatalf("expected ErrStatusBackward, got %v", err)
	}
	orders, err := board.Filter(FilterAll)
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}
	if orders[0].Items[0].Status != StatusCompleted {
		t.Fatalf("expected item to stay completed, got %s", orders[0].Items[0].Status)
	}
}

func TestFilterAndReset(t *testing.T) {
	ctx := context.Background()
	board, storage, _ := newTestBoard(t)

	var events []Event
	unsubscribe := board.Subscribe(func(e Event) { events = append(events, e) })
	defer unsubscribe()

	_, _ = board.UpdateItemStatus(ctx, "WLF-2024-002", 3, StatusReady)
	_, _ = board.UpdateItemStatus(ctx, "WLF-2024-002", 4, StatusReady)

	ready, err := board.Filter("ready")
	require.NoError(t, err)
	require.Len(t, ready, 1)
	require.Equal(t, "WLF-2024-002", ready[0].ID)

	all, err := board.Filter("")
	require.NoError(t, err)
	require.Len(t, all, 3)

	_, err = board.Filter("served")
	require.ErrorIs(t, err, ErrInvalidFilter)

	orders, err := board.Reset(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	_, ok, _ := storage.GetItem(ctx, localstore.KeyKitchenOrders)
	require.False(t, ok)

	require.Len(t, events, 3)
	require.Equal(t, 1, events[1].Counts.Ready)
	require.Equal(t, 3, events[2].Counts.Processing)
}

func TestTiming(t *testing.T) {
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	actual := func(n int) *int { return &n }

	cases := []struct {
		name   string
		actual *int
		want   string
	}{
		{name: "on time", actual: actual(10), want: "Tepat waktu"},
		{name: "late", actual: actual(13), want: "+3m dari estimasi"},
		{name: "early", actual: actual(7), want: "3m lebih cepat"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CompareToEstimate(Order{EstimatedTime: 10, ActualTime: tc.actual})
			if got == nil || got.Text != tc.want {
				t.Fatalf("expected %s, got %+v", tc.want, got)
			}
		})
	}
	if CompareToEstimate(Order{EstimatedTime: 10}) != nil {
		t.Fatalf("expected no comparison before the order is ready")
	}

	order := Order{OrderTime: start, EstimatedTime: 15}
	if got := ProcessingTime(order, start.Add(4*time.Minute+50*time.Second)); got != "Sedang: 4m (Estimasi: 15m)" {
		t.Fatalf("unexpected processing time %q", got)
	}
	order.ActualTime = actual(12)
	if got := ProcessingTime(order, start); got != "12m (Estimasi: 15m)" {
		t.Fatalf("unexpected processing time %q", got)
	}

	for offset, want := range map[time.Duration]string{
		30 * time.Second: "Baru saja",
		5 * time.Minute:  "5m yang lalu",
		75 * time.Minute: "1j 15m yang lalu",
	} {
		if got := Since(start, start.Add(offset)); got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
}
