package monitor

import (
	"testing"
	"time"

	"wulf-order-services/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 19, 0, 0, 0, time.UTC)

func TestFilterAndCounts(t *testing.T) {
	orders := SampleOrders(now)

	cases := []struct {
		filter string
		want   int
	}{
		{filter: "all", want: 4},
		{filter: "", want: 4},
		{filter: "pending", want: 1},
		{filter: "served", want: 0},
		{filter: "canceled", want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.filter, func(t *testing.T) {
			got, err := Filter(orders, tc.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("expected %d orders, got %d", tc.want, len(got))
			}
		})
	}

	_, err := Filter(orders, "lost")
	require.ErrorIs(t, err, ErrInvalidFilter)

	counts := StatusCounts(orders)
	require.Equal(t, 4, counts["all"])
	require.Equal(t, 1, counts["preparing"])
	require.Equal(t, 0, counts["canceled"])
	require.Len(t, counts, 7)
}

func TestTrackSteps(t *testing.T) {
	tracking := Track(SampleTrackedOrder(now))
	require.True(t, tracking.Steps[0].Current)
	require.False(t, tracking.Steps[0].Completed)

	order := SampleTrackedOrder(now)
	order.Status = TrackingCompleted
	tracking = Track(order)
	require.True(t, tracking.Steps[0].Completed)
	require.True(t, tracking.Steps[1].Completed)
	require.True(t, tracking.Steps[2].Current)
}

func TestTrackedOrderFromClaims(t *testing.T) {
	claims := &utils.TrackingClaims{
		OrderNumber:  "WLF-1",
		CustomerName: "Sari",
		TotalPrice:   36000,
		Items:        []utils.TrackedItem{{Name: "Espresso", Quantity: 2, Price: 18000}},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	order := TrackedOrderFromClaims(claims)
	require.Equal(t, TrackingProcessing, order.Status)
	require.Equal(t, now, order.OrderTime.UTC())
	require.Equal(t, int64(1), order.Items[0].ID)
}

func TestDashboard(t *testing.T) {
	require.Equal(t, "Morning", Greeting(now.Add(-10*time.Hour)))
	require.Equal(t, "Afternoon", Greeting(now.Add(-5*time.Hour)))

	dash := BuildDashboard("satria", SampleOrders(now), now)
	require.Equal(t, "Good Evening, satria!", dash.Greeting)
	require.Equal(t, 3, dash.ActiveOrders)
	require.Len(t, dash.Activities, 4)
}
