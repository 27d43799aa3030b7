package monitor

import (
	"time"

	"wulf-order-services/internal/utils"
)

type TrackingStatus string

const (
	TrackingProcessing TrackingStatus = "processing"
	TrackingReady      TrackingStatus = "ready"
	TrackingCompleted  TrackingStatus = "completed"
)

type TrackingStep struct {
	Key         TrackingStatus `json:"key"`
	Label       string         `json:"label"`
	Description string         `json:"description"`
	Completed   bool           `json:"completed"`
	Current     bool           `json:"current"`
}

var trackingSteps = []TrackingStep{
	{Key: TrackingProcessing, Label: "Sedang Diproses", Description: "Pesanan sedang dibuat oleh dapur"},
	{Key: TrackingReady, Label: "Siap Disajikan", Description: "Pesanan sudah siap untuk diantar"},
	{Key: TrackingCompleted, Label: "Sudah Disajikan", Description: "Pesanan telah sampai ke meja Anda"},
}

type TrackedItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

type TrackedOrder struct {
	ID           string         `json:"id"`
	Status       TrackingStatus `json:"status"`
	CustomerName string         `json:"customerName"`
	TableNumber  string         `json:"tableNumber"`
	OrderTime    time.Time      `json:"orderTime"`
	Items        []TrackedItem  `json:"items"`
	TotalPrice   int64          `json:"totalPrice"`
}

type Tracking struct {
	Order TrackedOrder   `json:"order"`
	Steps []TrackingStep `json:"steps"`
}

// SampleTrackedOrder is shown when the visitor has no tracking token.
func SampleTrackedOrder(now time.Time) TrackedOrder {
	return TrackedOrder{
		ID:           "WLF-2024-001",
		Status:       TrackingProcessing,
		CustomerName: "Budi Santoso",
		TableNumber:  "A5",
		OrderTime:    now,
		Items: []TrackedItem{
			{ID: 1, Name: "Nasi Goreng Spesial", Quantity: 2, Price: 25000},
			{ID: 2, Name: "Es Teh Manis", Quantity: 1, Price: 8000},
		},
		TotalPrice: 58000,
	}
}

// TrackedOrderFromClaims rebuilds a just-paid order from its tracking token.
// A freshly paid order is always still processing.
func TrackedOrderFromClaims(claims *utils.TrackingClaims) TrackedOrder {
	order := TrackedOrder{
		ID:           claims.OrderNumber,
		Status:       TrackingProcessing,
		CustomerName: claims.CustomerName,
		Items:        make([]TrackedItem, 0, len(claims.Items)),
		TotalPrice:   claims.TotalPrice,
	}
	if claims.IssuedAt != nil {
		order.OrderTime = claims.IssuedAt.Time
	}
	for i, item := range claims.Items {
		order.Items = append(order.Items, TrackedItem{ID: int64(i + 1), Name: item.Name, Quantity: item.Quantity, Price: item.Price})
	}
	return order
}

// Track marks every step before the order's status completed and its own step current.
func Track(order TrackedOrder) Tracking {
	current := 0
	for i, step := range trackingSteps {
		if step.Key == order.Status {
			current = i
		}
	}
	steps := make([]TrackingStep, len(trackingSteps))
	for i, step := range trackingSteps {
		step.Completed = i < current
		step.Current = i == current
		steps[i] = step
	}
	return Tracking{Order: order, Steps: steps}
}
