// Package monitor backs the staff order monitor, the staff landing dashboard
// and the customer tracking page. All of it reads fixed sample data.
package monitor

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
	StatusServed    Status = "served"
	StatusCanceled  Status = "canceled"
)

// Statuses is the monitor's filter tab order after "all".
var Statuses = []Status{StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusServed, StatusCanceled}

const FilterAll = "all"

var ErrInvalidFilter = errors.New("unknown order status filter")

func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusPreparing:
		return "Preparing"
	case StatusReady:
		return "Ready"
	case StatusCompleted:
		return "Completed"
	case StatusServed:
		return "Served"
	case StatusCanceled:
		return "Canceled"
	default:
		return ""
	}
}

func (s Status) Color() string {
	switch s {
	case StatusPending:
		return "gray"
	case StatusPreparing:
		return "yellow"
	case StatusReady:
		return "blue"
	case StatusCompleted:
		return "green"
	case StatusServed:
		return "purple"
	case StatusCanceled:
		return "red"
	default:
		return ""
	}
}

type OrderItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	Status   Status `json:"status"`
}

type Order struct {
	ID           string      `json:"id"`
	TableNumber  string      `json:"tableNumber"`
	Status       Status      `json:"status"`
	CustomerName string      `json:"customerName"`
	Seats        int         `json:"seats"`
	OrderTime    time.Time   `json:"orderTime"`
	Duration     string      `json:"duration,omitempty"`
	TotalAmount  int64       `json:"totalAmount"`
	Items        []OrderItem `json:"items"`
}

func SampleOrders(now time.Time) []Order {
	return []Order{
		{
			ID: "WLF-2024-001", TableNumber: "Table 1", Status: StatusPreparing, CustomerName: "Budi Santoso",
			Seats: 2, OrderTime: now, Duration: "17m", TotalAmount: 15000,
			Items: []OrderItem{
				{ID: 1, Name: "Nasi Goreng Spesial", Quantity: 1, Price: 15000, Status: StatusPreparing},
				{ID: 2, Name: "Es Teh Manis", Quantity: 1, Price: 8000, Status: StatusReady},
			},
		},
		{
			ID: "WLF-2024-002", TableNumber: "Table 3", Status: StatusPending, CustomerName: "Ahmad Rizki",
			Seats: 4, OrderTime: now.Add(-10 * time.Minute), TotalAmount: 0,
			Items: []OrderItem{
				{ID: 3, Name: "Mie Ayam Bakso", Quantity: 2, Price: 20000, Status: StatusPending},
			},
		},
		{
			ID: "WLF-2024-003", TableNumber: "Table 4", Status: StatusReady, CustomerName: "Sari Dewi",
			Seats: 4, OrderTime: now.Add(-25 * time.Minute), Duration: "25m", TotalAmount: 45000,
			Items: []OrderItem{
				{ID: 4, Name: "Ayam Geprek", Quantity: 1, Price: 18000, Status: StatusReady},
				{ID: 5, Name: "Jus Alpukat", Quantity: 1, Price: 15000, Status: StatusReady},
				{ID: 6, Name: "Kerupuk", Quantity: 2, Price: 6000, Status: StatusReady},
			},
		},
		{
			ID: "WLF-2024-004", TableNumber: "Table 6", Status: StatusCompleted, CustomerName: "Tim Corporate",
			Seats: 2, OrderTime: now.Add(-45 * time.Minute), Duration: "35m", TotalAmount: 120000,
			Items: []OrderItem{
				{ID: 7, Name: "Steak Sirloin", Quantity: 2, Price: 60000, Status: StatusServed},
			},
		},
	}
}

// Filter keeps orders with the given status, or all of them for FilterAll.
func Filter(orders []Order, filter string) ([]Order, error) {
	if filter == "" {
		filter = FilterAll
	}
	if filter != FilterAll && Status(filter).Label() == "" {
		return nil, ErrInvalidFilter
	}
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		if filter == FilterAll || order.Status == Status(filter) {
			out = append(out, order)
		}
	}
	return out, nil
}

// StatusCounts has an entry for "all" and for every status, zero included.
func StatusCounts(orders []Order) map[string]int {
	counts := map[string]int{FilterAll: len(orders)}
	for _, status := range Statuses {
		counts[string(status)] = 0
	}
	for _, order := range orders {
		counts[string(order.Status)]++
	}
	return counts
}
