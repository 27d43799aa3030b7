// Package kitchen is the kitchen display board: orders whose items cooks mark
// ready and then served, persisted under the client's "kitchenOrders" key.
package kitchen

import "time"

type Status string

const (
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusCompleted  Status = "completed"
)

// FilterAll disables status filtering.
const FilterAll = "all"

type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type Item struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Quantity      int          `json:"quantity"`
	Price         int64        `json:"price"`
	Category      string       `json:"category"`
	EstimatedTime int          `json:"estimatedTime"`
	ActualTime    *int         `json:"actualTime,omitempty"`
	ReadyTime     *time.Time   `json:"readyTime,omitempty"`
	Status        Status       `json:"status"`
	Ingredients   []Ingredient `json:"ingredients"`
}

type Order struct {
	ID            string     `json:"id"`
	Status        Status     `json:"status"`
	CustomerName  string     `json:"customerName"`
	TableNumber   string     `json:"tableNumber"`
	OrderTime     time.Time  `json:"orderTime"`
	ReadyTime     *time.Time `json:"readyTime,omitempty"`
	CompletedTime *time.Time `json:"completedTime,omitempty"`
	Items         []Item     `json:"items"`
	TotalPrice    int64      `json:"totalPrice"`
	EstimatedTime int        `json:"estimatedTime"`
	ActualTime    *int       `json:"actualTime,omitempty"`
	Source        string     `json:"source,omitempty"`
}

func (o Order) clone() Order {
	out := o
	out.Items = make([]Item, len(o.Items))
	copy(out.Items, o.Items)
	return out
}

// SampleOrders is the board shown when nothing is stored, all still cooking.
func SampleOrders(now time.Time) []Order {
	return []Order{
		{
			ID:           "WLF-2024-001",
			Status:       StatusProcessing,
			CustomerName: "Budi Santoso",
			TableNumber:  "A5",
			OrderTime:    now,
			Items: []Item{
				{ID: 1, Name: "Nasi Goreng Spesial", Quantity: 2, Price: 25000, Category: "makanan", EstimatedTime: 8, Status: StatusProcessing, Ingredients: []Ingredient{
					{"Nasi", "400 gram"}, {"Ayam", "200 gram"}, {"Telur", "2 butir"}, {"Bawang merah", "50 gram"},
					{"Bawang putih", "30 gram"}, {"Kecap manis", "3 sdm"}, {"Garam", "1 sdt"}, {"Minyak", "2 sdm"},
				}},
				{ID: 2, Name: "Es Teh Manis", Quantity: 1, Price: 8000, Category: "minuman", EstimatedTime: 3, Status: StatusProcessing, Ingredients: []Ingredient{
					{"Teh celup", "2 buah"}, {"Gula", "2 sdm"}, {"Es batu", "200 gram"}, {"Air panas", "300 ml"},
				}},
			},
			TotalPrice:    58000,
			EstimatedTime: 15,
			Source:        "dine-in",
		},
		{
			ID:           "WLF-2024-002",
			Status:       StatusProcessing,
			CustomerName: "Sari Dewi",
			TableNumber:  "B3",
			OrderTime:    now.Add(-5 * time.Minute),
			Items: []Item{
				{ID: 3, Name: "Mie Ayam Bakso", Quantity: 1, Price: 20000, Category: "makanan", EstimatedTime: 10, Status: StatusProcessing, Ingredients: []Ingredient{
					{"Mie kuning", "1 buah"}, {"Ayam suwir", "1 sdm"}, {"Bakso sapi", "2 buah"}, {"Sawi", "1 sdm"},
					{"Bawang goreng", "1 sdt"}, {"Kecap asin", "1 sdt"}, {"Minyak wijen", "1 sdt"},
				}},
				{ID: 4, Name: "Jus Alpukat", Quantity: 1, Price: 15000, Category: "minuman", EstimatedTime: 5, Status: StatusProcessing, Ingredients: []Ingredient{
					{"Alpukat", "1 buah"}, {"Susu kental manis", "2 sdm"}, {"Es batu", "100 gram"}, {"Gula", "1 sdt (optional)"},
				}},
			},
			TotalPrice:    35000,
			EstimatedTime: 12,
			Source:        "dine-in",
		},
		{
			ID:           "WLF-2024-003",
			Status:       StatusProcessing,
			CustomerName: "Ahmad Rizki",
			TableNumber:  "C1",
			OrderTime:    now.Add(-2 * time.Minute),
			Items: []Item{
				{ID: 5, Name: "Ayam Geprek", Quantity: 1, Price: 18000, Category: "makanan", EstimatedTime: 12, Status: StatusProcessing, Ingredients: []Ingredient{
					{"Ayam fillet", "150 gram"}, {"Tepung bumbu", "100 gram"}, {"Sambal", "50 gram"},
					{"Minyak goreng", "200 ml"}, {"Nasi putih", "200 gram"},
				}},
				{ID: 6, Name: "Kopi Latte", Quantity: 1, Price: 22000, Category: "minuman", EstimatedTime: 6, Status: StatusProcessing, Ingredients: []Ingredient{
					{"Espresso", "30 ml"}, {"Susu panas", "200 ml"}, {"Gula", "1 sdt (optional)"}, {"Busa susu", "50 ml"},
				}},
			},
			TotalPrice:    40000,
			EstimatedTime: 10,
			Source:        "booking",
		},
	}
}
