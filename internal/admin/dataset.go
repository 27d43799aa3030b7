package admin

// Dataset holds the rows behind every tab. The sample dataset is never
// mutated after construction.
type Dataset struct {
	Staff             []Staff
	Sessions          []GuestSession
	Tables            []RestaurantTable
	Menu              []MenuItem
	Stock             []StockItem
	Transactions      []Transaction
	Reservations      []Reservation
	StockTransactions []StockTransaction
}

// Rows returns the rows of a tab in dataset order.
func (d Dataset) Rows(tab Tab) ([]Entity, error) {
	switch tab {
	case TabStaff:
		return toEntities(d.Staff), nil
	case TabSessions:
		return toEntities(d.Sessions), nil
	case TabTables:
		return toEntities(d.Tables), nil
	case TabMenu:
		return toEntities(d.Menu), nil
	case TabStock:
		return toEntities(d.Stock), nil
	case TabTransactions:
		return toEntities(d.Transactions), nil
	case TabReservations:
		return toEntities(d.Reservations), nil
	case TabStockTransactions:
		return toEntities(d.StockTransactions), nil
	default:
		return nil, ErrUnknownTab
	}
}

// Find looks a row up by id within a tab.
func (d Dataset) Find(tab Tab, id string) (Entity, bool, error) {
	rows, err := d.Rows(tab)
	if err != nil {
		return nil, false, err
	}
	for _, row := range rows {
		if row.EntityID() == id {
			return row, true, nil
		}
	}
	return nil, false, nil
}

func toEntities[T Entity](rows []T) []Entity {
	out := make([]Entity, len(rows))
	for i, row := range rows {
		out[i] = row
	}
	return out
}

func SampleDataset() Dataset {
	return Dataset{
		Staff: []Staff{
			{ID: "STF-001", Name: "Satria Adi", Email: "satria@wulf.com", Phone: "+62 812-3456-7890", Position: "Manager", Status: "active", JoinDate: "2024-01-15", LastLogin: "2024-12-20 14:30"},
			{ID: "STF-002", Name: "Budi Santoso", Email: "budi@wulf.com", Phone: "+62 813-4567-8901", Position: "Waiter", Status: "active", JoinDate: "2024-02-20", LastLogin: "2024-12-20 13:45"},
			{ID: "STF-003", Name: "Sari Dewi", Email: "sari@wulf.com", Phone: "+62 814-5678-9012", Position: "Chef", Status: "active", JoinDate: "2024-03-10", LastLogin: "2024-12-20 12:15"},
			{ID: "STF-004", Name: "Ahmad Rizki", Email: "ahmad@wulf.com", Phone: "+62 815-6789-0123", Position: "Cashier", Status: "inactive", JoinDate: "2024-04-05", LastLogin: "2024-12-18 16:20"},
		},
		Sessions: []GuestSession{
			{ID: "GS-001", TableNumber: "Table 1", CustomerName: "Tim Corporate", StartTime: "2024-12-20 18:30", Duration: "1h 25m", TotalSpent: 450000, Status: "active", OrderCount: 8},
			{ID: "GS-002", TableNumber: "Table 3", CustomerName: "Keluarga Surya", StartTime: "2024-12-20 17:45", Duration: "2h 15m", TotalSpent: 320000, Status: "completed", OrderCount: 6},
			{ID: "GS-003", TableNumber: "Table 5", CustomerName: "Rina Melati", StartTime: "2024-12-20 19:00", Duration: "45m", TotalSpent: 180000, Status: "active", OrderCount: 3},
			{ID: "GS-004", TableNumber: "VIP Room", CustomerName: "Mr. Johnson", StartTime: "2024-12-20 16:30", Duration: "3h 10m", TotalSpent: 890000, Status: "completed", OrderCount: 12},
		},
		Tables: []RestaurantTable{
			{ID: "TBL-001", Number: "Table 1", Capacity: 4, Status: "occupied", Location: "Main Hall"},
			{ID: "TBL-002", Number: "Table 2", Capacity: 2, Status: "available", Location: "Main Hall"},
			{ID: "TBL-003", Number: "Table 3", Capacity: 6, Status: "reserved", Location: "Garden"},
			{ID: "TBL-004", Number: "VIP Room", Capacity: 10, Status: "maintenance", Location: "Private"},
		},
		Menu: []MenuItem{
			{ID: "MENU-001", Name: "Nasi Goreng Spesial", Category: "Main Course", Price: 25000, Status: "available", Ingredients: []string{"Nasi", "Telur", "Ayam", "Kecap"}},
			{ID: "MENU-002", Name: "Mie Ayam Bakso", Category: "Main Course", Price: 20000, Status: "available", Ingredients: []string{"Mie", "Ayam", "Bakso", "Sawi"}},
			{ID: "MENU-003", Name: "Es Teh Manis", Category: "Beverage", Price: 8000, Status: "out-of-stock", Ingredients: []string{"Teh", "Gula", "Es"}},
			{ID: "MENU-004", Name: "Capcay Kuah", Category: "Main Course", Price: 18000, Status: "available", Ingredients: []string{"Sayuran", "Udang", "Kaldu"}},
			{ID: "MENU-005", Name: "Jus Alpukat", Category: "Beverage", Price: 15000, Status: "available", Ingredients: []string{"Alpukat", "Susu", "Gula"}},
			{ID: "MENU-006", Name: "Pisang Goreng", Category: "Dessert", Price: 12000, Status: "available", Ingredients: []string{"Pisang", "Tepung", "Minyak"}},
			{ID: "MENU-007", Name: "Kerupuk", Category: "Appetizer", Price: 5000, Status: "out-of-stock", Ingredients: []string{"Tepung", "Minyak", "Garam"}},
		},
		Stock: []StockItem{
			{ID: "STK-001", Name: "Beras", Category: "Pantry", CurrentStock: 50, MinStock: 20, Unit: "kg", Status: "adequate"},
			{ID: "STK-002", Name: "Ayam Fillet", Category: "Protein", CurrentStock: 15, MinStock: 10, Unit: "kg", Status: "adequate"},
			{ID: "STK-003", Name: "Teh Celup", Category: "Beverage", CurrentStock: 5, MinStock: 15, Unit: "box", Status: "low"},
			{ID: "STK-004", Name: "Gula Pasir", Category: "Pantry", CurrentStock: 0, MinStock: 5, Unit: "kg", Status: "out-of-stock"},
		},
		Transactions: []Transaction{
			{ID: "TRX-001", OrderID: "WLF-2024-001", CustomerName: "Budi Santoso", Amount: 150000, PaymentMethod: "QRIS", Status: "completed", Date: "2024-12-20 14:30"},
			{ID: "TRX-002", OrderID: "WLF-2024-002", CustomerName: "Sari Dewi", Amount: 89000, PaymentMethod: "Cash", Status: "completed", Date: "2024-12-20 13:15"},
			{ID: "TRX-003", OrderID: "WLF-2024-003", CustomerName: "Ahmad Rizki", Amount: 45000, PaymentMethod: "Credit Card", Status: "pending", Date: "2024-12-20 12:45"},
		},
		Reservations: []Reservation{
			{ID: "RES-001", CustomerName: "Tim Corporate", Phone: "+62 812-3456-7890", TableNumber: "VIP Room", Date: "2024-12-21", Time: "19:00", Guests: 8, Status: "confirmed"},
			{ID: "RES-002", CustomerName: "Keluarga Surya", Phone: "+62 813-4567-8901", TableNumber: "Table 3", Date: "2024-12-22", Time: "18:30", Guests: 4, Status: "pending"},
			{ID: "RES-003", CustomerName: "Rina Melati", Phone: "+62 814-5678-9012", TableNumber: "Table 5", Date: "2024-12-20", Time: "20:00", Guests: 2, Status: "cancelled"},
		},
		StockTransactions: []StockTransaction{
			{ID: "ST-TRX-001", ItemID: "ING-001", ItemName: "Beras", Type: "in", Quantity: 25, Unit: "kg", Reason: "purchase", Notes: "Pembelian rutin dari Supplier A", Date: "2024-12-20 10:30", PerformedBy: "Satria Adi"},
			{ID: "ST-TRX-002", ItemID: "ING-002", ItemName: "Ayam Fillet", Type: "out", Quantity: 5, Unit: "kg", Reason: "usage", Notes: "Untuk persiapan menu hari ini", Date: "2024-12-20 08:15", PerformedBy: "Sari Dewi"},
			{ID: "ST-TRX-003", ItemID: "ING-003", ItemName: "Teh Celup", Type: "in", Quantity: 10, Unit: "box", Reason: "purchase", Notes: "Stok darurat", Date: "2024-12-19 14:20", PerformedBy: "Budi Santoso"},
			{ID: "ST-TRX-004", ItemID: "ING-004", ItemName: "Gula Pasir", Type: "out", Quantity: 2, Unit: "kg", Reason: "usage", Notes: "Untuk minuman", Date: "2024-12-19 11:45", PerformedBy: "Sari Dewi"},
		},
	}
}
