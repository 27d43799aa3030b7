package monitor

import "time"

type QuickAction struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Href        string `json:"href"`
}

type Activity struct {
	ID     int64  `json:"id"`
	Action string `json:"action"`
	Table  string `json:"table"`
	Time   string `json:"time"`
	Type   string `json:"type"`
}

type Dashboard struct {
	Greeting     string         `json:"greeting"`
	ActiveOrders int            `json:"activeOrders"`
	StatusCounts map[string]int `json:"statusCounts"`
	QuickActions []QuickAction  `json:"quickActions"`
	Activities   []Activity     `json:"activities"`
}

var quickActions = []QuickAction{
	{Title: "Order Monitor", Description: "Kelola pesanan dan status meja", Href: "/api/staff/orders"},
	{Title: "Kitchen Dashboard", Description: "Monitor pesanan dapur", Href: "/api/staff/kitchen"},
	{Title: "Cashier", Description: "Proses pesanan baru", Href: "/api/staff/cashier"},
}

var recentActivities = []Activity{
	{ID: 1, Action: "New order received", Table: "Table 1", Time: "2 minutes ago", Type: "order"},
	{ID: 2, Action: "Order ready to serve", Table: "Table 3", Time: "5 minutes ago", Type: "ready"},
	{ID: 3, Action: "Table reserved", Table: "Table 5", Time: "15 minutes ago", Type: "reservation"},
	{ID: 4, Action: "Order completed", Table: "Table 2", Time: "25 minutes ago", Type: "completed"},
}

func Greeting(now time.Time) string {
	switch hour := now.Hour(); {
	case hour < 12:
		return "Morning"
	case hour < 18:
		return "Afternoon"
	default:
		return "Evening"
	}
}

// BuildDashboard greets the user for the local hour of now. Active orders are
// those not yet completed, served or canceled.
func BuildDashboard(username string, orders []Order, now time.Time) Dashboard {
	active := 0
	for _, order := range orders {
		switch order.Status {
		case StatusPending, StatusPreparing, StatusReady:
			active++
		}
	}
	return Dashboard{
		Greeting:     "Good " + Greeting(now) + ", " + username + "!",
		ActiveOrders: active,
		StatusCounts: StatusCounts(orders),
		QuickActions: append([]QuickAction(nil), quickActions...),
		Activities:   append([]Activity(nil), recentActivities...),
	}
}
