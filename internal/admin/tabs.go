package admin

type Group string

const (
	GroupRealtime Group = "realtime"
	GroupMaster   Group = "master"
)

type TabInfo struct {
	Key          Tab    `json:"key"`
	Label        string `json:"label"`
	Group        Group  `json:"group"`
	CanAdd       bool   `json:"canAdd"`
	DeletePrompt string `json:"deletePrompt"`
}

var tabs = []TabInfo{
	{Key: TabTransactions, Label: "Payment Transactions", Group: GroupRealtime},
	{Key: TabStockTransactions, Label: "Stock Transactions", Group: GroupRealtime},
	{Key: TabSessions, Label: "Guest Sessions", Group: GroupRealtime},
	{Key: TabStock, Label: "Inventory", Group: GroupMaster, CanAdd: true},
	{Key: TabReservations, Label: "Reservations", Group: GroupMaster},
	{Key: TabTables, Label: "Table Management", Group: GroupMaster, CanAdd: true},
	{Key: TabMenu, Label: "Menu Management", Group: GroupMaster, CanAdd: true},
	{Key: TabStaff, Label: "Staff Management", Group: GroupMaster, CanAdd: true},
}

func init() {
	for i := range tabs {
		tabs[i].DeletePrompt = deletePrompt(tabs[i].Key)
	}
}

// Tabs lists every tab in sidebar order.
func Tabs() []TabInfo {
	out := make([]TabInfo, len(tabs))
	copy(out, tabs)
	return out
}

func LookupTab(key string) (TabInfo, error) {
	for _, info := range tabs {
		if string(info.Key) == key {
			return info, nil
		}
	}
	return TabInfo{}, ErrUnknownTab
}

// deletePrompt drops the trailing letter of the tab key, so "staff" reads
// "staf" exactly as the dashboard always did.
func deletePrompt(tab Tab) string {
	key := string(tab)
	if key != "" {
		key = key[:len(key)-1]
	}
	return "Are you sure you want to delete this " + key + "?"
}
