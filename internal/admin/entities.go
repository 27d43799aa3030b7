// Package admin is the back-office dashboard over fixed sample datasets. Rows
// are a closed set of entity variants, one per tab; create, update and delete
// are accepted, logged and never applied.
package admin

import "errors"

type Tab string

const (
	TabSessions          Tab = "sessions"
	TabTables            Tab = "tables"
	TabReservations      Tab = "reservations"
	TabTransactions      Tab = "transactions"
	TabStockTransactions Tab = "stock-transactions"
	TabStaff             Tab = "staff"
	TabMenu              Tab = "menu"
	TabStock             Tab = "stock"
)

var ErrUnknownTab = errors.New("unknown admin tab")

// Entity is implemented only by the row types in this package.
type Entity interface {
	EntityID() string
	Tab() Tab
	searchFields() []string
}

type Staff struct {
	ID        string `json:"id"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	Position  string `json:"position" validate:"required"`
	Status    string `json:"status" validate:"omitempty,oneof=active inactive"`
	JoinDate  string `json:"joinDate"`
	LastLogin string `json:"lastLogin"`
}

type GuestSession struct {
	ID           string `json:"id"`
	TableNumber  string `json:"tableNumber" validate:"required"`
	CustomerName string `json:"customerName" validate:"required"`
	StartTime    string `json:"startTime"`
	Duration     string `json:"duration"`
	TotalSpent   int64  `json:"totalSpent" validate:"gte=0"`
	Status       string `json:"status" validate:"omitempty,oneof=active completed"`
	OrderCount   int    `json:"orderCount" validate:"gte=0"`
}

type RestaurantTable struct {
	ID       string `json:"id"`
	Number   string `json:"number" validate:"required"`
	Capacity int    `json:"capacity" validate:"gte=1"`
	Status   string `json:"status" validate:"omitempty,oneof=available occupied reserved maintenance"`
	Location string `json:"location" validate:"required"`
}

type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Price       int64    `json:"price" validate:"gte=0"`
	Status      string   `json:"status" validate:"omitempty,oneof=available out-of-stock"`
	Ingredients []string `json:"ingredients"`
	Image       string   `json:"image,omitempty"`
}

type StockItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name" validate:"required"`
	Category     string  `json:"category" validate:"required"`
	CurrentStock float64 `json:"currentStock" validate:"gte=0"`
	MinStock     float64 `json:"minStock" validate:"gte=0"`
	Unit         string  `json:"unit" validate:"required"`
	Status       string  `json:"status" validate:"omitempty,oneof=adequate low out-of-stock"`
}

type Transaction struct {
	ID            string `json:"id"`
	OrderID       string `json:"orderId" validate:"required"`
	CustomerName  string `json:"customerName" validate:"required"`
	Amount        int64  `json:"amount" validate:"gte=0"`
	PaymentMethod string `json:"paymentMethod"`
	Status        string `json:"status" validate:"omitempty,oneof=completed pending failed"`
	Date          string `json:"date"`
}

type Reservation struct {
	ID           string `json:"id"`
	CustomerName string `json:"customerName" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	TableNumber  string `json:"tableNumber" validate:"required"`
	Date         string `json:"date" validate:"required"`
	Time         string `json:"time" validate:"required"`
	Guests       int    `json:"guests" validate:"gte=1"`
	Status       string `json:"status" validate:"omitempty,oneof=confirmed pending cancelled"`
}

type StockTransaction struct {
	ID          string  `json:"id"`
	ItemID      string  `json:"itemId"`
	ItemName    string  `json:"itemName" validate:"required"`
	Type        string  `json:"type" validate:"required,oneof=in out"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
	Unit        string  `json:"unit"`
	Reason      string  `json:"reason" validate:"required,oneof=purchase usage adjustment waste transfer"`
	Notes       string  `json:"notes,omitempty"`
	Date        string  `json:"date"`
	PerformedBy string  `json:"performedBy"`
}

func (e Staff) EntityID() string            { return e.ID }
func (e GuestSession) EntityID() string     { return e.ID }
func (e RestaurantTable) EntityID() string  { return e.ID }
func (e MenuItem) EntityID() string         { return e.ID }
func (e StockItem) EntityID() string        { return e.ID }
func (e Transaction) EntityID() string      { return e.ID }
func (e Reservation) EntityID() string      { return e.ID }
func (e StockTransaction) EntityID() string { return e.ID }

func (Staff) Tab() Tab            { return TabStaff }
func (GuestSession) Tab() Tab     { return TabSessions }
func (RestaurantTable) Tab() Tab  { return TabTables }
func (MenuItem) Tab() Tab         { return TabMenu }
func (StockItem) Tab() Tab        { return TabStock }
func (Transaction) Tab() Tab      { return TabTransactions }
func (Reservation) Tab() Tab      { return TabReservations }
func (StockTransaction) Tab() Tab { return TabStockTransactions }

func (e Staff) searchFields() []string        { return []string{e.Name, e.Email, e.Position} }
func (e GuestSession) searchFields() []string { return []string{e.CustomerName, e.TableNumber} }
func (e RestaurantTable) searchFields() []string {
	return []string{e.Number, e.Location}
}
func (e MenuItem) searchFields() []string    { return []string{e.Name, e.Category} }
func (e StockItem) searchFields() []string   { return []string{e.Name, e.Category} }
func (e Transaction) searchFields() []string { return []string{e.CustomerName, e.OrderID} }
func (e Reservation) searchFields() []string { return []string{e.CustomerName, e.TableNumber} }
func (e StockTransaction) searchFields() []string {
	return []string{e.ItemName, e.Reason, e.PerformedBy, e.Type}
}
