// Package menu holds the read-only menu catalogs: the staff ordering catalog
// used by the reservation and cashier flows, and the customer category pages.
package menu

import "strings"

type Status string

const (
	StatusAvailable  Status = "available"
	StatusOutOfStock Status = "out-of-stock"
)

// AllCategories is the selector value that disables category filtering.
const AllCategories = "All"

type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       int64    `json:"price"`
	Status      Status   `json:"status"`
	Ingredients []string `json:"ingredients"`
}

type Catalog struct {
	items []MenuItem
}

func NewCatalog(items []MenuItem) *Catalog {
	out := make([]MenuItem, len(items))
	copy(out, items)
	return &Catalog{items: out}
}

func (c *Catalog) Items() []MenuItem {
	out := make([]MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) Find(id string) (MenuItem, bool) {
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}

// Categories returns AllCategories followed by each category in first-seen order.
func (c *Catalog) Categories() []string {
	out := []string{AllCategories}
	seen := map[string]bool{}
	for _, item := range c.items {
		if seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		out = append(out, item.Category)
	}
	return out
}

// Filter applies the selector rules: the term matches the name or any
// ingredient ignoring case, the category is AllCategories or an exact match,
// and only available items are kept.
func (c *Catalog) Filter(term, category string) []MenuItem {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]MenuItem, 0, len(c.items))
	for _, item := range c.items {
		if item.Status != StatusAvailable {
			continue
		}
		if category != "" && category != AllCategories && item.Category != category {
			continue
		}
		if needle != "" && !item.matches(needle) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (m MenuItem) matches(needle string) bool {
	if strings.Contains(strings.ToLower(m.Name), needle) {
		return true
	}
	for _, ingredient := range m.Ingredients {
		if strings.Contains(strings.ToLower(ingredient), needle) {
			return true
		}
	}
	return false
}

// SampleCatalog is the ordering catalog shown to the cashier and in reservations.
func SampleCatalog() *Catalog {
	return NewCatalog([]MenuItem{
		{ID: "MENU-001", Name: "Nasi Goreng Spesial", Category: "Main Course", Price: 25000, Status: StatusAvailable, Ingredients: []string{"Nasi", "Ayam", "Telur", "Sayuran"}},
		{ID: "MENU-002", Name: "Mie Ayam Bakso", Category: "Main Course", Price: 20000, Status: StatusAvailable, Ingredients: []string{"Mie", "Ayam", "Bakso", "Sawi"}},
		{ID: "MENU-003", Name: "Es Teh Manis", Category: "Beverage", Price: 8000, Status: StatusAvailable, Ingredients: []string{"Teh", "Gula", "Es"}},
		{ID: "MENU-004", Name: "Capcay Kuah", Category: "Main Course", Price: 18000, Status: StatusAvailable, Ingredients: []string{"Sayuran", "Udang", "Ayam", "Jamur"}},
		{ID: "MENU-005", Name: "Jus Alpukat", Category: "Beverage", Price: 15000, Status: StatusAvailable, Ingredients: []string{"Alpukat", "Susu", "Es", "Gula"}},
	})
}
