package menu

import "strings"

// MaxQuantity caps one order line.
const MaxQuantity = 999

// CartEntry is one line of an in-progress staff or reservation order.
type CartEntry struct {
	MenuItem MenuItem `json:"menuItem"`
	Quantity int      `json:"quantity"`
	Notes    string   `json:"notes,omitempty"`
}

func (e CartEntry) Subtotal() int64 {
	return e.MenuItem.Price * int64(e.Quantity)
}

// Entries is keyed by menu item id. It is not safe for concurrent use; the
// owning wizard serializes access.
type Entries []CartEntry

// Add bumps the quantity and replaces the notes of an existing entry, or
// appends a new entry with quantity one.
func (e Entries) Add(item MenuItem, notes string) Entries {
	notes = strings.TrimSpace(notes)
	for i := range e {
		if e[i].MenuItem.ID == item.ID {
			e[i].Quantity = min(e[i].Quantity+1, MaxQuantity)
			e[i].Notes = notes
			return e
		}
	}
	return append(e, CartEntry{MenuItem: item, Quantity: 1, Notes: notes})
}

// SetQuantity removes the entry when quantity drops below one.
func (e Entries) SetQuantity(id string, quantity int) Entries {
	if quantity < 1 {
		return e.Remove(id)
	}
	quantity = min(quantity, MaxQuantity)
	for i := range e {
		if e[i].MenuItem.ID == id {
			e[i].Quantity = quantity
		}
	}
	return e
}

func (e Entries) Remove(id string) Entries {
	out := e[:0]
	for _, entry := range e {
		if entry.MenuItem.ID != id {
			out = append(out, entry)
		}
	}
	return out
}

func (e Entries) Find(id string) (CartEntry, bool) {
	for _, entry := range e {
		if entry.MenuItem.ID == id {
			return entry, true
		}
	}
	return CartEntry{}, false
}

func (e Entries) Total() int64 {
	var total int64
	for _, entry := range e {
		total += entry.Subtotal()
	}
	return total
}

// Count is the number of units across all entries.
func (e Entries) Count() int {
	count := 0
	for _, entry := range e {
		count += entry.Quantity
	}
	return count
}

func (e Entries) Clone() Entries {
	out := make(Entries, len(e))
	copy(out, e)
	return out
}
