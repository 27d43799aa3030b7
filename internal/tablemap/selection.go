package tablemap

import (
	"errors"
	"fmt"
)

const DefaultMaxSelection = 4

var ErrTableUnavailable = errors.New("table is not available")

type MaxSelectionError struct {
	Max int
}

func (e *MaxSelectionError) Error() string {
	return fmt.Sprintf("Maximum %d tables can be selected", e.Max)
}

// Selection is an ordered set of available tables, never larger than Max.
type Selection struct {
	max    int
	tables []Table
}

func NewSelection(max int) *Selection {
	if max <= 0 {
		max = DefaultMaxSelection
	}
	return &Selection{max: max}
}

func (s *Selection) Max() int {
	return s.max
}

// Toggle removes a selected table or adds an unselected one. Tables that are
// not available, and additions past the cap, leave the selection unchanged.
func (s *Selection) Toggle(table Table) error {
	if !table.Selectable() {
		return ErrTableUnavailable
	}
	for i, selected := range s.tables {
		if selected.ID == table.ID {
			s.tables = append(s.tables[:i:i], s.tables[i+1:]...)
			return nil
		}
	}
	if len(s.tables) >= s.max {
		return &MaxSelectionError{Max: s.max}
	}
	s.tables = append(s.tables, table)
	return nil
}

func (s *Selection) Contains(id string) bool {
	for _, table := range s.tables {
		if table.ID == id {
			return true
		}
	}
	return false
}

func (s *Selection) Tables() []Table {
	out := make([]Table, len(s.tables))
	copy(out, s.tables)
	return out
}

func (s *Selection) Len() int {
	return len(s.tables)
}

// Seats is the combined capacity of the selected tables.
func (s *Selection) Seats() int {
	total := 0
	for _, table := range s.tables {
		total += table.Capacity
	}
	return total
}

func (s *Selection) Clear() {
	s.tables = nil
}
