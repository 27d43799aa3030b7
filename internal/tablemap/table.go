// Package tablemap models the floor plan used to pick tables: table geometry,
// seat markers, capacity-bounded selection and the pan/zoom viewport.
package tablemap

import (
	"sort"
	"strings"
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusReserved    Status = "reserved"
	StatusMaintenance Status = "maintenance"
)

// Color is the legend color of a status.
func (s Status) Color() string {
	switch s {
	case StatusAvailable:
		return "green"
	case StatusOccupied:
		return "red"
	case StatusReserved:
		return "yellow"
	case StatusMaintenance:
		return "gray"
	default:
		return "lightgray"
	}
}

type Shape string

const (
	ShapeSquare    Shape = "square"
	ShapeCircle    Shape = "circle"
	ShapeRectangle Shape = "rectangle"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Table struct {
	ID       string `json:"id"`
	Number   string `json:"number"`
	Capacity int    `json:"capacity"`
	Status   Status `json:"status"`
	Location string `json:"location"`
	Shape    Shape  `json:"shape"`
	Position Point  `json:"position"`
}

func (t Table) Selectable() bool {
	return t.Status == StatusAvailable
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TableSize grows 4px per seat from a 40px base; rectangles are half again as wide.
func TableSize(capacity int, shape Shape) Size {
	size := float64(40 + capacity*4)
	if shape == ShapeRectangle {
		return Size{Width: size * 1.5, Height: size}
	}
	return Size{Width: size, Height: size}
}

type Zone struct {
	Location string  `json:"location"`
	Tables   []Table `json:"tables"`
}

// Layout is a fixed floor plan. Statuses never change for the life of a layout.
type Layout struct {
	tables []Table
}

func NewLayout(tables []Table) *Layout {
	out := make([]Table, len(tables))
	copy(out, tables)
	for i := range out {
		if out[i].Shape == "" {
			out[i].Shape = ShapeSquare
		}
	}
	return &Layout{tables: out}
}

func (l *Layout) Tables() []Table {
	out := make([]Table, len(l.tables))
	copy(out, l.tables)
	return out
}

func (l *Layout) Find(id string) (Table, bool) {
	for _, table := range l.tables {
		if table.ID == id {
			return table, true
		}
	}
	return Table{}, false
}

// Search matches the table number or location, ignoring case.
func (l *Layout) Search(term string) []Table {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]Table, 0, len(l.tables))
	for _, table := range l.tables {
		if needle == "" ||
			strings.Contains(strings.ToLower(table.Number), needle) ||
			strings.Contains(strings.ToLower(table.Location), needle) {
			out = append(out, table)
		}
	}
	return out
}

// Zones groups tables by location in first-seen order.
func Zones(tables []Table) []Zone {
	index := map[string]int{}
	zones := make([]Zone, 0)
	for _, table := range tables {
		i, ok := index[table.Location]
		if !ok {
			i = len(zones)
			index[table.Location] = i
			zones = append(zones, Zone{Location: table.Location})
		}
		zones[i].Tables = append(zones[i].Tables, table)
	}
	return zones
}

// Grid orders tables by capacity, then by number.
func Grid(tables []Table) []Table {
	out := make([]Table, len(tables))
	copy(out, tables)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Capacity != out[j].Capacity {
			return out[i].Capacity < out[j].Capacity
		}
		return out[i].Number < out[j].Number
	})
	return out
}

// SampleLayout is the restaurant floor shared by the reservation and cashier screens.
func SampleLayout() *Layout {
	return NewLayout([]Table{
		{ID: "TBL-001", Number: "Table 1", Capacity: 4, Status: StatusAvailable, Location: "Main Hall", Shape: ShapeSquare, Position: Point{X: 80, Y: 80}},
		{ID: "TBL-002", Number: "Table 2", Capacity: 2, Status: StatusAvailable, Location: "Main Hall", Shape: ShapeCircle, Position: Point{X: 220, Y: 80}},
		{ID: "TBL-005", Number: "Table 5", Capacity: 4, Status: StatusOccupied, Location: "Main Hall", Shape: ShapeSquare, Position: Point{X: 360, Y: 80}},
		{ID: "TBL-007", Number: "Table 7", Capacity: 4, Status: StatusMaintenance, Location: "Main Hall", Shape: ShapeSquare, Position: Point{X: 500, Y: 80}},
		{ID: "TBL-003", Number: "Table 3", Capacity: 6, Status: StatusAvailable, Location: "Garden", Shape: ShapeRectangle, Position: Point{X: 80, Y: 260}},
		{ID: "TBL-006", Number: "Table 6", Capacity: 2, Status: StatusReserved, Location: "Garden", Shape: ShapeCircle, Position: Point{X: 260, Y: 260}},
		{ID: "TBL-008", Number: "Table 8", Capacity: 2, Status: StatusAvailable, Location: "Garden", Shape: ShapeCircle, Position: Point{X: 380, Y: 260}},
		{ID: "TBL-004", Number: "VIP Room", Capacity: 10, Status: StatusAvailable, Location: "Private", Shape: ShapeRectangle, Position: Point{X: 80, Y: 440}},
	})
}
