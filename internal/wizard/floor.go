package wizard

import (
	"errors"

	"wulf-order-services/internal/menu"
	"wulf-order-services/internal/tablemap"
)

var (
	ErrTableNotFound       = errors.New("table not found")
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrMenuItemUnavailable = errors.New("menu item is out of stock")
)

type TableView struct {
	tablemap.Table
	Color      string          `json:"color"`
	Size       tablemap.Size   `json:"size"`
	Seats      []tablemap.Seat `json:"seats"`
	Selected   bool            `json:"selected"`
	Selectable bool            `json:"selectable"`
}

type ZoneView struct {
	Location string      `json:"location"`
	Tables   []TableView `json:"tables"`
}

// FloorView is everything the table picker renders for one search term.
type FloorView struct {
	Mode          tablemap.ViewMode `json:"mode"`
	Zoom          float64           `json:"zoom"`
	Transform     string            `json:"transform"`
	Search        string            `json:"search"`
	Zones         []ZoneView        `json:"zones"`
	Grid          []TableView       `json:"grid"`
	Selected      []tablemap.Table  `json:"selected"`
	MaxSelection  int               `json:"maxSelection"`
	SelectedSeats int               `json:"selectedSeats"`
}

// ViewportCommand is one pan/zoom gesture. Zero fields are ignored.
type ViewportCommand struct {
	Mode  tablemap.ViewMode `json:"mode" validate:"omitempty,oneof=grid map"`
	Zoom  string            `json:"zoom" validate:"omitempty,oneof=in out"`
	DX    float64           `json:"dx"`
	DY    float64           `json:"dy"`
	Reset bool              `json:"reset"`
}

// floor is the table picker state shared by both flows.
type floor struct {
	layout    *tablemap.Layout
	selection *tablemap.Selection
	viewport  *tablemap.Viewport
}

func newFloor(layout *tablemap.Layout, max int) floor {
	if layout == nil {
		layout = tablemap.SampleLayout()
	}
	return floor{
		layout:    layout,
		selection: tablemap.NewSelection(max),
		viewport:  tablemap.NewViewport(),
	}
}

func (f *floor) toggle(id string) error {
	table, ok := f.layout.Find(id)
	if !ok {
		return ErrTableNotFound
	}
	return f.selection.Toggle(table)
}

func (f *floor) apply(cmd ViewportCommand) error {
	if cmd.Mode != "" {
		if err := f.viewport.SetMode(cmd.Mode); err != nil {
			return err
		}
	}
	if cmd.Reset {
		f.viewport.Reset()
	}
	switch cmd.Zoom {
	case "in":
		f.viewport.ZoomIn()
	case "out":
		f.viewport.ZoomOut()
	}
	if cmd.DX != 0 || cmd.DY != 0 {
		f.viewport.Drag(cmd.DX, cmd.DY)
	}
	return nil
}

func (f *floor) view(search string) FloorView {
	tables := f.layout.Search(search)
	zones := tablemap.Zones(tables)
	zoneViews := make([]ZoneView, 0, len(zones))
	for _, zone := range zones {
		zoneViews = append(zoneViews, ZoneView{Location: zone.Location, Tables: f.tableViews(zone.Tables)})
	}
	return FloorView{
		Mode:          f.viewport.Mode,
		Zoom:          f.viewport.Zoom,
		Transform:     f.viewport.Transform(),
		Search:        search,
		Zones:         zoneViews,
		Grid:          f.tableViews(tablemap.Grid(tables)),
		Selected:      f.selection.Tables(),
		MaxSelection:  f.selection.Max(),
		SelectedSeats: f.selection.Seats(),
	}
}

func (f *floor) tableViews(tables []tablemap.Table) []TableView {
	out := make([]TableView, 0, len(tables))
	for _, table := range tables {
		out = append(out, TableView{
			Table:      table,
			Color:      table.Status.Color(),
			Size:       tablemap.TableSize(table.Capacity, table.Shape),
			Seats:      tablemap.SeatMarkers(table),
			Selected:   f.selection.Contains(table.ID),
			Selectable: table.Selectable(),
		})
	}
	return out
}

func (f *floor) reset() {
	f.selection.Clear()
	f.viewport = tablemap.NewViewport()
}

// MenuView is the menu picker: filtered catalog plus the order lines so far.
type MenuView struct {
	Categories []string        `json:"categories"`
	Items      []menu.MenuItem `json:"items"`
	Entries    menu.Entries    `json:"entries"`
	Count      int             `json:"count"`
	Total      int64           `json:"total"`
}

func menuView(catalog *menu.Catalog, entries menu.Entries, search, category string) MenuView {
	if category == "" {
		category = menu.AllCategories
	}
	return MenuView{
		Categories: catalog.Categories(),
		Items:      catalog.Filter(search, category),
		Entries:    entries.Clone(),
		Count:      entries.Count(),
		Total:      entries.Total(),
	}
}

func addEntry(catalog *menu.Catalog, entries menu.Entries, menuID, notes string) (menu.Entries, error) {
	item, ok := catalog.Find(menuID)
	if !ok {
		return entries, ErrMenuItemNotFound
	}
	if item.Status != menu.StatusAvailable {
		return entries, ErrMenuItemUnavailable
	}
	return entries.Add(item, notes), nil
}

func setEntryQuantity(entries menu.Entries, menuID string, quantity int) (menu.Entries, error) {
	if _, ok := entries.Find(menuID); !ok {
		return entries, ErrMenuItemNotFound
	}
	return entries.SetQuantity(menuID, quantity), nil
}
