package tablemap

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusColor(t *testing.T) {
	cases := map[Status]string{
		StatusAvailable:   "green",
		StatusOccupied:    "red",
		StatusReserved:    "yellow",
		StatusMaintenance: "gray",
	}
	for status, want := range cases {
		if got := status.Color(); got != want {
			t.Fatalf("expected %s for %s, got %s", want, status, got)
		}
	}
}

func TestTableSize(t *testing.T) {
	if got := TableSize(4, ShapeSquare); got.Width != 56 || got.Height != 56 {
		t.Fatalf("unexpected square size %+v", got)
	}
	if got := TableSize(6, ShapeRectangle); got.Width != 96 || got.Height != 64 {
		t.Fatalf("unexpected rectangle size %+v", got)
	}
}

func TestSeatMarkers(t *testing.T) {
	t.Run("circle spaced by angle", func(t *testing.T) {
		seats := SeatMarkers(Table{Capacity: 4, Shape: ShapeCircle})
		require.Len(t, seats, 4)
		// 56px table, 38px radius around its center.
		require.Equal(t, Seat{Side: SideArc, X: 28, Y: -10}, seats[0])
		require.Equal(t, Seat{Side: SideArc, X: 66, Y: 28}, seats[1])
		for _, seat := range seats {
			dist := math.Hypot(seat.X-28, seat.Y-28)
			if math.Abs(dist-38) > 0.01 {
				t.Fatalf("seat %+v is %.2f from center", seat, dist)
			}
		}
	})

	t.Run("rectangle fills long sides first", func(t *testing.T) {
		seats := SeatMarkers(Table{Capacity: 6, Shape: ShapeRectangle})
		require.Len(t, seats, 6)
		counts := map[Side]int{}
		for _, seat := range seats {
			counts[seat.Side]++
		}
		require.Equal(t, map[Side]int{SideTop: 2, SideBottom: 2, SideLeft: 1, SideRight: 1}, counts)
		require.Equal(t, Seat{Side: SideTop, X: 32, Y: -10}, seats[0])
		require.Equal(t, Seat{Side: SideTop, X: 64, Y: -10}, seats[1])
	})

	t.Run("square two seats face each other", func(t *testing.T) {
		seats := SeatMarkers(Table{Capacity: 2, Shape: ShapeSquare})
		require.Equal(t, []Seat{
			{Side: SideTop, X: 24, Y: -10},
			{Side: SideBottom, X: 24, Y: 58},
		}, seats)
	})

	t.Run("no capacity no seats", func(t *testing.T) {
		require.Empty(t, SeatMarkers(Table{Shape: ShapeSquare}))
	})
}

func TestLayoutViews(t *testing.T) {
	layout := SampleLayout()

	zones := Zones(layout.Tables())
	require.Len(t, zones, 3)
	require.Equal(t, "Main Hall", zones[0].Location)
	require.Equal(t, "Private", zones[2].Location)

	grid := Grid(layout.Tables())
	for i := 1; i < len(grid); i++ {
		if grid[i-1].Capacity > grid[i].Capacity {
			t.Fatalf("grid not sorted by capacity at %d", i)
		}
	}
	require.Equal(t, "VIP Room", grid[len(grid)-1].Number)

	garden := layout.Search("GARDEN")
	require.Len(t, garden, 3)
	require.Len(t, layout.Search("vip"), 1)
	require.Len(t, layout.Search(""), len(layout.Tables()))
}

func TestSelectionRejectsFifthTable(t *testing.T) {
	layout := SampleLayout()
	selection := NewSelection(4)

	var available []Table
	for _, table := range layout.Tables() {
		if table.Selectable() {
			available = append(available, table)
		}
	}
	require.GreaterOrEqual(t, len(available), 5)

	for _, table := range available[:4] {
		if err := selection.Toggle(table); err != nil {
			t.Fatalf("unexpected error selecting %s: %v", table.ID, err)
		}
	}

	err := selection.Toggle(available[4])
	var maxErr *MaxSelectionError
	if !errors.As(err, &maxErr) {
		t.Fatalf("expected MaxSelectionError, got %v", err)
	}
	if err.Error() != "Maximum 4 tables can be selected" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if selection.Len() != 4 || selection.Contains(available[4].ID) {
		t.Fatalf("expected the first four tables to remain")
	}
	for _, table := range available[:4] {
		if !selection.Contains(table.ID) {
			t.Fatalf("expected %s to stay selected", table.ID)
		}
	}
}

func TestSelectionIgnoresUnavailableTables(t *testing.T) {
	selection := NewSelection(0)
	require.Equal(t, DefaultMaxSelection, selection.Max())

	for _, status := range []Status{StatusOccupied, StatusReserved, StatusMaintenance} {
		err := selection.Toggle(Table{ID: "T-" + string(status), Status: status})
		if !errors.Is(err, ErrTableUnavailable) {
			t.Fatalf("expected ErrTableUnavailable for %s, got %v", status, err)
		}
	}
	if selection.Len() != 0 {
		t.Fatalf("expected empty selection, got %d", selection.Len())
	}

	table := Table{ID: "T1", Capacity: 4, Status: StatusAvailable}
	_ = selection.Toggle(table)
	_ = selection.Toggle(Table{ID: "T2", Capacity: 2, Status: StatusAvailable})
	if selection.Seats() != 6 {
		t.Fatalf("expected 6 seats, got %d", selection.Seats())
	}
	_ = selection.Toggle(table)
	if selection.Contains("T1") || selection.Len() != 1 {
		t.Fatalf("expected second toggle to deselect")
	}
}

func TestViewport(t *testing.T) {
	v := NewViewport()
	require.Equal(t, ViewMap, v.Mode)

	for i := 0; i < 10; i++ {
		v.ZoomIn()
	}
	require.Equal(t, MaxZoom, v.Zoom)

	for i := 0; i < 10; i++ {
		v.ZoomOut()
	}
	require.Equal(t, MinZoom, v.Zoom)

	v.ZoomIn()
	v.Drag(15, -5)
	v.Drag(5, 0)
	require.Equal(t, "translate(20px, -5px) scale(0.6)", v.Transform())

	v.Reset()
	require.Equal(t, "translate(0px, 0px) scale(1)", v.Transform())

	require.NoError(t, v.SetMode(ViewGrid))
	require.ErrorIs(t, v.SetMode("list"), ErrUnknownViewMode)
	require.Equal(t, ViewGrid, v.Mode)
}
