package tablemap

import "math"

// seatGap is how far a seat marker sits outside the table edge.
const seatGap = 10

type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
	SideArc    Side = "arc"
)

// Seat is a marker position relative to the table's top-left corner.
type Seat struct {
	Side Side    `json:"side"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// SeatMarkers places one marker per seat around the table perimeter. Circles
// space them evenly by angle starting at twelve o'clock; square and rectangular
// tables deal seats to the sides round-robin, long sides first, and space them
// evenly along each side.
func SeatMarkers(table Table) []Seat {
	if table.Capacity <= 0 {
		return nil
	}
	size := TableSize(table.Capacity, table.Shape)
	if table.Shape == ShapeCircle {
		return circleSeats(table.Capacity, size)
	}
	return sideSeats(table.Capacity, size)
}

func circleSeats(n int, size Size) []Seat {
	cx, cy := size.Width/2, size.Height/2
	radius := size.Width/2 + seatGap
	seats := make([]Seat, 0, n)
	for i := 0; i < n; i++ {
		angle := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		seats = append(seats, Seat{
			Side: SideArc,
			X:    round2(cx + radius*math.Cos(angle)),
			Y:    round2(cy + radius*math.Sin(angle)),
		})
	}
	return seats
}

func sideSeats(n int, size Size) []Seat {
	sides := []Side{SideTop, SideBottom, SideLeft, SideRight}
	if size.Height > size.Width {
		sides = []Side{SideLeft, SideRight, SideTop, SideBottom}
	}
	perSide := map[Side]int{}
	for i := 0; i < n; i++ {
		perSide[sides[i%len(sides)]]++
	}

	seats := make([]Seat, 0, n)
	for _, side := range sides {
		count := perSide[side]
		for j := 0; j < count; j++ {
			t := float64(j+1) / float64(count+1)
			var seat Seat
			switch side {
			case SideTop:
				seat = Seat{X: size.Width * t, Y: -seatGap}
			case SideBottom:
				seat = Seat{X: size.Width * t, Y: size.Height + seatGap}
			case SideLeft:
				seat = Seat{X: -seatGap, Y: size.Height * t}
			case SideRight:
				seat = Seat{X: size.Width + seatGap, Y: size.Height * t}
			}
			seat.Side = side
			seat.X = round2(seat.X)
			seat.Y = round2(seat.Y)
			seats = append(seats, seat)
		}
	}
	return seats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
