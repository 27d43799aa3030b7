package tablemap

import (
	"errors"
	"fmt"
	"math"
)

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewMap  ViewMode = "map"
)

const (
	MinZoom  = 0.4
	MaxZoom  = 2.0
	ZoomStep = 0.2
)

var ErrUnknownViewMode = errors.New("unknown view mode")

// Viewport is the pan and zoom state of the 2D map. The zero value is not
// usable; call NewViewport.
type Viewport struct {
	Mode ViewMode `json:"mode"`
	Zoom float64  `json:"zoom"`
	Pan  Point    `json:"pan"`
}

func NewViewport() *Viewport {
	return &Viewport{Mode: ViewMap, Zoom: 1}
}

func (v *Viewport) SetMode(mode ViewMode) error {
	switch mode {
	case ViewGrid, ViewMap:
		v.Mode = mode
		return nil
	default:
		return ErrUnknownViewMode
	}
}

func (v *Viewport) ZoomIn() {
	v.setZoom(v.Zoom + ZoomStep)
}

func (v *Viewport) ZoomOut() {
	v.setZoom(v.Zoom - ZoomStep)
}

func (v *Viewport) setZoom(z float64) {
	z = math.Round(z*10) / 10
	v.Zoom = math.Max(MinZoom, math.Min(MaxZoom, z))
}

// Drag pans by the pointer delta.
func (v *Viewport) Drag(dx, dy float64) {
	v.Pan.X += dx
	v.Pan.Y += dy
}

func (v *Viewport) Reset() {
	v.Zoom = 1
	v.Pan = Point{}
}

// Transform is the CSS transform applied to the map layer.
func (v *Viewport) Transform() string {
	return fmt.Sprintf("translate(%gpx, %gpx) scale(%g)", v.Pan.X, v.Pan.Y, v.Zoom)
}
