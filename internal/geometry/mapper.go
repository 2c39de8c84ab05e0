// Package geometry maps between the fixed logical coordinate space a page is
// laid out in and the on-screen viewport it is displayed in.
//
// Scaling is uniform: the page is fitted inside the viewport, multiplied by
// the zoom factor, and centred.
package geometry

import "math"

// PageSize is the size of a page in logical units (PostScript points)
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Standard page sizes
var (
	A4     = PageSize{Width: 595.28, Height: 841.89}
	Letter = PageSize{Width: 612, Height: 792}
)

// Viewport is the on-screen area a page is displayed in
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Zoom   float64 `json:"zoom"`
}

// Point is a position in either space
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is a rectangle in logical page space
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether p lies inside r, edges included
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// ScreenRect is a rectangle in viewport pixels
type ScreenRect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Transform is the scale and offsets taking logical coordinates to screen
// coordinates. A zero Scale marks a degenerate page or viewport.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// TransformFor computes the transform for page shown in vp
func TransformFor(page PageSize, vp Viewport) Transform {
	if !positive(page.Width) || !positive(page.Height) ||
		!positive(vp.Width) || !positive(vp.Height) || !positive(vp.Zoom) {
		return Transform{}
	}
	scale := math.Min(vp.Width/page.Width, vp.Height/page.Height) * vp.Zoom
	return Transform{
		Scale:   scale,
		OffsetX: (vp.Width - page.Width*scale) / 2,
		OffsetY: (vp.Height - page.Height*scale) / 2,
	}
}

// Valid reports whether the transform can be inverted
func (t Transform) Valid() bool {
	return t.Scale > 0
}

// LogicalToScreen maps a logical rectangle to viewport pixels
func LogicalToScreen(r Rect, page PageSize, vp Viewport) ScreenRect {
	t := TransformFor(page, vp)
	if !t.Valid() {
		return ScreenRect{}
	}
	return ScreenRect{
		Left:   t.OffsetX + r.X*t.Scale,
		Top:    t.OffsetY + r.Y*t.Scale,
		Width:  r.Width * t.Scale,
		Height: r.Height * t.Scale,
	}
}

// ScreenToLogical maps a viewport rectangle back to logical units
func ScreenToLogical(s ScreenRect, page PageSize, vp Viewport) Rect {
	t := TransformFor(page, vp)
	if !t.Valid() {
		return Rect{}
	}
	return Rect{
		X:      (s.Left - t.OffsetX) / t.Scale,
		Y:      (s.Top - t.OffsetY) / t.Scale,
		Width:  s.Width / t.Scale,
		Height: s.Height / t.Scale,
	}
}

// PointToScreen maps a logical point to viewport pixels
func PointToScreen(p Point, page PageSize, vp Viewport) Point {
	s := LogicalToScreen(Rect{X: p.X, Y: p.Y}, page, vp)
	return Point{X: s.Left, Y: s.Top}
}

// PointToLogical maps a viewport point to logical units
func PointToLogical(p Point, page PageSize, vp Viewport) Point {
	r := ScreenToLogical(ScreenRect{Left: p.X, Top: p.Y}, page, vp)
	return Point{X: r.X, Y: r.Y}
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
