package geometry

// Region is an interactive area of a rendered page, keyed by the block and
// field it edits. Bounds are in logical page units.
type Region struct {
	BlockID   string `json:"blockId"`
	FieldPath string `json:"fieldPath,omitempty"`
	Bounds    Rect   `json:"bounds"`
}

// ScreenRegion is a region positioned in the viewport
type ScreenRegion struct {
	Region
	Screen ScreenRect `json:"screen"`
}

// Overlay positions every region in the viewport, preserving order
func Overlay(regions []Region, page PageSize, vp Viewport) []ScreenRegion {
	out := make([]ScreenRegion, 0, len(regions))
	for _, r := range regions {
		out = append(out, ScreenRegion{
			Region: r,
			Screen: LogicalToScreen(r.Bounds, page, vp),
		})
	}
	return out
}

// HitTest resolves a click at screen point p to the region under it. Later
// regions sit on top of earlier ones. It reports false when nothing is hit
// or the viewport is degenerate.
func HitTest(regions []Region, p Point, page PageSize, vp Viewport) (Region, bool) {
	if !TransformFor(page, vp).Valid() {
		return Region{}, false
	}
	logical := PointToLogical(p, page, vp)
	for i := len(regions) - 1; i >= 0; i-- {
		if regions[i].Bounds.Contains(logical) {
			return regions[i], true
		}
	}
	return Region{}, false
}
