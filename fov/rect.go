package fov

// Rect is an axis-aligned rectangle in the transverse plane at one fixed
// depth. Sx/Sy and Ex/Ey are start and end coordinates, not sizes.
type Rect struct {
	Sx float32 `json:"sx"`
	Sy float32 `json:"sy"`
	Ex float32 `json:"ex"`
	Ey float32 `json:"ey"`
}

func NewRect(sx, sy, ex, ey float32) Rect {
	return Rect{Sx: sx, Sy: sy, Ex: ex, Ey: ey}
}

// IsValid reports whether the rectangle has positive area. Degenerate
// rectangles are dropped at every stage rather than treated as errors.
func (r Rect) IsValid() bool {
	return r.Sx < r.Ex && r.Sy < r.Ey
}

// Intersects is a strict overlap test: touching edges do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.Sx < o.Ex && o.Sx < r.Ex && r.Sy < o.Ey && o.Sy < r.Ey
}

// Intersection returns the overlapping region of two rectangles. ok is false
// when the regions do not strictly overlap.
func (r Rect) Intersection(o Rect) (Rect, bool) {
	out := Rect{
		Sx: max32(r.Sx, o.Sx),
		Sy: max32(r.Sy, o.Sy),
		Ex: min32(r.Ex, o.Ex),
		Ey: min32(r.Ey, o.Ey),
	}
	return out, out.IsValid()
}

// touches is the closed counterpart of Intersects: rectangles sharing only
// an edge or a corner still touch.
func touches(r, o Rect) bool {
	return r.Sx <= o.Ex && o.Sx <= r.Ex && r.Sy <= o.Ey && o.Sy <= r.Ey
}

func (r Rect) Area() float32 {
	if !r.IsValid() {
		return 0
	}
	return (r.Ex - r.Sx) * (r.Ey - r.Sy)
}

// min32 and max32 return one of their operands unchanged, which keeps the
// sign of zero intact. Signed zeros mark which side of a quadrant seam a
// bound came from and must survive until the bound is turned back into a
// slope.
func min32(a, b float32) float32 {
	if b < a {
		return b
	}
	return a
}

func max32(a, b float32) float32 {
	if b > a {
		return b
	}
	return a
}
