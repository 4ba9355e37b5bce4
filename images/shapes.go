// Package images - Image decoding, region-of-interest handling and annotation.
package images

// Rect is a lightweight bounding box.
type Rect struct {
	// X2,Y2 are exclusive (like image.Rectangle).
	X1, Y1, X2, Y2 int
}

// Area returns the area of the rectangle, zero when it is empty.
func (r Rect) Area() int {
	w, h := r.X2-r.X1, r.Y2-r.Y1
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// CalculateIoU returns the intersection over union of two rectangles.
//
// Arguments:
//   - r: The first rectangle.
//   - o: The other rectangle.
//
// Returns:
//   - float32: A value in [0, 1]. Disjoint, touching or degenerate boxes yield 0.
func CalculateIoU(r, o Rect) float32 {
	inter := Rect{
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
		X2: min(r.X2, o.X2),
		Y2: min(r.Y2, o.Y2),
	}.Area()
	if inter == 0 {
		return 0
	}
	union := r.Area() + o.Area() - inter
	if union <= 0 {
		return 0
	}
	return float32(inter) / float32(union)
}
