package waste

import "math"

// ProximityFactor scales the mean box dimension into the closeness threshold.
const ProximityFactor = 2.0

// Close reports whether the centres of two boxes lie within ProximityFactor times their mean
// dimension of each other.
//
// Arguments:
//   - a: The first box.
//   - b: The second box.
//
// Returns:
//   - bool: True when the centre distance is strictly below the threshold.
func Close(a, b BBox) bool {
	ax, ay := a.Center()
	bx, by := b.Center()
	distance := math.Hypot(ax-bx, ay-by)
	avgSize := (a.Width + a.Height + b.Width + b.Height) / 4
	return distance < ProximityFactor*avgSize
}

// PromoteLittering returns a copy of dets in which every Person close to a Bin, Litter or
// ContainerOverload detection becomes PersonLittering. The input slice is left untouched.
func PromoteLittering(dets []Detection) []Detection {
	out := make([]Detection, len(dets))
	copy(out, dets)

	trash := make([]BBox, 0, len(dets))
	for _, d := range dets {
		if d.Class.IsTrash() {
			trash = append(trash, d.Box)
		}
	}
	if len(trash) == 0 {
		return out
	}

	for i := range out {
		if out[i].Class != Person {
			continue
		}
		for _, box := range trash {
			if Close(out[i].Box, box) {
				out[i].Class = PersonLittering
				break
			}
		}
	}
	return out
}
