package waste

import (
	"encoding/json"
	"image"
	"math"

	"github.com/pkg/errors"
)

// BBox is an axis-aligned box in pixel coordinates, anchored at its top-left corner.
type BBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Center returns the centre point of the box.
func (b BBox) Center() (float64, float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Shift translates the box by the given offset.
func (b BBox) Shift(offset image.Point) BBox {
	b.X += float64(offset.X)
	b.Y += float64(offset.Y)
	return b
}

// Rectangle rounds the box to an integer image.Rectangle.
func (b BBox) Rectangle() image.Rectangle {
	return image.Rect(
		int(math.Round(b.X)),
		int(math.Round(b.Y)),
		int(math.Round(b.X+b.Width)),
		int(math.Round(b.Y+b.Height)),
	)
}

// MarshalJSON encodes the box as [x, y, width, height].
func (b BBox) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{b.X, b.Y, b.Width, b.Height})
}

// UnmarshalJSON decodes a [x, y, width, height] array.
func (b *BBox) UnmarshalJSON(data []byte) error {
	var v []float64
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(err, "bbox must be a numeric array")
	}
	if len(v) != 4 {
		return errors.Errorf("bbox must have 4 elements, got %d", len(v))
	}
	*b = BBox{X: v[0], Y: v[1], Width: v[2], Height: v[3]}
	return nil
}

// RawDetection is one detector output before any domain reasoning.
type RawDetection struct {
	// Label is the detector's generic category name.
	Label string
	// Confidence is in [0,1].
	Confidence float64
	// Box is in the coordinate space of the image given to the detector.
	Box BBox
}

// Detection is a detection remapped onto a domain class.
type Detection struct {
	Class         Class   `json:"class"`
	Confidence    float64 `json:"score"`
	Box           BBox    `json:"bbox"`
	OriginalLabel string  `json:"original_class"`
}
