package images

import (
	"encoding/json"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// ROI is a caller-supplied region of interest in original image pixels.
type ROI struct {
	X      int
	Y      int
	Width  int
	Height int
}

type roiJSON struct {
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

// ParseROI parses a {"x","y","width","height"} object. Fractional values are truncated.
//
// Arguments:
//   - raw: The JSON text. Empty or "null" means no region.
//
// Returns:
//   - *ROI: The region, nil when none was given.
//   - error: An error if the text is not a complete, positive-sized region.
func ParseROI(raw string) (*ROI, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}

	var v roiJSON
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, errors.Wrap(err, "invalid roi json")
	}
	if v.X == nil || v.Y == nil || v.Width == nil || v.Height == nil {
		return nil, errors.New("roi requires x, y, width and height")
	}

	roi := &ROI{X: int(*v.X), Y: int(*v.Y), Width: int(*v.Width), Height: int(*v.Height)}
	if roi.Width <= 0 || roi.Height <= 0 {
		return nil, errors.Errorf("roi size must be positive, got %dx%d", roi.Width, roi.Height)
	}
	return roi, nil
}

// Clamp fits the region to an image of the given size.
//
// Arguments:
//   - size: The image width and height.
//
// Returns:
//   - image.Rectangle: The clamped region.
//   - bool: False when nothing of the region lies inside the image.
func (r ROI) Clamp(size image.Point) (image.Rectangle, bool) {
	x := max(0, min(r.X, size.X))
	y := max(0, min(r.Y, size.Y))
	w := max(1, min(r.Width, size.X-x))
	h := max(1, min(r.Height, size.Y-y))

	rect := image.Rect(x, y, x+w, y+h).Intersect(image.Rect(0, 0, size.X, size.Y))
	if rect.Empty() {
		return image.Rectangle{}, false
	}
	return rect, true
}

// Crop returns the part of img inside rect, rebased to the origin.
func Crop(img image.Image, rect image.Rectangle) image.Image {
	return imaging.Crop(img, rect.Add(img.Bounds().Min))
}
