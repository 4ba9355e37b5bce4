package images

import (
	"image"

	"go.uber.org/zap"
)

// Frame is an image prepared for detection.
type Frame struct {
	// Image is what the detector sees: the crop when a region was applied.
	Image image.Image
	// Source is the original, uncropped image.
	Source image.Image
	// Offset is the origin of Image within the original image.
	Offset image.Point
	// Size is the size of the original image.
	Size image.Point
	// ROIApplied is set when Image is a crop.
	ROIApplied bool
}

// NewFrame wraps a whole image.
func NewFrame(img image.Image) *Frame {
	b := img.Bounds()
	return &Frame{Image: img, Source: img, Size: image.Pt(b.Dx(), b.Dy())}
}

// WithROI crops the frame to roi. A nil or unusable region leaves the frame whole.
//
// Arguments:
//   - roi: The region of interest.
//
// Returns:
//   - *Frame: A new frame.
//   - bool: Whether the crop happened.
func (f *Frame) WithROI(roi *ROI) (*Frame, bool) {
	if roi == nil {
		return f, false
	}
	rect, ok := roi.Clamp(f.Size)
	if !ok {
		return f, false
	}
	return &Frame{
		Image:      Crop(f.Source, rect),
		Source:     f.Source,
		Offset:     rect.Min,
		Size:       f.Size,
		ROIApplied: true,
	}, true
}

// LoadFrame decodes payload and applies the optional ROI. An invalid ROI is logged and ignored.
//
// Arguments:
//   - payload: The base64 image payload.
//   - roiRaw: The optional ROI JSON.
//   - logger: Receives ROI warnings.
//
// Returns:
//   - *Frame: The frame to run detection on.
//   - error: An error if the payload cannot be decoded.
func LoadFrame(payload, roiRaw string, logger *zap.SugaredLogger) (*Frame, error) {
	img, err := DecodePayload(payload)
	if err != nil {
		return nil, err
	}
	return ApplyROI(NewFrame(img), roiRaw, logger), nil
}

// ApplyROI parses roiRaw and crops frame to it, falling back to the whole frame on any problem.
func ApplyROI(frame *Frame, roiRaw string, logger *zap.SugaredLogger) *Frame {
	roi, err := ParseROI(roiRaw)
	if err != nil {
		logger.Warnw("ignoring region of interest", "roi", roiRaw, "error", err)
		return frame
	}
	cropped, ok := frame.WithROI(roi)
	if roi != nil && !ok {
		logger.Warnw("region of interest lies outside the image", "roi", roiRaw, "size", frame.Size)
	}
	return cropped
}
