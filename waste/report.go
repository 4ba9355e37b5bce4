package waste

import "image"

// ImageSize is the size of the original, uncropped image.
type ImageSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Report is the final per-image result.
type Report struct {
	Success        bool        `json:"success"`
	Detections     []Detection `json:"detections"`
	ContainerCount int         `json:"containerCount"`
	OverloadCount  int         `json:"overloadCount"`
	IsOverloaded   bool        `json:"isOverloaded"`
	ImageSize      ImageSize   `json:"imageSize"`
	ROIApplied     bool        `json:"roiApplied"`
}

// Failure is emitted in place of a Report when a request cannot be served.
type Failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewFailure wraps err into a Failure.
func NewFailure(err error) *Failure {
	return &Failure{Error: err.Error()}
}

// Assemble builds a Report. Detection order is kept and Discarded entries are dropped.
//
// Arguments:
//   - dets: The classified detections.
//   - counts: The aggregate counts for dets.
//   - size: The original image size.
//   - roiApplied: Whether a region of interest was cropped before detection.
//
// Returns:
//   - *Report: A report that shares no memory with dets.
func Assemble(dets []Detection, counts Counts, size image.Point, roiApplied bool) *Report {
	out := make([]Detection, 0, len(dets))
	for _, d := range dets {
		if d.Class == Discarded {
			continue
		}
		out = append(out, d)
	}
	return &Report{
		Success:        true,
		Detections:     out,
		ContainerCount: counts.Containers,
		OverloadCount:  counts.Overloads,
		IsOverloaded:   counts.Overloaded,
		ImageSize:      ImageSize{Width: size.X, Height: size.Y},
		ROIApplied:     roiApplied,
	}
}
