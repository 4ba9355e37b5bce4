// Package postprocess - Postprocessing utilities for detector outputs.
package postprocess

import "github.com/nvr-ai/wastewatch/images"

// Candidate is a single decoded detector proposal.
type Candidate struct {
	// The bounding box in original image pixels, rounded for overlap tests.
	Box images.Rect
	// The unrounded corners x1, y1, x2, y2.
	Corners [4]float32
	// The confidence score.
	Score float32
	// The predicted class index.
	Class int
}
