package detectors

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/wastewatch/images"
	"github.com/nvr-ai/wastewatch/models"
	"github.com/nvr-ai/wastewatch/models/postprocess"
	"github.com/nvr-ai/wastewatch/waste"
)

// boxChannels is the number of leading box coordinates (cx, cy, w, h) per anchor.
const boxChannels = 4

// AnchorCount returns the number of YOLOv8 anchors for a square input of the given size.
func AnchorCount(inputSize int) int {
	n := 0
	for _, stride := range []int{8, 16, 32} {
		side := inputSize / stride
		n += side * side
	}
	return n
}

// DecodeOutput converts a channel-major YOLOv8 output into candidates in original image pixels.
//
// Arguments:
//   - data: The raw output, laid out as [channels][anchors].
//   - channels: 4 box coordinates plus one score per class.
//   - anchors: The number of anchors.
//   - inputSize: The square model input size the boxes are expressed in.
//   - orig: The size of the image given to the detector.
//   - threshold: The minimum class score kept.
//
// Returns:
//   - []postprocess.Candidate: The candidates above threshold, before suppression.
//   - error: An error if data does not match the declared shape.
func DecodeOutput(
	data []float32,
	channels, anchors, inputSize int,
	orig image.Point,
	threshold float32,
) ([]postprocess.Candidate, error) {
	if channels <= boxChannels {
		return nil, errors.Errorf("output needs more than %d channels, got %d", boxChannels, channels)
	}
	if len(data) < channels*anchors {
		return nil, errors.Errorf("output holds %d floats, expected %d", len(data), channels*anchors)
	}

	backing := make([]float32, channels*anchors)
	copy(backing, data)
	t := tensor.New(tensor.WithShape(channels, anchors), tensor.WithBacking(backing))
	if err := t.T(); err != nil {
		return nil, errors.Wrap(err, "failed to transpose output")
	}
	if err := t.Transpose(); err != nil {
		return nil, errors.Wrap(err, "failed to transpose output")
	}
	rows, ok := t.Data().([]float32)
	if !ok {
		return nil, errors.New("unexpected output tensor type")
	}

	sx := float32(orig.X) / float32(inputSize)
	sy := float32(orig.Y) / float32(inputSize)
	maxX, maxY := float32(orig.X), float32(orig.Y)

	var out []postprocess.Candidate
	for a := 0; a < anchors; a++ {
		row := rows[a*channels : (a+1)*channels]

		class, score := -1, float32(-1)
		for c, s := range row[boxChannels:] {
			if s > score {
				class, score = c, s
			}
		}
		if score < threshold {
			continue
		}

		cx, cy, w, h := row[0], row[1], row[2], row[3]
		x1 := clamp((cx-w/2)*sx, maxX)
		y1 := clamp((cy-h/2)*sy, maxY)
		x2 := clamp((cx+w/2)*sx, maxX)
		y2 := clamp((cy+h/2)*sy, maxY)
		if x2 <= x1 || y2 <= y1 {
			continue
		}

		out = append(out, postprocess.Candidate{
			Box: images.Rect{
				X1: int(math32.Round(x1)),
				Y1: int(math32.Round(y1)),
				X2: int(math32.Round(x2)),
				Y2: int(math32.Round(y2)),
			},
			Corners: [4]float32{x1, y1, x2, y2},
			Score:   score,
			Class:   class,
		})
	}
	return out, nil
}

// ToRawDetections labels candidates and converts their unrounded corners to boxes.
func ToRawDetections(candidates []postprocess.Candidate, labels models.LabelSet) []waste.RawDetection {
	out := make([]waste.RawDetection, 0, len(candidates))
	for _, c := range candidates {
		x1, y1, x2, y2 := c.Corners[0], c.Corners[1], c.Corners[2], c.Corners[3]
		out = append(out, waste.RawDetection{
			Label:      labels.Label(c.Class),
			Confidence: float64(c.Score),
			Box: waste.BBox{
				X:      float64(x1),
				Y:      float64(y1),
				Width:  float64(x2 - x1),
				Height: float64(y2 - y1),
			},
		})
	}
	return out
}

func clamp(v, hi float32) float32 {
	return math32.Max(0, math32.Min(v, hi))
}
