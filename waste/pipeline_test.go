package waste

import (
	"context"
	"encoding/json"
	"image"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/wastewatch/images"
)

type fakeSource struct {
	raw   []RawDetection
	err   error
	calls int
	seen  image.Rectangle
}

func (f *fakeSource) Detect(ctx context.Context, img image.Image) ([]RawDetection, error) {
	f.calls++
	f.seen = img.Bounds()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.raw, f.err
}

func blankFrame(w, h int) *images.Frame {
	return images.NewFrame(image.NewRGBA(image.Rect(0, 0, w, h)))
}

func TestPipelineProcess(t *testing.T) {
	src := &fakeSource{raw: []RawDetection{
		{Label: "person", Confidence: 0.9, Box: BBox{0, 0, 10, 10}},
		{Label: "banana", Confidence: 0.2, Box: BBox{5, 5, 10, 10}},
		{Label: "trash can", Confidence: 0.6, Box: BBox{300, 300, 50, 80}},
		{Label: "bus", Confidence: 0.95, Box: BBox{100, 0, 200, 100}},
	}}

	report, err := NewPipeline(src).Process(context.Background(), blankFrame(640, 480))
	require.NoError(t, err)

	require.Len(t, report.Detections, 3)
	assert.Equal(t, PersonLittering, report.Detections[0].Class)
	assert.Equal(t, Litter, report.Detections[1].Class)
	assert.Equal(t, Bin, report.Detections[2].Class)
	assert.Equal(t, 1, report.ContainerCount)
	assert.False(t, report.IsOverloaded)
	assert.Equal(t, ImageSize{Width: 640, Height: 480}, report.ImageSize)
	assert.False(t, report.ROIApplied)
	assert.Equal(t, 1, src.calls)
}

func TestPipelineOverloadFromBinCount(t *testing.T) {
	src := &fakeSource{raw: []RawDetection{
		{Label: "bin", Confidence: 0.9, Box: BBox{0, 0, 10, 10}},
		{Label: "bin", Confidence: 0.8, Box: BBox{100, 0, 10, 10}},
		{Label: "bin", Confidence: 0.7, Box: BBox{200, 0, 10, 10}},
	}}

	report, err := NewPipeline(src).Process(context.Background(), blankFrame(320, 240))
	require.NoError(t, err)
	assert.Equal(t, 3, report.ContainerCount)
	assert.Equal(t, 0, report.OverloadCount)
	assert.True(t, report.IsOverloaded)
}

func TestPipelineROIOffset(t *testing.T) {
	src := &fakeSource{raw: []RawDetection{{Label: "cup", Confidence: 0.3, Box: BBox{1, 2, 3, 4}}}}
	roi := &images.ROI{X: 100, Y: 50, Width: 200, Height: 100}
	frame, ok := blankFrame(640, 480).WithROI(roi)
	require.True(t, ok)

	report, err := NewPipeline(src).Process(context.Background(), frame)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 100), src.seen)
	assert.Equal(t, BBox{101, 52, 3, 4}, report.Detections[0].Box)
	assert.True(t, report.ROIApplied)
	assert.Equal(t, ImageSize{Width: 640, Height: 480}, report.ImageSize)
}

func TestPipelineIdempotent(t *testing.T) {
	raw := []RawDetection{
		{Label: "person", Confidence: 0.9, Box: BBox{0, 0, 10, 10}},
		{Label: "bottle", Confidence: 0.4, Box: BBox{4, 4, 6, 6}},
		{Label: "bucket", Confidence: 0.7, Box: BBox{50, 50, 20, 20}},
	}
	p := NewPipeline(&fakeSource{})
	frame := blankFrame(100, 100)

	first, err := json.Marshal(p.Classify(raw, frame))
	require.NoError(t, err)
	second, err := json.Marshal(p.Classify(raw, frame))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPipelineDetectorError(t *testing.T) {
	src := &fakeSource{err: errors.New("inference exploded")}
	_, err := NewPipeline(src).Process(context.Background(), blankFrame(10, 10))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inference exploded")
}

func TestPipelineCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPipeline(&fakeSource{}).Process(ctx, blankFrame(10, 10))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipelineNilFrame(t *testing.T) {
	_, err := NewPipeline(&fakeSource{}).Process(context.Background(), nil)
	assert.Error(t, err)
}

func TestPipelineWithRules(t *testing.T) {
	src := &fakeSource{raw: []RawDetection{{Label: "overflowing bin", Confidence: 0.6, Box: BBox{0, 0, 10, 10}}}}
	rules := append([]Rule{{Name: "overflow", Match: ContainsAny("overflow"), Class: ContainerOverload}}, DefaultRules()...)

	report, err := NewPipeline(src, WithRules(rules...)).Process(context.Background(), blankFrame(10, 10))
	require.NoError(t, err)
	assert.Equal(t, ContainerOverload, report.Detections[0].Class)
	assert.Equal(t, 1, report.OverloadCount)
	assert.True(t, report.IsOverloaded)
}
