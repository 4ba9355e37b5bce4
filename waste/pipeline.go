package waste

import (
	"context"
	"image"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nvr-ai/wastewatch/images"
)

// Source produces raw detections for an image.
type Source interface {
	Detect(ctx context.Context, img image.Image) ([]RawDetection, error)
}

// Pipeline runs one image through detection, classification, proximity reasoning and
// aggregation. It keeps no state between calls.
type Pipeline struct {
	source Source
	engine *RuleEngine
	logger *zap.SugaredLogger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRules replaces the default rule table.
func WithRules(rules ...Rule) Option {
	return func(p *Pipeline) {
		p.engine = NewRuleEngine(rules...)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline creates a pipeline reading detections from src.
//
// Arguments:
//   - src: The detection source.
//   - opts: Optional configuration.
//
// Returns:
//   - *Pipeline: The pipeline.
func NewPipeline(src Source, opts ...Option) *Pipeline {
	p := &Pipeline{
		source: src,
		engine: NewRuleEngine(),
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process detects and classifies objects in frame.
//
// Arguments:
//   - ctx: Bounds the detector call.
//   - frame: The decoded, optionally cropped image.
//
// Returns:
//   - *Report: The assembled report.
//   - error: The detector error, if any.
func (p *Pipeline) Process(ctx context.Context, frame *images.Frame) (*Report, error) {
	if frame == nil || frame.Image == nil {
		return nil, errors.New("no image to process")
	}
	start := time.Now()
	raw, err := p.source.Detect(ctx, frame.Image)
	if err != nil {
		return nil, errors.Wrap(err, "detection failed")
	}
	report := p.Classify(raw, frame)
	p.logger.Debugw("processed image",
		"raw", len(raw),
		"detections", len(report.Detections),
		"containers", report.ContainerCount,
		"overloaded", report.IsOverloaded,
		"roi", report.ROIApplied,
		"took", time.Since(start),
	)
	return report, nil
}

// Classify runs the detector-independent stages over raw detections from frame.
func (p *Pipeline) Classify(raw []RawDetection, frame *images.Frame) *Report {
	dets := p.engine.Apply(raw, frame.Offset)
	dets = PromoteLittering(dets)
	return Assemble(dets, Aggregate(dets), frame.Size, frame.ROIApplied)
}
