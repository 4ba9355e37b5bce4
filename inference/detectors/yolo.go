package detectors

import (
	"context"
	"image"
	"sync"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/nvr-ai/wastewatch/inference"
	"github.com/nvr-ai/wastewatch/inference/providers"
	"github.com/nvr-ai/wastewatch/models/postprocess"
	"github.com/nvr-ai/wastewatch/waste"
)

// YOLODetector runs a YOLOv8 ONNX export and reports raw detections.
type YOLODetector struct {
	cfg      Config
	channels int
	anchors  int

	mu      sync.Mutex
	session *inference.Session
}

var _ waste.Source = (*YOLODetector)(nil)

// NewYOLODetector initializes the runtime and loads the model.
//
// Arguments:
//   - cfg: The detector configuration.
//
// Returns:
//   - *YOLODetector: The detector, ready for Detect.
//   - error: A *ModelLoadError if the runtime or model cannot be loaded.
func NewYOLODetector(cfg Config) (*YOLODetector, error) {
	if cfg.InputSize <= 0 {
		cfg.InputSize = DefaultInputSize
	}
	if cfg.Labels.Len() == 0 {
		return nil, &ModelLoadError{Err: errors.New("no class labels configured")}
	}

	if err := inference.InitEnvironment(cfg.LibraryPath); err != nil {
		return nil, &ModelLoadError{Err: err}
	}

	options, err := providers.NewSessionOptions(cfg.Provider)
	if err != nil {
		return nil, &ModelLoadError{Err: err}
	}
	defer options.Destroy()

	channels := boxChannels + cfg.Labels.Len()
	anchors := AnchorCount(cfg.InputSize)
	session, err := inference.NewSession(inference.SessionConfig{
		ModelPath:   cfg.ModelPath,
		InputName:   "images",
		OutputName:  "output0",
		InputShape:  ort.NewShape(1, 3, int64(cfg.InputSize), int64(cfg.InputSize)),
		OutputShape: ort.NewShape(1, int64(channels), int64(anchors)),
	}, options)
	if err != nil {
		return nil, &ModelLoadError{Err: err}
	}

	return &YOLODetector{
		cfg:      cfg,
		channels: channels,
		anchors:  anchors,
		session:  session,
	}, nil
}

// Detect runs inference on img.
//
// Arguments:
//   - ctx: Checked before inference starts.
//   - img: The image to detect objects in.
//
// Returns:
//   - []waste.RawDetection: The detections in img pixels, highest score first.
//   - error: An error if the detector is closed or inference fails.
func (d *YOLODetector) Detect(ctx context.Context, img image.Image) ([]waste.RawDetection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	output, err := d.run(img)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	candidates, err := DecodeOutput(output, d.channels, d.anchors, d.cfg.InputSize,
		image.Pt(b.Dx(), b.Dy()), d.cfg.ConfidenceThreshold)
	if err != nil {
		return nil, err
	}
	candidates = postprocess.ApplyGreedyNMS(candidates, postprocess.NMSConfig{
		IoUThreshold: d.cfg.NMSThreshold,
		ClassAware:   true,
	})

	return ToRawDetections(candidates, d.cfg.Labels), nil
}

// run fills the input tensor, executes the session and copies the output out.
func (d *YOLODetector) run(img image.Image) ([]float32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.session == nil {
		return nil, errors.New("detector is closed")
	}
	if err := inference.PrepareInput(img, d.session.Input.GetData(), d.cfg.InputSize); err != nil {
		return nil, errors.Wrap(err, "failed to prepare input")
	}
	if err := d.session.Run(); err != nil {
		return nil, err
	}
	return append([]float32(nil), d.session.Output.GetData()...), nil
}

// Close releases the session.
func (d *YOLODetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.session == nil {
		return nil
	}
	err := d.session.Close()
	d.session = nil
	return err
}
