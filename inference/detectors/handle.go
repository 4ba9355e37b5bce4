package detectors

import (
	"context"
	"image"
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/nvr-ai/wastewatch/waste"
)

// ModelLoadError reports a detector that could not be constructed. It is not recoverable.
type ModelLoadError struct {
	Err error
}

func (e *ModelLoadError) Error() string {
	return "model load failed: " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ModelLoadError) Unwrap() error {
	return e.Err
}

// IsModelLoad reports whether err is, or wraps, a ModelLoadError.
func IsModelLoad(err error) bool {
	var target *ModelLoadError
	return errors.As(err, &target)
}

// Detector is a closable detection source.
type Detector interface {
	waste.Source
	io.Closer
}

// Handle constructs a Detector on first use and shares it afterwards.
type Handle struct {
	open func() (Detector, error)

	once     sync.Once
	detector Detector
	err      error
}

var _ waste.Source = (*Handle)(nil)

// NewHandle creates a handle that calls open at most once.
func NewHandle(open func() (Detector, error)) *Handle {
	return &Handle{open: open}
}

// NewYOLOHandle creates a handle for a YOLODetector built from cfg.
func NewYOLOHandle(cfg Config) *Handle {
	return NewHandle(func() (Detector, error) {
		return NewYOLODetector(cfg)
	})
}

// Get returns the detector, constructing it on the first call. A construction failure is
// remembered and returned by every later call.
func (h *Handle) Get() (Detector, error) {
	h.once.Do(func() {
		h.detector, h.err = h.open()
		if h.err == nil {
			return
		}
		h.detector = nil
		if !IsModelLoad(h.err) {
			h.err = &ModelLoadError{Err: h.err}
		}
	})
	return h.detector, h.err
}

// Detect forwards to the shared detector.
func (h *Handle) Detect(ctx context.Context, img image.Image) ([]waste.RawDetection, error) {
	d, err := h.Get()
	if err != nil {
		return nil, err
	}
	return d.Detect(ctx, img)
}

// Close releases the detector if it was constructed. The handle cannot be used afterwards.
func (h *Handle) Close() error {
	h.once.Do(func() {
		h.err = errors.New("detector handle closed")
	})
	if h.detector == nil {
		return nil
	}
	return h.detector.Close()
}
