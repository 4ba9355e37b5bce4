// Package detectors - YOLO object detection over ONNX Runtime.
package detectors

import (
	"github.com/nvr-ai/wastewatch/inference/providers"
	"github.com/nvr-ai/wastewatch/models"
)

const (
	// DefaultInputSize is the square input edge of stock YOLOv8 exports.
	DefaultInputSize = 640
	// DefaultConfidenceThreshold keeps weak proposals so the rule engine sees them.
	DefaultConfidenceThreshold = 0.15
	// DefaultNMSThreshold is the IoU above which overlapping proposals are suppressed.
	DefaultNMSThreshold = 0.45
)

// Config represents the configuration for the YOLO detector.
type Config struct {
	// ModelPath is the path to the ONNX model.
	ModelPath string `json:"model_path"`

	// LibraryPath is the onnxruntime shared library. Empty uses the default location.
	LibraryPath string `json:"library_path"`

	// Provider selects the execution provider.
	Provider providers.Options `json:"provider"`

	// InputSize is the square model input edge length.
	InputSize int `json:"input_size"`

	// ConfidenceThreshold filters detections below this confidence level.
	ConfidenceThreshold float32 `json:"confidence_threshold"`

	// NMSThreshold controls the Non-Maximum Suppression IoU threshold.
	NMSThreshold float32 `json:"nms_threshold"`

	// Labels maps output indices to class names.
	Labels models.LabelSet `json:"-"`
}

// DefaultConfig returns the configuration used for waste monitoring.
//
// Returns:
//   - Config: The default configuration.
func DefaultConfig() Config {
	return Config{
		ModelPath:           "yolov8n.onnx",
		Provider:            providers.Options{Backend: providers.CPU},
		InputSize:           DefaultInputSize,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		NMSThreshold:        DefaultNMSThreshold,
		Labels:              models.YOLOClasses,
	}
}
