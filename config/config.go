// Package config - Command-line, environment and .env configuration.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/nvr-ai/wastewatch/inference/detectors"
	"github.com/nvr-ai/wastewatch/inference/providers"
	"github.com/nvr-ai/wastewatch/models"
)

// Flag names.
const (
	FlagModel       = "model"
	FlagLibrary     = "ort-lib"
	FlagBackend     = "backend"
	FlagConfidence  = "confidence"
	FlagNMS         = "nms"
	FlagInputSize   = "input-size"
	FlagThreads     = "threads"
	FlagLabels      = "labels"
	FlagDetectorURL = "detector-url"
	FlagTimeout     = "timeout"
	FlagLogLevel    = "log-level"
)

// Config holds the runtime settings.
type Config struct {
	ModelPath           string
	LibraryPath         string
	Backend             providers.Backend
	ConfidenceThreshold float64
	NMSThreshold        float64
	InputSize           int
	Threads             int
	// LabelsPath is an optional class-name file for custom models.
	LabelsPath string
	// DetectorURL selects a remote inference service instead of the local model.
	DetectorURL string
	// Timeout bounds one image.
	Timeout  time.Duration
	LogLevel string
}

// Default returns the defaults used when nothing is configured.
func Default() Config {
	d := detectors.DefaultConfig()
	return Config{
		ModelPath:           d.ModelPath,
		Backend:             d.Provider.Backend,
		ConfidenceThreshold: detectors.DefaultConfidenceThreshold,
		NMSThreshold:        detectors.DefaultNMSThreshold,
		InputSize:           d.InputSize,
		Timeout:             60 * time.Second,
		LogLevel:            "info",
	}
}

// Flags returns the global flags, each bound to a WASTEWATCH_ environment variable.
func Flags() []cli.Flag {
	d := Default()
	return []cli.Flag{
		&cli.StringFlag{Name: FlagModel, Value: d.ModelPath, Usage: "path to the YOLO ONNX model", EnvVars: []string{"WASTEWATCH_MODEL"}},
		&cli.StringFlag{Name: FlagLibrary, Usage: "path to the onnxruntime shared library", EnvVars: []string{"WASTEWATCH_ORT_LIB", "ONNXRUNTIME_LIB"}},
		&cli.StringFlag{Name: FlagBackend, Value: string(d.Backend), Usage: "execution provider: cpu, coreml, openvino or cuda", EnvVars: []string{"WASTEWATCH_BACKEND"}},
		&cli.Float64Flag{Name: FlagConfidence, Value: d.ConfidenceThreshold, Usage: "detector confidence threshold", EnvVars: []string{"WASTEWATCH_CONFIDENCE"}},
		&cli.Float64Flag{Name: FlagNMS, Value: d.NMSThreshold, Usage: "non-maximum suppression IoU threshold", EnvVars: []string{"WASTEWATCH_NMS"}},
		&cli.IntFlag{Name: FlagInputSize, Value: d.InputSize, Usage: "square model input size", EnvVars: []string{"WASTEWATCH_INPUT_SIZE"}},
		&cli.IntFlag{Name: FlagThreads, Usage: "intra-op threads, 0 for the runtime default", EnvVars: []string{"WASTEWATCH_THREADS"}},
		&cli.StringFlag{Name: FlagLabels, Usage: "class label file, one name per line", EnvVars: []string{"WASTEWATCH_LABELS"}},
		&cli.StringFlag{Name: FlagDetectorURL, Usage: "remote inference service URL; skips the local model", EnvVars: []string{"WASTEWATCH_DETECTOR_URL"}},
		&cli.DurationFlag{Name: FlagTimeout, Value: d.Timeout, Usage: "per-image time limit", EnvVars: []string{"WASTEWATCH_TIMEOUT"}},
		&cli.StringFlag{Name: FlagLogLevel, Value: d.LogLevel, Usage: "log level", EnvVars: []string{"WASTEWATCH_LOG_LEVEL"}},
	}
}

// FromCLI reads the flag values and validates them.
func FromCLI(c *cli.Context) (Config, error) {
	backend, err := providers.ParseBackend(c.String(FlagBackend))
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		ModelPath:           c.String(FlagModel),
		LibraryPath:         c.String(FlagLibrary),
		Backend:             backend,
		ConfidenceThreshold: c.Float64(FlagConfidence),
		NMSThreshold:        c.Float64(FlagNMS),
		InputSize:           c.Int(FlagInputSize),
		Threads:             c.Int(FlagThreads),
		LabelsPath:          c.String(FlagLabels),
		DetectorURL:         c.String(FlagDetectorURL),
		Timeout:             c.Duration(FlagTimeout),
		LogLevel:            c.String(FlagLogLevel),
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return errors.Errorf("confidence must be in [0,1], got %v", c.ConfidenceThreshold)
	}
	if c.NMSThreshold < 0 || c.NMSThreshold > 1 {
		return errors.Errorf("nms must be in [0,1], got %v", c.NMSThreshold)
	}
	if c.InputSize <= 0 || c.InputSize%32 != 0 {
		return errors.Errorf("input size must be a positive multiple of 32, got %d", c.InputSize)
	}
	if c.Threads < 0 {
		return errors.Errorf("threads must not be negative, got %d", c.Threads)
	}
	if c.Timeout < 0 {
		return errors.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.DetectorURL == "" && c.ModelPath == "" {
		return errors.New("either a model path or a detector url is required")
	}
	return nil
}

// Detector projects the configuration onto the YOLO detector settings.
func (c Config) Detector() (detectors.Config, error) {
	labels := models.YOLOClasses
	if c.LabelsPath != "" {
		var err error
		if labels, err = models.LoadLabelFile(c.LabelsPath); err != nil {
			return detectors.Config{}, err
		}
	}
	return detectors.Config{
		ModelPath:           c.ModelPath,
		LibraryPath:         c.LibraryPath,
		Provider:            providers.Options{Backend: c.Backend, Threads: c.Threads},
		InputSize:           c.InputSize,
		ConfidenceThreshold: float32(c.ConfidenceThreshold),
		NMSThreshold:        float32(c.NMSThreshold),
		Labels:              labels,
	}, nil
}

// LoadDotEnv loads environment files, .env by default. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return errors.Wrapf(err, "failed to load %s", p)
		}
	}
	return nil
}
