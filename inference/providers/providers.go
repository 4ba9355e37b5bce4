// Package providers - Execution provider selection for ONNX Runtime sessions.
package providers

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
)

// Backend names an execution provider.
type Backend string

const (
	// CPU runs on the default CPU provider.
	CPU Backend = "cpu"
	// CoreML uses Apple CoreML.
	CoreML Backend = "coreml"
	// OpenVINO uses Intel OpenVINO.
	OpenVINO Backend = "openvino"
	// CUDA uses NVIDIA CUDA.
	CUDA Backend = "cuda"
)

// Backends lists every supported backend.
var Backends = []Backend{CPU, CoreML, OpenVINO, CUDA}

// ParseBackend parses a backend name, case-insensitively.
func ParseBackend(name string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(name)))
	if b == "" {
		return CPU, nil
	}
	for _, known := range Backends {
		if b == known {
			return b, nil
		}
	}
	return "", errors.Errorf("unknown execution provider %q", name)
}

// Options tunes session creation.
type Options struct {
	Backend Backend
	// Threads is the intra-op thread count. 0 uses the runtime default.
	Threads int
	// DeviceID selects the accelerator for CUDA.
	DeviceID int
}

// NewSessionOptions creates session options with the requested execution provider appended.
// The caller must Destroy the result.
//
// Arguments:
//   - opts: The backend and threading configuration.
//
// Returns:
//   - *ort.SessionOptions: The session options.
//   - error: An error if the provider is unavailable in the loaded runtime.
func NewSessionOptions(opts Options) (*ort.SessionOptions, error) {
	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, errors.Wrap(err, "error creating ORT session options")
	}

	if err := configure(options, opts); err != nil {
		options.Destroy()
		return nil, err
	}
	return options, nil
}

func configure(options *ort.SessionOptions, opts Options) error {
	if opts.Threads > 0 {
		if err := options.SetIntraOpNumThreads(opts.Threads); err != nil {
			return errors.Wrap(err, "error setting intra-op threads")
		}
	}
	if err := options.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableExtended); err != nil {
		return errors.Wrap(err, "error setting graph optimization level")
	}

	switch opts.Backend {
	case CPU, "":
		return nil
	case CoreML:
		return errors.Wrap(options.AppendExecutionProviderCoreML(0), "error enabling CoreML")
	case OpenVINO:
		threads := opts.Threads
		if threads <= 0 {
			threads = 4
		}
		return errors.Wrap(options.AppendExecutionProviderOpenVINO(map[string]string{
			"device_type":    "CPU",
			"precision":      "FP32",
			"num_of_threads": strconv.Itoa(threads),
		}), "error enabling OpenVINO")
	case CUDA:
		cuda, err := ort.NewCUDAProviderOptions()
		if err != nil {
			return errors.Wrap(err, "error creating CUDA provider options")
		}
		defer cuda.Destroy()
		if err := cuda.Update(map[string]string{
			"device_id": strconv.Itoa(opts.DeviceID),
		}); err != nil {
			return errors.Wrap(err, "error configuring CUDA")
		}
		return errors.Wrap(options.AppendExecutionProviderCUDA(cuda), "error enabling CUDA")
	default:
		return errors.Errorf("unknown execution provider %q", opts.Backend)
	}
}
