// Package inference - ONNX Runtime environment and sessions.
package inference

import (
	"os"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
)

var (
	envOnce sync.Once
	envErr  error
)

// DefaultLibraryPath returns the conventional location of the onnxruntime shared library.
func DefaultLibraryPath() string {
	switch runtime.GOOS {
	case "windows":
		return "./third_party/onnxruntime.dll"
	case "darwin":
		return "./third_party/libonnxruntime.dylib"
	default:
		if runtime.GOARCH == "arm64" {
			return "./third_party/onnxruntime_arm64.so"
		}
		return "./third_party/onnxruntime.so"
	}
}

// InitEnvironment loads the onnxruntime library and initializes the global environment.
// Only the first call does any work; later calls return its result.
//
// Arguments:
//   - libPath: Path to the onnxruntime shared library. Empty selects DefaultLibraryPath.
//
// Returns:
//   - error: An error if the library is missing or the environment fails to initialize.
func InitEnvironment(libPath string) error {
	envOnce.Do(func() {
		if ort.IsInitialized() {
			return
		}
		if libPath == "" {
			libPath = DefaultLibraryPath()
		}
		if _, err := os.Stat(libPath); err != nil {
			envErr = errors.Wrapf(err, "onnxruntime library not found at %s", libPath)
			return
		}
		ort.SetSharedLibraryPath(libPath)
		if err := ort.InitializeEnvironment(); err != nil {
			envErr = errors.Wrap(err, "error initializing ORT environment")
		}
	})
	return envErr
}

// DestroyEnvironment tears down the global environment if it was initialized.
func DestroyEnvironment() error {
	if !ort.IsInitialized() {
		return nil
	}
	return errors.Wrap(ort.DestroyEnvironment(), "error destroying ORT environment")
}
