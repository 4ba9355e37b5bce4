package inference

import (
	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
	"go.uber.org/multierr"
)

// Session represents a single-input, single-output model session from the onnxruntime.
type Session struct {
	Session *ort.AdvancedSession
	Input   *ort.Tensor[float32]
	Output  *ort.Tensor[float32]
}

// SessionConfig describes the tensors of a model.
type SessionConfig struct {
	ModelPath   string
	InputName   string
	OutputName  string
	InputShape  ort.Shape
	OutputShape ort.Shape
}

// NewSession allocates the input and output tensors and opens the model.
//
// Arguments:
//   - cfg: The model path and tensor layout.
//   - options: Session options. The caller keeps ownership.
//
// Returns:
//   - *Session: The session.
//   - error: An error if a tensor or the session cannot be created.
func NewSession(cfg SessionConfig, options *ort.SessionOptions) (*Session, error) {
	input, err := ort.NewEmptyTensor[float32](cfg.InputShape)
	if err != nil {
		return nil, errors.Wrap(err, "error creating input tensor")
	}

	output, err := ort.NewEmptyTensor[float32](cfg.OutputShape)
	if err != nil {
		return nil, multierr.Append(errors.Wrap(err, "error creating output tensor"), input.Destroy())
	}

	session, err := ort.NewAdvancedSession(
		cfg.ModelPath,
		[]string{cfg.InputName},
		[]string{cfg.OutputName},
		[]ort.Value{input},
		[]ort.Value{output},
		options,
	)
	if err != nil {
		return nil, multierr.Combine(
			errors.Wrapf(err, "error creating ORT session for %s", cfg.ModelPath),
			input.Destroy(),
			output.Destroy(),
		)
	}

	return &Session{Session: session, Input: input, Output: output}, nil
}

// Run executes the model on the current input tensor contents.
func (s *Session) Run() error {
	if s.Session == nil {
		return errors.New("session is closed")
	}
	return errors.Wrap(s.Session.Run(), "error running ORT session")
}

// Close releases the resources associated with the Session.
//
// Returns:
//   - error: The combined errors from destroying the session and its tensors.
func (s *Session) Close() error {
	var err error
	if s.Session != nil {
		err = multierr.Append(err, s.Session.Destroy())
		s.Session = nil
	}
	if s.Input != nil {
		err = multierr.Append(err, s.Input.Destroy())
		s.Input = nil
	}
	if s.Output != nil {
		err = multierr.Append(err, s.Output.Destroy())
		s.Output = nil
	}
	return err
}
