package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nvr-ai/wastewatch/config"
	"github.com/nvr-ai/wastewatch/images"
	"github.com/nvr-ai/wastewatch/inference"
	"github.com/nvr-ai/wastewatch/inference/detectors"
	"github.com/nvr-ai/wastewatch/inference/remote"
	"github.com/nvr-ai/wastewatch/logging"
	"github.com/nvr-ai/wastewatch/util"
	"github.com/nvr-ai/wastewatch/waste"
)

const (
	flagImageFile   = "image-file"
	flagAnnotate    = "annotate"
	flagWorkers     = "workers"
	flagROI         = "roi"
	flagAnnotateDir = "annotate-dir"
)

// exitFailure ends the process with status 1 after the failure line was written.
var exitFailure = cli.Exit("", 1)

// sourceFactory builds the detection source. Tests replace it.
var sourceFactory = newSource

func newSource(cfg config.Config, logger *zap.SugaredLogger) (detectors.Detector, error) {
	if cfg.DetectorURL != "" {
		client := remote.NewClient(cfg.DetectorURL, remote.WithTimeout(cfg.Timeout))
		if err := client.CheckHealth(context.Background()); err != nil {
			return nil, &detectors.ModelLoadError{Err: err}
		}
		logger.Infow("using remote detector", "url", cfg.DetectorURL)
		return client, nil
	}
	dcfg, err := cfg.Detector()
	if err != nil {
		return nil, &detectors.ModelLoadError{Err: err}
	}
	handle := detectors.NewYOLOHandle(dcfg)
	if _, err := handle.Get(); err != nil {
		return nil, err
	}
	logger.Infow("model loaded", "model", dcfg.ModelPath, "backend", dcfg.Provider.Backend, "classes", dcfg.Labels.Len())
	return handle, nil
}

// session is the per-invocation state shared by both actions.
type session struct {
	cfg      config.Config
	logger   *zap.SugaredLogger
	source   detectors.Detector
	pipeline *waste.Pipeline
}

func setup(c *cli.Context) (*session, error) {
	cfg, err := config.FromCLI(c)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	src, err := sourceFactory(cfg, logger)
	if err != nil {
		logger.Errorw("detector unavailable", "error", err)
		logging.Sync(logger)
		return nil, err
	}
	return &session{
		cfg:      cfg,
		logger:   logger,
		source:   src,
		pipeline: waste.NewPipeline(src, waste.WithLogger(logger)),
	}, nil
}

func (s *session) close() {
	if err := s.source.Close(); err != nil {
		s.logger.Warnw("failed to release detector", "error", err)
	}
	if err := inference.DestroyEnvironment(); err != nil {
		s.logger.Warnw("failed to release onnxruntime", "error", err)
	}
	logging.Sync(s.logger)
}

func (s *session) process(ctx context.Context, frame *images.Frame) (*waste.Report, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	return s.pipeline.Process(ctx, frame)
}

func detectAction(c *cli.Context) error {
	out := c.App.Writer

	payload, roi := c.Args().Get(0), c.Args().Get(1)
	if path := c.String(flagImageFile); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fail(out, errors.Wrap(err, "failed to read image file"))
		}
		payload, roi = base64.StdEncoding.EncodeToString(data), c.Args().Get(0)
	}
	if payload == "" {
		return fail(out, errors.New(usage))
	}

	s, err := setup(c)
	if err != nil {
		return fail(out, err)
	}
	defer s.close()

	frame, err := images.LoadFrame(payload, roi, s.logger)
	if err != nil {
		return fail(out, err)
	}
	report, err := s.process(c.Context, frame)
	if err != nil {
		s.logger.Errorw("detection failed", "error", err)
		return fail(out, err)
	}

	if path := c.String(flagAnnotate); path != "" {
		if err := writeAnnotated(path, frame, report); err != nil {
			s.logger.Warnw("failed to write annotated image", "path", path, "error", err)
		}
	}
	return emit(out, report)
}

type batchReport struct {
	File string `json:"file"`
	*waste.Report
}

type batchFailure struct {
	File string `json:"file"`
	*waste.Failure
}

func batchAction(c *cli.Context) error {
	out := c.App.Writer

	dir := c.Args().First()
	if dir == "" {
		return fail(out, errors.New("Usage: wastewatch batch <dir>"))
	}
	files, err := util.LoadDirectoryImageFiles(dir)
	if err != nil {
		return fail(out, err)
	}

	s, err := setup(c)
	if err != nil {
		return fail(out, err)
	}
	defer s.close()

	annotateDir := c.String(flagAnnotateDir)
	if annotateDir != "" {
		if err := os.MkdirAll(annotateDir, 0o755); err != nil {
			return fail(out, errors.Wrap(err, "failed to create annotation directory"))
		}
	}

	lines := make([]any, len(files))
	g, ctx := errgroup.WithContext(c.Context)
	g.SetLimit(max(1, c.Int(flagWorkers)))
	for i, f := range files {
		g.Go(func() error {
			frame, report, err := s.processFile(ctx, f, c.String(flagROI))
			if err != nil {
				s.logger.Warnw("image failed", "file", f.Path, "error", err)
				lines[i] = batchFailure{File: f.Name(), Failure: waste.NewFailure(err)}
				return nil
			}
			lines[i] = batchReport{File: f.Name(), Report: report}
			if annotateDir != "" {
				path := annotatedName(annotateDir, f.Path)
				if err := writeAnnotated(path, frame, report); err != nil {
					s.logger.Warnw("failed to write annotated image", "path", path, "error", err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fail(out, err)
	}

	failed := false
	enc := json.NewEncoder(out)
	for _, line := range lines {
		if _, ok := line.(batchFailure); ok {
			failed = true
		}
		if err := enc.Encode(line); err != nil {
			return errors.Wrap(err, "failed to write result")
		}
	}
	if failed {
		return exitFailure
	}
	return nil
}

func (s *session) processFile(ctx context.Context, f util.ImageFile, roi string) (*images.Frame, *waste.Report, error) {
	img, err := images.DecodeBytes(f.Data)
	if err != nil {
		return nil, nil, err
	}
	frame := images.ApplyROI(images.NewFrame(img), roi, s.logger)
	report, err := s.process(ctx, frame)
	if err != nil {
		return nil, nil, err
	}
	return frame, report, nil
}

func annotatedName(dir, path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(dir, base+".annotated.jpg")
}

func annotations(report *waste.Report) []images.Annotation {
	return lo.Map(report.Detections, func(d waste.Detection, _ int) images.Annotation {
		return images.NewAnnotation(d.Box.Rectangle(), d.Class.String(), d.Confidence, d.Class.Color())
	})
}

func writeAnnotated(path string, frame *images.Frame, report *waste.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create annotated image")
	}
	if err := images.AnnotateTo(f, frame.Source, annotations(report)); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "failed to write annotated image")
}

func emit(w io.Writer, v any) error {
	return errors.Wrap(json.NewEncoder(w).Encode(v), "failed to write result")
}

func fail(w io.Writer, err error) error {
	if werr := emit(w, waste.NewFailure(err)); werr != nil {
		return werr
	}
	return exitFailure
}
