package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bft-labs/adhosts/internal/domain"
	"github.com/bft-labs/adhosts/internal/metrics"
	"github.com/bft-labs/adhosts/internal/ports"
	"github.com/bft-labs/adhosts/pkg/log"
)

// RunConfig holds the per-run inputs of App.Run.
type RunConfig struct {
	Sources     []string
	Output      string
	MetricsFile string
}

// Summary is the outcome of a run.
type Summary struct {
	// Written reports whether the artifact was replaced.
	Written bool
	// NoData reports that the run produced no entries and the write was skipped.
	NoData bool
	Result domain.RunResult
}

// App runs the pipeline and persists its result.
type App struct {
	pipeline *Pipeline
	writer   ports.ArtifactWriter
	recorder *metrics.Recorder
	logger   log.Logger
	now      func() time.Time
}

// New creates an App. recorder may be nil when metrics are not exported.
func New(pipeline *Pipeline, writer ports.ArtifactWriter, recorder *metrics.Recorder, logger log.Logger) *App {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &App{
		pipeline: pipeline,
		writer:   writer,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Run performs one complete build. A no-data run is not an error: the
// artifact is left untouched and Summary.NoData is set. The returned error
// is non-nil only when writing the artifact failed.
func (a *App) Run(ctx context.Context, cfg RunConfig) (Summary, error) {
	start := a.now()

	result, err := a.pipeline.Aggregate(ctx, cfg.Sources)
	summary := Summary{Result: result}

	var runErr error
	switch {
	case errors.Is(err, domain.ErrNoData):
		summary.NoData = true
		a.logger.Warn("no data to write, keeping existing artifact",
			log.String("output", cfg.Output),
			log.Int("failed_sources", result.Failed()),
		)
	case err != nil:
		runErr = err
	default:
		if werr := a.writer.Write(result, cfg.Output); werr != nil {
			runErr = fmt.Errorf("write artifact: %w", werr)
			a.logger.Error("write failed", log.String("output", cfg.Output), log.Err(werr))
		} else {
			summary.Written = true
			a.logger.Info("artifact written",
				log.String("output", cfg.Output),
				log.Int("entries", result.UniqueConverted),
			)
		}
	}

	a.exportMetrics(cfg.MetricsFile, summary, a.now().Sub(start))
	return summary, runErr
}

func (a *App) exportMetrics(path string, s Summary, took time.Duration) {
	if a.recorder == nil {
		return
	}
	a.recorder.Observe(s.Result, s.Written, a.now(), took)
	if path == "" {
		return
	}
	if err := a.recorder.WriteTextfile(path); err != nil {
		a.logger.Warn("metrics export failed", log.String("path", path), log.Err(err))
	}
}
