package marker

import (
	"context"
	"fmt"
	"io"
	"os"
	"skipmark/internal/config"
	"skipmark/internal/refset"
	"skipmark/pkg/domain"
	"skipmark/pkg/logger"
	"skipmark/pkg/serrors"
	"skipmark/pkg/storage"
	"time"

	"go.uber.org/zap"
)

// Options configure how lines are marked and where streamed output goes.
type Options struct {
	// Token is the marker prefixed to referenced lines.
	Token string
	// Stream receives the marked text in stream mode. Defaults to os.Stdout.
	Stream io.Writer
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Token:  cfg.Marker,
		Stream: os.Stdout,
	}
}

// marker is the concrete implementation of the Marker interface.
type marker struct {
	pattern *Pattern
	stream  io.Writer
	storage storage.Storage
}

// MarkFile loads the reference list, marks the source in memory and only then
// writes the full result to the requested destination.
func (m marker) MarkFile(ctx context.Context, req Request) (*domain.Report, error) {
	start := time.Now()
	ctx = logger.WithFields(ctx, zap.String("source", req.Source))

	set, err := refset.Load(ctx, m.storage, req.Reference)
	if err != nil {
		return nil, fmt.Errorf("could not load references: %w", err)
	}
	if logger.IsDebug(ctx) {
		logger.Debug(ctx, "loaded reference set",
			zap.String("reference", req.Reference),
			zap.Strings("keys", set.Keys()))
	}

	src, err := m.storage.ReadFile(ctx, req.Source)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrFileAccess, err, "could not read source file")
	}

	out, report := m.pattern.Transform(src, set)
	report.Source = req.Source
	report.ReferenceKeys = set.Len()

	if !req.Check {
		if err := m.write(ctx, req, out); err != nil {
			return nil, err
		}
		report.Destination = req.Destination
	}
	report.Duration = time.Since(start)

	logger.Info(ctx, "marked source",
		zap.String("marker", m.pattern.Token()),
		zap.Stringer("destination", report.Destination),
		zap.Bool("check", req.Check),
		zap.Int("lines", report.Lines),
		zap.Int("marked", report.Marked),
		zap.Int("already_marked", report.AlreadyMarked),
		zap.Duration("duration", report.Duration))

	return &report, nil
}

func (m marker) write(ctx context.Context, req Request, out []byte) error {
	switch req.Destination.Mode {
	case domain.OutputInPlace:
		if err := m.storage.WriteFile(ctx, req.Source, out); err != nil {
			return serrors.Wrap(serrors.ErrFileAccess, err, "could not overwrite source file")
		}
	case domain.OutputPath:
		if err := m.storage.WriteFile(ctx, req.Destination.Path, out); err != nil {
			return serrors.Wrap(serrors.ErrFileAccess, err, "could not write output file")
		}
	case domain.OutputStream, "":
		if _, err := m.stream.Write(out); err != nil {
			return serrors.Wrap(serrors.ErrFileAccess, err, "could not write output stream")
		}
	default:
		return serrors.With(serrors.ErrBadRequest, "unknown output mode %q", req.Destination.Mode)
	}

	return nil
}

// New creates a Marker that reads and writes through storage.
func New(storage storage.Storage, options Options) (Marker, error) {
	pattern, err := NewPattern(options.Token)
	if err != nil {
		return nil, err
	}
	stream := options.Stream
	if stream == nil {
		stream = os.Stdout
	}

	return &marker{
		pattern: pattern,
		stream:  stream,
		storage: storage,
	}, nil
}
