// Package audit writes one structured JSON line per prediction.
package audit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
	"github.com/idlab-discover/EconCluster-cli/internal/predictor"
)

// Logger records prediction outcomes. The zero value and a nil *Logger are
// no-ops.
type Logger struct {
	z *zap.Logger
}

// Open appends JSON lines to path, creating parent directories as needed.
// An empty path returns a no-op logger.
func Open(path string) (*Logger, error) {
	if path == "" {
		return &Logger{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("audit log: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Sampling = nil
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("audit log: %w", err)
	}
	return &Logger{z: z.Named("predict")}, nil
}

// New wraps an existing zap logger.
func New(z *zap.Logger) *Logger { return &Logger{z: z} }

// Record logs a successful prediction.
func (l *Logger) Record(res *predictor.Result) {
	if l == nil || l.z == nil || res == nil {
		return
	}
	l.z.Info("prediction",
		zap.String("request_id", res.RequestID),
		zap.Int("cluster_id", res.ClusterID),
		zap.String("label", res.Label),
		zap.Strings("features", res.Features),
		zap.Float64s("raw_vector", res.RawVector),
		zap.Float64s("standardized_vector", res.StandardizedVector),
		zap.Strings("defaulted", res.Defaulted),
	)
}

// RecordFailure logs a rejected prediction with the stage that failed.
func (l *Logger) RecordFailure(err error) {
	if l == nil || l.z == nil || err == nil {
		return
	}
	l.z.Warn("prediction failed",
		zap.String("request_id", apperr.RequestID(err)),
		zap.String("stage", apperr.FailedStage(err)),
		zap.Bool("request_error", apperr.IsRequest(err)),
		zap.Error(err),
	)
}

// Close flushes buffered entries and reports a failed flush. Sync on a
// terminal or pipe is not an error.
func (l *Logger) Close() error {
	if l == nil || l.z == nil {
		return nil
	}
	if err := l.z.Sync(); err != nil && !unsyncable(err) {
		return fmt.Errorf("audit log: %w", err)
	}
	return nil
}

func unsyncable(err error) bool {
	return errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) || errors.Is(err, os.ErrInvalid)
}
