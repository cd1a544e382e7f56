package logs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is a no-op until Initialize is called, so packages can log
	// unconditionally, tests included.
	Logger = zap.NewNop().Sugar()
	mu     sync.Mutex
)

// Initialize points the logger at <logDir>/debug.log. Output never goes to
// the terminal, which the TUI owns.
func Initialize(logDir, level string) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" {
		return nil
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("error creating log directory: %w", err)
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{filepath.Join(logDir, "debug.log")}
	config.ErrorOutputPaths = []string{filepath.Join(logDir, "debug.log")}

	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	_ = Logger.Sync()
	Logger = logger.Sugar().Named("projector")
	Logger.Infow("logger initialized", "dir", logDir, "level", lvl.String())
	return nil
}

// Close flushes buffered entries.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	_ = Logger.Sync()
	return nil
}
