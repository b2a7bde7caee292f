// Package logging builds the zap loggers used by the CLI, TUI and server.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugLogPath is the fixed path for debug logs.
const DebugLogPath = "fleetdesk-debug.log"

// NewServer returns a console logger with coloured levels writing to stdout.
func NewServer() *zap.SugaredLogger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(os.Stdout),
		zapcore.InfoLevel,
	)
	return zap.New(core).Sugar()
}

// NewCLI returns a nop logger unless debug is set, in which case JSON entries
// go to path (DebugLogPath when empty). The returned close func flushes and
// closes the file.
func NewCLI(debug bool, path string) (*zap.SugaredLogger, func(), error) {
	if !debug {
		return zap.NewNop().Sugar(), func() {}, nil
	}
	if path == "" {
		path = DebugLogPath
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating debug log: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(f), zapcore.DebugLevel)
	logger := zap.New(core).Sugar()
	logger.Debugw("debug log started", "log_file", path)

	closeFn := func() {
		_ = logger.Sync()
		_ = f.Close()
	}
	return logger, closeFn, nil
}
