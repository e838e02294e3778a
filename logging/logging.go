package logging

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures the process logger
type Options struct {
	// Verbosity is the number of -v flags: 0 warn, 1 info, 2 or more debug
	Verbosity int
	// Quiet limits console output to errors and wins over Verbosity
	Quiet bool
	// LogFile, when set, receives every entry at debug level as JSON
	LogFile string
	// Console defaults to stderr; stdout carries results
	Console zapcore.WriteSyncer
}

// LevelFor maps the command-line verbosity to a console level
func LevelFor(verbosity int, quiet bool) zapcore.Level {
	switch {
	case quiet:
		return zapcore.ErrorLevel
	case verbosity <= 0:
		return zapcore.WarnLevel
	case verbosity == 1:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// New builds the logger. The returned cleanup flushes buffers and closes the log file.
func New(opts Options) (*zap.Logger, func(), error) {
	console := opts.Console
	if console == nil {
		console = zapcore.Lock(os.Stderr)
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	consoleCfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), console, LevelFor(opts.Verbosity, opts.Quiet)),
	}

	var logFile *os.File
	if opts.LogFile != "" {
		var err error
		logFile, err = os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(logFile), zapcore.DebugLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...)).Named("imagefilter")
	cleanup := func() {
		_ = logger.Sync()
		if logFile != nil {
			logFile.Close()
		}
	}
	return logger, cleanup, nil
}
