package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogOpts struct {
	Verbose  bool
	Encoding string
}

func (opts LogOpts) Encoder() zapcore.Encoder {
	switch opts.Encoding {
	case "json":
		if opts.Verbose {
			return zapcore.NewJSONEncoder(zap.NewDevelopmentEncoderConfig())
		}
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case "console", "":
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		return zapcore.NewConsoleEncoder(cfg)
	default:
		panic(fmt.Errorf("unknown encoding %q", opts.Encoding))
	}
}

// Level returns the minimum enabled level. LOG_LEVEL takes precedence over Verbose.
func (opts LogOpts) Level() zapcore.Level {
	if levelEnv, ok := os.LookupEnv("LOG_LEVEL"); ok {
		lvl, err := zapcore.ParseLevel(strings.TrimSpace(levelEnv))
		if err == nil {
			return lvl
		}
	}
	if opts.Verbose {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

// NewLogger writes to stderr: `cdk synth` reads the template from stdout.
func (opts LogOpts) NewLogger() *zap.Logger {
	core := zapcore.NewCore(opts.Encoder(), zapcore.Lock(os.Stderr), opts.Level())
	return zap.New(core)
}

// Setup builds the logger and installs it as the global zap logger. The returned
// func flushes and restores the previous globals.
func (opts LogOpts) Setup() (*zap.Logger, func()) {
	logger := opts.NewLogger()
	restore := zap.ReplaceGlobals(logger)
	return logger, func() {
		_ = logger.Sync()
		restore()
	}
}
