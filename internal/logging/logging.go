// Package logging builds the zap logger used by the CLI and the TUI.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Levels accepted in the [logging] config section.
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// File modes accepted in the [logging] config section.
const (
	ModeAppend    = "append"
	ModeOverwrite = "overwrite"
)

// Name is the logger name.
const Name = "datepick"

// Options configures New.
type Options struct {
	// Level is none, normal or debug. It applies to the console and to the
	// destination file.
	Level string
	// Destination is an optional log file.
	Destination string
	// Mode is append or overwrite. Empty means append.
	Mode string
	// Stdout receives Info and Warn, Stderr receives Error and above.
	// Nil means os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// ValidLevel reports whether s is a known level.
func ValidLevel(s string) bool {
	return s == LevelNone || s == LevelNormal || s == LevelDebug
}

// ValidMode reports whether s is a known file mode. Empty is valid.
func ValidMode(s string) bool {
	return s == "" || s == ModeAppend || s == ModeOverwrite
}

// New returns a logger and a function releasing the destination file.
// Level none disables every core.
func New(opts Options) (*zap.Logger, func() error, error) {
	noop := func() error { return nil }
	if !ValidLevel(opts.Level) && opts.Level != "" {
		return nil, noop, fmt.Errorf("invalid log level %q (use none, normal or debug)", opts.Level)
	}
	if !ValidMode(opts.Mode) {
		return nil, noop, fmt.Errorf("invalid log mode %q (use append or overwrite)", opts.Mode)
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	var floor zapcore.Level
	switch opts.Level {
	case LevelNormal:
		floor = zapcore.InfoLevel
	case LevelDebug:
		floor = zapcore.DebugLevel
	default:
		return zap.NewNop(), noop, nil
	}

	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return floor <= lvl && lvl < zapcore.ErrorLevel
	})
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder(opts.Stdout), zapcore.Lock(zapcore.AddSync(opts.Stdout)), lowPriority),
		zapcore.NewCore(consoleEncoder(opts.Stderr), zapcore.Lock(zapcore.AddSync(opts.Stderr)), highPriority),
	}

	closer := noop
	if opts.Destination != "" {
		flags := os.O_CREATE | os.O_WRONLY
		if opts.Mode == ModeOverwrite {
			flags |= os.O_TRUNC
		} else {
			flags |= os.O_APPEND
		}
		f, err := os.OpenFile(opts.Destination, flags, 0644)
		if err != nil {
			return nil, noop, fmt.Errorf("unable to access file log destination (%s): %w", opts.Destination, err)
		}
		fileEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.Lock(f), zap.NewAtomicLevelAt(floor)))
		closer = f.Close
	}

	return zap.New(zapcore.NewTee(cores...)).Named(Name), closer, nil
}

// consoleEncoder colors levels on terminals and drops timestamps there.
func consoleEncoder(w io.Writer) zapcore.Encoder {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewConsoleEncoder(ec)
}
