package service

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/xolan/datepick/internal/config"
	"github.com/xolan/datepick/internal/journal"
	"github.com/xolan/datepick/internal/logging"
	"github.com/xolan/datepick/internal/preset"
)

// Services holds all service instances used by the application
type Services struct {
	Dates   *DateService
	Journal *JournalService
	Config  *ConfigService
	Log     *zap.Logger

	closeLog func() error
}

type options struct {
	clock  preset.Clock
	log    *zap.Logger
	stdout io.Writer
	stderr io.Writer
}

// Option customizes NewServices and NewServicesWithPaths.
type Option func(*options)

// WithClock fixes the clock used for "today" (tests, replays).
func WithClock(c preset.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger uses log instead of building one from the [logging] section.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithLogOutput sets the console writers of the configured logger.
func WithLogOutput(stdout, stderr io.Writer) Option {
	return func(o *options) { o.stdout, o.stderr = stdout, stderr }
}

// NewServices creates a new Services instance with default paths
func NewServices(opts ...Option) (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	journalPath := cfg.Journal.Path
	if journalPath == "" {
		journalPath, err = journal.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	return NewServicesWithPaths(configPath, journalPath, cfg, opts...)
}

// NewServicesWithPaths creates a new Services instance with custom paths (useful for testing)
func NewServicesWithPaths(configPath, journalPath string, cfg config.Config, opts ...Option) (*Services, error) {
	o := options{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	log, closeLog := o.log, func() error { return nil }
	if log == nil {
		lopts := cfg.LoggingOptions()
		lopts.Stdout, lopts.Stderr = o.stdout, o.stderr
		var err error
		log, closeLog, err = logging.New(lopts)
		if err != nil {
			return nil, err
		}
	}

	dates, err := NewDateService(cfg, o.clock, log)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	var now func() time.Time
	if o.clock != nil {
		now = o.clock.Now
	}

	return &Services{
		Dates:    dates,
		Journal:  NewJournalService(journalPath, cfg.Journal, now, log),
		Config:   NewConfigService(configPath, cfg),
		Log:      log,
		closeLog: closeLog,
	}, nil
}

// Close flushes the logger and closes its file destination.
func (s *Services) Close() error {
	_ = s.Log.Sync()
	return s.closeLog()
}
