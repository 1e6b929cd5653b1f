// Package app provides the application context and dependency management
// for the shelf CLI: configuration, logging and the library session.
package app

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/shelf/internal/session"
	"github.com/agentstation/shelf/pkg/errors"
)

// App represents the shelf application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration and the raw global flag values
	config *Config
	flags  globalFlags

	// Logger
	logger *zerolog.Logger

	// Streams
	in     io.ReadCloser
	out    io.Writer
	errOut io.Writer

	newLineReader LineReaderFactory
}

// globalFlags receives the persistent flag values before they are merged
// into Config.
type globalFlags struct {
	configFile string
	verbose    bool
	quiet      bool
	noColor    bool
	logLevel   string
}

// New creates an App with the given version information. Configuration is
// loaded from the default locations; options are applied afterwards.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version:       version,
		commit:        commit,
		date:          date,
		builtBy:       builtBy,
		in:            os.Stdin,
		out:           os.Stdout,
		errOut:        os.Stderr,
		newLineReader: newReadline,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config, app.errOut)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// preload creates a session and loads the configured data files followed by
// extra. Load summaries go to out, diagnostics to the error stream.
func (a *App) preload(ctx context.Context, extra []string, out io.Writer) (*session.Session, error) {
	s := session.New()
	files := append(append([]string{}, a.config.DataFiles...), extra...)
	if len(files) == 0 {
		return s, nil
	}

	res, err := s.Preload(ctx, files...)
	if writeErr := res.WriteTo(out, a.errOut); writeErr != nil {
		return s, writeErr
	}
	return s, err
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewValidationError("config", nil, "config is required")
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithIO replaces the standard streams.
func WithIO(in io.ReadCloser, out, errOut io.Writer) Option {
	return func(a *App) error {
		a.in, a.out, a.errOut = in, out, errOut
		return nil
	}
}

// WithLineReader replaces the interactive line reader.
func WithLineReader(factory LineReaderFactory) Option {
	return func(a *App) error {
		a.newLineReader = factory
		return nil
	}
}
