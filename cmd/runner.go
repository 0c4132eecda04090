package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/adx/internal/auth"
	"github.com/desertthunder/adx/internal/services"
	"github.com/desertthunder/adx/internal/shared"
	"github.com/desertthunder/adx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	service     services.AdsService
	session     *auth.Manager
	engine      *tasks.SubmissionEngine
	coordinator *tasks.MusicCoordinator
	logger      *log.Logger
	output      io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Service services.AdsService
	Session *auth.Manager
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	engine := tasks.NewSubmissionEngine(opts.Service, opts.Logger)
	coordinator := tasks.NewMusicCoordinator(tasks.CoordinatorOpts{
		Service: opts.Service,
		Logger:  opts.Logger,
	})

	return &Runner{
		config:      opts.Config,
		service:     opts.Service,
		session:     opts.Session,
		engine:      engine,
		coordinator: coordinator,
		logger:      opts.Logger,
		output:      opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, adCommand, musicCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the Runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// requireService errors when no ads service was configured.
func (r *Runner) requireService() error {
	if r.service == nil {
		return fmt.Errorf("%w: TikTok credentials not configured, run 'adx setup' first", shared.ErrMissingCredentials)
	}
	return nil
}

// requireSession errors when the token store could not be opened.
func (r *Runner) requireSession() error {
	if r.session == nil {
		return fmt.Errorf("%w: token store unavailable, run 'adx setup' first", shared.ErrServiceUnavailable)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
