package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/todoapp/core/internal/adapters/gateway"
	"github.com/todoapp/core/internal/adapters/repository"
	"github.com/todoapp/core/internal/application/services"
	"github.com/todoapp/core/internal/infrastructure/config"
	"github.com/todoapp/core/internal/infrastructure/logger"
	"github.com/todoapp/core/internal/infrastructure/metrics"
	"github.com/todoapp/core/internal/infrastructure/server"
	"github.com/todoapp/core/internal/platform/instance"
	"github.com/todoapp/core/internal/platform/opener"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

// skipCore marks commands that run without config, storage or the instance lock.
const skipCore = "skip-core"

// App is the wired core shared by every command of one invocation.
type App struct {
	Config  *config.Config
	Logger  *logger.Logger
	Gateway *gateway.Gateway
	Metrics *metrics.Metrics
	lock    *instance.Lock
}

// Bootstrap loads configuration, takes the single-instance lock and builds the
// store, services and gateway. The lock is taken before any document is read.
func Bootstrap() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	lock, err := instance.Acquire(cfg.Instance.LockName)
	if err != nil {
		appLogger.Close()
		return nil, err
	}

	app := &App{Config: cfg, Logger: appLogger, lock: lock}
	if err := app.wire(); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

func (a *App) wire() error {
	cfg := a.Config

	dataDir, err := repository.ResolveDataDir(cfg.Storage.DataDir, cfg.Storage.DirName)
	if err != nil {
		return err
	}

	store, err := repository.NewJSONStore(dataDir,
		repository.WithStrictRead(cfg.Storage.StrictRead),
		repository.WithLogger(a.Logger),
	)
	if err != nil {
		return err
	}

	validator, err := repository.NewSchemaValidator()
	if err != nil {
		return err
	}

	guard := services.NewGuard()
	opts := []gateway.Option{
		gateway.WithLocale(cfg.App.Locale),
		gateway.WithLogger(a.Logger),
		gateway.WithFileOpener(opener.New(opener.WithLogger(a.Logger))),
	}
	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New(cfg.App.Name)
		opts = append(opts, gateway.WithObserver(a.Metrics))
	}

	a.Gateway = gateway.New(
		services.NewTaskService(store, guard, a.Logger),
		services.NewSettingsService(store, guard, a.Logger),
		services.NewDataService(store, validator, guard, a.Logger),
		opts...,
	)

	a.Logger.Debugw("Core initialized", "data_dir", dataDir, "strict_read", cfg.Storage.StrictRead)
	return nil
}

// Close releases the instance lock and flushes the logger
func (a *App) Close() {
	if a == nil {
		return
	}
	if err := a.lock.Release(); err != nil {
		a.Logger.WithError(err).Warnw("Failed to release instance lock", "path", a.lock.Path())
	}
	_ = a.Logger.Close()
}

type state struct {
	app *App
}

func (s *state) App() *App {
	return s.app
}

// Execute builds the command tree, runs it with args and releases the core
// afterwards, whether the command succeeded or not.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	st := &state{}
	defer func() { st.app.Close() }()

	root := NewRootCommand(st)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// NewRootCommand creates the todoapp command tree
func NewRootCommand(st *state) *cobra.Command {
	root := &cobra.Command{
		Use:           "todoapp",
		Short:         "Local to-do list backend",
		Long:          `todoapp stores tasks and settings as JSON documents in the user's home directory and serves them to the desktop front-end over a loopback bridge.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipCore] == "true" {
				return nil
			}
			app, err := Bootstrap()
			if err != nil {
				return err
			}
			st.app = app
			return nil
		},
	}

	root.AddCommand(NewServeCommand(st))
	root.AddCommand(NewTasksCommand(st))
	root.AddCommand(NewSettingsCommand(st))
	root.AddCommand(NewDataCommand(st))
	root.AddCommand(NewVersionCommand())

	return root
}

// NewServeCommand creates the serve command
func NewServeCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the loopback bridge for the desktop front-end",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), st.App())
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the todoapp version",
		Annotations: map[string]string{skipCore: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "todoapp %s\n", Version)
		},
	}
}

func runServer(ctx context.Context, app *App) error {
	srv, err := server.New(app.Config, app.Gateway, app.Metrics, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(app.Config.Server.GetAddr())
	}()

	app.Logger.Infow("todoapp bridge started",
		"address", app.Config.Server.GetAddr(),
		"environment", app.Config.App.Environment,
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// ErrOperationFailed is returned after a failed envelope was printed.
var ErrOperationFailed = errors.New("operation failed")

// printResponse writes the envelope as indented JSON and turns a failed
// envelope into an error.
func printResponse[T any](cmd *cobra.Command, resp gateway.Response[T]) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return err
	}
	if !resp.Success {
		return ErrOperationFailed
	}
	return nil
}
