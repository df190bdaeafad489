package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	jobtrack "github.com/dan-yates1/job-tracker"
	"github.com/dan-yates1/job-tracker/api"
	"github.com/dan-yates1/job-tracker/repository"
)

const EnvConfigPath = "JOBTRACK_CONFIG"

type App struct {
	ConfigPath  string
	BaseURL     string
	StoragePath string
	Verbose     bool

	jobtrack *jobtrack.App
	api      *api.Client
	closers  []io.Closer
}

// Execute runs the command line against os.Args
func Execute(ctx context.Context) error {
	app := &App{}
	return app.execute(ctx, NewRootCmd(app))
}

// execute runs cmd and closes the storage opened for it, also when the
// command failed
func (a *App) execute(ctx context.Context, cmd *cobra.Command) (err error) {
	defer func() {
		if cerr := a.close(); err == nil {
			err = cerr
		}
	}()
	return cmd.ExecuteContext(ctx)
}

func NewRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "jobtrack",
		Short:        "JobTrack command line client",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Sign in, the token is kept for later commands
  jobtrack login --email me@example.com

  # List tracked applications
  jobtrack jobs list

  # Send an authorized request to any endpoint
  jobtrack fetch /jobs/
`),
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", os.Getenv(EnvConfigPath), "config file (YAML)")
	cmd.PersistentFlags().StringVar(&app.BaseURL, "base-url", "", "JobTrack server URL")
	cmd.PersistentFlags().StringVar(&app.StoragePath, "storage", "", "token storage file (.json, or .db for sqlite)")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "log requests")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.init(cmd)
	}

	cmd.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newStatusCmd(app),
		newFetchCmd(app),
		newJobsCmd(app),
	)

	return cmd
}

func (a *App) init(cmd *cobra.Command) error {
	opts, err := jobtrack.LoadConfig(a.ConfigPath)
	if err != nil {
		return err
	}
	if a.BaseURL != "" {
		opts.BaseURL = a.BaseURL
	}
	if a.StoragePath != "" {
		opts.StoragePath = a.StoragePath
	}

	app, err := jobtrack.New(opts)
	if err != nil {
		return err
	}

	logger := jobtrack.NopLogger()
	if a.Verbose {
		logger = &ptermLogger{w: cmd.ErrOrStderr()}
	}
	app.WithLogger(logger)

	if isSQLite(opts.StoragePath) {
		storage, err := openSQLiteStorage(cmd.Context(), opts.StoragePath)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, storage)
		app.WithStorage(storage)
	}

	app.WithNavigator(loginHint(cmd.ErrOrStderr()))

	a.jobtrack = app
	a.api = api.New(app.Client())
	return nil
}

func (a *App) close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func isSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

func openSQLiteStorage(ctx context.Context, path string) (*repository.Storage, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := repository.OpenSQLite("file:" + path)
	if err != nil {
		return nil, err
	}
	storage := repository.NewStorage(db)
	if err := storage.EnsureSchema(ctx); err != nil {
		storage.Close()
		return nil, err
	}
	return storage, nil
}

// loginHint stands in for the browser redirect to the login page
func loginHint(w io.Writer) jobtrack.Navigator {
	return jobtrack.NavigatorFunc(func(_ context.Context, path string) error {
		_, err := fmt.Fprintln(w, pterm.Warning.Sprintf("Session ended (%s), run `jobtrack login` to sign in again", path))
		return err
	})
}

type ptermLogger struct {
	w io.Writer
}

func (l *ptermLogger) Debug(format string, args ...any) {
	fmt.Fprintln(l.w, pterm.FgGray.Sprintf(format, args...))
}

func (l *ptermLogger) Info(format string, args ...any) {
	fmt.Fprintln(l.w, pterm.Info.Sprintf(format, args...))
}

func (l *ptermLogger) Error(format string, args ...any) {
	fmt.Fprintln(l.w, pterm.Error.Sprintf(format, args...))
}
