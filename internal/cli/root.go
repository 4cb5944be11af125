// Package cli implements the planner command-line client. It talks to the
// same blob store as the API server.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-planner/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-planner/internal/config"
	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
	"github.com/comitanigiacomo/kanso-planner/internal/core/services"
	"github.com/comitanigiacomo/kanso-planner/internal/logging"
)

type App struct {
	ConfigPath string
	EnvFile    string
	Pretty     bool
	Verbose    bool

	// Clock overrides the wall clock, for tests.
	Clock domain.Clock
}

// planner is the wired service graph for one command invocation.
type planner struct {
	cfg      *config.Config
	backend  *repository.Backend
	lists    *services.ListService
	schedule *services.ScheduleService
	library  *services.LibraryService
}

func (p *planner) Close() error {
	return p.backend.Close()
}

func NewRootCmd() *cobra.Command {
	app := &App{}
	return newRootCmd(app)
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "planner",
		Short:        "Weekly habit planner",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to a TOML config file (default: $PLANNER_CONFIG)")
	cmd.PersistentFlags().StringVar(&app.EnvFile, "env-file", ".env", "Path to a .env file")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Log at debug level to stderr")

	cmd.AddCommand(newTodayCmd(app))
	cmd.AddCommand(newScheduleCmd(app))
	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newLibraryCmd(app))
	cmd.AddCommand(newHashPasswordCmd(app))
	cmd.AddCommand(newTokenCmd(app))

	return cmd
}

func (app *App) loadConfig() (*config.Config, error) {
	return config.Load(app.ConfigPath, app.EnvFile)
}

// open wires the services against the configured store and loads the
// current schedule.
func (app *App) open(cmd *cobra.Command) (*planner, error) {
	cfg, err := app.loadConfig()
	if err != nil {
		return nil, err
	}

	level := "warn"
	if app.Verbose {
		level = "debug"
	}
	logger := logging.New(cmd.ErrOrStderr(), level, cfg.LogFormat)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	backend, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	clock := app.Clock
	if clock == nil {
		loc, err := cfg.Location()
		if err != nil {
			backend.Close()
			return nil, err
		}
		clock = domain.SystemClock{Location: loc}
	}

	lists := services.NewListService(backend.Store, logger)
	p := &planner{
		cfg:      cfg,
		backend:  backend,
		lists:    lists,
		schedule: services.NewScheduleService(backend.Store, lists, clock, logger),
		library:  services.NewLibraryService(backend.Store, logger),
	}

	if err := p.schedule.LoadAndReconcile(ctx); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return writeJSON(cmd.OutOrStdout(), v, app.Pretty)
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func (p *planner) newBuilder() *services.ListBuilder {
	return services.NewListBuilder(p.lists)
}
