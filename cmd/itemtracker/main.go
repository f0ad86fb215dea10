package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/itemtracker/internal/cli"
	"github.com/alexanderramin/itemtracker/internal/config"
	"github.com/alexanderramin/itemtracker/internal/db"
	"github.com/alexanderramin/itemtracker/internal/domain"
	"github.com/alexanderramin/itemtracker/internal/service"
	"github.com/alexanderramin/itemtracker/internal/uow"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	clock := domain.SystemClock{}
	app := &cli.App{Clock: clock}

	// Config, logging and the database are wired once flags are parsed so
	// --config, --db and --owner can take part in configuration.
	app.Setup = func(cmd *cobra.Command) error {
		v := viper.New()
		if err := bindFlags(v, cmd); err != nil {
			return err
		}
		configFile, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(v, configFile)
		if err != nil {
			return err
		}

		stderrIsTTY := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		logger := newLogger(cfg.Log, os.Stderr, stderrIsTTY)

		database, err = db.OpenDB(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		logger.DebugContext(cmd.Context(), "database_opened", "path", cfg.Database.Path)

		var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
		if cfg.Log.UseCases {
			observer = service.NewSlogUseCaseObserver(logger)
		}

		factory := uow.NewFactory(database, db.WithLogger(logger))
		app.Categories = service.NewCategoryService(factory, observer)
		app.Items = service.NewItemService(factory, clock, observer)
		app.Bulk = service.NewBulkService(factory, clock, observer)
		app.Owner = cfg.Owner
		return nil
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// bindFlags feeds the persistent flags into viper. Unchanged flags fall back
// to env, config file and defaults.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	bindings := map[string]string{
		"database.path": "db",
		"owner":         "owner",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}
