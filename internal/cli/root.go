package cli

import (
	"github.com/alexanderramin/itemtracker/internal/domain"
	"github.com/alexanderramin/itemtracker/internal/service"
	"github.com/alexanderramin/itemtracker/internal/validation"
	"github.com/spf13/cobra"
)

// App holds the services and boundary collaborators used by CLI commands.
type App struct {
	Categories service.CategoryService
	Items      service.ItemService
	Bulk       service.BulkService

	Validator *validation.Validator
	Clock     domain.Clock

	// Owner is the default identity; the --owner flag overrides it.
	Owner string

	// Setup, when set, runs before any subcommand with the parsed command.
	// The process entry point uses it to load config and wire services so
	// persistent flags can feed configuration.
	Setup func(cmd *cobra.Command) error
}

// NewRootCmd creates the top-level "itemtracker" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	if app.Clock == nil {
		app.Clock = domain.SystemClock{}
	}
	if app.Validator == nil {
		app.Validator = validation.New(app.Clock)
	}

	root := &cobra.Command{
		Use:           "itemtracker",
		Short:         "Track items and categories, and run bulk edits",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Setup == nil {
				return nil
			}
			return app.Setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&app.Owner, "owner", app.Owner, "Owner identity to act as")
	root.PersistentFlags().String("config", "", "Config file (default ./itemtracker.yaml or ~/.itemtracker/itemtracker.yaml)")
	root.PersistentFlags().String("db", "", "SQLite database path (overrides database.path)")

	root.AddCommand(
		newCategoryCmd(app),
		newItemCmd(app),
		newBulkCmd(app),
		newOwnerCmd(app),
	)

	return root
}
