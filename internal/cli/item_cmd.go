package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/itemtracker/internal/cli/formatter"
	"github.com/alexanderramin/itemtracker/internal/domain"
	"github.com/alexanderramin/itemtracker/internal/validation"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage items",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemEditCmd(app),
		newItemListCmd(app),
		newItemCompleteCmd(app),
		newItemLoopCmd(app),
		newItemPriorityCmd(app),
		newItemDeleteCmd(app),
		newItemStatsCmd(app),
	)

	return cmd
}

// itemFlags binds the optional item fields. Only flags the user actually set
// end up in the request.
type itemFlags struct {
	name        string
	description string
	hours       int
	priority    int
	category    int64
	looped      bool
}

func (f *itemFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Item name")
	fs.StringVar(&f.description, "description", "", "Free-form description")
	fs.IntVar(&f.hours, "hours", 0, "Estimated hours (0-1000)")
	fs.IntVar(&f.priority, "priority", 0, "Priority, 1 (highest) to 10")
	fs.Int64Var(&f.category, "category", 0, "Category ID")
	fs.BoolVar(&f.looped, "looped", false, "Mark the item as recurring")
}

// overlay copies every changed flag onto dst.
func (f *itemFlags) overlay(fs *pflag.FlagSet, dst *validation.UpdateItemRequest) {
	if fs.Changed("name") {
		dst.Name = f.name
	}
	if fs.Changed("description") {
		dst.Description = domain.Ptr(f.description)
	}
	if fs.Changed("hours") {
		dst.EstimatedHours = domain.Ptr(f.hours)
	}
	if fs.Changed("priority") {
		dst.Priority = domain.Ptr(f.priority)
	}
	if fs.Changed("category") {
		dst.CategoryID = domain.Ptr(f.category)
	}
	if fs.Changed("looped") {
		dst.IsLooped = domain.Ptr(f.looped)
	}
}

func newItemAddCmd(app *App) *cobra.Command {
	var flags itemFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an item",
		RunE: func(cmd *cobra.Command, args []string) error {
			var fields validation.UpdateItemRequest
			flags.overlay(cmd.Flags(), &fields)
			req := validation.CreateItemRequest{
				Name:           fields.Name,
				Description:    fields.Description,
				EstimatedHours: fields.EstimatedHours,
				Priority:       fields.Priority,
				CategoryID:     fields.CategoryID,
				IsLooped:       fields.IsLooped,
			}
			if err := app.Validator.Struct(req); err != nil {
				return err
			}
			if req.CategoryID != nil {
				if _, err := ownedCategory(cmd.Context(), app, *req.CategoryID); err != nil {
					return err
				}
			}

			it, err := app.Items.Create(cmd.Context(), req.ToItem(app.Owner))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created item %s (#%d)\n", it.Name, it.ID)
			return nil
		},
	}

	flags.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newItemEditCmd(app *App) *cobra.Command {
	var flags itemFlags
	var clearCategory bool

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change an item's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			it, err := ownedItem(ctx, app, id)
			if err != nil {
				return err
			}

			// Start from the stored values so unspecified fields survive the
			// full-replacement update.
			req := validation.UpdateItemRequest{
				Description:    it.Description,
				EstimatedHours: it.EstimatedHours,
				Priority:       it.Priority,
				CategoryID:     it.CategoryID,
				IsLooped:       it.IsLooped,
				CompletedAt:    it.CompletedAt,
			}
			flags.overlay(cmd.Flags(), &req)
			if clearCategory {
				req.CategoryID = nil
			}
			if err := app.Validator.Struct(req); err != nil {
				return err
			}
			if cmd.Flags().Changed("category") && req.CategoryID != nil {
				if _, err := ownedCategory(ctx, app, *req.CategoryID); err != nil {
					return err
				}
			}

			updated, err := app.Items.Update(ctx, id, req.ToPatch())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated item %s (#%d)\n", updated.Name, updated.ID)
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&clearCategory, "no-category", false, "Detach the item from its category")
	cmd.MarkFlagsMutuallyExclusive("category", "no-category")

	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	var (
		category  int64
		priority  int
		pending   bool
		completed bool
		looped    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				items []*domain.Item
				err   error
			)
			switch {
			case cmd.Flags().Changed("category"):
				if _, err := ownedCategory(ctx, app, category); err != nil {
					return err
				}
				items, err = app.Items.ListByCategory(ctx, category)
			case cmd.Flags().Changed("priority"):
				items, err = app.Items.ListByPriority(ctx, app.Owner, priority)
			case pending:
				items, err = app.Items.ListPending(ctx, app.Owner)
			case completed:
				items, err = app.Items.ListCompleted(ctx, app.Owner)
			case looped:
				items, err = app.Items.ListLooped(ctx, app.Owner)
			default:
				items, err = app.Items.ListByOwner(ctx, app.Owner)
			}
			if err != nil {
				return err
			}

			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No items found.")
				return nil
			}

			names, err := categoryNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatItemList(items, names, app.Clock.Now()))
			return nil
		},
	}

	cmd.Flags().Int64Var(&category, "category", 0, "Only items in this category")
	cmd.Flags().IntVar(&priority, "priority", 0, "Only items with this priority")
	cmd.Flags().BoolVar(&pending, "pending", false, "Only pending items")
	cmd.Flags().BoolVar(&completed, "completed", false, "Only completed items")
	cmd.Flags().BoolVar(&looped, "looped", false, "Only looped items")
	cmd.MarkFlagsMutuallyExclusive("category", "priority", "pending", "completed", "looped")

	return cmd
}

func newItemCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete ID",
		Short: "Mark an item completed now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			it, err := ownedItem(ctx, app, id)
			if err != nil {
				return err
			}
			if err := app.Items.Complete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed item %s (#%d)\n", it.Name, it.ID)
			return nil
		},
	}
}

func newItemLoopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "loop ID",
		Short: "Toggle whether an item recurs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := ownedItem(ctx, app, id); err != nil {
				return err
			}
			it, err := app.Items.ToggleLoop(ctx, id)
			if err != nil {
				return err
			}
			state := "no longer looped"
			if it.Looped() {
				state = "looped"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Item %s (#%d) is %s\n", it.Name, it.ID, state)
			return nil
		},
	}
}

func newItemPriorityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "priority ID PRIORITY",
		Short: "Set an item's priority (1-10)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid priority %q", args[1])
			}
			if err := app.Validator.Struct(validation.UpdatePriorityRequest{Priority: p}); err != nil {
				return err
			}
			if _, err := ownedItem(ctx, app, id); err != nil {
				return err
			}
			if err := app.Items.UpdatePriority(ctx, id, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Item #%d priority set to %s\n", id, formatter.PriorityBadge(&p))
			return nil
		},
	}
}

func newItemDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			it, err := ownedItem(ctx, app, id)
			if err != nil {
				return err
			}
			if err := app.Items.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted item %s (#%d)\n", it.Name, it.ID)
			return nil
		},
	}
}

func newItemStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise your items",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.Items.Stats(cmd.Context(), app.Owner)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatItemStats(stats))
			return nil
		},
	}
}
