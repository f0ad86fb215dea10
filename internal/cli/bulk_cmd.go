package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/itemtracker/internal/cli/formatter"
	"github.com/alexanderramin/itemtracker/internal/domain"
	"github.com/alexanderramin/itemtracker/internal/service"
	"github.com/alexanderramin/itemtracker/internal/validation"
	"github.com/spf13/cobra"
)

func newBulkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Run multi-item operations in one transaction",
		Long: `Each bulk operation runs in a single transaction: either every change is
saved or none is. Item IDs that do not exist are skipped and left out of the
affected count.`,
	}

	cmd.AddCommand(
		newBulkCreateCmd(app),
		newBulkUpdateCmd(app),
		newBulkDeleteCmd(app),
		newBulkCompleteCmd(app),
		newBulkMoveCmd(app),
		newBulkPrioritiesCmd(app),
		newBulkDuplicateCmd(app),
	)

	return cmd
}

// report prints res and turns a failed result into a command error.
func report(cmd *cobra.Command, res service.BulkOperationResult) error {
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBulkResult(res))
	if !res.Success {
		return res.Err()
	}
	return nil
}

// readJSON decodes path into v. "-" reads standard input.
func readJSON(cmd *cobra.Command, path string, v any) error {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

func newBulkCreateCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create up to 50 items from a JSON array",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var req validation.BulkCreateRequest
			if err := readJSON(cmd, file, &req.Items); err != nil {
				return err
			}
			if err := app.Validator.Struct(req); err != nil {
				return err
			}
			for _, it := range req.Items {
				if it.CategoryID == nil {
					continue
				}
				if _, err := ownedCategory(ctx, app, *it.CategoryID); err != nil {
					return err
				}
			}
			return report(cmd, app.Bulk.BulkCreateItems(ctx, req.ToItems(app.Owner)))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON file with an array of items (- for stdin)")

	return cmd
}

func newBulkUpdateCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update up to 50 items from a JSON array",
		Long: `Reads a JSON array of objects with an "id" and the fields to change.
Fields that are omitted keep their current value.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var req validation.BulkUpdateRequest
			if err := readJSON(cmd, file, &req.Items); err != nil {
				return err
			}
			if err := app.Validator.Struct(req); err != nil {
				return err
			}

			items := make([]*domain.Item, 0, len(req.Items))
			for _, u := range req.Items {
				it, err := ownedItem(ctx, app, u.ID)
				if err != nil {
					return err
				}
				if u.CategoryID != nil {
					if _, err := ownedCategory(ctx, app, *u.CategoryID); err != nil {
						return err
					}
				}
				u.ApplyTo(it)
				items = append(items, it)
			}
			return report(cmd, app.Bulk.BulkUpdateItems(ctx, items))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON file with an array of item changes (- for stdin)")

	return cmd
}

// idListCmd builds a command that validates an ID list, checks ownership and
// hands the ids to run.
func idListCmd(app *App, use, short string, run func(cmd *cobra.Command, ids []int64) service.BulkOperationResult) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			if err := app.Validator.Struct(validation.IDListRequest{IDs: ids}); err != nil {
				return err
			}
			if err := checkItemOwnership(cmd.Context(), app, ids); err != nil {
				return err
			}
			return report(cmd, run(cmd, ids))
		},
	}
}

func newBulkDeleteCmd(app *App) *cobra.Command {
	return idListCmd(app, "delete", "Delete items", func(cmd *cobra.Command, ids []int64) service.BulkOperationResult {
		return app.Bulk.BulkDeleteItems(cmd.Context(), ids)
	})
}

func newBulkCompleteCmd(app *App) *cobra.Command {
	return idListCmd(app, "complete", "Mark items completed now", func(cmd *cobra.Command, ids []int64) service.BulkOperationResult {
		return app.Bulk.CompleteItems(cmd.Context(), ids)
	})
}

func newBulkDuplicateCmd(app *App) *cobra.Command {
	return idListCmd(app, "duplicate", "Copy items as new pending items", func(cmd *cobra.Command, ids []int64) service.BulkOperationResult {
		return app.Bulk.DuplicateItems(cmd.Context(), ids, app.Owner)
	})
}

func newBulkMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move FROM TO",
		Short: "Move every item of one category into another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			from, err := parseID(args[0])
			if err != nil {
				return err
			}
			to, err := parseID(args[1])
			if err != nil {
				return err
			}
			if err := app.Validator.Struct(validation.MoveCategoryRequest{FromCategoryID: from, ToCategoryID: to}); err != nil {
				return err
			}
			if _, err := ownedCategory(ctx, app, from); err != nil {
				return err
			}
			// A missing target is reported by the engine; only a foreign one
			// is refused here.
			if c, err := app.Categories.GetByID(ctx, to); err == nil && c.OwnerID != app.Owner {
				return fmt.Errorf("category %d: %w", to, domain.ErrCategoryNotFound)
			}
			return report(cmd, app.Bulk.MoveCategoryItems(ctx, from, to))
		},
	}
}

func newBulkPrioritiesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "priorities ID=PRIORITY...",
		Short: "Set several item priorities at once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			priorities, err := parsePriorities(args)
			if err != nil {
				return err
			}
			if err := app.Validator.Struct(validation.PrioritiesRequest{Priorities: priorities}); err != nil {
				return err
			}
			ids := make([]int64, 0, len(priorities))
			for id := range priorities {
				ids = append(ids, id)
			}
			if err := checkItemOwnership(cmd.Context(), app, ids); err != nil {
				return err
			}
			return report(cmd, app.Bulk.UpdatePriorities(cmd.Context(), priorities))
		},
	}
}
