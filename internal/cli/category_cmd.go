package cli

import (
	"fmt"

	"github.com/alexanderramin/itemtracker/internal/cli/formatter"
	"github.com/alexanderramin/itemtracker/internal/validation"
	"github.com/spf13/cobra"
)

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage categories",
	}

	cmd.AddCommand(
		newCategoryAddCmd(app),
		newCategoryListCmd(app),
		newCategoryRenameCmd(app),
		newCategoryDeleteCmd(app),
		newCategoryUsageCmd(app),
	)

	return cmd
}

func newCategoryAddCmd(app *App) *cobra.Command {
	var req validation.CreateCategoryRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Validator.Struct(req); err != nil {
				return err
			}
			c, err := app.Categories.Create(cmd.Context(), req.ToCategory(app.Owner))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created category %s (#%d)\n", c.Name, c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Category name")
	cmd.Flags().StringVar(&req.Color, "color", "", "Hex color, e.g. #FF5733 or #F57")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("color")

	return cmd
}

func newCategoryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your categories with item counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cats, err := app.Categories.ListByOwner(ctx, app.Owner)
			if err != nil {
				return err
			}
			if len(cats) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No categories found.")
				return nil
			}

			counts := make(map[int64]int, len(cats))
			for _, c := range cats {
				n, err := app.Categories.ItemsCount(ctx, c.ID)
				if err != nil {
					return err
				}
				counts[c.ID] = n
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCategoryList(cats, counts))
			return nil
		},
	}
}

func newCategoryRenameCmd(app *App) *cobra.Command {
	var req validation.UpdateCategoryRequest

	cmd := &cobra.Command{
		Use:   "rename ID",
		Short: "Rename or recolor a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if req.Name == "" && req.Color == "" {
				return fmt.Errorf("nothing to change: pass --name and/or --color")
			}
			if err := app.Validator.Struct(req); err != nil {
				return err
			}
			if _, err := ownedCategory(ctx, app, id); err != nil {
				return err
			}

			c, err := app.Categories.Update(ctx, id, req.ToPatch())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated category %s (#%d) %s\n", c.Name, c.ID, formatter.Swatch(c.Color))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "New name")
	cmd.Flags().StringVar(&req.Color, "color", "", "New hex color")

	return cmd
}

func newCategoryDeleteCmd(app *App) *cobra.Command {
	var withItems bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a category",
		Long: `Delete a category. A category that still has items is refused unless
--with-items is given, in which case its items are kept and detached.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := ownedCategory(ctx, app, id)
			if err != nil {
				return err
			}

			if withItems {
				if err := app.Categories.DeleteWithItems(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s (#%d) and detached its items\n", c.Name, c.ID)
				return nil
			}

			if err := app.Categories.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s (#%d)\n", c.Name, c.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withItems, "with-items", false, "Detach the category's items and delete it anyway")

	return cmd
}

func newCategoryUsageCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "usage ID",
		Short: "Show how many items use a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := ownedCategory(ctx, app, id)
			if err != nil {
				return err
			}
			n, err := app.Categories.ItemsCount(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCategoryUsage(c, n))
			return nil
		},
	}
}
