package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/avioncards/internal/app"
	"github.com/mesh-intelligence/avioncards/pkg/types"
)

var categoryFlags struct {
	name  string
	color string
}

func newCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories", "cat"},
		Short:   "Manage categories",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				cats, err := a.Categories.List(cmd.Context())
				if err != nil {
					return err
				}
				return printCategories(cmd, cats)
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				cat, err := a.Categories.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printCategories(cmd, []*types.Category{cat})
			})
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				id, err := a.Categories.Create(cmd.Context(), categoryFlags.name, categoryFlags.color)
				if err != nil {
					return err
				}
				return printID(cmd, id)
			})
		},
	}
	create.Flags().StringVar(&categoryFlags.name, "name", "", "category name (required)")
	create.Flags().StringVar(&categoryFlags.color, "color", "", "display color (default: first palette color)")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename or recolor a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				ctx := cmd.Context()
				cur, err := a.Categories.Get(ctx, args[0])
				if err != nil {
					return err
				}
				name, color := cur.Name, cur.Color
				if cmd.Flags().Changed("name") {
					name = categoryFlags.name
				}
				if cmd.Flags().Changed("color") {
					color = categoryFlags.color
				}
				return a.Categories.Update(ctx, args[0], name, color)
			})
		},
	}
	update.Flags().StringVar(&categoryFlags.name, "name", "", "new name")
	update.Flags().StringVar(&categoryFlags.color, "color", "", "new color")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category and remove it from every flashcard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				return a.Categories.Delete(cmd.Context(), args[0])
			})
		},
	}

	palette := &cobra.Command{
		Use:   "palette",
		Short: "List the default category colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			colors := types.DefaultPalette
			if flags.jsonMode {
				return printJSON(cmd, colors)
			}
			for _, c := range colors {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}

	cmd.AddCommand(list, get, create, update, del, palette)
	return cmd
}

func printCategories(cmd *cobra.Command, cats []*types.Category) error {
	if flags.jsonMode {
		return printJSON(cmd, cats)
	}
	for _, c := range cats {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", c.ID, c.Name, c.Color)
	}
	return nil
}

func printID(cmd *cobra.Command, id string) error {
	if flags.jsonMode {
		return printJSON(cmd, map[string]string{"id": id})
	}
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}
