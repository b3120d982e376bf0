package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/avioncards/internal/app"
	"github.com/mesh-intelligence/avioncards/internal/transfer"
	"github.com/mesh-intelligence/avioncards/pkg/types"
)

var transferFlags struct {
	out string
	yes bool
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every flashcard, category and image to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				snap, err := a.Transfer.ExportAll(cmd.Context())
				if err != nil {
					return err
				}
				path := transferFlags.out
				if path == "" {
					path = transfer.DefaultFileName(time.Now())
				}
				if path == "-" {
					return transfer.Encode(cmd.OutOrStdout(), snap)
				}
				if err := transfer.WriteFile(path, snap); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d flashcards, %d categories, %d images to %s\n",
					len(snap.Flashcards), len(snap.Categories), len(snap.Images), path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&transferFlags.out, "out", "", "output file, - for stdout (default: avioncards-export-YYYY-MM-DD.json)")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the whole catalog with an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := transfer.ReadFile(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app.App) error {
				if err := a.Transfer.ImportAll(cmd.Context(), snap); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d flashcards, %d categories, %d images\n",
					len(snap.Flashcards), len(snap.Categories), len(snap.Images))
				return nil
			})
		},
	}
}

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every flashcard, category and image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !transferFlags.yes {
				return types.NewValidationError("yes", "pass --yes to confirm clearing all data")
			}
			return withApp(cmd, func(a *app.App) error {
				return a.Transfer.ClearAll(cmd.Context())
			})
		},
	}
	cmd.Flags().BoolVar(&transferFlags.yes, "yes", false, "confirm")
	return cmd
}
