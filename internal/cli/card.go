package cli

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/avioncards/internal/app"
	"github.com/mesh-intelligence/avioncards/internal/imaging"
	"github.com/mesh-intelligence/avioncards/pkg/types"
)

var cardFlags struct {
	name            string
	image           string
	categories      []string
	clearCategories bool
	category        string
	out             string
}

func newCardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "card",
		Aliases: []string{"cards", "flashcard"},
		Short:   "Manage flashcards",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List flashcards, optionally of one category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				var (
					cards []*types.Flashcard
					err   error
				)
				if cardFlags.category != "" {
					cards, err = a.Flashcards.ListByCategory(cmd.Context(), cardFlags.category)
				} else {
					cards, err = a.Flashcards.List(cmd.Context())
				}
				if err != nil {
					return err
				}
				return printCards(cmd, cards)
			})
		},
	}
	list.Flags().StringVar(&cardFlags.category, "category", "", "only flashcards of this category")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one flashcard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				card, err := a.Flashcards.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printCards(cmd, []*types.Flashcard{card})
			})
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a flashcard from an image file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw types.RawImage
			if cardFlags.image != "" {
				r, err := openImage(cardFlags.image)
				if err != nil {
					return err
				}
				raw = r
			}
			return withApp(cmd, func(a *app.App) error {
				id, err := a.Flashcards.Create(cmd.Context(), cardFlags.name, raw, cardFlags.categories)
				if err != nil {
					return err
				}
				return printID(cmd, id)
			})
		},
	}
	create.Flags().StringVar(&cardFlags.name, "name", "", "aircraft name (required)")
	create.Flags().StringVar(&cardFlags.image, "image", "", "image file (required)")
	create.Flags().StringSliceVar(&cardFlags.categories, "category", nil, "category ID (repeatable)")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename a flashcard, replace its image or refile it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw types.RawImage
			if cardFlags.image != "" {
				r, err := openImage(cardFlags.image)
				if err != nil {
					return err
				}
				raw = r
			}
			var categoryIDs []string
			switch {
			case cardFlags.clearCategories:
				categoryIDs = []string{}
			case cmd.Flags().Changed("category"):
				categoryIDs = cardFlags.categories
			}

			return withApp(cmd, func(a *app.App) error {
				ctx := cmd.Context()
				name := cardFlags.name
				if !cmd.Flags().Changed("name") {
					cur, err := a.Flashcards.Get(ctx, args[0])
					if err != nil {
						return err
					}
					name = cur.Name
				}
				return a.Flashcards.Update(ctx, args[0], name, raw, categoryIDs)
			})
		},
	}
	update.Flags().StringVar(&cardFlags.name, "name", "", "new name")
	update.Flags().StringVar(&cardFlags.image, "image", "", "replacement image file")
	update.Flags().StringSliceVar(&cardFlags.categories, "category", nil, "replace categories (repeatable)")
	update.Flags().BoolVar(&cardFlags.clearCategories, "clear-categories", false, "remove every category")
	update.MarkFlagsMutuallyExclusive("category", "clear-categories")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a flashcard and its image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				return a.Flashcards.Delete(cmd.Context(), args[0])
			})
		},
	}

	random := &cobra.Command{
		Use:   "random",
		Short: "Draw a random flashcard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				card, ok, err := a.Flashcards.GetRandom(cmd.Context())
				if err != nil {
					return err
				}
				if !ok {
					if flags.jsonMode {
						return printJSON(cmd, nil)
					}
					fmt.Fprintln(cmd.OutOrStdout(), "no flashcards")
					return nil
				}
				return printCards(cmd, []*types.Flashcard{card})
			})
		},
	}

	image := &cobra.Command{
		Use:   "image <id>",
		Short: "Print a flashcard's image as a data URL, or save it as JPEG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				ctx := cmd.Context()
				card, err := a.Flashcards.Get(ctx, args[0])
				if err != nil {
					return err
				}
				url, ok, err := a.Flashcards.GetImageURL(ctx, card.ImageRef)
				if err != nil {
					return err
				}
				if !ok {
					return &types.NotFoundError{Entity: "image", ID: card.ImageRef}
				}
				if cardFlags.out == "" {
					fmt.Fprintln(cmd.OutOrStdout(), url)
					return nil
				}
				return writeDataURL(cardFlags.out, url)
			})
		},
	}
	image.Flags().StringVar(&cardFlags.out, "out", "", "write the decoded JPEG to this file")

	deck := &cobra.Command{
		Use:   "deck",
		Short: "List flashcards in shuffled order for a practice round",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				cards, err := a.Flashcards.Deck(cmd.Context(), cardFlags.category)
				if err != nil {
					return err
				}
				return printCards(cmd, cards)
			})
		},
	}
	deck.Flags().StringVar(&cardFlags.category, "category", "", "only flashcards of this category")

	cmd.AddCommand(list, get, create, update, del, random, image, deck)
	return cmd
}

// openImage wraps a file as a raw image. A missing file is the caller's
// mistake.
func openImage(path string) (types.RawImage, error) {
	raw, err := imaging.File(path)
	if err != nil {
		return nil, types.NewValidationErrorCause("image", err)
	}
	return raw, nil
}

func writeDataURL(path, url string) error {
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, imaging.DataURLPrefix))
	if err != nil {
		return fmt.Errorf("decoding image: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func printCards(cmd *cobra.Command, cards []*types.Flashcard) error {
	if flags.jsonMode {
		return printJSON(cmd, cards)
	}
	for _, c := range cards {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", c.ID, c.Name, strings.Join(c.CategoryIDs, ","))
	}
	return nil
}
