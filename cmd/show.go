package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/warcards/internal/card"
	"github.com/arcanaland/warcards/internal/config"
	"github.com/arcanaland/warcards/internal/deck"
)

var showCmd = &cobra.Command{
	Use:   "show [code]",
	Short: "Display a single card of a deck",
	Long: `Show displays one card of a deck, drawn as ANSI art when the deck has an image for it.
Cards are named by suit code and rank: C, S, H or D followed by 2-10, J, Q, K or A.

Examples:
  warcards show HQ
  warcards show --deck classic S10
  warcards show --deck ./my-deck DA`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := args[0]

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		if !cfg.Color {
			colorize.NoColor = true
		}

		deckFlag, _ := cmd.Flags().GetString("deck")
		src, err := resolveDeck(deckFlag, cfg)
		if err != nil {
			return err
		}

		d, err := deck.New(src.provider, deck.WithLogger(newLogger()))
		if err != nil {
			return err
		}

		for _, c := range d.Cards() {
			if card.Code(c) != code {
				continue
			}
			var description string
			if src.dir != nil {
				description = src.dir.Description
			}
			return newTerminal(cmd, cfg, true).ShowCard(c, src.name, description)
		}

		return fmt.Errorf("card not found: %s", code)
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("deck", "d", "", "Specify a deck from your deck library or a path to a deck")
}
