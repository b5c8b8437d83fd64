package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/warcards/internal/config"
	"github.com/arcanaland/warcards/internal/deck"
	"github.com/arcanaland/warcards/internal/game"
	"github.com/arcanaland/warcards/internal/render"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play War against the deck",
	Long: `Play shuffles a deck and deals one card to each player per round.

Interactive controls:
  Enter  deal the next round
  r      restart with a freshly shuffled deck
  q      quit

With --rounds the given number of rounds is dealt without waiting for input.
When the deck runs out mid-round a new deck is shuffled and play continues.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		if !cfg.Color {
			colorize.NoColor = true
		}

		deckFlag, _ := cmd.Flags().GetString("deck")
		rounds, _ := cmd.Flags().GetInt("rounds")
		noArt, _ := cmd.Flags().GetBool("no-art")

		src, err := resolveDeck(deckFlag, cfg)
		if err != nil {
			return err
		}

		var deckOpts []deck.Option
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetUint64("seed")
			deckOpts = append(deckOpts, deck.WithRand(rand.New(rand.NewPCG(seed, seed))))
		}

		sink := newTerminal(cmd, cfg, !noArt)
		session, err := game.NewSession(src.provider, sink,
			game.WithLogger(newLogger()),
			game.WithDeckOptions(deckOpts...),
		)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Playing with %s, %d cards shuffled.\n", src.name, session.Remaining())

		if rounds > 0 {
			for i := 0; i < rounds; i++ {
				if _, err := session.Deal(); err != nil {
					return err
				}
			}
			printDone(out, session)
			return nil
		}

		return playInteractive(cmd.InOrStdin(), out, session)
	},
}

func playInteractive(in io.Reader, out io.Writer, session *game.Session) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\n[Enter] deal  [r] restart  [q] quit > ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "":
			if _, err := session.Deal(); err != nil {
				if errors.Is(err, game.ErrNoCards) {
					return fmt.Errorf("deck has no playable cards: %w", err)
				}
				return err
			}
		case "r", "restart":
			if err := session.Restart(); err != nil {
				return err
			}
		case "q", "quit", "exit":
			printDone(out, session)
			return nil
		default:
			fmt.Fprintln(out, "Unknown command.")
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	printDone(out, session)
	return nil
}

func printDone(out io.Writer, session *game.Session) {
	fmt.Fprintf(out, "\n%s %d rounds dealt, %d cards left in the deck.\n",
		colorize.CyanString("Done:"), session.Rounds(), session.Remaining())
}

// newTerminal builds the display for cmd's output. Art is only drawn on a
// real terminal.
func newTerminal(cmd *cobra.Command, cfg *config.Config, art bool) *render.Terminal {
	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		art = false
	}
	return &render.Terminal{
		Out:       out,
		ArtWidth:  cfg.ArtWidth,
		ArtHeight: cfg.ArtHeight,
		Art:       art && cfg.ArtWidth > 0 && cfg.ArtHeight > 0,
		Color:     cfg.Color && !colorize.NoColor,
		CacheDir:  config.GetCacheDir(),
	}
}

func init() {
	RootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("deck", "d", "", "Specify a deck from your deck library or a path to a deck")
	playCmd.Flags().IntP("rounds", "n", 0, "Deal this many rounds without waiting for input")
	playCmd.Flags().Uint64("seed", 0, "Seed the shuffle for a reproducible game")
	playCmd.Flags().Bool("no-art", false, "Draw text cards instead of image art")
}
