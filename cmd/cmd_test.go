package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	colorize "github.com/fatih/color"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/warcards/internal/assets"
	"github.com/arcanaland/warcards/internal/config"
	"github.com/arcanaland/warcards/internal/game"
)

func TestMain(m *testing.M) {
	colorize.NoColor = true
	os.Exit(m.Run())
}

func isolate(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))
	t.Setenv(config.EnvDeck, "")
	t.Setenv(config.EnvNoColor, "")
}

// run executes the root command with args, resetting flags left over from
// earlier runs.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	RootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range RootCmd.Commands() {
		c.Flags().VisitAll(reset)
		for _, sub := range c.Commands() {
			sub.Flags().VisitAll(reset)
		}
	}

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetArgs(args)
	err := Execute()
	return out.String(), err
}

func writeDeck(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "cards"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deck.toml"), []byte(`
[deck]
id = "classic"
name = "Classic"
version = "1.0.0"
schema_version = "1.0"
description = "A plain French-suited deck"
card_back = "cards/Blank.png"
`), 0644))
	for _, n := range assets.StandardNames() {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "cards", n+".png"), nil, 0644))
	}
}

func TestPlayRounds(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "play", "--rounds", "27", "--seed", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "Playing with Standard (built-in), 52 cards shuffled.")
	assert.Contains(t, out, "Round 27")
	assert.Contains(t, out, "The deck ran out, a new one was shuffled.")
	assert.Contains(t, out, "Done: 27 rounds dealt, 50 cards left in the deck.")
	assert.NotContains(t, out, "score")
}

func TestPlaySeedIsReproducible(t *testing.T) {
	isolate(t)

	first, err := run(t, "", "play", "-n", "5", "--seed", "42")
	require.NoError(t, err)
	second, err := run(t, "", "play", "-n", "5", "--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPlayInteractive(t *testing.T) {
	isolate(t)

	out, err := run(t, "\n\nr\nwhat\n\nq\n", "play")
	require.NoError(t, err)
	assert.Contains(t, out, "Round 2")
	assert.Contains(t, out, "New deck shuffled")
	assert.Contains(t, out, "Unknown command.")
	assert.Contains(t, out, "Done: 1 rounds dealt")

	// The restart resets the round counter.
	afterRestart := out[strings.Index(out, "New deck shuffled"):]
	assert.Contains(t, afterRestart, "Round 1")
	assert.NotContains(t, afterRestart, "Round 3")
}

func TestPlayInteractiveEOF(t *testing.T) {
	s, err := game.NewSession(assets.Standard(), nil)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, playInteractive(strings.NewReader("\n"), &out, s))
	assert.Equal(t, 1, s.Rounds())
	assert.Contains(t, out.String(), "Done: 1 rounds dealt, 50 cards left")
}

func TestPlayWithDeckDirectory(t *testing.T) {
	isolate(t)
	deckDir := filepath.Join(t.TempDir(), "classic")
	writeDeck(t, deckDir)

	out, err := run(t, "", "play", "--deck", deckDir, "-n", "1", "--no-art")
	require.NoError(t, err)
	assert.Contains(t, out, "Playing with Classic, 52 cards shuffled.")
}

func TestPlayUnknownDeck(t *testing.T) {
	isolate(t)

	_, err := run(t, "", "play", "--deck", "no-such-deck", "-n", "1")
	assert.Error(t, err)
}

func TestShow(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "show", "HQ")
	require.NoError(t, err)
	assert.Contains(t, out, "Card: Queen of Hearts")
	assert.Contains(t, out, "Deck: Standard (built-in)")

	_, err = run(t, "", "show", "Z9")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	isolate(t)
	deckDir := filepath.Join(t.TempDir(), "classic")
	writeDeck(t, deckDir)

	out, err := run(t, "", "validate", deckDir)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	require.NoError(t, os.Remove(filepath.Join(deckDir, "cards", "SK.png")))
	out, err = run(t, "", "validate", deckDir)
	assert.Error(t, err)
	assert.Contains(t, out, "missing cards: SK")

	_, err = run(t, "", "validate", filepath.Join(deckDir, "missing"))
	assert.Error(t, err)
}

func TestDeckLibrary(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "deck", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "does not exist")

	out, err = run(t, "", "deck", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Deck library initialized at: "+config.GetDeckLibraryPath())

	out, err = run(t, "", "deck", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "No decks found")

	writeDeck(t, filepath.Join(config.GetDeckLibraryPath(), "classic"))
	out, err = run(t, "", "deck", "set-default", "classic")
	require.NoError(t, err)
	assert.Contains(t, out, "Default deck set to: classic")

	out, err = run(t, "", "deck", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "* classic (Classic) [DEFAULT]")

	out, err = run(t, "", "play", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Playing with Classic")

	_, err = run(t, "", "deck", "set-default", "missing")
	assert.Error(t, err)
}
