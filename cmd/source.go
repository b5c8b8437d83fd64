package cmd

import (
	"fmt"

	"github.com/arcanaland/warcards/internal/assets"
	"github.com/arcanaland/warcards/internal/config"
)

// deckSource is the asset set a command plays with.
type deckSource struct {
	provider assets.Provider
	name     string
	dir      *assets.Dir // nil for the built-in set
}

const builtinDeckName = "Standard (built-in)"

// resolveDeck picks the deck named by flag, else the configured default, else
// the built-in standard set.
func resolveDeck(flag string, cfg *config.Config) (deckSource, error) {
	name := flag
	if name == "" {
		name = cfg.DefaultDeck
	}
	if name == "" {
		return deckSource{provider: assets.Standard(), name: builtinDeckName}, nil
	}

	deckPath, err := config.GetDeckPath(name)
	if err != nil {
		return deckSource{}, err
	}

	d, err := assets.LoadDir(deckPath)
	if err != nil {
		return deckSource{}, fmt.Errorf("error loading deck: %w", err)
	}
	return deckSource{provider: d, name: d.Name, dir: d}, nil
}
