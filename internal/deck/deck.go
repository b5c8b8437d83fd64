package deck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/arcanaland/warcards/internal/assets"
	"github.com/arcanaland/warcards/internal/card"
)

// Deck is an ordered pile of cards; index 0 is the top. A Deck is owned by a
// single caller and is not safe for concurrent use.
type Deck struct {
	cards  []card.Card
	rng    *rand.Rand
	logger *slog.Logger
}

// Option configures a Deck.
type Option func(*Deck)

// WithRand makes the deck shuffle with r instead of the shared source.
func WithRand(r *rand.Rand) Option {
	return func(d *Deck) { d.rng = r }
}

// WithLogger sets the logger that receives parse and usage diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(d *Deck) { d.logger = l }
}

func newDeck(opts []Option) *Deck {
	d := &Deck{}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d
}

// New builds a deck from the faces supplied by p, in the order p enumerates
// them. Blank placeholders are skipped. Malformed names are logged and kept
// as sentinel cards; only a failure to enumerate p is returned as an error.
func New(p assets.Provider, opts ...Option) (*Deck, error) {
	d := newDeck(opts)

	set, err := p.Assets()
	if err != nil {
		return nil, fmt.Errorf("error loading card assets: %w", err)
	}

	d.cards = make([]card.Card, 0, len(set))
	for _, a := range set {
		if a.Name == assets.BlankName {
			continue
		}

		c, err := card.Parse(a.Name, a.Image)
		if err != nil {
			level := slog.LevelWarn
			if errors.Is(err, card.ErrInvalidRank) {
				level = slog.LevelError
			}
			d.logger.Log(context.Background(), level, "malformed card asset", "asset", a.Name, "error", err)
		}
		d.cards = append(d.cards, c)
	}

	d.logger.Debug("deck built", "cards", len(d.cards))
	return d, nil
}

// FromCards builds a deck holding cards, first element on top.
func FromCards(cards []card.Card, opts ...Option) *Deck {
	d := newDeck(opts)
	d.cards = make([]card.Card, len(cards))
	copy(d.cards, cards)
	return d
}

// Count returns the number of cards left.
func (d *Deck) Count() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards, top first.
func (d *Deck) Cards() []card.Card {
	out := make([]card.Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Shuffle reorders the remaining cards in place with a Fisher-Yates shuffle.
// Shuffling an empty deck does nothing and logs a warning.
func (d *Deck) Shuffle() {
	count := len(d.cards)
	if count == 0 {
		d.logger.Warn("attempted shuffle on empty deck")
		return
	}

	for i := 0; i < count-1; i++ {
		j := i + d.intN(count-i)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

func (d *Deck) intN(n int) int {
	if d.rng != nil {
		return d.rng.IntN(n)
	}
	return rand.IntN(n)
}

// Draw removes and returns the top card. ok is false when the deck is empty.
func (d *Deck) Draw() (c card.Card, ok bool) {
	if len(d.cards) == 0 {
		return card.Card{}, false
	}

	c = d.cards[0]
	d.cards = d.cards[1:]
	return c, true
}
