package game

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/arcanaland/warcards/internal/assets"
	"github.com/arcanaland/warcards/internal/card"
	"github.com/arcanaland/warcards/internal/deck"
	"github.com/google/uuid"
)

// ErrNoCards is returned when even a freshly opened deck has nothing to draw.
var ErrNoCards = errors.New("asset set produced no cards")

// DisplaySink renders the table. It is driven by a Session.
type DisplaySink interface {
	ShowRound(Round) error
	Reset() error
}

type nopSink struct{}

func (nopSink) ShowRound(Round) error { return nil }
func (nopSink) Reset() error          { return nil }

// Session is one two-player game drawing from a single shared deck.
type Session struct {
	id       uuid.UUID
	provider assets.Provider
	sink     DisplaySink
	deckOpts []deck.Option
	logger   *slog.Logger

	deck   *deck.Deck
	rounds int
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDeckOptions passes options to every deck the session opens.
func WithDeckOptions(opts ...deck.Option) SessionOption {
	return func(s *Session) { s.deckOpts = append(s.deckOpts, opts...) }
}

// WithLogger sets the session logger. Decks inherit it unless WithDeckOptions
// supplies another.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// NewSession opens and shuffles a deck from p. A nil sink discards output.
func NewSession(p assets.Provider, sink DisplaySink, opts ...SessionOption) (*Session, error) {
	if sink == nil {
		sink = nopSink{}
	}

	s := &Session{
		id:       uuid.New(),
		provider: p,
		sink:     sink,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.logger = s.logger.With("session", s.id.String())

	d, err := s.openDeck()
	if err != nil {
		return nil, err
	}
	s.deck = d
	return s, nil
}

// openDeck builds and shuffles a brand new deck.
func (s *Session) openDeck() (*deck.Deck, error) {
	opts := append([]deck.Option{deck.WithLogger(s.logger)}, s.deckOpts...)
	d, err := deck.New(s.provider, opts...)
	if err != nil {
		return nil, err
	}
	d.Shuffle()
	s.logger.Debug("opened new deck", "cards", d.Count())
	return d, nil
}

// draw takes the top card, replacing an exhausted deck with a fresh one.
func (s *Session) draw() (c card.Card, replenished bool, err error) {
	if c, ok := s.deck.Draw(); ok {
		return c, false, nil
	}

	s.logger.Info("deck exhausted, opening a new one", "round", s.rounds+1)
	d, err := s.openDeck()
	if err != nil {
		return card.Card{}, false, err
	}
	s.deck = d

	c, ok := s.deck.Draw()
	if !ok {
		return card.Card{}, true, ErrNoCards
	}
	return c, true, nil
}

// Deal draws one card for each player, resolves the round and shows it.
func (s *Session) Deal() (Round, error) {
	p1, r1, err := s.draw()
	if err != nil {
		return Round{}, fmt.Errorf("error drawing for player 1: %w", err)
	}
	p2, r2, err := s.draw()
	if err != nil {
		return Round{}, fmt.Errorf("error drawing for player 2: %w", err)
	}

	s.rounds++
	outcome := Resolve(p1, p2)

	round := Round{
		Number:      s.rounds,
		Player1:     p1,
		Player2:     p2,
		Outcome:     outcome,
		Replenished: r1 || r2,
		Remaining:   s.deck.Count(),
	}
	s.logger.Debug("round resolved",
		"round", round.Number, "p1", p1.String(), "p2", p2.String(), "outcome", outcome.String())

	if err := s.sink.ShowRound(round); err != nil {
		return round, fmt.Errorf("error displaying round: %w", err)
	}
	return round, nil
}

// Restart discards the current deck and opens a new shuffled deck.
func (s *Session) Restart() error {
	d, err := s.openDeck()
	if err != nil {
		return err
	}
	s.deck = d
	s.rounds = 0

	if err := s.sink.Reset(); err != nil {
		return fmt.Errorf("error resetting display: %w", err)
	}
	return nil
}

func (s *Session) ID() uuid.UUID  { return s.id }
func (s *Session) Remaining() int { return s.deck.Count() }
func (s *Session) Rounds() int    { return s.rounds }
