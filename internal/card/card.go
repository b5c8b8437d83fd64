package card

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Suit is one of the four French suits, or InvalidSuit when an asset name
// could not be parsed.
type Suit string

const (
	Clubs       Suit = "Clubs"
	Spades      Suit = "Spades"
	Hearts      Suit = "Hearts"
	Diamonds    Suit = "Diamonds"
	InvalidSuit Suit = "Invalid Suit"
)

// Sentinel rank values stored on cards whose rank could not be parsed.
const (
	InvalidValue = -1
	InvalidName  = "Invalid Card"
)

var (
	ErrInvalidSuit = errors.New("invalid suit")
	ErrInvalidRank = errors.New("invalid rank")
)

// Valid reports whether s is one of the four playable suits.
func (s Suit) Valid() bool {
	switch s {
	case Clubs, Spades, Hearts, Diamonds:
		return true
	}
	return false
}

// Symbol returns the unicode pip for the suit.
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	default:
		return "•"
	}
}

// Red reports whether the suit is printed in red.
func (s Suit) Red() bool {
	return s == Hearts || s == Diamonds
}

// Image is an opaque handle to a card face. For on-disk decks it is the path
// of the image file; synthetic decks use the asset name.
type Image string

// Card represents a playing card. Cards are values and never change after
// construction.
type Card struct {
	value int
	name  string
	suit  Suit
	image Image
}

// New creates a card. No validation is done: sentinel values are stored as
// given so that callers can detect bad input downstream.
func New(value int, name string, suit Suit, image Image) Card {
	return Card{value: value, name: name, suit: suit, image: image}
}

func (c Card) Value() int   { return c.value }
func (c Card) Name() string { return c.name }
func (c Card) Suit() Suit   { return c.suit }
func (c Card) Image() Image { return c.image }

// Valid reports whether neither the suit nor the rank carries a sentinel.
func (c Card) Valid() bool {
	return c.suit.Valid() && c.value != InvalidValue
}

// String returns the display label, e.g. "Queen of Hearts".
func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.name, c.suit)
}

var suitCodes = map[string]Suit{
	"C": Clubs,
	"S": Spades,
	"H": Hearts,
	"D": Diamonds,
}

// Suits lists the playable suits in asset-code order.
var Suits = []Suit{Clubs, Spades, Hearts, Diamonds}

// Ranks lists the rank codes of a standard deck, lowest first.
var Ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

var faces = map[string]struct {
	value int
	name  string
}{
	"J": {11, "Jack"},
	"Q": {12, "Queen"},
	"K": {13, "King"},
	"A": {14, "Ace"},
}

// SplitName splits an asset name after its first character into the suit
// code and the rank.
func SplitName(assetName string) (suitCode, rank string) {
	if assetName == "" {
		return "", ""
	}
	_, size := utf8.DecodeRuneInString(assetName)
	return assetName[:size], assetName[size:]
}

// Parse builds a card from an asset name of the form <SuitCode><Rank>, e.g.
// "C10" or "HQ". It always returns a card. When part of the name is
// malformed the card carries InvalidSuit and/or InvalidValue/InvalidName and
// the returned error wraps ErrInvalidSuit and/or ErrInvalidRank.
func Parse(assetName string, image Image) (Card, error) {
	var errs []error

	code, rest := SplitName(assetName)
	suit, ok := suitCodes[code]
	if !ok {
		suit = InvalidSuit
		errs = append(errs, fmt.Errorf("%w '%s' found with image name '%s'", ErrInvalidSuit, code, assetName))
	}

	value, name := InvalidValue, InvalidName
	if f, ok := faces[rest]; ok {
		value, name = f.value, f.name
	} else if n, err := strconv.Atoi(rest); err == nil {
		value, name = n, rest
	} else {
		errs = append(errs, fmt.Errorf("%w: unable to parse '%s' as integer", ErrInvalidRank, rest))
	}

	return New(value, name, suit, image), errors.Join(errs...)
}

// Code returns the canonical asset name of a card of a standard deck, e.g.
// "DK" or "H10". Sentinel cards, ranks outside 2..14 and ranks spelled some
// other way ("C11", "S010") yield an empty string.
func Code(c Card) string {
	if !c.suit.Valid() || c.value < 2 || c.value > 14 {
		return ""
	}

	var prefix string
	for code, s := range suitCodes {
		if s == c.suit {
			prefix = code
		}
	}

	rank := strconv.Itoa(c.value)
	for code, f := range faces {
		if f.value == c.value {
			rank = code
			if c.name != f.name {
				return ""
			}
		}
	}
	if c.value <= 10 && c.name != rank {
		return ""
	}
	return prefix + rank
}
