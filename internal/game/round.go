package game

import "github.com/arcanaland/warcards/internal/card"

// Outcome is the result of a single round.
type Outcome int

const (
	Player1Wins Outcome = iota
	Player2Wins
	Tie
)

func (o Outcome) String() string {
	switch o {
	case Player1Wins:
		return "Player 1 Wins!"
	case Player2Wins:
		return "Player 2 Wins!"
	case Tie:
		return "Tie!"
	default:
		return "Unknown"
	}
}

// Resolve compares the rank values of the two cards. Suits never break ties.
func Resolve(p1, p2 card.Card) Outcome {
	switch {
	case p1.Value() > p2.Value():
		return Player1Wins
	case p1.Value() < p2.Value():
		return Player2Wins
	default:
		return Tie
	}
}

// Round is what a DisplaySink is shown after each deal.
type Round struct {
	Number      int
	Player1     card.Card
	Player2     card.Card
	Outcome     Outcome
	Replenished bool // a fresh deck had to be opened during this deal
	Remaining   int
}
