package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"golang.org/x/term"

	"github.com/arcanaland/warcards/internal/card"
	"github.com/arcanaland/warcards/internal/game"
)

// Terminal draws the table on a terminal. It implements game.DisplaySink.
type Terminal struct {
	Out       io.Writer
	ArtWidth  int
	ArtHeight int
	Art       bool   // convert face images to ANSI art when they are readable files
	Color     bool   // emit 24-bit color escapes in image art
	CacheDir  string // where generated art is kept; empty disables caching
}

var _ game.DisplaySink = (*Terminal)(nil)

const spacing = 4

// width returns the terminal width of Out, or 80.
func (t *Terminal) width() int {
	if f, ok := t.Out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return 80
}

// ShowRound prints both cards side by side followed by the outcome.
func (t *Terminal) ShowRound(r game.Round) error {
	left := append(t.face(r.Player1), "", label("Player 1", r.Player1))
	right := append(t.face(r.Player2), "", label("Player 2", r.Player2))

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n\n", colorize.CyanString("Round %d", r.Number))
	for _, line := range sideBySide(left, right) {
		b.WriteString("  " + line + "\n")
	}

	fmt.Fprintf(&b, "\n  %s\n", outcome(r.Outcome))
	if r.Replenished {
		fmt.Fprintf(&b, "  %s\n", colorize.YellowString("The deck ran out, a new one was shuffled."))
	}
	fmt.Fprintf(&b, "  %s %d\n", colorize.CyanString("Cards left:"), r.Remaining)

	_, err := io.WriteString(t.Out, b.String())
	return err
}

// Reset clears the table for a new game.
func (t *Terminal) Reset() error {
	_, err := fmt.Fprintf(t.Out, "\n  %s\n", colorize.HiWhiteString("New deck shuffled. Press Enter to deal."))
	return err
}

// ShowCard prints one card with its details, as the show command does.
func (t *Terminal) ShowCard(c card.Card, deckName, description string) error {
	art := t.face(c)
	maxAnsiWidth := 0
	for _, line := range art {
		if w := visibleWidth(line); w > maxAnsiWidth {
			maxAnsiWidth = w
		}
	}

	var info []string
	info = append(info, colorize.CyanString("Card: ")+suitColor(c.Suit()).Sprint(c.String()))
	info = append(info, colorize.CyanString("Deck: ")+colorize.HiWhiteString(deckName))
	info = append(info, colorize.CyanString("Code: ")+colorize.HiWhiteString(card.Code(c)))
	info = append(info, colorize.CyanString("Rank: ")+colorize.HiWhiteString("%d", c.Value()))
	info = append(info, colorize.CyanString("Suit: ")+colorize.HiWhiteString("%s · %s", c.Suit(), c.Suit().Symbol()))

	// Calculate available width for text, ensuring it's at least 20 characters
	infoWidth := t.width() - maxAnsiWidth - spacing - 2
	if infoWidth < 20 {
		infoWidth = 20
	}

	if description != "" {
		info = append(info, "", colorize.CyanString("Description:"))
		info = append(info, wrapText(description, infoWidth)...)
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range sideBySide(art, info) {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")

	_, err := io.WriteString(t.Out, b.String())
	return err
}

// face returns the lines of a card's picture: ANSI art from its image file if
// possible, otherwise a framed text card.
func (t *Terminal) face(c card.Card) []string {
	if t.Art && c.Image() != "" {
		if _, err := os.Stat(string(c.Image())); err == nil {
			if art, err := cachedArt(string(c.Image()), t.CacheDir, t.ArtWidth, t.ArtHeight, t.Color); err == nil {
				return strings.Split(art, "\n")
			}
		}
	}
	return textCard(c, t.ArtWidth, t.ArtHeight)
}

// textCard draws a box with the rank in the corners and the suit pip in the middle.
func textCard(c card.Card, width, height int) []string {
	if width < 7 {
		width = 7
	}
	if height < 5 {
		height = 5
	}
	inner := width - 2

	rank := rankLabel(c)
	if r := []rune(rank); len(r) > inner {
		rank = string(r[:inner])
	}
	pad := inner - len([]rune(rank))
	pip := c.Suit().Symbol()
	paint := suitColor(c.Suit()).Sprint

	lines := make([]string, 0, height)
	lines = append(lines, "┌"+strings.Repeat("─", inner)+"┐")
	for row := 1; row < height-1; row++ {
		body := strings.Repeat(" ", inner)
		switch row {
		case 1:
			body = paint(rank) + strings.Repeat(" ", pad)
		case height / 2:
			pad := (inner - 1) / 2
			body = strings.Repeat(" ", pad) + paint(pip) + strings.Repeat(" ", inner-pad-1)
		case height - 2:
			body = strings.Repeat(" ", pad) + paint(rank)
		}
		lines = append(lines, "│"+body+"│")
	}
	lines = append(lines, "└"+strings.Repeat("─", inner)+"┘")
	return lines
}

// rankLabel is the corner index of a card: the rank code for standard cards,
// the parsed name for other numeric ranks.
func rankLabel(c card.Card) string {
	if code := card.Code(c); code != "" {
		_, rank := card.SplitName(code)
		return rank
	}
	if c.Value() == card.InvalidValue {
		return "?"
	}
	return c.Name()
}

func suitColor(s card.Suit) *colorize.Color {
	switch {
	case s.Red():
		return colorize.New(colorize.FgHiRed)
	case s.Valid():
		return colorize.New(colorize.FgHiWhite)
	default:
		return colorize.New(colorize.FgYellow)
	}
}

func label(player string, c card.Card) string {
	return colorize.CyanString(player+": ") + suitColor(c.Suit()).Sprint(c.String())
}

func outcome(o game.Outcome) string {
	if o == game.Tie {
		return colorize.HiYellowString(o.String())
	}
	return colorize.HiGreenString(o.String())
}

// sideBySide lays out two blocks of lines in columns.
func sideBySide(left, right []string) []string {
	leftWidth := 0
	for _, line := range left {
		if w := visibleWidth(line); w > leftWidth {
			leftWidth = w
		}
	}
	startCol := leftWidth + spacing

	rows := max(len(left), len(right))
	out := make([]string, 0, rows)
	for i := 0; i < rows; i++ {
		var line string
		if i < len(left) {
			line = left[i] + strings.Repeat(" ", startCol-visibleWidth(left[i]))
		} else {
			line = strings.Repeat(" ", startCol)
		}
		if i < len(right) {
			line += right[i]
		}
		out = append(out, strings.TrimRight(line, " "))
	}
	return out
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var result []string
	var currentLine string
	for _, word := range words {
		if len(currentLine) == 0 {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}
