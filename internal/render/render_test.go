package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	colorize "github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/warcards/internal/card"
	"github.com/arcanaland/warcards/internal/game"
)

func TestMain(m *testing.M) {
	colorize.NoColor = true
	os.Exit(m.Run())
}

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestStripAnsi(t *testing.T) {
	assert.Equal(t, "▀", stripAnsi("\x1b[38;2;1;2;3m\x1b[48;2;4;5;6m▀\x1b[0m"))
	assert.Equal(t, 3, visibleWidth("\x1b[31m♥10\x1b[0m"))
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, []string{""}, wrapText("   ", 20))
	assert.Equal(t, []string{"a classic French", "deck"}, wrapText("a classic French deck", 16))
}

func TestTextCard(t *testing.T) {
	lines := textCard(card.New(12, "Queen", card.Hearts, "HQ"), 9, 5)
	assert.Equal(t, []string{
		"┌───────┐",
		"│Q      │",
		"│   ♥   │",
		"│      Q│",
		"└───────┘",
	}, lines)

	bad := textCard(card.New(card.InvalidValue, card.InvalidName, card.InvalidSuit, ""), 9, 5)
	assert.Equal(t, "│?      │", bad[1])
}

func TestTextCardWideRank(t *testing.T) {
	long, err := card.Parse("C123456789012345678", "")
	require.NoError(t, err)

	lines := textCard(long, 16, 12)
	require.Len(t, lines, 12)
	for _, line := range lines {
		assert.Equal(t, 16, visibleWidth(line), line)
	}
	assert.Equal(t, "│12345678901234│", lines[1])

	mid, _ := card.Parse("H100000", "")
	lines = textCard(mid, 7, 5)
	assert.Equal(t, "│10000│", lines[1])
	assert.Equal(t, "│10000│", lines[3])

	var out bytes.Buffer
	term := &Terminal{Out: &out, ArtWidth: 16, ArtHeight: 12}
	require.NoError(t, term.ShowRound(game.Round{Number: 1, Player1: long, Player2: mid}))
	assert.Contains(t, out.String(), "Player 1: 123456789012345678 of Clubs")
}

func TestRankLabel(t *testing.T) {
	for asset, want := range map[string]string{"HQ": "Q", "S10": "10", "C11": "11", "D42": "42", "X7": "7", "C1.5": "?"} {
		c, _ := card.Parse(asset, "")
		assert.Equal(t, want, rankLabel(c), asset)
	}
}

func TestSideBySide(t *testing.T) {
	out := sideBySide([]string{"ab", "a"}, []string{"x", "y", "z"})
	assert.Equal(t, []string{"ab    x", "a     y", "      z"}, out)
}

func TestImageToAnsi(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	art, err := imageToAnsi(img, 2, 2, true)
	require.NoError(t, err)

	lines := strings.Split(art, "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, "▀▀", stripAnsi(line))
	}

	_, err = imageToAnsi(img, 0, 2, true)
	assert.Error(t, err)

	plain, err := imageToAnsi(img, 2, 2, false)
	require.NoError(t, err)
	assert.Equal(t, "  \n  ", plain, "a black image shades to blanks")
	assert.NotContains(t, plain, "\x1b")
}

func TestShade(t *testing.T) {
	black := color.RGBA{A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	grey := color.RGBA{R: 100, G: 100, B: 100, A: 255}
	light := color.RGBA{R: 160, G: 160, B: 160, A: 255}

	assert.Equal(t, ' ', shade(black, black))
	assert.Equal(t, '░', shade(grey, grey))
	assert.Equal(t, '░', shade(black, white))
	assert.Equal(t, '▒', shade(light, light))
	assert.Equal(t, '▓', shade(white, white))
}

func TestCachedArtKeysOnColor(t *testing.T) {
	imagePath := writePNG(t, t.TempDir(), "D9.png")
	cacheDir := t.TempDir()

	colored, err := cachedArt(imagePath, cacheDir, 2, 2, true)
	require.NoError(t, err)
	plain, err := cachedArt(imagePath, cacheDir, 2, 2, false)
	require.NoError(t, err)

	assert.Contains(t, colored, "\x1b[")
	assert.NotContains(t, plain, "\x1b[")
}

func TestCachedArt(t *testing.T) {
	imagePath := writePNG(t, t.TempDir(), "HQ.png")
	cacheDir := filepath.Join(t.TempDir(), "art")

	art, err := cachedArt(imagePath, cacheDir, 4, 3, true)
	require.NoError(t, err)
	assert.Len(t, strings.Split(art, "\n"), 3)

	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	again, err := cachedArt(imagePath, cacheDir, 4, 3, true)
	require.NoError(t, err)
	assert.Equal(t, art, again)

	uncached, err := cachedArt(imagePath, "", 4, 3, true)
	require.NoError(t, err)
	assert.Equal(t, art, uncached)

	_, err = cachedArt(filepath.Join(t.TempDir(), "missing.png"), "", 4, 3, true)
	assert.Error(t, err)
}

func TestTerminalShowRound(t *testing.T) {
	var out bytes.Buffer
	term := &Terminal{Out: &out, ArtWidth: 9, ArtHeight: 5}

	err := term.ShowRound(game.Round{
		Number:      3,
		Player1:     card.New(10, "10", card.Hearts, "H10"),
		Player2:     card.New(5, "5", card.Clubs, "C5"),
		Outcome:     game.Player1Wins,
		Replenished: true,
		Remaining:   40,
	})
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "Round 3")
	assert.Contains(t, s, "Player 1: 10 of Hearts")
	assert.Contains(t, s, "Player 2: 5 of Clubs")
	assert.Contains(t, s, "Player 1 Wins!")
	assert.Contains(t, s, "a new one was shuffled")
	assert.Contains(t, s, "Cards left: 40")
	assert.Contains(t, s, "│10     │")
	assert.Contains(t, s, "│5      │")
}

func TestTerminalArtFromImage(t *testing.T) {
	imagePath := writePNG(t, t.TempDir(), "SA.png")

	var out bytes.Buffer
	term := &Terminal{Out: &out, ArtWidth: 4, ArtHeight: 2, Art: true, Color: true}
	c := card.New(14, "Ace", card.Spades, card.Image(imagePath))

	face := term.face(c)
	require.Len(t, face, 2)
	assert.Equal(t, "▀▀▀▀", stripAnsi(face[0]))

	require.NoError(t, term.ShowCard(c, "Classic", "A plain deck of cards"))
	assert.Contains(t, out.String(), "Card: Ace of Spades")
	assert.Contains(t, out.String(), "Code: SA")
	assert.Contains(t, out.String(), "A plain deck of cards")
}

func TestTerminalReset(t *testing.T) {
	var out bytes.Buffer
	term := &Terminal{Out: &out}
	require.NoError(t, term.Reset())
	assert.Contains(t, out.String(), "New deck shuffled")
}
