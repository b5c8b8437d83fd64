package render

import (
	"crypto/md5"
	"fmt"
	"image"
	"image/color" // This is the standard library color package
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// cachedArt returns ANSI art for the image at imagePath, generating it into
// cacheDir on first use. An empty cacheDir disables caching.
func cachedArt(imagePath, cacheDir string, width, height int, use256Colors bool) (string, error) {
	if cacheDir == "" {
		img, err := decodeImage(imagePath)
		if err != nil {
			return "", err
		}
		return imageToAnsi(img, width, height, use256Colors)
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create ANSI cache directory: %w", err)
	}

	// Create a cache filename based on the image path and size
	key := fmt.Sprintf("%s@%dx%d/%t", imagePath, width, height, use256Colors)
	cachePath := filepath.Join(cacheDir, fmt.Sprintf("%x.ansi", md5.Sum([]byte(key))))

	if data, err := os.ReadFile(cachePath); err == nil {
		return string(data), nil
	}

	if err := generateAnsiArt(imagePath, cachePath, width, height, use256Colors); err != nil {
		return "", fmt.Errorf("failed to generate ANSI art: %w", err)
	}

	data, err := os.ReadFile(cachePath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeImage(imagePath string) (image.Image, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// generateAnsiArt converts an image file to ANSI art and saves it to the specified output path
func generateAnsiArt(imagePath, outputPath string, width, height int, use256Colors bool) error {
	img, err := decodeImage(imagePath)
	if err != nil {
		return err
	}

	ansiArt, err := imageToAnsi(img, width, height, use256Colors)
	if err != nil {
		return fmt.Errorf("failed to convert image to ANSI: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(ansiArt), 0644); err != nil {
		return fmt.Errorf("failed to write ANSI art to file: %w", err)
	}

	return nil
}

// imageToAnsi converts an image to ANSI art, one half-block per 2x2 pixels.
func imageToAnsi(img image.Image, width, height int, use256Colors bool) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid art size %dx%d", width, height)
	}

	// Resize image to desired dimensions (doubled for half-block characters)
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			col1, _ := colorful.MakeColor(getColorAt(resized, x, y))
			col2, _ := colorful.MakeColor(getColorAt(resized, x+1, y))
			col3, _ := colorful.MakeColor(getColorAt(resized, x, y+1))
			col4, _ := colorful.MakeColor(getColorAt(resized, x+1, y+1))

			// Top pixels as foreground, bottom pixels as background
			fg := colorfulToColor(averageColor(col1, col2))
			bg := colorfulToColor(averageColor(col3, col4))

			buffer.WriteString(ansiColorString('▀', fg, bg, use256Colors))
		}
		if y+2 < height*2 {
			buffer.WriteString("\n")
		}
	}

	return buffer.String(), nil
}

// getColorAt returns the color at a specific coordinate
func getColorAt(img image.Image, x, y int) color.Color {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		return img.At(x, y)
	}
	return color.RGBA{0, 0, 0, 255} // Return black for out-of-bounds
}

// averageColor calculates the average of multiple colors
func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

// colorfulToColor converts a colorful.Color to a standard color.Color
func colorfulToColor(c colorful.Color) color.Color {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// ansiColorString formats a character with ANSI color codes
func ansiColorString(char rune, fg, bg color.Color, use256Colors bool) string {
	r1, g1, b1, _ := fg.RGBA()
	r2, g2, b2, _ := bg.RGBA()

	// Convert from uint32 to uint8 (RGBA() returns values in range 0-65535)
	r1, g1, b1 = r1>>8, g1>>8, b1>>8
	r2, g2, b2 = r2>>8, g2>>8, b2>>8

	if use256Colors {
		return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
			r1, g1, b1, r2, g2, b2, char)
	}

	// Without color, shade by brightness.
	return string(shade(fg, bg))
}

// shade picks a block character for the mean luminance of two colors.
func shade(fg, bg color.Color) rune {
	y1 := color.GrayModel.Convert(fg).(color.Gray).Y
	y2 := color.GrayModel.Convert(bg).(color.Gray).Y
	switch mean := (int(y1) + int(y2)) / 2; {
	case mean < 64:
		return ' '
	case mean < 128:
		return '░'
	case mean < 192:
		return '▒'
	default:
		return '▓'
	}
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

// visibleWidth counts printed runes, ignoring escape sequences.
func visibleWidth(s string) int {
	return len([]rune(stripAnsi(s)))
}
