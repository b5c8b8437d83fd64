package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/arcanaland/warcards/internal/card"
)

// DefaultImageDir is used when the manifest does not name one.
const DefaultImageDir = "cards"

// ImageExtensions are the file types recognised as card faces.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}

// Manifest is the decoded deck.toml of an on-disk deck.
type Manifest struct {
	Deck DeckSection `toml:"deck"`
}

type DeckSection struct {
	ID            string `toml:"id"`
	Name          string `toml:"name"`
	Version       string `toml:"version"`
	SchemaVersion string `toml:"schema_version"`
	Author        string `toml:"author"`
	Description   string `toml:"description"`
	ImageDir      string `toml:"image_dir"`
	Blank         string `toml:"blank"`
	CardBack      string `toml:"card_back"`
}

// Dir is a deck stored on disk: a deck.toml manifest next to a directory of
// face images named <SuitCode><Rank>.<ext>.
type Dir struct {
	ID          string
	Name        string
	Version     string
	Author      string
	Description string
	Path        string

	manifest Manifest
}

// ReadManifest decodes deck.toml from deckPath.
func ReadManifest(deckPath string) (Manifest, error) {
	var m Manifest

	manifestPath := filepath.Join(deckPath, "deck.toml")
	if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
		return m, fmt.Errorf("deck.toml not found in %s", deckPath)
	}

	if _, err := toml.DecodeFile(manifestPath, &m); err != nil {
		return m, fmt.Errorf("error parsing deck.toml: %w", err)
	}
	return m, nil
}

// LoadDir loads an on-disk deck.
func LoadDir(deckPath string) (*Dir, error) {
	m, err := ReadManifest(deckPath)
	if err != nil {
		return nil, err
	}

	d := &Dir{
		ID:          m.Deck.ID,
		Name:        m.Deck.Name,
		Version:     m.Deck.Version,
		Author:      m.Deck.Author,
		Description: m.Deck.Description,
		Path:        deckPath,
		manifest:    m,
	}

	if _, err := os.Stat(d.ImagePath()); err != nil {
		return nil, fmt.Errorf("image directory not found: %w", err)
	}

	return d, nil
}

// ImagePath is the directory holding the face images.
func (d *Dir) ImagePath() string {
	dir := d.manifest.Deck.ImageDir
	if dir == "" {
		dir = DefaultImageDir
	}
	return filepath.Join(d.Path, dir)
}

// BlankName is the placeholder name declared by the manifest.
func (d *Dir) BlankName() string {
	if d.manifest.Deck.Blank != "" {
		return d.manifest.Deck.Blank
	}
	return BlankName
}

// CardBack returns the path of the card back image, if the manifest has one.
func (d *Dir) CardBack() (card.Image, bool) {
	if d.manifest.Deck.CardBack == "" {
		return "", false
	}
	return card.Image(filepath.Join(d.Path, d.manifest.Deck.CardBack)), true
}

// Assets lists the face images in lexical file order. The manifest's blank
// placeholder is reported under BlankName.
func (d *Dir) Assets() ([]Asset, error) {
	entries, err := os.ReadDir(d.ImagePath())
	if err != nil {
		return nil, fmt.Errorf("error reading image directory: %w", err)
	}

	var out []Asset
	for _, entry := range entries {
		if entry.IsDir() || !IsImage(entry.Name()) {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if name == d.BlankName() {
			name = BlankName
		}
		out = append(out, Asset{
			Name:  name,
			Image: card.Image(filepath.Join(d.ImagePath(), entry.Name())),
		})
	}
	return out, nil
}

// IsImage reports whether the file name has a recognised image extension.
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
