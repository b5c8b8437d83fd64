package validator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arcanaland/warcards/internal/assets"
	"github.com/arcanaland/warcards/internal/card"
)

const schemaVersion = "1.0"

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	DeckPath string
	Results  ValidationResults
}

func NewValidator(deckPath string) *Validator {
	return &Validator{
		DeckPath: deckPath,
		Results:  ValidationResults{},
	}
}

// Validate checks the manifest and the face images of the deck. The error is
// only set when the manifest cannot be read at all; everything else is
// reported in the results.
func (v *Validator) Validate() (ValidationResults, error) {
	m, err := assets.ReadManifest(v.DeckPath)
	if err != nil {
		return v.Results, err
	}
	v.validateManifest(m)

	d, err := assets.LoadDir(v.DeckPath)
	if err != nil {
		v.errorf("%v", err)
		return v.Results, nil
	}

	v.validateCardBack(d)
	v.validateFaces(d)

	return v.Results, nil
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

func (v *Validator) validateManifest(m assets.Manifest) {
	if m.Deck.ID == "" {
		v.errorf("deck.id is required in deck.toml")
	}

	if m.Deck.Name == "" {
		v.errorf("deck.name is required in deck.toml")
	}

	if m.Deck.Version == "" {
		v.errorf("deck.version is required in deck.toml")
	}

	if m.Deck.SchemaVersion == "" {
		v.errorf("deck.schema_version is required in deck.toml")
	} else if m.Deck.SchemaVersion != schemaVersion {
		v.errorf("unsupported schema_version: %s (supported: %s)", m.Deck.SchemaVersion, schemaVersion)
	}
}

func (v *Validator) validateCardBack(d *assets.Dir) {
	back, ok := d.CardBack()
	if !ok {
		v.warnf("no card_back declared in deck.toml")
		return
	}
	if _, err := os.Stat(string(back)); os.IsNotExist(err) {
		v.errorf("card back image not found: %s", back)
	}
}

// validateFaces checks that the image directory holds one blank and exactly
// the 52 cards of a standard deck, each with a parseable name.
func (v *Validator) validateFaces(d *assets.Dir) {
	set, err := d.Assets()
	if err != nil {
		v.errorf("%v", err)
		return
	}

	type key struct {
		value int
		suit  card.Suit
	}

	blanks := 0
	seen := map[key]string{}
	for _, a := range set {
		file := filepath.Base(string(a.Image))
		if a.Name == assets.BlankName {
			blanks++
			continue
		}

		suitCode, rank := card.SplitName(a.Name)
		c, err := card.Parse(a.Name, a.Image)
		switch {
		case errors.Is(err, card.ErrInvalidSuit) && errors.Is(err, card.ErrInvalidRank):
			v.errorf("%s: unrecognised suit and rank", file)
			continue
		case errors.Is(err, card.ErrInvalidSuit):
			v.errorf("%s: unrecognised suit code %q", file, suitCode)
			continue
		case errors.Is(err, card.ErrInvalidRank):
			v.errorf("%s: unrecognised rank %q", file, rank)
			continue
		}

		if c.Value() < 2 || c.Value() > 14 {
			v.errorf("%s: rank %d out of range 2-14", file, c.Value())
			continue
		}

		if card.Code(c) != a.Name {
			v.warnf("%s: non-canonical rank %q", file, rank)
		}
		k := key{c.Value(), c.Suit()}
		if prev, ok := seen[k]; ok {
			v.errorf("duplicate card %d of %s: %s and %s", c.Value(), c.Suit(), prev, file)
			continue
		}
		seen[k] = file
	}

	switch {
	case blanks == 0:
		v.errorf("blank placeholder %q not found in %s", d.BlankName(), d.ImagePath())
	case blanks > 1:
		v.errorf("found %d blank placeholders, expected one", blanks)
	}

	var missing []string
	for _, name := range assets.StandardNames() {
		if name == assets.BlankName {
			continue
		}
		want, _ := card.Parse(name, "")
		if _, ok := seen[key{want.Value(), want.Suit()}]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		v.errorf("missing cards: %s", strings.Join(missing, ", "))
	}
}
