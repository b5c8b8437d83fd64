package assets

import (
	"github.com/arcanaland/warcards/internal/card"
)

// BlankName is the name of the placeholder face every asset set carries.
// It is not a card and is removed before parsing.
const BlankName = "Blank"

// Asset is a named card face.
type Asset struct {
	Name  string
	Image card.Image
}

// Provider enumerates the faces of a deck. Names follow the
// <SuitCode><Rank> convention plus exactly one BlankName entry.
type Provider interface {
	Assets() ([]Asset, error)
}

// Static is an in-memory Provider.
type Static []Asset

// Assets returns a copy of the set.
func (s Static) Assets() ([]Asset, error) {
	out := make([]Asset, len(s))
	copy(out, s)
	return out, nil
}

// Names builds a Static set whose images are the names themselves.
func Names(names ...string) Static {
	s := make(Static, 0, len(names))
	for _, n := range names {
		s = append(s, Asset{Name: n, Image: card.Image(n)})
	}
	return s
}

// StandardNames returns the 52 asset names of a standard deck, suit by suit,
// followed by BlankName.
func StandardNames() []string {
	names := make([]string, 0, len(card.Suits)*len(card.Ranks)+1)
	for _, s := range card.Suits {
		for _, r := range card.Ranks {
			names = append(names, string(s)[:1]+r)
		}
	}
	return append(names, BlankName)
}

// Standard is a synthetic 52-card set with no image files behind it.
func Standard() Static {
	return Names(StandardNames()...)
}
