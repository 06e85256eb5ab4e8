package layout

import (
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/cardsheet/pkg/errors"
)

// Size is a named width × height in millimeters.
type Size struct {
	Name   string
	Width  float64
	Height float64
}

// PaperSizes are the page presets accepted by --paper, portrait orientation.
var PaperSizes = map[string]Size{
	"a3":      {Name: "A3", Width: 297, Height: 420},
	"a4":      {Name: "A4", Width: 210, Height: 297},
	"a5":      {Name: "A5", Width: 148, Height: 210},
	"letter":  {Name: "Letter", Width: 215.9, Height: 279.4},
	"legal":   {Name: "Legal", Width: 215.9, Height: 355.6},
	"tabloid": {Name: "Tabloid", Width: 279.4, Height: 431.8},
}

// CardSizes are the card presets accepted by --card.
var CardSizes = map[string]Size{
	"poker":  {Name: "Poker", Width: 63, Height: 88},
	"bridge": {Name: "Bridge", Width: 57, Height: 89},
	"tarot":  {Name: "Tarot", Width: 70, Height: 120},
	"mini":   {Name: "Mini", Width: 44, Height: 63},
	"square": {Name: "Square", Width: 70, Height: 70},
}

// LookupSize finds a preset by case-insensitive name. A "-landscape" suffix
// swaps width and height.
func LookupSize(presets map[string]Size, name string) (Size, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	landscape := false
	if base, ok := strings.CutSuffix(key, "-landscape"); ok {
		key, landscape = base, true
	}
	sz, ok := presets[key]
	if !ok {
		return Size{}, errors.New(errors.ErrCodeInvalidInput, "unknown size %q (known: %s)",
			name, strings.Join(slices.Sorted(maps.Keys(presets)), ", "))
	}
	if landscape {
		sz.Width, sz.Height = sz.Height, sz.Width
	}
	return sz, nil
}
