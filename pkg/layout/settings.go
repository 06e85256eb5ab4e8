package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/cardsheet/pkg/errors"
)

// =============================================================================
// Back Mode
// =============================================================================

// BackMode selects how back pages are produced.
type BackMode int

const (
	// NoBack produces front pages only.
	NoBack BackMode = iota
	// SameBack reuses a single back image for every card.
	SameBack
	// UniqueBack pairs the i-th back image with the i-th front image.
	UniqueBack
)

// String returns the mode name used in settings files and flags.
func (m BackMode) String() string {
	switch m {
	case NoBack:
		return "none"
	case SameBack:
		return "same"
	case UniqueBack:
		return "unique"
	default:
		return fmt.Sprintf("BackMode(%d)", int(m))
	}
}

// Valid reports whether m is one of the declared modes.
func (m BackMode) Valid() bool {
	return m >= NoBack && m <= UniqueBack
}

// ParseBackMode accepts a mode name or the integer codes 0, 1 and 2.
func ParseBackMode(s string) (BackMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "none", "no", "nobacks", "noback":
		return NoBack, nil
	case "same", "sameback":
		return SameBack, nil
	case "unique", "uniqueback", "uniquebacks":
		return UniqueBack, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if m := BackMode(n); m.Valid() {
			return m, nil
		}
	}
	return NoBack, errors.New(errors.ErrCodeInvalidSettings, "invalid back mode %q (must be none, same or unique)", s)
}

// =============================================================================
// Color
// =============================================================================

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

var (
	// Black is the default border color.
	Black = Color{}
	// GuideGray is the stroke color of cutting guide lines.
	GuideGray = Color{R: 0.5, G: 0.5, B: 0.5}
)

// RGB8 returns the color scaled to 0..255.
func (c Color) RGB8() (r, g, b uint8) {
	to8 := func(v float64) uint8 { return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255)) }
	return to8(c.R), to8(c.G), to8(c.B)
}

// ParseColor parses "r,g,b" with components in [0, 1].
func ParseColor(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Color{}, errors.New(errors.ErrCodeInvalidSettings, "invalid color %q (want r,g,b)", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, errors.Wrap(errors.ErrCodeInvalidSettings, err, "invalid color %q", s)
		}
		v[i] = f
	}
	c := Color{R: v[0], G: v[1], B: v[2]}
	return c, c.check()
}

func (c Color) check() error {
	for _, comp := range []struct {
		name string
		v    float64
	}{{"red", c.R}, {"green", c.G}, {"blue", c.B}} {
		if err := errors.ValidateColorComponent(comp.name, comp.v); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Settings
// =============================================================================

// Settings describes one run. All lengths are millimeters.
type Settings struct {
	PageWidth  float64
	PageHeight float64
	CardWidth  float64
	CardHeight float64
	Bleed      float64

	Rows    int
	Columns int

	HasBorder   bool
	BorderWidth float64
	BorderColor Color

	GuideLineWidth float64
	ShowGuideLines bool

	BackMode BackMode
}

// Default values match an A4 sheet of 3×3 poker-size cards.
const (
	DefaultPageWidth      = 210.0
	DefaultPageHeight     = 297.0
	DefaultCardWidth      = 63.0
	DefaultCardHeight     = 88.0
	DefaultRows           = 3
	DefaultColumns        = 3
	DefaultGuideLineWidth = 0.1
)

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		PageWidth:      DefaultPageWidth,
		PageHeight:     DefaultPageHeight,
		CardWidth:      DefaultCardWidth,
		CardHeight:     DefaultCardHeight,
		Rows:           DefaultRows,
		Columns:        DefaultColumns,
		BorderColor:    Black,
		GuideLineWidth: DefaultGuideLineWidth,
		ShowGuideLines: true,
		BackMode:       NoBack,
	}
}

// Capacity is the number of slots on one page.
func (s Settings) Capacity() int {
	return s.Rows * s.Columns
}

// Check verifies field-level invariants: at least one row and column,
// non-negative finite lengths, color components in range and a known back
// mode. It does not check that the grid fits; see [Validate].
func (s Settings) Check() error {
	if s.Rows < 1 {
		return errors.New(errors.ErrCodeInvalidSettings, "rows must be at least 1, got %d", s.Rows)
	}
	if s.Columns < 1 {
		return errors.New(errors.ErrCodeInvalidSettings, "columns must be at least 1, got %d", s.Columns)
	}

	lengths := []struct {
		name string
		v    float64
	}{
		{"page width", s.PageWidth},
		{"page height", s.PageHeight},
		{"card width", s.CardWidth},
		{"card height", s.CardHeight},
		{"bleed", s.Bleed},
		{"border width", s.BorderWidth},
		{"guide line width", s.GuideLineWidth},
	}
	for _, l := range lengths {
		if math.IsNaN(l.v) || math.IsInf(l.v, 0) || l.v < 0 {
			return errors.New(errors.ErrCodeInvalidSettings, "%s must be a non-negative number, got %g", l.name, l.v)
		}
	}

	if err := s.BorderColor.check(); err != nil {
		return err
	}
	if !s.BackMode.Valid() {
		return errors.New(errors.ErrCodeInvalidSettings, "unknown back mode %d", int(s.BackMode))
	}
	return nil
}
