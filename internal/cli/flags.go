package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardsheet/pkg/config"
	"github.com/matzehuels/cardsheet/pkg/layout"
)

// settingsFlags holds the layout flags shared by generate and check. A flag
// overrides the settings file only when it was given on the command line.
type settingsFlags struct {
	path string

	paper      string
	pageWidth  float64
	pageHeight float64

	card       string
	cardWidth  float64
	cardHeight float64
	bleed      float64

	rows    int
	columns int

	border      bool
	borderWidth float64
	borderColor string

	guides     bool
	guideWidth float64

	backMode string
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	d := layout.DefaultSettings()
	fs := cmd.Flags()

	fs.StringVar(&f.path, "settings", "", "settings file (default $CARDSHEET_SETTINGS or "+config.DefaultFile+")")

	fs.StringVar(&f.paper, "paper", "", "page size preset: a3, a4, a5, letter, legal, tabloid (suffix -landscape to rotate)")
	fs.Float64Var(&f.pageWidth, "page-width", d.PageWidth, "page width in mm")
	fs.Float64Var(&f.pageHeight, "page-height", d.PageHeight, "page height in mm")

	fs.StringVar(&f.card, "card", "", "card size preset: poker, bridge, tarot, mini, square")
	fs.Float64Var(&f.cardWidth, "card-width", d.CardWidth, "card width in mm")
	fs.Float64Var(&f.cardHeight, "card-height", d.CardHeight, "card height in mm")
	fs.Float64Var(&f.bleed, "bleed", d.Bleed, "margin around each card in mm")

	fs.IntVar(&f.rows, "rows", d.Rows, "cards per column")
	fs.IntVar(&f.columns, "columns", d.Columns, "cards per row")

	fs.BoolVar(&f.border, "border", d.HasBorder, "draw a border around each card")
	fs.Float64Var(&f.borderWidth, "border-width", d.BorderWidth, "border width in mm")
	fs.StringVar(&f.borderColor, "border-color", "0,0,0", "border color as r,g,b in [0,1]")

	fs.BoolVar(&f.guides, "guides", d.ShowGuideLines, "draw cutting guide lines")
	fs.Float64Var(&f.guideWidth, "guide-width", d.GuideLineWidth, "guide line width in mm")

	fs.StringVar(&f.backMode, "back-mode", d.BackMode.String(), "back pages: none, same, unique")
}

// settings loads the settings file and applies explicitly set flags.
// Presets apply before the explicit dimensions, so --paper a4 --page-width 200
// yields a 200×297 page.
func (f *settingsFlags) settings(cmd *cobra.Command) (layout.Settings, error) {
	path := f.path
	if path == "" {
		path = config.DefaultPath()
	}
	s, err := config.Load(path)
	if err != nil {
		return layout.Settings{}, err
	}
	loggerFromContext(cmd.Context()).Debug("loaded settings", "path", path)

	changed := cmd.Flags().Changed

	if changed("paper") {
		sz, err := layout.LookupSize(layout.PaperSizes, f.paper)
		if err != nil {
			return layout.Settings{}, err
		}
		s.PageWidth, s.PageHeight = sz.Width, sz.Height
	}
	if changed("card") {
		sz, err := layout.LookupSize(layout.CardSizes, f.card)
		if err != nil {
			return layout.Settings{}, err
		}
		s.CardWidth, s.CardHeight = sz.Width, sz.Height
	}

	floats := []struct {
		name string
		dst  *float64
		v    float64
	}{
		{"page-width", &s.PageWidth, f.pageWidth},
		{"page-height", &s.PageHeight, f.pageHeight},
		{"card-width", &s.CardWidth, f.cardWidth},
		{"card-height", &s.CardHeight, f.cardHeight},
		{"bleed", &s.Bleed, f.bleed},
		{"border-width", &s.BorderWidth, f.borderWidth},
		{"guide-width", &s.GuideLineWidth, f.guideWidth},
	}
	for _, fl := range floats {
		if changed(fl.name) {
			*fl.dst = fl.v
		}
	}

	if changed("rows") {
		s.Rows = f.rows
	}
	if changed("columns") {
		s.Columns = f.columns
	}
	if changed("border") {
		s.HasBorder = f.border
	}
	if changed("guides") {
		s.ShowGuideLines = f.guides
	}
	if changed("border-color") {
		c, err := layout.ParseColor(f.borderColor)
		if err != nil {
			return layout.Settings{}, err
		}
		s.BorderColor = c
	}
	if changed("back-mode") {
		m, err := layout.ParseBackMode(f.backMode)
		if err != nil {
			return layout.Settings{}, err
		}
		s.BackMode = m
	}
	return s, nil
}
