package layout

import "github.com/matzehuels/cardsheet/pkg/errors"

// fitTolerance absorbs float noise when a grid is sized to exactly the page.
const fitTolerance = 1e-9

// Fit describes how the adjusted grid sits on the page.
type Fit struct {
	GridWidth  float64 // Columns × slot width, minus interior bleed when Columns > 1
	GridHeight float64 // Rows × slot height, minus interior bleed when Rows > 1
	SlackX     float64 // PageWidth − GridWidth; negative when the grid is too wide
	SlackY     float64 // PageHeight − GridHeight; negative when the grid is too tall
}

// Fits reports whether the grid fits on the page. Equal is a fit.
func (f Fit) Fits() bool {
	return f.SlackX >= -fitTolerance && f.SlackY >= -fitTolerance
}

// FitReport measures the grid against the page. Bleed shared by adjacent
// cards is counted once: with more than one column, 2×bleed is removed from
// the width, and likewise for rows and the height.
func FitReport(s Settings) Fit {
	w := GridWidth(s)
	h := GridHeight(s)
	if s.Columns > 1 {
		w -= 2 * s.Bleed
	}
	if s.Rows > 1 {
		h -= 2 * s.Bleed
	}
	return Fit{
		GridWidth:  w,
		GridHeight: h,
		SlackX:     s.PageWidth - w,
		SlackY:     s.PageHeight - h,
	}
}

// Validate checks field invariants and that the grid fits on the page.
// It returns a DOES_NOT_FIT error when either adjusted extent exceeds the
// corresponding page dimension.
func Validate(s Settings) error {
	if err := s.Check(); err != nil {
		return err
	}

	f := FitReport(s)
	if f.SlackX < -fitTolerance {
		return errors.New(errors.ErrCodeDoesNotFit,
			"%d column(s) need %.2fmm but the page is %.2fmm wide", s.Columns, f.GridWidth, s.PageWidth)
	}
	if f.SlackY < -fitTolerance {
		return errors.New(errors.ErrCodeDoesNotFit,
			"%d row(s) need %.2fmm but the page is %.2fmm tall", s.Rows, f.GridHeight, s.PageHeight)
	}
	return nil
}
