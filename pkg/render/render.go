package render

import (
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/images"
	"github.com/matzehuels/cardsheet/pkg/layout"
	"github.com/matzehuels/cardsheet/pkg/paginate"
)

// Renderer receives drawing calls in page order. All lengths are
// millimeters; rectangles and lines use a y-up frame with the origin at the
// bottom-left page corner.
type Renderer interface {
	BeginPage(width, height float64) error
	DrawImage(ref images.Ref, r layout.Rect) error
	StrokeRect(r layout.Rect, c layout.Color, lineWidth float64) error
	StrokeLine(l layout.Line, c layout.Color, lineWidth float64) error
	Save(path string) error
}

// DrawPage emits one page to r.
func DrawPage(r Renderer, s layout.Settings, page paginate.Page) error {
	if err := r.BeginPage(s.PageWidth, s.PageHeight); err != nil {
		return wrap(err, "page %d: begin", page.Number)
	}

	if page.GuideLines {
		for _, l := range layout.GuideLines(s) {
			if err := r.StrokeLine(l, layout.GuideGray, s.GuideLineWidth); err != nil {
				return wrap(err, "page %d: guide line", page.Number)
			}
		}
	}

	for _, slot := range page.Slots {
		base := slot.Placement.Base
		if slot.Border && s.BorderWidth > 0 {
			if err := r.StrokeRect(layout.BorderRect(s, base), s.BorderColor, s.BorderWidth); err != nil {
				return wrap(err, "page %d: border at (%d,%d)", page.Number, slot.Row, slot.Col)
			}
		}
		if err := r.DrawImage(slot.Image, layout.ImageRect(s, base)); err != nil {
			return wrap(err, "page %d: image %s", page.Number, slot.Image.Name())
		}
	}
	return nil
}

// wrap keeps coded errors as they are and reports anything else as a
// render failure.
func wrap(err error, format string, args ...any) error {
	if errors.Coded(err) {
		return err
	}
	return errors.Wrap(errors.ErrCodeRender, err, format, args...)
}
