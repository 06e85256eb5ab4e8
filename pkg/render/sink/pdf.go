package sink

import (
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/images"
	"github.com/matzehuels/cardsheet/pkg/layout"
)

// PDFOption configures PDF rendering.
type PDFOption func(*PDF)

// WithPDFTitle sets the document title.
func WithPDFTitle(title string) PDFOption { return func(p *PDF) { p.title = title } }

// WithPDFCreator sets the creator metadata.
func WithPDFCreator(creator string) PDFOption { return func(p *PDF) { p.creator = creator } }

// PDF writes pages into a single PDF document. It is not safe for
// concurrent use.
type PDF struct {
	doc        *fpdf.Fpdf
	title      string
	creator    string
	pageHeight float64 // points, for flipping y
	pages      int
	registered map[string]bool
}

// NewPDF creates an empty PDF sink.
func NewPDF(opts ...PDFOption) *PDF {
	p := &PDF{registered: make(map[string]bool)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pages returns the number of pages begun so far.
func (p *PDF) Pages() int { return p.pages }

func (p *PDF) BeginPage(width, height float64) error {
	size := fpdf.SizeType{Wd: layout.ToPoints(width), Ht: layout.ToPoints(height)}
	if p.doc == nil {
		p.doc = fpdf.NewCustom(&fpdf.InitType{
			OrientationStr: "P",
			UnitStr:        "pt",
			Size:           size,
		})
		p.doc.SetAutoPageBreak(false, 0)
		p.doc.SetMargins(0, 0, 0)
		if p.title != "" {
			p.doc.SetTitle(p.title, true)
		}
		if p.creator != "" {
			p.doc.SetCreator(p.creator, true)
		}
	}
	p.doc.AddPageFormat("P", size)
	p.pageHeight = size.Ht
	p.pages++
	return p.check(errors.ErrCodeRender, "begin page %d", p.pages)
}

func (p *PDF) DrawImage(ref images.Ref, r layout.Rect) error {
	if err := p.ready(); err != nil {
		return err
	}
	opts := fpdf.ImageOptions{ImageType: imageType(ref)}
	if !p.registered[ref.Path] {
		p.doc.RegisterImageOptions(ref.Path, opts)
		if err := p.check(errors.ErrCodeDecode, "image %s", ref.Path); err != nil {
			return err
		}
		p.registered[ref.Path] = true
	}
	x, y, w, h := p.box(r)
	p.doc.ImageOptions(ref.Path, x, y, w, h, false, opts, 0, "")
	return p.check(errors.ErrCodeRender, "place image %s", ref.Path)
}

func (p *PDF) StrokeRect(r layout.Rect, c layout.Color, lineWidth float64) error {
	if err := p.ready(); err != nil {
		return err
	}
	p.pen(c, lineWidth)
	x, y, w, h := p.box(r)
	p.doc.Rect(x, y, w, h, "D")
	return p.check(errors.ErrCodeRender, "stroke rect")
}

func (p *PDF) StrokeLine(l layout.Line, c layout.Color, lineWidth float64) error {
	if err := p.ready(); err != nil {
		return err
	}
	p.pen(c, lineWidth)
	p.doc.Line(
		layout.ToPoints(l.X1), p.pageHeight-layout.ToPoints(l.Y1),
		layout.ToPoints(l.X2), p.pageHeight-layout.ToPoints(l.Y2),
	)
	return p.check(errors.ErrCodeRender, "stroke line")
}

// Save writes the document to path. A document without pages is an error.
func (p *PDF) Save(path string) error {
	if p.doc == nil || p.pages == 0 {
		return errors.New(errors.ErrCodeRender, "no pages to write to %s", path)
	}
	if err := p.doc.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "pdf document")
	}
	return writeFile(path, func(w io.Writer) error {
		return p.doc.Output(w)
	})
}

func (p *PDF) ready() error {
	if p.doc == nil {
		return errors.New(errors.ErrCodeInternal, "draw before BeginPage")
	}
	return nil
}

// box converts a y-up millimeter rect to fpdf's top-left point box.
func (p *PDF) box(r layout.Rect) (x, y, w, h float64) {
	w, h = layout.ToPoints(r.W), layout.ToPoints(r.H)
	return layout.ToPoints(r.X), p.pageHeight - layout.ToPoints(r.Y) - h, w, h
}

func (p *PDF) pen(c layout.Color, lineWidth float64) {
	r, g, b := c.RGB8()
	p.doc.SetDrawColor(int(r), int(g), int(b))
	p.doc.SetLineWidth(layout.ToPoints(lineWidth))
}

// check turns fpdf's sticky error into a coded error.
func (p *PDF) check(code errors.Code, format string, args ...any) error {
	if p.doc.Ok() {
		return nil
	}
	return errors.Wrap(code, p.doc.Error(), format, args...)
}

func imageType(ref images.Ref) string {
	if ref.IsJPEG() {
		return "JPG"
	}
	return strings.ToUpper(ref.Ext)
}
