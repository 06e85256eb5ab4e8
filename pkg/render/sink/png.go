package sink

import (
	"bytes"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/images"
	"github.com/matzehuels/cardsheet/pkg/layout"
)

// DefaultPixelsPerMM is the PNG proof resolution (about 152 dpi).
const DefaultPixelsPerMM = 6.0

// PNGOption configures PNG rendering.
type PNGOption func(*PNG)

// WithPNGResolution sets pixels per millimeter. Values <= 0 keep the default.
func WithPNGResolution(ppmm float64) PNGOption {
	return func(p *PNG) {
		if ppmm > 0 {
			p.ppmm = ppmm
		}
	}
}

// PNG rasterises each page into a separate PNG proof. Finished pages are
// kept encoded; only the page being drawn is held as pixels.
type PNG struct {
	ppmm    float64
	canvas  *image.NRGBA
	decoded map[string]image.Image // cleared on every page
	encoded [][]byte
}

// NewPNG creates an empty PNG sink.
func NewPNG(opts ...PNGOption) *PNG {
	p := &PNG{ppmm: DefaultPixelsPerMM}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pages returns the number of pages begun so far.
func (p *PNG) Pages() int {
	if p.canvas != nil {
		return len(p.encoded) + 1
	}
	return len(p.encoded)
}

func (p *PNG) BeginPage(width, height float64) error {
	if err := p.flush(); err != nil {
		return err
	}
	w, h := p.px(width), p.px(height)
	if w <= 0 || h <= 0 {
		return errors.New(errors.ErrCodeRender, "page %.1fx%.1fmm is empty at %.1f px/mm", width, height, p.ppmm)
	}
	p.canvas = image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(p.canvas, p.canvas.Bounds(), image.White, image.Point{}, xdraw.Src)
	p.decoded = make(map[string]image.Image)
	return nil
}

func (p *PNG) DrawImage(ref images.Ref, r layout.Rect) error {
	if p.canvas == nil {
		return errors.New(errors.ErrCodeInternal, "draw before BeginPage")
	}
	src, ok := p.decoded[ref.Path]
	if !ok {
		img, err := imaging.Open(ref.Path, imaging.AutoOrientation(true))
		if err != nil {
			return errors.Wrap(errors.ErrCodeDecode, err, "image %s", ref.Path)
		}
		p.decoded[ref.Path] = img
		src = img
	}
	xdraw.CatmullRom.Scale(p.canvas, p.rect(r), src, src.Bounds(), xdraw.Over, nil)
	return nil
}

func (p *PNG) StrokeRect(r layout.Rect, c layout.Color, lineWidth float64) error {
	half := lineWidth / 2
	edges := []layout.Rect{
		{X: r.X - half, Y: r.Y - half, W: r.W + lineWidth, H: lineWidth},
		{X: r.X - half, Y: r.Top() - half, W: r.W + lineWidth, H: lineWidth},
		{X: r.X - half, Y: r.Y - half, W: lineWidth, H: r.H + lineWidth},
		{X: r.Right() - half, Y: r.Y - half, W: lineWidth, H: r.H + lineWidth},
	}
	for _, e := range edges {
		if err := p.fill(e, c); err != nil {
			return err
		}
	}
	return nil
}

// StrokeLine draws axis-aligned lines as filled bars. Diagonal lines are
// stamped along their length.
func (p *PNG) StrokeLine(l layout.Line, c layout.Color, lineWidth float64) error {
	half := lineWidth / 2
	switch {
	case l.X1 == l.X2:
		return p.fill(layout.Rect{X: l.X1 - half, Y: math.Min(l.Y1, l.Y2), W: lineWidth, H: math.Abs(l.Y2 - l.Y1)}, c)
	case l.Y1 == l.Y2:
		return p.fill(layout.Rect{X: math.Min(l.X1, l.X2), Y: l.Y1 - half, W: math.Abs(l.X2 - l.X1), H: lineWidth}, c)
	}
	length := math.Hypot(l.X2-l.X1, l.Y2-l.Y1)
	steps := int(math.Ceil(length * p.ppmm))
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x, y := l.X1+t*(l.X2-l.X1), l.Y1+t*(l.Y2-l.Y1)
		if err := p.fill(layout.Rect{X: x - half, Y: y - half, W: lineWidth, H: lineWidth}, c); err != nil {
			return err
		}
	}
	return nil
}

// Save writes one file per page. With a single page the file is path
// itself; otherwise pages are numbered path-001.png, path-002.png, ...
// Every page is staged before any is moved into place, and a failure
// removes the pages already moved. Numbered pages left by an earlier,
// longer save are removed once the new pages are in place.
func (p *PNG) Save(path string) error {
	if err := p.flush(); err != nil {
		return err
	}
	if len(p.encoded) == 0 {
		return errors.New(errors.ErrCodeRender, "no pages to write to %s", path)
	}

	files := p.Files(path)
	staged := make([]string, 0, len(files))
	discard := func(names []string) {
		for _, name := range names {
			os.Remove(name)
		}
	}
	for i, data := range p.encoded {
		tmp, err := stage(files[i], func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		})
		if err != nil {
			discard(staged)
			return err
		}
		staged = append(staged, tmp)
	}
	for i, tmp := range staged {
		if err := commit(tmp, files[i]); err != nil {
			discard(staged[i+1:])
			discard(files[:i])
			return err
		}
	}
	return removeStalePages(path, len(files))
}

// removeStalePages deletes numbered pages of path beyond the first n. A
// single-page save keeps no numbered pages.
func removeStalePages(path string, n int) error {
	if n == 1 {
		n = 0
	}
	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "list %s", dir)
	}
	for _, e := range entries {
		page, ok := pageNumber(path, e.Name())
		if !ok || page <= n || e.IsDir() {
			continue
		}
		stale := filepath.Join(dir, e.Name())
		if err := os.Remove(stale); err != nil {
			return errors.Wrap(errors.ErrCodeRender, err, "remove stale page %s", stale)
		}
	}
	return nil
}

// Files returns the paths Save writes for path.
func (p *PNG) Files(path string) []string {
	n := p.Pages()
	if n <= 1 {
		return []string{path}
	}
	files := make([]string, n)
	for i := range files {
		files[i] = numbered(path, i+1)
	}
	return files
}

// flush encodes the current page.
func (p *PNG) flush() error {
	if p.canvas == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, p.canvas, imaging.PNG); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "encode page %d", len(p.encoded)+1)
	}
	p.encoded = append(p.encoded, buf.Bytes())
	p.canvas = nil
	p.decoded = nil
	return nil
}

func (p *PNG) fill(r layout.Rect, c layout.Color) error {
	if p.canvas == nil {
		return errors.New(errors.ErrCodeInternal, "draw before BeginPage")
	}
	dst := p.rect(r)
	// Keep hairlines visible.
	if dst.Dx() == 0 {
		dst.Max.X = dst.Min.X + 1
	}
	if dst.Dy() == 0 {
		dst.Max.Y = dst.Min.Y + 1
	}
	r8, g8, b8 := c.RGB8()
	fill := image.NewUniform(color.NRGBA{R: r8, G: g8, B: b8, A: 255})
	xdraw.Draw(p.canvas, dst.Intersect(p.canvas.Bounds()), fill, image.Point{}, xdraw.Src)
	return nil
}

// rect converts a y-up millimeter rect into canvas pixels.
func (p *PNG) rect(r layout.Rect) image.Rectangle {
	h := p.canvas.Bounds().Dy()
	x0 := p.px(r.X)
	x1 := p.px(r.Right())
	y0 := h - p.px(r.Top())
	y1 := h - p.px(r.Y)
	return image.Rect(x0, y0, x1, y1)
}

func (p *PNG) px(mm float64) int { return int(math.Round(mm * p.ppmm)) }
