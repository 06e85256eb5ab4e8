package sink

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/images"
	"github.com/matzehuels/cardsheet/pkg/layout"
)

// JSONOption configures the JSON draw log.
type JSONOption func(*JSON)

// WithJSONTitle records the document title.
func WithJSONTitle(title string) JSONOption { return func(j *JSON) { j.log.Title = title } }

// WithJSONRunID records the run identifier.
func WithJSONRunID(id string) JSONOption { return func(j *JSON) { j.log.RunID = id } }

// JSON records every drawing call. It never touches image files.
type JSON struct {
	log DrawLog
}

// DrawLog is the document written by [JSON.Save].
type DrawLog struct {
	RunID string    `json:"run_id,omitempty"`
	Title string    `json:"title,omitempty"`
	Pages []LogPage `json:"pages"`
}

// LogPage is one page of a [DrawLog].
type LogPage struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Ops    []LogOp `json:"ops"`
}

// LogOp is one drawing call. Op is "image", "rect" or "line".
type LogOp struct {
	Op        string        `json:"op"`
	Image     string        `json:"image,omitempty"`
	Rect      *layout.Rect  `json:"rect,omitempty"`
	Line      *layout.Line  `json:"line,omitempty"`
	Color     *layout.Color `json:"color,omitempty"`
	LineWidth float64       `json:"line_width,omitempty"`
}

// NewJSON creates an empty draw log.
func NewJSON(opts ...JSONOption) *JSON {
	j := &JSON{log: DrawLog{Pages: []LogPage{}}}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Log returns the calls recorded so far.
func (j *JSON) Log() DrawLog { return j.log }

func (j *JSON) BeginPage(width, height float64) error {
	j.log.Pages = append(j.log.Pages, LogPage{Width: width, Height: height, Ops: []LogOp{}})
	return nil
}

func (j *JSON) DrawImage(ref images.Ref, r layout.Rect) error {
	return j.add(LogOp{Op: "image", Image: ref.Path, Rect: &r})
}

func (j *JSON) StrokeRect(r layout.Rect, c layout.Color, lineWidth float64) error {
	return j.add(LogOp{Op: "rect", Rect: &r, Color: &c, LineWidth: lineWidth})
}

func (j *JSON) StrokeLine(l layout.Line, c layout.Color, lineWidth float64) error {
	return j.add(LogOp{Op: "line", Line: &l, Color: &c, LineWidth: lineWidth})
}

// Save writes the log as indented JSON.
func (j *JSON) Save(path string) error {
	return writeFile(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(j.log)
	})
}

func (j *JSON) add(op LogOp) error {
	if len(j.log.Pages) == 0 {
		return errors.New(errors.ErrCodeInternal, "draw before BeginPage")
	}
	p := &j.log.Pages[len(j.log.Pages)-1]
	p.Ops = append(p.Ops, op)
	return nil
}
