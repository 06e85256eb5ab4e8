package render

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/images"
	"github.com/matzehuels/cardsheet/pkg/layout"
	"github.com/matzehuels/cardsheet/pkg/paginate"
)

type recorder struct {
	calls  []string
	failOn string
	err    error
}

func (r *recorder) record(op string) error {
	r.calls = append(r.calls, op)
	if op == r.failOn {
		return r.err
	}
	return nil
}

func (r *recorder) BeginPage(w, h float64) error {
	return r.record(fmt.Sprintf("page %.0fx%.0f", w, h))
}

func (r *recorder) DrawImage(ref images.Ref, rect layout.Rect) error {
	return r.record(fmt.Sprintf("image %s", ref.Name()))
}

func (r *recorder) StrokeRect(rect layout.Rect, c layout.Color, w float64) error {
	return r.record(fmt.Sprintf("rect %.1f", w))
}

func (r *recorder) StrokeLine(l layout.Line, c layout.Color, w float64) error {
	if c != layout.GuideGray {
		return fmt.Errorf("guide line color %v", c)
	}
	return r.record("line")
}

func (r *recorder) Save(string) error { return r.record("save") }

func testPage(s layout.Settings, n int) paginate.Page {
	set := images.Set{Backs: images.NoBacks{}}
	for i := 0; i < n; i++ {
		set.Fronts = append(set.Fronts, images.Ref{Path: fmt.Sprintf("cards/%d.png", i), Ext: "png"})
	}
	pair, _ := paginate.Next(s, set, 0)
	return pair.Front
}

func TestDrawPageOrder(t *testing.T) {
	s := layout.DefaultSettings()
	s.Rows, s.Columns = 1, 2
	s.HasBorder = true
	s.BorderWidth = 0.5

	r := &recorder{}
	if err := DrawPage(r, s, testPage(s, 2)); err != nil {
		t.Fatalf("DrawPage() error = %v", err)
	}

	want := []string{
		"page 210x297",
		"line", "line", "line", // columns + 1
		"line", "line", // rows + 1
		"rect 0.5", "image 0.png",
		"rect 0.5", "image 1.png",
	}
	if diff := cmp.Diff(want, r.calls); diff != "" {
		t.Errorf("calls (-want +got):\n%s", diff)
	}
}

func TestDrawPageNoDecorations(t *testing.T) {
	s := layout.DefaultSettings()
	s.ShowGuideLines = false
	s.HasBorder = true
	s.BorderWidth = 0

	r := &recorder{}
	if err := DrawPage(r, s, testPage(s, 1)); err != nil {
		t.Fatalf("DrawPage() error = %v", err)
	}
	want := []string{"page 210x297", "image 0.png"}
	if diff := cmp.Diff(want, r.calls); diff != "" {
		t.Errorf("calls (-want +got):\n%s", diff)
	}
}

func TestDrawPageErrors(t *testing.T) {
	s := layout.DefaultSettings()
	s.ShowGuideLines = false

	t.Run("plain error becomes render error", func(t *testing.T) {
		r := &recorder{failOn: "image 0.png", err: stderrors.New("disk full")}
		err := DrawPage(r, s, testPage(s, 3))
		if !errors.Is(err, errors.ErrCodeRender) {
			t.Fatalf("error = %v, want RENDER_ERROR", err)
		}
		if len(r.calls) != 2 {
			t.Errorf("calls after failure = %v", r.calls)
		}
	})

	t.Run("coded error passes through", func(t *testing.T) {
		r := &recorder{failOn: "image 1.png", err: errors.New(errors.ErrCodeDecode, "bad image")}
		err := DrawPage(r, s, testPage(s, 3))
		if !errors.Is(err, errors.ErrCodeDecode) {
			t.Fatalf("error = %v, want DECODE_ERROR", err)
		}
	})
}
