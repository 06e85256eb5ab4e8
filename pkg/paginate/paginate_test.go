package paginate

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/cardsheet/pkg/images"
	"github.com/matzehuels/cardsheet/pkg/layout"
)

func refs(prefix string, n int) []images.Ref {
	out := make([]images.Ref, n)
	for i := range out {
		out[i] = images.Ref{Path: fmt.Sprintf("%s/%03d.png", prefix, i), Ext: "png"}
	}
	return out
}

func slotCounts(pages []Page, side Side) []int {
	var counts []int
	for _, p := range pages {
		if p.Side == side {
			counts = append(counts, len(p.Slots))
		}
	}
	return counts
}

func TestPagesNoBack(t *testing.T) {
	s := layout.DefaultSettings()
	set := images.Set{Fronts: refs("front", 28), Backs: images.NoBacks{}}

	pages := slices.Collect(Pages(s, set))

	if diff := cmp.Diff([]int{9, 9, 9, 1}, slotCounts(pages, Front)); diff != "" {
		t.Errorf("front slot counts (-want +got):\n%s", diff)
	}
	if got := slotCounts(pages, Back); got != nil {
		t.Errorf("back pages = %v, want none", got)
	}
	for i, p := range pages {
		if p.Number != i+1 {
			t.Errorf("page %d has Number %d", i, p.Number)
		}
	}
}

func TestPagesUniqueBack(t *testing.T) {
	s := layout.DefaultSettings()
	s.BackMode = layout.UniqueBack
	fronts := refs("front", 28)
	backs := refs("back", 30)
	set := images.Set{Fronts: fronts, Backs: images.SequenceBacks(backs)}

	pages := slices.Collect(Pages(s, set))
	if len(pages) != 8 {
		t.Fatalf("len(pages) = %d, want 8", len(pages))
	}

	for i, p := range pages {
		want := Front
		if i%2 == 1 {
			want = Back
		}
		if p.Side != want || p.Number != i+1 {
			t.Errorf("page %d = %v #%d, want %v #%d", i, p.Side, p.Number, want, i+1)
		}
	}

	wantCounts := []int{9, 9, 9, 1}
	if diff := cmp.Diff(wantCounts, slotCounts(pages, Front)); diff != "" {
		t.Errorf("front slot counts (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantCounts, slotCounts(pages, Back)); diff != "" {
		t.Errorf("back slot counts (-want +got):\n%s", diff)
	}

	// Back slot (row, col) carries the back of the front at the same cell.
	for i := 0; i < len(pages); i += 2 {
		front, back := pages[i], pages[i+1]
		for j, fs := range front.Slots {
			bs := back.Slots[j]
			if fs.Row != bs.Row || fs.Col != bs.Col {
				t.Errorf("page %d slot %d: back at (%d,%d), front at (%d,%d)", i, j, bs.Row, bs.Col, fs.Row, fs.Col)
			}
			if fs.Placement != bs.Placement {
				t.Errorf("page %d slot %d: placements differ", i, j)
			}
			idx := slices.Index(fronts, fs.Image)
			if bs.Image != backs[idx] {
				t.Errorf("front %s paired with %s, want %s", fs.Image, bs.Image, backs[idx])
			}
		}
	}

	// Extra backs are never used.
	for _, p := range pages {
		for _, sl := range p.Slots {
			if sl.Image == backs[28] || sl.Image == backs[29] {
				t.Errorf("unused back %s was placed", sl.Image)
			}
		}
	}
}

func TestPagesPartialSecondPage(t *testing.T) {
	s := layout.DefaultSettings()
	s.BackMode = layout.UniqueBack
	set := images.Set{Fronts: refs("front", 10), Backs: images.SequenceBacks(refs("back", 10))}

	pages := slices.Collect(Pages(s, set))
	if diff := cmp.Diff([]int{9, 1}, slotCounts(pages, Front)); diff != "" {
		t.Errorf("front slot counts (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{9, 1}, slotCounts(pages, Back)); diff != "" {
		t.Errorf("back slot counts (-want +got):\n%s", diff)
	}
	last := pages[len(pages)-1]
	if last.Slots[0].Image.Path != "back/009.png" {
		t.Errorf("last back = %s, want back/009.png", last.Slots[0].Image)
	}
}

func TestPagesSameBack(t *testing.T) {
	s := layout.DefaultSettings()
	s.BackMode = layout.SameBack
	one := images.Ref{Path: "back.png", Ext: "png"}

	for _, n := range []int{1, 5, 9, 10, 27} {
		set := images.Set{Fronts: refs("front", n), Backs: images.SingleBack{Ref: one}}
		placed := 0
		for p := range Pages(s, set) {
			if p.Side != Back {
				continue
			}
			for _, sl := range p.Slots {
				placed++
				if sl.Image != one {
					t.Errorf("n=%d: back slot holds %s", n, sl.Image)
				}
			}
		}
		if placed != n {
			t.Errorf("n=%d: %d back slots, want %d", n, placed, n)
		}
	}
}

func TestNextCursor(t *testing.T) {
	s := layout.DefaultSettings()
	tests := []struct {
		n    int
		want []int
	}{
		{1, []int{1}},
		{9, []int{9}},
		{10, []int{9, 10}},
		{28, []int{9, 18, 27, 28}},
	}
	for _, tt := range tests {
		set := images.Set{Fronts: refs("front", tt.n), Backs: images.NoBacks{}}
		var cursors []int
		for cursor := 0; cursor < len(set.Fronts); {
			_, cursor = Next(s, set, cursor)
			if cursor > len(set.Fronts) {
				t.Fatalf("n=%d: cursor %d exceeds %d", tt.n, cursor, len(set.Fronts))
			}
			cursors = append(cursors, cursor)
		}
		if diff := cmp.Diff(tt.want, cursors); diff != "" {
			t.Errorf("n=%d: cursors (-want +got):\n%s", tt.n, diff)
		}
	}
}

func TestNextIsPure(t *testing.T) {
	s := layout.DefaultSettings()
	s.BackMode = layout.UniqueBack
	set := images.Set{Fronts: refs("front", 20), Backs: images.SequenceBacks(refs("back", 20))}

	a, ca := Next(s, set, 9)
	b, cb := Next(s, set, 9)
	if ca != cb || ca != 18 {
		t.Errorf("cursors = %d, %d, want 18", ca, cb)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Next() not reproducible (-first +second):\n%s", diff)
	}
	if a.Front.Number != 3 || a.Back.Number != 4 {
		t.Errorf("numbers = %d, %d, want 3, 4", a.Front.Number, a.Back.Number)
	}
}

func TestNextOutOfRange(t *testing.T) {
	set := images.Set{Fronts: refs("front", 4), Backs: images.NoBacks{}}
	empty := layout.DefaultSettings()
	empty.Rows = 0

	tests := []struct {
		name   string
		s      layout.Settings
		cursor int
	}{
		{"no rows", empty, 0},
		{"negative cursor", layout.DefaultSettings(), -1},
		{"cursor at end", layout.DefaultSettings(), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, cursor := Next(tt.s, set, tt.cursor)
			if cursor != tt.cursor {
				t.Errorf("cursor = %d, want %d", cursor, tt.cursor)
			}
			if diff := cmp.Diff(Pair{}, pair); diff != "" {
				t.Errorf("pair (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSlotLayout(t *testing.T) {
	s := layout.DefaultSettings()
	s.Rows, s.Columns = 2, 3
	s.HasBorder = true
	s.BorderWidth = 1
	s.ShowGuideLines = false
	set := images.Set{Fronts: refs("front", 5), Backs: images.NoBacks{}}

	pair, _ := Next(s, set, 0)
	var cells [][2]int
	for _, sl := range pair.Front.Slots {
		cells = append(cells, [2]int{sl.Row, sl.Col})
		if !sl.Border {
			t.Errorf("slot (%d,%d) has no border directive", sl.Row, sl.Col)
		}
		if sl.Placement != layout.PlaceSlot(s, sl.Row, sl.Col) {
			t.Errorf("slot (%d,%d) placement differs from PlaceSlot", sl.Row, sl.Col)
		}
	}
	want := [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}}
	if diff := cmp.Diff(want, cells); diff != "" {
		t.Errorf("cells (-want +got):\n%s", diff)
	}
	if pair.Front.GuideLines {
		t.Error("GuideLines = true, want false")
	}
	if pair.Back != nil {
		t.Error("Back != nil without backs")
	}
}

func TestPagesStopsEarly(t *testing.T) {
	s := layout.DefaultSettings()
	set := images.Set{Fronts: refs("front", 100), Backs: images.NoBacks{}}

	n := 0
	for range Pages(s, set) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("consumed %d pages, want 2", n)
	}
}

func TestPageCount(t *testing.T) {
	s := layout.DefaultSettings()
	tests := []struct {
		n         int
		mode      layout.BackMode
		wantFront int
		wantBack  int
	}{
		{0, layout.NoBack, 0, 0},
		{1, layout.NoBack, 1, 0},
		{9, layout.SameBack, 1, 1},
		{10, layout.UniqueBack, 2, 2},
		{27, layout.NoBack, 3, 0},
		{28, layout.SameBack, 4, 4},
	}
	for _, tt := range tests {
		f, b := PageCount(s, tt.n, tt.mode)
		if f != tt.wantFront || b != tt.wantBack {
			t.Errorf("PageCount(%d, %v) = %d, %d, want %d, %d", tt.n, tt.mode, f, b, tt.wantFront, tt.wantBack)
		}
	}
}
