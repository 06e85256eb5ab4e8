// Package paginate splits an ordered set of card images into grid pages.
//
// Pagination walks a cursor over the front images. Each step fills one
// front page row by row, left to right, until the grid is full or the
// fronts run out, and then (unless the run has no backs) builds the back
// page for exactly the same fronts. Slot (row, col) on a back page always
// holds the back of the front at (row, col) on the preceding front page, so
// a duplex print lines up when folded or cut.
//
// The cursor is plain state passed in and returned by [Next]; nothing is
// kept between calls. [Pages] wraps Next as a lazy iterator that yields
// pages in document order while holding only the current pair.
package paginate

import (
	"iter"

	"github.com/matzehuels/cardsheet/pkg/images"
	"github.com/matzehuels/cardsheet/pkg/layout"
)

// Side distinguishes front pages from back pages.
type Side int

const (
	Front Side = iota
	Back
)

func (s Side) String() string {
	if s == Back {
		return "back"
	}
	return "front"
}

// Slot is one populated grid cell.
type Slot struct {
	Row, Col  int
	Placement layout.Placement
	Image     images.Ref
	Border    bool
}

// Page describes one physical page. Slots are in row-major order.
type Page struct {
	Number     int // 1-based position in the document
	Side       Side
	Slots      []Slot
	GuideLines bool
}

// Pair is a front page and, when the run has backs, its back page.
type Pair struct {
	Front Page
	Back  *Page
}

// Next builds the pair that starts at cursor and returns it together with
// the advanced cursor. s must have passed [layout.Validate] and cursor must
// be in [0, len(set.Fronts)). The returned cursor equals len(set.Fronts)
// after the last page. An empty grid or a cursor out of range yields an
// empty pair and the cursor unchanged.
func Next(s layout.Settings, set images.Set, cursor int) (Pair, int) {
	capacity := s.Capacity()
	if capacity <= 0 || cursor < 0 || cursor >= len(set.Fronts) {
		return Pair{}, cursor
	}
	start := cursor
	number := 1 + (start/capacity)*pagesPerStep(set)

	front := Page{Number: number, Side: Front, GuideLines: s.ShowGuideLines}
	front.Slots = fill(s, capacity, len(set.Fronts)-start, func(i int) images.Ref {
		return set.Fronts[start+i]
	})
	cursor = start + len(front.Slots)

	pair := Pair{Front: front}
	if !set.HasBacks() {
		return pair, cursor
	}

	back := Page{Number: number + 1, Side: Back, GuideLines: s.ShowGuideLines}
	back.Slots = fill(s, capacity, cursor-start, func(i int) images.Ref {
		ref, _ := set.Backs.BackFor(start + i)
		return ref
	})
	pair.Back = &back
	return pair, cursor
}

// fill places up to n images, bounded by the grid capacity.
func fill(s layout.Settings, capacity, n int, image func(i int) images.Ref) []Slot {
	n = min(n, capacity)
	if n <= 0 {
		return nil
	}
	slots := make([]Slot, 0, n)
	for i := 0; i < n; i++ {
		row, col := i/s.Columns, i%s.Columns
		slots = append(slots, Slot{
			Row:       row,
			Col:       col,
			Placement: layout.PlaceSlot(s, row, col),
			Image:     image(i),
			Border:    s.HasBorder,
		})
	}
	return slots
}

func pagesPerStep(set images.Set) int {
	if set.HasBacks() {
		return 2
	}
	return 1
}

// Pairs yields every pair of the run in order.
func Pairs(s layout.Settings, set images.Set) iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		if s.Capacity() <= 0 {
			return
		}
		for cursor := 0; cursor < len(set.Fronts); {
			var pair Pair
			pair, cursor = Next(s, set, cursor)
			if !yield(pair) {
				return
			}
		}
	}
}

// Pages yields every page of the run in document order: front, back,
// front, back, ... or only fronts when the run has no backs.
func Pages(s layout.Settings, set images.Set) iter.Seq[Page] {
	return func(yield func(Page) bool) {
		for pair := range Pairs(s, set) {
			if !yield(pair.Front) {
				return
			}
			if pair.Back != nil && !yield(*pair.Back) {
				return
			}
		}
	}
}

// PageCount returns how many front and back pages a run of n fronts
// produces, without building them.
func PageCount(s layout.Settings, n int, mode layout.BackMode) (fronts, backs int) {
	capacity := s.Capacity()
	if capacity <= 0 || n <= 0 {
		return 0, 0
	}
	fronts = (n + capacity - 1) / capacity
	if mode != layout.NoBack {
		backs = fronts
	}
	return fronts, backs
}
