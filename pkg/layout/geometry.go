package layout

// Unit conversion constants. Settings are millimeters; PDF output is points.
const (
	MillimetersPerInch = 25.4
	PointsPerInch      = 72.0

	// PointsPerMillimeter is the single factor used at the render boundary.
	PointsPerMillimeter = PointsPerInch / MillimetersPerInch
)

// ToPoints converts millimeters to PostScript points.
func ToPoints(mm float64) float64 { return mm * PointsPerMillimeter }

// Point is a position in page millimeters, y-up.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle whose (X, Y) is the bottom-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y + r.H }

// Contains reports whether o lies entirely within r.
func (r Rect) Contains(o Rect) bool {
	const eps = 1e-9
	return o.X >= r.X-eps && o.Y >= r.Y-eps && o.Right() <= r.Right()+eps && o.Top() <= r.Top()+eps
}

// Line is a straight segment between two points.
type Line struct {
	X1, Y1 float64
	X2, Y2 float64
}

// Placement is the footprint of one grid slot: its base (bottom-left)
// position and the total card+bleed+border size.
type Placement struct {
	Row, Col int
	Base     Point
	Width    float64
	Height   float64
}

// Footprint returns the placement as a rectangle.
func (p Placement) Footprint() Rect {
	return Rect{X: p.Base.X, Y: p.Base.Y, W: p.Width, H: p.Height}
}

// TotalSlotWidth is the card width plus bleed and border on both sides.
func TotalSlotWidth(s Settings) float64 {
	return s.CardWidth + 2*s.Bleed + 2*s.BorderWidth
}

// TotalSlotHeight is the card height plus bleed and border on both sides.
func TotalSlotHeight(s Settings) float64 {
	return s.CardHeight + 2*s.Bleed + 2*s.BorderWidth
}

// GridWidth is Columns × TotalSlotWidth, without seam adjustment.
func GridWidth(s Settings) float64 { return float64(s.Columns) * TotalSlotWidth(s) }

// GridHeight is Rows × TotalSlotHeight, without seam adjustment.
func GridHeight(s Settings) float64 { return float64(s.Rows) * TotalSlotHeight(s) }

// GridOrigin returns the top-left corner of the grid. X is the left edge
// and Y the top edge, chosen so the grid is centered on the page.
func GridOrigin(s Settings) Point {
	return Point{
		X: (s.PageWidth - GridWidth(s)) / 2,
		Y: s.PageHeight - (s.PageHeight-GridHeight(s))/2,
	}
}

// SlotBase returns the bottom-left corner of slot (row, col).
func SlotBase(s Settings, row, col int) Point {
	o := GridOrigin(s)
	return Point{
		X: o.X + float64(col)*TotalSlotWidth(s),
		Y: o.Y - float64(row+1)*TotalSlotHeight(s),
	}
}

// PlaceSlot returns the placement of slot (row, col).
func PlaceSlot(s Settings, row, col int) Placement {
	return Placement{
		Row:    row,
		Col:    col,
		Base:   SlotBase(s, row, col),
		Width:  TotalSlotWidth(s),
		Height: TotalSlotHeight(s),
	}
}

// BorderRect returns the rectangle the border is stroked along. It is inset
// from the footprint by the bleed plus half the border width, so a stroke of
// BorderWidth exactly covers the border band around the card.
func BorderRect(s Settings, base Point) Rect {
	inset := s.Bleed + s.BorderWidth/2
	return Rect{
		X: base.X + inset,
		Y: base.Y + inset,
		W: s.CardWidth + s.BorderWidth,
		H: s.CardHeight + s.BorderWidth,
	}
}

// ImageRect returns where the card image is drawn: inset by bleed and the
// full border width, sized exactly CardWidth × CardHeight.
func ImageRect(s Settings, base Point) Rect {
	inset := s.Bleed + s.BorderWidth
	return Rect{
		X: base.X + inset,
		Y: base.Y + inset,
		W: s.CardWidth,
		H: s.CardHeight,
	}
}

// GuideLines returns the cutting guides: Columns+1 vertical lines on the
// slot boundaries running the full page height, then Rows+1 horizontal
// lines running the full page width.
func GuideLines(s Settings) []Line {
	o := GridOrigin(s)
	w, h := TotalSlotWidth(s), TotalSlotHeight(s)

	lines := make([]Line, 0, s.Columns+s.Rows+2)
	for col := 0; col <= s.Columns; col++ {
		x := o.X + float64(col)*w
		lines = append(lines, Line{X1: x, Y1: 0, X2: x, Y2: s.PageHeight})
	}
	for row := 0; row <= s.Rows; row++ {
		y := o.Y - float64(row)*h
		lines = append(lines, Line{X1: 0, Y1: y, X2: s.PageWidth, Y2: y})
	}
	return lines
}
