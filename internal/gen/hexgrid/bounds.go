package hexgrid

// Bounds describes the fixed rectangular world region in hex columns
// and rows (odd-q offset layout). Axial coordinates map onto it via
// col = q, row = r + q/2, so the arena index of a coordinate is a pure
// arithmetic function and "missing key" is an ordinary bounds check.
type Bounds struct {
	Width  int
	Height int
}

// FromOffset converts a (col, row) offset position to axial.
func FromOffset(col, row int) Coord {
	return Coord{Q: col, R: row - col/2}
}

// Offset converts an axial coordinate back to (col, row). Only valid
// for q >= 0, which holds for every in-bounds coordinate.
func (b Bounds) Offset(c Coord) (col, row int) {
	return c.Q, c.R + c.Q/2
}

// Index returns the dense arena index of c and whether c is in bounds.
func (b Bounds) Index(c Coord) (int, bool) {
	if c.Q < 0 || c.Q >= b.Width {
		return 0, false
	}
	row := c.R + c.Q/2
	if row < 0 || row >= b.Height {
		return 0, false
	}
	return c.Q*b.Height + row, true
}

// CoordAt is the inverse of Index.
func (b Bounds) CoordAt(i int) Coord {
	return FromOffset(i/b.Height, i%b.Height)
}

// Contains reports whether c falls inside the world region.
func (b Bounds) Contains(c Coord) bool {
	_, ok := b.Index(c)
	return ok
}

// Len returns the arena size.
func (b Bounds) Len() int { return b.Width * b.Height }
