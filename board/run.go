package board

import "github.com/wojtekolesinski/battleships-solo/models"

type Orientation uint8

const (
	Unknown Orientation = iota
	Horizontal
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Run is a straight line of coordinates built one cell at a time. It backs
// both the human placement cursor and the hunting bot's current target.
//
// The orientation is fixed once the run holds two cells; start and end are
// the extremes along that axis.
type Run struct {
	coords      []models.Coord
	orientation Orientation
	start       models.Coord
	end         models.Coord
}

func (r *Run) Len() int {
	return len(r.coords)
}

func (r *Run) Coords() []models.Coord {
	out := make([]models.Coord, len(r.coords))
	copy(out, r.coords)
	return out
}

func (r *Run) Orientation() Orientation {
	return r.orientation
}

// Extremes returns the two ends of the run. ok is false until the
// orientation is known.
func (r *Run) Extremes() (start, end models.Coord, ok bool) {
	if r.orientation == Unknown {
		return models.Coord{}, models.Coord{}, false
	}
	return r.start, r.end, true
}

func (r *Run) Reset() {
	r.coords = nil
	r.orientation = Unknown
	r.start = models.Coord{}
	r.end = models.Coord{}
}

// Accepts reports whether c may extend the run, ignoring what the board
// holds at c.
func (r *Run) Accepts(c models.Coord) bool {
	if !c.InBounds() || r.contains(c) {
		return false
	}
	switch len(r.coords) {
	case 0:
		return true
	case 1:
		return r.coords[0].Adjacent(c)
	default:
		for _, next := range r.ends() {
			if next == c {
				return true
			}
		}
		return false
	}
}

// Add appends c without validating it; call Accepts first.
func (r *Run) Add(c models.Coord) {
	r.coords = append(r.coords, c)
	switch {
	case len(r.coords) == 2:
		first, second := r.coords[0], r.coords[1]
		if first.Row == second.Row {
			r.orientation = Horizontal
		} else {
			r.orientation = Vertical
		}
		r.start, r.end = first, second
		if axis(r.orientation, second) < axis(r.orientation, first) {
			r.start, r.end = second, first
		}
	case len(r.coords) > 2:
		for _, p := range r.coords {
			if axis(r.orientation, p) < axis(r.orientation, r.start) {
				r.start = p
			}
			if axis(r.orientation, p) > axis(r.orientation, r.end) {
				r.end = p
			}
		}
	}
}

// Candidates lists the cells that may extend the run next: the four
// neighbours of a single cell, or the cells just past either extreme.
// Only in-bounds cells for which open returns true are kept.
func (r *Run) Candidates(open func(models.Coord) bool) []models.Coord {
	var moves []models.Coord
	switch len(r.coords) {
	case 0:
		return nil
	case 1:
		moves = neighbours(r.coords[0])
	default:
		moves = r.ends()
	}

	out := moves[:0]
	for _, m := range moves {
		if m.InBounds() && !r.contains(m) && open(m) {
			out = append(out, m)
		}
	}
	return out
}

func (r *Run) ends() []models.Coord {
	switch r.orientation {
	case Horizontal:
		return []models.Coord{
			{Row: r.start.Row, Col: r.start.Col - 1},
			{Row: r.end.Row, Col: r.end.Col + 1},
		}
	case Vertical:
		return []models.Coord{
			{Row: r.start.Row - 1, Col: r.start.Col},
			{Row: r.end.Row + 1, Col: r.end.Col},
		}
	default:
		return nil
	}
}

func (r *Run) contains(c models.Coord) bool {
	for _, p := range r.coords {
		if p == c {
			return true
		}
	}
	return false
}

func axis(o Orientation, c models.Coord) int {
	if o == Horizontal {
		return c.Col
	}
	return c.Row
}

func neighbours(c models.Coord) []models.Coord {
	return []models.Coord{
		{Row: c.Row - 1, Col: c.Col},
		{Row: c.Row + 1, Col: c.Col},
		{Row: c.Row, Col: c.Col - 1},
		{Row: c.Row, Col: c.Col + 1},
	}
}
