package fleet

import (
	"github.com/wojtekolesinski/battleships-solo/board"
	"github.com/wojtekolesinski/battleships-solo/models"
)

// Placer records a fleet one segment at a time, the way a player clicks it
// onto the board. Every accepted segment is drawn on the board at once.
type Placer struct {
	board   *board.Board
	lengths []int
	index   int
	cursor  board.Run
	ships   []Ship
}

func NewPlacer(b *board.Board, lengths []int) *Placer {
	return &Placer{
		board:   b,
		lengths: lengths,
		ships:   make([]Ship, 0, len(lengths)),
	}
}

func (p *Placer) Complete() bool {
	return p.index >= len(p.lengths)
}

// ShipIndex is the zero-based index of the ship being placed.
func (p *Placer) ShipIndex() int {
	return p.index
}

func (p *Placer) ShipCount() int {
	return len(p.lengths)
}

// CurrentLength is the length of the ship being placed, 0 once the fleet is complete.
func (p *Placer) CurrentLength() int {
	if p.Complete() {
		return 0
	}
	return p.lengths[p.index]
}

func (p *Placer) Cursor() []models.Coord {
	return p.cursor.Coords()
}

func (p *Placer) Ships() []Ship {
	out := make([]Ship, len(p.ships))
	copy(out, p.ships)
	return out
}

// Propose adds c to the ship being placed. It returns the finished ship when
// c was its last segment, nil otherwise. A rejected segment leaves both the
// board and the cursor untouched.
func (p *Placer) Propose(c models.Coord) (*Ship, error) {
	if p.Complete() {
		return nil, ErrFleetComplete
	}
	if !c.InBounds() {
		return nil, board.ErrOutOfBounds
	}
	if p.cursor.Len() >= p.CurrentLength() {
		return nil, ErrShipFull
	}
	if !p.board.IsEmpty(c) {
		return nil, ErrOccupied
	}
	if !p.cursor.Accepts(c) {
		if p.cursor.Len() == 1 {
			return nil, ErrNotAdjacent
		}
		return nil, ErrNotNextMove
	}

	if err := p.board.Set(c, models.Ship); err != nil {
		return nil, err
	}
	p.cursor.Add(c)

	if p.cursor.Len() < p.CurrentLength() {
		return nil, nil
	}
	ship := shipFromRun(&p.cursor)
	p.ships = append(p.ships, ship)
	p.cursor.Reset()
	p.index++
	return &ship, nil
}

// LegalNextMoves lists the cells Propose would accept next, for hinting.
// The first segment of a ship may go anywhere, so no hint is given for it.
func (p *Placer) LegalNextMoves() []models.Coord {
	if p.Complete() || p.cursor.Len() >= p.CurrentLength() {
		return nil
	}
	return p.cursor.Candidates(p.board.IsEmpty)
}
