package board

import (
	"fmt"

	"github.com/wojtekolesinski/battleships-solo/models"
)

var ErrOutOfBounds = fmt.Errorf("%w: position out of bounds", models.ErrRejected)

// Board is one side's 10x10 grid.
type Board struct {
	cells [models.BoardSize][models.BoardSize]models.Cell
}

func New() *Board {
	return &Board{}
}

func (b *Board) Get(c models.Coord) (models.Cell, error) {
	if !c.InBounds() {
		return models.Empty, ErrOutOfBounds
	}
	return b.cells[c.Row][c.Col], nil
}

func (b *Board) Set(c models.Coord, state models.Cell) error {
	if !c.InBounds() {
		return ErrOutOfBounds
	}
	b.cells[c.Row][c.Col] = state
	return nil
}

// IsEmpty reports whether c is in bounds and holds neither a ship nor a shot.
func (b *Board) IsEmpty(c models.Coord) bool {
	return c.InBounds() && b.cells[c.Row][c.Col] == models.Empty
}

// Resolved reports whether c has already been hit or missed.
func (b *Board) Resolved(c models.Coord) bool {
	return c.InBounds() && b.cells[c.Row][c.Col].Resolved()
}

func (b *Board) Count(state models.Cell) int {
	n := 0
	for _, row := range b.cells {
		for _, cell := range row {
			if cell == state {
				n++
			}
		}
	}
	return n
}

// Cells returns a copy of the grid indexed [row][col].
func (b *Board) Cells() [models.BoardSize][models.BoardSize]models.Cell {
	return b.cells
}
