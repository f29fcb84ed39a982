package fleet

import (
	"errors"
	"fmt"
	"sort"

	"github.com/wojtekolesinski/battleships-solo/board"
	"github.com/wojtekolesinski/battleships-solo/models"
)

// TotalCells is the number of cells covered by a complete fleet.
const TotalCells = 18

var standardLengths = []int{5, 4, 4, 3, 2}

// Lengths returns the required ship lengths in placement order.
func Lengths() []int {
	out := make([]int, len(standardLengths))
	copy(out, standardLengths)
	return out
}

var (
	ErrFleetComplete = fmt.Errorf("%w: all ships are already placed", models.ErrRejected)
	ErrOccupied      = fmt.Errorf("%w: cell is already taken by a ship", models.ErrRejected)
	ErrShipFull      = fmt.Errorf("%w: current ship has all of its segments", models.ErrRejected)
	ErrNotAdjacent   = fmt.Errorf("%w: segment is not adjacent to the first one", models.ErrRejected)
	ErrNotNextMove   = fmt.Errorf("%w: segment does not extend the ship", models.ErrRejected)

	ErrNoPlacement = fmt.Errorf("%w: no free slot left for ship", models.ErrInvariantViolation)

	errInvalidShip = errors.New("invalid ship")
)

type Ship struct {
	Coords      []models.Coord    `json:"coords"`
	Orientation board.Orientation `json:"orientation"`
}

// NewShip lays length cells from origin to the right (horizontal) or
// downwards (vertical). The result may leave the board; see Validate.
func NewShip(origin models.Coord, o board.Orientation, length int) Ship {
	coords := make([]models.Coord, 0, length)
	for i := 0; i < length; i++ {
		if o == board.Horizontal {
			coords = append(coords, models.Coord{Row: origin.Row, Col: origin.Col + i})
		} else {
			coords = append(coords, models.Coord{Row: origin.Row + i, Col: origin.Col})
		}
	}
	return Ship{Coords: coords, Orientation: o}
}

// shipFromRun sorts the run's cells along its axis.
func shipFromRun(r *board.Run) Ship {
	coords := r.Coords()
	o := r.Orientation()
	sort.Slice(coords, func(i, j int) bool {
		if o == board.Horizontal {
			return coords[i].Col < coords[j].Col
		}
		return coords[i].Row < coords[j].Row
	})
	return Ship{Coords: coords, Orientation: o}
}

func (s Ship) Len() int {
	return len(s.Coords)
}

// Validate checks that every cell is in bounds and that the cells form one
// straight line with a unit step between neighbours.
func (s Ship) Validate() error {
	if len(s.Coords) == 0 {
		return fmt.Errorf("%w: no cells", errInvalidShip)
	}
	seen := make(map[models.Coord]bool, len(s.Coords))
	for i, c := range s.Coords {
		if !c.InBounds() {
			return fmt.Errorf("%w: cell %v out of bounds", errInvalidShip, c)
		}
		if seen[c] {
			return fmt.Errorf("%w: cell %v repeated", errInvalidShip, c)
		}
		seen[c] = true
		if i == 0 {
			continue
		}
		prev := s.Coords[i-1]
		switch s.Orientation {
		case board.Horizontal:
			if c.Row != prev.Row || c.Col-prev.Col != 1 {
				return fmt.Errorf("%w: cell %v breaks the row", errInvalidShip, c)
			}
		case board.Vertical:
			if c.Col != prev.Col || c.Row-prev.Row != 1 {
				return fmt.Errorf("%w: cell %v breaks the column", errInvalidShip, c)
			}
		default:
			return fmt.Errorf("%w: multi-cell ship without orientation", errInvalidShip)
		}
	}
	return nil
}

func fits(b *board.Board, s Ship) bool {
	for _, c := range s.Coords {
		if !b.IsEmpty(c) {
			return false
		}
	}
	return true
}
