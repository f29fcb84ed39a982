package fleet

import (
	"fmt"

	"github.com/wojtekolesinski/battleships-solo/board"
	"github.com/wojtekolesinski/battleships-solo/models"
	"github.com/wojtekolesinski/battleships-solo/random"
)

const maxPlacementAttempts = 10000

// AutoPlace puts a ship of every length on b at random. Ships may touch but
// never overlap.
func AutoPlace(b *board.Board, lengths []int, rnd random.Random) ([]Ship, error) {
	ships := make([]Ship, 0, len(lengths))
	for _, length := range lengths {
		ship, err := randomSlot(b, length, rnd)
		if err != nil {
			return ships, fmt.Errorf("fleet.AutoPlace: length %d: %w", length, err)
		}
		for _, c := range ship.Coords {
			if err := b.Set(c, models.Ship); err != nil {
				return ships, fmt.Errorf("fleet.AutoPlace: %w", err)
			}
		}
		ships = append(ships, ship)
	}
	return ships, nil
}

func randomSlot(b *board.Board, length int, rnd random.Random) (Ship, error) {
	for i := 0; i < maxPlacementAttempts; i++ {
		o := board.Horizontal
		if rnd.Intn(2) == 1 {
			o = board.Vertical
		}
		origin := models.Coord{Row: rnd.Intn(models.BoardSize), Col: rnd.Intn(models.BoardSize)}
		if ship := NewShip(origin, o, length); fits(b, ship) {
			return ship, nil
		}
	}

	// sampling gave up, take the first slot that fits
	for row := 0; row < models.BoardSize; row++ {
		for col := 0; col < models.BoardSize; col++ {
			for _, o := range []board.Orientation{board.Horizontal, board.Vertical} {
				if ship := NewShip(models.Coord{Row: row, Col: col}, o, length); fits(b, ship) {
					return ship, nil
				}
			}
		}
	}
	return Ship{}, ErrNoPlacement
}
