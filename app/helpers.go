package app

import (
	"fmt"
	"strconv"
	"strings"

	gui "github.com/grupawp/warships-gui/v2"
	"github.com/wojtekolesinski/battleships-solo/models"
)

// parseCoords turns a board label like "B7" into a coordinate: the letter is
// the column, the number the row counted from 1.
func parseCoords(coords string) (models.Coord, error) {
	if len(coords) < 2 {
		return models.Coord{}, fmt.Errorf("app.parseCoords: invalid coords %q", coords)
	}
	col := int(coords[0] - 'A')
	row, err := strconv.Atoi(coords[1:])
	if err != nil {
		return models.Coord{}, fmt.Errorf("app.parseCoords: %w", err)
	}
	c := models.Coord{Row: row - 1, Col: col}
	if !c.InBounds() {
		return models.Coord{}, fmt.Errorf("app.parseCoords: coords %q out of bounds", coords)
	}
	return c, nil
}

func formatCoords(c models.Coord) string {
	return fmt.Sprintf("%c%d", 'A'+rune(c.Col), c.Row+1)
}

// toStates converts a board view to the column-major layout the board
// widget draws.
func toStates(view models.BoardView) [models.BoardSize][models.BoardSize]gui.State {
	var states [models.BoardSize][models.BoardSize]gui.State
	for row := range view {
		for col, cell := range view[row] {
			states[col][row] = toState(cell.Shown())
		}
	}
	return states
}

func toState(cell models.Cell) gui.State {
	switch cell {
	case models.Ship:
		return gui.Ship
	case models.Hit:
		return gui.Hit
	case models.Miss:
		return gui.Miss
	default:
		return gui.Empty
	}
}

func formatAccuracy(score models.ScoreData) string {
	return fmt.Sprintf("Accuracy: %.2f%% (%d/%d)", score.Accuracy, score.Hits, score.Shots)
}

func formatHint(snap models.Snapshot) string {
	if snap.Turn != models.AwaitingPlacement || len(snap.Placement.NextMoves) == 0 {
		return ""
	}
	labels := make([]string, 0, len(snap.Placement.NextMoves))
	for _, c := range snap.Placement.NextMoves {
		labels = append(labels, formatCoords(c))
	}
	return "Next segment: " + strings.Join(labels, " ")
}
