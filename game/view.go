package game

import (
	"fmt"

	"github.com/wojtekolesinski/battleships-solo/board"
	"github.com/wojtekolesinski/battleships-solo/models"
)

func (g *Game) ID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.id
}

func (g *Game) Turn() models.TurnState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.turn
}

// Winner reports the winning side once the game is over.
func (g *Game) Winner() (models.Side, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.winner, g.turn == models.GameOver
}

func (g *Game) Reveal() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reveal
}

func (g *Game) StatusText() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.statusText()
}

func (g *Game) statusText() string {
	switch g.turn {
	case models.AwaitingPlacement:
		return fmt.Sprintf("Placing ship %d/%d of %d spaces", g.placer.ShipIndex()+1, g.placer.ShipCount(), g.placer.CurrentLength())
	case models.PlayerTurn:
		return "Turn: Player"
	case models.ComputerTurn:
		return "Turn: CPU"
	default:
		return "Game Over: Winner " + g.winner.String()
	}
}

// CellView returns what side's board shows at (row, col). The human board is
// always revealed; the computer board only while reveal is on.
func (g *Game) CellView(side models.Side, row, col int) (models.CellView, error) {
	if !side.Valid() {
		return models.CellView{}, fmt.Errorf("game.CellView: %w: %d", ErrInvalidSide, side)
	}
	c := models.Coord{Row: row, Col: col}

	g.mu.Lock()
	defer g.mu.Unlock()

	status, err := g.boards[side].Get(c)
	if err != nil {
		return models.CellView{}, fmt.Errorf("game.CellView: %w", err)
	}
	view := models.CellView{
		Status:   status,
		Revealed: g.revealed(side),
	}
	if side == models.Human && g.turn == models.AwaitingPlacement {
		for _, next := range g.placer.LegalNextMoves() {
			if next == c {
				view.Hint = true
				break
			}
		}
	}
	return view, nil
}

// LegalNextMoves lists the cells that would extend the ship being placed.
// It is empty outside placement and for the computer board.
func (g *Game) LegalNextMoves(side models.Side) ([]models.Coord, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("game.LegalNextMoves: %w: %d", ErrInvalidSide, side)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if side != models.Human || g.turn != models.AwaitingPlacement {
		return nil, nil
	}
	return g.placer.LegalNextMoves(), nil
}

func (g *Game) Snapshot() models.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

func (g *Game) revealed(side models.Side) bool {
	return side == models.Human || g.reveal
}

// snapshot copies the current state. Callers hold mu.
func (g *Game) snapshot() models.Snapshot {
	snap := models.Snapshot{
		GameID:        g.id,
		Turn:          g.turn,
		Status:        g.statusText(),
		Reveal:        g.reveal,
		Strategy:      g.strategy.Name(),
		PlayerScore:   g.scores[models.Human].Data(),
		ComputerScore: g.scores[models.Computer].Data(),
		PlayerBoard:   boardView(g.boards[models.Human], g.revealed(models.Human)),
		ComputerBoard: boardView(g.boards[models.Computer], g.revealed(models.Computer)),
	}
	if g.turn == models.GameOver {
		snap.Winner = g.winner.String()
	}
	if g.lastShot != nil {
		shot := *g.lastShot
		snap.LastShot = &shot
	}

	if g.turn == models.AwaitingPlacement {
		next := g.placer.LegalNextMoves()
		snap.Placement = models.PlacementData{
			ShipIndex: g.placer.ShipIndex(),
			ShipCount: g.placer.ShipCount(),
			Length:    g.placer.CurrentLength(),
			Cursor:    g.placer.Cursor(),
			NextMoves: next,
		}
		for _, c := range next {
			snap.PlayerBoard[c.Row][c.Col].Hint = true
		}
	}
	return snap
}

func boardView(b *board.Board, revealed bool) models.BoardView {
	var view models.BoardView
	cells := b.Cells()
	for row := range cells {
		for col := range cells[row] {
			view[row][col] = models.CellView{Status: cells[row][col], Revealed: revealed}
		}
	}
	return view
}
