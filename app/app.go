package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	gui "github.com/grupawp/warships-gui/v2"
	"github.com/wojtekolesinski/battleships-solo/models"
)

// Game is the part of game.Game the front end drives.
type Game interface {
	SelectCell(side models.Side, row, col int) (models.Outcome, error)
	ToggleReveal() bool
	Reset()
	Turn() models.TurnState
	Snapshot() models.Snapshot
	Subscribe(fn func(models.Snapshot)) func()
}

type App struct {
	game   Game
	ui     *ui
	logger *log.Logger
}

func New(g Game, logger *log.Logger) *App {
	return &App{
		game:   g,
		logger: logger,
	}
}

// Run draws the game and feeds board clicks into it until ctx is cancelled,
// the window is closed or the game reports a broken invariant.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.ui = newUi()
	unsubscribe := a.game.Subscribe(a.ui.render)
	defer unsubscribe()
	a.ui.render(a.game.Snapshot())

	errCh := make(chan error, 2)
	go a.listen(ctx, cancel, models.Human, a.ui.playerBoard, errCh)
	go a.listen(ctx, cancel, models.Computer, a.ui.computerBoard, errCh)

	a.logger.Info("app [Run]", "msg", "starting ui")
	a.ui.gui.Start(ctx, nil)
	cancel()

	select {
	case err := <-errCh:
		return fmt.Errorf("app.Run: %w", err)
	default:
		return nil
	}
}

func (a *App) listen(ctx context.Context, cancel context.CancelFunc, side models.Side, board *gui.Board, errCh chan<- error) {
	for {
		coords := board.Listen(ctx)
		if ctx.Err() != nil {
			return
		}
		c, err := parseCoords(coords)
		if err != nil {
			a.logger.Warn("app [listen]", "side", side, "err", err)
			continue
		}
		if err := a.handleClick(side, c); err != nil {
			a.logger.Error("app [listen]", "side", side, "coord", c, "err", err)
			errCh <- err
			cancel()
			return
		}
	}
}

// handleClick routes a click on side's board. Rejected moves are logged and
// ignored; only broken invariants are returned.
func (a *App) handleClick(side models.Side, c models.Coord) error {
	switch turn := a.game.Turn(); {
	case turn == models.GameOver:
		a.logger.Info("app [handleClick]", "msg", "new game")
		a.game.Reset()
		return nil
	case side == models.Human && turn != models.AwaitingPlacement:
		reveal := a.game.ToggleReveal()
		a.logger.Debug("app [handleClick]", "reveal", reveal)
		return nil
	}

	outcome, err := a.game.SelectCell(side, c.Row, c.Col)
	switch {
	case errors.Is(err, models.ErrRejected):
		a.logger.Debug("app [handleClick]", "side", side, "coord", formatCoords(c), "rejected", err)
		return nil
	case err != nil:
		return err
	}
	a.logger.Info("app [handleClick]", "side", side, "coord", formatCoords(c), "outcome", outcome)
	return nil
}
