package game

import (
	"fmt"

	"github.com/wojtekolesinski/battleships-solo/models"
)

// fire resolves attacker's shot at the opponent's board and moves the turn
// on. Callers hold mu.
func (g *Game) fire(attacker models.Side, c models.Coord) (models.Outcome, error) {
	outcome, err := g.resolver.Attack(g.boards[attacker.Opponent()], &g.scores[attacker], c)
	if err != nil {
		return models.OutcomeNone, err
	}
	g.logger.Info("game [fire]", "game", g.id, "attacker", attacker, "coord", c, "outcome", outcome)

	if attacker == models.Computer {
		shot := c
		g.lastShot = &shot
	}

	switch {
	case outcome == models.OutcomeGameWon:
		g.turn = models.GameOver
		g.winner = attacker
		g.cancelPending()
		g.logger.Info("game [fire]", "game", g.id, "msg", "game over", "winner", attacker)
	case attacker == models.Human:
		g.turn = models.ComputerTurn
		if err := g.scheduleComputerMove(); err != nil {
			return outcome, fmt.Errorf("game.fire: %w", err)
		}
	default:
		g.turn = models.PlayerTurn
	}
	return outcome, nil
}

// scheduleComputerMove picks the computer's target now and fires it after
// the configured delay. Callers hold mu.
func (g *Game) scheduleComputerMove() error {
	target, err := g.strategy.Next(g.boards[models.Human])
	if err != nil {
		g.logger.Error("game [scheduleComputerMove]", "game", g.id, "err", err)
		return err
	}

	gen := g.generation
	g.pending = g.clock.AfterFunc(g.delay, func() {
		g.playComputerMove(gen, target)
	})
	g.logger.Debug("game [scheduleComputerMove]", "game", g.id, "target", target, "delay", g.delay)
	return nil
}

func (g *Game) playComputerMove(gen uint64, target models.Coord) {
	g.mu.Lock()
	if gen != g.generation || g.turn != models.ComputerTurn {
		g.mu.Unlock()
		return
	}
	g.pending = nil

	outcome, err := g.fire(models.Computer, target)
	if err != nil {
		g.logger.Error("game [playComputerMove]", "game", g.id, "target", target, "err", err)
		g.mu.Unlock()
		return
	}
	g.strategy.Record(target, outcome)
	g.unlockAndNotify()
}

// cancelPending drops a scheduled computer move. A callback already running
// sees the new generation and does nothing. Callers hold mu.
func (g *Game) cancelPending() {
	if g.pending != nil {
		g.pending.Stop()
		g.pending = nil
	}
	g.generation++
}
