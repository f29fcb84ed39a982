package combat

import (
	"fmt"

	"github.com/wojtekolesinski/battleships-solo/board"
	"github.com/wojtekolesinski/battleships-solo/models"
)

var ErrInvalidTarget = fmt.Errorf("%w: cell was already attacked", models.ErrRejected)

// Score is the attacker's running tally against one board.
type Score struct {
	Hits  int
	Shots int
}

func (s Score) Accuracy() float64 {
	if s.Shots == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Shots) * 100
}

func (s Score) Data() models.ScoreData {
	return models.ScoreData{Hits: s.Hits, Shots: s.Shots, Accuracy: s.Accuracy()}
}

// Resolver applies shots to a board. The attacker wins once its hits reach
// the number of ship cells on the target.
type Resolver struct {
	total int
}

func NewResolver(totalCells int) Resolver {
	return Resolver{total: totalCells}
}

// Attack fires at c. On error neither the board nor the score change.
func (r Resolver) Attack(target *board.Board, score *Score, c models.Coord) (models.Outcome, error) {
	cell, err := target.Get(c)
	if err != nil {
		return models.OutcomeNone, err
	}
	if cell.Resolved() {
		return models.OutcomeNone, ErrInvalidTarget
	}

	score.Shots++
	if cell != models.Ship {
		if err := target.Set(c, models.Miss); err != nil {
			return models.OutcomeNone, err
		}
		return models.OutcomeMiss, nil
	}

	if err := target.Set(c, models.Hit); err != nil {
		return models.OutcomeNone, err
	}
	score.Hits++
	if score.Hits == r.total {
		return models.OutcomeGameWon, nil
	}
	return models.OutcomeHit, nil
}
