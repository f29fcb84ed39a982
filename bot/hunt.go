package bot

import (
	"github.com/wojtekolesinski/battleships-solo/board"
	"github.com/wojtekolesinski/battleships-solo/models"
	"github.com/wojtekolesinski/battleships-solo/random"
)

// hunter shoots at random until it scores a hit, then works along the hit
// ship: first the neighbours of the hit, then both ends of the line once a
// second hit fixes the orientation.
type hunter struct {
	rnd    random.Random
	target board.Run
}

func newHunter(rnd random.Random) *hunter {
	return &hunter{rnd: rnd}
}

func (h *hunter) Name() string { return KindHunt }

func (h *hunter) Next(shots Shots) (models.Coord, error) {
	if h.target.Len() > 0 {
		candidates := h.target.Candidates(func(c models.Coord) bool {
			return !shots.Resolved(c)
		})
		if len(candidates) > 0 {
			return candidates[h.rnd.Intn(len(candidates))], nil
		}
		// both ends are blocked: the ship is done, or it was not a line
		h.target.Reset()
	}
	return randomShot(shots, h.rnd)
}

func (h *hunter) Record(c models.Coord, outcome models.Outcome) {
	switch outcome {
	case models.OutcomeHit:
		if !h.target.Accepts(c) {
			h.target.Reset()
		}
		h.target.Add(c)
	case models.OutcomeGameWon:
		h.target.Reset()
	}
}

func (h *hunter) Reset() {
	h.target.Reset()
}
