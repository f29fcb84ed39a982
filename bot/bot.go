package bot

import (
	"fmt"

	"github.com/wojtekolesinski/battleships-solo/models"
	"github.com/wojtekolesinski/battleships-solo/random"
)

const (
	KindRandom = "random"
	KindHunt   = "hunt"
)

// maxSamples bounds random sampling before picking from the list of
// unresolved cells directly.
const maxSamples = 1000

var (
	ErrNoTarget    = fmt.Errorf("%w: no unresolved cell left", models.ErrInvariantViolation)
	ErrUnknownKind = fmt.Errorf("%w: unknown targeting strategy", models.ErrInvariantViolation)
)

// Shots is what a strategy may know about the opponent's board: which cells
// were already fired at. Ships stay hidden.
type Shots interface {
	Resolved(c models.Coord) bool
}

// Strategy picks the computer's shots. Next never returns a cell that is
// already resolved.
type Strategy interface {
	Name() string
	Next(shots Shots) (models.Coord, error)
	Record(c models.Coord, outcome models.Outcome)
	Reset()
}

func Kinds() []string {
	return []string{KindHunt, KindRandom}
}

func New(kind string, rnd random.Random) (Strategy, error) {
	switch kind {
	case KindRandom:
		return &randomShooter{rnd: rnd}, nil
	case KindHunt:
		return newHunter(rnd), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func randomShot(shots Shots, rnd random.Random) (models.Coord, error) {
	for i := 0; i < maxSamples; i++ {
		c := models.Coord{Row: rnd.Intn(models.BoardSize), Col: rnd.Intn(models.BoardSize)}
		if !shots.Resolved(c) {
			return c, nil
		}
	}

	var open []models.Coord
	for row := 0; row < models.BoardSize; row++ {
		for col := 0; col < models.BoardSize; col++ {
			if c := (models.Coord{Row: row, Col: col}); !shots.Resolved(c) {
				open = append(open, c)
			}
		}
	}
	if len(open) == 0 {
		return models.Coord{}, ErrNoTarget
	}
	return open[rnd.Intn(len(open))], nil
}

type randomShooter struct {
	rnd random.Random
}

func (s *randomShooter) Name() string { return KindRandom }

func (s *randomShooter) Next(shots Shots) (models.Coord, error) {
	return randomShot(shots, s.rnd)
}

func (s *randomShooter) Record(models.Coord, models.Outcome) {}

func (s *randomShooter) Reset() {}
