package models

import "errors"

const BoardSize = 10

var (
	// ErrRejected is wrapped by every rule violation. These come from
	// ordinary misclicks and never change game state.
	ErrRejected = errors.New("rejected")

	// ErrInvariantViolation is wrapped by errors that point at a defect in
	// the caller, such as an unknown side.
	ErrInvariantViolation = errors.New("invariant violation")
)

type Cell uint8

const (
	Empty Cell = iota
	Ship
	Hit
	Miss
)

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Ship:
		return "ship"
	case Hit:
		return "hit"
	case Miss:
		return "miss"
	default:
		return "unknown"
	}
}

// Resolved reports whether the cell has already been attacked.
func (c Cell) Resolved() bool {
	return c == Hit || c == Miss
}

type Side uint8

const (
	Human Side = iota
	Computer
)

func (s Side) Valid() bool {
	return s == Human || s == Computer
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Human {
		return Computer
	}
	return Human
}

func (s Side) String() string {
	switch s {
	case Human:
		return "Player"
	case Computer:
		return "CPU"
	default:
		return "unknown"
	}
}

type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) InBounds() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// Adjacent reports whether o is one step up, down, left or right of c.
func (c Coord) Adjacent(o Coord) bool {
	dr, dc := c.Row-o.Row, c.Col-o.Col
	return (dr == 0 && (dc == 1 || dc == -1)) || (dc == 0 && (dr == 1 || dr == -1))
}

type TurnState uint8

const (
	AwaitingPlacement TurnState = iota
	PlayerTurn
	ComputerTurn
	GameOver
)

func (t TurnState) String() string {
	switch t {
	case AwaitingPlacement:
		return "awaiting_placement"
	case PlayerTurn:
		return "player_turn"
	case ComputerTurn:
		return "computer_turn"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomePlaced
	OutcomeHit
	OutcomeMiss
	OutcomeGameWon
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlaced:
		return "placed"
	case OutcomeHit:
		return "hit"
	case OutcomeMiss:
		return "miss"
	case OutcomeGameWon:
		return "game_won"
	default:
		return "none"
	}
}
