package models

// CellView is what the front end needs to draw one cell.
type CellView struct {
	Status   Cell `json:"status"`
	Revealed bool `json:"revealed"`
	Hint     bool `json:"hint,omitempty"`
}

// Shown is the state a viewer may see: un-hit ships stay hidden unless revealed.
func (v CellView) Shown() Cell {
	if v.Status == Ship && !v.Revealed {
		return Empty
	}
	return v.Status
}

type BoardView [BoardSize][BoardSize]CellView

type PlacementData struct {
	ShipIndex int     `json:"ship_index"`
	ShipCount int     `json:"ship_count"`
	Length    int     `json:"length"`
	Cursor    []Coord `json:"cursor,omitempty"`
	NextMoves []Coord `json:"next_moves,omitempty"`
}

type ScoreData struct {
	Hits     int     `json:"hits"`
	Shots    int     `json:"shots"`
	Accuracy float64 `json:"accuracy"`
}

// Snapshot is an immutable copy of the game state handed to subscribers.
type Snapshot struct {
	GameID        string        `json:"game_id"`
	Turn          TurnState     `json:"turn"`
	Status        string        `json:"status"`
	Winner        string        `json:"winner,omitempty"`
	Reveal        bool          `json:"reveal"`
	Strategy      string        `json:"strategy"`
	Placement     PlacementData `json:"placement"`
	PlayerScore   ScoreData     `json:"player_score"`
	ComputerScore ScoreData     `json:"computer_score"`
	PlayerBoard   BoardView     `json:"player_board"`
	ComputerBoard BoardView     `json:"computer_board"`
	LastShot      *Coord        `json:"last_shot,omitempty"`
}
