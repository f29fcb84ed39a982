package game

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wojtekolesinski/battleships-solo/bot"
	"github.com/wojtekolesinski/battleships-solo/fleet"
	"github.com/wojtekolesinski/battleships-solo/models"
	"github.com/wojtekolesinski/battleships-solo/random"
)

type fakeTimer struct {
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

type scheduled struct {
	f     func()
	timer *fakeTimer
}

// fakeClock runs scheduled callbacks only when Fire is called. With
// ignoreStop set it behaves like a timer whose callback is already in flight.
type fakeClock struct {
	mu         sync.Mutex
	pending    []scheduled
	ignoreStop bool
}

func (c *fakeClock) AfterFunc(_ time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{}
	c.pending = append(c.pending, scheduled{f: f, timer: t})
	return t
}

func (c *fakeClock) Fire() int {
	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	ignoreStop := c.ignoreStop
	c.mu.Unlock()

	fired := 0
	for _, s := range pending {
		if s.timer.stopped && !ignoreStop {
			continue
		}
		s.timer.fired = true
		s.f()
		fired++
	}
	return fired
}

// scripted fires at a fixed list of cells.
type scripted struct {
	targets []models.Coord
	next    int
}

func (s *scripted) Name() string { return "scripted" }

func (s *scripted) Next(bot.Shots) (models.Coord, error) {
	if s.next >= len(s.targets) {
		return models.Coord{}, bot.ErrNoTarget
	}
	c := s.targets[s.next]
	s.next++
	return c, nil
}

func (s *scripted) Record(models.Coord, models.Outcome) {}

func (s *scripted) Reset() { s.next = 0 }

func newTestGame(t *testing.T, opts ...Option) (*Game, *fakeClock) {
	t.Helper()
	clock := &fakeClock{}
	opts = append([]Option{WithClock(clock), WithRandom(random.New(42)), WithComputerDelay(time.Millisecond)}, opts...)
	g, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g, clock
}

// standardFleet lays ship i along row 2*i starting at column 0.
func standardFleet() [][]models.Coord {
	var ships [][]models.Coord
	for i, length := range fleet.Lengths() {
		var ship []models.Coord
		for col := 0; col < length; col++ {
			ship = append(ship, models.Coord{Row: 2 * i, Col: col})
		}
		ships = append(ships, ship)
	}
	return ships
}

func placeStandardFleet(t *testing.T, g *Game) {
	t.Helper()
	for _, ship := range standardFleet() {
		for _, c := range ship {
			outcome, err := g.SelectCell(models.Human, c.Row, c.Col)
			require.NoError(t, err)
			require.Equal(t, models.OutcomePlaced, outcome)
		}
	}
	require.Equal(t, models.PlayerTurn, g.Turn())
}

func cellsWith(view models.BoardView, status models.Cell) []models.Coord {
	var out []models.Coord
	for row := range view {
		for col := range view[row] {
			if view[row][col].Status == status {
				out = append(out, models.Coord{Row: row, Col: col})
			}
		}
	}
	return out
}

func TestNew(t *testing.T) {
	testCases := []struct {
		Name     string
		Opts     []Option
		Strategy string
		Err      error
	}{
		{Name: "defaults", Strategy: bot.KindHunt},
		{Name: "random strategy", Opts: []Option{WithStrategy(bot.KindRandom)}, Strategy: bot.KindRandom},
		{Name: "unknown strategy", Opts: []Option{WithStrategy("oracle")}, Err: models.ErrInvariantViolation},
		{Name: "nil random", Opts: []Option{WithRandom(nil)}, Err: models.ErrInvariantViolation},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			// when
			g, err := New(tc.Opts...)

			// then
			if tc.Err != nil {
				assert.ErrorIs(t, err, tc.Err)
				return
			}
			require.NoError(t, err)
			snap := g.Snapshot()
			assert.Equal(t, tc.Strategy, snap.Strategy)
			assert.Equal(t, models.AwaitingPlacement, snap.Turn)
			assert.NotEmpty(t, snap.GameID)
			assert.Equal(t, "Placing ship 1/5 of 5 spaces", snap.Status)
		})
	}

	_, err := New(WithComputerDelay(-time.Second))
	assert.Error(t, err)
}

func TestGame_Placement(t *testing.T) {
	// given
	g, _ := newTestGame(t)

	// when
	_, err := g.SelectCell(models.Computer, 0, 0)

	// then
	assert.ErrorIs(t, err, ErrOutOfTurn)

	// when
	outcome, err := g.SelectCell(models.Human, 0, 0)

	// then
	require.NoError(t, err)
	assert.Equal(t, models.OutcomePlaced, outcome)
	assert.Equal(t, "Placing ship 1/5 of 5 spaces", g.StatusText())
	next, err := g.LegalNextMoves(models.Human)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.Coord{{Row: 1, Col: 0}, {Row: 0, Col: 1}}, next)

	hint, err := g.CellView(models.Human, 0, 1)
	require.NoError(t, err)
	assert.True(t, hint.Hint)
	far, err := g.CellView(models.Human, 5, 5)
	require.NoError(t, err)
	assert.False(t, far.Hint)

	// when
	_, err = g.SelectCell(models.Human, 0, 0)

	// then
	assert.ErrorIs(t, err, fleet.ErrOccupied)
	assert.Len(t, g.Snapshot().Placement.Cursor, 1)

	// when
	_, err = g.SelectCell(models.Human, 5, 5)

	// then
	assert.ErrorIs(t, err, fleet.ErrNotAdjacent)
	assert.ErrorIs(t, err, models.ErrRejected)
	assert.Len(t, g.Snapshot().Placement.Cursor, 1)

	// when
	_, err = g.SelectCell(models.Human, 0, models.BoardSize)

	// then
	assert.ErrorIs(t, err, models.ErrRejected)
}

func TestGame_PlacementCompletesBothFleets(t *testing.T) {
	// given
	g, _ := newTestGame(t)

	// when
	placeStandardFleet(t, g)

	// then
	snap := g.Snapshot()
	assert.Equal(t, "Turn: Player", snap.Status)
	assert.Len(t, cellsWith(snap.PlayerBoard, models.Ship), fleet.TotalCells)
	assert.Len(t, cellsWith(snap.ComputerBoard, models.Ship), fleet.TotalCells)
	assert.Empty(t, snap.Placement.Cursor)

	next, err := g.LegalNextMoves(models.Human)
	require.NoError(t, err)
	assert.Empty(t, next)

	_, err = g.SelectCell(models.Human, 9, 9)
	assert.ErrorIs(t, err, ErrOutOfTurn)
}

func TestGame_TurnsAlternate(t *testing.T) {
	// given
	g, clock := newTestGame(t)
	placeStandardFleet(t, g)
	empty := cellsWith(g.Snapshot().ComputerBoard, models.Empty)

	for i := 0; i < 3; i++ {
		// when
		outcome, err := g.SelectCell(models.Computer, empty[i].Row, empty[i].Col)

		// then
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeMiss, outcome)
		assert.Equal(t, models.ComputerTurn, g.Turn())
		assert.Equal(t, "Turn: CPU", g.StatusText())

		_, err = g.SelectCell(models.Computer, empty[i+1].Row, empty[i+1].Col)
		assert.ErrorIs(t, err, ErrOutOfTurn)

		// when
		fired := clock.Fire()

		// then
		assert.Equal(t, 1, fired)
		assert.Equal(t, models.PlayerTurn, g.Turn())
	}

	snap := g.Snapshot()
	assert.Equal(t, 3, snap.PlayerScore.Shots)
	assert.Equal(t, 3, snap.ComputerScore.Shots)
	require.NotNil(t, snap.LastShot)
	assert.True(t, snap.PlayerBoard[snap.LastShot.Row][snap.LastShot.Col].Status.Resolved())
}

func TestGame_RepeatedShotIsRejected(t *testing.T) {
	// given
	g, clock := newTestGame(t)
	placeStandardFleet(t, g)
	target := cellsWith(g.Snapshot().ComputerBoard, models.Empty)[0]
	_, err := g.SelectCell(models.Computer, target.Row, target.Col)
	require.NoError(t, err)
	clock.Fire()
	before := g.Snapshot()

	// when
	_, err = g.SelectCell(models.Computer, target.Row, target.Col)

	// then
	assert.ErrorIs(t, err, models.ErrRejected)
	after := g.Snapshot()
	assert.Equal(t, before.ComputerBoard, after.ComputerBoard)
	assert.Equal(t, models.PlayerTurn, after.Turn)
	assert.Equal(t, before.PlayerScore, after.PlayerScore)
}

func TestGame_PlayerWins(t *testing.T) {
	// given
	g, clock := newTestGame(t)
	placeStandardFleet(t, g)
	ships := cellsWith(g.Snapshot().ComputerBoard, models.Ship)
	require.Len(t, ships, fleet.TotalCells)

	// when
	var outcome models.Outcome
	for i, c := range ships {
		var err error
		outcome, err = g.SelectCell(models.Computer, c.Row, c.Col)
		require.NoError(t, err)
		if i < len(ships)-1 {
			require.Equal(t, models.OutcomeHit, outcome)
			require.Equal(t, 1, clock.Fire())
		}
	}

	// then
	assert.Equal(t, models.OutcomeGameWon, outcome)
	winner, over := g.Winner()
	assert.True(t, over)
	assert.Equal(t, models.Human, winner)
	assert.Equal(t, "Game Over: Winner Player", g.StatusText())

	snap := g.Snapshot()
	assert.Equal(t, "Player", snap.Winner)
	assert.Equal(t, fleet.TotalCells, snap.PlayerScore.Hits)
	assert.Equal(t, 100.0, snap.PlayerScore.Accuracy)
	assert.Len(t, cellsWith(snap.ComputerBoard, models.Hit), fleet.TotalCells)

	_, err := g.SelectCell(models.Computer, 9, 9)
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = g.SelectCell(models.Human, 9, 9)
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, 0, clock.Fire())
}

func TestGame_ComputerWins(t *testing.T) {
	// given
	g, clock := newTestGame(t)
	var targets []models.Coord
	for _, ship := range standardFleet() {
		targets = append(targets, ship...)
	}
	g.strategy = &scripted{targets: targets}
	placeStandardFleet(t, g)
	misses := cellsWith(g.Snapshot().ComputerBoard, models.Empty)

	// when
	for i := 0; i < fleet.TotalCells; i++ {
		_, err := g.SelectCell(models.Computer, misses[i].Row, misses[i].Col)
		require.NoError(t, err)
		require.Equal(t, 1, clock.Fire())
	}

	// then
	winner, over := g.Winner()
	assert.True(t, over)
	assert.Equal(t, models.Computer, winner)
	assert.Equal(t, "Game Over: Winner CPU", g.StatusText())
	snap := g.Snapshot()
	assert.Len(t, cellsWith(snap.PlayerBoard, models.Hit), fleet.TotalCells)
	assert.Empty(t, cellsWith(snap.PlayerBoard, models.Ship))

	_, err := g.SelectCell(models.Computer, misses[fleet.TotalCells].Row, misses[fleet.TotalCells].Col)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestGame_ResetDropsPendingMove(t *testing.T) {
	testCases := []struct {
		Name     string
		InFlight bool
	}{
		{Name: "timer stopped", InFlight: false},
		{Name: "callback already in flight", InFlight: true},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			// given
			g, clock := newTestGame(t)
			clock.ignoreStop = tc.InFlight
			placeStandardFleet(t, g)
			oldID := g.ID()
			target := cellsWith(g.Snapshot().ComputerBoard, models.Empty)[0]
			_, err := g.SelectCell(models.Computer, target.Row, target.Col)
			require.NoError(t, err)
			require.Equal(t, models.ComputerTurn, g.Turn())

			// when
			g.Reset()
			clock.Fire()

			// then
			snap := g.Snapshot()
			assert.Equal(t, models.AwaitingPlacement, snap.Turn)
			assert.NotEqual(t, oldID, snap.GameID)
			assert.Empty(t, cellsWith(snap.PlayerBoard, models.Ship))
			assert.Len(t, cellsWith(snap.PlayerBoard, models.Empty), models.BoardSize*models.BoardSize)
			assert.Len(t, cellsWith(snap.ComputerBoard, models.Empty), models.BoardSize*models.BoardSize)
			assert.Equal(t, models.ScoreData{}, snap.PlayerScore)
			assert.Equal(t, models.ScoreData{}, snap.ComputerScore)
			assert.Nil(t, snap.LastShot)
			assert.Equal(t, "Placing ship 1/5 of 5 spaces", snap.Status)
		})
	}
}

func TestGame_Reveal(t *testing.T) {
	// given
	g, _ := newTestGame(t)
	placeStandardFleet(t, g)
	ship := cellsWith(g.Snapshot().ComputerBoard, models.Ship)[0]

	hidden, err := g.CellView(models.Computer, ship.Row, ship.Col)
	require.NoError(t, err)
	assert.False(t, hidden.Revealed)
	assert.Equal(t, models.Empty, hidden.Shown())

	own, err := g.CellView(models.Human, 0, 0)
	require.NoError(t, err)
	assert.True(t, own.Revealed)
	assert.Equal(t, models.Ship, own.Shown())

	// when
	revealed := g.ToggleReveal()

	// then
	assert.True(t, revealed)
	shown, err := g.CellView(models.Computer, ship.Row, ship.Col)
	require.NoError(t, err)
	assert.Equal(t, models.Ship, shown.Shown())
	assert.Equal(t, models.PlayerTurn, g.Turn())

	// when
	g.Reset()

	// then
	assert.False(t, g.Reveal())
}

func TestGame_RevealOption(t *testing.T) {
	g, _ := newTestGame(t, WithReveal(true))
	assert.True(t, g.Reveal())
	assert.False(t, g.ToggleReveal())

	g.Reset()
	assert.True(t, g.Reveal())
}

func TestGame_InvalidSide(t *testing.T) {
	g, _ := newTestGame(t)
	bad := models.Side(7)

	_, err := g.SelectCell(bad, 0, 0)
	assert.ErrorIs(t, err, models.ErrInvariantViolation)
	assert.NotErrorIs(t, err, models.ErrRejected)

	_, err = g.CellView(bad, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidSide)

	_, err = g.LegalNextMoves(bad)
	assert.ErrorIs(t, err, ErrInvalidSide)

	_, err = g.CellView(models.Human, -1, 0)
	assert.ErrorIs(t, err, models.ErrRejected)
}

func TestGame_Subscribe(t *testing.T) {
	// given
	g, clock := newTestGame(t)
	var statuses []string
	unsubscribe := g.Subscribe(func(s models.Snapshot) {
		statuses = append(statuses, s.Status)
	})

	// when
	placeStandardFleet(t, g)
	target := cellsWith(g.Snapshot().ComputerBoard, models.Empty)[0]
	_, err := g.SelectCell(models.Computer, target.Row, target.Col)
	require.NoError(t, err)
	clock.Fire()

	// then
	require.Len(t, statuses, fleet.TotalCells+2)
	assert.Equal(t, "Placing ship 1/5 of 5 spaces", statuses[0])
	assert.Equal(t, "Placing ship 2/5 of 4 spaces", statuses[5])
	assert.Equal(t, "Turn: Player", statuses[fleet.TotalCells-1])
	assert.Equal(t, "Turn: CPU", statuses[fleet.TotalCells])
	assert.Equal(t, "Turn: Player", statuses[fleet.TotalCells+1])

	// when
	_, err = g.SelectCell(models.Computer, target.Row, target.Col)
	require.Error(t, err)
	unsubscribe()
	g.Reset()

	// then
	assert.Len(t, statuses, fleet.TotalCells+2)
}

func TestGame_SubscribersSeeChangesInOrder(t *testing.T) {
	// given
	g, err := New(WithRandom(random.New(11)), WithComputerDelay(0))
	require.NoError(t, err)
	t.Cleanup(g.Close)

	var (
		mu       sync.Mutex
		turns    []models.TurnState
		inFlight atomic.Int32
		overlap  atomic.Bool
	)
	g.Subscribe(func(s models.Snapshot) {
		if inFlight.Add(1) > 1 {
			overlap.Store(true)
		}
		defer inFlight.Add(-1)
		if s.Turn == models.ComputerTurn {
			time.Sleep(50 * time.Millisecond)
		}
		mu.Lock()
		turns = append(turns, s.Turn)
		mu.Unlock()
	})
	placeStandardFleet(t, g)
	target := cellsWith(g.Snapshot().ComputerBoard, models.Empty)[0]

	// when
	_, err = g.SelectCell(models.Computer, target.Row, target.Col)
	require.NoError(t, err)

	// then
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(turns) == fleet.TotalCells+2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []models.TurnState{models.PlayerTurn, models.ComputerTurn, models.PlayerTurn}, turns[fleet.TotalCells-1:])
	assert.Equal(t, g.Turn(), turns[len(turns)-1])
	assert.False(t, overlap.Load())
}

func TestGame_ComputerFleetPlacementFailureRestartsPlacement(t *testing.T) {
	// given
	g, _ := newTestGame(t)
	var last models.Snapshot
	notified := 0
	g.Subscribe(func(s models.Snapshot) {
		last = s
		notified++
	})
	ships := standardFleet()
	for _, ship := range ships[:len(ships)-1] {
		for _, c := range ship {
			_, err := g.SelectCell(models.Human, c.Row, c.Col)
			require.NoError(t, err)
		}
	}
	final := ships[len(ships)-1]
	_, err := g.SelectCell(models.Human, final[0].Row, final[0].Col)
	require.NoError(t, err)
	for row := 0; row < models.BoardSize; row++ {
		for col := 0; col < models.BoardSize; col++ {
			require.NoError(t, g.boards[models.Computer].Set(models.Coord{Row: row, Col: col}, models.Miss))
		}
	}
	oldID := g.ID()
	before := notified

	// when
	_, err = g.SelectCell(models.Human, final[1].Row, final[1].Col)

	// then
	assert.ErrorIs(t, err, fleet.ErrNoPlacement)
	assert.ErrorIs(t, err, models.ErrInvariantViolation)
	assert.Equal(t, before+1, notified)
	assert.Equal(t, models.AwaitingPlacement, last.Turn)
	assert.Equal(t, "Placing ship 1/5 of 5 spaces", last.Status)
	assert.NotEqual(t, oldID, last.GameID)
	assert.Empty(t, cellsWith(last.PlayerBoard, models.Ship))

	// when
	placeStandardFleet(t, g)

	// then
	assert.Equal(t, models.PlayerTurn, g.Turn())
}
