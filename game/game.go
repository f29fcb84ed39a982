package game

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/wojtekolesinski/battleships-solo/board"
	"github.com/wojtekolesinski/battleships-solo/bot"
	"github.com/wojtekolesinski/battleships-solo/combat"
	"github.com/wojtekolesinski/battleships-solo/fleet"
	"github.com/wojtekolesinski/battleships-solo/models"
	"github.com/wojtekolesinski/battleships-solo/random"
)

const DefaultComputerDelay = time.Second

var (
	ErrOutOfTurn = fmt.Errorf("%w: not your turn", models.ErrRejected)
	ErrGameOver  = fmt.Errorf("%w: game is over", models.ErrRejected)

	ErrInvalidSide = fmt.Errorf("%w: invalid side", models.ErrInvariantViolation)
)

type listener struct {
	id int
	fn func(models.Snapshot)
}

// Game is the state of one human vs. computer match. All methods are safe
// for concurrent use; the computer's delayed move runs on a timer goroutine.
type Game struct {
	mu sync.Mutex
	// notifyMu orders deliveries. It is taken while mu is still held.
	notifyMu sync.Mutex

	id       string
	turn     models.TurnState
	winner   models.Side
	reveal   bool
	boards   [2]*board.Board
	scores   [2]combat.Score
	placer   *fleet.Placer
	lastShot *models.Coord

	resolver     combat.Resolver
	strategy     bot.Strategy
	strategyKind string
	rnd          random.Random
	initReveal   bool

	clock      Clock
	delay      time.Duration
	pending    Timer
	generation uint64

	listeners    []listener
	nextListener int

	logger *log.Logger
}

type Option func(*Game) error

func WithStrategy(kind string) Option {
	return func(g *Game) error {
		g.strategyKind = kind
		return nil
	}
}

func WithRandom(rnd random.Random) Option {
	return func(g *Game) error {
		if rnd == nil {
			return fmt.Errorf("%w: nil random source", models.ErrInvariantViolation)
		}
		g.rnd = rnd
		return nil
	}
}

func WithComputerDelay(d time.Duration) Option {
	return func(g *Game) error {
		if d < 0 {
			return fmt.Errorf("negative computer delay: %s", d)
		}
		g.delay = d
		return nil
	}
}

func WithClock(c Clock) Option {
	return func(g *Game) error {
		g.clock = c
		return nil
	}
}

func WithLogger(l *log.Logger) Option {
	return func(g *Game) error {
		g.logger = l
		return nil
	}
}

// WithReveal sets the reveal toggle a new or reset game starts with.
func WithReveal(reveal bool) Option {
	return func(g *Game) error {
		g.initReveal = reveal
		return nil
	}
}

func New(opts ...Option) (*Game, error) {
	g := &Game{
		strategyKind: bot.KindHunt,
		delay:        DefaultComputerDelay,
		clock:        realClock{},
		resolver:     combat.NewResolver(fleet.TotalCells),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, fmt.Errorf("game.New: %w", err)
		}
	}
	if g.rnd == nil {
		g.rnd = random.New(0)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}

	strategy, err := bot.New(g.strategyKind, g.rnd)
	if err != nil {
		return nil, fmt.Errorf("game.New: %w", err)
	}
	g.strategy = strategy
	g.init()
	return g, nil
}

// init puts every entity back to its construction-time state. Callers hold mu.
func (g *Game) init() {
	g.id = uuid.NewString()
	g.turn = models.AwaitingPlacement
	g.winner = models.Human
	g.reveal = g.initReveal
	g.boards = [2]*board.Board{board.New(), board.New()}
	g.scores = [2]combat.Score{}
	g.placer = fleet.NewPlacer(g.boards[models.Human], fleet.Lengths())
	g.lastShot = nil
	g.strategy.Reset()
	g.logger.Info("game [init]", "game", g.id, "strategy", g.strategy.Name())
}

// SelectCell handles a click on side's board: a placement segment while the
// human fleet is being placed, a shot at the computer during the player's
// turn. Rule violations return an error wrapping models.ErrRejected and leave
// the game untouched.
func (g *Game) SelectCell(side models.Side, row, col int) (models.Outcome, error) {
	if !side.Valid() {
		return models.OutcomeNone, fmt.Errorf("game.SelectCell: %w: %d", ErrInvalidSide, side)
	}
	c := models.Coord{Row: row, Col: col}

	g.mu.Lock()
	outcome, err := g.selectCell(side, c)
	switch {
	case errors.Is(err, models.ErrInvariantViolation):
		g.logger.Error("game [SelectCell]", "game", g.id, "side", side, "coord", c, "err", err)
		g.unlockAndNotify()
		return outcome, err
	case err != nil:
		g.logger.Debug("game [SelectCell]", "game", g.id, "side", side, "coord", c, "err", err)
		g.mu.Unlock()
		return outcome, err
	}
	g.unlockAndNotify()
	return outcome, nil
}

func (g *Game) selectCell(side models.Side, c models.Coord) (models.Outcome, error) {
	switch g.turn {
	case models.AwaitingPlacement:
		if side != models.Human {
			return models.OutcomeNone, ErrOutOfTurn
		}
		return g.place(c)
	case models.PlayerTurn:
		if side != models.Computer {
			return models.OutcomeNone, ErrOutOfTurn
		}
		return g.fire(models.Human, c)
	case models.ComputerTurn:
		return models.OutcomeNone, ErrOutOfTurn
	default:
		return models.OutcomeNone, ErrGameOver
	}
}

func (g *Game) place(c models.Coord) (models.Outcome, error) {
	ship, err := g.placer.Propose(c)
	if err != nil {
		return models.OutcomeNone, err
	}
	if ship != nil {
		g.logger.Info("game [place]", "game", g.id, "ship", g.placer.ShipIndex(), "length", ship.Len(), "orientation", ship.Orientation)
	}
	if !g.placer.Complete() {
		return models.OutcomePlaced, nil
	}

	if _, err := fleet.AutoPlace(g.boards[models.Computer], fleet.Lengths(), g.rnd); err != nil {
		// start over rather than leave a complete fleet with no opponent
		g.init()
		return models.OutcomeNone, fmt.Errorf("game.place: %w", err)
	}
	g.turn = models.PlayerTurn
	g.logger.Info("game [place]", "game", g.id, "msg", "both fleets placed", "turn", g.turn)
	return models.OutcomePlaced, nil
}

// ToggleReveal shows or hides the computer's un-hit ships. It has no effect
// on the rules.
func (g *Game) ToggleReveal() bool {
	g.mu.Lock()
	g.reveal = !g.reveal
	reveal := g.reveal
	g.unlockAndNotify()
	return reveal
}

// Reset starts a new game. A pending computer move is dropped.
func (g *Game) Reset() {
	g.mu.Lock()
	g.cancelPending()
	g.init()
	g.unlockAndNotify()
}

// Close drops a pending computer move. The game stays readable.
func (g *Game) Close() {
	g.mu.Lock()
	g.cancelPending()
	g.mu.Unlock()
}

// Subscribe registers fn to receive a snapshot after every state change.
// Snapshots arrive one at a time in the order of the changes. fn must not
// call back into the Game. The returned function unregisters it.
func (g *Game) Subscribe(fn func(models.Snapshot)) func() {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextListener
	g.nextListener++
	g.listeners = append(g.listeners, listener{id: id, fn: fn})

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		for i, l := range g.listeners {
			if l.id == id {
				g.listeners = append(g.listeners[:i], g.listeners[i+1:]...)
				return
			}
		}
	}
}

// unlockAndNotify releases mu and hands the current snapshot to every
// listener. Callers hold mu.
func (g *Game) unlockAndNotify() {
	snap := g.snapshot()
	listeners := make([]listener, len(g.listeners))
	copy(listeners, g.listeners)

	g.notifyMu.Lock()
	defer g.notifyMu.Unlock()
	g.mu.Unlock()

	for _, l := range listeners {
		l.fn(snap)
	}
}
