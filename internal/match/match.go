package match

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/abdu61/TicTacToe/internal/bot"
	"github.com/abdu61/TicTacToe/internal/game"
)

const (
	// HumanMark always belongs to the local player and always starts.
	HumanMark = game.StartingMark
	// ComputerMark is played by the strategy when the opponent is the computer.
	ComputerMark = game.PlayerO
)

var (
	ErrNotYourTurn = errors.New("not your turn")
	ErrMatchOver   = errors.New("match is over")
)

//go:generate mockgen -source=match.go -destination=mocks/mock_listener.go -package=mocks

// Listener receives state changes. Calls are made without the controller
// lock held and in order; a listener may call back into the controller.
// BoardChanged gets the state as it was when the board changed: the move
// that ends a round arrives with that round's number, its final score and
// phase PhaseRoundOver or PhaseMatchOver.
type Listener interface {
	BoardChanged(state Snapshot)
	RoundEnded(outcome Outcome, score Score)
	MatchEnded(summary Summary)
}

type notification func(Listener)

// Controller runs rounds of one match: it alternates turns, drives the
// computer opponent and keeps the score.
type Controller struct {
	mu        sync.Mutex
	cfg       Config
	game      *game.Game
	phase     Phase
	round     int
	score     Score
	last      Outcome
	strategy  bot.Strategy
	rng       *rand.Rand
	delay     time.Duration
	timer     *time.Timer
	epoch     uint64
	listener  Listener
	logger    *slog.Logger
	queue     []notification
	notifying bool
}

type Option func(*Controller)

// WithListener sets the receiver of state changes.
func WithListener(l Listener) Option {
	return func(c *Controller) { c.listener = l }
}

// WithMoveDelay defers the computer's reply by d. Zero replies synchronously.
func WithMoveDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

// WithRand seeds the easy and medium strategies.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// NewController validates cfg and returns a controller awaiting the first
// move of round 1.
func NewController(cfg Config, opts ...Option) (*Controller, error) {
	c := &Controller{logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}

	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}
	strategy, err := bot.ForDifficulty(cfg.Difficulty, c.rng)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	c.cfg = cfg
	c.strategy = strategy
	c.game = game.NewGame(game.StartingMark)
	c.round = 1
	c.phase = PhaseAwaitingMove
	return c, nil
}

// SelectCell plays index for the side to move. The computer's turn, a
// finished round and illegal cells are rejected with game.ErrInvalidMove
// and leave the state unchanged.
func (c *Controller) SelectCell(index int) error {
	c.mu.Lock()
	defer c.unlockAndNotify()

	if c.phase != PhaseAwaitingMove {
		return fmt.Errorf("%w: %w", game.ErrInvalidMove, game.ErrGameFinished)
	}
	if c.computerToMove() {
		return fmt.Errorf("%w: %w", game.ErrInvalidMove, ErrNotYourTurn)
	}
	return c.apply(index)
}

// UpdateConfig replaces the configuration. It applies from the next move;
// the board and score are kept.
func (c *Controller) UpdateConfig(cfg Config) error {
	cfg, err := cfg.Normalize()
	if err != nil {
		return err
	}
	strategy, err := bot.ForDifficulty(cfg.Difficulty, c.rng)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	c.mu.Lock()
	defer c.unlockAndNotify()

	c.cfg = cfg
	c.strategy = strategy
	c.cancelPending()
	if c.computerToMove() {
		c.scheduleComputer()
	}
	c.logger.Debug("config updated", "opponent", cfg.Opponent, "difficulty", cfg.Difficulty, "rounds", cfg.Rounds)
	return nil
}

// NewMatch discards any pending computer move, zeroes the score and starts
// round 1.
func (c *Controller) NewMatch() {
	c.mu.Lock()
	defer c.unlockAndNotify()

	c.score = Score{}
	c.last = Outcome{}
	c.startRound(1)
	c.logger.Debug("new match started")
}

// NewRound clears the board of the current round, keeping round number and
// score.
func (c *Controller) NewRound() error {
	c.mu.Lock()
	defer c.unlockAndNotify()

	if c.phase == PhaseMatchOver {
		return ErrMatchOver
	}
	c.startRound(c.round)
	return nil
}

// State returns a copy of the current state.
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// snapshot must be called with c.mu held.
func (c *Controller) snapshot() Snapshot {
	return Snapshot{
		Board:       c.game.Board,
		Phase:       c.phase,
		Turn:        c.game.CurrentTurn,
		Round:       c.round,
		Rounds:      c.cfg.Rounds,
		Score:       c.score,
		LastOutcome: c.last,
		Config:      c.cfg,
	}
}

// Close stops a pending computer move.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPending()
}

func (c *Controller) computerToMove() bool {
	return c.phase == PhaseAwaitingMove &&
		c.cfg.Opponent == OpponentComputer &&
		c.game.CurrentTurn == ComputerMark
}

// apply plays index for the side to move and runs every transition that
// follows from it.
func (c *Controller) apply(index int) error {
	if err := c.game.Move(index); err != nil {
		return err
	}
	if !c.game.Active() {
		c.finishRound()
		return nil
	}

	c.notifyBoard()
	if c.computerToMove() {
		c.scheduleComputer()
	}
	return nil
}

// finishRound scores the round that just ended, then either ends the match
// or starts the next round. The final board is reported before RoundEnded.
func (c *Controller) finishRound() {
	outcome := Draw()
	if c.game.Winner != game.None {
		outcome = Win(c.game.Winner)
		if c.game.Winner == HumanMark {
			c.score.Player++
		} else {
			c.score.Opponent++
		}
	}
	c.last = outcome
	c.phase = PhaseRoundOver
	if c.round >= c.cfg.Rounds {
		c.phase = PhaseMatchOver
	}
	c.notifyBoard()

	score := c.score
	c.notify(func(l Listener) { l.RoundEnded(outcome, score) })
	c.logger.Debug("round ended", "round", c.round, "outcome", outcome.String(), "score.player", score.Player, "score.opponent", score.Opponent)

	if c.phase == PhaseMatchOver {
		summary := summarize(outcome, score, c.cfg)
		c.notify(func(l Listener) { l.MatchEnded(summary) })
		c.logger.Info("match ended", "outcome", summary.Outcome, "rounds", c.round)
		return
	}
	c.startRound(c.round + 1)
}

func (c *Controller) startRound(round int) {
	c.cancelPending()
	c.game = game.NewGame(game.StartingMark)
	c.round = round
	c.phase = PhaseAwaitingMove
	c.notifyBoard()
}

func (c *Controller) scheduleComputer() {
	if c.delay <= 0 {
		c.computerMove()
		return
	}

	epoch := c.epoch
	c.timer = time.AfterFunc(c.delay, func() { c.runScheduled(epoch) })
}

func (c *Controller) runScheduled(epoch uint64) {
	c.mu.Lock()
	defer c.unlockAndNotify()

	// A reset since scheduling makes this move stale.
	if epoch != c.epoch || !c.computerToMove() {
		return
	}
	c.timer = nil
	c.computerMove()
}

func (c *Controller) computerMove() {
	idx, err := c.strategy.SelectMove(c.game.Board, c.game.CurrentTurn)
	if err != nil {
		c.logger.Error("computer could not select a move", "error", err)
		return
	}
	if err := c.apply(idx); err != nil {
		c.logger.Error("computer selected an illegal move", "index", idx, "error", err)
	}
}

func (c *Controller) cancelPending() {
	c.epoch++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) notifyBoard() {
	if c.listener == nil {
		return
	}
	state := c.snapshot()
	c.notify(func(l Listener) { l.BoardChanged(state) })
}

func (c *Controller) notify(n notification) {
	if c.listener == nil {
		return
	}
	c.queue = append(c.queue, n)
}

// unlockAndNotify releases c.mu and delivers queued notifications. Only one
// goroutine delivers at a time, so notifications keep their order even when
// a listener re-enters the controller.
func (c *Controller) unlockAndNotify() {
	if c.notifying {
		c.mu.Unlock()
		return
	}
	c.notifying = true
	for len(c.queue) > 0 {
		batch := c.queue
		c.queue = nil
		c.mu.Unlock()
		for _, n := range batch {
			n(c.listener)
		}
		c.mu.Lock()
	}
	c.notifying = false
	c.mu.Unlock()
}
