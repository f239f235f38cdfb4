package tetris

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTick is the time it takes the tetromino to step one row down.
const DefaultTick = 800 * time.Millisecond

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

// Game drives a Matrix from a single goroutine so that the ticker and the
// player's actions never touch the matrix at the same time.
type Game struct {
	updateCh chan *Snapshot
	actionCh chan Action
	doneCh   chan struct{}
	done     sync.Once
	started  atomic.Bool

	matrix *Matrix
	ticker Ticker
	tick   time.Duration
	logger *slog.Logger
}

func NewGame(m *Matrix, tick time.Duration, l *slog.Logger) *Game {
	if tick <= 0 {
		tick = DefaultTick
	}
	return NewConfigurableGame(m, newWrappedTicker(tick), tick, l)
}

func NewConfigurableGame(m *Matrix, ticker Ticker, tick time.Duration, l *slog.Logger) *Game {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &Game{
		updateCh: make(chan *Snapshot),
		actionCh: make(chan Action),
		doneCh:   make(chan struct{}),
		matrix:   m,
		ticker:   ticker,
		tick:     tick,
		logger:   l,
	}
}

// Start resets the matrix and starts listening for ticks and actions.
// The first update is the fresh matrix.
func (g *Game) Start() error {
	if !g.started.CompareAndSwap(false, true) {
		return ErrGameStarted
	}
	if err := g.matrix.Reset(); err != nil {
		g.started.Store(false)
		return fmt.Errorf("unable to start game: %w", err)
	}
	go g.listen()
	return nil
}

// Stop ends the game. Updates() is closed once the listener returns.
func (g *Game) Stop() {
	g.ticker.Stop()
	g.finish()
}

// Action queues a for the listener. It's a no-op once the game is done.
func (g *Game) Action(a Action) {
	select {
	case g.actionCh <- a:
	case <-g.doneCh:
	}
}

func (g *Game) Updates() <-chan *Snapshot { return g.updateCh }

func (g *Game) finish() {
	g.done.Do(func() { close(g.doneCh) })
}

func (g *Game) listen() {
	defer close(g.updateCh)
	g.ticker.Reset(g.tick)
	if !g.publish() {
		return
	}
	for {
		var (
			res Result
			err error
		)
		select {
		case <-g.ticker.C():
			res, err = g.matrix.Apply(Tick)
		case a := <-g.actionCh:
			res, err = g.matrix.Apply(a)
		case <-g.doneCh:
			return
		}

		over := errors.Is(err, ErrGameOver)
		if err != nil && !over {
			g.logger.Debug("action not applied", slog.String("error", err.Error()))
		}
		if res.Landed && !over {
			// the new tetromino gets a full tick before stepping down.
			g.ticker.Reset(g.tick)
		}
		if !g.publish() {
			return
		}
		if over {
			g.ticker.Stop()
			g.finish()
			return
		}
	}
}

func (g *Game) publish() bool {
	select {
	case g.updateCh <- g.matrix.Snapshot():
		return true
	case <-g.doneCh:
		return false
	}
}
