// Package client plays the game from the keyboard, either locally or against
// a matrix server.
package client

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"matrix/tetris"

	"github.com/eiannone/keyboard"
)

type clientState int

const (
	lobby clientState = iota
	playing
)

// state is shared by the keyboard listener and the game listener.
type state struct {
	current clientState
	game    Game
	mu      sync.Mutex
}

func (s *state) get() (clientState, Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.game
}

func (s *state) set(c clientState, g Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c
	s.game = g
}

// Game is implemented by tetris.Game and RemoteGame.
type Game interface {
	Start() error
	Updates() <-chan *tetris.Snapshot
	Action(tetris.Action)
	Stop()
}

type renderer interface {
	Frame(*tetris.Snapshot)
	Lobby(string)
	Clear()
}

// GameFactory returns a game ready to be started.
type GameFactory func() (Game, error)

type Client struct {
	local  GameFactory
	online GameFactory
	render renderer
	logger *slog.Logger
	kbCh   <-chan keyboard.KeyEvent
	state  *state
}

type Options struct {
	// Local creates the games played with (p)lay.
	Local GameFactory
	// Online creates the games played with (o)nline. Online play is
	// disabled when it's nil.
	Online GameFactory
}

func New(r renderer, l *slog.Logger, o *Options) (*Client, error) {
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	return &Client{
		local:  o.Local,
		online: o.Online,
		render: r,
		logger: l,
		kbCh:   kb,
		state:  &state{current: lobby},
	}, nil
}

// LocalGame returns a factory of games played on a matrix built by newMatrix.
func LocalGame(newMatrix func() (*tetris.Matrix, error), tick time.Duration, l *slog.Logger) GameFactory {
	return func() (Game, error) {
		m, err := newMatrix()
		if err != nil {
			return nil, err
		}
		return tetris.NewGame(m, tick, l), nil
	}
}

// Start shows the lobby and blocks until the player quits.
func (c *Client) Start() {
	c.render.Clear()
	c.render.Lobby("")
	c.listenKB()
	if _, g := c.state.get(); g != nil {
		g.Stop()
	}
}

// Close releases the keyboard.
func (c *Client) Close() error {
	return keyboard.Close()
}

func (c *Client) listenKB() {
	for {
		event, ok := <-c.kbCh
		if !ok {
			c.logger.Error("keyboard events channel closed unexpectedly")
			return
		}
		if event.Err != nil {
			c.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			return
		}
		if event.Key == keyboard.KeyCtrlC {
			return
		}
		current, g := c.state.get()
		switch current {
		case lobby:
			switch event.Rune {
			case 'p':
				c.play(c.local)
			case 'o':
				c.play(c.online)
			case 'q':
				return
			}
		case playing:
			if event.Key == keyboard.KeyEsc {
				g.Stop()
				continue
			}
			if a, ok := keyAction(event); ok {
				g.Action(a)
			}
		}
	}
}

func (c *Client) play(f GameFactory) {
	if f == nil {
		c.render.Lobby("offline")
		return
	}
	g, err := f()
	if err != nil {
		c.logger.Error("unable to create game", slog.String("error", err.Error()))
		c.render.Lobby("unable to start")
		return
	}
	if err := g.Start(); err != nil {
		c.logger.Error("unable to start game", slog.String("error", err.Error()))
		c.render.Lobby("unable to start")
		return
	}
	c.state.set(playing, g)
	c.render.Clear()
	go c.listenGame(g)
}

// listenGame renders every update of g and goes back to the lobby once the
// updates stop.
func (c *Client) listenGame(g Game) {
	var last *tetris.Snapshot
	for u := range g.Updates() {
		c.render.Frame(u)
		last = u
	}
	c.state.set(lobby, nil)
	switch {
	case last != nil && last.GameOver:
		c.render.Lobby(fmt.Sprintf("game over: %d lines", last.LinesClear))
	default:
		c.render.Lobby("")
	}
}

// keyAction maps a key press to a game action.
func keyAction(event keyboard.KeyEvent) (tetris.Action, bool) {
	switch {
	case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
		return tetris.MoveDown, true
	case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
		return tetris.MoveLeft, true
	case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
		return tetris.MoveRight, true
	case event.Key == keyboard.KeyArrowUp || event.Rune == 'e':
		return tetris.RotateRight, true
	case event.Rune == 'q':
		return tetris.RotateLeft, true
	case event.Key == keyboard.KeySpace:
		return tetris.DropDown, true
	}
	return "", false
}
