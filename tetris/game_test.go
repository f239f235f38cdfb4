package tetris_test

import (
	"errors"
	"matrix/tetris"
	"testing"
	"time"
)

func next(t *testing.T, g *tetris.Game) *tetris.Snapshot {
	t.Helper()
	select {
	case s, ok := <-g.Updates():
		if !ok {
			t.Fatal("updates channel closed")
		}
		return s
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for update")
	}
	return nil
}

func waitClosed(t *testing.T, g *tetris.Game) {
	t.Helper()
	timeout := time.After(time.Second)
	for {
		select {
		case _, ok := <-g.Updates():
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for updates to close")
		}
	}
}

func TestUpdates(t *testing.T) {
	game, ticker := tetris.NewTestGame(tetris.J)
	if err := game.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer game.Stop()

	s := next(t, game)
	if s.Tetromino == nil || s.Tetromino.Y != 0 {
		t.Fatalf("wanted the first update to hold a tetromino on row 0, got %+v", s.Tetromino)
	}
	if !ticker.IsReset() {
		t.Error("expected ticker to be reset")
	}

	ticker.Tick()
	if s := next(t, game); s.Tetromino.Y != 1 {
		t.Errorf("wanted tick to move the tetromino to row 1, got %d", s.Tetromino.Y)
	}

	game.Action(tetris.MoveLeft)
	if s := next(t, game); s.Tetromino.X != 2 {
		t.Errorf("wanted tetromino on column 2, got %d", s.Tetromino.X)
	}

	game.Action(tetris.DropDown)
	s = next(t, game)
	if s.Stack[9][3] != tetris.J {
		t.Errorf("wanted dropped tetromino in the stack, got %v", s.Stack[9])
	}
	if s.Tetromino == nil || s.Tetromino.Y != 0 {
		t.Errorf("wanted a new tetromino on row 0, got %+v", s.Tetromino)
	}
}

func TestStartStop(t *testing.T) {
	game, ticker := tetris.NewTestGame(tetris.J)
	if err := game.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	next(t, game)
	if err := game.Start(); !errors.Is(err, tetris.ErrGameStarted) {
		t.Errorf("wanted ErrGameStarted on a second start, got %v", err)
	}
	game.Stop()
	if !ticker.IsStop() {
		t.Error("expected ticker to be stopped")
	}
	waitClosed(t, game)

	// actions after stop don't block.
	done := make(chan struct{})
	go func() {
		game.Action(tetris.MoveLeft)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("action blocked after stop")
	}
}

func TestGameOver(t *testing.T) {
	game, ticker := tetris.NewTestGame(tetris.Q)
	if err := game.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	next(t, game)

	// locking the square on the spawn rows blocks the next one.
	game.Action(tetris.Lock)
	s := next(t, game)
	if !s.GameOver {
		t.Error("wanted game over")
	}
	if s.Tetromino == nil {
		t.Error("wanted the blocked tetromino after game over")
	}
	waitClosed(t, game)
	if !ticker.IsStop() {
		t.Error("expected ticker to be stopped")
	}
}
