package tetris

import (
	"errors"
	"fmt"
)

type Action string

const (
	MoveLeft    Action = "left"      // Moves the Tetromino one step to the left.
	MoveRight   Action = "right"     // Moves the Tetromino one step to the right.
	MoveDown    Action = "down"      // Moves the Tetromino one step down.
	DropDown    Action = "drop"      // Drops the Tetromino down the stack and locks it.
	RotateRight Action = "rotatecw"  // Rotates the Tetromino clockwise.
	RotateLeft  Action = "rotateccw" // Rotates the Tetromino counter-clockwise.
	Tick        Action = "tick"      // Steps the Tetromino down, locking it once it has landed.
	Lock        Action = "lock"      // Locks the Tetromino where it is.
	Restart     Action = "reset"     // Clears the matrix and spawns a new Tetromino.
)

var actions = []Action{MoveLeft, MoveRight, MoveDown, DropDown, RotateRight, RotateLeft, Tick, Lock, Restart}

func ParseAction(s string) (Action, error) {
	for _, a := range actions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// Result is the outcome of an action.
type Result struct {
	// OK is false when a move or rotation wasn't allowed.
	OK bool
	// Landed is set when the tetromino can't move further down.
	Landed bool
	// Lines is the number of lines cleared by the action.
	Lines int
}

// Apply runs a on the matrix. ErrGameOver is returned when the action ends the
// game, or when the game is already over and a is not Restart.
func (m *Matrix) Apply(a Action) (Result, error) {
	if m.gameOver && a != Restart {
		return Result{}, fmt.Errorf("%w: %q not applied", ErrGameOver, a)
	}
	switch a {
	case MoveLeft:
		return m.move(-1, 0)
	case MoveRight:
		return m.move(1, 0)
	case MoveDown:
		r, err := m.move(0, 1)
		r.Landed = err == nil && !r.OK
		return r, err
	case RotateRight, RotateLeft:
		d := Clockwise
		if a == RotateLeft {
			d = CounterClockwise
		}
		ok, err := m.TryRotate(d)
		return Result{OK: ok}, err
	case DropDown:
		if _, err := m.Drop(); err != nil {
			return Result{}, err
		}
		return m.lock()
	case Tick:
		landed, err := m.StepDown()
		if err != nil || !landed {
			return Result{OK: err == nil}, err
		}
		return m.lock()
	case Lock:
		return m.lock()
	case Restart:
		return Result{OK: true}, m.Reset()
	}
	return Result{}, fmt.Errorf("%w: %q", ErrInvalidAction, a)
}

func (m *Matrix) move(dx, dy int) (Result, error) {
	ok, err := m.TryMove(dx, dy)
	return Result{OK: ok}, err
}

func (m *Matrix) lock() (Result, error) {
	lines, err := m.LockDown()
	r := Result{OK: err == nil || errors.Is(err, ErrGameOver), Landed: true, Lines: lines}
	return r, err
}
