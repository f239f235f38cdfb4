// Package tetris contains the logic of the game: a fixed size matrix of locked
// cells and the single tetromino falling through it.
package tetris

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultRows = 10
	DefaultCols = 10

	minSize = 4
)

type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

// Matrix is the playfield.
// Columns are 0 > cols-1 left to right and represent the X axis.
// Rows are 0 > rows-1 top to bottom and represent the Y axis.
// An empty Kind is an empty cell, otherwise it holds the kind of the tetromino that was locked there.
type Matrix struct {
	stack      [][]Kind
	rows, cols int

	tetromino  *Tetromino
	spawner    Spawner
	linesClear int
	gameOver   bool
}

// Snapshot is a copy of the matrix that's safe to read concurrently.
type Snapshot struct {
	Stack      [][]Kind
	Tetromino  *Tetromino
	LinesClear int
	GameOver   bool
}

func New(rows, cols int, s Spawner) (*Matrix, error) {
	if rows < minSize || cols < minSize {
		return nil, fmt.Errorf("%w: %dx%d, want at least %dx%d", ErrInvalidDimensions, rows, cols, minSize, minSize)
	}
	if s == nil {
		s = NewRandomSpawner(uint64(time.Now().UnixNano())) //nolint:gosec
	}
	return &Matrix{
		stack:   emptyStack(rows, cols),
		rows:    rows,
		cols:    cols,
		spawner: s,
	}, nil
}

func emptyStack(rows, cols int) [][]Kind {
	stack := make([][]Kind, rows)
	for i := range stack {
		stack[i] = make([]Kind, cols)
	}
	return stack
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

// Tetromino returns the active tetromino. It's nil before Reset().
func (m *Matrix) Tetromino() *Tetromino { return m.tetromino }

func (m *Matrix) GameOver() bool   { return m.gameOver }
func (m *Matrix) LinesClear() int  { return m.linesClear }
func (m *Matrix) Spawner() Spawner { return m.spawner }

// Cell returns the content of the locked cell at row r and column c.
func (m *Matrix) Cell(r, c int) (Kind, error) {
	if !m.inBounds(r, c) {
		return "", fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, r, c)
	}
	return m.stack[r][c], nil
}

// Reset clears every cell and spawns a new tetromino.
func (m *Matrix) Reset() error {
	for r := range m.stack {
		clear(m.stack[r])
	}
	m.tetromino = nil
	m.linesClear = 0
	m.gameOver = false
	return m.spawn()
}

// IsPlacementAllowed reports whether every filled cell of t lands inside the
// matrix on an empty cell.
func (m *Matrix) IsPlacementAllowed(t *Tetromino) bool {
	if t == nil {
		return false
	}
	return m.check(t) == nil
}

func (m *Matrix) check(t *Tetromino) error {
	// 		0 1 2 3 4 5 6 7 8 9			0 1 2
	// 0	X X X X O X X X X X		0	X O X
	// 1	X X X O O O X X X X		1	O O O
	// 2	X X X X X X X X X X		2	X X X
	//
	// the position of a tetromino cell in the matrix is its index in the
	// grid plus the tetromino's X and Y. only filled cells are checked.
	for ir, ic := range t.Cells() {
		r, c := t.Y+ir, t.X+ic
		if !m.inBounds(r, c) {
			return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, r, c)
		}
		if m.stack[r][c] != "" {
			return fmt.Errorf("%w: (%d, %d)", ErrCellOccupied, r, c)
		}
	}
	return nil
}

func (m *Matrix) inBounds(r, c int) bool {
	return r >= 0 && r < m.rows && c >= 0 && c < m.cols
}

// TryMove moves the tetromino by dx columns and dy rows. The move is reverted
// and false returned when the new position is not allowed.
func (m *Matrix) TryMove(dx, dy int) (bool, error) {
	if m.tetromino == nil {
		return false, ErrNoActivePiece
	}
	m.tetromino.X += dx
	m.tetromino.Y += dy
	if !m.IsPlacementAllowed(m.tetromino) {
		m.tetromino.X -= dx
		m.tetromino.Y -= dy
		return false, nil
	}
	return true, nil
}

// TryRotate rotates the tetromino, undoing the rotation when it isn't allowed.
func (m *Matrix) TryRotate(d Direction) (bool, error) {
	if m.tetromino == nil {
		return false, ErrNoActivePiece
	}
	switch d {
	case Clockwise:
		m.tetromino.RotateRight()
	case CounterClockwise:
		m.tetromino.RotateLeft()
	default:
		return false, fmt.Errorf("%w: rotation direction %d", ErrInvalidAction, d)
	}
	if !m.IsPlacementAllowed(m.tetromino) {
		if err := m.tetromino.UndoRotate(); err != nil {
			return false, fmt.Errorf("unable to undo rotation: %w", err)
		}
		return false, nil
	}
	return true, nil
}

// StepDown moves the tetromino one row down. It returns true when the
// tetromino has landed and has to be locked with LockDown().
func (m *Matrix) StepDown() (bool, error) {
	moved, err := m.TryMove(0, 1)
	if err != nil {
		return false, err
	}
	return !moved, nil
}

// Drop moves the tetromino down until it lands and returns the rows it travelled.
func (m *Matrix) Drop() (int, error) {
	var n int
	for {
		moved, err := m.TryMove(0, 1)
		if err != nil {
			return n, err
		}
		if !moved {
			return n, nil
		}
		n++
	}
}

// LockDown transfers the tetromino to the stack, clears the complete lines and
// spawns the next tetromino. It returns the number of lines cleared.
// When the next tetromino overlaps the stack the game is over and ErrGameOver
// is returned along with the cleared lines.
func (m *Matrix) LockDown() (int, error) {
	if m.tetromino == nil {
		return 0, ErrNoActivePiece
	}
	if err := m.check(m.tetromino); err != nil {
		return 0, fmt.Errorf("unable to lock tetromino: %w", err)
	}
	for ir, ic := range m.tetromino.Cells() {
		m.stack[m.tetromino.Y+ir][m.tetromino.X+ic] = m.tetromino.Kind
	}
	m.tetromino = nil

	lines := m.ClearLines()
	return lines, m.spawn()
}

// ClearLines removes the complete rows and returns how many were removed.
//
// Rows are checked from the bottom up. When a row is complete every row above
// it moves one down, the top row is emptied and the same row is checked again
// since it now holds what was above it.
func (m *Matrix) ClearLines() int {
	var cleared int
	for r := m.rows - 1; r >= 0; {
		if !m.isComplete(r) {
			r--
			continue
		}
		for above := r; above > 0; above-- {
			copy(m.stack[above], m.stack[above-1])
		}
		clear(m.stack[0])
		cleared++
	}
	m.linesClear += cleared
	return cleared
}

func (m *Matrix) isComplete(r int) bool {
	for _, cell := range m.stack[r] {
		if cell == "" {
			return false
		}
	}
	return true
}

// spawn draws the next tetromino from the spawner and places it on the top
// row, centered unless the spawner asks for a column. A tetromino overlapping
// the stack still becomes the active one and the game is over.
func (m *Matrix) spawn() error {
	s, err := m.spawner.Next()
	if err != nil {
		return fmt.Errorf("unable to spawn tetromino: %w", err)
	}
	t, err := NewTetromino(s.Kind, 0, 0)
	if err != nil {
		return fmt.Errorf("unable to spawn tetromino: %w", err)
	}
	t.X = (m.cols - t.Cols) / 2
	if s.HasColumn {
		t.X = s.Column - t.LeftmostColumn()
	}

	err = m.check(t)
	switch {
	case err == nil:
		m.tetromino = t
		return nil
	case errors.Is(err, ErrCellOccupied):
		// the blocked tetromino stays active so it can be drawn over the stack.
		m.tetromino = t
		m.gameOver = true
		return ErrGameOver
	default:
		return fmt.Errorf("unable to spawn %s at column %d: %w", t.Kind, s.Column, err)
	}
}

// Snapshot returns a copy of the matrix that's safe to read concurrently.
func (m *Matrix) Snapshot() *Snapshot {
	stack := make([][]Kind, len(m.stack))
	for i := range m.stack {
		stack[i] = make([]Kind, len(m.stack[i]))
		copy(stack[i], m.stack[i])
	}
	return &Snapshot{
		Stack:      stack,
		Tetromino:  m.tetromino.copy(),
		LinesClear: m.linesClear,
		GameOver:   m.gameOver,
	}
}
