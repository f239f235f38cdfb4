package tetris

import (
	"fmt"
	"iter"
	"strings"
)

// Kind identifies the shape of a Tetromino.
type Kind string

const (
	Z Kind = "Z"
	S Kind = "S"
	Q Kind = "Q" // the square, O in the guideline
	I Kind = "I"
	L Kind = "L"
	J Kind = "J"
	T Kind = "T"
)

// Kinds lists every shape in the order the random spawner draws from.
var Kinds = []Kind{Z, S, Q, I, L, J, T}

var shapeMap = map[Kind]func() [][]bool{
	Z: newZ,
	S: newS,
	Q: newQ,
	I: newI,
	L: newL,
	J: newJ,
	T: newT,
}

// ParseKind reads the one letter form of a shape. O is accepted for Q.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToUpper(strings.TrimSpace(s))); k {
	case "O":
		return Q, nil
	case Z, S, Q, I, L, J, T:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidShapeKind, s)
}

type Tetromino struct {
	// Grid is always square so it can be rotated in place.
	// Rows go top to bottom and columns left to right.
	Grid       [][]bool
	Rows, Cols int

	// X and Y are the column and row of Grid's top left cell in the matrix.
	X, Y int
	Kind Kind

	// saved holds the grid as it was before the last rotation.
	saved [][]bool
}

// NewTetromino returns a fresh tetromino of kind k with its top left corner at (x, y).
func NewTetromino(k Kind, x, y int) (*Tetromino, error) {
	shape, ok := shapeMap[k]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidShapeKind, k)
	}
	grid := shape()
	return &Tetromino{
		Grid: grid,
		Rows: len(grid),
		Cols: len(grid),
		X:    x,
		Y:    y,
		Kind: k,
	}, nil
}

// RotateRight rotates the grid clockwise.
//
//	old[row][col]             new[row][col]
//	(0,0) (0,1) (0,2)         (2,0) (1,0) (0,0)
//	(1,0) (1,1) (1,2)         (2,1) (1,1) (0,1)
//	(2,0) (2,1) (2,2)         (2,2) (1,2) (0,2)
func (t *Tetromino) RotateRight() {
	t.save()
	size := t.Rows
	for r := range size {
		for c := range size {
			t.Grid[r][c] = t.saved[size-1-c][r]
		}
	}
}

// RotateLeft rotates the grid counter-clockwise.
//
//	old[row][col]             new[row][col]
//	(0,0) (0,1) (0,2)         (0,2) (1,2) (2,2)
//	(1,0) (1,1) (1,2)         (0,1) (1,1) (2,1)
//	(2,0) (2,1) (2,2)         (0,0) (1,0) (2,0)
func (t *Tetromino) RotateLeft() {
	t.save()
	size := t.Rows
	for r := range size {
		for c := range size {
			t.Grid[r][c] = t.saved[c][size-1-r]
		}
	}
}

// UndoRotate restores the grid saved by the last rotation. The saved grid
// can only be restored once.
func (t *Tetromino) UndoRotate() error {
	if t.saved == nil {
		return ErrNoRotationToUndo
	}
	for r := range t.saved {
		copy(t.Grid[r], t.saved[r])
	}
	t.saved = nil
	return nil
}

func (t *Tetromino) save() {
	t.saved = copyGrid(t.Grid)
}

// Cells yields the row and column of every filled cell, relative to the grid.
func (t *Tetromino) Cells() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for r, row := range t.Grid {
			for c, filled := range row {
				if filled && !yield(r, c) {
					return
				}
			}
		}
	}
}

// LeftmostColumn returns the first grid column holding a filled cell.
func (t *Tetromino) LeftmostColumn() int {
	left := t.Cols
	for _, c := range t.Cells() {
		left = min(left, c)
	}
	return left
}

func (t *Tetromino) copy() *Tetromino {
	if t == nil {
		return nil
	}
	return &Tetromino{
		Grid: copyGrid(t.Grid),
		Rows: t.Rows,
		Cols: t.Cols,
		X:    t.X,
		Y:    t.Y,
		Kind: t.Kind,
	}
}

func copyGrid(g [][]bool) [][]bool {
	out := make([][]bool, len(g))
	for i := range g {
		out[i] = make([]bool, len(g[i]))
		copy(out[i], g[i])
	}
	return out
}

/*
.	Shape
.	0 1 2
0	O O X
1	X O O
2	X X X
*/
func newZ() [][]bool {
	return [][]bool{
		{true, true, false},
		{false, true, true},
		{false, false, false},
	}
}

/*
.	Shape
.	0 1 2
0	X O O
1	O O X
2	X X X
*/
func newS() [][]bool {
	return [][]bool{
		{false, true, true},
		{true, true, false},
		{false, false, false},
	}
}

/*
.	Shape
.	0 1
0	O O
1	O O
*/
func newQ() [][]bool {
	return [][]bool{
		{true, true},
		{true, true},
	}
}

/*
.	Shape
.	0 1 2 3
0	X X X X
1	O O O O
2	X X X X
3	X X X X
*/
func newI() [][]bool {
	return [][]bool{
		{false, false, false, false},
		{true, true, true, true},
		{false, false, false, false},
		{false, false, false, false},
	}
}

/*
.	Shape
.	0 1 2
0	X O X
1	X O X
2	X O O
*/
func newL() [][]bool {
	return [][]bool{
		{false, true, false},
		{false, true, false},
		{false, true, true},
	}
}

/*
.	Shape
.	0 1 2
0	X O X
1	X O X
2	O O X
*/
func newJ() [][]bool {
	return [][]bool{
		{false, true, false},
		{false, true, false},
		{true, true, false},
	}
}

/*
.	Shape
.	0 1 2
0	X O X
1	O O O
2	X X X
*/
func newT() [][]bool {
	return [][]bool{
		{false, true, false},
		{true, true, true},
		{false, false, false},
	}
}
