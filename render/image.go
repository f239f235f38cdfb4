package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"matrix/tetris"
)

// CellSize is the width and height of a cell in pixels.
const CellSize = 32

// CellRect returns the pixel rectangle of the cell at row r and column c.
func CellRect(r, c, size int) image.Rectangle {
	return image.Rect(c*size, r*size, (c+1)*size, (r+1)*size)
}

// Image draws the snapshot with cells of size pixels. Locked cells are light
// gray, empty cells white and the tetromino takes the color of its kind.
// A nil snapshot is an empty image.
func Image(s *tetris.Snapshot, size int) *image.RGBA {
	if s == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	var rows, cols int
	rows = len(s.Stack)
	if rows > 0 {
		cols = len(s.Stack[0])
	}
	img := image.NewRGBA(image.Rect(0, 0, cols*size, rows*size))
	for r, row := range s.Stack {
		for c, v := range row {
			col := Empty
			if v != "" {
				col = Occupied
			}
			fill(img, CellRect(r, c, size), col)
		}
	}
	if s.Tetromino != nil {
		for ir, ic := range s.Tetromino.Cells() {
			r, c := s.Tetromino.Y+ir, s.Tetromino.X+ic
			if r < 0 || r >= rows || c < 0 || c >= cols {
				continue
			}
			fill(img, CellRect(r, c, size), Color(s.Tetromino.Kind))
		}
	}
	return img
}

func fill(img draw.Image, rect image.Rectangle, c color.Color) {
	draw.Draw(img, rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// WritePNG encodes the snapshot as a PNG image.
func WritePNG(w io.Writer, s *tetris.Snapshot, size int) error {
	if size <= 0 {
		return fmt.Errorf("invalid cell size %d", size)
	}
	if s == nil {
		return errors.New("no snapshot to encode")
	}
	if err := png.Encode(w, Image(s, size)); err != nil {
		return fmt.Errorf("unable to encode png: %w", err)
	}
	return nil
}
