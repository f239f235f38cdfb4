package render

import (
	"bytes"
	"image"
	"image/png"
	"matrix/tetris"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellRect(t *testing.T) {
	assert.Equal(t, image.Rect(0, 0, 32, 32), CellRect(0, 0, CellSize))
	assert.Equal(t, image.Rect(96, 64, 128, 96), CellRect(2, 3, CellSize))
}

func TestImage(t *testing.T) {
	s := tetris.NewTestMatrix(tetris.Q).Snapshot()
	s.Stack[9][0] = tetris.T
	img := Image(s, 4)

	require.Equal(t, image.Rect(0, 0, 40, 40), img.Bounds())
	// Q spawns on (4, 0) to (5, 1)
	assert.Equal(t, Color(tetris.Q), img.RGBAAt(4*4, 0))
	assert.Equal(t, Color(tetris.Q), img.RGBAAt(5*4+3, 1*4+3))
	assert.Equal(t, Occupied, img.RGBAAt(1, 9*4+2))
	assert.Equal(t, Empty, img.RGBAAt(0, 0))
	assert.Equal(t, Empty, img.RGBAAt(39, 39))
}

func TestWritePNG(t *testing.T) {
	s := tetris.NewTestMatrix(tetris.I).Snapshot()
	buf := &bytes.Buffer{}
	require.NoError(t, WritePNG(buf, s, CellSize))

	img, err := png.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 320), img.Bounds())

	assert.Error(t, WritePNG(buf, s, 0))
	assert.Error(t, WritePNG(buf, nil, CellSize))
}

func TestImageNilSnapshot(t *testing.T) {
	img := Image(nil, CellSize)
	require.NotNil(t, img)
	assert.True(t, img.Bounds().Empty())
}
