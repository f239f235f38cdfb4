package render

import (
	"matrix/tetris"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame(t *testing.T) {
	m := tetris.NewTestMatrix(tetris.J)
	_, err := m.Drop()
	require.NoError(t, err)
	_, err = m.LockDown()
	require.NoError(t, err)

	w := &strings.Builder{}
	r, err := New(&Options{Writer: w, NoColor: true})
	require.NoError(t, err)
	r.Frame(m.Snapshot())

	want := strings.Join([]string{
		"+--------------------+",
		"| . . . .[] . . . . .|",
		"| . . . .[] . . . . .|",
		"| . . .[][] . . . . .|",
		"| . . . . . . . . . .|",
		"| . . . . . . . . . .|",
		"| . . . . . . . . . .|",
		"| . . . . . . . . . .|",
		"| . . . .## . . . . .|",
		"| . . . .## . . . . .|",
		"| . . .#### . . . . .|",
		"+--------------------+",
		" lines 0",
		"",
	}, "\n")
	assert.Equal(t, want, w.String())
}

func TestFrameRaw(t *testing.T) {
	w := &strings.Builder{}
	r, err := New(&Options{Writer: w, NoColor: true, Raw: true})
	require.NoError(t, err)
	s := tetris.NewTestMatrix(tetris.Q).Snapshot()
	s.GameOver = true
	r.Frame(s)

	out := w.String()
	assert.True(t, strings.HasPrefix(out, resetPos))
	assert.Contains(t, out, "|\r\n")
	assert.NotContains(t, strings.ReplaceAll(out, "\r\n", ""), "\n")
	assert.Contains(t, out, "game over")
}

func TestCells(t *testing.T) {
	td := &templateData{Snapshot: tetris.NewTestMatrix(tetris.J).Snapshot()}
	td.Snapshot.Stack[9][0] = tetris.T
	got := cells(td)
	require.Len(t, got, 10)

	blueCell := "\x1b[7m\x1b[34m[]\x1b[0m"
	grayCell := "\x1b[7m\x1b[37m[]\x1b[0m"
	whiteCell := "\x1b[7m\x1b[97m[]\x1b[0m"
	assert.Equal(t, blueCell, got[0][4])
	assert.Equal(t, blueCell, got[1][4])
	assert.Equal(t, blueCell, got[2][3])
	assert.Equal(t, blueCell, got[2][4])
	assert.Equal(t, grayCell, got[9][0])
	assert.Equal(t, whiteCell, got[0][0])

	t.Run("cells with nil data renders nothing", func(t *testing.T) {
		assert.Nil(t, cells(nil))
		assert.Nil(t, cells(&templateData{}))
	})
}

func TestPalette(t *testing.T) {
	seen := make(map[string]bool)
	for _, k := range tetris.Kinds {
		c, ok := colorMap[k]
		require.True(t, ok, "missing color for %v", k)
		assert.False(t, seen[c], "color %v used twice", c)
		seen[c] = true
		assert.NotEqual(t, Occupied, Color(k))
		assert.NotEqual(t, Empty, Color(k))
	}
	assert.Equal(t, Occupied, Color(""))
}

func TestCenter(t *testing.T) {
	assert.Equal(t, "  ab  ", center("ab", 6))
	assert.Equal(t, " abc  ", center("abc", 6))
	assert.Equal(t, "abcdef", center("abcdefgh", 6))
}
