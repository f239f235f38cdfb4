package pb

import (
	"testing"

	"matrix/tetris"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestFromSnapshot(t *testing.T) {
	m := tetris.NewTestMatrix(tetris.T)
	r, err := m.Apply(tetris.DropDown)
	require.NoError(t, err)

	s, err := FromSnapshot("abc", m.Snapshot(), r)
	require.NoError(t, err)

	st, err := ToState(s)
	require.NoError(t, err)

	assert.Equal(t, "abc", st.GameID)
	assert.True(t, st.OK)
	assert.True(t, st.Landed)
	assert.Equal(t, 0, st.Lines)
	assert.False(t, st.GameOver)
	require.Len(t, st.Rows, tetris.DefaultRows)
	assert.Equal(t, "..........", st.Rows[0])
	assert.Equal(t, "....T.....", st.Rows[8])
	assert.Equal(t, "...TTT....", st.Rows[9])

	require.NotNil(t, st.Piece)
	assert.Equal(t, "T", st.Piece.Kind)
	assert.Equal(t, 3, st.Piece.X)
	assert.Equal(t, 0, st.Piece.Y)
	assert.Equal(t, 3, st.Piece.Size)
	assert.Equal(t, [][2]int{{0, 1}, {1, 0}, {1, 1}, {1, 2}}, st.Piece.Cells)
}

func TestStateSnapshot(t *testing.T) {
	m := tetris.NewTestMatrix(tetris.L)
	_, err := m.Apply(tetris.DropDown)
	require.NoError(t, err)
	_, err = m.Apply(tetris.RotateRight)
	require.NoError(t, err)
	want := m.Snapshot()

	s, err := FromSnapshot("id", want, tetris.Result{OK: true})
	require.NoError(t, err)
	st, err := ToState(s)
	require.NoError(t, err)
	got, err := st.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, want.Stack, got.Stack)
	assert.Equal(t, want.LinesClear, got.LinesClear)
	assert.Equal(t, want.GameOver, got.GameOver)
	require.NotNil(t, got.Tetromino)
	assert.Equal(t, want.Tetromino.Grid, got.Tetromino.Grid)
	assert.Equal(t, want.Tetromino.X, got.Tetromino.X)
	assert.Equal(t, want.Tetromino.Y, got.Tetromino.Y)
	assert.Equal(t, want.Tetromino.Kind, got.Tetromino.Kind)
}

func TestStateWithoutPiece(t *testing.T) {
	snap := &tetris.Snapshot{
		Stack:    [][]tetris.Kind{{"", tetris.Z}, {tetris.I, ""}},
		GameOver: true,
	}
	s, err := FromSnapshot("over", snap, tetris.Result{})
	require.NoError(t, err)

	st, err := ToState(s)
	require.NoError(t, err)
	assert.Nil(t, st.Piece)
	assert.True(t, st.GameOver)
	assert.Equal(t, []string{".Z", "I."}, st.Rows)

	got, err := st.Snapshot()
	require.NoError(t, err)
	assert.Nil(t, got.Tetromino)
	assert.Equal(t, snap.Stack, got.Stack)
}

func TestToStateErrors(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
	}{
		{name: "empty message", in: map[string]any{}},
		{name: "no rows", in: map[string]any{FieldGameID: "a"}},
		{
			name: "bad piece cell",
			in: map[string]any{
				FieldRows:  []any{"...."},
				FieldPiece: map[string]any{fieldKind: "Q", fieldSize: 2, fieldCells: []any{[]any{1}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := structpb.NewStruct(tt.in)
			require.NoError(t, err)
			_, err = ToState(s)
			assert.ErrorIs(t, err, ErrMalformedMessage)
		})
	}
}

func TestStateSnapshotErrors(t *testing.T) {
	t.Run("unknown kind in rows", func(t *testing.T) {
		_, err := (&State{Rows: []string{"..X."}}).Snapshot()
		assert.ErrorIs(t, err, tetris.ErrInvalidShapeKind)
	})
	t.Run("negative piece size", func(t *testing.T) {
		st := &State{Rows: []string{"...."}, Piece: &Piece{Kind: "Q", Size: -1}}
		_, err := st.Snapshot()
		assert.ErrorIs(t, err, ErrMalformedMessage)
	})
	t.Run("cell outside the grid", func(t *testing.T) {
		st := &State{Rows: []string{"...."}, Piece: &Piece{Kind: "Q", Size: 2, Cells: [][2]int{{2, 0}}}}
		_, err := st.Snapshot()
		assert.ErrorIs(t, err, ErrMalformedMessage)
	})
}

func TestParseActRequest(t *testing.T) {
	tests := []struct {
		name    string
		in      *structpb.Struct
		id      string
		action  tetris.Action
		wantErr error
	}{
		{
			name:   "valid request",
			in:     ActRequest("g1", tetris.RotateLeft),
			id:     "g1",
			action: tetris.RotateLeft,
		},
		{
			name:    "missing id",
			in:      ActRequest("", tetris.MoveLeft),
			wantErr: ErrMalformedMessage,
		},
		{
			name:    "missing action",
			in:      &structpb.Struct{Fields: map[string]*structpb.Value{FieldGameID: structpb.NewStringValue("g1")}},
			wantErr: ErrMalformedMessage,
		},
		{
			name:    "unknown action",
			in:      ActRequest("g1", "jump"),
			wantErr: tetris.ErrInvalidAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, a, err := ParseActRequest(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.action, a)
		})
	}
}
