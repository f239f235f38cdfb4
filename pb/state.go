package pb

import (
	"errors"
	"fmt"
	"strings"

	"matrix/tetris"

	"google.golang.org/protobuf/types/known/structpb"
)

// Field names of the messages exchanged by the service.
const (
	FieldGameID       = "game_id"
	FieldAction       = "action"
	FieldRows         = "rows"
	FieldPiece        = "piece"
	FieldLinesCleared = "lines_cleared"
	FieldGameOver     = "game_over"
	FieldOK           = "ok"
	FieldLanded       = "landed"
	FieldLines        = "lines"

	fieldKind  = "kind"
	fieldX     = "x"
	fieldY     = "y"
	fieldSize  = "size"
	fieldCells = "cells"
)

// EmptyCell is the character of an unoccupied cell in State.Rows.
const EmptyCell = '.'

var ErrMalformedMessage = errors.New("malformed message")

// State is the decoded form of the state message.
type State struct {
	GameID string

	// Rows holds one string per matrix row, top to bottom, with one character
	// per cell: EmptyCell or the kind letter that locked it.
	Rows         []string
	Piece        *Piece
	LinesCleared int
	GameOver     bool

	// Outcome of the action that produced the state.
	OK, Landed bool
	Lines      int
}

// Piece is the active tetromino. Cells are the filled (row, col) pairs of its
// Size x Size grid, relative to X and Y.
type Piece struct {
	Kind  string
	X, Y  int
	Size  int
	Cells [][2]int
}

// ActRequest builds the request message of the Act method.
func ActRequest(gameID string, a tetris.Action) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldGameID: structpb.NewStringValue(gameID),
		FieldAction: structpb.NewStringValue(string(a)),
	}}
}

// ParseActRequest reads the game id and action of an Act request.
func ParseActRequest(s *structpb.Struct) (string, tetris.Action, error) {
	fields := s.GetFields()
	id, ok := fields[FieldGameID].GetKind().(*structpb.Value_StringValue)
	if !ok || id.StringValue == "" {
		return "", "", fmt.Errorf("%w: missing %s", ErrMalformedMessage, FieldGameID)
	}
	raw, ok := fields[FieldAction].GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", "", fmt.Errorf("%w: missing %s", ErrMalformedMessage, FieldAction)
	}
	a, err := tetris.ParseAction(raw.StringValue)
	if err != nil {
		return "", "", err
	}
	return id.StringValue, a, nil
}

// FromSnapshot encodes the state of game id after an action with result r.
func FromSnapshot(id string, s *tetris.Snapshot, r tetris.Result) (*structpb.Struct, error) {
	rows := make([]any, len(s.Stack))
	for i, row := range s.Stack {
		var b strings.Builder
		for _, k := range row {
			if k == "" {
				b.WriteRune(EmptyCell)
				continue
			}
			b.WriteString(string(k))
		}
		rows[i] = b.String()
	}

	var piece any
	if t := s.Tetromino; t != nil {
		var cells []any
		for r, c := range t.Cells() {
			cells = append(cells, []any{r, c})
		}
		piece = map[string]any{
			fieldKind:  string(t.Kind),
			fieldX:     t.X,
			fieldY:     t.Y,
			fieldSize:  t.Rows,
			fieldCells: cells,
		}
	}

	out, err := structpb.NewStruct(map[string]any{
		FieldGameID:       id,
		FieldRows:         rows,
		FieldPiece:        piece,
		FieldLinesCleared: s.LinesClear,
		FieldGameOver:     s.GameOver,
		FieldOK:           r.OK,
		FieldLanded:       r.Landed,
		FieldLines:        r.Lines,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to encode state: %w", err)
	}
	return out, nil
}

// ToState decodes a state message.
func ToState(s *structpb.Struct) (*State, error) {
	fields := s.GetFields()
	if fields == nil {
		return nil, fmt.Errorf("%w: empty state", ErrMalformedMessage)
	}
	st := &State{
		GameID:       fields[FieldGameID].GetStringValue(),
		LinesCleared: int(fields[FieldLinesCleared].GetNumberValue()),
		GameOver:     fields[FieldGameOver].GetBoolValue(),
		OK:           fields[FieldOK].GetBoolValue(),
		Landed:       fields[FieldLanded].GetBoolValue(),
		Lines:        int(fields[FieldLines].GetNumberValue()),
	}
	for _, v := range fields[FieldRows].GetListValue().GetValues() {
		st.Rows = append(st.Rows, v.GetStringValue())
	}
	if len(st.Rows) == 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedMessage, FieldRows)
	}

	if p := fields[FieldPiece].GetStructValue(); p != nil {
		pf := p.GetFields()
		piece := &Piece{
			Kind: pf[fieldKind].GetStringValue(),
			X:    int(pf[fieldX].GetNumberValue()),
			Y:    int(pf[fieldY].GetNumberValue()),
			Size: int(pf[fieldSize].GetNumberValue()),
		}
		for _, v := range pf[fieldCells].GetListValue().GetValues() {
			rc := v.GetListValue().GetValues()
			if len(rc) != 2 {
				return nil, fmt.Errorf("%w: piece cell %v", ErrMalformedMessage, v)
			}
			piece.Cells = append(piece.Cells, [2]int{int(rc[0].GetNumberValue()), int(rc[1].GetNumberValue())})
		}
		st.Piece = piece
	}
	return st, nil
}

// Snapshot rebuilds the matrix snapshot described by the state so it can be rendered.
func (s *State) Snapshot() (*tetris.Snapshot, error) {
	stack := make([][]tetris.Kind, len(s.Rows))
	for r, row := range s.Rows {
		stack[r] = make([]tetris.Kind, len(row))
		for c, ch := range row {
			if ch == EmptyCell {
				continue
			}
			k, err := tetris.ParseKind(string(ch))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", r, err)
			}
			stack[r][c] = k
		}
	}

	snap := &tetris.Snapshot{
		Stack:      stack,
		LinesClear: s.LinesCleared,
		GameOver:   s.GameOver,
	}
	if p := s.Piece; p != nil {
		k, err := tetris.ParseKind(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("piece: %w", err)
		}
		if p.Size <= 0 {
			return nil, fmt.Errorf("%w: piece size %d", ErrMalformedMessage, p.Size)
		}
		grid := make([][]bool, p.Size)
		for i := range grid {
			grid[i] = make([]bool, p.Size)
		}
		for _, rc := range p.Cells {
			if rc[0] < 0 || rc[0] >= p.Size || rc[1] < 0 || rc[1] >= p.Size {
				return nil, fmt.Errorf("%w: piece cell %v outside a %dx%d grid", ErrMalformedMessage, rc, p.Size, p.Size)
			}
			grid[rc[0]][rc[1]] = true
		}
		snap.Tetromino = &tetris.Tetromino{
			Grid: grid,
			Rows: p.Size,
			Cols: p.Size,
			X:    p.X,
			Y:    p.Y,
			Kind: k,
		}
	}
	return snap, nil
}
