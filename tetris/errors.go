package tetris

import "errors"

var (
	ErrInvalidShapeKind  = errors.New("invalid shape kind")
	ErrNoActivePiece     = errors.New("no active tetromino")
	ErrNoRotationToUndo  = errors.New("no rotation to undo")
	ErrOutOfBounds       = errors.New("cell is out of bounds")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidDimensions = errors.New("invalid matrix dimensions")
	ErrInvalidToken      = errors.New("invalid feed token")
	ErrInvalidAction     = errors.New("invalid action")
	ErrFeedExhausted     = errors.New("feed has no more placements")
	ErrGameOver          = errors.New("game over")
	ErrGameStarted       = errors.New("game already started")
)
