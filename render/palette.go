package render

import (
	"image/color"
	"matrix/tetris"
)

const (
	// ASCII colors.
	Red       = "31"
	Orange    = "38;5;214"
	Yellow    = "33"
	Green     = "32"
	Cyan      = "36"
	Blue      = "34"
	Pink      = "38;5;218"
	LightGray = "37"
	White     = "97"
)

var colorMap = map[tetris.Kind]string{
	tetris.Z: Red,
	tetris.L: Orange,
	tetris.Q: Yellow,
	tetris.S: Green,
	tetris.I: Cyan,
	tetris.J: Blue,
	tetris.T: Pink,
}

var (
	Occupied = color.RGBA{192, 192, 192, 255}
	Empty    = color.RGBA{255, 255, 255, 255}
)

var rgbaMap = map[tetris.Kind]color.RGBA{
	tetris.Z: {245, 45, 65, 255},
	tetris.L: {255, 200, 0, 255},
	tetris.Q: {255, 255, 0, 255},
	tetris.S: {0, 255, 0, 255},
	tetris.I: {0, 255, 255, 255},
	tetris.J: {76, 181, 245, 255},
	tetris.T: {255, 175, 175, 255},
}

// Color returns the color a tetromino of kind k is drawn with.
func Color(k tetris.Kind) color.RGBA {
	if c, ok := rgbaMap[k]; ok {
		return c
	}
	return Occupied
}
