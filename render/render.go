// Package render draws a matrix snapshot to a terminal or to an image.
package render

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"matrix/tetris"
	"os"
	"strings"
	"text/template"

	"golang.org/x/term"
)

const (
	resetPos    = "\033[H"        // Reset cursor position to 0,0
	clearScreen = "\033[2J\033[H" // Clear the screen and reset the cursor
)

//go:embed "layout.tmpl"
var layout string

type templateData struct {
	Snapshot *tetris.Snapshot
	NoColor  bool
}

type Render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	noColor  bool
	raw      bool
}

type Options struct {
	Writer io.Writer
	Logger *slog.Logger
	// NoColor renders plain characters instead of ANSI colors.
	NoColor bool
	// Raw is set when the console is in raw mode: new lines need a carriage
	// return and every frame is drawn over the previous one.
	Raw bool
}

func New(o *Options) (*Render, error) {
	tmpl, err := loadTemplate(o.Raw)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	var w io.Writer = os.Stdout
	if o.Writer != nil {
		w = o.Writer
	}
	l := o.Logger
	if l == nil {
		l = slog.Default()
	}
	return &Render{
		writer:   w,
		logger:   l,
		template: tmpl,
		noColor:  o.NoColor,
		raw:      o.Raw,
	}, nil
}

// Colorful reports whether f is a terminal that can show ANSI colors.
func Colorful(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Frame draws the snapshot.
func (r *Render) Frame(s *tetris.Snapshot) {
	if s == nil {
		return
	}
	if r.raw {
		fmt.Fprint(r.writer, resetPos)
	}
	if err := r.template.Execute(r.writer, &templateData{Snapshot: s, NoColor: r.noColor}); err != nil {
		r.logger.Error("unable to execute template", slog.String("error", err.Error()))
	}
}

// Lobby draws a message box over the top of the matrix.
func (r *Render) Lobby(msg string) {
	fmt.Fprint(r.writer, "\033[3;2H+------------------------+")
	fmt.Fprintf(r.writer, "\033[4;2H|%s|", center(msg, 24))
	fmt.Fprint(r.writer, "\033[5;2H|                        |")
	fmt.Fprint(r.writer, "\033[6;2H| (p)lay (o)nline (q)uit |")
	fmt.Fprint(r.writer, "\033[7;2H+------------------------+")
}

func (r *Render) Clear() {
	fmt.Fprint(r.writer, clearScreen)
}

func loadTemplate(raw bool) (*template.Template, error) {
	funcMap := template.FuncMap{
		"cells":  cells,
		"border": border,
	}
	l := layout
	if raw {
		// we use the console raw so new lines don't automatically transform into carriage return
		// to fix that we add a carriage return to every new line in the layout.
		l = strings.ReplaceAll(l, "\n", "\r\n")
	}
	return template.New("layout").Funcs(funcMap).Parse(l)
}

func border(t *templateData) string {
	if t == nil || t.Snapshot == nil || len(t.Snapshot.Stack) == 0 {
		return ""
	}
	return strings.Repeat("--", len(t.Snapshot.Stack[0]))
}

// cells renders every cell of the matrix as a two character string.
func cells(t *templateData) [][]string {
	if t == nil || t.Snapshot == nil {
		return nil
	}
	s := t.Snapshot
	rendered := make([][]string, len(s.Stack))

	// renders the stack
	for y, row := range s.Stack {
		rendered[y] = make([]string, len(row))
		for x, v := range row {
			switch {
			case v == "":
				rendered[y][x] = t.cell(White, " .")
			default:
				rendered[y][x] = t.cell(LightGray, "##")
			}
		}
	}

	// renders the current tetromino if exist
	if s.Tetromino != nil {
		for iy, ix := range s.Tetromino.Cells() {
			y, x := s.Tetromino.Y+iy, s.Tetromino.X+ix
			if y < 0 || y >= len(rendered) || x < 0 || x >= len(rendered[y]) {
				continue
			}
			rendered[y][x] = t.cell(colorMap[s.Tetromino.Kind], "[]")
		}
	}
	return rendered
}

func (t *templateData) cell(color, plain string) string {
	if t.NoColor {
		return plain
	}
	return fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", color)
}

// center pads s with spaces on both sides up to width, cutting it when it's longer.
func center(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}
