package model

import (
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	cellRune = '*'

	// cursor home + erase display
	ansiClear = "\033[H\033[2J"

	keyHelp = "[s] start/stop  [n] new game  [g] next generation  [q] quit"
)

var (
	liveCellColor = tcell.NewHexColor(0xffcc00)
	deadCellColor = tcell.NewHexColor(0xeeeeee)

	liveCellStyle = tcell.StyleDefault.Foreground(liveCellColor).Bold(true)
	deadCellStyle = tcell.StyleDefault.Foreground(deadCellColor)
)

// Frame is everything a single paint shows
type Frame struct {
	Grid       *Grid
	Generation int
	Running    bool
	Living     int
	Status     string
}

// Renderer paints frames somewhere
type Renderer interface {
	Display(frame Frame) error
}

func (f Frame) statusLine() string {
	state := "Stopped"
	if f.Running {
		state = "Running"
	}
	line := fmt.Sprintf("Round: %d | Living: %d | %s", f.Generation, f.Living, state)
	if f.Status != "" {
		line += " | " + f.Status
	}
	return line
}

// TerminalRenderer paints the grid as coloured characters on a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
}

func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{screen: screen}
}

// Display draws one character per cell followed by the status and help lines.
// Anything beyond the screen edge is clipped by tcell.
func (r *TerminalRenderer) Display(frame Frame) error {
	if frame.Grid == nil {
		return errors.New("[TerminalRenderer.Display] frame has no grid")
	}

	r.screen.Clear()
	g := frame.Grid
	for row := range g.height {
		for col := range g.width {
			style := deadCellStyle
			if g.cells[row][col] {
				style = liveCellStyle
			}
			r.screen.SetContent(col, row, cellRune, nil, style)
		}
	}

	r.drawText(g.height, frame.statusLine())
	r.drawText(g.height+1, keyHelp)
	r.screen.Show()
	return nil
}

func (r *TerminalRenderer) drawText(row int, text string) {
	col := 0
	for _, ch := range text {
		r.screen.SetContent(col, row, ch, nil, tcell.StyleDefault)
		col++
	}
}

// TextRenderer writes frames as plain block glyphs to a writer
type TextRenderer struct {
	out         io.Writer
	clearScreen bool
}

// NewTextRenderer returns a renderer writing to out; with clearScreen each
// frame starts by clearing an ANSI terminal
func NewTextRenderer(out io.Writer, clearScreen bool) *TextRenderer {
	return &TextRenderer{out: out, clearScreen: clearScreen}
}

// Display renders the grid to the writer
func (r *TextRenderer) Display(frame Frame) error {
	if frame.Grid == nil {
		return errors.New("[TextRenderer.Display] frame has no grid")
	}

	buf := make([]byte, 0, (len(gridPosBlock)*frame.Grid.width+1)*frame.Grid.height+128)
	if r.clearScreen {
		buf = append(buf, ansiClear...)
	}
	buf = append(buf, frame.statusLine()...)
	buf = append(buf, '\n')

	g := frame.Grid
	for row := range g.height {
		for col := range g.width {
			if g.cells[row][col] {
				buf = append(buf, gridPosBlock...)
			} else {
				buf = append(buf, gridPosEmpty...)
			}
		}
		buf = append(buf, '\n')
	}

	if _, err := r.out.Write(buf); err != nil {
		return errors.Wrap(err, "[TextRenderer.Display] failed to write frame")
	}
	return nil
}
