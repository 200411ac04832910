package model

import (
	"crypto/md5"
	"fmt"
	"math/rand"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/life-canvas/rules"
)

const (
	aliveGlyph = '*'
	deadGlyph  = '.'
)

// Grid is one generation of the board. Once handed to Advance it is treated as
// a read-only snapshot; the next generation is always a different Grid.
type Grid struct {
	width  int
	height int
	cells  [][]bool
}

// NewGrid creates an all-dead grid with the specified dimensions
func NewGrid(width, height int) *Grid {
	cells := make([][]bool, height)
	for i := range cells {
		cells[i] = make([]bool, width)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// Initialize creates a grid where every cell is independently alive with
// probability aliveProbability. A nil rng uses the package-level source.
func Initialize(width, height int, aliveProbability float64, rng *rand.Rand) *Grid {
	g := NewGrid(width, height)
	g.randomize(aliveProbability, rng)
	return g
}

// ParseGrid builds a grid from rows of '*' (alive) and any other rune (dead).
// The width is taken from the longest row.
func ParseGrid(rows ...string) *Grid {
	width := 0
	for _, row := range rows {
		width = max(width, len([]rune(row)))
	}

	g := NewGrid(width, len(rows))
	for r, row := range rows {
		for c, ch := range []rune(row) {
			g.cells[r][c] = ch == aliveGlyph
		}
	}
	return g
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// reset resizes the grid to new dimensions and kills every cell
func (g *Grid) reset(width, height int) {
	g.width = width
	g.height = height

	if len(g.cells) != height {
		g.cells = make([][]bool, height)
	}
	for i := range g.cells {
		if len(g.cells[i]) != width {
			g.cells[i] = make([]bool, width)
			continue
		}
		clear(g.cells[i])
	}
}

// Clear kills every cell
func (g *Grid) Clear() {
	for row := range g.cells {
		clear(g.cells[row])
	}
}

// Set sets a cell to alive (true) or dead (false). Out-of-range positions are ignored.
func (g *Grid) Set(row, col int, alive bool) {
	if g.inBounds(row, col) {
		g.cells[row][col] = alive
	}
}

// Get returns the state of a cell; positions off the grid are dead
func (g *Grid) Get(row, col int) bool {
	if !g.inBounds(row, col) {
		return false
	}
	return g.cells[row][col]
}

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// CountLiveNeighbors counts living cells in the Moore neighbourhood of (row, col).
// Positions outside the grid count as dead; there is no wraparound.
func (g *Grid) CountLiveNeighbors(row, col int) int {
	count := 0

	minRow := max(0, row-1)
	maxRow := min(g.height-1, row+1)
	minCol := max(0, col-1)
	maxCol := min(g.width-1, col+1)

	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			if r == row && c == col {
				continue
			}
			if g.cells[r][c] {
				count++
			}
		}
	}

	return count
}

// Advance computes the next generation into a new grid. The receiver is only
// read, so every cell sees the same previous generation. Rows are split into
// bands processed in parallel. A nil pool allocates a fresh grid.
func (g *Grid) Advance(pool *GridPool) *Grid {
	next := newFromPool(pool, g.width, g.height)

	var (
		eg            errgroup.Group
		numWorkers    = runtime.NumCPU()
		rowsPerWorker = (g.height + numWorkers - 1) / numWorkers
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.height)
		)
		if startRow >= g.height {
			break
		}

		eg.Go(func() error {
			for row := startRow; row < endRow; row++ {
				for col := range g.width {
					next.cells[row][col] = rules.ApplyConwayRules(g.CountLiveNeighbors(row, col), g.cells[row][col])
				}
			}
			return nil
		})
	}

	// workers never return an error
	_ = eg.Wait()

	return next
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, row := range g.cells {
		for _, alive := range row {
			if alive {
				count++
			}
		}
	}
	return
}

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	h := md5.New()
	buf := make([]byte, g.width)
	for _, row := range g.cells {
		for col, alive := range row {
			buf[col] = 0
			if alive {
				buf[col] = 1
			}
		}
		h.Write(buf)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Equal reports whether both grids have the same dimensions and cells
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for row := range g.cells {
		for col := range g.cells[row] {
			if g.cells[row][col] != other.cells[row][col] {
				return false
			}
		}
	}
	return true
}

// Clone returns a copy of the grid, taken from the pool when one is given
func (g *Grid) Clone(pool *GridPool) *Grid {
	c := newFromPool(pool, g.width, g.height)
	for row := range g.cells {
		copy(c.cells[row], g.cells[row])
	}
	return c
}

// WithRandomLife returns a copy of the grid with count random cells set alive.
// It breaks stagnation without touching the original snapshot.
func (g *Grid) WithRandomLife(count int, rng *rand.Rand, pool *GridPool) *Grid {
	c := g.Clone(pool)
	if g.width == 0 || g.height == 0 {
		return c
	}
	for range count {
		c.Set(intn(rng, g.height), intn(rng, g.width), true)
	}
	return c
}

// String renders the grid as rows of '*' and '.' separated by newlines
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for row := range g.cells {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for _, alive := range g.cells[row] {
			if alive {
				sb.WriteRune(aliveGlyph)
			} else {
				sb.WriteRune(deadGlyph)
			}
		}
	}
	return sb.String()
}

// randomize sets every cell alive with the given density
func (g *Grid) randomize(density float64, rng *rand.Rand) {
	for row := range g.cells {
		for col := range g.cells[row] {
			g.cells[row][col] = float64n(rng) < density
		}
	}
}

func newFromPool(pool *GridPool, width, height int) *Grid {
	if pool != nil {
		return pool.Get(width, height)
	}
	return NewGrid(width, height)
}

func float64n(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}

func intn(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.Intn(n)
	}
	return rng.Intn(n)
}
