package model

const historySize = 5

// History remembers the hashes of recent generations to detect still lifes
// and short-period oscillators
type History struct {
	hashes []string
}

func NewHistory() *History {
	return &History{hashes: make([]string, 0, historySize+1)}
}

// Record adds the grid's hash, keeping only the last few generations
func (h *History) Record(g *Grid) {
	h.hashes = append(h.hashes, g.GetGridHash())
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// Reset forgets every recorded generation
func (h *History) Reset() {
	h.hashes = h.hashes[:0]
}

// Len returns how many generations are remembered
func (h *History) Len() int {
	return len(h.hashes)
}

// IsStagnant reports whether g repeats one of the last three recorded
// generations, i.e. the board is static or cycling with period 3 or less
func (h *History) IsStagnant(g *Grid) bool {
	if len(h.hashes) < 3 {
		return false
	}

	current := g.GetGridHash()
	for i := 1; i <= 3; i++ {
		if h.hashes[len(h.hashes)-i] == current {
			return true
		}
	}
	return false
}
