package model

// AddGlider stamps a glider with its top-left corner at (startRow, startCol)
func (g *Grid) AddGlider(startRow, startCol int) {
	pattern := [][]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	}

	for r, row := range pattern {
		for c, cell := range row {
			g.Set(startRow+r, startCol+c, cell)
		}
	}
}

// AddBlinker stamps a horizontal period-2 blinker
func (g *Grid) AddBlinker(startRow, startCol int) {
	g.Set(startRow, startCol, true)
	g.Set(startRow, startCol+1, true)
	g.Set(startRow, startCol+2, true)
}

// AddBlock stamps a 2x2 still life
func (g *Grid) AddBlock(startRow, startCol int) {
	g.Set(startRow, startCol, true)
	g.Set(startRow, startCol+1, true)
	g.Set(startRow+1, startCol, true)
	g.Set(startRow+1, startCol+1, true)
}
