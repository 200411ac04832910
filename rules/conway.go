package rules

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

  - a live cell with two or three live neighbours lives on
  - a live cell with fewer than two or more than three live neighbours dies
  - a dead cell with exactly three live neighbours becomes alive
  - any other dead cell stays dead
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if alive {
		return neighbors == 2 || neighbors == 3
	}
	return neighbors == 3
}
