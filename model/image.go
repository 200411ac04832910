package model

import (
	"image"
	"image/color"
)

var (
	liveCellRGBA = color.RGBA{R: 0xff, G: 0xcc, B: 0x00, A: 0xff}
	deadCellRGBA = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
)

// Image rasterises the grid with each cell drawn as a cellSize square
func (g *Grid) Image(cellSize int) *image.RGBA {
	cellSize = max(cellSize, 1)
	img := image.NewRGBA(image.Rect(0, 0, g.width*cellSize, g.height*cellSize))

	for row := range g.height {
		for col := range g.width {
			c := deadCellRGBA
			if g.cells[row][col] {
				c = liveCellRGBA
			}
			for y := row * cellSize; y < (row+1)*cellSize; y++ {
				for x := col * cellSize; x < (col+1)*cellSize; x++ {
					img.SetRGBA(x, y, c)
				}
			}
		}
	}
	return img
}
