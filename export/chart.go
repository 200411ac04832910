package export

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	chartWidth  = 1024
	chartHeight = 400
)

// WritePopulationChart renders living cells per generation as a PNG line chart
func WritePopulationChart(path string, populations []int) (err error) {
	if len(populations) == 0 {
		return errors.New("[WritePopulationChart] no population samples")
	}

	xs := make([]float64, len(populations))
	ys := make([]float64, len(populations))
	peak := 0
	for i, p := range populations {
		xs[i] = float64(i + 1)
		ys[i] = float64(p)
		peak = max(peak, p)
	}
	// a single sample has no range to plot
	if len(populations) == 1 {
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	}

	graph := chart.Chart{
		Title:  "Living cells per generation",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Name: "Generation",
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name: "Living cells",
			// explicit so a flat population still has a non-zero range
			Range: &chart.ContinuousRange{Min: 0, Max: float64(peak + 1)},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Population",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 255, G: 204, B: 0, A: 255}, StrokeWidth: 2.0},
			},
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "[WritePopulationChart] failed to create file: %+v", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "[WritePopulationChart] failed to close file: %+v", path)
		}
	}()

	if err = graph.Render(chart.PNG, f); err != nil {
		return errors.Wrapf(err, "[WritePopulationChart] failed to render chart: %+v", path)
	}
	return nil
}
