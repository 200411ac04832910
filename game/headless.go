package game

import (
	"context"
	"io"

	"github.com/cheggaaa/pb/v3"
)

// RunHeadless advances the given number of generations back to back, without
// a timer, painting each one. Progress is drawn to progress when non-nil.
// Cancelling ctx stops early without an error.
func (c *Controller) RunHeadless(ctx context.Context, generations int, progress io.Writer) error {
	if progress == nil {
		progress = io.Discard
	}

	bar := pb.New(generations).SetWriter(progress).Start()
	defer bar.Finish()

	if err := c.paint(); err != nil {
		return err
	}

	for range generations {
		if ctx.Err() != nil {
			c.logger.Info("headless run interrupted", "generation", c.sim.Generation())
			return nil
		}
		if err := c.play(); err != nil {
			return err
		}
		bar.Increment()
	}

	c.logger.Info("headless run finished",
		"generations", generations,
		"average_population", c.stats.AveragePopulation)
	return nil
}
