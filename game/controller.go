package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/life-canvas/model"
	"github.com/sheikhrachel/life-canvas/utils"
)

// Command is a request from the user to the game loop
type Command uint8

const (
	// ToggleRun stops a running game, or seeds a new one and starts ticking
	ToggleRun Command = iota
	// NewGame stops the timer and seeds a new board
	NewGame
	// NextGeneration advances a single generation while stopped
	NextGeneration
)

func (c Command) String() string {
	switch c {
	case ToggleRun:
		return "toggle-run"
	case NewGame:
		return "new-game"
	case NextGeneration:
		return "next-generation"
	}
	return fmt.Sprintf("command(%d)", uint8(c))
}

// Controller drives a Simulation: it turns commands and timer ticks into
// generations and paints each one. Only the goroutine in Run touches the
// simulation.
type Controller struct {
	config    utils.Config
	sim       *Simulation
	renderers []model.Renderer
	stats     *utils.Stats
	logger    *slog.Logger
	commands  chan Command

	ticker    *time.Ticker
	status    string
	lastFrame time.Time
}

func NewController(config utils.Config, sim *Simulation, logger *slog.Logger, renderers ...model.Renderer) *Controller {
	return &Controller{
		config:    config,
		sim:       sim,
		renderers: renderers,
		stats:     utils.NewStats(),
		logger:    logger,
		commands:  make(chan Command, 8),
		lastFrame: time.Now(),
	}
}

// Send delivers a command to the loop, giving up when ctx is done
func (c *Controller) Send(ctx context.Context, cmd Command) error {
	select {
	case c.commands <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns the collected statistics. Read it only after Run has returned.
func (c *Controller) Stats() *utils.Stats {
	return c.stats
}

// Run paints the current board and then serves commands and ticks until ctx
// is cancelled. Ticks are handled synchronously, so they never overlap.
func (c *Controller) Run(ctx context.Context) error {
	defer c.stop()

	if err := c.paint(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("game loop shutting down",
				"generation", c.sim.Generation(),
				"runtime", c.stats.Runtime().Round(time.Millisecond))
			return nil

		case cmd := <-c.commands:
			if err := c.handle(cmd); err != nil {
				return err
			}

		case <-c.tick():
			if err := c.play(); err != nil {
				return err
			}
		}
	}
}

func (c *Controller) handle(cmd Command) error {
	c.logger.Debug("command received", "command", cmd, "running", c.running())

	switch cmd {
	case ToggleRun:
		if c.running() {
			c.stop()
			c.status = ""
			c.logger.Info("game stopped", "generation", c.sim.Generation())
			return c.paint()
		}
		c.sim.Reset()
		c.start()
		c.status = ""
		c.logger.Info("game started", "tick_interval", c.config.TickInterval)
		return c.paint()

	case NewGame:
		c.stop()
		c.sim.Reset()
		c.status = ""
		c.logger.Info("new game seeded", "living", c.sim.Grid().CountLivingCells())
		return c.paint()

	case NextGeneration:
		if c.running() {
			return nil
		}
		return c.play()
	}

	c.logger.Warn("unknown command ignored", "command", cmd)
	return nil
}

// play runs one generation and paints it
func (c *Controller) play() error {
	frameStart := time.Now()
	res := c.sim.Step()
	c.stats.Update(res.Generation, res.Living, frameStart.Sub(c.lastFrame))
	c.lastFrame = frameStart

	c.status = describeStep(res)
	if res.Restarted {
		c.logger.Info("game restarted", "reason", res.Reason, "living", res.Living)
	}

	if c.config.MaxGenerations > 0 && res.Generation >= c.config.MaxGenerations && c.running() {
		c.stop()
		c.status = fmt.Sprintf("Reached maximum generations (%d)", c.config.MaxGenerations)
		c.logger.Info("generation limit reached", "max_generations", c.config.MaxGenerations)
	}

	return c.paint()
}

func (c *Controller) paint() error {
	grid := c.sim.Grid()
	frame := model.Frame{
		Grid:       grid,
		Generation: c.sim.Generation(),
		Running:    c.running(),
		Living:     grid.CountLivingCells(),
		Status:     c.status,
	}

	for _, r := range c.renderers {
		if err := r.Display(frame); err != nil {
			return errors.Wrapf(err, "[Controller.paint] generation %d", frame.Generation)
		}
	}
	return nil
}

func (c *Controller) running() bool {
	return c.ticker != nil
}

func (c *Controller) start() {
	c.stop()
	c.ticker = time.NewTicker(c.config.TickInterval)
	c.lastFrame = time.Now()
}

func (c *Controller) stop() {
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	c.ticker = nil
}

// tick returns the ticker channel, or nil (blocks forever) while stopped
func (c *Controller) tick() <-chan time.Time {
	if c.ticker == nil {
		return nil
	}
	return c.ticker.C
}
