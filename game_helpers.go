package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/gernest/wow"
	"github.com/gernest/wow/spin"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/life-canvas/export"
	"github.com/sheikhrachel/life-canvas/game"
	"github.com/sheikhrachel/life-canvas/model"
	"github.com/sheikhrachel/life-canvas/utils"
)

// run wires configuration, renderers and the controller for the chosen mode
func run(ctx context.Context, quit context.CancelFunc, opts options) (err error) {
	config, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.generations > 0 {
		config.MaxGenerations = opts.generations
	}
	if opts.headless && config.MaxGenerations == 0 {
		return errors.New("[run] headless mode needs -generations or max_generations")
	}

	logger, closeLog, err := newLogger(config, opts.headless)
	if err != nil {
		return err
	}
	defer closeLog()

	var (
		sim       = game.NewSimulation(config)
		renderers []model.Renderer
		recorder  *export.Recorder
	)

	if opts.recordPath != "" {
		recorder, err = export.NewRecorder(opts.recordPath, config.Width, config.Height, config.CellSize, config.VideoFPS)
		if err != nil {
			return err
		}
		renderers = append(renderers, recorder)
	}

	var ctrl *game.Controller
	switch {
	case opts.headless:
		if opts.textMode {
			renderers = append(renderers, model.NewTextRenderer(os.Stdout, false))
		}
		ctrl = game.NewController(config, sim, logger, renderers...)
		displayGameInfo(config, sim)
		err = ctrl.RunHeadless(ctx, config.MaxGenerations, os.Stderr)

	case opts.textMode:
		renderers = append(renderers, model.NewTextRenderer(os.Stdout, true))
		ctrl = game.NewController(config, sim, logger, renderers...)
		if err = ctrl.Send(ctx, game.ToggleRun); err != nil {
			return errors.Wrap(err, "[run] failed to start the game")
		}
		err = ctrl.Run(ctx)

	default:
		ctrl, err = runInteractive(ctx, quit, config, sim, logger, renderers)
	}

	if exportErr := writeExports(ctrl, opts.chartPath, recorder); err == nil {
		err = exportErr
	}
	if err != nil {
		return err
	}

	displayFinalStats(ctrl.Stats())
	return nil
}

// runInteractive paints into a full-screen tcell view and maps keys to commands
func runInteractive(
	ctx context.Context,
	quit context.CancelFunc,
	config utils.Config,
	sim *game.Simulation,
	logger *slog.Logger,
	renderers []model.Renderer,
) (*game.Controller, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "[runInteractive] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return nil, errors.Wrap(err, "[runInteractive] failed to initialise screen")
	}
	defer screen.Fini()

	renderers = append(renderers, model.NewTerminalRenderer(screen))
	ctrl := game.NewController(config, sim, logger, renderers...)

	go pollKeys(ctx, screen, ctrl, quit)

	return ctrl, ctrl.Run(ctx)
}

// pollKeys forwards key presses until the screen is finalised or quit is pressed
func pollKeys(ctx context.Context, screen tcell.Screen, ctrl *game.Controller, quit context.CancelFunc) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			cmd, action := translateKey(ev)
			switch action {
			case keyQuit:
				quit()
				return
			case keyCommand:
				if err := ctrl.Send(ctx, cmd); err != nil {
					return
				}
			}
		}
	}
}

// loadConfig reads the config file, falling back to defaults only when it does not exist
func loadConfig(path string) (utils.Config, error) {
	config, err := utils.LoadConfig(path)
	if err == nil {
		return config, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Using default configuration (%s not found)\n", path)
		return utils.DefaultConfig(), nil
	}
	return config, err
}

// newLogger logs to the configured file, to stderr in headless mode, and
// nowhere otherwise since the terminal belongs to the game view
func newLogger(config utils.Config, headless bool) (*slog.Logger, func(), error) {
	if config.LogFile != "" {
		f, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "[newLogger] failed to open log file: %+v", config.LogFile)
		}
		return slog.New(slog.NewTextHandler(f, nil)), func() { _ = f.Close() }, nil
	}

	out := io.Discard
	if headless {
		out = os.Stderr
	}
	return slog.New(slog.NewTextHandler(out, nil)), func() {}, nil
}

// writeExports finalises the video and writes the population chart
func writeExports(ctrl *game.Controller, chartPath string, recorder *export.Recorder) error {
	if chartPath == "" && recorder == nil {
		return nil
	}

	w := wow.New(os.Stderr, spin.Get(spin.Dots), " Writing exports")
	w.Start()

	if recorder != nil {
		if err := recorder.Close(); err != nil {
			w.Stop()
			return err
		}
	}
	if chartPath != "" && ctrl != nil {
		if err := export.WritePopulationChart(chartPath, ctrl.Stats().PopulationHistory); err != nil {
			w.Stop()
			return err
		}
	}

	w.PersistWith(spin.Spinner{Frames: []string{"✔"}}, " Exports written")
	return nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, sim *game.Simulation) {
	fmt.Printf("Grid: %dx%d | Initial living cells: %d | Generations: %d\n",
		config.Width, config.Height, sim.Grid().CountLivingCells(), config.MaxGenerations)
}

// displayFinalStats prints the run summary once the screen is gone
func displayFinalStats(stats *utils.Stats) {
	fmt.Printf("Final stats: %d generations in %.1f seconds\n",
		stats.TotalGenerations, stats.Runtime().Seconds())
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
		stats.GenerationsPerSecond, stats.AveragePopulation)
}
