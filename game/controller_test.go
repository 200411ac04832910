package game

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/life-canvas/model"
	"github.com/sheikhrachel/life-canvas/utils"
)

// recordingRenderer copies every frame onto a channel
type recordingRenderer struct {
	frames chan model.Frame
	err    error
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{frames: make(chan model.Frame, 1024)}
}

func (r *recordingRenderer) Display(frame model.Frame) error {
	if r.err != nil {
		return r.err
	}
	frame.Grid = frame.Grid.Clone(nil)
	r.frames <- frame
	return nil
}

func (r *recordingRenderer) next(t *testing.T) model.Frame {
	t.Helper()
	select {
	case f := <-r.frames:
		return f
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a frame")
	}
	return model.Frame{}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() utils.Config {
	config := utils.DefaultConfig()
	config.Width = 20
	config.Height = 15
	config.Seed = 99
	// long enough that no tick fires unless a test wants one
	config.TickInterval = time.Hour
	return config
}

type runningController struct {
	ctrl     *Controller
	renderer *recordingRenderer
	cancel   context.CancelFunc
	done     chan error
}

func startController(t *testing.T, config utils.Config) *runningController {
	t.Helper()
	renderer := newRecordingRenderer()
	ctrl := NewController(config, NewSimulation(config), discardLogger(), renderer)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ctrl.Run(ctx) }()

	rc := &runningController{ctrl: ctrl, renderer: renderer, cancel: cancel, done: done}
	t.Cleanup(func() { rc.shutdown(t) })
	return rc
}

func (rc *runningController) send(t *testing.T, cmd Command) {
	t.Helper()
	if err := rc.ctrl.Send(context.Background(), cmd); err != nil {
		t.Fatalf("send %v: %v", cmd, err)
	}
}

func (rc *runningController) shutdown(t *testing.T) {
	t.Helper()
	rc.cancel()
	select {
	case err := <-rc.done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("Run did not return after cancel")
	}
}

func TestControllerPaintsInitialBoard(t *testing.T) {
	rc := startController(t, testConfig())

	f := rc.renderer.next(t)
	if f.Generation != 0 || f.Running {
		t.Errorf("initial frame: generation %d running %v", f.Generation, f.Running)
	}
	if f.Grid.GetWidth() != 20 || f.Grid.GetHeight() != 15 {
		t.Errorf("grid is %dx%d, want 20x15", f.Grid.GetWidth(), f.Grid.GetHeight())
	}
	if f.Living != f.Grid.CountLivingCells() {
		t.Errorf("frame reports %d living, grid has %d", f.Living, f.Grid.CountLivingCells())
	}
}

func TestControllerNextGeneration(t *testing.T) {
	rc := startController(t, testConfig())
	initial := rc.renderer.next(t)

	rc.send(t, NextGeneration)
	f := rc.renderer.next(t)

	if f.Generation != 1 {
		t.Errorf("generation = %d, want 1", f.Generation)
	}
	if want := initial.Grid.Advance(nil); !f.Grid.Equal(want) {
		t.Error("painted grid is not the advanced initial grid")
	}
}

func TestControllerNewGameResetsGeneration(t *testing.T) {
	rc := startController(t, testConfig())
	rc.renderer.next(t)

	rc.send(t, NextGeneration)
	rc.send(t, NextGeneration)
	rc.renderer.next(t)
	if f := rc.renderer.next(t); f.Generation != 2 {
		t.Fatalf("generation = %d, want 2", f.Generation)
	}

	rc.send(t, NewGame)
	f := rc.renderer.next(t)
	if f.Generation != 0 || f.Running {
		t.Errorf("after new game: generation %d running %v", f.Generation, f.Running)
	}
}

func TestControllerToggleRun(t *testing.T) {
	rc := startController(t, testConfig())
	rc.renderer.next(t)

	rc.send(t, ToggleRun)
	started := rc.renderer.next(t)
	if !started.Running || started.Generation != 0 {
		t.Fatalf("after start: running %v generation %d", started.Running, started.Generation)
	}

	// ignored while running
	rc.send(t, NextGeneration)
	rc.send(t, ToggleRun)
	stopped := rc.renderer.next(t)
	if stopped.Running {
		t.Error("still running after second toggle")
	}
	if stopped.Generation != 0 {
		t.Errorf("next generation was applied while running: generation %d", stopped.Generation)
	}
}

func TestControllerTicksUntilGenerationLimit(t *testing.T) {
	config := testConfig()
	config.TickInterval = time.Millisecond
	config.MaxGenerations = 5
	rc := startController(t, config)
	rc.renderer.next(t)

	rc.send(t, ToggleRun)
	var last model.Frame
	for {
		last = rc.renderer.next(t)
		if last.Generation > 0 && !last.Running {
			break
		}
	}

	if last.Generation != 5 {
		t.Errorf("stopped at generation %d, want 5", last.Generation)
	}
	if last.Status == "" {
		t.Error("no status shown for the generation limit")
	}
}

func TestControllerRenderErrorStopsRun(t *testing.T) {
	config := testConfig()
	renderer := newRecordingRenderer()
	renderer.err = errors.New("screen gone")
	ctrl := NewController(config, NewSimulation(config), discardLogger(), renderer)

	err := ctrl.Run(context.Background())
	if err == nil || errors.Cause(err) != renderer.err {
		t.Errorf("Run returned %v, want wrapped render error", err)
	}
}

func TestControllerSendRespectsContext(t *testing.T) {
	config := testConfig()
	ctrl := NewController(config, NewSimulation(config), discardLogger())

	for range cap(ctrl.commands) {
		if err := ctrl.Send(context.Background(), NextGeneration); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := ctrl.Send(ctx, NextGeneration); !errors.Is(err, context.Canceled) {
		t.Errorf("Send on full queue returned %v, want context.Canceled", err)
	}
}

func TestRunHeadless(t *testing.T) {
	config := testConfig()
	renderer := newRecordingRenderer()
	ctrl := NewController(config, NewSimulation(config), discardLogger(), renderer)

	if err := ctrl.RunHeadless(context.Background(), 25, io.Discard); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}

	if got := len(renderer.frames); got != 26 {
		t.Errorf("painted %d frames, want 26", got)
	}
	if got := len(ctrl.Stats().PopulationHistory); got != 25 {
		t.Errorf("population history has %d entries, want 25", got)
	}
}

func TestRunHeadlessCancelled(t *testing.T) {
	config := testConfig()
	ctrl := NewController(config, NewSimulation(config), discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := ctrl.RunHeadless(ctx, 1000, nil); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if n := ctrl.Stats().TotalGenerations; n != 0 {
		t.Errorf("ran %d generations after cancel", n)
	}
}

func TestCommandString(t *testing.T) {
	if ToggleRun.String() != "toggle-run" || Command(42).String() != "command(42)" {
		t.Error("unexpected command names")
	}
}
