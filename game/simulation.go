package game

import (
	"math/rand"
	"time"

	"github.com/sheikhrachel/life-canvas/model"
	"github.com/sheikhrachel/life-canvas/utils"
)

// Simulation owns the current generation and everything needed to produce the
// next one. It is not safe for concurrent use; a Controller serialises access.
type Simulation struct {
	config        utils.Config
	grid          *model.Grid
	generation    int
	history       *model.History
	stagnantCount int
	pool          *model.GridPool
	rng           *rand.Rand
}

// StepResult describes what happened during one Step
type StepResult struct {
	Generation int
	Living     int
	Stagnant   bool
	Injected   bool
	Restarted  bool
	Reason     string
}

// NewSimulation seeds a fresh grid from the config
func NewSimulation(config utils.Config) *Simulation {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Simulation{
		config:  config,
		history: model.NewHistory(),
		rng:     rand.New(rand.NewSource(seed)),
	}
	if config.UseMemoryPool {
		s.pool = model.NewGridPool()
	}

	s.Reset()
	return s
}

// Grid returns the current generation. It stays valid until the next Step or Reset.
func (s *Simulation) Grid() *model.Grid {
	return s.grid
}

// Generation returns how many generations have passed since the last reset
func (s *Simulation) Generation() int {
	return s.generation
}

// Reset discards the board and seeds a new random one at generation 0
func (s *Simulation) Reset() {
	model.Recycle(s.grid, s.pool)
	s.grid = model.Initialize(s.config.Width, s.config.Height, s.config.AliveProbability, s.rng)
	s.generation = 0
	s.stagnantCount = 0
	s.history.Reset()
}

// Step advances one generation and, with auto restart enabled, applies the
// restart and life injection policy
func (s *Simulation) Step() StepResult {
	s.history.Record(s.grid)

	next := s.grid.Advance(s.pool)
	model.Recycle(s.grid, s.pool)
	s.grid = next
	s.generation++

	res := StepResult{
		Generation: s.generation,
		Living:     s.grid.CountLivingCells(),
		Stagnant:   s.history.IsStagnant(s.grid),
	}
	if res.Stagnant {
		s.stagnantCount++
	} else {
		s.stagnantCount = 0
	}

	if !s.config.AutoRestart {
		return res
	}

	if restart, reason := checkRestartConditions(res.Living, s.stagnantCount, s.generation, s.config); restart {
		s.Reset()
		res.Restarted = true
		res.Reason = reason
		res.Generation = s.generation
		res.Living = s.grid.CountLivingCells()
		return res
	}

	if shouldInjectLife(s.stagnantCount, s.config) {
		injected := s.grid.WithRandomLife(s.config.InjectionCount, s.rng, s.pool)
		model.Recycle(s.grid, s.pool)
		s.grid = injected
		res.Injected = true
		res.Living = s.grid.CountLivingCells()
	}

	return res
}
