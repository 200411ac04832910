package game

import (
	"fmt"

	"github.com/sheikhrachel/life-canvas/utils"
)

const (
	reasonExtinction = "extinction"
	reasonStagnation = "stagnation detected"
	reasonRefresh    = "periodic refresh"

	// stagnant generations tolerated before random cells are injected
	injectAfterStagnant = 2
)

// checkRestartConditions determines if the game should restart
func checkRestartConditions(
	livingCells, stagnantCount, generation int,
	config utils.Config,
) (bool, string) {
	if livingCells == 0 {
		return true, reasonExtinction
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, reasonStagnation
	}
	if config.RefreshInterval > 0 && generation >= config.RefreshInterval {
		return true, reasonRefresh
	}
	return false, ""
}

// shouldInjectLife reports whether a stagnating board gets random cells before
// it is restarted outright
func shouldInjectLife(stagnantCount int, config utils.Config) bool {
	if config.InjectionCount == 0 || stagnantCount < injectAfterStagnant {
		return false
	}
	return config.StagnationThreshold == 0 || stagnantCount < config.StagnationThreshold
}

// describeStep turns a step result into the status text shown under the grid
func describeStep(res StepResult) string {
	switch {
	case res.Restarted:
		return fmt.Sprintf("Restarted (%s)", res.Reason)
	case res.Living == 0:
		return "Extinct"
	case res.Injected:
		return "Stagnant, injected life"
	case res.Stagnant:
		return "Stagnant"
	}
	return ""
}
