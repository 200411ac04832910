package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/sheikhrachel/life-canvas/game"
)

type keyAction uint8

const (
	keyIgnored keyAction = iota
	keyCommand
	keyQuit
)

// translateKey maps a key press to a game command
//
//	s, Enter   start/stop
//	n          new game
//	g, Space   next generation
//	q, Esc     quit
func translateKey(ev *tcell.EventKey) (game.Command, keyAction) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return 0, keyQuit
	case tcell.KeyEnter:
		return game.ToggleRun, keyCommand
	case tcell.KeyRune:
	default:
		return 0, keyIgnored
	}

	switch ev.Rune() {
	case 's', 'S':
		return game.ToggleRun, keyCommand
	case 'n', 'N':
		return game.NewGame, keyCommand
	case 'g', 'G', ' ':
		return game.NextGeneration, keyCommand
	case 'q', 'Q':
		return 0, keyQuit
	}
	return 0, keyIgnored
}
