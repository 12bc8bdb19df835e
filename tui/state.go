package tui

type state int

const (
	controlsState state = iota
	dropdownState
	jumpState
	errorState
)

// focus is the control that currently owns the keyboard.
type focus int

const (
	focusNone focus = iota
	focusSeek
	focusVolume
	focusRate
	focusJump
)

// focusCycle is the tab order.
var focusCycle = []focus{focusNone, focusSeek, focusVolume, focusRate}
