package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/playdeck/playdeck/color"
	"github.com/playdeck/playdeck/style"
)

type statefulKeymap struct {
	state state

	quit, forceQuit,
	playPause, rewind, skip, volumeUp, volumeDown,
	mute, fullscreen, pip, rates, selectRate,
	jump, confirm, back, nextFocus,
	reload,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		rewind: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "-10s"),
		),
		skip: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "+10s"),
		),
		volumeUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "volume up"),
		),
		volumeDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "volume down"),
		),
		mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
		pip: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "picture-in-picture"),
		),
		rates: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "speed"),
		),
		selectRate: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "select speed"),
		),
		jump: key.NewBinding(
			key.WithKeys(":", "t"),
			key.WithHelp(":", "jump to time"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		nextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus next"),
		),
		reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp(style.Fg(color.Orange)("r"), style.Fg(color.Orange)("reload")),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case controlsState:
		return h(k.playPause, k.rewind, k.skip, k.jump, k.showHelp, k.quit),
			h(k.playPause, k.rewind, k.skip, k.volumeUp, k.volumeDown, k.mute, k.rates, k.fullscreen, k.pip, k.jump, k.nextFocus, k.quit)
	case dropdownState:
		return to2(h(k.selectRate, k.back))
	case jumpState:
		return to2(h(withDescription(k.confirm, "jump"), k.back))
	case errorState:
		return to2(h(k.reload, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func withDescription(k key.Binding, description string) key.Binding {
	return key.NewBinding(
		key.WithKeys(k.Keys()...),
		key.WithHelp(k.Help().Key, description),
	)
}
