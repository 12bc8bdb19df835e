// Package tui renders the playback controls in the terminal and feeds
// keyboard and mouse input back into the controls engine.
package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/playdeck/playdeck/controls"
	"github.com/playdeck/playdeck/player"
)

// ErrReload is returned by Run when the user asked to start over from the error view.
var ErrReload = errors.New("reload requested")

// Options wires the interface to a mounted engine.
type Options struct {
	Engine *controls.Engine
	// Keys must be the InputSource the engine was mounted with.
	Keys *controls.Keys
	// Transport is read for the media duration when a click on the track seeks.
	Transport player.Transport
	Title     string
}

// Run blocks until the user quits.
func Run(options *Options) error {
	bubble := newBubble(options)

	final, err := tea.NewProgram(
		bubble,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	).Run()
	if err != nil {
		return err
	}

	if b, ok := final.(*statefulBubble); ok && b.reload {
		return ErrReload
	}
	return nil
}
