// Package inline drives the playback controls without a terminal UI: it reads
// line commands and streams every state change as a line of JSON.
package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/playdeck/playdeck/controls"
	"github.com/samber/lo"
)

type Options struct {
	Out    io.Writer
	In     io.Reader
	Engine *controls.Engine
	Keys   *controls.Keys
	Pretty bool
}

// Command applies one parsed input line.
type Command func(engine *controls.Engine, keys *controls.Keys)

var keyNames = map[string]controls.Key{
	"left":  controls.KeyLeft,
	"right": controls.KeyRight,
	"up":    controls.KeyUp,
	"down":  controls.KeyDown,
	"space": controls.KeySpace,
}

// Commands lists the verbs understood by ParseCommand.
var Commands = []string{
	"play", "seek", "preview", "volume", "mute", "rate", "skip", "rewind",
	"fullscreen", "pip", "menu", "close-menu", "activity", "leave", "key",
}

// ParseCommand parses lines such as "seek 42.5", "rate 1.25" or "key left".
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	verb, args := strings.ToLower(fields[0]), fields[1:]

	expect := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s: expected %d argument(s), got %d", verb, n, len(args))
		}
		return nil
	}

	number := func(i int) (float64, error) {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return 0, fmt.Errorf("%s: invalid number %q", verb, args[i])
		}
		return v, nil
	}

	if !lo.Contains(Commands, verb) {
		return nil, fmt.Errorf("unknown command: %s", verb)
	}

	switch verb {
	case "seek", "volume", "rate":
		if err := expect(1); err != nil {
			return nil, err
		}
		v, err := number(0)
		if err != nil {
			return nil, err
		}

		switch verb {
		case "seek":
			return func(e *controls.Engine, _ *controls.Keys) { e.Seek(v) }, nil
		case "volume":
			return func(e *controls.Engine, _ *controls.Keys) { e.SetVolume(v) }, nil
		default:
			return func(e *controls.Engine, _ *controls.Keys) { e.SetPlaybackRate(v) }, nil
		}
	case "preview":
		if err := expect(2); err != nil {
			return nil, err
		}
		offset, err := number(0)
		if err != nil {
			return nil, err
		}
		width, err := number(1)
		if err != nil {
			return nil, err
		}
		return func(e *controls.Engine, _ *controls.Keys) { e.PreviewSeek(offset, width) }, nil
	case "key":
		if err := expect(1); err != nil {
			return nil, err
		}
		k, ok := keyNames[strings.ToLower(args[0])]
		if !ok {
			return nil, fmt.Errorf("key: unknown key %q", args[0])
		}
		return func(_ *controls.Engine, keys *controls.Keys) {
			keys.Press(controls.KeyEvent{Key: k})
		}, nil
	}

	if err := expect(0); err != nil {
		return nil, err
	}

	switch verb {
	case "play":
		return func(e *controls.Engine, _ *controls.Keys) { e.TogglePlay() }, nil
	case "mute":
		return func(e *controls.Engine, _ *controls.Keys) { e.ToggleMute() }, nil
	case "skip":
		return func(e *controls.Engine, _ *controls.Keys) { e.Skip() }, nil
	case "rewind":
		return func(e *controls.Engine, _ *controls.Keys) { e.Rewind() }, nil
	case "fullscreen":
		return func(e *controls.Engine, _ *controls.Keys) { e.ToggleFullscreen() }, nil
	case "pip":
		return func(e *controls.Engine, _ *controls.Keys) { e.TogglePictureInPicture() }, nil
	case "menu":
		return func(e *controls.Engine, _ *controls.Keys) { e.ToggleDropdown() }, nil
	case "close-menu":
		return func(e *controls.Engine, _ *controls.Keys) { e.CloseDropdown() }, nil
	case "activity":
		return func(e *controls.Engine, _ *controls.Keys) { e.PointerActivity() }, nil
	default:
		return func(e *controls.Engine, _ *controls.Keys) { e.PointerLeave() }, nil
	}
}
