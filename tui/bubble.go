package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/playdeck/playdeck/color"
	"github.com/playdeck/playdeck/controls"
	"github.com/playdeck/playdeck/key"
	"github.com/playdeck/playdeck/player"
	"github.com/playdeck/playdeck/style"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

type statefulBubble struct {
	state  state
	focus  focus
	keymap *statefulKeymap

	engine    *controls.Engine
	keys      *controls.Keys
	transport player.Transport
	title     string

	// snap is the engine state as of the last sync.
	snap controls.Snapshot
	done bool

	// hover is the pointer column over the seek track, if any.
	hover mo.Option[int]

	// flashSeq is the last KeyActionFlash.Seq seen. cueSeq is the Seq of
	// the running rewind/skip cue; volume flashes never replace it.
	flashSeq uint64
	cueKind  controls.FlashKind
	cueSeq   uint64
	cueFrame int

	cursorVisible bool
	reload        bool

	spinnerC  spinner.Model
	volumeC   progress.Model
	jumpC     textinput.Model
	helpC     help.Model
	notifierC notifier

	width, height int
}

func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()

	b := &statefulBubble{
		state:     controlsState,
		keymap:    keymap,
		engine:    options.Engine,
		keys:      options.Keys,
		transport: options.Transport,
		title:     options.Title,

		spinnerC: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(style.New().Foreground(color.Purple))),
		volumeC: progress.New(
			progress.WithSolidFill(string(color.TrackPlayed)),
			progress.WithoutPercentage(),
			progress.WithWidth(volumeWidth),
		),
		jumpC: textinput.New(),
		helpC: help.New(),

		cursorVisible: true,
		cueFrame:      cueFrames,
	}

	b.jumpC.Placeholder = "mm:ss"
	b.jumpC.Prompt = "Jump to "
	b.jumpC.CharLimit = 9

	b.helpC.ShowAll = false

	b.snap = b.engine.Snapshot()
	b.flashSeq = b.snap.Optimistic.KeyActionFlash.Seq
	b.cueSeq = b.flashSeq
	b.setState(b.derivedState())

	return b
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// derivedState maps focus and the snapshot onto the view state.
func (b *statefulBubble) derivedState() state {
	switch {
	case b.snap.Errored:
		return errorState
	case b.focus == focusJump:
		return jumpState
	case b.snap.Optimistic.DropdownOpen:
		return dropdownState
	default:
		return controlsState
	}
}

// target describes the focused control to the engine's key router.
func (b *statefulBubble) target() controls.Target {
	switch b.focus {
	case focusJump:
		return controls.Target{Kind: controls.TargetInput, InputType: "text"}
	case focusSeek, focusVolume:
		return controls.Target{Kind: controls.TargetInput, InputType: "range"}
	case focusRate:
		return controls.Target{Kind: controls.TargetButton}
	default:
		return controls.Target{}
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y
	b.helpC.Width = b.width
	b.jumpC.Width = b.width
}

// trackWidth is the seek track's width in columns.
func (b *statefulBubble) trackWidth() int {
	return max(b.width, minTrackWidth)
}

func (b *statefulBubble) showHelp() bool {
	return viper.GetBool(key.TUIShowHelp)
}
