package tui

import (
	"fmt"
	"time"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/playdeck/playdeck/controls"
	"github.com/samber/mo"
)

const cueFrames = 4

// snapshotMsg reports that the engine state may have changed.
type snapshotMsg struct{}

// engineDoneMsg reports that the engine was torn down.
type engineDoneMsg struct{}

// cueFrameMsg advances the rewind/skip cue animation of a given Seq.
type cueFrameMsg struct {
	seq   uint64
	frame int
}

func (b *statefulBubble) waitForChanges() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.engine.Changes():
			return snapshotMsg{}
		case <-b.engine.Done():
			return engineDoneMsg{}
		}
	}
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := b.update(msg)
	return b, tea.Batch(cmd, b.sync())
}

func (b *statefulBubble) update(msg tea.Msg) tea.Cmd {
	notifyCmd := b.notifierC.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return notifyCmd
	case snapshotMsg:
		return b.waitForChanges()
	case engineDoneMsg:
		b.done = true
		return nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return cmd
	case cueFrameMsg:
		return b.updateCue(msg)
	case tea.BlurMsg:
		b.hover = mo.None[int]()
		b.engine.PointerLeave()
		return nil
	case tea.FocusMsg:
		b.engine.PointerActivity()
		return nil
	case tea.MouseMsg:
		return tea.Batch(notifyCmd, b.updateMouse(msg))
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return tea.Quit
		}
	}

	var cmd tea.Cmd
	switch b.state {
	case errorState:
		cmd = b.updateError(msg)
	case jumpState:
		cmd = b.updateJump(msg)
	case dropdownState:
		cmd = b.updateDropdown(msg)
	default:
		cmd = b.updateControls(msg)
	}

	return tea.Batch(notifyCmd, cmd)
}

// sync pulls the engine state and turns its transitions into commands.
func (b *statefulBubble) sync() tea.Cmd {
	b.snap = b.engine.Snapshot()
	b.setState(b.derivedState())

	var cmds []tea.Cmd

	if visible := b.snap.Optimistic.CursorVisible; visible != b.cursorVisible {
		b.cursorVisible = visible
		if visible {
			cmds = append(cmds, tea.ShowCursor)
		} else {
			cmds = append(cmds, tea.HideCursor)
		}
	}

	flash := b.snap.Optimistic.KeyActionFlash
	if flash.Seq != b.flashSeq {
		b.flashSeq = flash.Seq
		if flash.Kind == controls.FlashRewind || flash.Kind == controls.FlashSkip {
			b.cueSeq = flash.Seq
			b.cueKind = flash.Kind
			b.cueFrame = 0
			cmds = append(cmds, cueTick(flash.Seq, 1))
		}
	}

	return tea.Batch(cmds...)
}

func cueTick(seq uint64, frame int) tea.Cmd {
	return tea.Tick(controls.FlashAnimation/cueFrames, func(time.Time) tea.Msg {
		return cueFrameMsg{seq: seq, frame: frame}
	})
}

// updateCue ignores frames of a cue that was re-triggered since.
func (b *statefulBubble) updateCue(msg cueFrameMsg) tea.Cmd {
	if msg.seq != b.cueSeq {
		return nil
	}

	b.cueFrame = msg.frame
	if msg.frame < cueFrames {
		return cueTick(msg.seq, msg.frame+1)
	}
	return nil
}

// controlKey translates the five global shortcuts.
func controlKey(msg tea.KeyMsg) (controls.Key, bool) {
	switch msg.Type {
	case tea.KeyLeft:
		return controls.KeyLeft, true
	case tea.KeyRight:
		return controls.KeyRight, true
	case tea.KeyUp:
		return controls.KeyUp, true
	case tea.KeyDown:
		return controls.KeyDown, true
	case tea.KeySpace:
		return controls.KeySpace, true
	}
	return "", false
}

// routeKey offers msg to the engine's router first, reporting whether it consumed it.
func (b *statefulBubble) routeKey(msg tea.KeyMsg) bool {
	k, ok := controlKey(msg)
	if !ok {
		return false
	}
	return b.keys.Press(controls.KeyEvent{Key: k, Target: b.target()})
}

func (b *statefulBubble) updateControls(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	b.engine.PointerActivity()
	if b.routeKey(keyMsg) {
		return nil
	}

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.quit):
		return tea.Quit
	case bubblesKey.Matches(keyMsg, b.keymap.mute):
		b.engine.ToggleMute()
	case bubblesKey.Matches(keyMsg, b.keymap.fullscreen):
		b.engine.ToggleFullscreen()
	case bubblesKey.Matches(keyMsg, b.keymap.pip):
		b.engine.TogglePictureInPicture()
	case bubblesKey.Matches(keyMsg, b.keymap.rates):
		b.engine.ToggleDropdown()
	case bubblesKey.Matches(keyMsg, b.keymap.jump):
		b.focus = focusJump
		b.jumpC.SetValue("")
		return b.jumpC.Focus()
	case bubblesKey.Matches(keyMsg, b.keymap.nextFocus):
		b.cycleFocus()
	case bubblesKey.Matches(keyMsg, b.keymap.confirm):
		b.activateFocused()
	case bubblesKey.Matches(keyMsg, b.keymap.back):
		b.focus = focusNone
	case bubblesKey.Matches(keyMsg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	}

	return nil
}

func (b *statefulBubble) cycleFocus() {
	for i, f := range focusCycle {
		if f == b.focus {
			b.focus = focusCycle[(i+1)%len(focusCycle)]
			return
		}
	}
	b.focus = focusNone
}

func (b *statefulBubble) activateFocused() {
	switch b.focus {
	case focusRate:
		b.engine.ToggleDropdown()
	case focusVolume:
		b.engine.ToggleMute()
	case focusNone, focusSeek:
		b.engine.TogglePlay()
	}
}

func (b *statefulBubble) updateDropdown(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if b.routeKey(keyMsg) {
		return nil
	}

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.selectRate):
		i := int(keyMsg.Runes[0] - '1')
		return b.selectRate(i)
	case bubblesKey.Matches(keyMsg, b.keymap.back), bubblesKey.Matches(keyMsg, b.keymap.rates):
		b.engine.CloseDropdown()
	case bubblesKey.Matches(keyMsg, b.keymap.quit):
		return tea.Quit
	}

	return nil
}

func (b *statefulBubble) selectRate(i int) tea.Cmd {
	if i < 0 || i >= len(controls.PlaybackRates) {
		return nil
	}

	rate := controls.PlaybackRates[i]
	b.engine.SetPlaybackRate(rate)
	b.engine.CloseDropdown()
	return notify(fmt.Sprintf("Speed %s", formatRate(rate)))
}

// updateJump owns the keyboard while the jump prompt is focused; the
// engine's router ignores keys aimed at a text entry.
func (b *statefulBubble) updateJump(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if b.routeKey(keyMsg) {
			return nil
		}

		switch {
		case bubblesKey.Matches(keyMsg, b.keymap.back):
			b.blurJump()
			return nil
		case bubblesKey.Matches(keyMsg, b.keymap.confirm):
			seconds, err := parseTimestamp(b.jumpC.Value())
			b.blurJump()
			if err != nil {
				return notify(err.Error())
			}
			b.engine.Seek(seconds)
			return nil
		}
	}

	var cmd tea.Cmd
	b.jumpC, cmd = b.jumpC.Update(msg)
	return cmd
}

func (b *statefulBubble) blurJump() {
	b.jumpC.Blur()
	b.jumpC.SetValue("")
	b.focus = focusNone
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.reload):
		b.reload = true
		return tea.Quit
	case bubblesKey.Matches(keyMsg, b.keymap.quit), bubblesKey.Matches(keyMsg, b.keymap.back):
		return tea.Quit
	}
	return nil
}

func (b *statefulBubble) updateMouse(msg tea.MouseMsg) tea.Cmd {
	if b.state == errorState {
		_, reloadLine := b.errorLines()
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == padTop+reloadLine {
			b.reload = true
			return tea.Quit
		}
		return nil
	}

	b.engine.PointerActivity()

	offset, onTrack := b.onTrack(msg.X, msg.Y)
	if onTrack {
		b.hover = mo.Some(offset)
		b.engine.PreviewSeek(float64(offset), float64(b.trackWidth()))
	} else {
		b.hover = mo.None[int]()
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	if b.snap.Optimistic.DropdownOpen {
		if i, ok := b.onDropdown(msg.X, msg.Y); ok {
			return b.selectRate(i)
		}
		b.engine.CloseDropdown()
	}

	if onTrack {
		duration := b.transport.Telemetry().KnownDuration()
		b.engine.Seek(float64(offset) / float64(b.trackWidth()) * duration)
	}

	return nil
}

// onTrack maps a terminal cell to a column on the seek track.
func (b *statefulBubble) onTrack(x, y int) (int, bool) {
	if y != padTop+trackLine {
		return 0, false
	}
	offset := x - padLeft
	return offset, offset >= 0 && offset < b.trackWidth()
}

// onDropdown maps a terminal cell to a rate in the open dropdown.
func (b *statefulBubble) onDropdown(x, y int) (int, bool) {
	i := y - padTop - dropdownLine
	if i < 0 || i >= len(controls.PlaybackRates) {
		return 0, false
	}
	return i, x >= padLeft && x < padLeft+dropdownWidth
}
