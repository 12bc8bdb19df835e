package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
	"github.com/playdeck/playdeck/color"
	"github.com/playdeck/playdeck/controls"
	"github.com/playdeck/playdeck/icon"
	"github.com/playdeck/playdeck/style"
)

// Layout, in lines from the top of the padded view.
const (
	padTop, padLeft = 1, 2

	statusLine   = 2
	previewLine  = 3
	trackLine    = 4
	timesLine    = 5
	buttonsLine  = 6
	dropdownLine = 8

	minTrackWidth = 10
	volumeWidth   = 10
	dropdownWidth = 12
)

var paddingStyle = lipgloss.NewStyle().Padding(padTop, padLeft)

const errorText = "Error occurred! Please try again"

func (b *statefulBubble) View() string {
	switch b.state {
	case errorState:
		return b.viewError()
	default:
		return b.viewControls()
	}
}

func (b *statefulBubble) viewControls() string {
	o := b.snap.Optimistic

	lines := []string{
		b.viewTitle(),
		"",
		b.viewStatus(),
		"",
		"",
		"",
		"",
	}

	if o.ControlsVisible {
		lines[previewLine] = b.viewPreview()
		lines[trackLine] = b.focused(focusSeek, renderTrack(b.trackWidth(), o.CurrentProgressPct, o.BufferedProgressPct))
		lines[timesLine] = b.viewTimes()
		lines[buttonsLine] = b.viewButtons()

		if o.DropdownOpen {
			lines = append(lines, "")
			lines = append(lines, b.viewDropdown()...)
		}
	}

	if b.focus == focusJump {
		lines = append(lines, "", b.jumpC.View())
	}

	return b.renderLines(b.showHelp(), lines)
}

func (b *statefulBubble) viewTitle() string {
	title := b.title
	if title == "" {
		title = "playdeck"
	}
	return style.Title(truncate.StringWithTail(title, uint(max(b.width-2, 1)), "…"))
}

// viewStatus shows the loader, the rewind/skip cue and the volume badge.
func (b *statefulBubble) viewStatus() string {
	o := b.snap.Optimistic
	var parts []string

	if o.LoaderVisible {
		parts = append(parts, b.spinnerC.View()+" buffering")
	}

	if b.cueFrame < cueFrames {
		parts = append(parts, renderCue(b.cueKind, b.cueFrame))
	}

	if o.KeyActionFlash.Active {
		a := b.snap.Authoritative
		parts = append(parts, style.Badge(fmt.Sprintf("%s %d%%", volumeIcon(a.Volume, a.Muted), int(math.Round(a.Volume*100)))))
	}

	if n := b.notifierC.View(); n != "" {
		parts = append(parts, n)
	}

	return strings.Join(parts, "  ")
}

// renderCue slides the arrow away from the track and fades it out.
func renderCue(kind controls.FlashKind, frame int) string {
	var cue string
	shift := strings.Repeat(" ", frame)

	switch kind {
	case controls.FlashRewind:
		cue = icon.Get(icon.Rewind) + " 10s" + shift
		cue = strings.Repeat(" ", cueFrames-frame) + cue
	default:
		cue = shift + "10s " + icon.Get(icon.Skip)
	}

	if frame >= cueFrames/2 {
		return style.Faint(cue)
	}
	return style.Bold(cue)
}

func (b *statefulBubble) viewPreview() string {
	offset, ok := b.hover.Get()
	if !ok {
		return ""
	}

	label := b.snap.Optimistic.SeekPreview.TimeLabel
	col := max(0, min(offset-len(label)/2, b.trackWidth()-len(label)))
	return strings.Repeat(" ", col) + style.Badge(label)
}

// renderTrack draws played, buffered and remaining segments. The buffered
// segment never ends before the playhead.
func renderTrack(width int, played, buffered float64) string {
	cols := func(pct float64) int {
		return max(0, min(width, int(math.Round(pct/100*float64(width)))))
	}

	playedCols := cols(played)
	bufferedCols := max(cols(buffered), playedCols)

	return style.Fg(color.TrackPlayed)(strings.Repeat("━", playedCols)) +
		style.Fg(color.TrackBuffered)(strings.Repeat("━", bufferedCols-playedCols)) +
		style.Fg(color.TrackBackground)(strings.Repeat("─", width-bufferedCols))
}

func (b *statefulBubble) viewTimes() string {
	o := b.snap.Optimistic
	left := o.CurrentTimeLabel
	right := "-" + o.RemainingTimeLabel

	gap := max(1, b.trackWidth()-lipgloss.Width(left)-lipgloss.Width(right))
	return style.Faint(left + strings.Repeat(" ", gap) + right)
}

func (b *statefulBubble) viewButtons() string {
	a := b.snap.Authoritative

	play := icon.Get(icon.Play)
	if a.IsPlaying {
		play = icon.Get(icon.Pause)
	}

	fullscreen := icon.Get(icon.Fullscreen)
	if a.FullscreenActive {
		fullscreen = icon.Get(icon.ExitFullscreen)
	}

	pip := icon.Get(icon.Pip)
	if a.PipActive {
		pip = style.Fg(color.HiPurple)(pip)
	}

	volume := b.focused(focusVolume, volumeIcon(a.Volume, a.Muted)+" "+b.volumeC.ViewAs(a.Volume))
	rate := b.focused(focusRate, icon.Get(icon.Settings)+" "+formatRate(a.PlaybackRate))

	return strings.Join([]string{
		play,
		icon.Get(icon.Rewind),
		icon.Get(icon.Skip),
		volume,
		rate,
		pip,
		fullscreen,
	}, "  ")
}

func (b *statefulBubble) viewDropdown() []string {
	current := b.snap.Authoritative.PlaybackRate

	lines := make([]string, len(controls.PlaybackRates))
	for i, rate := range controls.PlaybackRates {
		label := fmt.Sprintf("%d  %s", i+1, formatRate(rate))
		if rate == current {
			label = style.Fg(color.HiCyan)(label + " " + icon.Get(icon.Success))
		}
		lines[i] = label
	}

	return append(lines, "", viewResolutions())
}

// Resolutions are listed for reference only. mpv plays the source as is.
var resolutions = []int{540, 720, 1080}

const activeResolution = 1080

func viewResolutions() string {
	labels := make([]string, len(resolutions))
	for i, r := range resolutions {
		label := fmt.Sprintf("%dp", r)
		if r == activeResolution {
			label = style.Fg(color.HiCyan)(label)
		} else {
			label = style.Faint(label)
		}
		labels[i] = label
	}
	return style.Faint("Resolution ") + strings.Join(labels, " ")
}

// focused underlines the control owning the keyboard.
func (b *statefulBubble) focused(f focus, s string) string {
	if b.focus != f {
		return s
	}
	return style.New().Underline(true).Render(s)
}

func volumeIcon(volume float64, muted bool) string {
	if muted || volume == 0 {
		return icon.Get(icon.Muted)
	}
	return icon.Get(icon.Volume)
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64) + "x"
}

func (b *statefulBubble) viewError() string {
	lines, _ := b.errorLines()
	return b.renderLines(true, lines)
}

// errorLines builds the fallback view and reports which line holds the reload button.
func (b *statefulBubble) errorLines() ([]string, int) {
	body := wrap.String(style.Fg(color.HiRed)(errorText), max(b.width-3, 1))

	lines := []string{
		style.ErrorTitle("Error"),
		"",
		icon.Get(icon.Fail) + " " + body,
		"",
		style.Bold("[ " + icon.Get(icon.Reload) + " Reload ]"),
	}
	return lines, len(lines) - 1 + strings.Count(body, "\n")
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
