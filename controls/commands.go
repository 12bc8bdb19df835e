package controls

import (
	"context"
	"strconv"

	"github.com/playdeck/playdeck/log"
	"github.com/playdeck/playdeck/util"
	"github.com/samber/mo"
)

// launch runs request in the background, optionally after another Op settles.
// Refusals are logged at debug level and reported through the Op only.
func (e *Engine) launch(name string, after *Op, request func(context.Context) error) *Op {
	op := newOp(name)
	ctx := e.ctx

	if after != nil && !after.Settled() {
		log.Debugf("%s queued behind pending %s", name, after.Name())
	}

	go func() {
		if after != nil {
			select {
			case <-after.Done():
			case <-ctx.Done():
				op.settle(ctx.Err())
				return
			}
		}

		if err := ctx.Err(); err != nil {
			op.settle(err)
			return
		}

		err := request(ctx)
		if err != nil {
			log.Debugf("%s request refused: %v", name, err)
		}
		op.settle(err)
	}()

	return op
}

// TogglePlay requests play while paused or ended, pause otherwise. A pause
// requested while a play is still pending is sent only after that play settles.
func (e *Engine) TogglePlay() *Op {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active() {
		return settledOp("toggle-play", ErrInactive)
	}

	tel := e.transport.Telemetry()
	playPending := e.pendingPlay != nil && !e.pendingPlay.Settled()

	if (tel.Paused || tel.Ended) && !playPending {
		e.pendingPlay = e.launch("play", nil, e.transport.Play)
		return e.pendingPlay
	}

	return e.launch("pause", e.pendingPlay, e.transport.Pause)
}

// Seek commits a new position, clamped to [0, duration].
func (e *Engine) Seek(seconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active() {
		return
	}

	duration := e.transport.Telemetry().KnownDuration()
	target := util.Max(seconds, 0)
	if duration > 0 {
		target = util.Clamp(seconds, 0, duration)
	}

	if err := e.transport.SetCurrentTime(target); err != nil {
		log.Debugf("seek to %v refused: %v", target, err)
		return
	}

	e.snap.Optimistic.CurrentProgressPct = ProgressPercent(target, duration)
	e.signal()
}

// PreviewSeek updates the hover tooltip for a pointer at offset pixels on a
// track trackWidth pixels wide. It never moves the playhead.
func (e *Engine) PreviewSeek(offset, trackWidth float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active() || trackWidth <= 0 {
		return
	}

	duration := e.transport.Telemetry().KnownDuration()
	proposed := offset / trackWidth * duration

	var label string
	switch {
	case proposed < 0:
		label = zeroLabel
	case proposed > duration:
		label = FormatTime(wholeSeconds(duration))
	default:
		label = FormatTime(wholeSeconds(proposed))
	}

	e.snap.Optimistic.SeekPreview = SeekPreview{
		TimeLabel:   label,
		PixelOffset: strconv.FormatFloat(offset, 'f', -1, 64) + "px",
	}
	e.signal()
}

// SetVolume writes a volume clamped to [0,1]. The UI follows on the
// transport's volume-changed notification.
func (e *Engine) SetVolume(volume float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active() {
		e.setVolume(volume)
	}
}

func (e *Engine) setVolume(volume float64) {
	volume = util.Clamp(volume, 0, 1)
	if err := e.transport.SetVolume(volume); err != nil {
		log.Debugf("set volume %v refused: %v", volume, err)
	}
}

// ToggleMute silences the transport, remembering the volume, or restores
// the remembered volume (1 if none). A mute set on the player itself is
// lifted without touching the volume.
func (e *Engine) ToggleMute() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active() {
		return
	}

	tel := e.transport.Telemetry()
	if tel.Muted && tel.Volume != 0 {
		if err := e.transport.SetMuted(false); err != nil {
			log.Debugf("unmute refused: %v", err)
		}
		return
	}

	current := tel.Volume
	if current != 0 {
		e.rememberedVolume = mo.Some(current)
		e.setVolume(0)
		return
	}

	e.setVolume(e.rememberedVolume.OrElse(1))
}

// StepVolume moves the volume one step up (direction > 0) or down and
// flashes the volume badge.
func (e *Engine) StepVolume(direction int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active() || direction == 0 {
		return
	}

	step := e.opts.VolumeStep
	if direction < 0 {
		step = -step
	}

	current := e.transport.Telemetry().Volume
	e.setVolume(util.Round(util.Clamp(current+step, 0, 1), 2))
	e.flashVolume()
	e.signal()
}

// SetPlaybackRate ignores non-positive rates.
func (e *Engine) SetPlaybackRate(rate float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active() || rate <= 0 {
		return
	}

	if err := e.transport.SetPlaybackRate(rate); err != nil {
		log.Debugf("set playback rate %v refused: %v", rate, err)
	}
}

// Skip jumps forward by the skip step.
func (e *Engine) Skip() {
	e.jump(FlashSkip, 1)
}

// Rewind jumps backward by the skip step.
func (e *Engine) Rewind() {
	e.jump(FlashRewind, -1)
}

// jump seeks relative to the transport position; the transport clamps.
func (e *Engine) jump(kind FlashKind, sign float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active() {
		return
	}

	target := e.transport.Telemetry().CurrentTime + sign*e.opts.SkipStep
	if err := e.transport.SetCurrentTime(target); err != nil {
		log.Debugf("%s refused: %v", kind, err)
	}

	e.flashDirection(kind)
	e.signal()
}

// ToggleFullscreen requests entering or leaving fullscreen. The flag flips
// only once the transport reports the change.
func (e *Engine) ToggleFullscreen() *Op {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active() {
		return settledOp("fullscreen", ErrInactive)
	}

	if e.snap.Authoritative.FullscreenActive {
		return e.launch("exit-fullscreen", nil, e.transport.ExitFullscreen)
	}
	return e.launch("request-fullscreen", nil, e.transport.RequestFullscreen)
}

// TogglePictureInPicture requests entering or leaving picture-in-picture.
func (e *Engine) TogglePictureInPicture() *Op {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active() {
		return settledOp("picture-in-picture", ErrInactive)
	}

	if e.snap.Authoritative.PipActive {
		return e.launch("exit-picture-in-picture", nil, e.transport.ExitPictureInPicture)
	}
	return e.launch("request-picture-in-picture", nil, e.transport.RequestPictureInPicture)
}

// ToggleDropdown opens or closes the playback rate menu.
func (e *Engine) ToggleDropdown() {
	e.setDropdown(func(open bool) bool { return !open })
}

// CloseDropdown closes the playback rate menu, e.g. on a click outside it.
func (e *Engine) CloseDropdown() {
	e.setDropdown(func(bool) bool { return false })
}

func (e *Engine) setDropdown(next func(open bool) bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active() {
		return
	}

	open := next(e.snap.Optimistic.DropdownOpen)
	if open != e.snap.Optimistic.DropdownOpen {
		e.snap.Optimistic.DropdownOpen = open
		e.signal()
	}
}

// onVolumeChanged mirrors a reported volume and persists it. Muting to 0
// never overwrites the remembered volume. The player's own mute flag also
// counts as muted.
func (e *Engine) onVolumeChanged(volume float64, muted bool) {
	a := &e.snap.Authoritative
	a.Volume = volume
	a.Muted = muted || volume == 0

	if volume > 0 {
		e.rememberedVolume = mo.Some(volume)
	}

	if err := e.prefs.Set(PrefVolume, volume); err != nil {
		log.Warnf("persist volume: %v", err)
	}
}

func (e *Engine) onRateChanged(rate float64) {
	if rate <= 0 {
		return
	}
	e.snap.Authoritative.PlaybackRate = rate

	if err := e.prefs.Set(PrefPlaybackRate, rate); err != nil {
		log.Warnf("persist playback rate: %v", err)
	}
}
