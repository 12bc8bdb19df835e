// Package controls keeps the playback controls' UI state consistent with an
// asynchronously updating media transport.
//
// The Engine projects transport telemetry into a Snapshot, dispatches user
// commands to the transport and runs the timed visual behaviours (auto-hide,
// buffering indicator grace, key-action feedback). Every handler runs to
// completion under a single lock; views are told about changes through a
// coalescing channel and read the state with Snapshot.
package controls

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/playdeck/playdeck/log"
	"github.com/playdeck/playdeck/player"
	"github.com/playdeck/playdeck/timer"
	"github.com/playdeck/playdeck/util"
	"github.com/samber/mo"
)

const (
	DefaultHideDelay   = 2000 * time.Millisecond
	DefaultLoaderGrace = 300 * time.Millisecond
	DefaultFlashClear  = 1500 * time.Millisecond

	// FlashAnimation is how long views play the rewind/skip cue.
	FlashAnimation = 1000 * time.Millisecond

	DefaultSkipStep   = 10.0
	DefaultVolumeStep = 0.05
)

// PlaybackRates are the rates offered by the rate dropdown.
var PlaybackRates = []float64{0.5, 0.75, 1, 1.25, 1.5}

// Preference keys.
const (
	PrefVolume       = "volume"
	PrefPlaybackRate = "playback-rate"
)

var (
	ErrNoTransport   = errors.New("controls: transport is required")
	ErrNoPreferences = errors.New("controls: preferences are required")
	ErrMounted       = errors.New("controls: engine already mounted")
	ErrInactive      = errors.New("controls: engine is not mounted or was torn down")
)

// Preferences persists volume and playback rate between runs.
type Preferences interface {
	Get(key string, def float64) float64
	Set(key string, value float64) error
}

// Options wires an Engine. Zero durations and steps take the defaults.
type Options struct {
	Transport   player.Transport
	Preferences Preferences
	// Input is optional; without it only direct method calls drive the engine.
	Input InputSource
	// Clock defaults to timer.System().
	Clock timer.Clock

	HideDelay   time.Duration
	LoaderGrace time.Duration
	FlashClear  time.Duration
	SkipStep    float64
	VolumeStep  float64
}

func (o *Options) applyDefaults() {
	if o.Clock == nil {
		o.Clock = timer.System()
	}
	if o.HideDelay <= 0 {
		o.HideDelay = DefaultHideDelay
	}
	if o.LoaderGrace <= 0 {
		o.LoaderGrace = DefaultLoaderGrace
	}
	if o.FlashClear <= 0 {
		o.FlashClear = DefaultFlashClear
	}
	if o.SkipStep <= 0 {
		o.SkipStep = DefaultSkipStep
	}
	if o.VolumeStep <= 0 {
		o.VolumeStep = DefaultVolumeStep
	}
}

// Engine is the media control synchronization engine.
type Engine struct {
	opts      Options
	transport player.Transport
	prefs     Preferences

	mu       sync.Mutex
	snap     Snapshot
	mounted  bool
	torn     bool
	released []func()

	// rememberedVolume is restored when unmuting.
	rememberedVolume mo.Option[float64]
	pendingPlay      *Op

	hide   *timer.Slot
	loader *timer.Slot
	flash  *timer.Slot

	ctx     context.Context
	cancel  context.CancelFunc
	changes chan struct{}
}

// New validates opts and builds an unmounted Engine.
func New(opts Options) (*Engine, error) {
	if opts.Transport == nil {
		return nil, ErrNoTransport
	}
	if opts.Preferences == nil {
		return nil, ErrNoPreferences
	}
	opts.applyDefaults()

	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		opts:      opts,
		transport: opts.Transport,
		prefs:     opts.Preferences,
		ctx:       ctx,
		cancel:    cancel,
		changes:   make(chan struct{}, 1),
	}

	e.hide = timer.NewSlot("hide", opts.Clock, e.exec)
	e.loader = timer.NewSlot("loader", opts.Clock, e.exec)
	e.flash = timer.NewSlot("flash", opts.Clock, e.exec)

	return e, nil
}

// Mount seeds the state from preferences, applies them to the transport and
// subscribes to transport events and keyboard input.
func (e *Engine) Mount() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mounted || e.torn {
		return ErrMounted
	}

	volume := util.Clamp(e.prefs.Get(PrefVolume, 1), 0, 1)
	rate := e.prefs.Get(PrefPlaybackRate, 1)
	if rate <= 0 {
		rate = 1
	}

	if err := e.transport.SetVolume(volume); err != nil {
		log.Debugf("apply saved volume: %v", err)
	}
	if err := e.transport.SetPlaybackRate(rate); err != nil {
		log.Debugf("apply saved playback rate: %v", err)
	}

	tel := e.transport.Telemetry()
	e.snap = initialSnapshot(volume, rate)
	e.snap.Authoritative.IsPlaying = !tel.Paused && !tel.Ended
	e.snap.Authoritative.FullscreenActive = tel.Fullscreen
	e.snap.Authoritative.PipActive = tel.PictureInPicture
	e.projectTime(tel)

	if volume > 0 {
		e.rememberedVolume = mo.Some(volume)
	}

	e.released = append(e.released, e.transport.Subscribe(e.handleEvent))
	if e.opts.Input != nil {
		e.released = append(e.released, e.opts.Input.Subscribe(e.routeKey))
	}

	e.mounted = true
	e.signal()

	log.Debugf("controls mounted: volume=%v rate=%v", volume, rate)
	return nil
}

// Close tears the engine down. It is safe to call more than once.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.teardown()
}

// Snapshot returns a copy of the current UI state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snap
}

// Changes receives a value whenever the snapshot may have changed. Bursts
// of changes are coalesced into one notification.
func (e *Engine) Changes() <-chan struct{} {
	return e.changes
}

// Done is closed once the engine is torn down, by Close or by a fault.
func (e *Engine) Done() <-chan struct{} {
	return e.ctx.Done()
}

// active reports whether handlers may still mutate state.
func (e *Engine) active() bool {
	return e.mounted && !e.torn && !e.snap.Errored
}

// exec runs a slot callback serialized with every other handler.
func (e *Engine) exec(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active() {
		return
	}
	fn()
	e.signal()
}

func (e *Engine) signal() {
	select {
	case e.changes <- struct{}{}:
	default:
	}
}

// teardown cancels in-flight work, releases subscriptions and cancels every slot.
func (e *Engine) teardown() {
	if e.torn {
		return
	}
	e.torn = true
	e.cancel()

	for _, slot := range []*timer.Slot{e.hide, e.loader, e.flash} {
		if slot.Cancel() {
			log.Debugf("dropped pending %s timer", slot.Name())
		}
	}

	for _, release := range e.released {
		release()
	}
	e.released = nil
}

// fault moves the engine into its terminal error state.
func (e *Engine) fault(err error) {
	log.Errorf("media transport fault: %v", err)

	e.snap.Errored = true
	e.snap.Optimistic.LoaderVisible = false
	e.teardown()
	e.signal()
}

// handleEvent is the transport subscription.
func (e *Engine) handleEvent(ev player.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active() {
		return
	}

	tel := ev.State
	a := &e.snap.Authoritative

	switch ev.Kind {
	case player.EventMetadataReady, player.EventTimeUpdate:
		e.projectTime(tel)
	case player.EventProgress:
		e.projectBuffered(tel)
	case player.EventPlay:
		a.IsPlaying = true
		e.recoverLoader()
		e.onPlay()
	case player.EventPause:
		a.IsPlaying = false
		e.onPause()
	case player.EventEnded:
		a.IsPlaying = false
		e.projectTime(tel)
		e.onPause()
	case player.EventVolumeChanged:
		e.onVolumeChanged(tel.Volume, tel.Muted)
	case player.EventRateChanged:
		e.onRateChanged(tel.PlaybackRate)
	case player.EventSeeking:
		e.projectTime(tel)
		e.stall()
	case player.EventWaiting:
		e.stall()
	case player.EventSeeked:
		e.projectTime(tel)
		e.recoverLoader()
	case player.EventCanPlay:
		e.recoverLoader()
	case player.EventEnterPip:
		a.PipActive = true
	case player.EventLeavePip:
		a.PipActive = false
	case player.EventFullscreenChanged:
		a.FullscreenActive = tel.Fullscreen
	case player.EventError:
		err := ev.Err
		if err == nil {
			err = errors.New("unknown transport error")
		}
		e.fault(err)
		return
	default:
		return
	}

	e.signal()
}
