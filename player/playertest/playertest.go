// Package playertest provides an in-memory media transport for tests.
package playertest

import (
	"context"
	"errors"
	"sync"

	"github.com/playdeck/playdeck/player"
	"github.com/samber/mo"
)

// ErrRefused is returned by requests the Transport was told to refuse.
var ErrRefused = errors.New("refused by environment")

// Transport is an in-memory player.Transport. Setters apply immediately and
// queue the resulting events until Flush, the way a media element dispatches
// them on a later task.
type Transport struct {
	mu    sync.Mutex
	tel   player.Telemetry
	queue []player.Event
	subs  map[int]func(player.Event)
	next  int
	calls []string

	playGate   chan struct{}
	refusePlay bool
	refuseFull bool
}

// New returns a paused Transport holding a 200 second media.
func New() *Transport {
	tel := player.NewTelemetry()
	tel.Duration = mo.Some(200.0)
	return &Transport{tel: tel, subs: make(map[int]func(player.Event))}
}

func (f *Transport) enqueue(kind player.EventKind) {
	f.queue = append(f.queue, player.Event{Kind: kind, State: f.tel.Clone()})
}

func (f *Transport) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *Transport) subscribers() []func(player.Event) {
	out := make([]func(player.Event), 0, len(f.subs))
	for _, fn := range f.subs {
		out = append(out, fn)
	}
	return out
}

// Flush delivers every queued event in order.
func (f *Transport) Flush() {
	for {
		f.mu.Lock()
		if len(f.queue) == 0 {
			f.mu.Unlock()
			return
		}
		ev := f.queue[0]
		f.queue = f.queue[1:]
		subs := f.subscribers()
		f.mu.Unlock()

		for _, fn := range subs {
			fn(ev)
		}
	}
}

// Emit changes the telemetry and delivers kind right away.
func (f *Transport) Emit(kind player.EventKind, mutate func(*player.Telemetry)) {
	f.mu.Lock()
	if mutate != nil {
		mutate(&f.tel)
	}
	ev := player.Event{Kind: kind, State: f.tel.Clone()}
	if kind == player.EventError {
		ev.Err = ErrRefused
	}
	subs := f.subscribers()
	f.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

func (f *Transport) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *Transport) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

func (f *Transport) Play(ctx context.Context) error {
	f.mu.Lock()
	if f.refusePlay {
		f.mu.Unlock()
		f.record("play-refused")
		return ErrRefused
	}
	f.tel.Paused = false
	f.tel.Ended = false
	f.enqueue(player.EventPlay)
	gate := f.playGate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.record("play")
	return nil
}

func (f *Transport) Pause(context.Context) error {
	f.mu.Lock()
	f.tel.Paused = true
	f.enqueue(player.EventPause)
	f.mu.Unlock()

	f.record("pause")
	return nil
}

func (f *Transport) SetCurrentTime(seconds float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	seconds = max(seconds, 0)
	if d, ok := f.tel.Duration.Get(); ok {
		seconds = min(seconds, d)
	}
	f.tel.CurrentTime = seconds
	f.enqueue(player.EventSeeking)
	f.enqueue(player.EventTimeUpdate)
	f.enqueue(player.EventSeeked)
	return nil
}

func (f *Transport) SetVolume(volume float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.tel.Volume != volume {
		f.tel.Volume = volume
		f.enqueue(player.EventVolumeChanged)
	}
	return nil
}

func (f *Transport) SetMuted(muted bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.tel.Muted = muted
	f.enqueue(player.EventVolumeChanged)
	return nil
}

func (f *Transport) SetPlaybackRate(rate float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.tel.PlaybackRate != rate {
		f.tel.PlaybackRate = rate
		f.enqueue(player.EventRateChanged)
	}
	return nil
}

func (f *Transport) setFullscreen(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.refuseFull {
		return ErrRefused
	}
	f.tel.Fullscreen = on
	f.enqueue(player.EventFullscreenChanged)
	return nil
}

func (f *Transport) RequestFullscreen(context.Context) error { return f.setFullscreen(true) }
func (f *Transport) ExitFullscreen(context.Context) error    { return f.setFullscreen(false) }

func (f *Transport) RequestPictureInPicture(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.tel.PictureInPicture = true
	f.enqueue(player.EventEnterPip)
	return nil
}

func (f *Transport) ExitPictureInPicture(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.tel.PictureInPicture = false
	f.enqueue(player.EventLeavePip)
	return nil
}

func (f *Transport) Telemetry() player.Telemetry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tel.Clone()
}

func (f *Transport) Subscribe(fn func(player.Event)) (release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.next++
	id := f.next
	f.subs[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}
}

// SetPlayGate makes Play block until gate is closed or its context ends.
func (f *Transport) SetPlayGate(gate chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playGate = gate
}

// RefusePlay makes Play fail with ErrRefused.
func (f *Transport) RefusePlay(refuse bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refusePlay = refuse
}

// RefuseFullscreen makes fullscreen requests fail with ErrRefused.
func (f *Transport) RefuseFullscreen(refuse bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refuseFull = refuse
}

// Pending returns the number of queued, undelivered events.
func (f *Transport) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

var _ player.Transport = (*Transport)(nil)
