// Package player drives the media transport behind the controls.
// The primary implementation targets mpv through its JSON-IPC interface.
package player

import (
	"context"

	"github.com/samber/mo"
)

// Range is a contiguous buffered interval in seconds.
type Range struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Telemetry is the transport state as last reported by the media engine.
type Telemetry struct {
	CurrentTime      float64            `json:"currentTime"`
	Duration         mo.Option[float64] `json:"duration"`
	Buffered         []Range            `json:"buffered"`
	Paused           bool               `json:"paused"`
	Ended            bool               `json:"ended"`
	Volume           float64            `json:"volume"`
	Muted            bool               `json:"muted"`
	PlaybackRate     float64            `json:"playbackRate"`
	Fullscreen       bool               `json:"fullscreen"`
	PictureInPicture bool               `json:"pictureInPicture"`
}

// NewTelemetry returns the state of a freshly created, paused media element.
func NewTelemetry() Telemetry {
	return Telemetry{
		Duration:     mo.None[float64](),
		Paused:       true,
		Volume:       1,
		PlaybackRate: 1,
	}
}

// KnownDuration returns the duration, or 0 while it is unknown.
func (t Telemetry) KnownDuration() float64 {
	return t.Duration.OrElse(0)
}

// Clone returns a copy that shares no memory with t.
func (t Telemetry) Clone() Telemetry {
	c := t
	if t.Buffered != nil {
		c.Buffered = append([]Range(nil), t.Buffered...)
	}
	return c
}

// Transport is the media element the controls operate.
//
// Setters take effect on the transport's own state immediately; the
// matching Event is delivered later on the subscriber callback. Operations
// taking a context may be refused by the environment.
type Transport interface {
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	SetCurrentTime(seconds float64) error
	SetVolume(volume float64) error
	SetMuted(muted bool) error
	SetPlaybackRate(rate float64) error

	RequestFullscreen(ctx context.Context) error
	ExitFullscreen(ctx context.Context) error
	RequestPictureInPicture(ctx context.Context) error
	ExitPictureInPicture(ctx context.Context) error

	// Telemetry returns a snapshot of the current transport state.
	Telemetry() Telemetry

	// Subscribe registers fn for every future event. Events are delivered
	// sequentially and never from inside Subscribe itself.
	Subscribe(fn func(Event)) (release func())
}
