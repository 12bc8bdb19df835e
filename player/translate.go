package player

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/playdeck/playdeck/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ErrShutdown is reported when mpv terminates on its own, e.g. its window was closed.
var ErrShutdown = errors.New("mpv shut down")

// mpvEvent is a single asynchronous message from the IPC connection.
type mpvEvent struct {
	Event     string          `json:"event"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	Reason    string          `json:"reason"`
	FileError string          `json:"file_error"`
}

type cacheRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type cacheState struct {
	SeekableRanges []cacheRange `json:"seekable-ranges"`
}

// translate folds an mpv message into st and returns the transport events it
// amounts to, each carrying the state right after its own change.
func translate(ev mpvEvent, st *Telemetry) []Event {
	var out []Event
	emit := func(kind EventKind) {
		out = append(out, Event{Kind: kind, State: st.Clone()})
	}

	switch ev.Event {
	case "property-change":
		translateProperty(ev.Name, ev.Data, st, emit)
	case "file-loaded":
		st.Ended = false
		emit(EventMetadataReady)
	case "end-file":
		if ev.Reason != "error" {
			return nil
		}
		reason := ev.FileError
		if reason == "" {
			reason = "unknown error"
		}
		out = append(out, Event{
			Kind:  EventError,
			State: st.Clone(),
			Err:   fmt.Errorf("playback failed: %s", reason),
		})
	case "shutdown":
		out = append(out, Event{Kind: EventError, State: st.Clone(), Err: ErrShutdown})
	}

	return out
}

func translateProperty(name string, data json.RawMessage, st *Telemetry, emit func(EventKind)) {
	switch name {
	case "time-pos":
		if v, ok := decode[float64](data); ok {
			st.CurrentTime = util.Max(v, 0)
			emit(EventTimeUpdate)
		}
	case "duration":
		if v, ok := decode[float64](data); ok && v > 0 {
			st.Duration = mo.Some(v)
		} else {
			st.Duration = mo.None[float64]()
		}
		emit(EventMetadataReady)
	case "pause":
		if v, ok := decode[bool](data); ok {
			st.Paused = v
			if v {
				emit(EventPause)
			} else {
				st.Ended = false
				emit(EventPlay)
			}
		}
	case "volume":
		if v, ok := decode[float64](data); ok {
			st.Volume = util.Clamp(v/100, 0, 1)
			emit(EventVolumeChanged)
		}
	case "mute":
		if v, ok := decode[bool](data); ok {
			st.Muted = v
			emit(EventVolumeChanged)
		}
	case "speed":
		if v, ok := decode[float64](data); ok && v > 0 {
			st.PlaybackRate = v
			emit(EventRateChanged)
		}
	case "seeking":
		if v, ok := decode[bool](data); ok {
			emit(lo.Ternary(v, EventSeeking, EventSeeked))
		}
	case "paused-for-cache":
		if v, ok := decode[bool](data); ok {
			emit(lo.Ternary(v, EventWaiting, EventCanPlay))
		}
	case "demuxer-cache-state":
		cache, _ := decode[cacheState](data)
		st.Buffered = lo.Map(cache.SeekableRanges, func(r cacheRange, _ int) Range {
			return Range{Start: util.Max(r.Start, 0), End: r.End}
		})
		sort.Slice(st.Buffered, func(i, j int) bool {
			return st.Buffered[i].Start < st.Buffered[j].Start
		})
		emit(EventProgress)
	case "fullscreen":
		if v, ok := decode[bool](data); ok {
			st.Fullscreen = v
			emit(EventFullscreenChanged)
		}
	case "ontop":
		if v, ok := decode[bool](data); ok {
			st.PictureInPicture = v
			emit(lo.Ternary(v, EventEnterPip, EventLeavePip))
		}
	case "eof-reached":
		if v, ok := decode[bool](data); ok {
			st.Ended = v
			if v {
				emit(EventEnded)
			}
		}
	}
}

// decode unmarshals data, reporting false for a missing or null value.
func decode[T any](data json.RawMessage) (T, bool) {
	var v *T
	if len(data) == 0 || json.Unmarshal(data, &v) != nil || v == nil {
		var zero T
		return zero, false
	}
	return *v, true
}
