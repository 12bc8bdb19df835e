package controls

import (
	"math"

	"github.com/playdeck/playdeck/player"
	"github.com/playdeck/playdeck/util"
)

// ProgressPercent returns current as a percentage of duration in [0,100],
// or 0 while the duration is unknown.
func ProgressPercent(current, duration float64) float64 {
	if duration <= 0 || math.IsNaN(current) {
		return 0
	}
	return util.Clamp(current/duration*100, 0, 100)
}

// SelectBufferedEnd scans ranges from the last one backward and returns the
// end of the first range that starts at 0 or before current.
func SelectBufferedEnd(ranges []player.Range, current float64) (end float64, ok bool) {
	for i := len(ranges) - 1; i >= 0; i-- {
		r := ranges[i]
		if r.Start == 0 || r.Start < current {
			return r.End, true
		}
	}
	return 0, false
}

// projectTime refreshes progress, labels and the buffered extent from t.
func (e *Engine) projectTime(t player.Telemetry) {
	duration := t.KnownDuration()
	o := &e.snap.Optimistic

	o.CurrentProgressPct = ProgressPercent(t.CurrentTime, duration)
	o.CurrentTimeLabel = FormatTime(wholeSeconds(t.CurrentTime))
	o.RemainingTimeLabel = FormatTime(wholeSeconds(duration) - wholeSeconds(t.CurrentTime))

	e.projectBuffered(t)
}

// projectBuffered leaves the percentage untouched while the duration is unknown.
func (e *Engine) projectBuffered(t player.Telemetry) {
	duration := t.KnownDuration()
	if duration <= 0 {
		return
	}

	if end, ok := SelectBufferedEnd(t.Buffered, t.CurrentTime); ok {
		e.snap.Optimistic.BufferedProgressPct = util.Clamp(end/duration*100, 0, 100)
	}
}
