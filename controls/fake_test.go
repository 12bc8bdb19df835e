package controls

import (
	"context"
	"fmt"
	"time"

	"github.com/playdeck/playdeck/filesystem"
	"github.com/playdeck/playdeck/player"
	"github.com/playdeck/playdeck/player/playertest"
	"github.com/playdeck/playdeck/prefs"
	"github.com/playdeck/playdeck/timer"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.UseMemory()
}

type harness struct {
	transport *playertest.Transport
	clock     *timer.Manual
	prefs     *prefs.Store
	keys      *Keys
	engine    *Engine
}

var harnessSeq int

// newHarness builds an unmounted engine with fresh preferences.
func newHarness() *harness {
	harnessSeq++
	h := &harness{
		transport: playertest.New(),
		clock:     timer.NewManual(),
		prefs:     prefs.New(fmt.Sprintf("/state/prefs-%d.json", harnessSeq)),
		keys:      NewKeys(),
	}

	engine, err := New(Options{
		Transport:   h.transport,
		Preferences: h.prefs,
		Input:       h.keys,
		Clock:       h.clock,
	})
	So(err, ShouldBeNil)
	h.engine = engine
	return h
}

// mounted returns a mounted harness whose mount-time events were delivered.
func mounted() *harness {
	h := newHarness()
	So(h.engine.Mount(), ShouldBeNil)
	Reset(h.engine.Close)
	h.transport.Flush()
	return h
}

func (h *harness) snap() Snapshot {
	return h.engine.Snapshot()
}

// await waits for op and then delivers the events it caused.
func (h *harness) await(op *Op) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := op.Wait(ctx)
	h.transport.Flush()
	return err
}

// eventually polls cond for up to a second.
func eventually(cond func() bool) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func playing(t *player.Telemetry) {
	t.Paused = false
	t.Ended = false
}

func paused(t *player.Telemetry) {
	t.Paused = true
}

func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
