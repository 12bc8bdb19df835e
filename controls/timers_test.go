package controls

import (
	"testing"
	"time"

	"github.com/playdeck/playdeck/player"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAutoHide(t *testing.T) {
	Convey("Given playback in progress", t, func() {
		h := mounted()
		h.transport.Emit(player.EventPlay, playing)

		Convey("Controls should hide 2000ms after the last pointer activity", func() {
			h.engine.PointerActivity()
			h.clock.Advance(1999 * time.Millisecond)
			So(h.snap().Optimistic.ControlsVisible, ShouldBeTrue)

			h.clock.Advance(time.Millisecond)
			So(h.snap().Optimistic.ControlsVisible, ShouldBeFalse)
			So(h.snap().Optimistic.CursorVisible, ShouldBeFalse)
		})

		Convey("Activity should restart the countdown", func() {
			h.engine.PointerActivity()
			h.clock.Advance(1500 * time.Millisecond)
			h.engine.PointerActivity()

			h.clock.Advance(1999 * time.Millisecond)
			So(h.snap().Optimistic.ControlsVisible, ShouldBeTrue)

			h.clock.Advance(time.Millisecond)
			So(h.snap().Optimistic.ControlsVisible, ShouldBeFalse)
		})

		Convey("Activity should bring hidden controls and cursor back", func() {
			h.clock.Advance(2 * time.Second)
			So(h.snap().Optimistic.ControlsVisible, ShouldBeFalse)

			h.engine.PointerActivity()
			So(h.snap().Optimistic.ControlsVisible, ShouldBeTrue)
			So(h.snap().Optimistic.CursorVisible, ShouldBeTrue)
		})

		Convey("Leaving should hide the controls but not the cursor", func() {
			h.engine.PointerLeave()
			So(h.snap().Optimistic.ControlsVisible, ShouldBeFalse)
			So(h.snap().Optimistic.CursorVisible, ShouldBeTrue)
		})

		Convey("Pausing should reveal the controls and keep them up", func() {
			h.clock.Advance(2 * time.Second)
			h.transport.Emit(player.EventPause, paused)
			So(h.snap().Optimistic.ControlsVisible, ShouldBeTrue)

			h.engine.PointerActivity()
			h.clock.Advance(5 * time.Second)
			So(h.snap().Optimistic.ControlsVisible, ShouldBeTrue)

			h.engine.PointerLeave()
			So(h.snap().Optimistic.ControlsVisible, ShouldBeTrue)
		})
	})
}

func TestLoader(t *testing.T) {
	Convey("Given a mounted engine", t, func() {
		h := mounted()

		Convey("A 200ms stall should never show the loader", func() {
			h.transport.Emit(player.EventWaiting, nil)
			h.clock.Advance(200 * time.Millisecond)
			h.transport.Emit(player.EventCanPlay, nil)

			h.clock.Advance(time.Second)
			So(h.snap().Optimistic.LoaderVisible, ShouldBeFalse)
		})

		Convey("A 400ms stall should show it at 300ms and hide it on recovery", func() {
			h.transport.Emit(player.EventWaiting, nil)
			h.clock.Advance(299 * time.Millisecond)
			So(h.snap().Optimistic.LoaderVisible, ShouldBeFalse)

			h.clock.Advance(time.Millisecond)
			So(h.snap().Optimistic.LoaderVisible, ShouldBeTrue)

			h.clock.Advance(100 * time.Millisecond)
			h.transport.Emit(player.EventCanPlay, nil)
			So(h.snap().Optimistic.LoaderVisible, ShouldBeFalse)
		})

		Convey("Repeated stall signals should not extend the grace period", func() {
			h.transport.Emit(player.EventSeeking, nil)
			h.clock.Advance(200 * time.Millisecond)
			h.transport.Emit(player.EventWaiting, nil)

			h.clock.Advance(100 * time.Millisecond)
			So(h.snap().Optimistic.LoaderVisible, ShouldBeTrue)
		})

		Convey("Seeked should count as recovery", func() {
			h.transport.Emit(player.EventSeeking, nil)
			h.clock.Advance(500 * time.Millisecond)
			h.transport.Emit(player.EventSeeked, nil)
			So(h.snap().Optimistic.LoaderVisible, ShouldBeFalse)
		})
	})
}

func TestKeyActionFlash(t *testing.T) {
	Convey("Given a mounted engine", t, func() {
		h := mounted()

		Convey("A volume step should show the badge for 1500ms", func() {
			h.engine.StepVolume(-1)
			flash := h.snap().Optimistic.KeyActionFlash
			So(flash.Active, ShouldBeTrue)
			So(flash.Kind, ShouldEqual, FlashVolume)

			h.clock.Advance(1499 * time.Millisecond)
			So(h.snap().Optimistic.KeyActionFlash.Active, ShouldBeTrue)

			h.clock.Advance(time.Millisecond)
			So(h.snap().Optimistic.KeyActionFlash.Active, ShouldBeFalse)
		})

		Convey("Another step should restart the badge timer", func() {
			h.engine.StepVolume(-1)
			h.clock.Advance(time.Second)
			h.engine.StepVolume(-1)

			h.clock.Advance(1499 * time.Millisecond)
			So(h.snap().Optimistic.KeyActionFlash.Active, ShouldBeTrue)

			h.clock.Advance(time.Millisecond)
			So(h.snap().Optimistic.KeyActionFlash.Active, ShouldBeFalse)
		})

		Convey("Skip and rewind should bump the sequence every time", func() {
			seq := h.snap().Optimistic.KeyActionFlash.Seq

			h.engine.Skip()
			So(h.snap().Optimistic.KeyActionFlash.Kind, ShouldEqual, FlashSkip)
			So(h.snap().Optimistic.KeyActionFlash.Seq, ShouldEqual, seq+1)

			h.engine.Rewind()
			h.engine.Rewind()
			So(h.snap().Optimistic.KeyActionFlash.Kind, ShouldEqual, FlashRewind)
			So(h.snap().Optimistic.KeyActionFlash.Seq, ShouldEqual, seq+3)
		})

		Convey("Timers should stay independent of each other", func() {
			h.transport.Emit(player.EventPlay, playing)
			h.engine.StepVolume(1)
			h.transport.Emit(player.EventWaiting, nil)

			h.transport.Emit(player.EventCanPlay, nil)
			h.engine.PointerActivity()

			h.clock.Advance(1500 * time.Millisecond)
			So(h.snap().Optimistic.KeyActionFlash.Active, ShouldBeFalse)
			So(h.snap().Optimistic.ControlsVisible, ShouldBeTrue)

			h.clock.Advance(500 * time.Millisecond)
			So(h.snap().Optimistic.ControlsVisible, ShouldBeFalse)
		})
	})
}
