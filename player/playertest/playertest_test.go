package playertest

import (
	"context"
	"testing"

	"github.com/playdeck/playdeck/player"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTransport(t *testing.T) {
	Convey("Given a fake transport", t, func() {
		f := New()
		var got []player.EventKind
		release := f.Subscribe(func(ev player.Event) { got = append(got, ev.Kind) })

		Convey("Events should wait for Flush", func() {
			So(f.SetVolume(0.5), ShouldBeNil)
			So(got, ShouldBeEmpty)
			So(f.Pending(), ShouldEqual, 1)

			f.Flush()
			So(got, ShouldResemble, []player.EventKind{player.EventVolumeChanged})
		})

		Convey("Unchanged values should not emit", func() {
			So(f.SetPlaybackRate(1), ShouldBeNil)
			So(f.Pending(), ShouldEqual, 0)
		})

		Convey("Play should flip paused immediately", func() {
			So(f.Play(context.Background()), ShouldBeNil)
			So(f.Telemetry().Paused, ShouldBeFalse)
			So(f.Calls(), ShouldResemble, []string{"play"})
		})

		Convey("Refusals should be reported", func() {
			f.RefuseFullscreen(true)
			So(f.RequestFullscreen(context.Background()), ShouldEqual, ErrRefused)
			So(f.Telemetry().Fullscreen, ShouldBeFalse)
		})

		Convey("Released subscribers should not be called", func() {
			release()
			So(f.Subscribers(), ShouldEqual, 0)

			f.Emit(player.EventPlay, nil)
			So(got, ShouldBeEmpty)
		})
	})
}
