package player

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMPV(t *testing.T) {
	Convey("Given an unloaded mpv transport", t, func() {
		m := NewMPV(Options{Title: "Big\nBuck\tBunny"})

		Convey("It should default to the mpv binary", func() {
			So(m.options.Binary, ShouldEqual, "mpv")
		})

		Convey("Commands should fail with ErrNotLoaded", func() {
			So(m.Play(context.Background()), ShouldEqual, ErrNotLoaded)
			So(m.SetVolume(0.5), ShouldEqual, ErrNotLoaded)
			So(m.RequestFullscreen(context.Background()), ShouldEqual, ErrNotLoaded)
		})

		Convey("Telemetry should describe a paused element", func() {
			tel := m.Telemetry()
			So(tel.Paused, ShouldBeTrue)
			So(tel.Volume, ShouldEqual, 1.0)
			So(tel.Duration.IsAbsent(), ShouldBeTrue)
		})

		Convey("Close should be a no-op", func() {
			So(m.Close(), ShouldBeNil)
		})

		Convey("args should pause unless autoplay and end with the target", func() {
			m.socketPath = "/tmp/mpv.sock"
			So(m.Socket(), ShouldEqual, "/tmp/mpv.sock")
			args := m.args("video.mp4")

			So(args, ShouldContain, "--input-ipc-server=/tmp/mpv.sock")
			So(args, ShouldContain, "--pause")
			So(args, ShouldContain, "--title=Big Buck Bunny")
			So(args[len(args)-2:], ShouldResemble, []string{"--", "video.mp4"})

			m.options.Autoplay = true
			So(m.args("video.mp4"), ShouldNotContain, "--pause")
		})
	})
}

func TestSanitize(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		Convey("Should accept http(s) URLs and local paths", func() {
			u, err := sanitizeMediaTarget(" https://example.com/v.m3u8 ")
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "https://example.com/v.m3u8")

			p, err := sanitizeMediaTarget("videos/../clip.mp4")
			So(err, ShouldBeNil)
			So(p, ShouldEqual, "clip.mp4")
		})

		Convey("Should reject flags, control characters and other schemes", func() {
			for _, target := range []string{"", "--script=evil.lua", "a\nb", "file:///etc/passwd"} {
				_, err := sanitizeMediaTarget(target)
				So(err, ShouldNotBeNil)
			}
		})
	})

	Convey("sanitizeTitle should flatten whitespace", t, func() {
		So(sanitizeTitle("  a\r\nb\x00 "), ShouldEqual, "a  b")
	})
}
