package player

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func property(name, data string) mpvEvent {
	return mpvEvent{Event: "property-change", Name: name, Data: json.RawMessage(data)}
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestTranslate(t *testing.T) {
	Convey("Given a fresh telemetry", t, func() {
		st := NewTelemetry()

		Convey("time-pos should update the position", func() {
			events := translate(property("time-pos", "125.7"), &st)
			So(kinds(events), ShouldResemble, []EventKind{EventTimeUpdate})
			So(st.CurrentTime, ShouldEqual, 125.7)
			So(events[0].State.CurrentTime, ShouldEqual, 125.7)
		})

		Convey("A null time-pos should be ignored", func() {
			So(translate(property("time-pos", "null"), &st), ShouldBeEmpty)
			So(st.CurrentTime, ShouldEqual, 0.0)
		})

		Convey("duration should become known and reset to unknown on null", func() {
			So(kinds(translate(property("duration", "200"), &st)), ShouldResemble, []EventKind{EventMetadataReady})
			So(st.KnownDuration(), ShouldEqual, 200.0)

			translate(property("duration", "null"), &st)
			So(st.Duration.IsAbsent(), ShouldBeTrue)
		})

		Convey("pause should map to play and pause", func() {
			So(kinds(translate(property("pause", "false"), &st)), ShouldResemble, []EventKind{EventPlay})
			So(st.Paused, ShouldBeFalse)
			So(kinds(translate(property("pause", "true"), &st)), ShouldResemble, []EventKind{EventPause})
			So(st.Paused, ShouldBeTrue)
		})

		Convey("volume should be scaled to [0,1]", func() {
			So(kinds(translate(property("volume", "70"), &st)), ShouldResemble, []EventKind{EventVolumeChanged})
			So(st.Volume, ShouldAlmostEqual, 0.7)

			translate(property("volume", "130"), &st)
			So(st.Volume, ShouldEqual, 1.0)
		})

		Convey("speed should ignore non-positive values", func() {
			translate(property("speed", "1.5"), &st)
			So(st.PlaybackRate, ShouldEqual, 1.5)
			So(translate(property("speed", "0"), &st), ShouldBeEmpty)
			So(st.PlaybackRate, ShouldEqual, 1.5)
		})

		Convey("seeking and paused-for-cache should map to stall signals", func() {
			So(kinds(translate(property("seeking", "true"), &st)), ShouldResemble, []EventKind{EventSeeking})
			So(kinds(translate(property("seeking", "false"), &st)), ShouldResemble, []EventKind{EventSeeked})
			So(kinds(translate(property("paused-for-cache", "true"), &st)), ShouldResemble, []EventKind{EventWaiting})
			So(kinds(translate(property("paused-for-cache", "false"), &st)), ShouldResemble, []EventKind{EventCanPlay})
		})

		Convey("seekable ranges should become sorted buffered ranges", func() {
			data := `{"cache-end": 50, "seekable-ranges": [{"start": 40, "end": 50}, {"start": 0, "end": 30}]}`
			So(kinds(translate(property("demuxer-cache-state", data), &st)), ShouldResemble, []EventKind{EventProgress})
			So(st.Buffered, ShouldResemble, []Range{{Start: 0, End: 30}, {Start: 40, End: 50}})

			translate(property("demuxer-cache-state", "null"), &st)
			So(st.Buffered, ShouldBeEmpty)
		})

		Convey("ontop should drive picture-in-picture", func() {
			So(kinds(translate(property("ontop", "true"), &st)), ShouldResemble, []EventKind{EventEnterPip})
			So(st.PictureInPicture, ShouldBeTrue)
			So(kinds(translate(property("ontop", "false"), &st)), ShouldResemble, []EventKind{EventLeavePip})
		})

		Convey("fullscreen should report its new value", func() {
			events := translate(property("fullscreen", "true"), &st)
			So(kinds(events), ShouldResemble, []EventKind{EventFullscreenChanged})
			So(events[0].State.Fullscreen, ShouldBeTrue)
		})

		Convey("eof-reached should end playback until unpaused", func() {
			So(kinds(translate(property("eof-reached", "true"), &st)), ShouldResemble, []EventKind{EventEnded})
			So(st.Ended, ShouldBeTrue)

			translate(property("pause", "false"), &st)
			So(st.Ended, ShouldBeFalse)
		})

		Convey("end-file should only fault on errors", func() {
			So(translate(mpvEvent{Event: "end-file", Reason: "eof"}, &st), ShouldBeEmpty)

			events := translate(mpvEvent{Event: "end-file", Reason: "error", FileError: "loading failed"}, &st)
			So(kinds(events), ShouldResemble, []EventKind{EventError})
			So(events[0].Err.Error(), ShouldContainSubstring, "loading failed")
		})

		Convey("shutdown should fault", func() {
			events := translate(mpvEvent{Event: "shutdown"}, &st)
			So(events, ShouldHaveLength, 1)
			So(events[0].Err, ShouldEqual, ErrShutdown)
		})

		Convey("Emitted state should not alias the cached buffer", func() {
			events := translate(property("demuxer-cache-state", `{"seekable-ranges":[{"start":0,"end":10}]}`), &st)
			st.Buffered[0].End = 99
			So(events[0].State.Buffered[0].End, ShouldEqual, 10.0)
		})
	})
}

func TestEventKind(t *testing.T) {
	Convey("Event kinds should have stable names", t, func() {
		So(EventMetadataReady.String(), ShouldEqual, "metadata-ready")
		So(EventFullscreenChanged.String(), ShouldEqual, "fullscreen-changed")
		So(EventKind(0).String(), ShouldEqual, "unknown")
	})
}
