package prefs

import (
	"testing"

	"github.com/playdeck/playdeck/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.UseMemory()
}

func TestStore(t *testing.T) {
	Convey("Given an empty preference store", t, func() {
		store := New("/state/" + t.Name() + ".json")
		filesystem.UseMemory()

		Convey("Get should fall back to the default", func() {
			So(store.Get("volume", 1), ShouldEqual, 1.0)
		})

		Convey("Set values should be returned by Get", func() {
			So(store.Set("volume", 0.7), ShouldBeNil)
			So(store.Set("playback-rate", 1.25), ShouldBeNil)

			So(store.Get("volume", 1), ShouldEqual, 0.7)
			So(store.Get("playback-rate", 1), ShouldEqual, 1.25)
		})

		Convey("Values should survive reopening the file", func() {
			So(store.Set("volume", 0.3), ShouldBeNil)

			reopened := New(store.Path())
			So(reopened.Get("volume", 1), ShouldEqual, 0.3)
		})

		Convey("A zero volume is a real value, not a missing one", func() {
			So(store.Set("volume", 0), ShouldBeNil)
			So(store.Get("volume", 1), ShouldEqual, 0.0)
		})

		Convey("Clear should forget everything", func() {
			So(store.Set("volume", 0.5), ShouldBeNil)
			So(store.Clear(), ShouldBeNil)

			all, err := store.All()
			So(err, ShouldBeNil)
			So(all, ShouldBeEmpty)
		})
	})
}
