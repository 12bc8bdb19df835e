package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/playdeck/playdeck/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.UseMemory()
}

var storeSeq int

func newStore() *Store {
	storeSeq++
	s := New(fmt.Sprintf("/state/history-%d.json", storeSeq))

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s
}

func TestHistory(t *testing.T) {
	Convey("Given an empty history", t, func() {
		s := newStore()

		Convey("It should list nothing", func() {
			entries, err := s.Entries()
			So(err, ShouldBeNil)
			So(entries, ShouldBeEmpty)
			So(s.Suggest(""), ShouldBeEmpty)
		})

		Convey("Blank targets should be ignored", func() {
			So(s.Remember("   ", "nothing"), ShouldBeNil)
			entries, _ := s.Entries()
			So(entries, ShouldBeEmpty)
		})

		Convey("When remembering targets", func() {
			So(s.Remember("https://example.com/big-buck-bunny.mp4", "Big Buck Bunny"), ShouldBeNil)
			So(s.Remember("/videos/sintel.mkv", ""), ShouldBeNil)
			So(s.Remember("/videos/tears-of-steel.mkv", ""), ShouldBeNil)
			So(s.Remember("/videos/sintel.mkv", "Sintel"), ShouldBeNil)

			Convey("Then the most opened target should come first", func() {
				entries, err := s.Entries()
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 3)
				So(entries[0].Target, ShouldEqual, "/videos/sintel.mkv")
				So(entries[0].Rank, ShouldEqual, 2)
				So(entries[0].Title, ShouldEqual, "Sintel")
			})

			Convey("Then ties should be broken by recency", func() {
				entries, _ := s.Entries()
				So(entries[1].Target, ShouldEqual, "/videos/tears-of-steel.mkv")
				So(entries[2].Target, ShouldEqual, "https://example.com/big-buck-bunny.mp4")
			})

			Convey("Then suggestions should match targets and titles fuzzily", func() {
				So(s.Suggest("stl"), ShouldResemble, []string{"/videos/sintel.mkv", "/videos/tears-of-steel.mkv"})
				So(s.Suggest("BUCK"), ShouldResemble, []string{"https://example.com/big-buck-bunny.mp4"})
				So(s.Suggest("zzz"), ShouldBeEmpty)
			})

			Convey("Then forgetting should drop the target", func() {
				So(s.Forget("/videos/sintel.mkv"), ShouldBeNil)
				entries, _ := s.Entries()
				So(entries, ShouldHaveLength, 2)
			})

			Convey("Then the history should survive reopening", func() {
				entries, err := New(fmt.Sprintf("/state/history-%d.json", storeSeq)).Entries()
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 3)
			})
		})
	})
}
