package timer

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestManual(t *testing.T) {
	Convey("Given a manual clock", t, func() {
		clock := NewManual()
		start := clock.Now()

		Convey("Callbacks fire in deadline order once their deadline is reached", func() {
			var fired []string
			clock.AfterFunc(200*time.Millisecond, func() { fired = append(fired, "late") })
			clock.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "early") })

			clock.Advance(150 * time.Millisecond)
			So(fired, ShouldResemble, []string{"early"})

			clock.Advance(50 * time.Millisecond)
			So(fired, ShouldResemble, []string{"early", "late"})
			So(clock.Now().Sub(start), ShouldEqual, 200*time.Millisecond)
		})

		Convey("A stopped callback never fires", func() {
			var fired bool
			s := clock.AfterFunc(time.Second, func() { fired = true })
			So(s.Stop(), ShouldBeTrue)
			So(s.Stop(), ShouldBeFalse)

			clock.Advance(2 * time.Second)
			So(fired, ShouldBeFalse)
			So(clock.Pending(), ShouldEqual, 0)
		})

		Convey("Callbacks scheduled by callbacks fire within the same advance", func() {
			var at []time.Duration
			clock.AfterFunc(100*time.Millisecond, func() {
				at = append(at, clock.Now().Sub(start))
				clock.AfterFunc(100*time.Millisecond, func() {
					at = append(at, clock.Now().Sub(start))
				})
			})

			clock.Advance(time.Second)
			So(at, ShouldResemble, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond})
		})
	})
}

func TestSlot(t *testing.T) {
	Convey("Given a slot on a manual clock", t, func() {
		clock := NewManual()
		slot := NewSlot("hide", clock, nil)
		count := 0

		So(slot.Name(), ShouldEqual, "hide")

		Convey("Scheduling runs the callback after the delay", func() {
			slot.Schedule(2*time.Second, func() { count++ })
			So(slot.Pending(), ShouldBeTrue)

			clock.Advance(1999 * time.Millisecond)
			So(count, ShouldEqual, 0)

			clock.Advance(time.Millisecond)
			So(count, ShouldEqual, 1)
			So(slot.Pending(), ShouldBeFalse)
		})

		Convey("Rescheduling replaces the pending callback", func() {
			slot.Schedule(2*time.Second, func() { count++ })
			clock.Advance(1500 * time.Millisecond)
			slot.Schedule(2*time.Second, func() { count += 10 })

			clock.Advance(1500 * time.Millisecond)
			So(count, ShouldEqual, 0)

			clock.Advance(500 * time.Millisecond)
			So(count, ShouldEqual, 10)
		})

		Convey("Cancel drops the pending callback", func() {
			slot.Schedule(time.Second, func() { count++ })
			So(slot.Cancel(), ShouldBeTrue)
			So(slot.Cancel(), ShouldBeFalse)

			clock.Advance(time.Minute)
			So(count, ShouldEqual, 0)
		})

		Convey("A callback already handed to the executor is dropped after Cancel", func() {
			var deferred []func()
			slot = NewSlot("loader", clock, func(fn func()) { deferred = append(deferred, fn) })
			slot.Schedule(300*time.Millisecond, func() { count++ })

			clock.Advance(300 * time.Millisecond)
			So(deferred, ShouldHaveLength, 1)

			slot.Cancel()
			deferred[0]()
			So(count, ShouldEqual, 0)
		})

		Convey("Independent slots never cancel each other", func() {
			other := NewSlot("flash", clock, nil)
			other.Schedule(time.Second, func() { count += 100 })
			slot.Schedule(time.Second, func() { count++ })

			slot.Cancel()
			clock.Advance(time.Second)
			So(count, ShouldEqual, 100)
		})
	})
}
