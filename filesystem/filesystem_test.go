package filesystem

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBackend(t *testing.T) {
	Convey("Filesystem backend", t, func() {
		Reset(UseOS)

		Convey("Should default to OsFs", func() {
			UseOS()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			UseMemory()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})

		Convey("GacheFs should write through the active backend", func() {
			UseMemory()
			var fs GacheFs
			So(fs.MkdirAll("/state", os.ModePerm), ShouldBeNil)

			f, err := fs.OpenFile("/state/prefs.json", os.O_CREATE|os.O_RDWR, 0o644)
			So(err, ShouldBeNil)
			_, err = f.Write([]byte("{}"))
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			exists, err := API().Exists("/state/prefs.json")
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})
	})
}
