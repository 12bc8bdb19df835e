package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/playdeck/playdeck/filesystem"
	"github.com/playdeck/playdeck/key"
	"github.com/playdeck/playdeck/where"
	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.UseMemory()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)

		Convey("Setup should succeed and emissions should be dropped", func() {
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeFalse)
			Infof("dropped %d", 1)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		Reset(func() { viper.Set(key.LogsWrite, false) })

		Convey("Setup should create today's file and honour the level", func() {
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeTrue)
			So(logrus.GetLevel(), ShouldEqual, logrus.DebugLevel)

			Infof("hello %s", "file")
			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			data, err := filesystem.API().ReadFile(path)
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "hello file")
		})

		Convey("An unknown level falls back to info", func() {
			viper.Set(key.LogsLevel, "chatty")
			Reload()
			So(logrus.GetLevel(), ShouldEqual, logrus.InfoLevel)
		})
	})
}
