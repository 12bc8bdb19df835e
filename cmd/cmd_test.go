package cmd

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/playdeck/playdeck/config"
	"github.com/playdeck/playdeck/controls"
	"github.com/playdeck/playdeck/filesystem"
	"github.com/playdeck/playdeck/key"
	"github.com/playdeck/playdeck/player/playertest"
	"github.com/playdeck/playdeck/prefs"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.UseMemory()
}

func TestEngineOptions(t *testing.T) {
	Convey("engineOptions should translate the configured timings", t, func() {
		viper.Set(key.ControlsHideDelayMs, 1500)
		viper.Set(key.ControlsLoaderGraceMs, 250)
		viper.Set(key.ControlsFlashClearMs, 1000)
		viper.Set(key.ControlsSkipSeconds, 5)
		viper.Set(key.ControlsVolumeStepPct, 10)
		Reset(viper.Reset)

		keys := controls.NewKeys()
		opts := engineOptions(playertest.New(), keys)

		So(opts.HideDelay, ShouldEqual, 1500*time.Millisecond)
		So(opts.LoaderGrace, ShouldEqual, 250*time.Millisecond)
		So(opts.FlashClear, ShouldEqual, time.Second)
		So(opts.SkipStep, ShouldEqual, 5.0)
		So(opts.VolumeStep, ShouldEqual, 0.1)
		So(opts.Input, ShouldEqual, keys)
		So(opts.Preferences, ShouldNotBeNil)

		Convey("and build a usable engine", func() {
			engine, err := controls.New(opts)
			So(err, ShouldBeNil)
			So(engine.Mount(), ShouldBeNil)
			engine.Close()
		})
	})
}

func TestCompletionConfigKeys(t *testing.T) {
	Convey("completionConfigKeys", t, func() {
		Convey("Should list every key sorted without input", func() {
			keys, _ := completionConfigKeys(nil, nil, "")
			So(keys, ShouldContain, key.ControlsHideDelayMs)
			So(keys[0] < keys[len(keys)-1], ShouldBeTrue)
		})

		Convey("Should narrow down to fuzzy matches", func() {
			keys, _ := completionConfigKeys(nil, nil, "hidedel")
			So(keys, ShouldResemble, []string{key.ControlsHideDelayMs})
		})
	})
}

func TestErrUnknownKey(t *testing.T) {
	Convey("errUnknownKey should suggest the closest key", t, func() {
		err := errUnknownKey("controls.skip_second")
		So(err.Error(), ShouldContainSubstring, key.ControlsSkipSeconds)
	})
}

func TestJoinNames(t *testing.T) {
	Convey("joinNames", t, func() {
		So(joinNames(nil), ShouldEqual, "")
		So(joinNames([]string{"logs"}), ShouldEqual, "logs")
		So(joinNames([]string{"logs", "history"}), ShouldEqual, "logs and history")
		So(joinNames([]string{"a", "b", "c"}), ShouldEqual, "a, b and c")
	})
}

func TestParseValue(t *testing.T) {
	Convey("parseValue", t, func() {
		field := func(k string) config.Field { return config.Default[k] }

		Convey("Should convert to the field's type", func() {
			v, err := parseValue(field(key.ControlsSkipSeconds), []string{"5"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 5)

			v, err = parseValue(field(key.HistorySave), []string{"false"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, false)

			v, err = parseValue(field(key.PlayerTitle), []string{"Sintel"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "Sintel")
		})

		Convey("Should reject malformed and negative numbers", func() {
			_, err := parseValue(field(key.ControlsHideDelayMs), []string{"soon"})
			So(err, ShouldNotBeNil)

			_, err = parseValue(field(key.ControlsHideDelayMs), []string{"-1"})
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject unknown icon variants and log levels", func() {
			_, err := parseValue(field(key.IconsVariant), []string{"nerd"})
			So(err, ShouldBeNil)

			_, err = parseValue(field(key.IconsVariant), []string{"fancy"})
			So(err, ShouldNotBeNil)

			_, err = parseValue(field(key.LogsLevel), []string{"loud"})
			So(err, ShouldNotBeNil)
		})

		Convey("Should require a value", func() {
			_, err := parseValue(field(key.PlayerTitle), nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestPreferencesCommands(t *testing.T) {
	Convey("Given saved preferences", t, func() {
		So(prefs.Default().Set("volume", 0.4), ShouldBeNil)

		Convey("config prefs should list them", func() {
			var out bytes.Buffer
			configPrefsCmd.SetOut(&out)
			Reset(func() { configPrefsCmd.SetOut(os.Stdout) })

			configPrefsCmd.Run(configPrefsCmd, nil)
			So(out.String(), ShouldContainSubstring, "volume")
			So(out.String(), ShouldContainSubstring, "0.4")
		})

		Convey("clearing preferences should forget them", func() {
			target, ok := lo.Find(clearTargets, func(t clearTarget) bool { return t.argLong == "preferences" })
			So(ok, ShouldBeTrue)
			So(target.clear(), ShouldBeNil)

			saved, err := prefs.Default().All()
			So(err, ShouldBeNil)
			So(saved, ShouldBeEmpty)
		})
	})

	Convey("Clearing a missing path should succeed", t, func() {
		So(removeAt(func() string { return "/nowhere/at/all" })(), ShouldBeNil)
	})
}
