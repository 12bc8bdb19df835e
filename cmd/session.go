package cmd

import (
	"context"
	"time"

	"github.com/playdeck/playdeck/controls"
	"github.com/playdeck/playdeck/history"
	"github.com/playdeck/playdeck/key"
	"github.com/playdeck/playdeck/log"
	"github.com/playdeck/playdeck/player"
	"github.com/playdeck/playdeck/prefs"
	"github.com/spf13/viper"
)

// session is a loaded mpv process with a mounted controls engine.
type session struct {
	mpv    *player.MPV
	engine *controls.Engine
	keys   *controls.Keys
	title  string
}

func millis(k string) time.Duration {
	return time.Duration(viper.GetInt(k)) * time.Millisecond
}

func engineOptions(transport player.Transport, keys *controls.Keys) controls.Options {
	return controls.Options{
		Transport:   transport,
		Preferences: prefs.Default(),
		Input:       keys,
		HideDelay:   millis(key.ControlsHideDelayMs),
		LoaderGrace: millis(key.ControlsLoaderGraceMs),
		FlashClear:  millis(key.ControlsFlashClearMs),
		SkipStep:    float64(viper.GetInt(key.ControlsSkipSeconds)),
		VolumeStep:  float64(viper.GetInt(key.ControlsVolumeStepPct)) / 100,
	}
}

func openSession(ctx context.Context, target string) (*session, error) {
	title := viper.GetString(key.PlayerTitle)
	if title == "" {
		title = target
	}

	mpv := player.NewMPV(player.Options{
		Binary:   viper.GetString(key.PlayerMPVPath),
		Title:    title,
		Autoplay: viper.GetBool(key.PlayerAutoplay),
	})

	if err := mpv.Load(ctx, target); err != nil {
		return nil, err
	}

	keys := controls.NewKeys()
	engine, err := controls.New(engineOptions(mpv, keys))
	if err == nil {
		err = engine.Mount()
	}
	if err != nil {
		_ = mpv.Close()
		return nil, err
	}

	if viper.GetBool(key.HistorySave) {
		if err := history.Default().Remember(target, viper.GetString(key.PlayerTitle)); err != nil {
			log.Warnf("remember %s: %v", target, err)
		}
	}

	log.Infof("playing %s", target)
	log.Debugf("mpv ipc socket at %s", mpv.Socket())
	return &session{mpv: mpv, engine: engine, keys: keys, title: title}, nil
}

func (s *session) Close() {
	s.engine.Close()
	if err := s.mpv.Close(); err != nil {
		log.Warnf("close mpv: %v", err)
	}
}

func suggestTargets(toComplete string) []string {
	if !viper.GetBool(key.HistorySave) {
		return nil
	}
	return history.Default().Suggest(toComplete)
}
