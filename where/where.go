// Package where resolves the filesystem locations playdeck reads and writes.
package where

import (
	"os"
	"path/filepath"

	"github.com/playdeck/playdeck/constant"
	"github.com/playdeck/playdeck/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "PLAYDECK_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory: XDG_CONFIG_HOME on Linux, the
// platform equivalent elsewhere, or the PLAYDECK_CONFIG_PATH override.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Playdeck))
}

// State resolves the directory holding data that must survive restarts.
func State() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "state")
	}
	return ensureDir(filepath.Join(base, constant.Playdeck))
}

// Logs resolves the directory used for diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Preferences resolves the persisted volume and playback rate file.
func Preferences() string {
	return filepath.Join(State(), "preferences.json")
}

// History resolves the file listing recently opened media.
func History() string {
	return filepath.Join(State(), "history.json")
}

// Temp resolves a directory for volatile artifacts such as mpv IPC sockets.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Playdeck))
}
