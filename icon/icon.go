// Package icon renders the control-surface symbols in the variant chosen by the user.
//
// Icons can be displayed as emoji, nerd-font glyphs or plain ASCII.
package icon

import (
	"github.com/playdeck/playdeck/key"
	"github.com/spf13/viper"
)

const (
	emoji = "emoji"
	nerd  = "nerd"
	plain = "plain"
)

// AvailableVariants returns every supported icon variant.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Play Icon = iota
	Pause
	Rewind
	Skip
	Volume
	Muted
	Fullscreen
	ExitFullscreen
	Pip
	Settings
	Reload
	Success
	Fail
	Progress
)

type iconDef struct {
	emoji string
	nerd  string
	plain string
}

func (d iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	default:
		return ""
	}
}

var icons = map[Icon]iconDef{
	Play:           {emoji: "▶️", nerd: "", plain: ">"},
	Pause:          {emoji: "⏸️", nerd: "", plain: "||"},
	Rewind:         {emoji: "⏪", nerd: "", plain: "<<"},
	Skip:           {emoji: "⏩", nerd: "", plain: ">>"},
	Volume:         {emoji: "🔊", nerd: "", plain: "vol"},
	Muted:          {emoji: "🔇", nerd: "", plain: "mute"},
	Fullscreen:     {emoji: "⛶", nerd: "", plain: "[ ]"},
	ExitFullscreen: {emoji: "🗗", nerd: "", plain: "][ "},
	Pip:            {emoji: "🖼️", nerd: "", plain: "pip"},
	Settings:       {emoji: "⚙️", nerd: "", plain: "set"},
	Reload:         {emoji: "🔄", nerd: "", plain: "reload"},
	Success:        {emoji: "✅", nerd: "", plain: "✓"},
	Fail:           {emoji: "💀", nerd: "", plain: "✖"},
	Progress:       {emoji: "⏳", nerd: "", plain: "…"},
}

// Get returns the rendered symbol for i in the configured variant.
func Get(i Icon) string {
	return icons[i].get()
}
