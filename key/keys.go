// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Media Transport - these keys configure how the mpv process is launched and driven.
const (
	PlayerMPVPath  = "player.mpv_path"
	PlayerAutoplay = "player.autoplay"
	PlayerTitle    = "player.title"
)

// Control Timing - these keys tune the timed behaviors of the playback controls.
const (
	ControlsHideDelayMs   = "controls.hide_delay_ms"
	ControlsLoaderGraceMs = "controls.loader_grace_ms"
	ControlsFlashClearMs  = "controls.flash_clear_ms"
	ControlsSkipSeconds   = "controls.skip_seconds"
	ControlsVolumeStepPct = "controls.volume_step_percent"
)

// History - these keys control the list of recently opened media.
const (
	HistorySave = "history.save"
)

// Terminal User Interface (TUI) - these keys define the interactive control surface.
const (
	TUIShowHelp = "tui.show_help"
)

// Inline Mode - these keys configure the headless snapshot stream.
const (
	InlinePretty = "inline.pretty"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
