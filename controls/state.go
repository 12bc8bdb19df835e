package controls

// FlashKind names the last keyboard-triggered action a view should echo.
type FlashKind string

const (
	FlashNone   FlashKind = ""
	FlashRewind FlashKind = "rewind"
	FlashSkip   FlashKind = "skip"
	FlashVolume FlashKind = "volume"
)

// KeyActionFlash drives transient feedback. Active keeps the volume badge
// up until the clear slot fires; Seq changes on every rewind/skip so views
// can restart their directional cue.
type KeyActionFlash struct {
	Active bool      `json:"active"`
	Kind   FlashKind `json:"kind"`
	Seq    uint64    `json:"seq"`
}

// SeekPreview is the hover tooltip over the seek track.
type SeekPreview struct {
	TimeLabel   string `json:"timeLabel"`
	PixelOffset string `json:"pixelOffset"`
}

// Authoritative fields only ever change in response to transport events.
type Authoritative struct {
	IsPlaying        bool    `json:"isPlaying"`
	Volume           float64 `json:"volume"`
	Muted            bool    `json:"muted"`
	PlaybackRate     float64 `json:"playbackRate"`
	PipActive        bool    `json:"pipActive"`
	FullscreenActive bool    `json:"fullscreenActive"`
}

// Optimistic fields are owned by the engine and may run ahead of the transport.
type Optimistic struct {
	CurrentProgressPct  float64        `json:"currentProgressPct"`
	BufferedProgressPct float64        `json:"bufferedProgressPct"`
	SeekPreview         SeekPreview    `json:"seekPreview"`
	CurrentTimeLabel    string         `json:"currentTimeLabel"`
	RemainingTimeLabel  string         `json:"remainingTimeLabel"`
	ControlsVisible     bool           `json:"controlsVisible"`
	CursorVisible       bool           `json:"cursorVisible"`
	LoaderVisible       bool           `json:"loaderVisible"`
	KeyActionFlash      KeyActionFlash `json:"keyActionFlash"`
	DropdownOpen        bool           `json:"dropdownOpen"`
}

// Snapshot is a consistent copy of the UI state.
type Snapshot struct {
	Authoritative Authoritative `json:"authoritative"`
	Optimistic    Optimistic    `json:"optimistic"`
	// Errored is terminal: the fallback view replaces the controls.
	Errored bool `json:"errored"`
}

func initialSnapshot(volume, rate float64) Snapshot {
	return Snapshot{
		Authoritative: Authoritative{
			Volume:       volume,
			Muted:        volume == 0,
			PlaybackRate: rate,
		},
		Optimistic: Optimistic{
			SeekPreview:        SeekPreview{TimeLabel: zeroLabel, PixelOffset: "0px"},
			CurrentTimeLabel:   zeroLabel,
			RemainingTimeLabel: zeroLabel,
			ControlsVisible:    true,
			CursorVisible:      true,
		},
	}
}
