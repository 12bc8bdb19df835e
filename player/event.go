package player

// EventKind enumerates the notifications a Transport emits.
type EventKind int

const (
	EventMetadataReady EventKind = iota + 1
	EventTimeUpdate
	EventProgress
	EventPlay
	EventPause
	EventVolumeChanged
	EventRateChanged
	EventSeeking
	EventSeeked
	EventWaiting
	EventCanPlay
	EventError
	EventEnterPip
	EventLeavePip
	EventFullscreenChanged
	EventEnded
)

var eventNames = map[EventKind]string{
	EventMetadataReady:     "metadata-ready",
	EventTimeUpdate:        "time-update",
	EventProgress:          "progress",
	EventPlay:              "play",
	EventPause:             "pause",
	EventVolumeChanged:     "volume-changed",
	EventRateChanged:       "rate-changed",
	EventSeeking:           "seeking",
	EventSeeked:            "seeked",
	EventWaiting:           "waiting",
	EventCanPlay:           "can-play",
	EventError:             "error",
	EventEnterPip:          "enter-pip",
	EventLeavePip:          "leave-pip",
	EventFullscreenChanged: "fullscreen-changed",
	EventEnded:             "ended",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is a transport notification together with the state it was emitted in.
type Event struct {
	Kind  EventKind
	State Telemetry
	// Err is set for EventError only.
	Err error
}
