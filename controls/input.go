package controls

import "sync"

// Key is a key relevant to the global shortcuts.
type Key string

const (
	KeyLeft  Key = "left"
	KeyRight Key = "right"
	KeyUp    Key = "up"
	KeyDown  Key = "down"
	KeySpace Key = "space"
)

// TargetKind is the kind of element holding keyboard focus.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetButton
	TargetInput
	TargetTextArea
)

// Target describes the focused element when a key was pressed.
type Target struct {
	Kind TargetKind
	// InputType is the input's type, e.g. "text" or "range", for TargetInput.
	InputType string
}

// IsTextEntry reports whether keys typed into the target belong to it
// rather than to the global shortcuts. Range sliders do not count.
func (t Target) IsTextEntry() bool {
	switch t.Kind {
	case TargetTextArea:
		return true
	case TargetInput:
		return t.InputType != "range"
	default:
		return false
	}
}

// KeyEvent is a key press delivered by an InputSource.
type KeyEvent struct {
	Key    Key
	Target Target
}

// InputSource delivers key presses. The handler returns true when it
// consumed the key, suppressing the source's default action.
type InputSource interface {
	Subscribe(handler func(KeyEvent) bool) (release func())
}

// routeKey maps the global shortcuts onto engine commands.
func (e *Engine) routeKey(ev KeyEvent) bool {
	if ev.Target.IsTextEntry() {
		return false
	}

	switch ev.Key {
	case KeyLeft:
		e.Rewind()
	case KeyRight:
		e.Skip()
	case KeyUp:
		e.StepVolume(1)
	case KeyDown:
		e.StepVolume(-1)
	case KeySpace:
		e.TogglePlay()
	default:
		return false
	}
	return true
}

// Keys is a minimal InputSource for callers that feed key presses directly.
type Keys struct {
	mu       sync.Mutex
	handlers map[int]func(KeyEvent) bool
	next     int
}

// NewKeys creates an empty key source.
func NewKeys() *Keys {
	return &Keys{handlers: make(map[int]func(KeyEvent) bool)}
}

func (k *Keys) Subscribe(handler func(KeyEvent) bool) (release func()) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.next++
	id := k.next
	k.handlers[id] = handler

	return func() {
		k.mu.Lock()
		defer k.mu.Unlock()
		delete(k.handlers, id)
	}
}

// Press delivers ev to every subscriber and reports whether any consumed it.
func (k *Keys) Press(ev KeyEvent) bool {
	k.mu.Lock()
	handlers := make([]func(KeyEvent) bool, 0, len(k.handlers))
	for _, h := range k.handlers {
		handlers = append(handlers, h)
	}
	k.mu.Unlock()

	handled := false
	for _, h := range handlers {
		if h(ev) {
			handled = true
		}
	}
	return handled
}

// Subscribers returns the number of live subscriptions.
func (k *Keys) Subscribers() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.handlers)
}
