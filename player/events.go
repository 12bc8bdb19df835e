package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/playdeck/playdeck/log"
)

// observed lists the mpv properties mirrored into Telemetry.
var observed = []string{
	"time-pos",
	"duration",
	"pause",
	"volume",
	"mute",
	"speed",
	"seeking",
	"paused-for-cache",
	"demuxer-cache-state",
	"fullscreen",
	"ontop",
	"eof-reached",
}

// EventListener keeps a persistent IPC connection open, mirrors observed
// properties into a cached Telemetry and fans translated events out to
// subscribers.
type EventListener struct {
	socketPath string
	conn       net.Conn

	mu        sync.Mutex
	listening bool
	stopped   bool
	state     Telemetry

	subMu  sync.Mutex
	subs   map[int]func(Event)
	nextID int

	done chan struct{}
}

// NewEventListener creates a listener for the given socket.
func NewEventListener(socketPath string) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		state:      NewTelemetry(),
		subs:       make(map[int]func(Event)),
		done:       make(chan struct{}),
	}
}

// Start connects, registers the property observers on that same connection
// and begins the read loop.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	// observe_property is scoped to the connection that issued it
	for i, name := range observed {
		payload, err := json.Marshal(ipcCommand{Command: []interface{}{"observe_property", i + 1, name}})
		if err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
		if _, err := conn.Write(append(payload, '\n')); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.listening = true
	go el.readLoop()

	log.Infof("mpv event listener started on %s", el.socketPath)
	return nil
}

// Stop closes the connection and waits for the read loop to exit.
func (el *EventListener) Stop() {
	el.mu.Lock()
	if !el.listening {
		el.mu.Unlock()
		return
	}
	el.stopped = true
	el.listening = false
	conn := el.conn
	el.mu.Unlock()

	_ = conn.Close()
	<-el.done
}

// Telemetry returns a copy of the cached state.
func (el *EventListener) Telemetry() Telemetry {
	el.mu.Lock()
	defer el.mu.Unlock()
	return el.state.Clone()
}

// patch applies a local state change made by a command, ahead of mpv's
// own property-change echo.
func (el *EventListener) patch(fn func(*Telemetry)) {
	el.mu.Lock()
	defer el.mu.Unlock()
	fn(&el.state)
}

// Subscribe registers fn for future events.
func (el *EventListener) Subscribe(fn func(Event)) (release func()) {
	el.subMu.Lock()
	defer el.subMu.Unlock()

	el.nextID++
	id := el.nextID
	el.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			el.subMu.Lock()
			defer el.subMu.Unlock()
			delete(el.subs, id)
		})
	}
}

func (el *EventListener) publish(events []Event) {
	if len(events) == 0 {
		return
	}

	el.subMu.Lock()
	subs := make([]func(Event), 0, len(el.subs))
	for _, fn := range el.subs {
		subs = append(subs, fn)
	}
	el.subMu.Unlock()

	for _, ev := range events {
		for _, fn := range subs {
			fn(ev)
		}
	}
}

// readLoop reads newline-delimited JSON from mpv until the connection closes.
func (el *EventListener) readLoop() {
	defer close(el.done)

	reader := bufio.NewReader(el.conn)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			el.process(line)
		}
		if err == nil {
			continue
		}

		el.mu.Lock()
		stopped := el.stopped
		el.listening = false
		el.mu.Unlock()

		if stopped {
			return
		}

		if !errors.Is(err, io.EOF) {
			log.Warnf("event listener read error: %v", err)
		}
		el.publish([]Event{{
			Kind:  EventError,
			State: el.Telemetry(),
			Err:   fmt.Errorf("lost connection to mpv: %w", err),
		}})
		return
	}
}

// process parses one line and publishes the events it translates to.
// Command replies carry no "event" field and are skipped.
func (el *EventListener) process(line []byte) {
	var ev mpvEvent
	if err := json.Unmarshal(line, &ev); err != nil || ev.Event == "" {
		return
	}

	el.mu.Lock()
	events := translate(ev, &el.state)
	el.mu.Unlock()

	el.publish(events)
}
