package player

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeMPV accepts IPC connections on a unix socket and answers every command with reply.
func fakeMPV(t *testing.T, reply func(cmd []interface{}) string) (string, chan net.Conn) {
	sock := filepath.Join(t.TempDir(), "mpv.sock")
	ln, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })

	conns := make(chan net.Conn, 8)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			if reply == nil {
				conns <- conn
				continue
			}
			go func() {
				defer conn.Close()
				line, err := bufio.NewReader(conn).ReadBytes('\n')
				if err != nil {
					return
				}
				var c ipcCommand
				_ = json.Unmarshal(line, &c)
				_, _ = conn.Write([]byte(reply(c.Command) + "\n"))
			}()
		}
	}()

	return sock, conns
}

func TestSendCommand(t *testing.T) {
	Convey("Given an mpv socket", t, func() {
		sock, _ := fakeMPV(t, func(cmd []interface{}) string {
			if cmd[1] == "nope" {
				return `{"request_id":0,"error":"property not found"}`
			}
			return `{"data":42.5,"request_id":0,"error":"success"}`
		})
		m := NewMPV(Options{})
		m.socketPath = sock

		Convey("Successful commands should return their data", func() {
			data, err := m.sendCommand(context.Background(), "get_property", "time-pos")
			So(err, ShouldBeNil)
			So(data, ShouldEqual, 42.5)
		})

		Convey("Refusals should surface without retries", func() {
			_, err := m.sendCommand(context.Background(), "get_property", "nope")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "property not found")
		})
	})
}

func TestEventListener(t *testing.T) {
	Convey("Given a listener connected to mpv", t, func() {
		sock, conns := fakeMPV(t, nil)
		el := NewEventListener(sock)
		So(el.Start(), ShouldBeNil)

		var conn net.Conn
		select {
		case conn = <-conns:
		case <-time.After(time.Second):
			t.Fatal("listener never connected")
		}
		defer conn.Close()

		reader := bufio.NewReader(conn)
		for range observed {
			line, err := reader.ReadBytes('\n')
			So(err, ShouldBeNil)
			So(string(line), ShouldContainSubstring, "observe_property")
		}

		got := make(chan Event, 16)
		release := el.Subscribe(func(ev Event) { got <- ev })

		next := func() Event {
			select {
			case ev := <-got:
				return ev
			case <-time.After(time.Second):
				t.Fatal("no event delivered")
				return Event{}
			}
		}

		Convey("Property changes should reach subscribers and the cache", func() {
			_, err := conn.Write([]byte(
				`{"request_id":0,"error":"success"}` + "\n" +
					`{"event":"property-change","id":2,"name":"duration","data":200}` + "\n",
			))
			So(err, ShouldBeNil)

			ev := next()
			So(ev.Kind, ShouldEqual, EventMetadataReady)
			So(el.Telemetry().KnownDuration(), ShouldEqual, 200.0)

			release()
			el.Stop()
		})

		Convey("Losing the connection should fault", func() {
			So(conn.Close(), ShouldBeNil)

			ev := next()
			So(ev.Kind, ShouldEqual, EventError)
			So(ev.Err, ShouldNotBeNil)

			release()
			el.Stop()
		})
	})
}
