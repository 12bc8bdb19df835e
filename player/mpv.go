package player

import (
	"context"
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/playdeck/playdeck/log"
	"github.com/playdeck/playdeck/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second

	// pipScale is the window-scale of the compact always-on-top window.
	pipScale = 0.5
)

// Options configures how mpv is spawned.
type Options struct {
	// Binary is the mpv executable, looked up in PATH when not absolute.
	Binary   string
	Title    string
	Autoplay bool
}

// MPV implements Transport on top of an mpv process.
type MPV struct {
	options    Options
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	listener   *EventListener
	mu         sync.Mutex // protects socket writes
}

var _ Transport = (*MPV)(nil)

// NewMPV creates a transport. Nothing is spawned until Load.
func NewMPV(options Options) *MPV {
	if options.Binary == "" {
		options.Binary = "mpv"
	}
	return &MPV{
		options: options,
		exited:  make(chan struct{}),
	}
}

// Load spawns mpv for target and blocks until its IPC socket accepts
// connections and the event listener is running.
func (m *MPV) Load(ctx context.Context, target string) error {
	safeTarget, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("mpv-%x.sock", randomBytes))
	}

	m.cmd = exec.CommandContext(ctx, m.options.Binary, m.args(safeTarget)...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// reap the process to prevent zombies
	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(ctx); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.listener = NewEventListener(m.socketPath)
	if err := m.listener.Start(); err != nil {
		_ = m.Close()
		return err
	}

	log.Infof("mpv started for %s", safeTarget)
	return nil
}

// args builds the command line. Only the socket, window behaviour and the
// target are passed so the user's mpv.conf stays in charge of everything else.
func (m *MPV) args(target string) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=yes",
	}

	if title := sanitizeTitle(m.options.Title); title != "" {
		args = append(args,
			fmt.Sprintf("--force-media-title=%s", title),
			fmt.Sprintf("--title=%s", title),
		)
	}

	if !m.options.Autoplay {
		args = append(args, "--pause")
	}

	return append(args, "--", target)
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket(ctx context.Context) error {
	for i := 0; i < socketWaitRetries; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		case <-time.After(socketWaitDelay):
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPV) set(ctx context.Context, property string, value interface{}) error {
	if m.listener == nil {
		return ErrNotLoaded
	}
	_, err := m.sendCommand(ctx, "set_property", property, value)
	return err
}

// Play resumes playback, restarting from the beginning once the media ended.
func (m *MPV) Play(ctx context.Context) error {
	if m.listener == nil {
		return ErrNotLoaded
	}

	if m.listener.Telemetry().Ended {
		if _, err := m.sendCommand(ctx, "seek", 0, "absolute"); err != nil {
			return err
		}
	}

	if err := m.set(ctx, "pause", false); err != nil {
		return err
	}
	m.listener.patch(func(t *Telemetry) {
		t.Paused = false
		t.Ended = false
	})
	return nil
}

func (m *MPV) Pause(ctx context.Context) error {
	if err := m.set(ctx, "pause", true); err != nil {
		return err
	}
	m.listener.patch(func(t *Telemetry) { t.Paused = true })
	return nil
}

// SetCurrentTime seeks to an absolute position. Negative absolute seeks
// count from the end in mpv, so the position is clamped here.
func (m *MPV) SetCurrentTime(seconds float64) error {
	if m.listener == nil {
		return ErrNotLoaded
	}

	seconds = max(seconds, 0)
	if d, ok := m.listener.Telemetry().Duration.Get(); ok {
		seconds = min(seconds, d)
	}

	if _, err := m.sendCommand(context.Background(), "seek", seconds, "absolute"); err != nil {
		return err
	}
	m.listener.patch(func(t *Telemetry) { t.CurrentTime = seconds })
	return nil
}

// SetVolume sets the volume in [0,1]; a non-zero volume also lifts mpv's own mute.
func (m *MPV) SetVolume(volume float64) error {
	ctx := context.Background()
	if err := m.set(ctx, "volume", volume*100); err != nil {
		return err
	}
	m.listener.patch(func(t *Telemetry) { t.Volume = volume })

	if volume > 0 && m.listener.Telemetry().Muted {
		return m.SetMuted(false)
	}
	return nil
}

func (m *MPV) SetMuted(muted bool) error {
	if err := m.set(context.Background(), "mute", muted); err != nil {
		return err
	}
	m.listener.patch(func(t *Telemetry) { t.Muted = muted })
	return nil
}

func (m *MPV) SetPlaybackRate(rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("invalid playback rate %v", rate)
	}
	if err := m.set(context.Background(), "speed", rate); err != nil {
		return err
	}
	m.listener.patch(func(t *Telemetry) { t.PlaybackRate = rate })
	return nil
}

func (m *MPV) RequestFullscreen(ctx context.Context) error {
	return m.set(ctx, "fullscreen", true)
}

func (m *MPV) ExitFullscreen(ctx context.Context) error {
	return m.set(ctx, "fullscreen", false)
}

// RequestPictureInPicture shrinks the window and keeps it above others.
func (m *MPV) RequestPictureInPicture(ctx context.Context) error {
	if err := m.set(ctx, "window-scale", pipScale); err != nil {
		return err
	}
	return m.set(ctx, "ontop", true)
}

func (m *MPV) ExitPictureInPicture(ctx context.Context) error {
	if err := m.set(ctx, "ontop", false); err != nil {
		return err
	}
	return m.set(ctx, "window-scale", 1)
}

func (m *MPV) Telemetry() Telemetry {
	if m.listener == nil {
		return NewTelemetry()
	}
	return m.listener.Telemetry()
}

func (m *MPV) Subscribe(fn func(Event)) (release func()) {
	if m.listener == nil {
		return func() {}
	}
	return m.listener.Subscribe(fn)
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	if m.socketPath == "" {
		return nil
	}

	if m.listener != nil {
		m.listener.Stop()
	}

	if m.cmd != nil {
		_, _ = m.sendCommand(context.Background(), "quit")

		select {
		case <-m.exited:
		case <-time.After(quitTimeout):
			_ = killProcess(m.cmd)
		}
	}

	_ = os.Remove(m.socketPath)
	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// Version asks the binary for its version line without starting playback.
func Version(ctx context.Context, binary string) (string, error) {
	out, err := exec.CommandContext(ctx, binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("run %s: %w", binary, err)
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}

// sanitizeMediaTarget validates that a target is safe to pass to mpv.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	// targets must never be mistaken for flags
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
