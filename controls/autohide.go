package controls

// PointerActivity reveals the controls and the cursor and restarts the hide countdown.
func (e *Engine) PointerActivity() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active() {
		return
	}

	e.snap.Optimistic.ControlsVisible = true
	e.snap.Optimistic.CursorVisible = true
	e.scheduleHide()
	e.signal()
}

// PointerLeave hides the controls, keeping the cursor, unless playback is paused.
func (e *Engine) PointerLeave() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active() || e.paused() {
		return
	}

	e.snap.Optimistic.ControlsVisible = false
	e.signal()
}

func (e *Engine) paused() bool {
	tel := e.transport.Telemetry()
	return tel.Paused || tel.Ended
}

func (e *Engine) scheduleHide() {
	e.hide.Schedule(e.opts.HideDelay, func() {
		if e.paused() {
			return
		}
		e.snap.Optimistic.ControlsVisible = false
		e.snap.Optimistic.CursorVisible = false
	})
}

// onPlay starts the countdown so idle controls fade once playback runs.
func (e *Engine) onPlay() {
	e.scheduleHide()
}

// onPause keeps the controls up for as long as playback stays paused.
func (e *Engine) onPause() {
	e.hide.Cancel()
	e.snap.Optimistic.ControlsVisible = true
	e.snap.Optimistic.CursorVisible = true
}
