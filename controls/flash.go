package controls

// flashDirection restarts the rewind/skip cue. Views animate it for
// FlashAnimation after every Seq change.
func (e *Engine) flashDirection(kind FlashKind) {
	f := &e.snap.Optimistic.KeyActionFlash
	f.Kind = kind
	f.Seq++
}

// flashVolume shows the volume badge and restarts its clear countdown.
func (e *Engine) flashVolume() {
	f := &e.snap.Optimistic.KeyActionFlash
	f.Active = true
	f.Kind = FlashVolume
	f.Seq++

	e.flash.Schedule(e.opts.FlashClear, func() {
		e.snap.Optimistic.KeyActionFlash.Active = false
	})
}
