package controls

// stall shows the loader once the stall outlasts the grace period. Further
// stall signals during the grace period do not restart it.
func (e *Engine) stall() {
	if e.snap.Optimistic.LoaderVisible || e.loader.Pending() {
		return
	}

	e.loader.Schedule(e.opts.LoaderGrace, func() {
		e.snap.Optimistic.LoaderVisible = true
	})
}

// recoverLoader cancels a pending reveal and hides the loader.
func (e *Engine) recoverLoader() {
	e.loader.Cancel()
	e.snap.Optimistic.LoaderVisible = false
}
