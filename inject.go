package thicket

// InjectKeyDown queues a key press. Injected events are consumed one per
// Update, ahead of the attached Source.
func (w *Window) InjectKeyDown(k Key) {
	w.injectQueue = append(w.injectQueue, Event{Kind: EventKeyDown, Key: k})
}

// InjectKeyUp queues a key release.
func (w *Window) InjectKeyUp(k Key) {
	w.injectQueue = append(w.injectQueue, Event{Kind: EventKeyUp, Key: k})
}

// InjectKey queues a full chord: each modifier down, k down, k up, then each
// modifier up in reverse order. Consumes 2+2*len(mods) frames.
func (w *Window) InjectKey(k Key, mods ...Key) {
	for _, m := range mods {
		w.InjectKeyDown(m)
	}
	w.InjectKeyDown(k)
	w.InjectKeyUp(k)
	for i := len(mods) - 1; i >= 0; i-- {
		w.InjectKeyUp(mods[i])
	}
}

// InjectPress queues a primary button press at window coordinates (x, y).
func (w *Window) InjectPress(x, y float64) {
	w.injectQueue = append(w.injectQueue, Event{Kind: EventMouseDown, Button: MouseButtonLeft, X: x, Y: y})
}

// InjectMove queues pointer motion to (x, y).
func (w *Window) InjectMove(x, y float64) {
	w.injectQueue = append(w.injectQueue, Event{Kind: EventMouseMove, X: x, Y: y})
}

// InjectRelease queues a primary button release at (x, y).
func (w *Window) InjectRelease(x, y float64) {
	w.injectQueue = append(w.injectQueue, Event{Kind: EventMouseUp, Button: MouseButtonLeft, X: x, Y: y})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same coordinates. Consumes two frames.
func (w *Window) InjectClick(x, y float64) {
	w.InjectPress(x, y)
	w.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (w *Window) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	w.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		w.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	w.InjectRelease(toX, toY)
}

// InjectWheel queues one wheel notch, forward when forward is true.
func (w *Window) InjectWheel(forward bool) {
	kind := EventWheelBack
	if forward {
		kind = EventWheelForward
	}
	w.injectQueue = append(w.injectQueue, Event{Kind: kind, X: w.pointer.pos.X, Y: w.pointer.pos.Y})
}

// Pending returns the number of injected events not yet consumed.
func (w *Window) Pending() int { return len(w.injectQueue) }

// processInjectedInput pops one event from the inject queue and handles it.
// Returns true if an event was consumed (real input should be skipped).
func (w *Window) processInjectedInput() bool {
	if len(w.injectQueue) == 0 {
		return false
	}
	ev := w.injectQueue[0]
	copy(w.injectQueue, w.injectQueue[1:])
	w.injectQueue = w.injectQueue[:len(w.injectQueue)-1]
	w.HandleEvent(ev)
	return true
}
