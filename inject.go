package bramble

// injectedFrame is the set of logical keys held for one frame.
type injectedFrame [KeyRight + 1]bool

// InjectKeys queues frames frames during which exactly keys are held. While
// injected frames are pending they replace the engine's real input; each
// Step consumes one. A frames value below 1 is treated as 1.
func (e *Engine) InjectKeys(frames int, keys ...Key) {
	var f injectedFrame
	for _, k := range keys {
		if int(k) < len(f) {
			f[k] = true
		}
	}
	for range max(frames, 1) {
		e.injectQueue = append(e.injectQueue, f)
	}
}

// InjectRelease queues frames frames with no keys held.
func (e *Engine) InjectRelease(frames int) {
	e.InjectKeys(frames)
}

// PendingInjections returns the number of injected frames not yet consumed.
func (e *Engine) PendingInjections() int {
	return len(e.injectQueue)
}

// nextInput pops one injected frame, or returns the real input when the
// queue is empty.
func (e *Engine) nextInput() Input {
	if len(e.injectQueue) == 0 {
		return e.input
	}
	f := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]
	return InputFunc(func(k Key) bool {
		return int(k) < len(f) && f[k]
	})
}
