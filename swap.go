package reforge

// SwapObserver exposes the two blocking wait points of a logic-unit swap.
// [PluginHost] implements it for real plugin files; tests use in-memory
// fakes.
type SwapObserver interface {
	// AwaitAboutToSwap blocks until a swap of the logic unit is about to
	// begin.
	AwaitAboutToSwap()
	// AwaitSwapComplete blocks until the swap that was announced by
	// AwaitAboutToSwap has finished.
	AwaitSwapComplete()
}

// Versioner is optionally implemented by a SwapObserver that counts
// completed swaps. [MonitorSwaps] uses it for its reload log line.
type Versioner interface {
	Version() int
}

// MonitorSwaps starts a goroutine that drives the reload phase cycle from a
// swap observer: each announced swap sets the phase to [PhaseReloading], and
// its completion to [PhaseReloaded]. The frame loop finishes the cycle by
// resetting to [PhaseStable] after rebuilding passes.
//
// The goroutine blocks indefinitely between swaps and runs for the process
// lifetime; there is no shutdown. Both this monitor and the shader watcher
// may write to the same record; they serialize through its lock.
func MonitorSwaps(obs SwapObserver, state *ReloadState) {
	go func() {
		for {
			obs.AwaitAboutToSwap()
			state.SetPhase(PhaseReloading)

			obs.AwaitSwapComplete()
			state.SetPhase(PhaseReloaded)
			if v, ok := obs.(Versioner); ok {
				logf("logic unit reloaded %d time(s)", v.Version())
			} else {
				logf("logic unit reloaded")
			}
		}
	}()
}
