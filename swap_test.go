package reforge

import (
	"testing"
	"time"
)

// fakeObserver drives MonitorSwaps from a test: each send on about/complete
// releases the corresponding wait point.
type fakeObserver struct {
	about    chan struct{}
	complete chan struct{}
	version  int
}

func newFakeObserver() *fakeObserver {
	return &fakeObserver{
		about:    make(chan struct{}),
		complete: make(chan struct{}),
	}
}

func (f *fakeObserver) AwaitAboutToSwap()  { <-f.about }
func (f *fakeObserver) AwaitSwapComplete() { <-f.complete }
func (f *fakeObserver) Version() int       { return f.version }

// waitForPhase polls until the state reaches the wanted phase, failing the
// test after a generous deadline.
func waitForPhase(t *testing.T, s *ReloadState, want Phase) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if s.Phase() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("phase = %v, want %v after deadline", s.Phase(), want)
}

func TestMonitorSwapsDrivesPhaseCycle(t *testing.T) {
	obs := newFakeObserver()
	state := NewReloadState()
	MonitorSwaps(obs, state)

	if state.Phase() != PhaseStable {
		t.Fatalf("initial phase = %v, want PhaseStable", state.Phase())
	}

	obs.about <- struct{}{}
	waitForPhase(t, state, PhaseReloading)

	obs.version = 1
	obs.complete <- struct{}{}
	waitForPhase(t, state, PhaseReloaded)
}

func TestMonitorSwapsRepeatedCycles(t *testing.T) {
	obs := newFakeObserver()
	state := NewReloadState()
	MonitorSwaps(obs, state)

	for i := 1; i <= 3; i++ {
		obs.about <- struct{}{}
		waitForPhase(t, state, PhaseReloading)

		obs.version = i
		obs.complete <- struct{}{}
		waitForPhase(t, state, PhaseReloaded)

		// The consumer side finishes the cycle.
		state.SetPhase(PhaseStable)
	}
}
