package reforge

import (
	"fmt"
	"sync"
	"testing"
)

func TestNewReloadStateDefaults(t *testing.T) {
	s := NewReloadState()
	if s.Phase() != PhaseStable {
		t.Errorf("Phase = %v, want PhaseStable", s.Phase())
	}
	if s.PendingCount() != 0 {
		t.Errorf("PendingCount = %d, want 0", s.PendingCount())
	}
}

func TestAppendAndDrain(t *testing.T) {
	s := NewReloadState()
	s.AppendPaths("x.kage", "y.kage")
	s.AppendPaths("x.kage") // duplicates are kept

	paths, phase := s.Drain()
	if len(paths) != 3 {
		t.Fatalf("drained %d paths, want 3", len(paths))
	}
	if paths[0] != "x.kage" || paths[1] != "y.kage" || paths[2] != "x.kage" {
		t.Errorf("paths = %v, want insertion order", paths)
	}
	if phase != PhaseStable {
		t.Errorf("phase = %v, want PhaseStable", phase)
	}
	if s.PendingCount() != 0 {
		t.Errorf("PendingCount after drain = %d, want 0", s.PendingCount())
	}
}

func TestDrainLeavesPhaseUntouched(t *testing.T) {
	s := NewReloadState()
	s.SetPhase(PhaseReloaded)
	_, phase := s.Drain()
	if phase != PhaseReloaded {
		t.Errorf("drained phase = %v, want PhaseReloaded", phase)
	}
	if s.Phase() != PhaseReloaded {
		t.Errorf("Phase after drain = %v, want PhaseReloaded", s.Phase())
	}
}

func TestPhaseCycle(t *testing.T) {
	s := NewReloadState()
	for _, p := range []Phase{PhaseReloading, PhaseReloaded, PhaseStable} {
		s.SetPhase(p)
		if s.Phase() != p {
			t.Errorf("Phase = %v, want %v", s.Phase(), p)
		}
	}
}

func TestCompareAndSetPhase(t *testing.T) {
	s := NewReloadState()
	s.SetPhase(PhaseReloaded)

	if !s.CompareAndSetPhase(PhaseReloaded, PhaseStable) {
		t.Error("CompareAndSetPhase should succeed when the phase matches")
	}
	if s.Phase() != PhaseStable {
		t.Errorf("Phase = %v, want PhaseStable", s.Phase())
	}

	s.SetPhase(PhaseReloading)
	if s.CompareAndSetPhase(PhaseReloaded, PhaseStable) {
		t.Error("CompareAndSetPhase should fail when the phase moved on")
	}
	if s.Phase() != PhaseReloading {
		t.Errorf("Phase = %v, want PhaseReloading untouched", s.Phase())
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseStable.String() != "stable" {
		t.Errorf("PhaseStable.String() = %q", PhaseStable.String())
	}
	if PhaseReloading.String() != "reloading" {
		t.Errorf("PhaseReloading.String() = %q", PhaseReloading.String())
	}
	if PhaseReloaded.String() != "reloaded" {
		t.Errorf("PhaseReloaded.String() = %q", PhaseReloaded.String())
	}
	if Phase(9).String() != "phase(9)" {
		t.Errorf("Phase(9).String() = %q", Phase(9).String())
	}
}

// Concurrent producers must never lose an append: everything appended before
// a drain's lock acquisition shows up in some drain.
func TestConcurrentAppendsNeverLost(t *testing.T) {
	s := NewReloadState()
	const producers = 4
	const perProducer = 500

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				s.AppendPaths(fmt.Sprintf("p%d-%d.kage", p, i))
			}
		}(p)
	}

	collected := make(map[string]bool)
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	drain := func() {
		paths, _ := s.Drain()
		for _, path := range paths {
			if collected[path] {
				t.Errorf("path %q drained twice", path)
			}
			collected[path] = true
		}
	}

	for {
		select {
		case <-done:
			drain() // final drain picks up stragglers
			if len(collected) != producers*perProducer {
				t.Fatalf("collected %d paths, want %d", len(collected), producers*perProducer)
			}
			return
		default:
			drain()
		}
	}
}
