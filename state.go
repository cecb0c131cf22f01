package reforge

import "sync"

// ReloadState is the shared record every reload producer and the frame loop
// coordinate through: the list of shader paths that changed since the last
// drain, and the current reload [Phase].
//
// One instance is created at startup and handed by reference to the shader
// watcher, the swap monitor, and the [Game]. All access is serialized by an
// internal mutex, held only for the read or mutation itself, never across a
// GPU call, so producers are never blocked by rendering.
//
// The pending list is cleared only by [ReloadState.Drain] (the frame loop's
// consumer side); producers only append.
type ReloadState struct {
	mu      sync.Mutex
	pending []string
	phase   Phase
}

// NewReloadState returns an empty record in [PhaseStable].
func NewReloadState() *ReloadState {
	return &ReloadState{}
}

// AppendPaths records changed shader paths for the next drain. Duplicates
// are kept; insertion order is preserved for logging.
func (s *ReloadState) AppendPaths(paths ...string) {
	s.mu.Lock()
	s.pending = append(s.pending, paths...)
	s.mu.Unlock()
}

// Drain removes and returns all pending paths along with a snapshot of the
// current phase. Every path appended before Drain acquires the lock appears
// in the returned slice; the phase itself is left untouched.
func (s *ReloadState) Drain() (paths []string, phase Phase) {
	s.mu.Lock()
	paths = s.pending
	s.pending = nil
	phase = s.phase
	s.mu.Unlock()
	return paths, phase
}

// Phase returns the current reload phase.
func (s *ReloadState) Phase() Phase {
	s.mu.Lock()
	p := s.phase
	s.mu.Unlock()
	return p
}

// SetPhase sets the reload phase. Callers are responsible for following the
// Stable → Reloading → Reloaded → Stable cycle; the record only serializes
// access.
func (s *ReloadState) SetPhase(p Phase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
}

// CompareAndSetPhase sets the phase to next only while it still equals
// expected, reporting whether it did. The orchestrator finishes the
// Reloaded → Stable step with it so a swap that began in the meantime is
// not stomped back to stable.
func (s *ReloadState) CompareAndSetPhase(expected, next Phase) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != expected {
		return false
	}
	s.phase = next
	return true
}

// PendingCount returns the number of paths waiting for the next drain.
func (s *ReloadState) PendingCount() int {
	s.mu.Lock()
	n := len(s.pending)
	s.mu.Unlock()
	return n
}
