package reforge

import (
	"fmt"
	"os"
)

// Phase is the reload status of the shared [ReloadState] record.
//
// The cycle is Stable → Reloading → Reloaded → Stable. Producers
// ([MonitorSwaps]) advance Stable to Reloading to Reloaded; the orchestrator
// resets Reloaded to Stable once dependent passes have been rebuilt. The
// record itself does not validate transitions.
type Phase uint8

const (
	// PhaseStable means nothing is in flight and it is safe to render.
	PhaseStable Phase = iota
	// PhaseReloading means a logic-unit swap is in progress; the frame loop
	// must not call into the old unit.
	PhaseReloading
	// PhaseReloaded means a swap just completed; passes must be rebuilt
	// before the next render.
	PhaseReloaded
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStable:
		return "stable"
	case PhaseReloading:
		return "reloading"
	case PhaseReloaded:
		return "reloaded"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Vec3 is a 3D vector used for camera centers and shader uniforms.
type Vec3 struct {
	X, Y, Z float64
}

// Context carries the per-frame environment handed to every [Program] call:
// the shader library to resolve sources from, the current output size, the
// time since the previous tick, and the polled mouse state.
//
// A Context is owned by the frame loop and must not be retained across
// frames by a Program.
type Context struct {
	// Shaders resolves and flattens shader modules. Never nil inside [Run].
	Shaders *ShaderLibrary
	// Width and Height are the current logical output size in pixels.
	Width, Height int
	// DeltaTime is the duration of the previous tick in seconds.
	DeltaTime float64
	// Mouse is the polled mouse state for this tick.
	Mouse *MouseState
}

// logf prints harness messages to stderr. Reload activity is developer
// feedback, not part of the rendered output.
func logf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[reforge] "+format+"\n", args...)
}
