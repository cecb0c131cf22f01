package reforge

import (
	"encoding/json"
	"fmt"
)

// reloadStep represents a single action in a reload script.
type reloadStep struct {
	Action string   `json:"action"`
	Paths  []string `json:"paths,omitempty"`
	Frames int      `json:"frames,omitempty"`
}

// reloadScriptFile is the top-level JSON structure for a reload script.
type reloadScriptFile struct {
	Steps []reloadStep `json:"steps"`
}

// ReloadScript sequences synthetic reload events across frames: changed
// shader paths and logic-swap phase transitions, injected into the shared
// record exactly as the real watcher and monitor would write them. Attach
// to a [Game] via [Game.SetReloadScript] to soak-test a program's rebuild
// path without touching the filesystem.
//
// Script format:
//
//	{"steps": [
//		{"action": "wait", "frames": 10},
//		{"action": "paths", "paths": ["draw.kage"]},
//		{"action": "reloading"},
//		{"action": "reloaded"}
//	]}
type ReloadScript struct {
	steps     []reloadStep
	cursor    int
	waitCount int
	done      bool
}

// LoadReloadScript parses a JSON reload script.
func LoadReloadScript(jsonData []byte) (*ReloadScript, error) {
	var script reloadScriptFile
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse reload script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse reload script: no steps")
	}
	for i, step := range script.Steps {
		switch step.Action {
		case "wait", "paths", "reloading", "reloaded":
		default:
			return nil, fmt.Errorf("parse reload script: step %d: unknown action %q", i, step.Action)
		}
	}
	return &ReloadScript{steps: script.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *ReloadScript) Done() bool {
	return r.done
}

// step executes script actions for one frame. Non-wait steps run
// back-to-back within the frame until a wait (or the end) is reached, so a
// reloading/reloaded pair can land in a single tick the way a fast swap
// does.
func (r *ReloadScript) step(state *ReloadState) {
	for !r.done {
		if r.cursor >= len(r.steps) {
			r.done = true
			return
		}
		step := r.steps[r.cursor]
		switch step.Action {
		case "wait":
			if step.Frames > 0 {
				r.waitCount++
				if r.waitCount < step.Frames {
					return
				}
				r.waitCount = 0
				r.cursor++
				return
			}
			// A zero-frame wait waits for nothing; the next step runs in
			// the same frame.
		case "paths":
			state.AppendPaths(step.Paths...)
		case "reloading":
			state.SetPhase(PhaseReloading)
		case "reloaded":
			state.SetPhase(PhaseReloaded)
		}
		r.cursor++
	}
}
