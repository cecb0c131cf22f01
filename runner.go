package reforge

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures [Run].
type RunConfig struct {
	// Title is the window title. Defaults to the program's Name.
	Title string
	// Width and Height are the initial window size. Defaults to 800x600.
	Width, Height int

	// ShaderRoot is the directory watched for live shader edits and, when
	// Shaders is nil, the root the shader library reads from. Empty
	// disables watching.
	ShaderRoot string
	// Shaders overrides the shader library's filesystem, e.g. an embed.FS
	// for builds that ship without loose files.
	Shaders fs.FS

	// PluginPath points at a logic plugin built with -buildmode=plugin.
	// Empty disables logic swapping.
	PluginPath string
}

// Game hosts a [Program] inside an [ebiten.Game], running the reload
// orchestration once per tick: drain the shared record, rebuild passes for
// changed shaders, adopt a freshly swapped logic unit, and render only while
// the phase is stable.
//
// [Run] constructs and wires a Game; construct one directly only to embed
// the harness in your own loop.
type Game struct {
	program Program
	state   *ReloadState
	ctx     Context
	mouse   MouseState
	overlay *Overlay
	host    *PluginHost
	script  *ReloadScript

	lastTick time.Time
}

// NewGame creates a game hosting program, coordinating through state and
// resolving shaders from lib. The caller runs program.Init before the first
// frame ([Run] does).
func NewGame(program Program, state *ReloadState, lib *ShaderLibrary) *Game {
	g := &Game{
		program: program,
		state:   state,
		overlay: NewOverlay(),
	}
	g.ctx = Context{Shaders: lib, Mouse: &g.mouse}
	return g
}

// SetPluginHost attaches the plugin host whose factory supplies replacement
// program instances after a logic swap.
func (g *Game) SetPluginHost(h *PluginHost) {
	g.host = h
}

// SetReloadScript attaches a scripted reload driver, stepped once per tick.
func (g *Game) SetReloadScript(r *ReloadScript) {
	g.script = r
}

// Overlay returns the status overlay for configuration (e.g. hiding FPS).
func (g *Game) Overlay() *Overlay {
	return g.overlay
}

// Program returns the currently hosted program. After a logic swap this is
// the freshly created instance.
func (g *Game) Program() Program {
	return g.program
}

// Context returns the frame context handed to the program.
func (g *Game) Context() *Context {
	return &g.ctx
}

// Update implements [ebiten.Game]. It runs the reload tick, then advances
// the program when the phase is stable.
func (g *Game) Update() error {
	now := time.Now()
	dt := 1.0 / float64(ebiten.TPS())
	if !g.lastTick.IsZero() {
		dt = now.Sub(g.lastTick).Seconds()
	}
	g.lastTick = now
	g.ctx.DeltaTime = dt

	g.mouse.Update()

	if g.script != nil {
		g.script.step(g.state)
	}

	g.tick()

	if g.state.Phase() == PhaseStable {
		if !g.program.ProcessInput(&g.ctx) {
			if cam := g.program.Camera(); cam != nil {
				cam.Update(&g.mouse, float64(g.ctx.Width), float64(g.ctx.Height), dt)
			}
		}
		g.program.Update(&g.ctx)
	}

	g.overlay.Update(dt)
	return nil
}

// tick is the once-per-frame reload orchestration.
//
// It drains the shared record exactly once. Changed shader paths trigger one
// RebuildPasses attempt regardless of outcome: on failure the error is
// logged, the pending list stays cleared, and the previous passes remain
// bound until a later save succeeds. A completed logic swap (phase Reloaded)
// replaces the program wholesale from the plugin host, rebuilds passes
// (a swap can change pass layouts even without a shader edit) and resets
// the phase to Stable, unless yet another swap began in the meantime.
func (g *Game) tick() {
	paths, phase := g.state.Drain()

	if len(paths) > 0 {
		logf("rebuilding passes, changed: %v", paths)
		if err := g.program.RebuildPasses(&g.ctx); err != nil {
			logf("%v", err)
		} else {
			g.overlay.Flash("shaders reloaded")
		}
	}

	if phase == PhaseReloaded {
		if g.host != nil {
			g.adoptSwappedProgram()
		}
		if err := g.program.RebuildPasses(&g.ctx); err != nil {
			logf("%v", err)
		}
		// Conditional: a second swap may have begun during the rebuild, and
		// its Reloading phase must survive this tick.
		g.state.CompareAndSetPhase(PhaseReloaded, PhaseStable)
		g.overlay.Flash("logic reloaded")
	}
}

// adoptSwappedProgram replaces the hosted program with a fresh instance from
// the plugin host. If the new instance fails to initialize, the previous one
// keeps running.
func (g *Game) adoptSwappedProgram() {
	next := g.host.NewProgram()
	if next == nil {
		return
	}
	if err := next.Init(&g.ctx); err != nil {
		logf("swapped-in program failed to init, keeping previous: %v", err)
		return
	}
	g.program = next
	ebiten.SetWindowTitle(next.Name())
}

// Draw implements [ebiten.Game]. The frame is skipped entirely while a
// logic swap is in flight so the old unit is never entered mid-replacement;
// the last presented frame stays on screen.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.state.Phase() != PhaseStable {
		return
	}
	g.program.Render(&g.ctx, screen)
	g.program.DrawUI(&g.ctx, screen)
	g.overlay.Draw(screen)
}

// Layout implements [ebiten.Game], adopting the window size as the logical
// size and notifying the program when it changes. A zero size (minimized
// window on some platforms) is ignored.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != g.ctx.Width || outsideHeight != g.ctx.Height) {
		g.ctx.Width, g.ctx.Height = outsideWidth, outsideHeight
		g.program.Resize(&g.ctx)
	}
	return g.ctx.Width, g.ctx.Height
}

// Run opens a window and runs program under the reload harness until the
// window closes.
//
// With a non-empty ShaderRoot, edits under it rebuild the program's passes
// live; a watch failure is logged and the program runs without live shader
// reload. With a non-empty PluginPath, the plugin supplies the program
// (pass nil for program) and rebuilding the plugin swaps the logic live.
func Run(program Program, cfg RunConfig) error {
	state := NewReloadState()

	var host *PluginHost
	if cfg.PluginPath != "" {
		h, err := OpenPluginHost(cfg.PluginPath)
		if err != nil {
			return err
		}
		host = h
		MonitorSwaps(host, state)
		if program == nil {
			program = host.NewProgram()
		}
	}
	if program == nil {
		return fmt.Errorf("reforge: no program: pass one to Run or set PluginPath")
	}

	fsys := cfg.Shaders
	if fsys == nil {
		root := cfg.ShaderRoot
		if root == "" {
			root = "."
		}
		fsys = os.DirFS(root)
	}
	lib := NewShaderLibrary(fsys)

	if cfg.ShaderRoot != "" {
		if _, err := WatchShaders(cfg.ShaderRoot, state); err != nil {
			logf("shader watch disabled: %v", err)
		} else {
			logf("watching %s", cfg.ShaderRoot)
		}
	}

	g := NewGame(program, state, lib)
	g.SetPluginHost(host)

	width, height := cfg.Width, cfg.Height
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 600
	}
	g.ctx.Width, g.ctx.Height = width, height

	if err := program.Init(&g.ctx); err != nil {
		return fmt.Errorf("reforge: init program: %w", err)
	}

	title := cfg.Title
	if title == "" {
		title = program.Name()
	}
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(g)
}
