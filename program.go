package reforge

import "github.com/hajimehoshi/ebiten/v2"

// Program is the capability contract between the reload harness and the
// render logic it hosts. The harness owns the frame loop and calls every
// method from the render goroutine only.
//
// A Program is either handed directly to [Run] or produced by a factory
// exported from a logic plugin (see [PluginHost]), in which case the whole
// instance is replaced when the plugin is swapped.
type Program interface {
	// Init prepares the program, building its initial passes. Called once
	// before the first frame and again on a freshly swapped-in instance.
	Init(ctx *Context) error

	// Name identifies the program, used for the window title and logs.
	Name() string

	// RebuildPasses recreates the program's shader passes from current
	// sources. Called after shader files change and after a logic swap.
	// On error the program must leave its previous passes intact.
	RebuildPasses(ctx *Context) error

	// Resize is called when the output size changed, before the next Update.
	Resize(ctx *Context)

	// Update advances program state by ctx.DeltaTime. Called once per tick
	// while the reload phase is stable.
	Update(ctx *Context)

	// Render draws the current frame onto screen.
	Render(ctx *Context, screen *ebiten.Image)

	// DrawUI draws program-specific overlay content on top of the frame.
	DrawUI(ctx *Context, screen *ebiten.Image)

	// ProcessInput gives the program first claim on input for this tick.
	// Returning true suppresses the harness's default camera handling.
	ProcessInput(ctx *Context) bool

	// Camera returns the program's orbit camera for default mouse control,
	// or nil if the program has none.
	Camera() *CameraLookAt
}
