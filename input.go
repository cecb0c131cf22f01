package reforge

import "github.com/hajimehoshi/ebiten/v2"

// MouseState is the polled mouse snapshot handed to programs through
// [Context]. [Game] refreshes it once at the start of every tick; programs
// embedding their own loop call [MouseState.Update] themselves.
type MouseState struct {
	// X and Y are the cursor position in logical pixels.
	X, Y float64
	// DeltaX and DeltaY are the cursor movement since the previous tick.
	DeltaX, DeltaY float64
	// Left, Right, and Middle report held buttons.
	Left, Right, Middle bool
	// ScrollDelta is the vertical wheel movement this tick, in lines.
	ScrollDelta float64

	polled bool
}

// Update polls Ebitengine for the current cursor position, button states,
// and wheel movement, computing deltas against the previous poll. The first
// poll reports zero deltas.
func (m *MouseState) Update() {
	x, y := ebiten.CursorPosition()
	fx, fy := float64(x), float64(y)
	if m.polled {
		m.DeltaX = fx - m.X
		m.DeltaY = fy - m.Y
	}
	m.X, m.Y = fx, fy
	m.polled = true

	m.Left = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	m.Right = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	m.Middle = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	_, wheelY := ebiten.Wheel()
	m.ScrollDelta = wheelY
}

// Pressed reports whether the given mouse button is held.
func (m *MouseState) Pressed(button ebiten.MouseButton) bool {
	switch button {
	case ebiten.MouseButtonLeft:
		return m.Left
	case ebiten.MouseButtonRight:
		return m.Right
	case ebiten.MouseButtonMiddle:
		return m.Middle
	default:
		return false
	}
}
