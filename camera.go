package reforge

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera movement tuning.
const (
	cameraMinDistance  = 0.05
	cameraMaxDistance  = 1e6
	cameraZoomStep     = 0.2 // fraction of distance per wheel line
	cameraZoomDuration = 0.2 // seconds for the zoom tween
)

// CameraLookAt is a simple orbit camera: it looks at Center from a point
// described by a horizontal Angle, a Height factor, and a Distance. The
// trigonometry to turn these into an eye position is left to the shader,
// keeping the Go side free of matrix math.
//
// [Game] drives it from mouse input when the hosted program exposes one via
// [Program.Camera]: right-drag orbits, middle-drag pans, and the wheel zooms
// (smoothed with a tween).
type CameraLookAt struct {
	// Center is the point the camera looks at.
	Center Vec3
	// Angle is the orbit angle around Center on the horizontal plane,
	// in radians.
	Angle float64
	// Height is the elevation factor: 0 is level with Center, positive is
	// above, negative below. Clamped short of the poles so the view vector
	// never degenerates.
	Height float64
	// Distance is the distance from Center.
	Distance float64

	zoomTween  *gween.Tween
	zoomTarget float64
}

// NewCameraLookAt returns a camera looking at the origin from the front top
// left.
func NewCameraLookAt() *CameraLookAt {
	return &CameraLookAt{
		Angle:    2 * math.Pi / 3,
		Height:   0.3,
		Distance: math.Sqrt(72),
	}
}

// Update applies one tick of mouse control: orbit with the right button, pan
// with the middle button, zoom with the wheel. width and height are the
// current output size in pixels; dt is the tick duration in seconds, used to
// advance the zoom tween.
func (c *CameraLookAt) Update(m *MouseState, width, height, dt float64) {
	if m.DeltaX != 0 || m.DeltaY != 0 {
		if m.Right {
			c.Angle += m.DeltaX / width * 2 * math.Pi
			c.Height += m.DeltaY / height * math.Pi
			c.Height = clamp(c.Height, -math.Pi/2+0.001, math.Pi/2-0.001)
		}

		if m.Middle {
			// Translate on the plane perpendicular to the view direction,
			// scaled by distance so panning feels uniform at any zoom.
			dirX, dirZ := math.Cos(c.Angle), math.Sin(c.Angle)
			weight := m.DeltaX / width * c.Distance
			c.Center.X += -dirZ * weight
			c.Center.Z += dirX * weight
			c.Center.Y += m.DeltaY / height * c.Distance
		}
	}

	if m.ScrollDelta != 0 {
		// Each wheel line moves a fixed fraction of the (target) distance;
		// the tween smooths the step over a few frames.
		base := c.Distance
		if c.zoomTween != nil {
			base = c.zoomTarget
		}
		c.zoomTarget = clamp(base-m.ScrollDelta*base*cameraZoomStep,
			cameraMinDistance, cameraMaxDistance)
		c.zoomTween = gween.New(float32(c.Distance), float32(c.zoomTarget),
			cameraZoomDuration, ease.OutQuad)
	}

	if c.zoomTween != nil {
		v, done := c.zoomTween.Update(float32(dt))
		c.Distance = float64(v)
		if done {
			c.Distance = c.zoomTarget
			c.zoomTween = nil
		}
	}
}

// ApplyUniforms writes the camera parameters into a pass's uniform map under
// the names CameraCenter, CameraAngle, CameraHeight, and CameraDistance.
func (c *CameraLookAt) ApplyUniforms(uniforms map[string]any) {
	uniforms["CameraCenter"] = []float32{
		float32(c.Center.X), float32(c.Center.Y), float32(c.Center.Z),
	}
	uniforms["CameraAngle"] = float32(c.Angle)
	uniforms["CameraHeight"] = float32(c.Height)
	uniforms["CameraDistance"] = float32(c.Distance)
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
