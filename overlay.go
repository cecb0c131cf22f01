package reforge

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// flashDuration is how long a reload notice stays on screen, fade included.
const flashDuration = 1.5

// Overlay is the harness's status display: a smoothed FPS readout and a
// short-lived flash message whenever shaders or logic are reloaded. Drawn
// on top of the program's frame and UI.
type Overlay struct {
	// ShowFPS toggles the frame-rate readout in the top-left corner.
	ShowFPS bool

	frameRate *FrameRate

	message string
	alpha   float64
	fade    *gween.Tween

	fpsImg *ebiten.Image
	msgImg *ebiten.Image
	op     ebiten.DrawImageOptions
}

// NewOverlay creates an overlay with the FPS readout enabled.
func NewOverlay() *Overlay {
	return &Overlay{
		ShowFPS:   true,
		frameRate: DefaultFrameRate(),
	}
}

// Flash shows a message that fades out over about a second and a half.
func (o *Overlay) Flash(message string) {
	o.message = message
	o.alpha = 1
	o.fade = gween.New(1, 0, flashDuration, ease.OutQuad)
}

// Update records the tick duration for the FPS readout and advances the
// flash fade.
func (o *Overlay) Update(dt float64) {
	o.frameRate.Update(dt)
	if o.fade != nil {
		v, done := o.fade.Update(float32(dt))
		o.alpha = float64(v)
		if done {
			o.alpha = 0
			o.fade = nil
		}
	}
}

// FPS returns the smoothed frames-per-second estimate.
func (o *Overlay) FPS() float64 {
	return o.frameRate.Get()
}

// Draw renders the overlay onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	y := 4.0
	if o.ShowFPS {
		if o.fpsImg == nil {
			o.fpsImg = ebiten.NewImage(100, 16)
		}
		o.fpsImg.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.fpsImg, fmt.Sprintf("FPS: %.1f", o.frameRate.Get()))

		o.op.GeoM.Reset()
		o.op.ColorScale.Reset()
		o.op.GeoM.Translate(4, y)
		screen.DrawImage(o.fpsImg, &o.op)
		y += 20
	}

	if o.alpha > 0 && o.message != "" {
		if o.msgImg == nil {
			o.msgImg = ebiten.NewImage(280, 16)
		}
		o.msgImg.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.msgImg, o.message)

		o.op.GeoM.Reset()
		o.op.ColorScale.Reset()
		o.op.ColorScale.ScaleAlpha(float32(o.alpha))
		o.op.GeoM.Translate(4, y)
		screen.DrawImage(o.msgImg, &o.op)
	}
}
