package reforge

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestNewOverlayDefaults(t *testing.T) {
	o := NewOverlay()
	if !o.ShowFPS {
		t.Error("ShowFPS should default to true")
	}
	if o.alpha != 0 {
		t.Errorf("alpha = %f, want 0 before any flash", o.alpha)
	}
}

func TestOverlayFlashFadesOut(t *testing.T) {
	o := NewOverlay()
	o.Flash("shaders reloaded")
	if o.alpha != 1 {
		t.Fatalf("alpha = %f, want 1 right after Flash", o.alpha)
	}

	o.Update(flashDuration / 2)
	if o.alpha <= 0 || o.alpha >= 1 {
		t.Errorf("alpha = %f, want strictly between 0 and 1 mid-fade", o.alpha)
	}

	o.Update(flashDuration)
	if o.alpha != 0 {
		t.Errorf("alpha = %f, want 0 once the fade finished", o.alpha)
	}
}

func TestOverlayFlashRestartsFade(t *testing.T) {
	o := NewOverlay()
	o.Flash("first")
	o.Update(flashDuration * 2)
	o.Flash("second")
	if o.alpha != 1 {
		t.Errorf("alpha = %f, want 1 after a second Flash", o.alpha)
	}
}

func TestOverlayTracksFPS(t *testing.T) {
	o := NewOverlay()
	for i := 0; i < 30; i++ {
		o.Update(1.0 / 60)
	}
	if !approxEqual(o.FPS(), 60, 1e-6) {
		t.Errorf("FPS = %f, want 60", o.FPS())
	}
}

func TestOverlayDraw(t *testing.T) {
	o := NewOverlay()
	o.Flash("reloaded")
	screen := ebiten.NewImage(320, 240)
	o.Draw(screen) // must not panic with or without a flash active

	o.ShowFPS = false
	o.Update(flashDuration * 2)
	o.Draw(screen)
}
