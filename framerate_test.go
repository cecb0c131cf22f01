package reforge

import "testing"

func TestFrameRateEmpty(t *testing.T) {
	f := DefaultFrameRate()
	if f.Get() != 0 {
		t.Errorf("Get = %f, want 0 before any frame", f.Get())
	}
}

func TestFrameRateSteady(t *testing.T) {
	f := NewFrameRate(10)
	for i := 0; i < 10; i++ {
		f.Update(1.0 / 60)
	}
	if !approxEqual(f.Get(), 60, 1e-6) {
		t.Errorf("Get = %f, want 60", f.Get())
	}
}

func TestFrameRatePartialWindow(t *testing.T) {
	f := NewFrameRate(20)
	f.Update(1.0 / 30)
	f.Update(1.0 / 30)
	if !approxEqual(f.Get(), 30, 1e-6) {
		t.Errorf("Get = %f, want 30 from a partially filled window", f.Get())
	}
}

func TestFrameRateSlidesWindow(t *testing.T) {
	f := NewFrameRate(4)
	for i := 0; i < 4; i++ {
		f.Update(1.0 / 30)
	}
	// Push the slow frames out with fast ones.
	for i := 0; i < 4; i++ {
		f.Update(1.0 / 120)
	}
	if !approxEqual(f.Get(), 120, 1e-6) {
		t.Errorf("Get = %f, want 120 after the window slid", f.Get())
	}
}

func TestFrameRateTinySize(t *testing.T) {
	f := NewFrameRate(0)
	f.Update(1.0 / 60)
	f.Update(1.0 / 90)
	if !approxEqual(f.Get(), 90, 1e-6) {
		t.Errorf("Get = %f, want 90 (window of one keeps only the last frame)", f.Get())
	}
}

func TestFrameRateZeroDuration(t *testing.T) {
	f := NewFrameRate(3)
	f.Update(0)
	if f.Get() != 0 {
		t.Errorf("Get = %f, want 0 for a zero-length window sum", f.Get())
	}
}
