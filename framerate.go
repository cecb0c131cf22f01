package reforge

// FrameRate estimates the frame rate over a sliding window of frame
// durations, giving a smoother readout than the instantaneous rate.
type FrameRate struct {
	window []float64
	size   int
}

// NewFrameRate creates an estimator averaging over the given number of
// frames. Sizes below 1 are treated as 1.
func NewFrameRate(size int) *FrameRate {
	if size < 1 {
		size = 1
	}
	return &FrameRate{size: size, window: make([]float64, 0, size)}
}

// DefaultFrameRate returns an estimator with a 20-frame window.
func DefaultFrameRate() *FrameRate {
	return NewFrameRate(20)
}

// Update records the latest frame duration in seconds, dropping the oldest
// once the window is full.
func (f *FrameRate) Update(frameDuration float64) {
	if len(f.window) == f.size {
		copy(f.window, f.window[1:])
		f.window = f.window[:f.size-1]
	}
	f.window = append(f.window, frameDuration)
}

// Get returns the estimated frames per second, or 0 before any frame has
// been recorded.
func (f *FrameRate) Get() float64 {
	if len(f.window) == 0 {
		return 0
	}
	var sum float64
	for _, d := range f.window {
		sum += d
	}
	if sum <= 0 {
		return 0
	}
	return float64(len(f.window)) / sum
}
