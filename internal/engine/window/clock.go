package window

import "github.com/veandco/go-sdl2/sdl"

// Clock measures frame time with SDL's high-resolution performance counter.
type Clock struct {
	freq uint64
	last uint64
}

// NewClock starts a clock at the current counter value.
func NewClock() *Clock {
	return &Clock{
		freq: sdl.GetPerformanceFrequency(),
		last: sdl.GetPerformanceCounter(),
	}
}

// Tick returns the seconds elapsed since the previous Tick.
func (c *Clock) Tick() float32 {
	now := sdl.GetPerformanceCounter()
	dt := elapsed(c.last, now, c.freq)
	c.last = now
	return dt
}

func elapsed(from, to, freq uint64) float32 {
	if freq == 0 || to < from {
		return 0
	}
	return float32(float64(to-from) / float64(freq))
}

// Peek returns the seconds elapsed since the previous Tick without
// resetting it.
func (c *Clock) Peek() float32 {
	return elapsed(c.last, sdl.GetPerformanceCounter(), c.freq)
}
