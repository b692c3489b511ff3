package system

import "time"

// Clock provides monotonic time readings.
type Clock interface {
	Now() time.Time
}

// Sleeper blocks for a duration.
type Sleeper func(time.Duration)

const lateFactor = 1.5

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Pacer keeps a loop at a target frame time. Begin marks the start of a
// frame and returns the measured delta since the previous one; End sleeps
// away whatever is left of the frame. A frame that already took longer
// than the target is not slept for and is counted as an overrun.
type Pacer struct {
	target   time.Duration
	maxDelta float64
	clock    Clock
	sleep    Sleeper

	started    bool
	frameStart time.Time
	Overruns   int
	Frames     int
}

// NewPacer targets fps frames per second. Deltas are clamped to maxDelta
// seconds when it is positive.
func NewPacer(fps int, maxDelta float64) *Pacer {
	if fps <= 0 {
		fps = 60
	}
	return &Pacer{
		target:   time.Second / time.Duration(fps),
		maxDelta: maxDelta,
		clock:    realClock{},
		sleep:    time.Sleep,
	}
}

// WithClock swaps the time source, for tests.
func (p *Pacer) WithClock(c Clock, s Sleeper) *Pacer {
	p.clock = c
	p.sleep = s
	return p
}

// Target is the frame time in seconds.
func (p *Pacer) Target() float64 { return p.target.Seconds() }

// Begin starts a frame. The first frame reports the target frame time.
func (p *Pacer) Begin() float64 {
	dt, _ := p.begin()
	return dt
}

// Measure is Begin for a loop that something else paces, such as ebiten's
// tick rate. Nothing sleeps; a frame that arrives more than half a target
// late counts as an overrun.
func (p *Pacer) Measure() float64 {
	dt, raw := p.begin()
	if raw > p.target.Seconds()*lateFactor {
		p.Overruns++
	}
	return dt
}

func (p *Pacer) begin() (dt, raw float64) {
	now := p.clock.Now()
	raw = p.target.Seconds()
	if p.started {
		raw = now.Sub(p.frameStart).Seconds()
	}
	p.started = true
	p.frameStart = now
	p.Frames++
	dt = raw
	if p.maxDelta > 0 && dt > p.maxDelta {
		dt = p.maxDelta
	}
	return dt, raw
}

// End sleeps until the frame has lasted the target time.
func (p *Pacer) End() {
	elapsed := p.clock.Now().Sub(p.frameStart)
	if elapsed >= p.target {
		p.Overruns++
		return
	}
	p.sleep(p.target - elapsed)
}
