package telemetry

// PopulationSample is the board state a window flush summarises.
type PopulationSample struct {
	Alive   int
	Stunned int
	Food    int
	Lengths []float64 // body length of every living agent
}

// Collector accumulates events within windows of simulated time and produces WindowStats.
type Collector struct {
	windowMs float64

	// Current window tracking
	windowStartTick int32
	windowStartMs   float64

	// Event counters for current window
	moves      int
	collisions int
	recoveries int
	deaths     int
	eats       int
}

// NewCollector creates a stats collector with windows of windowSec simulated seconds.
func NewCollector(windowSec float64) *Collector {
	if windowSec <= 0 {
		windowSec = 10
	}
	return &Collector{windowMs: windowSec * 1000}
}

// Record counts one event.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventMove:
		c.moves++
	case EventCollision:
		c.collisions++
	case EventRecover:
		c.recoveries++
	case EventDeath:
		c.deaths++
	case EventEat:
		c.eats++
	}
}

// ShouldFlush returns true once a full window of simulated time has passed.
func (c *Collector) ShouldFlush(simMs float64) bool {
	return simMs-c.windowStartMs >= c.windowMs
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(tick int32, simMs float64, pop PopulationSample) WindowStats {
	var collisionRate float64
	if attempts := c.moves + c.collisions; attempts > 0 {
		collisionRate = float64(c.collisions) / float64(attempts)
	}

	ls := ComputeLengthStats(pop.Lengths)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,
		SimTimeSec:      simMs / 1000,

		Alive:   pop.Alive,
		Stunned: pop.Stunned,
		Food:    pop.Food,

		Moves:      c.moves,
		Collisions: c.collisions,
		Recoveries: c.recoveries,
		Deaths:     c.deaths,
		Eats:       c.eats,

		CollisionRate: collisionRate,

		LengthMean: ls.Mean,
		LengthStd:  ls.Std,
		LengthP10:  ls.P10,
		LengthP50:  ls.P50,
		LengthP90:  ls.P90,
		LengthMax:  ls.Max,
	}

	c.Reset(tick, simMs)
	return stats
}

// Reset clears counters and starts a new window at the given time.
func (c *Collector) Reset(tick int32, simMs float64) {
	c.windowStartTick = tick
	c.windowStartMs = simMs
	c.moves = 0
	c.collisions = 0
	c.recoveries = 0
	c.deaths = 0
	c.eats = 0
}

// WindowMs returns the window length in simulated milliseconds.
func (c *Collector) WindowMs() float64 {
	return c.windowMs
}
