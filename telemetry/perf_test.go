package telemetry

import (
	"math"
	"testing"
	"time"
)

// stepClock is a hand-advanced clock for PerfCollector.
type stepClock struct {
	t time.Time
}

func (c *stepClock) now() time.Time {
	return c.t
}

func (c *stepClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newSteppedCollector(window int) (*PerfCollector, *stepClock) {
	clock := &stepClock{t: time.Unix(1000, 0)}
	pc := NewPerfCollector(window)
	pc.now = clock.now
	return pc, clock
}

func TestPerfCollector_PhaseTiming(t *testing.T) {
	pc, clock := newSteppedCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseAgents)
		clock.advance(100 * time.Microsecond)
		pc.StartPhase(PhaseConsumption)
		clock.advance(time.Duration(200+100*i) * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.PhaseAvg[PhaseAgents] != 100*time.Microsecond {
		t.Errorf("agents avg = %v, want 100µs", stats.PhaseAvg[PhaseAgents])
	}
	if stats.PhaseAvg[PhaseConsumption] != 400*time.Microsecond {
		t.Errorf("consumption avg = %v, want 400µs", stats.PhaseAvg[PhaseConsumption])
	}
	if stats.PhaseAvg[PhaseFoodPool] != 0 {
		t.Errorf("food_pool avg = %v, want 0 for an untimed phase", stats.PhaseAvg[PhaseFoodPool])
	}
	if stats.MinTickDuration != 300*time.Microsecond || stats.AvgTickDuration != 500*time.Microsecond ||
		stats.MaxTickDuration != 700*time.Microsecond {
		t.Errorf("min/avg/max = %v %v %v, want 300µs 500µs 700µs",
			stats.MinTickDuration, stats.AvgTickDuration, stats.MaxTickDuration)
	}
	if stats.TicksPerSecond != 2000 {
		t.Errorf("TicksPerSecond = %v, want 2000", stats.TicksPerSecond)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc, clock := newSteppedCollector(5)

	// Ten ticks of growing length; only the last five stay in the window.
	for i := 1; i <= 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseAgents)
		clock.advance(time.Duration(i) * time.Millisecond)
		pc.EndTick()
	}

	if pc.filled != 5 {
		t.Errorf("filled = %d, want window size 5", pc.filled)
	}
	stats := pc.Stats()
	if stats.MinTickDuration != 6*time.Millisecond || stats.MaxTickDuration != 10*time.Millisecond {
		t.Errorf("window min/max = %v/%v, want 6ms/10ms", stats.MinTickDuration, stats.MaxTickDuration)
	}
	if stats.AvgTickDuration != 8*time.Millisecond {
		t.Errorf("window avg = %v, want 8ms", stats.AvgTickDuration)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc, clock := newSteppedCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseCleanup)
		clock.advance(25 * time.Microsecond)
		pc.StartPhase(PhaseAgents)
		clock.advance(75 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if got := stats.PhasePct[PhaseAgents]; math.Abs(got-75) > 1e-9 {
		t.Errorf("agents pct = %v, want 75", got)
	}
	if got := stats.PhasePct[PhaseCleanup]; math.Abs(got-25) > 1e-9 {
		t.Errorf("cleanup pct = %v, want 25", got)
	}
}

func TestPerfCollector_RepeatedPhaseAccumulates(t *testing.T) {
	pc, clock := newSteppedCollector(1)

	pc.StartTick()
	pc.StartPhase(PhaseAgents)
	clock.advance(10 * time.Microsecond)
	pc.StartPhase(PhaseTelemetry)
	clock.advance(5 * time.Microsecond)
	pc.StartPhase(PhaseAgents)
	clock.advance(10 * time.Microsecond)
	pc.EndTick()

	if got := pc.Stats().PhaseAvg[PhaseAgents]; got != 20*time.Microsecond {
		t.Errorf("agents = %v, want 20µs across both spans", got)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()
	if stats.AvgTickDuration != 0 || stats.TicksPerSecond != 0 {
		t.Errorf("empty stats = %+v", stats)
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc, clock := newSteppedCollector(10)

	pc.RecordFrame()
	if pc.Stats().FPS != 0 {
		t.Error("a single frame should not report FPS")
	}
	clock.advance(20 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration != 20*time.Millisecond {
		t.Errorf("FrameDuration = %v, want 20ms", stats.FrameDuration)
	}
	if stats.FPS != 50 {
		t.Errorf("FPS = %v, want 50", stats.FPS)
	}
}

func TestPerfCollector_ProcessSample(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.SampleProcess()

	if pc.proc != nil && pc.Stats().RSSBytes == 0 {
		t.Error("expected non-zero RSS after sampling")
	}
}

func TestPhaseString(t *testing.T) {
	want := []string{"food_pool", "agents", "cleanup", "consumption", "telemetry"}
	for i, ph := range Phases {
		if ph.String() != want[i] {
			t.Errorf("Phases[%d] = %q, want %q", i, ph, want[i])
		}
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	var s PerfStats
	s.AvgTickDuration = 250 * time.Microsecond
	s.PhasePct[PhaseAgents] = 70
	s.PhasePct[PhaseConsumption] = 20
	s.RSSBytes = 64 << 20

	row := s.ToCSV(600)
	if row.WindowEnd != 600 || row.AvgTickUS != 250 {
		t.Errorf("row = %+v", row)
	}
	if row.AgentsPct != 70 || row.ConsumptionPct != 20 || row.FoodPoolPct != 0 {
		t.Errorf("phase columns = %v/%v/%v", row.AgentsPct, row.ConsumptionPct, row.FoodPoolPct)
	}
	if row.RSSMB != 64 {
		t.Errorf("rss_mb = %v, want 64", row.RSSMB)
	}
}
