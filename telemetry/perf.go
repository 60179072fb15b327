package telemetry

import (
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"gonum.org/v1/gonum/floats"
)

// Phase identifies one stage of a tick.
type Phase uint8

const (
	PhaseFoodPool Phase = iota
	PhaseAgents
	PhaseCleanup
	PhaseConsumption
	PhaseTelemetry

	numPhases
)

// Phases lists the tick phases in execution order.
var Phases = [numPhases]Phase{PhaseFoodPool, PhaseAgents, PhaseCleanup, PhaseConsumption, PhaseTelemetry}

func (p Phase) String() string {
	switch p {
	case PhaseFoodPool:
		return "food_pool"
	case PhaseAgents:
		return "agents"
	case PhaseCleanup:
		return "cleanup"
	case PhaseConsumption:
		return "consumption"
	case PhaseTelemetry:
		return "telemetry"
	}
	return "unknown"
}

// PhaseDurations holds one duration per phase.
type PhaseDurations [numPhases]time.Duration

// perfSample is the timing of one tick.
type perfSample struct {
	tick   time.Duration
	phases PhaseDurations
}

// PerfCollector keeps tick timings in a ring of the last windowSize ticks.
type PerfCollector struct {
	samples []perfSample
	next    int
	filled  int

	current    perfSample
	tickStart  time.Time
	phaseStart time.Time
	inPhase    bool
	phase      Phase

	// Graphics mode
	lastFrame     time.Time
	frameDuration time.Duration

	proc       *process.Process
	rssBytes   uint64
	cpuPercent float64

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	pc := &PerfCollector{samples: make([]perfSample, windowSize), now: time.Now}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		pc.proc = proc
	} else {
		slog.Warn("process metrics unavailable", "error", err)
	}
	return pc
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.current = perfSample{}
	p.inPhase = false
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := p.now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
	p.inPhase = true
}

// EndTick closes the last phase and stores the tick in the ring.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.inPhase = false
	p.current.tick = now.Sub(p.tickStart)

	p.samples[p.next] = p.current
	p.next = (p.next + 1) % len(p.samples)
	if p.filled < len(p.samples) {
		p.filled++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase < numPhases {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// RecordFrame records the time since the previous frame.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frameDuration = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// SampleProcess refreshes resident memory and CPU usage of this process.
func (p *PerfCollector) SampleProcess() {
	if p.proc == nil {
		return
	}
	if mem, err := p.proc.MemoryInfo(); err == nil {
		p.rssBytes = mem.RSS
	}
	if cpu, err := p.proc.CPUPercent(); err == nil {
		p.cpuPercent = cpu
	}
}

// PerfStats aggregates the tick window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg PhaseDurations
	PhasePct [numPhases]float64 // share of the average tick

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64

	RSSBytes   uint64
	CPUPercent float64
}

// Stats computes statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		FrameDuration: p.frameDuration,
		RSSBytes:      p.rssBytes,
		CPUPercent:    p.cpuPercent,
	}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.filled == 0 {
		return s
	}

	ticks := make([]float64, p.filled)
	var phaseSum PhaseDurations
	for i, sample := range p.samples[:p.filled] {
		ticks[i] = float64(sample.tick)
		for ph, d := range sample.phases {
			phaseSum[ph] += d
		}
	}

	n := time.Duration(p.filled)
	s.AvgTickDuration = time.Duration(floats.Sum(ticks)) / n
	s.MinTickDuration = time.Duration(floats.Min(ticks))
	s.MaxTickDuration = time.Duration(floats.Max(ticks))

	for ph := range phaseSum {
		s.PhaseAvg[ph] = phaseSum[ph] / n
		if s.AvgTickDuration > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgTickDuration) * 100
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	return s
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	if s.RSSBytes > 0 {
		attrs = append(attrs, "rss_mb", s.RSSBytes>>20, "cpu_pct", int(s.CPUPercent))
	}
	for _, ph := range Phases {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, ph.String()+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd      int32   `csv:"window_end"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	FPS            float64 `csv:"fps"`
	RSSMB          float64 `csv:"rss_mb"`
	CPUPercent     float64 `csv:"cpu_pct"`
	FoodPoolPct    float64 `csv:"food_pool_pct"`
	AgentsPct      float64 `csv:"agents_pct"`
	CleanupPct     float64 `csv:"cleanup_pct"`
	ConsumptionPct float64 `csv:"consumption_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats into a perf.csv row.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTickDuration.Microseconds(),
		MinTickUS:      s.MinTickDuration.Microseconds(),
		MaxTickUS:      s.MaxTickDuration.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		FPS:            s.FPS,
		RSSMB:          float64(s.RSSBytes) / (1 << 20),
		CPUPercent:     s.CPUPercent,
		FoodPoolPct:    s.PhasePct[PhaseFoodPool],
		AgentsPct:      s.PhasePct[PhaseAgents],
		CleanupPct:     s.PhasePct[PhaseCleanup],
		ConsumptionPct: s.PhasePct[PhaseConsumption],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}
