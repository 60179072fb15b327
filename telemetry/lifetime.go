package telemetry

// LifetimeStats tracks per-agent statistics over its lifetime.
type LifetimeStats struct {
	BirthTick   int32   `json:"birth_tick"`
	BirthMs     float64 `json:"birth_ms"`
	SurvivalSec float64 `json:"survival_sec"`

	Moves      int `json:"moves"`
	FoodEaten  int `json:"food_eaten"`
	Collisions int `json:"collisions"`
	PeakLength int `json:"peak_length"`
}

// LifetimeTracker manages per-agent lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new agent.
func (lt *LifetimeTracker) Register(agentID uint32, birthTick int32, birthMs float64, length int) {
	lt.stats[agentID] = &LifetimeStats{
		BirthTick:  birthTick,
		BirthMs:    birthMs,
		PeakLength: length,
	}
}

// Get returns the lifetime stats for an agent, or nil if not found.
func (lt *LifetimeTracker) Get(agentID uint32) *LifetimeStats {
	return lt.stats[agentID]
}

// Record folds an event into the agent's totals.
func (lt *LifetimeTracker) Record(ev Event) {
	s := lt.stats[ev.AgentID]
	if s == nil {
		return
	}
	switch ev.Type {
	case EventMove:
		s.Moves++
	case EventEat:
		s.FoodEaten++
	case EventCollision:
		s.Collisions++
	}
}

// UpdateLength tracks peak body length.
func (lt *LifetimeTracker) UpdateLength(agentID uint32, length int) {
	if s := lt.stats[agentID]; s != nil && length > s.PeakLength {
		s.PeakLength = length
	}
}

// Remove removes an agent's stats, stamping survival time, and returns them.
func (lt *LifetimeTracker) Remove(agentID uint32, simMs float64) *LifetimeStats {
	s := lt.stats[agentID]
	if s == nil {
		return nil
	}
	s.SurvivalSec = (simMs - s.BirthMs) / 1000
	delete(lt.stats, agentID)
	return s
}

// Count returns the number of tracked agents.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// Reset drops every tracked agent.
func (lt *LifetimeTracker) Reset() {
	clear(lt.stats)
}
