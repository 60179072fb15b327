// Package telemetry provides run statistics, bookmarking, CSV output and board snapshots.
package telemetry

import "github.com/pthm-cable/snakes/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventSpawn EventType = iota
	EventMove
	EventCollision
	EventRecover
	EventDeath
	EventEat
)

func (t EventType) String() string {
	switch t {
	case EventSpawn:
		return "spawn"
	case EventMove:
		return "move"
	case EventCollision:
		return "collision"
	case EventRecover:
		return "recover"
	case EventDeath:
		return "death"
	case EventEat:
		return "eat"
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type    EventType
	Tick    int32
	AgentID uint32
	Pos     components.Position // head cell when the event happened
}

// NewEvent creates an event for an agent.
func NewEvent(t EventType, tick int32, agentID uint32, pos components.Position) Event {
	return Event{Type: t, Tick: tick, AgentID: agentID, Pos: pos}
}
