package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/snakes/components"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the board state at one tick.
type Snapshot struct {
	Version int    `json:"version"`
	RunID   string `json:"run_id"`
	Seed    int64  `json:"seed"`

	BoardWidth  int `json:"board_width"`
	BoardHeight int `json:"board_height"`

	Tick      int32   `json:"tick"`
	SimTimeMs float64 `json:"sim_time_ms"`

	MoveIntervalMs float64 `json:"move_interval_ms"`
	DeathEnabled   bool    `json:"death_enabled"`

	Agents []AgentState         `json:"agents"`
	Food   []components.Position `json:"food"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// AgentState holds one agent's complete state.
type AgentState struct {
	ID      uint32 `json:"id"`
	State   string `json:"state"`
	Heading string `json:"heading"`

	MoveTimerMs    float64 `json:"move_timer_ms"`
	GrowPending    int     `json:"grow_pending"`
	CollisionCount int     `json:"collision_count"`
	StunTimerMs    float64 `json:"stun_timer_ms"`

	// Head first
	Body []components.Position `json:"body"`

	Lifetime *LifetimeStats `json:"lifetime,omitempty"`
}

// Filename is the snapshot's file name: snapshot_<tick>[_<bookmark>].json.
func (s *Snapshot) Filename() string {
	if s.Bookmark != nil {
		return fmt.Sprintf("snapshot_%d_%s.json", s.Tick, s.Bookmark.Type)
	}
	return fmt.Sprintf("snapshot_%d.json", s.Tick)
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, snapshot.Filename())

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
