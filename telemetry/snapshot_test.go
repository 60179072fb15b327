package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/snakes/components"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:     SnapshotVersion,
		RunID:       "run-1",
		Seed:        42,
		BoardWidth:  64,
		BoardHeight: 48,
		Tick:        1000,
		SimTimeMs:   16000,
		Agents: []AgentState{
			{
				ID:             1,
				State:          "stunned",
				Heading:        "left",
				CollisionCount: 1,
				StunTimerMs:    1500,
				Body:           []components.Position{{X: 5, Y: 5}, {X: 6, Y: 5}},
				Lifetime:       &LifetimeStats{BirthTick: 0, FoodEaten: 1, PeakLength: 2},
			},
		},
		Food: []components.Position{{X: 1, Y: 2}, {X: 30, Y: 40}},
		Bookmark: &Bookmark{
			Type:        BookmarkGridlock,
			Tick:        1000,
			Description: "Test bookmark",
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.RunID != snapshot.RunID || loaded.Seed != snapshot.Seed || loaded.Tick != snapshot.Tick {
		t.Errorf("header mismatch: got %s/%d/%d", loaded.RunID, loaded.Seed, loaded.Tick)
	}
	if len(loaded.Agents) != 1 || len(loaded.Agents[0].Body) != 2 {
		t.Fatalf("agents not loaded: %+v", loaded.Agents)
	}
	if loaded.Agents[0].Body[1] != (components.Position{X: 6, Y: 5}) {
		t.Errorf("body cell = %+v", loaded.Agents[0].Body[1])
	}
	if loaded.Agents[0].Lifetime == nil || loaded.Agents[0].Lifetime.FoodEaten != 1 {
		t.Error("lifetime not loaded")
	}
	if len(loaded.Food) != 2 || loaded.Food[1] != (components.Position{X: 30, Y: 40}) {
		t.Errorf("food = %+v", loaded.Food)
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkGridlock {
		t.Error("Bookmark not loaded")
	}
}

func TestSnapshotFilename(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want string
	}{
		{"plain", Snapshot{Tick: 3000}, "snapshot_3000.json"},
		{"bookmark", Snapshot{Tick: 5000, Bookmark: &Bookmark{Type: BookmarkPopulationCrash}}, "snapshot_5000_population_crash.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.Filename(); got != tt.want {
				t.Errorf("Filename() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLoadSnapshotVersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected version error")
	}
}
