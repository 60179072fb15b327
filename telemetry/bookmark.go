package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/snakes/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkExtinction      BookmarkType = "extinction"
	BookmarkPopulationCrash BookmarkType = "population_crash"
	BookmarkGridlock        BookmarkType = "gridlock"
	BookmarkFeedingFrenzy   BookmarkType = "feeding_frenzy"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int32        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in a run.
type BookmarkDetector struct {
	cfg config.BookmarksConfig

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentPeak   int  // peak living population since the last crash
	gridlocked   bool // inside a gridlock episode
	extinctFired bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, cfg config.BookmarksConfig) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		cfg:         cfg,
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkExtinction(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkPopulationCrash(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkGridlock(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkFeedingFrenzy(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	if stats.Alive > bd.recentPeak {
		bd.recentPeak = stats.Alive
	}

	return bookmarks
}

// Reset forgets history, used when a new run starts.
func (bd *BookmarkDetector) Reset() {
	clear(bd.history)
	bd.historyIdx = 0
	bd.historyFull = false
	bd.recentPeak = 0
	bd.gridlocked = false
	bd.extinctFired = false
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkExtinction(stats WindowStats) *Bookmark {
	if bd.extinctFired || stats.Alive > 0 || bd.recentPeak == 0 {
		return nil
	}
	bd.extinctFired = true
	return &Bookmark{
		Type:        BookmarkExtinction,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("All agents dead after %.0fs", stats.SimTimeSec),
	}
}

func (bd *BookmarkDetector) checkPopulationCrash(stats WindowStats) *Bookmark {
	if bd.recentPeak == 0 {
		return nil
	}

	cfg := bd.cfg.PopulationCrash
	dropPercent := 1.0 - float64(stats.Alive)/float64(bd.recentPeak)
	if dropPercent > cfg.DropPercent && bd.recentPeak-stats.Alive >= cfg.MinDrop {
		oldPeak := bd.recentPeak
		bd.recentPeak = stats.Alive

		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.Alive),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkGridlock(stats WindowStats) *Bookmark {
	cfg := bd.cfg.Gridlock
	if stats.Alive < cfg.MinAlive {
		bd.gridlocked = false
		return nil
	}

	share := float64(stats.Stunned) / float64(stats.Alive)
	if share < cfg.StunnedShare {
		bd.gridlocked = false
		return nil
	}
	if bd.gridlocked {
		return nil
	}
	bd.gridlocked = true

	return &Bookmark{
		Type:        BookmarkGridlock,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d of %d agents stunned (%.0f%%)", stats.Stunned, stats.Alive, share*100),
	}
}

func (bd *BookmarkDetector) checkFeedingFrenzy(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Eats
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	cfg := bd.cfg.FeedingFrenzy
	if float64(stats.Eats) > avg*cfg.Multiplier && stats.Eats >= cfg.MinEats {
		return &Bookmark{
			Type:        BookmarkFeedingFrenzy,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d food eaten, %.1fx average (%.1f)", stats.Eats, float64(stats.Eats)/avg, avg),
		}
	}
	return nil
}
