// Package stats keeps a running record of finished rounds and persists it
// between runs.
package stats

import (
	"log"
	"strconv"
	"sync"

	"github.com/recall-tui/recall/internal/game"
)

// Tracker folds round outcomes into Stats. Record is called from the UI
// loop while saves run in a background command, so access is guarded.
type Tracker struct {
	persist *Store
	stats   *Stats
	mu      sync.Mutex
	dirty   bool
}

// NewTracker creates a Tracker backed by the given store, loading any
// existing stats from disk. A nil store keeps stats in memory only.
func NewTracker(persist *Store) (*Tracker, error) {
	st := newStats()
	if persist != nil {
		loaded, err := persist.Load()
		if err != nil {
			return nil, err
		}
		st = loaded
	}
	return &Tracker{persist: persist, stats: st}, nil
}

// Record adds one finished round.
func (t *Tracker) Record(out game.Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.stats
	st.RoundsPlayed++
	if out.Success {
		st.Successes++
		st.CurrentStreak++
		if st.CurrentStreak > st.BestStreak {
			st.BestStreak = st.CurrentStreak
		}
		if ms := out.InputTime.Milliseconds(); ms > 0 {
			key := strconv.Itoa(out.Length)
			if best, ok := st.BestInputMillis[key]; !ok || ms < best {
				st.BestInputMillis[key] = ms
			}
		}
	} else {
		st.Failures++
		st.CurrentStreak = 0
	}

	st.PerMode[out.Mode.String()] = tally(st.PerMode[out.Mode.String()], out.Success)
	st.PerDirection[out.Direction.String()] = tally(st.PerDirection[out.Direction.String()], out.Success)

	if !out.FinishedAt.IsZero() {
		st.LastPlayed = out.FinishedAt.UTC()
	}
	t.dirty = true
}

func tally(t Tally, success bool) Tally {
	t.Played++
	if success {
		t.Successes++
	}
	return t
}

// Stats returns a deep copy of the current stats.
func (t *Tracker) Stats() *Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats.clone()
}

// Save persists the stats if anything changed since the last save.
func (t *Tracker) Save() error {
	t.mu.Lock()
	if !t.dirty || t.persist == nil {
		t.mu.Unlock()
		return nil
	}
	stats := t.stats.clone()
	t.dirty = false
	t.mu.Unlock()

	if err := t.persist.Save(stats); err != nil {
		t.mu.Lock()
		t.dirty = true
		t.mu.Unlock()
		log.Printf("Failed to save stats: %v", err)
		return err
	}
	return nil
}

// Path reports where stats are stored, empty when kept in memory.
func (t *Tracker) Path() string {
	if t.persist == nil {
		return ""
	}
	return t.persist.Path()
}
