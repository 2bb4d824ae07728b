package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"time"
)

const (
	statsVersion  = 1
	statsFileName = "stats.json"
	appDirName    = "recall"
)

// Stats is the record of every finished round.
type Stats struct {
	Version int `json:"version"`

	RoundsPlayed  int `json:"roundsPlayed"`
	Successes     int `json:"successes"`
	Failures      int `json:"failures"`
	CurrentStreak int `json:"currentStreak"`
	BestStreak    int `json:"bestStreak"`

	// Keyed by Mode.String and Direction.String.
	PerMode      map[string]Tally `json:"perMode"`
	PerDirection map[string]Tally `json:"perDirection"`

	// Fastest winning input phase in milliseconds, keyed by sequence length.
	BestInputMillis map[string]int64 `json:"bestInputMillis"`

	LastPlayed  time.Time `json:"lastPlayed"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Tally counts played and won rounds for one mode or direction.
type Tally struct {
	Played    int `json:"played"`
	Successes int `json:"successes"`
}

// Rate is Successes/Played, or 0 before the first round.
func (t Tally) Rate() float64 {
	if t.Played == 0 {
		return 0
	}
	return float64(t.Successes) / float64(t.Played)
}

// SuccessRate is the overall success ratio.
func (st *Stats) SuccessRate() float64 {
	return Tally{Played: st.RoundsPlayed, Successes: st.Successes}.Rate()
}

// Store keeps Stats as JSON in a single file.
type Store struct {
	dir string
}

// NewStore returns a Store for dir, which is created on first Save. An
// empty dir means $XDG_STATE_HOME/recall, falling back to
// ~/.local/state/recall.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = defaultStatsDir()
	}
	return &Store{dir: dir}
}

// Path is the stats file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, statsFileName)
}

// Load reads the stats file. A missing file is a fresh record, not an error.
func (s *Store) Load() (*Stats, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return newStats(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading stats: %w", err)
	}

	st := new(Stats)
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.Path(), err)
	}
	if st.Version > statsVersion {
		return nil, fmt.Errorf("%s has version %d, this build reads up to %d", s.Path(), st.Version, statsVersion)
	}
	st.initMaps()
	return st, nil
}

// Save stamps st with the current version and time and replaces the stats
// file atomically.
func (s *Store) Save(st *Stats) error {
	st.Version = statsVersion
	st.LastUpdated = time.Now().UTC()

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding stats: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", s.dir, err)
	}
	return writeFileAtomic(s.Path(), append(data, '\n'))
}

// writeFileAtomic writes data to a sibling temp file and renames it over
// path, so readers see either the old or the new contents.
func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

func newStats() *Stats {
	st := &Stats{Version: statsVersion}
	st.initMaps()
	return st
}

// initMaps fills in maps that are absent or null in the file.
func (st *Stats) initMaps() {
	if st.PerMode == nil {
		st.PerMode = map[string]Tally{}
	}
	if st.PerDirection == nil {
		st.PerDirection = map[string]Tally{}
	}
	if st.BestInputMillis == nil {
		st.BestInputMillis = map[string]int64{}
	}
}

func (st *Stats) clone() *Stats {
	cp := *st
	cp.PerMode = maps.Clone(st.PerMode)
	cp.PerDirection = maps.Clone(st.PerDirection)
	cp.BestInputMillis = maps.Clone(st.BestInputMillis)
	cp.initMaps()
	return &cp
}

func defaultStatsDir() string {
	if base := os.Getenv("XDG_STATE_HOME"); base != "" {
		return filepath.Join(base, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".local", "state", appDirName)
}
