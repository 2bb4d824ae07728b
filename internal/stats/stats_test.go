package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/recall-tui/recall/internal/game"
	"github.com/recall-tui/recall/internal/sequence"
)

func TestNewStore_DefaultDir(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "")
	s := NewStore("")
	if s.dir == "" {
		t.Fatal("expected non-empty default dir")
	}
	if filepath.Base(s.dir) != appDirName {
		t.Errorf("expected dir to end with %q, got %q", appDirName, s.dir)
	}
}

func TestNewStore_XDGStateHome(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_STATE_HOME", base)
	s := NewStore("")
	if want := filepath.Join(base, appDirName); s.dir != want {
		t.Errorf("dir = %q, want %q", s.dir, want)
	}
}

func TestStore_Path(t *testing.T) {
	s := NewStore("/tmp/test-dir")
	want := "/tmp/test-dir/stats.json"
	if got := s.Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestStore_LoadMissing(t *testing.T) {
	s := NewStore(t.TempDir())

	st, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if st.Version != statsVersion {
		t.Errorf("Version = %d, want %d", st.Version, statsVersion)
	}
	if st.PerMode == nil || st.PerDirection == nil || st.BestInputMillis == nil {
		t.Error("maps should be initialized")
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	s := NewStore(dir)

	st := newStats()
	st.RoundsPlayed = 12
	st.Successes = 9
	st.Failures = 3
	st.CurrentStreak = 4
	st.BestStreak = 6
	st.PerMode["strict"] = Tally{Played: 5, Successes: 3}
	st.PerDirection["reverse"] = Tally{Played: 7, Successes: 5}
	st.BestInputMillis["5"] = 2100

	if err := s.Save(st); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.RoundsPlayed != 12 || loaded.Successes != 9 || loaded.Failures != 3 {
		t.Errorf("counters = %d/%d/%d", loaded.RoundsPlayed, loaded.Successes, loaded.Failures)
	}
	if loaded.BestStreak != 6 || loaded.CurrentStreak != 4 {
		t.Errorf("streaks = %d/%d", loaded.CurrentStreak, loaded.BestStreak)
	}
	if loaded.PerMode["strict"] != (Tally{Played: 5, Successes: 3}) {
		t.Errorf("PerMode[strict] = %+v", loaded.PerMode["strict"])
	}
	if loaded.PerDirection["reverse"].Successes != 5 {
		t.Errorf("PerDirection[reverse] = %+v", loaded.PerDirection["reverse"])
	}
	if loaded.BestInputMillis["5"] != 2100 {
		t.Errorf("BestInputMillis[5] = %d", loaded.BestInputMillis["5"])
	}
	if loaded.LastUpdated.IsZero() {
		t.Error("LastUpdated should be set by Save")
	}

	// No temp files should be left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only stats.json in dir, found %d entries", len(entries))
	}
}

func TestStore_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, statsFileName), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(dir).Load(); err == nil {
		t.Fatal("Load() on corrupt file should return error")
	}
}

func TestStore_LoadNullMaps(t *testing.T) {
	dir := t.TempDir()
	data, _ := json.Marshal(map[string]any{"version": 1, "roundsPlayed": 2, "perMode": nil})
	if err := os.WriteFile(filepath.Join(dir, statsFileName), data, 0o600); err != nil {
		t.Fatal(err)
	}
	st, err := NewStore(dir).Load()
	if err != nil {
		t.Fatal(err)
	}
	if st.PerMode == nil {
		t.Error("PerMode should be initialized after load")
	}
	if st.RoundsPlayed != 2 {
		t.Errorf("RoundsPlayed = %d, want 2", st.RoundsPlayed)
	}
}

func TestStore_LoadNewerVersion(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`{"version": 99, "roundsPlayed": 3}`)
	if err := os.WriteFile(filepath.Join(dir, statsFileName), data, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(dir).Load(); err == nil {
		t.Fatal("Load() should refuse a file from a newer version")
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := NewStore(t.TempDir())
	st := newStats()
	for i := 1; i <= 3; i++ {
		st.RoundsPlayed = i
		if err := s.Save(st); err != nil {
			t.Fatalf("Save() #%d error: %v", i, err)
		}
	}
	loaded, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.RoundsPlayed != 3 {
		t.Errorf("RoundsPlayed = %d, want 3", loaded.RoundsPlayed)
	}
}

func outcome(success bool, mode game.Mode, dir sequence.Direction) game.Outcome {
	return game.Outcome{
		Round:      1,
		Success:    success,
		Mode:       mode,
		Direction:  dir,
		Length:     5,
		Entered:    5,
		InputTime:  3 * time.Second,
		FinishedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestTracker_RecordStreaks(t *testing.T) {
	tr, err := NewTracker(nil)
	if err != nil {
		t.Fatal(err)
	}

	results := []bool{true, true, true, false, true}
	for _, ok := range results {
		tr.Record(outcome(ok, game.Lenient, sequence.Forward))
	}

	st := tr.Stats()
	if st.RoundsPlayed != 5 {
		t.Errorf("RoundsPlayed = %d, want 5", st.RoundsPlayed)
	}
	if st.Successes != 4 || st.Failures != 1 {
		t.Errorf("Successes/Failures = %d/%d, want 4/1", st.Successes, st.Failures)
	}
	if st.BestStreak != 3 {
		t.Errorf("BestStreak = %d, want 3", st.BestStreak)
	}
	if st.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", st.CurrentStreak)
	}
	if got := st.SuccessRate(); got != 0.8 {
		t.Errorf("SuccessRate() = %f, want 0.8", got)
	}
}

func TestTracker_RecordDimensions(t *testing.T) {
	tr, _ := NewTracker(nil)
	tr.Record(outcome(true, game.Strict, sequence.Reverse))
	tr.Record(outcome(false, game.Strict, sequence.Forward))
	tr.Record(outcome(true, game.Lenient, sequence.Reverse))

	st := tr.Stats()
	if got := st.PerMode["strict"]; got != (Tally{Played: 2, Successes: 1}) {
		t.Errorf("PerMode[strict] = %+v", got)
	}
	if got := st.PerMode["lenient"]; got != (Tally{Played: 1, Successes: 1}) {
		t.Errorf("PerMode[lenient] = %+v", got)
	}
	if got := st.PerDirection["reverse"]; got != (Tally{Played: 2, Successes: 2}) {
		t.Errorf("PerDirection[reverse] = %+v", got)
	}
	if st.BestInputMillis["5"] != 3000 {
		t.Errorf("BestInputMillis[5] = %d, want 3000", st.BestInputMillis["5"])
	}
	if !st.LastPlayed.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("LastPlayed = %v", st.LastPlayed)
	}
}

func TestTracker_BestInputKeepsFastest(t *testing.T) {
	tr, _ := NewTracker(nil)
	slow := outcome(true, game.Lenient, sequence.Forward)
	slow.InputTime = 5 * time.Second
	fast := outcome(true, game.Lenient, sequence.Forward)
	fast.InputTime = 2 * time.Second
	failed := outcome(false, game.Lenient, sequence.Forward)
	failed.InputTime = time.Second

	tr.Record(slow)
	tr.Record(fast)
	tr.Record(slow)
	tr.Record(failed)

	if got := tr.Stats().BestInputMillis["5"]; got != 2000 {
		t.Errorf("BestInputMillis[5] = %d, want 2000", got)
	}
}

func TestTracker_StatsIsCopy(t *testing.T) {
	tr, _ := NewTracker(nil)
	tr.Record(outcome(true, game.Lenient, sequence.Forward))

	st := tr.Stats()
	st.RoundsPlayed = 100
	st.PerMode["lenient"] = Tally{}

	again := tr.Stats()
	if again.RoundsPlayed != 1 {
		t.Error("mutating the returned Stats changed the tracker")
	}
	if again.PerMode["lenient"].Played != 1 {
		t.Error("mutating the returned map changed the tracker")
	}
}

func TestTracker_SavePersists(t *testing.T) {
	dir := t.TempDir()
	tr, err := NewTracker(NewStore(dir))
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.Save(); err != nil {
		t.Fatalf("Save() with nothing recorded: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, statsFileName)); !os.IsNotExist(err) {
		t.Error("clean tracker should not write a file")
	}

	tr.Record(outcome(true, game.Strict, sequence.Forward))
	if err := tr.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded, err := NewTracker(NewStore(dir))
	if err != nil {
		t.Fatal(err)
	}
	if got := reloaded.Stats().RoundsPlayed; got != 1 {
		t.Errorf("reloaded RoundsPlayed = %d, want 1", got)
	}
	if reloaded.Path() != filepath.Join(dir, statsFileName) {
		t.Errorf("Path() = %q", reloaded.Path())
	}
}

func TestTracker_InMemoryPath(t *testing.T) {
	tr, _ := NewTracker(nil)
	if tr.Path() != "" {
		t.Errorf("Path() = %q, want empty", tr.Path())
	}
	tr.Record(outcome(true, game.Lenient, sequence.Forward))
	if err := tr.Save(); err != nil {
		t.Errorf("Save() in memory: %v", err)
	}
}

func TestTallyRate(t *testing.T) {
	if (Tally{}).Rate() != 0 {
		t.Error("empty tally rate should be 0")
	}
	if got := (Tally{Played: 4, Successes: 1}).Rate(); got != 0.25 {
		t.Errorf("Rate() = %f, want 0.25", got)
	}
}
