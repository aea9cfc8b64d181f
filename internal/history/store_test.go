package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"quickswitch/internal/config"
	"quickswitch/internal/item"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return NewStore(dir, config.Default().History), dir
}

func TestAddAndReload(t *testing.T) {
	s, _ := newTestStore(t)
	target := t.TempDir()

	if err := s.Add(target); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(target); err != nil {
		t.Fatal(err)
	}

	entries := s.load()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1 (dedup by path)", len(entries))
	}
	if entries[0].Frequency != 2 {
		t.Errorf("Frequency = %d, want 2", entries[0].Frequency)
	}
}

func TestAddMovesToFront(t *testing.T) {
	s, _ := newTestStore(t)
	a, b := t.TempDir(), t.TempDir()

	if err := s.Add(a); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(b); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(a); err != nil {
		t.Fatal(err)
	}

	entries := s.load()
	if len(entries) != 2 || entries[0].Path != a {
		t.Errorf("revisited path should be at the front, got %+v", entries)
	}
}

func TestAddTruncates(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default().History
	cfg.MaxEntries = 3
	s := NewStore(dir, cfg)

	paths := make([]string, 5)
	for i := range paths {
		paths[i] = t.TempDir()
		if err := s.Add(paths[i]); err != nil {
			t.Fatal(err)
		}
	}

	entries := s.load()
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3 after truncation", len(entries))
	}
	// Newest first; the oldest two fell off the tail.
	if entries[0].Path != paths[4] || entries[2].Path != paths[2] {
		t.Errorf("unexpected survivors: %+v", entries)
	}
}

func TestSortedDropsMissingPaths(t *testing.T) {
	s, _ := newTestStore(t)
	alive := t.TempDir()
	dead := filepath.Join(t.TempDir(), "gone")
	if err := os.Mkdir(dead, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := s.Add(alive); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(dead); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(dead); err != nil {
		t.Fatal(err)
	}

	entries := s.Sorted(config.SortRecent)
	if len(entries) != 1 || entries[0].Path != alive {
		t.Errorf("Sorted = %+v, want only the existing path", entries)
	}

	// The vanished path is not purged from disk.
	if got := len(s.load()); got != 2 {
		t.Errorf("stored entries = %d, want 2", got)
	}
}

func TestSortedModes(t *testing.T) {
	s, _ := newTestStore(t)
	frequent, recent := t.TempDir(), t.TempDir()

	for i := 0; i < 3; i++ {
		if err := s.Add(frequent); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Add(recent); err != nil {
		t.Fatal(err)
	}

	byFreq := s.Sorted(config.SortFrequency)
	if byFreq[0].Path != frequent {
		t.Errorf("frequency sort put %q first", byFreq[0].Path)
	}

	byRecent := s.Sorted(config.SortRecent)
	if byRecent[0].Path != recent {
		t.Errorf("recent sort put %q first", byRecent[0].Path)
	}
}

func TestSortedAlphabetical(t *testing.T) {
	s, _ := newTestStore(t)
	base := t.TempDir()
	zebra := filepath.Join(base, "zebra")
	apple := filepath.Join(base, "Apple")
	for _, d := range []string{zebra, apple} {
		if err := os.Mkdir(d, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := s.Add(d); err != nil {
			t.Fatal(err)
		}
	}

	entries := s.Sorted(config.SortAlphabetical)
	if entries[0].Path != apple {
		t.Errorf("alphabetical sort is case-insensitive on the final component, got %q first", entries[0].Path)
	}
}

func TestSortedFrequencyRecentDecay(t *testing.T) {
	s, dir := newTestStore(t)
	stale, fresh := t.TempDir(), t.TempDir()

	// Frequency 5 but last visited long ago: score 5 * 0.1 = 0.5.
	// Frequency 1 visited now: score 1.0.
	old := item.NewHistoryEntry(stale)
	old.Frequency = 5
	old.LastAccessed = time.Now().AddDate(0, 0, -365)
	entries := []item.HistoryEntry{old, item.NewHistoryEntry(fresh)}
	if err := NewStore(dir, s.cfg).save(entries); err != nil {
		t.Fatal(err)
	}

	got := s.Sorted(config.SortFrequencyRecent)
	if got[0].Path != fresh {
		t.Errorf("decayed entry should rank below fresh one, got %q first", got[0].Path)
	}
}

func TestMigrateLegacy(t *testing.T) {
	s, dir := newTestStore(t)
	a, b := t.TempDir(), t.TempDir()
	legacy := a + "\n" + b + "\n\n"
	if err := os.WriteFile(filepath.Join(dir, legacyFile), []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	entries := s.load()
	if len(entries) != 2 {
		t.Fatalf("migrated entries = %d, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Frequency != 1 {
			t.Errorf("migrated frequency = %d, want 1", e.Frequency)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, legacyFile)); !os.IsNotExist(err) {
		t.Error("legacy file should be renamed away")
	}
	if _, err := os.Stat(filepath.Join(dir, legacyFile+".bak")); err != nil {
		t.Error("legacy backup missing")
	}
	if _, err := os.Stat(filepath.Join(dir, binFile)); err != nil {
		t.Error("binary file should exist after migration")
	}
}

func TestCorruptFileDegradesToEmpty(t *testing.T) {
	s, dir := newTestStore(t)
	if err := os.WriteFile(filepath.Join(dir, binFile), []byte("not gob"), 0o644); err != nil {
		t.Fatal(err)
	}
	if entries := s.load(); entries != nil {
		t.Errorf("corrupt file should yield empty history, got %d entries", len(entries))
	}
}

func TestCleanup(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default().History
	cfg.MinFrequency = 2
	s := NewStore(dir, cfg)

	once, twice := t.TempDir(), t.TempDir()
	if err := s.Add(once); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(twice); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(twice); err != nil {
		t.Fatal(err)
	}

	if err := s.Cleanup(); err != nil {
		t.Fatal(err)
	}
	entries := s.load()
	if len(entries) != 1 || entries[0].Path != twice {
		t.Errorf("cleanup kept %+v, want only the twice-visited path", entries)
	}
}
