// Package history persists the ranked directory visit history.
package history

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"quickswitch/internal/config"
	"quickswitch/internal/item"
)

const (
	binFile    = "quickswitch.history.bin"
	legacyFile = "quickswitch.history"
)

// Store reads and writes the visit history under a data directory.
// All writes are synchronous; a failed write is logged by callers and
// never fatal.
type Store struct {
	dir string
	cfg config.HistoryConfig
}

// NewStore creates a store rooted at dataDir.
func NewStore(dataDir string, cfg config.HistoryConfig) *Store {
	return &Store{dir: dataDir, cfg: cfg}
}

func (s *Store) binPath() string    { return filepath.Join(s.dir, binFile) }
func (s *Store) legacyPath() string { return filepath.Join(s.dir, legacyFile) }

// load reads the binary history file. A missing file triggers legacy
// migration; corrupt data degrades to an empty list.
func (s *Store) load() []item.HistoryEntry {
	f, err := os.Open(s.binPath())
	if err != nil {
		if os.IsNotExist(err) {
			return s.migrateLegacy()
		}
		slog.Warn("history unreadable, starting empty", "path", s.binPath(), "error", err)
		return nil
	}
	defer f.Close()

	var entries []item.HistoryEntry
	if err := gob.NewDecoder(f).Decode(&entries); err != nil {
		slog.Warn("history corrupt, starting empty", "path", s.binPath(), "error", err)
		return nil
	}
	return entries
}

// migrateLegacy imports the old newline-delimited path list, saves it in
// the binary format, and renames the legacy file out of the way.
func (s *Store) migrateLegacy() []item.HistoryEntry {
	f, err := os.Open(s.legacyPath())
	if err != nil {
		return nil
	}
	defer f.Close()

	var entries []item.HistoryEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		path := strings.TrimSpace(sc.Text())
		if path == "" {
			continue
		}
		entries = append(entries, item.NewHistoryEntry(path))
	}
	if err := sc.Err(); err != nil {
		slog.Warn("legacy history unreadable", "path", s.legacyPath(), "error", err)
		return nil
	}

	if err := s.save(entries); err != nil {
		slog.Warn("legacy history migration failed", "error", err)
		return entries
	}
	if err := os.Rename(s.legacyPath(), s.legacyPath()+".bak"); err != nil {
		slog.Warn("legacy history rename failed", "error", err)
	}
	slog.Info("migrated legacy history", "entries", len(entries))
	return entries
}

func (s *Store) save(entries []item.HistoryEntry) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	f, err := os.Create(s.binPath())
	if err != nil {
		return fmt.Errorf("create history file: %w", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(entries); err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return nil
}

// Add records a visit to path: an existing entry is touched and moved to
// the front, a new one is prepended, and the list is truncated to the
// configured maximum.
func (s *Store) Add(path string) error {
	entries := s.load()

	idx := -1
	for i := range entries {
		if entries[i].Path == path {
			idx = i
			break
		}
	}
	if idx >= 0 {
		e := entries[idx]
		e.Touch()
		entries = append(entries[:idx], entries[idx+1:]...)
		entries = append([]item.HistoryEntry{e}, entries...)
	} else {
		entries = append([]item.HistoryEntry{item.NewHistoryEntry(path)}, entries...)
	}

	if len(entries) > s.cfg.MaxEntries {
		entries = entries[:s.cfg.MaxEntries]
	}
	return s.save(entries)
}

// Sorted returns entries whose paths still exist, ordered by mode. The
// filtered set is not written back; vanished paths may reappear. Ties
// keep stored (most recently added first) order.
func (s *Store) Sorted(mode config.SortMode) []item.HistoryEntry {
	entries := s.load()

	kept := entries[:0]
	for _, e := range entries {
		if _, err := os.Stat(e.Path); err == nil {
			kept = append(kept, e)
		}
	}
	entries = kept

	switch mode {
	case config.SortFrequency:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Frequency > entries[j].Frequency
		})
	case config.SortRecent:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].LastAccessed.After(entries[j].LastAccessed)
		})
	case config.SortFrequencyRecent:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Score(s.cfg.DecayDays) > entries[j].Score(s.cfg.DecayDays)
		})
	case config.SortAlphabetical:
		sort.SliceStable(entries, func(i, j int) bool {
			return strings.ToLower(filepath.Base(entries[i].Path)) < strings.ToLower(filepath.Base(entries[j].Path))
		})
	}
	return entries
}

// Cleanup drops entries below the configured minimum frequency.
func (s *Store) Cleanup() error {
	entries := s.load()
	kept := entries[:0]
	for _, e := range entries {
		if e.Frequency >= s.cfg.MinFrequency {
			kept = append(kept, e)
		}
	}
	return s.save(kept)
}
