// Package item defines the row types shown in the navigator list: plain
// directory entries and ranked history entries, unified behind DisplayItem.
package item

import (
	"path/filepath"
	"time"
)

// FileItem is a single directory entry.
type FileItem struct {
	Name  string
	Path  string
	IsDir bool
}

// HistoryEntry is a visited directory with usage stats.
// Frequency is always >= 1.
type HistoryEntry struct {
	Path          string
	Frequency     uint32
	FirstAccessed time.Time
	LastAccessed  time.Time
}

// NewHistoryEntry creates an entry for a first visit.
func NewHistoryEntry(path string) HistoryEntry {
	now := time.Now()
	return HistoryEntry{
		Path:          path,
		Frequency:     1,
		FirstAccessed: now,
		LastAccessed:  now,
	}
}

// Touch records another visit.
func (e *HistoryEntry) Touch() {
	e.Frequency++
	e.LastAccessed = time.Now()
}

// Score combines frequency with a linear recency decay. The decay never
// drops below 0.1 so old favorites stay rankable; a future or current
// timestamp counts as no decay at all.
func (e HistoryEntry) Score(decayDays int) float64 {
	days := time.Since(e.LastAccessed).Hours() / 24
	if days <= 0 {
		return float64(e.Frequency)
	}
	decay := 1 - days/float64(decayDays)
	if decay < 0.1 {
		decay = 0.1
	}
	return float64(e.Frequency) * decay
}

// DisplayItem is one list row. Exactly one of File or History is set.
type DisplayItem struct {
	File    *FileItem
	History *HistoryEntry
}

// FromFile wraps a directory entry.
func FromFile(fi FileItem) DisplayItem {
	return DisplayItem{File: &fi}
}

// FromHistory wraps a history entry.
func FromHistory(e HistoryEntry) DisplayItem {
	return DisplayItem{History: &e}
}

// Name returns the text rendered in the list.
func (d DisplayItem) Name() string {
	if d.File != nil {
		return d.File.Name
	}
	if d.History != nil {
		return d.History.Path
	}
	return ""
}

// Path returns the filesystem path the row refers to.
func (d DisplayItem) Path() string {
	if d.File != nil {
		return d.File.Path
	}
	if d.History != nil {
		return d.History.Path
	}
	return ""
}

// IsDir reports whether the row refers to a directory. History entries
// are always directories.
func (d DisplayItem) IsDir() bool {
	if d.File != nil {
		return d.File.IsDir
	}
	return d.History != nil
}

// FilterKey returns the text the search filter matches against. File
// rows match on the entry name, history rows on the whole path so a
// fragment anywhere in it finds the entry.
func (d DisplayItem) FilterKey() string {
	if d.File != nil {
		return d.File.Name
	}
	if d.History != nil {
		return d.History.Path
	}
	return ""
}

// SortName returns the final path component, used for alphabetical
// history sorting.
func (d DisplayItem) SortName() string {
	if d.History != nil {
		return filepath.Base(d.History.Path)
	}
	return d.Name()
}
