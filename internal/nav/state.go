// Package nav holds the list navigation state machine and the data
// providers that feed it in directory and history modes.
package nav

import (
	"strings"

	"quickswitch/internal/item"
)

// State is the shared navigation state. The cursor and scroll offset
// address the filtered view; -1 means no selection.
type State struct {
	CurrentDir string
	Items      []item.DisplayItem
	Filtered   []int
	Cursor     int
	Offset     int

	Search    string
	Searching bool

	// positions remembers the cursor per directory so re-entering a
	// directory restores the old spot.
	positions map[string]int
}

// NewState creates a state rooted at dir.
func NewState(dir string) *State {
	return &State{
		CurrentDir: dir,
		Cursor:     -1,
		positions:  make(map[string]int),
	}
}

// SetItems replaces the item list and reapplies the filter.
func (s *State) SetItems(items []item.DisplayItem) {
	s.Items = items
	s.ApplyFilter()
}

// ApplyFilter rebuilds the filtered view from the search text:
// case-insensitive substring match on each item's filter key. Any filter
// change resets the selection to none and the scroll to the top; the
// first downward navigation then selects the first match.
func (s *State) ApplyFilter() {
	needle := strings.ToLower(s.Search)
	s.Filtered = s.Filtered[:0]
	for i, it := range s.Items {
		if needle == "" || strings.Contains(strings.ToLower(it.FilterKey()), needle) {
			s.Filtered = append(s.Filtered, i)
		}
	}
	s.Cursor = -1
	s.Offset = 0
}

// SetSearch updates the search text and reapplies the filter.
func (s *State) SetSearch(text string) {
	s.Search = text
	s.ApplyFilter()
}

// ClearSearch drops the search text and filter.
func (s *State) ClearSearch() {
	s.Searching = false
	s.SetSearch("")
}

// Selected returns the item under the cursor.
func (s *State) Selected() (item.DisplayItem, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Filtered) {
		return item.DisplayItem{}, false
	}
	return s.Items[s.Filtered[s.Cursor]], true
}

// MoveUp moves the cursor up one row. No wraparound.
func (s *State) MoveUp(visible int) bool {
	if s.Cursor <= 0 {
		return false
	}
	s.Cursor--
	s.scrollIntoView(visible)
	return true
}

// MoveDown moves the cursor down one row. No wraparound.
func (s *State) MoveDown(visible int) bool {
	if s.Cursor+1 >= len(s.Filtered) {
		return false
	}
	s.Cursor++
	s.scrollIntoView(visible)
	return true
}

// HalfPageUp moves up max(1, visible/2) rows, clamped to the top.
func (s *State) HalfPageUp(visible int) bool {
	if s.Cursor <= 0 {
		return false
	}
	s.Cursor -= halfPage(visible)
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	s.scrollIntoView(visible)
	return true
}

// HalfPageDown moves down max(1, visible/2) rows, clamped to the end.
// With no selection it selects the first row, like MoveDown.
func (s *State) HalfPageDown(visible int) bool {
	if len(s.Filtered) == 0 || s.Cursor+1 >= len(s.Filtered) {
		return false
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	} else {
		s.Cursor += halfPage(visible)
	}
	if s.Cursor >= len(s.Filtered) {
		s.Cursor = len(s.Filtered) - 1
	}
	s.scrollIntoView(visible)
	return true
}

// MoveTop jumps to the first row.
func (s *State) MoveTop(visible int) bool {
	if len(s.Filtered) == 0 || s.Cursor == 0 {
		return false
	}
	s.Cursor = 0
	s.scrollIntoView(visible)
	return true
}

// MoveBottom jumps to the last row.
func (s *State) MoveBottom(visible int) bool {
	if len(s.Filtered) == 0 || s.Cursor == len(s.Filtered)-1 {
		return false
	}
	s.Cursor = len(s.Filtered) - 1
	s.scrollIntoView(visible)
	return true
}

// Select places the cursor on a filtered row directly (mouse click).
func (s *State) Select(row int, visible int) bool {
	if row < 0 || row >= len(s.Filtered) {
		return false
	}
	s.Cursor = row
	s.scrollIntoView(visible)
	return true
}

// scrollIntoView keeps the selection visible: scroll up to the cursor
// when it is above the window, down when it is below.
func (s *State) scrollIntoView(visible int) {
	if visible < 1 {
		visible = 1
	}
	if s.Cursor < 0 {
		s.Offset = 0
		return
	}
	if s.Cursor < s.Offset {
		s.Offset = s.Cursor
	}
	if s.Cursor >= s.Offset+visible {
		s.Offset = s.Cursor - (visible - 1)
	}
}

// SavePosition remembers the cursor for the current directory.
func (s *State) SavePosition() {
	if s.Cursor >= 0 {
		s.positions[s.CurrentDir] = s.Cursor
	}
}

// RestorePosition restores the remembered cursor for the current
// directory, clamped to the filtered length.
func (s *State) RestorePosition() {
	pos, ok := s.positions[s.CurrentDir]
	if !ok {
		return
	}
	if len(s.Filtered) == 0 {
		s.Cursor = -1
		return
	}
	if pos >= len(s.Filtered) {
		pos = len(s.Filtered) - 1
	}
	if pos < 0 {
		pos = 0
	}
	s.Cursor = pos
}

func halfPage(visible int) int {
	step := visible / 2
	if step < 1 {
		step = 1
	}
	return step
}
