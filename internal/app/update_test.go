package app

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"quickswitch/internal/config"
	"quickswitch/internal/history"
)

func newTestModel(t *testing.T) (*Model, string) {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "alpha", "inner"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "beta"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.UI.PreviewEnabled = false // keep tests free of generator goroutines
	store := history.NewStore(t.TempDir(), cfg.History)

	m := New(Options{
		Config:   cfg,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Store:    store,
		StartDir: root,
		Mode:     ModeNormal,
	})
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, root
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+d":
			msg = tea.KeyMsg{Type: tea.KeyCtrlD}
		case "ctrl+u":
			msg = tea.KeyMsg{Type: tea.KeyCtrlU}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func moveTo(t *testing.T, m *Model, name string) {
	t.Helper()
	st := m.state()
	for row, idx := range st.Filtered {
		if st.Items[idx].Name() == name {
			st.Select(row, m.listHeight())
			return
		}
	}
	t.Fatalf("no row named %q", name)
}

func TestKeyNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	st := m.state()

	start := st.Cursor
	press(m, "j", "j")
	if st.Cursor != start+2 {
		t.Errorf("cursor = %d, want %d", st.Cursor, start+2)
	}
	press(m, "k")
	if st.Cursor != start+1 {
		t.Errorf("cursor = %d, want %d", st.Cursor, start+1)
	}

	press(m, "G")
	if st.Cursor != len(st.Filtered)-1 {
		t.Errorf("G: cursor = %d", st.Cursor)
	}
	press(m, "g")
	if st.Cursor != 0 {
		t.Errorf("g: cursor = %d", st.Cursor)
	}
}

func TestEnterDirectoryKey(t *testing.T) {
	m, root := newTestModel(t)
	moveTo(t, m, "alpha")
	press(m, "l")

	if m.dirNav.CurrentDir != filepath.Join(root, "alpha") {
		t.Errorf("CurrentDir = %q", m.dirNav.CurrentDir)
	}

	press(m, "h")
	if m.dirNav.CurrentDir != root {
		t.Errorf("CurrentDir = %q after parent", m.dirNav.CurrentDir)
	}
}

func TestConfirmDirectory(t *testing.T) {
	m, root := newTestModel(t)
	moveTo(t, m, "beta")
	press(m, "enter")

	if m.Result() != filepath.Join(root, "beta") {
		t.Errorf("Result = %q", m.Result())
	}

	// The visit was recorded.
	entries := m.store.Sorted(config.SortRecent)
	if len(entries) != 1 || entries[0].Path != m.Result() {
		t.Errorf("history = %+v", entries)
	}
}

func TestConfirmFileSelectsContainingDir(t *testing.T) {
	m, root := newTestModel(t)
	moveTo(t, m, "notes.txt")
	press(m, "enter")

	if m.Result() != root {
		t.Errorf("Result = %q, want containing dir %q", m.Result(), root)
	}
}

func TestQuitWithoutSelection(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "q")
	if m.Result() != "" {
		t.Errorf("Result = %q, want empty", m.Result())
	}
}

func TestEscNeverConfirms(t *testing.T) {
	m, _ := newTestModel(t)
	moveTo(t, m, "beta")
	press(m, "esc")
	if m.Result() != "" {
		t.Errorf("esc confirmed %q", m.Result())
	}
}

func TestSearchFlow(t *testing.T) {
	m, _ := newTestModel(t)
	st := m.state()

	press(m, "/")
	if !st.Searching {
		t.Fatal("/ should start search")
	}

	press(m, "b", "e")
	if st.Search != "be" {
		t.Errorf("Search = %q", st.Search)
	}
	if len(st.Filtered) != 1 {
		t.Errorf("filtered = %d, want just beta", len(st.Filtered))
	}
	if st.Cursor != -1 {
		t.Errorf("cursor = %d, want -1 until navigated", st.Cursor)
	}

	press(m, "down")
	sel, _ := st.Selected()
	if sel.Name() != "beta" {
		t.Errorf("selected %q", sel.Name())
	}

	press(m, "esc")
	if st.Searching || st.Search != "" {
		t.Error("esc should clear the search")
	}
	if len(st.Filtered) != len(st.Items) {
		t.Error("filter should be dropped")
	}
}

func TestEscInSearchOnlyClearsSearch(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "/", "x", "esc")
	if m.Result() != "" {
		t.Error("esc in search must not confirm")
	}
	// The app is still running: a second esc quits, still empty.
	press(m, "esc")
	if m.Result() != "" {
		t.Error("quit result should stay empty")
	}
}

func TestSearchEnterConfirms(t *testing.T) {
	m, root := newTestModel(t)
	press(m, "/", "b", "e", "down", "enter")
	if m.Result() != filepath.Join(root, "beta") {
		t.Errorf("Result = %q", m.Result())
	}
}

func TestSearchEnterWithoutSelectionDoesNothing(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "/", "b", "e", "enter")
	if m.Result() != "" {
		t.Errorf("enter with no selection confirmed %q", m.Result())
	}
}

func TestModeToggleClearsFilter(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "/", "b")
	press(m, "esc")

	before := len(m.dirNav.Filtered)
	press(m, "v")
	if m.mode != ModeHistory {
		t.Fatal("v should switch to history mode")
	}
	if m.histNav.Search != "" {
		t.Error("filter leaked into history mode")
	}

	press(m, "v")
	if m.mode != ModeNormal {
		t.Fatal("v should switch back")
	}
	if len(m.dirNav.Filtered) != before {
		t.Errorf("filtered = %d, want %d", len(m.dirNav.Filtered), before)
	}
}

func TestHistoryModeJump(t *testing.T) {
	m, root := newTestModel(t)
	target := filepath.Join(root, "alpha")
	if err := m.store.Add(target); err != nil {
		t.Fatal(err)
	}

	press(m, "v")
	if len(m.histNav.Items) != 1 {
		t.Fatalf("history items = %d", len(m.histNav.Items))
	}

	press(m, "j", "l")
	if m.mode != ModeNormal {
		t.Error("jump should land in normal mode")
	}
	if m.dirNav.CurrentDir != target {
		t.Errorf("CurrentDir = %q, want %q", m.dirNav.CurrentDir, target)
	}
}

func TestHistoryJumpRecordsVisit(t *testing.T) {
	m, root := newTestModel(t)
	target := filepath.Join(root, "alpha")
	if err := m.store.Add(target); err != nil {
		t.Fatal(err)
	}

	press(m, "v", "j", "l")
	if m.dirNav.CurrentDir != target {
		t.Fatalf("CurrentDir = %q, want %q", m.dirNav.CurrentDir, target)
	}

	entries := m.store.Sorted(config.SortRecent)
	if len(entries) != 1 {
		t.Fatalf("history entries = %d", len(entries))
	}
	if entries[0].Frequency != 2 {
		t.Errorf("Frequency = %d, want 2 (jump counts as a visit)", entries[0].Frequency)
	}
}

func TestParentKeyLeavesHistoryMode(t *testing.T) {
	m, root := newTestModel(t)
	if err := m.store.Add(filepath.Join(root, "alpha")); err != nil {
		t.Fatal(err)
	}

	press(m, "v")
	if m.mode != ModeHistory {
		t.Fatal("precondition: history mode")
	}

	press(m, "h")
	if m.mode != ModeNormal {
		t.Error("h in history mode should return to browsing")
	}
	if m.dirNav.CurrentDir != root {
		t.Errorf("CurrentDir = %q, want unchanged %q", m.dirNav.CurrentDir, root)
	}
}

func TestHistorySortCycle(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "v")
	before := m.histSrt
	press(m, "s")
	if m.histSrt == before {
		t.Error("s should cycle the sort mode")
	}

	// s is history-only.
	press(m, "v")
	current := m.histSrt
	press(m, "s")
	if m.histSrt != current {
		t.Error("s should do nothing in normal mode")
	}
}

func TestMouseClickAndDoubleClick(t *testing.T) {
	m, root := newTestModel(t)
	m.View() // fill the hit map

	moveTo(t, m, "alpha")
	row := m.state().Cursor
	y := 3 + row - m.state().Offset

	click := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 2, Y: y}
	m.Update(click)
	sel, _ := m.state().Selected()
	if sel.Name() != "alpha" {
		t.Fatalf("click selected %q", sel.Name())
	}

	m.Update(click)
	if m.dirNav.CurrentDir != filepath.Join(root, "alpha") {
		t.Errorf("double click should enter, CurrentDir = %q", m.dirNav.CurrentDir)
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "?")
	if !m.showHelp {
		t.Fatal("? should open help")
	}
	// Keys are swallowed while help is open.
	press(m, "j")
	if !m.showHelp {
		t.Fatal("plain key should not close help")
	}
	press(m, "?")
	if m.showHelp {
		t.Error("? should close help")
	}
}
