package app

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"quickswitch/internal/config"
	"quickswitch/internal/mouse"
	"quickswitch/internal/msg"
)

// Update handles all messages and returns the updated model and commands.
func (m *Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return m.handleKey(message)

	case tea.MouseMsg:
		return m.handleMouse(message)

	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		return m, nil

	case previewReadyMsg:
		// Content already landed in the service (or was dropped as
		// stale); this message only forces a repaint.
		return m, nil

	case dirReloadMsg:
		return m, m.reloadListing()

	case msg.ToastMsg:
		m.toast = message.Message
		m.toastIsError = message.IsError
		m.toastDeadline = time.Now().Add(message.Duration)
		return m, tea.Tick(message.Duration, func(time.Time) tea.Msg {
			return toastExpireMsg{}
		})

	case toastExpireMsg:
		if !m.toastDeadline.After(time.Now()) {
			m.toast = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m *Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch key.String() {
		case "?", "esc", "q":
			m.showHelp = false
		}
		return m, nil
	}

	if key.String() == "ctrl+c" {
		return m.quitWithoutSelection()
	}

	if m.state().Searching {
		return m.handleSearchKey(key)
	}

	st := m.state()
	h := m.listHeight()

	switch key.String() {
	case "q":
		return m.quitWithoutSelection()

	case "esc":
		// Esc never silently confirms; without an active search it
		// just leaves.
		return m.quitWithoutSelection()

	case "j", "down":
		if st.MoveDown(h) {
			return m, m.refreshPreview()
		}
		return m, nil

	case "k", "up":
		if st.MoveUp(h) {
			return m, m.refreshPreview()
		}
		return m, nil

	case "ctrl+d":
		if st.HalfPageDown(h) {
			return m, m.refreshPreview()
		}
		return m, nil

	case "ctrl+u":
		if st.HalfPageUp(h) {
			return m, m.refreshPreview()
		}
		return m, nil

	case "g":
		if st.MoveTop(h) {
			return m, m.refreshPreview()
		}
		return m, nil

	case "G":
		if st.MoveBottom(h) {
			return m, m.refreshPreview()
		}
		return m, nil

	case "l", "right":
		return m, m.enterSelected()

	case "h", "left":
		return m, m.goParent()

	case "enter":
		return m.confirmSelection()

	case "/":
		st.Searching = true
		m.search.SetValue("")
		m.search.Focus()
		return m, nil

	case "v":
		return m, m.toggleMode()

	case "s":
		if m.mode == ModeHistory {
			return m, m.cycleSort()
		}
		return m, nil

	case "y":
		return m, m.yankSelected()

	case "?":
		m.showHelp = true
		return m, nil

	case "ctrl+e":
		m.previews.ScrollDown()
		return m, nil

	case "ctrl+y":
		m.previews.ScrollUp()
		return m, nil

	case "ctrl+f":
		m.previews.PageDown(m.listHeight())
		return m, nil

	case "ctrl+b":
		m.previews.PageUp(m.listHeight())
		return m, nil
	}

	return m, nil
}

// handleSearchKey processes input while the search box is focused.
// Arrow keys still move the selection so matches can be walked without
// leaving the search.
func (m *Model) handleSearchKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.state()
	h := m.listHeight()

	switch key.String() {
	case "esc":
		st.ClearSearch()
		m.search.SetValue("")
		m.search.Blur()
		return m, m.refreshPreview()

	case "enter":
		return m.confirmSelection()

	case "down":
		if st.MoveDown(h) {
			return m, m.refreshPreview()
		}
		return m, nil

	case "up":
		if st.MoveUp(h) {
			return m, m.refreshPreview()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(key)
	if m.search.Value() != st.Search {
		st.SetSearch(m.search.Value())
		return m, tea.Batch(cmd, m.refreshPreview())
	}
	return m, cmd
}

// handleMouse routes resolved mouse actions.
func (m *Model) handleMouse(message tea.MouseMsg) (tea.Model, tea.Cmd) {
	action := m.mouse.HandleMouse(message)

	switch action.Type {
	case mouse.ActionClick:
		if row, ok := listRow(action.Region); ok {
			if m.state().Select(row, m.listHeight()) {
				return m, m.refreshPreview()
			}
		}
		return m, nil

	case mouse.ActionDoubleClick:
		row, ok := listRow(action.Region)
		if !ok {
			return m, nil
		}
		st := m.state()
		if !st.Select(row, m.listHeight()) {
			return m, nil
		}
		sel, ok := st.Selected()
		if !ok {
			return m, nil
		}
		if sel.IsDir() {
			return m, m.enterSelected()
		}
		return m.confirmSelection()

	case mouse.ActionScrollUp:
		if action.Region != nil && action.Region.ID == regionPreview {
			m.previews.ScrollUp()
			return m, nil
		}
		if m.state().MoveUp(m.listHeight()) {
			return m, m.refreshPreview()
		}
		return m, nil

	case mouse.ActionScrollDown:
		if action.Region != nil && action.Region.ID == regionPreview {
			m.previews.ScrollDown()
			return m, nil
		}
		if m.state().MoveDown(m.listHeight()) {
			return m, m.refreshPreview()
		}
		return m, nil
	}

	return m, nil
}

// listRow extracts the filtered row index from a list region.
func listRow(r *mouse.Region) (int, bool) {
	if r == nil || !strings.HasPrefix(r.ID, regionListRow) {
		return 0, false
	}
	row, ok := r.Data.(int)
	return row, ok
}

// enterSelected descends into the selected directory, or in history
// mode jumps to the selected path in normal mode. The jump counts as a
// visit and is recorded before switching.
func (m *Model) enterSelected() tea.Cmd {
	if m.mode == ModeHistory {
		path, err := m.provider().EnterSelected(m.histNav)
		if err != nil || path == "" {
			return nil
		}
		if err := m.store.Add(path); err != nil {
			m.logger.Warn("history write failed", "path", path, "error", err)
		}
		return m.jumpToDirectory(path)
	}

	dir, err := m.dirProv.EnterSelected(m.dirNav)
	if err != nil {
		m.logger.Warn("enter directory failed", "error", err)
		return msg.ShowErrorToast(err.Error(), 3*time.Second)
	}
	if dir == "" {
		return nil
	}
	return m.afterDirChange()
}

// goParent ascends to the parent directory. In history mode it returns
// to browsing without changing the current directory.
func (m *Model) goParent() tea.Cmd {
	if m.mode == ModeHistory {
		return m.toggleMode()
	}
	dir, err := m.dirProv.Parent(m.dirNav)
	if err != nil {
		m.logger.Warn("parent failed", "error", err)
		return msg.ShowErrorToast(err.Error(), 3*time.Second)
	}
	if dir == "" {
		return nil
	}
	return m.afterDirChange()
}

// jumpToDirectory switches to normal mode rooted at path.
func (m *Model) jumpToDirectory(path string) tea.Cmd {
	m.mode = ModeNormal
	m.histNav.ClearSearch()
	m.dirNav.CurrentDir = path
	m.dirNav.ClearSearch()
	m.search.SetValue("")
	m.search.Blur()
	if err := m.dirProv.Load(m.dirNav); err != nil {
		m.logger.Warn("jump failed", "path", path, "error", err)
		return msg.ShowErrorToast(err.Error(), 3*time.Second)
	}
	m.dirNav.RestorePosition()
	return m.afterDirChange()
}

// afterDirChange re-arms the watcher and regenerates the preview.
func (m *Model) afterDirChange() tea.Cmd {
	m.search.SetValue("")
	m.search.Blur()
	m.previews.Clear()
	var cmds []tea.Cmd
	if cmd := m.watcher.watch(m.dirNav.CurrentDir); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.refreshPreview(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// reloadListing refreshes the current directory after a filesystem
// event, clamping the cursor.
func (m *Model) reloadListing() tea.Cmd {
	if m.mode != ModeNormal {
		return m.watcher.wait()
	}
	st := m.dirNav
	cursor := st.Cursor
	if err := m.dirProv.Load(st); err != nil {
		m.logger.Warn("reload failed", "dir", st.CurrentDir, "error", err)
		return m.watcher.wait()
	}
	st.Search = m.search.Value()
	st.ApplyFilter()
	if cursor >= 0 && len(st.Filtered) > 0 {
		if cursor >= len(st.Filtered) {
			cursor = len(st.Filtered) - 1
		}
		st.Select(cursor, m.listHeight())
	}
	return tea.Batch(m.watcher.wait(), m.refreshPreview())
}

// confirmSelection emits the chosen path and exits. Directories confirm
// themselves; files confirm their containing directory.
func (m *Model) confirmSelection() (tea.Model, tea.Cmd) {
	st := m.state()
	sel, ok := st.Selected()
	if !ok {
		return m, nil
	}

	if sel.IsDir() {
		m.result = sel.Path()
	} else {
		m.result = st.CurrentDir
	}

	if err := m.store.Add(m.result); err != nil {
		// Never block the exit on a history write.
		m.logger.Warn("history write failed", "error", err)
	}

	m.watcher.close()
	return m, tea.Quit
}

func (m *Model) quitWithoutSelection() (tea.Model, tea.Cmd) {
	m.watcher.close()
	return m, tea.Quit
}

// toggleMode switches between normal and history browsing. Filters
// never leak across modes.
func (m *Model) toggleMode() tea.Cmd {
	m.dirNav.ClearSearch()
	m.histNav.ClearSearch()
	m.search.SetValue("")
	m.search.Blur()

	if m.mode == ModeNormal {
		m.mode = ModeHistory
	} else {
		m.mode = ModeNormal
	}

	if err := m.provider().Load(m.state()); err != nil {
		m.logger.Warn("mode switch load failed", "error", err)
		return msg.ShowErrorToast(err.Error(), 3*time.Second)
	}
	m.previews.Clear()
	return m.refreshPreview()
}

// cycleSort advances the history sort mode.
func (m *Model) cycleSort() tea.Cmd {
	m.histSrt = config.NextSort(m.histSrt)
	if err := m.provider().Load(m.histNav); err != nil {
		m.logger.Warn("sort reload failed", "error", err)
		return nil
	}
	return tea.Batch(
		msg.ShowToast("sort: "+string(m.histSrt), 2*time.Second),
		m.refreshPreview(),
	)
}

// yankSelected copies the selected path to the clipboard.
func (m *Model) yankSelected() tea.Cmd {
	sel, ok := m.state().Selected()
	if !ok {
		return nil
	}
	if err := clipboard.WriteAll(sel.Path()); err != nil {
		return msg.ShowErrorToast("clipboard unavailable", 2*time.Second)
	}
	return msg.ShowToast("copied "+sel.Path(), 2*time.Second)
}
