package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"quickswitch/internal/styles"
)

// Hit-test region IDs. List rows append their filtered row index.
const (
	regionListRow = "list:"
	regionList    = "list"
	regionPreview = "preview"
	regionStatus  = "status"
)

// View renders the two-pane layout and rebuilds the mouse hit map.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	m.mouse.Clear()

	if m.showHelp {
		return m.renderHelp()
	}

	listW := m.listWidth()
	previewW := m.width - listW - 4
	if previewW < 10 {
		previewW = 10
	}
	h := m.listHeight()

	list := m.renderList(listW, h)
	previewPane := m.renderPreview(previewW, h)

	// Interior starts inside the panel border.
	m.mouse.HitMap.AddRect(regionList, 1, 2, listW, h, nil)
	m.addListRowRegions(listW, h)
	m.mouse.HitMap.AddRect(regionPreview, listW+3, 2, previewW, h, nil)

	panes := lipgloss.JoinHorizontal(lipgloss.Top, list, previewPane)
	statusY := lipgloss.Height(panes) + 1
	m.mouse.HitMap.AddRect(regionStatus, 0, statusY, m.width, 1, nil)

	sections := []string{m.renderSearchBar(), panes, m.renderStatusBar()}
	out := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.toast != "" {
		out = m.overlayToast(out)
	}
	return out
}

// renderSearchBar shows the filter input or a hint line.
func (m *Model) renderSearchBar() string {
	st := m.state()
	if st.Searching {
		return styles.SearchPrompt.Render("search ") + m.search.View()
	}
	if st.Search != "" {
		return styles.SearchPrompt.Render("filter: " + st.Search)
	}
	return styles.HelpText.Render("press / to filter, ? for help")
}

// renderList renders the filtered item rows for the active mode.
func (m *Model) renderList(w, h int) string {
	st := m.state()
	rows := make([]string, 0, h)

	end := st.Offset + h
	if end > len(st.Filtered) {
		end = len(st.Filtered)
	}
	for row := st.Offset; row < end; row++ {
		it := st.Items[st.Filtered[row]]
		name := it.Name()
		if it.IsDir() && it.File != nil && name != "." && name != ".." {
			name += "/"
		}
		name = runewidth.Truncate(name, w-2, "…")

		var style lipgloss.Style
		switch {
		case row == st.Cursor:
			style = styles.RowSelected
		case it.File != nil && (it.Name() == "." || it.Name() == ".."):
			style = styles.RowSynthetic
		case it.IsDir():
			style = styles.RowDir
		default:
			style = styles.RowFile
		}
		rows = append(rows, style.Width(w-2).Render(name))
	}
	for len(rows) < h {
		rows = append(rows, "")
	}

	title := m.listTitle()
	body := strings.Join(rows, "\n")
	panel := styles.PanelActive.Width(w).Height(h)
	return panel.Render(styles.PanelTitle.Render(title) + "\n" + body)
}

func (m *Model) listTitle() string {
	if m.mode == ModeHistory {
		return fmt.Sprintf("History (%s)", m.histSrt)
	}
	return m.dirNav.CurrentDir
}

// addListRowRegions registers a hit region per visible row carrying its
// filtered row index.
func (m *Model) addListRowRegions(w, h int) {
	st := m.state()
	end := st.Offset + h
	if end > len(st.Filtered) {
		end = len(st.Filtered)
	}
	for row := st.Offset; row < end; row++ {
		y := 3 + (row - st.Offset) // border + search bar + panel title
		m.mouse.HitMap.AddRect(fmt.Sprintf("%s%d", regionListRow, row), 1, y, w, 1, row)
	}
}

// renderPreview renders the preview snapshot with its scroll window.
func (m *Model) renderPreview(w, h int) string {
	snap := m.previews.Snapshot()

	lines := snap.Content.Lines
	start := snap.Scroll
	if start > len(lines) {
		start = len(lines)
	}
	end := start + h
	if end > len(lines) {
		end = len(lines)
	}

	visible := make([]string, 0, h)
	for _, l := range lines[start:end] {
		if ansi.StringWidth(l) > w-2 {
			l = ansi.Truncate(l, w-2, "…")
		}
		visible = append(visible, l)
	}
	for len(visible) < h {
		visible = append(visible, "")
	}

	title := snap.Title
	if title == "" {
		title = "Preview"
	}
	panel := styles.PanelInactive.Width(w).Height(h)
	return panel.Render(styles.PanelTitle.Render(title) + "\n" + strings.Join(visible, "\n"))
}

// renderStatusBar shows mode, match count, and key hints.
func (m *Model) renderStatusBar() string {
	st := m.state()
	mode := styles.StatusMode.Render(m.mode.String())

	count := fmt.Sprintf(" %d/%d ", len(st.Filtered), len(st.Items))
	hints := "enter select  v history  q quit"
	if m.mode == ModeHistory {
		hints = "enter jump  s sort  v browse  q quit"
	}

	bar := mode + styles.StatusBar.Render(count+hints)
	return styles.StatusBar.Width(m.width).Render(bar)
}

func (m *Model) renderHelp() string {
	rows := []struct{ key, desc string }{
		{"j/k, arrows", "move selection"},
		{"ctrl+d / ctrl+u", "half page down / up"},
		{"g / G", "first / last entry"},
		{"l, right", "enter directory"},
		{"h, left", "parent directory"},
		{"enter", "select and exit"},
		{"/", "filter the listing"},
		{"v", "toggle history mode"},
		{"s", "cycle history sort"},
		{"y", "copy path to clipboard"},
		{"ctrl+e / ctrl+y", "scroll preview"},
		{"ctrl+f / ctrl+b", "page preview"},
		{"q, esc", "quit without selecting"},
	}

	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render("quickswitch keys") + "\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			styles.HelpKey.Render(runewidth.FillRight(r.key, 18)),
			styles.HelpText.Render(r.desc)))
	}
	b.WriteString("\n" + styles.HelpText.Render("press ? or esc to close"))
	return styles.PanelActive.Width(m.width - 2).Render(b.String())
}

// overlayToast draws the toast over the bottom-right corner.
func (m *Model) overlayToast(base string) string {
	style := styles.Toast
	if m.toastIsError {
		style = styles.ToastError
	}
	toast := style.Render(m.toast)
	return lipgloss.JoinVertical(lipgloss.Right, base, toast)
}
