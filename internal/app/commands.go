package app

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"quickswitch/internal/preview"
)

// previewReadyMsg repaints after a generator published (or dropped) its
// result.
type previewReadyMsg struct {
	Path string
}

// dirReloadMsg asks for a listing reload after a filesystem event.
type dirReloadMsg struct{}

// toastExpireMsg clears the toast after its deadline.
type toastExpireMsg struct{}

// refreshPreview starts generation for the selected item. Begin runs
// synchronously so the placeholder and identity are in place before the
// goroutine starts; a stale result is dropped by the service.
func (m *Model) refreshPreview() tea.Cmd {
	if !m.cfg.UI.PreviewEnabled {
		return nil
	}
	path, ok := m.provider().PreviewPath(m.state())
	if !ok {
		m.previews.Clear()
		return nil
	}

	m.previews.Begin(path, filepath.Base(path))
	geom := m.previewGeometry()
	svc := m.previews
	return func() tea.Msg {
		title, content := preview.Generate(path, geom)
		svc.Publish(path, title, content)
		return previewReadyMsg{Path: path}
	}
}
