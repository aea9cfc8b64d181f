// Package app wires the navigator UI: browsing modes, key and mouse
// handling, the preview pipeline, and the two-pane view.
package app

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quickswitch/internal/config"
	"quickswitch/internal/history"
	"quickswitch/internal/mouse"
	"quickswitch/internal/nav"
	"quickswitch/internal/preview"
)

// Mode is the active browsing mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeHistory
)

func (m Mode) String() string {
	if m == ModeHistory {
		return "HISTORY"
	}
	return "NORMAL"
}

// Model is the root bubbletea model.
type Model struct {
	cfg    *config.Config
	logger *slog.Logger

	mode    Mode
	dirNav  *nav.State
	histNav *nav.State
	dirProv *nav.DirProvider
	histSrt config.SortMode
	store   *history.Store

	previews *preview.Service
	search   textinput.Model
	mouse    *mouse.Handler
	watcher  *watcher

	width  int
	height int
	ready  bool

	showHelp      bool
	toast         string
	toastIsError  bool
	toastDeadline time.Time

	// result is the confirmed path, empty when quitting without one.
	result string
	err    error
}

// Options configures a new model.
type Options struct {
	Config   *config.Config
	Logger   *slog.Logger
	Store    *history.Store
	StartDir string
	Mode     Mode
}

// New creates the root model.
func New(opts Options) *Model {
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "filter"
	search.CharLimit = 256

	handler := mouse.NewHandler()
	handler.Window = time.Duration(opts.Config.UI.DoubleClickMs) * time.Millisecond

	return &Model{
		cfg:      opts.Config,
		logger:   opts.Logger,
		mode:     opts.Mode,
		dirNav:   nav.NewState(opts.StartDir),
		histNav:  nav.NewState(""),
		dirProv:  &nav.DirProvider{ShowHidden: opts.Config.UI.ShowHidden},
		histSrt:  opts.Config.History.Sort,
		store:    opts.Store,
		previews: preview.NewService(),
		search:   search,
		mouse:    handler,
		watcher:  newWatcher(opts.Logger),
	}
}

// state returns the navigation state of the active mode.
func (m *Model) state() *nav.State {
	if m.mode == ModeHistory {
		return m.histNav
	}
	return m.dirNav
}

// provider returns the data provider for the active mode.
func (m *Model) provider() nav.Provider {
	if m.mode == ModeHistory {
		return &nav.HistoryProvider{Store: m.store, Sort: m.histSrt}
	}
	return m.dirProv
}

// Result returns the confirmed path, empty when none was selected.
func (m *Model) Result() string {
	return m.result
}

// Err returns a fatal startup error, if any.
func (m *Model) Err() error {
	return m.err
}

// Init loads the initial listing and starts the watcher.
func (m *Model) Init() tea.Cmd {
	if err := m.provider().Load(m.state()); err != nil {
		m.err = err
		return tea.Quit
	}
	var cmds []tea.Cmd
	if m.mode == ModeNormal {
		if cmd := m.watcher.watch(m.dirNav.CurrentDir); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if cmd := m.refreshPreview(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// listHeight is the number of visible list rows.
func (m *Model) listHeight() int {
	// Window minus borders, status bar, and search line.
	h := m.height - 5
	if h < 1 {
		h = 1
	}
	return h
}

// previewGeometry is the preview pane content size.
func (m *Model) previewGeometry() preview.Geometry {
	w := m.width - m.listWidth() - 4
	if w < 10 {
		w = 10
	}
	return preview.Geometry{Width: w, Height: m.listHeight()}
}

func (m *Model) listWidth() int {
	w := m.width * 2 / 5
	if w < 20 {
		w = 20
	}
	return w
}
