package nav

import (
	"fmt"

	"quickswitch/internal/config"
	"quickswitch/internal/fsys"
	"quickswitch/internal/history"
	"quickswitch/internal/item"
)

// Provider feeds the navigation state for one browsing mode.
type Provider interface {
	// Load (re)populates the item list for the mode.
	Load(st *State) error
	// EnterSelected descends into the selected directory and returns
	// the new current directory; files are a no-op ("", nil).
	EnterSelected(st *State) (string, error)
	// Parent ascends to the parent directory; ("", nil) when there is
	// nowhere to go.
	Parent(st *State) (string, error)
	// PreviewPath returns the path the preview pane should show.
	PreviewPath(st *State) (string, bool)
}

// DirProvider browses the filesystem.
type DirProvider struct {
	ShowHidden bool
}

// Load lists the current directory into the state.
func (p *DirProvider) Load(st *State) error {
	items, err := fsys.Load(st.CurrentDir, p.ShowHidden)
	if err != nil {
		return err
	}
	st.SetItems(items)
	return nil
}

// EnterSelected moves into the selected directory. The search is
// cleared, the listing reloaded, and the remembered cursor restored.
func (p *DirProvider) EnterSelected(st *State) (string, error) {
	sel, ok := st.Selected()
	if !ok || !sel.IsDir() {
		return "", nil
	}
	// "." re-selects the current directory; nothing to enter.
	if sel.Path() == st.CurrentDir {
		return "", nil
	}
	if err := p.changeDir(st, sel.Path()); err != nil {
		return "", err
	}
	return st.CurrentDir, nil
}

// Parent moves to the parent directory; drive roots ascend to the
// drives view, the filesystem root stays put.
func (p *DirProvider) Parent(st *State) (string, error) {
	parent, ok := fsys.ParentOf(st.CurrentDir)
	if !ok {
		return "", nil
	}
	if err := p.changeDir(st, parent); err != nil {
		return "", err
	}
	return st.CurrentDir, nil
}

// PreviewPath previews the selected entry.
func (p *DirProvider) PreviewPath(st *State) (string, bool) {
	sel, ok := st.Selected()
	if !ok {
		return "", false
	}
	return sel.Path(), true
}

// changeDir is the single directory transition point: save the old
// cursor, clear the search, load the target, restore the new cursor.
func (p *DirProvider) changeDir(st *State, dir string) error {
	st.SavePosition()

	old := st.CurrentDir
	st.CurrentDir = dir
	st.Searching = false
	st.Search = ""
	if err := p.Load(st); err != nil {
		st.CurrentDir = old
		return fmt.Errorf("enter %s: %w", dir, err)
	}
	st.RestorePosition()
	return nil
}

// HistoryProvider browses the ranked visit history.
type HistoryProvider struct {
	Store *history.Store
	Sort  config.SortMode
}

// Load lists ranked history entries into the state.
func (p *HistoryProvider) Load(st *State) error {
	entries := p.Store.Sorted(p.Sort)
	items := make([]item.DisplayItem, len(entries))
	for i, e := range entries {
		items[i] = item.FromHistory(e)
	}
	st.SetItems(items)
	return nil
}

// EnterSelected returns the selected history path; the caller switches
// to directory mode rooted there.
func (p *HistoryProvider) EnterSelected(st *State) (string, error) {
	sel, ok := st.Selected()
	if !ok {
		return "", nil
	}
	return sel.Path(), nil
}

// Parent is a no-op in history mode.
func (p *HistoryProvider) Parent(st *State) (string, error) {
	return "", nil
}

// PreviewPath previews the selected history directory.
func (p *HistoryProvider) PreviewPath(st *State) (string, bool) {
	sel, ok := st.Selected()
	if !ok {
		return "", false
	}
	return sel.Path(), true
}
