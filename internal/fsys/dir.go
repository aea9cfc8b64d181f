// Package fsys turns directories into display item lists.
package fsys

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"quickswitch/internal/item"
)

// DrivesPath is the pseudo-directory listing Windows drive letters.
// Ascending past a drive root lands here.
const DrivesPath = "DRIVES:"

// Load reads dir and returns its display items: a synthetic "." first,
// ".." when the directory has a parent, then real entries with
// directories before files, case-sensitive name order within each group.
// Unreadable entries are skipped.
func Load(dir string, showHidden bool) ([]item.DisplayItem, error) {
	if dir == DrivesPath {
		return loadDrives()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	items := make([]item.DisplayItem, 0, len(entries)+2)
	items = append(items, item.FromFile(item.FileItem{Name: ".", Path: dir, IsDir: true}))
	if parent, ok := ParentOf(dir); ok {
		items = append(items, item.FromFile(item.FileItem{Name: "..", Path: parent, IsDir: true}))
	}

	real := make([]item.FileItem, 0, len(entries))
	for _, e := range entries {
		if !showHidden && strings.HasPrefix(e.Name(), ".") {
			continue
		}
		real = append(real, item.FileItem{
			Name:  e.Name(),
			Path:  filepath.Join(dir, e.Name()),
			IsDir: e.IsDir(),
		})
	}
	sort.Slice(real, func(i, j int) bool {
		if real[i].IsDir != real[j].IsDir {
			return real[i].IsDir
		}
		return real[i].Name < real[j].Name
	})
	for _, fi := range real {
		items = append(items, item.FromFile(fi))
	}
	return items, nil
}

// ParentOf returns the parent directory of dir and whether one exists.
// A Windows drive root ("C:\") parents to DrivesPath; "/" and DrivesPath
// have no parent.
func ParentOf(dir string) (string, bool) {
	if dir == DrivesPath {
		return "", false
	}
	if isDriveRoot(dir) {
		return DrivesPath, true
	}
	parent := filepath.Dir(dir)
	if parent == dir {
		return "", false
	}
	return parent, true
}

func isDriveRoot(dir string) bool {
	if runtime.GOOS != "windows" {
		return false
	}
	if len(dir) == 3 && dir[1] == ':' && (dir[2] == '\\' || dir[2] == '/') {
		return true
	}
	return len(dir) == 2 && dir[1] == ':'
}

// loadDrives checks A: through Z: and lists the ones that exist.
func loadDrives() ([]item.DisplayItem, error) {
	if runtime.GOOS != "windows" {
		return nil, fmt.Errorf("drive listing is only available on windows")
	}
	var items []item.DisplayItem
	for c := 'A'; c <= 'Z'; c++ {
		root := string(c) + ":\\"
		if _, err := os.Stat(root); err == nil {
			items = append(items, item.FromFile(item.FileItem{Name: root, Path: root, IsDir: true}))
		}
	}
	return items, nil
}
