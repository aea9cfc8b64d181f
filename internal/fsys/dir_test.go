package fsys

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadOrdering(t *testing.T) {
	dir := t.TempDir()
	mustMkdir(t, filepath.Join(dir, "zeta"))
	mustMkdir(t, filepath.Join(dir, "alpha"))
	mustWrite(t, filepath.Join(dir, "beta.txt"))
	mustWrite(t, filepath.Join(dir, "Alpha.txt"))

	items, err := Load(dir, false)
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, it := range items {
		names = append(names, it.Name())
	}
	want := []string{".", "..", "alpha", "zeta", "Alpha.txt", "beta.txt"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	if !items[0].IsDir() || items[0].Path() != dir {
		t.Errorf("synthetic '.' should point at the directory itself, got %q", items[0].Path())
	}
	if items[1].Path() != filepath.Dir(dir) {
		t.Errorf("'..' path = %q, want parent", items[1].Path())
	}
}

func TestLoadHidden(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, ".hidden"))
	mustWrite(t, filepath.Join(dir, "plain"))

	items, err := Load(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range items {
		if it.Name() == ".hidden" {
			t.Error("hidden entry listed with showHidden=false")
		}
	}

	items, err = Load(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, it := range items {
		if it.Name() == ".hidden" {
			found = true
		}
	}
	if !found {
		t.Error("hidden entry missing with showHidden=true")
	}
}

func TestLoadUnreadable(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing"), false); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestParentOf(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix path semantics")
	}
	if p, ok := ParentOf("/a/b"); !ok || p != "/a" {
		t.Errorf("ParentOf(/a/b) = %q, %v", p, ok)
	}
	if _, ok := ParentOf("/"); ok {
		t.Error("root should have no parent")
	}
	if _, ok := ParentOf(DrivesPath); ok {
		t.Error("drives view should have no parent")
	}
}

func TestDrivesUnavailable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("drives exist on windows")
	}
	if _, err := Load(DrivesPath, false); err == nil {
		t.Error("expected error listing drives off windows")
	}
}
