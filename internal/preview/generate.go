package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"quickswitch/internal/fsys"
)

const (
	// maxTextSize is the largest file rendered as text.
	maxTextSize = 5 * 1024 * 1024
	// maxDirEntries caps the directory listing before the "+N more" trailer.
	maxDirEntries = 200
)

// Geometry is the preview pane size in cells.
type Geometry struct {
	Width  int
	Height int
}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".bmp": true, ".webp": true, ".tiff": true, ".tif": true,
	".svg": true, ".ico": true, ".avif": true,
}

// Generate produces preview content for path. Dispatch order: directory,
// image extension, PDF, text, oversize, binary fallback. Every failure
// renders as descriptive text; Generate never returns an error.
func Generate(path string, geom Geometry) (string, Content) {
	if path == fsys.DrivesPath {
		return "Drives", drivesPreview()
	}

	info, err := os.Stat(path)
	if err != nil {
		return filepath.Base(path), textContent(fmt.Sprintf("Error reading file: %v", err))
	}

	if info.IsDir() {
		return filepath.Base(path) + "/", directoryPreview(path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case imageExts[ext]:
		return filepath.Base(path), imagePreview(path, geom)
	case ext == ".pdf":
		return filepath.Base(path), pdfPreview(path)
	}

	if info.Size() > maxTextSize {
		return filepath.Base(path), largeFilePreview(path, info)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return filepath.Base(path), textContent(fmt.Sprintf("Error reading file: %v", err))
	}

	if utf8.Valid(data) {
		return filepath.Base(path), textPreview(path, string(data), geom)
	}
	return filepath.Base(path), binaryPreview(info)
}

func textContent(s string) Content {
	return Content{Kind: KindText, Lines: strings.Split(s, "\n")}
}

// directoryPreview lists the directory, dirs first, capped with a
// trailer when long.
func directoryPreview(dir string) Content {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return textContent(fmt.Sprintf("Error reading directory: %v", err))
	}
	if len(entries) == 0 {
		return textContent("Empty directory")
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})

	var lines []string
	shown := entries
	if len(shown) > maxDirEntries {
		shown = shown[:maxDirEntries]
	}
	for _, e := range shown {
		if e.IsDir() {
			lines = append(lines, e.Name()+"/")
		} else {
			lines = append(lines, e.Name())
		}
	}
	if extra := len(entries) - len(shown); extra > 0 {
		lines = append(lines, fmt.Sprintf("+%d more", extra))
	}
	return Content{Kind: KindText, Lines: lines}
}

func drivesPreview() Content {
	items, err := fsys.Load(fsys.DrivesPath, false)
	if err != nil {
		return textContent(fmt.Sprintf("Error listing drives: %v", err))
	}
	var lines []string
	for _, it := range items {
		lines = append(lines, it.Name())
	}
	if len(lines) == 0 {
		return textContent("No drives found")
	}
	return Content{Kind: KindText, Lines: lines}
}

// largeFilePreview shows metadata only for files above the text cap.
func largeFilePreview(path string, info os.FileInfo) Content {
	lines := []string{
		"Large File",
		"",
		fmt.Sprintf("Name: %s", filepath.Base(path)),
		fmt.Sprintf("Size: %s", humanize.Bytes(uint64(info.Size()))),
		fmt.Sprintf("Modified: %s", info.ModTime().Format("2006-01-02 15:04:05")),
		"",
		fmt.Sprintf("File exceeds the %s preview limit.", humanize.Bytes(uint64(maxTextSize))),
	}
	return Content{Kind: KindText, Lines: lines}
}

func binaryPreview(info os.FileInfo) Content {
	lines := []string{
		"Binary File",
		"",
		fmt.Sprintf("Size: %s", humanize.Bytes(uint64(info.Size()))),
	}
	return Content{Kind: KindText, Lines: lines}
}
