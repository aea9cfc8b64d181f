package preview

import (
	"fmt"
	"image"
	"os"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// imagePreview decodes and renders an image as half-block rows sized to
// the pane. Decode failures degrade to a text preview.
func imagePreview(path string, geom Geometry) Content {
	f, err := os.Open(path)
	if err != nil {
		return textContent(fmt.Sprintf("Error reading image: %v", err))
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return textContent(fmt.Sprintf("Cannot decode image (%s): %v", path, err))
	}

	w, h := geom.Width, geom.Height
	if w <= 0 {
		w = 60
	}
	if h <= 0 {
		h = 20
	}

	lines := renderHalfBlocks(img, w, h)
	header := fmt.Sprintf("%s %dx%d", format, img.Bounds().Dx(), img.Bounds().Dy())
	return Content{Kind: KindImage, Lines: append([]string{header}, lines...)}
}

// renderHalfBlocks scales the image to fit w cells by h rows and renders
// each cell as "▀" with the upper pixel as foreground and the lower as
// background. One terminal row covers two pixel rows.
func renderHalfBlocks(img image.Image, w, h int) []string {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return []string{"(empty image)"}
	}

	// Fit preserving aspect ratio; a cell is roughly twice as tall as wide.
	targetW, targetH := w, h*2
	if srcW*targetH > srcH*targetW {
		targetH = srcH * targetW / srcW
	} else {
		targetW = srcW * targetH / srcH
	}
	if targetW < 1 {
		targetW = 1
	}
	if targetH < 2 {
		targetH = 2
	}

	scaled := resize.Resize(uint(targetW), uint(targetH), img, resize.Lanczos3)
	sb := scaled.Bounds()

	lines := make([]string, 0, (sb.Dy()+1)/2)
	for y := sb.Min.Y; y < sb.Max.Y; y += 2 {
		var row strings.Builder
		for x := sb.Min.X; x < sb.Max.X; x++ {
			top := hexColor(scaled.At(x, y))
			bottom := top
			if y+1 < sb.Max.Y {
				bottom = hexColor(scaled.At(x, y+1))
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom))
			row.WriteString(style.Render("▀"))
		}
		lines = append(lines, row.String())
	}
	return lines
}

func hexColor(c interface{ RGBA() (r, g, b, a uint32) }) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
