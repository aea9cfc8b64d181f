package preview

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
)

// textPreview renders source text with 1-based line numbers. Markdown
// goes through glamour, recognized source files through chroma; both
// fall back to the escaped plain rendering on failure.
func textPreview(path, content string, geom Geometry) Content {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".md" || ext == ".markdown" {
		if c, ok := markdownPreview(content, geom); ok {
			return c
		}
	}

	body, ok := highlighted(path, content)
	if !ok {
		body = escapeControl(content)
	}

	rawLines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	width := numberWidth(len(rawLines))
	lines := make([]string, len(rawLines))
	for i, l := range rawLines {
		lines[i] = fmt.Sprintf("%*d %s", width, i+1, l)
	}
	return Content{Kind: KindText, Lines: lines}
}

// highlighted runs chroma over recognized source text. Content carrying
// control characters beyond tab and newline takes the escaped plain
// path instead so the rewrites stay visible.
func highlighted(path, content string) (string, bool) {
	if hasUnsafeControl(content) {
		return "", false
	}
	lexer := lexers.Match(path)
	if lexer == nil || lexer.Config().Name == "plaintext" {
		return "", false
	}
	var b strings.Builder
	if err := quick.Highlight(&b, content, lexer.Config().Name, "terminal256", "dracula"); err != nil {
		return "", false
	}
	// ANSI sequences never contain tabs, so rewriting after the fact is safe.
	return strings.ReplaceAll(b.String(), "\t", "→   "), true
}

func hasUnsafeControl(s string) bool {
	for _, r := range s {
		if (r < 0x20 && r != '\n' && r != '\t') || r == 0x7f {
			return true
		}
	}
	return false
}

func markdownPreview(content string, geom Geometry) (Content, bool) {
	width := geom.Width
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return Content{}, false
	}
	out, err := r.Render(content)
	if err != nil {
		return Content{}, false
	}
	return Content{Kind: KindText, Lines: strings.Split(strings.TrimRight(out, "\n"), "\n")}, true
}

// escapeControl rewrites control characters so they render visibly:
// tab becomes an arrow with padding, carriage return and NUL get their
// escape spelling, anything else below 0x20 renders as hex.
func escapeControl(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteRune(r)
		case r == '\t':
			b.WriteString("→   ")
		case r == '\r':
			b.WriteString(`\r`)
		case r == 0:
			b.WriteString(`\0`)
		case r < 0x20 || r == 0x7f:
			b.WriteString(fmt.Sprintf(`\x%02X`, r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func numberWidth(n int) int {
	w := 1
	for n >= 10 {
		n /= 10
		w++
	}
	return w
}
