package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfPreview extracts plain text from a PDF. Extraction failures render
// as a descriptive preview rather than an error.
func pdfPreview(path string) (c Content) {
	// The pdf package panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			c = textContent(fmt.Sprintf("Cannot extract PDF text: %v", r))
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return textContent(fmt.Sprintf("Cannot open PDF: %v", err))
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return textContent(fmt.Sprintf("Cannot extract PDF text: %v", err))
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return textContent(fmt.Sprintf("Cannot extract PDF text: %v", err))
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return textContent("PDF contains no extractable text")
	}

	rawLines := strings.Split(text, "\n")
	width := numberWidth(len(rawLines))
	lines := make([]string, len(rawLines))
	for i, l := range rawLines {
		lines[i] = fmt.Sprintf("%*d %s", width, i+1, l)
	}
	return Content{Kind: KindText, Lines: lines}
}
