// Package preview generates and holds the content shown in the preview
// pane. Generation runs on background goroutines; the Service arbitrates
// which result is current.
package preview

import "sync"

// Kind classifies preview content.
type Kind int

const (
	KindText Kind = iota
	KindImage
)

// Content is renderable preview content. Lines are pre-rendered rows;
// image previews carry ANSI half-block rows.
type Content struct {
	Kind  Kind
	Lines []string
}

// Snapshot is a copy of the current preview for rendering.
type Snapshot struct {
	Path    string
	Title   string
	Content Content
	Scroll  int
}

const (
	loadingText = "Loading preview..."
	noSelection = "No file selected"
)

// Service holds the current preview. A generator publishes its result
// only while the identity it was started for is still current; anything
// else is stale and dropped. Staleness, not cancellation, is the policy:
// an outdated generator runs to completion and its output is discarded.
type Service struct {
	mu      sync.RWMutex
	path    string
	title   string
	content Content
	scroll  int
}

// NewService returns a cleared service.
func NewService() *Service {
	s := &Service{}
	s.Clear()
	return s
}

// Begin marks path as the current preview identity and installs the
// loading placeholder. Call synchronously before starting a generator.
func (s *Service) Begin(path, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = path
	s.title = title
	s.content = Content{Kind: KindText, Lines: []string{loadingText}}
	s.scroll = 0
}

// Publish stores generated content if path is still the current
// identity. Returns false when the result was stale.
func (s *Service) Publish(path, title string, c Content) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if path != s.path {
		return false
	}
	s.title = title
	s.content = c
	s.scroll = 0
	return true
}

// Clear resets to the no-selection state.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = ""
	s.title = ""
	s.content = Content{Kind: KindText, Lines: []string{noSelection}}
	s.scroll = 0
}

// Snapshot returns a copy of the current state.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lines := make([]string, len(s.content.Lines))
	copy(lines, s.content.Lines)
	return Snapshot{
		Path:    s.path,
		Title:   s.title,
		Content: Content{Kind: s.content.Kind, Lines: lines},
		Scroll:  s.scroll,
	}
}

// Path returns the current preview identity.
func (s *Service) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// ScrollUp moves the view up one line.
func (s *Service) ScrollUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scroll > 0 {
		s.scroll--
	}
}

// ScrollDown moves the view down one line, never past the last line.
func (s *Service) ScrollDown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scroll+1 < len(s.content.Lines) {
		s.scroll++
	}
}

// PageUp moves up half the visible height.
func (s *Service) PageUp(visible int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scroll -= pageStep(visible)
	if s.scroll < 0 {
		s.scroll = 0
	}
}

// PageDown moves down half the visible height, clamped so the last page
// stays full.
func (s *Service) PageDown(visible int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	max := len(s.content.Lines) - visible
	if max < 0 {
		max = 0
	}
	s.scroll += pageStep(visible)
	if s.scroll > max {
		s.scroll = max
	}
}

// ResetScroll jumps back to the top.
func (s *Service) ResetScroll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scroll = 0
}

func pageStep(visible int) int {
	step := visible / 2
	if step < 1 {
		step = 1
	}
	return step
}
