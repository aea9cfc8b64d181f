// Package mouse provides hit-testing and gesture handling for terminal
// mouse events: named screen regions, click/double-click resolution,
// wheel scrolling, and drag tracking.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Rect is a screen rectangle in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point is inside the rect. The right and
// bottom edges are exclusive; a zero-size rect contains nothing.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named clickable area with optional payload.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap maps screen coordinates to regions. Views rebuild it each
// frame; Test resolves the topmost (last added) region under a point.
type HitMap struct {
	regions []Region
}

// NewHitMap creates an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add registers a region.
func (m *HitMap) Add(id string, r Rect, data any) {
	m.regions = append(m.regions, Region{ID: id, Rect: r, Data: data})
}

// AddRect registers a region from raw coordinates.
func (m *HitMap) AddRect(id string, x, y, w, h int, data any) {
	m.Add(id, Rect{X: x, Y: y, W: w, H: h}, data)
}

// Test returns the last-added region containing the point, or nil.
func (m *HitMap) Test(x, y int) *Region {
	for i := len(m.regions) - 1; i >= 0; i-- {
		if m.regions[i].Rect.Contains(x, y) {
			r := m.regions[i]
			return &r
		}
	}
	return nil
}

// Clear removes all regions.
func (m *HitMap) Clear() {
	m.regions = m.regions[:0]
}

// Regions returns a copy of the registered regions.
func (m *HitMap) Regions() []Region {
	out := make([]Region, len(m.regions))
	copy(out, m.regions)
	return out
}

// ActionType classifies a resolved mouse action.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
	ActionDrag
	ActionDragEnd
	ActionHover
)

// Action is the result of handling a mouse message.
type Action struct {
	Type   ActionType
	Region *Region
	X, Y   int
	Delta  int
	DragDX int
	DragDY int
}

// ClickResult is the result of resolving a single click.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// DoubleClickWindow is the default maximum gap between the two clicks
// of a double click.
const DoubleClickWindow = 150 * time.Millisecond

// Handler tracks click and drag state across mouse messages.
type Handler struct {
	HitMap *HitMap

	// Window is the double-click time window.
	Window time.Duration
	// Now is the clock, replaceable in tests.
	Now func() time.Time

	lastClickAt     time.Time
	lastClickX      int
	lastClickY      int
	lastClickRegion string
	haveLastClick   bool

	dragging       bool
	dragStartX     int
	dragStartY     int
	dragRegion     string
	dragStartValue int
}

// NewHandler creates a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{
		HitMap: NewHitMap(),
		Window: DoubleClickWindow,
		Now:    time.Now,
	}
}

// Clear resets the hit map.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}

// HandleClick resolves a left click at the point, detecting double
// clicks: same cell, same region, within the window. The tracker
// updates on every click and resets after a double click fires.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	regionID := ""
	if region != nil {
		regionID = region.ID
	}

	now := h.Now()
	double := h.haveLastClick &&
		now.Sub(h.lastClickAt) <= h.Window &&
		x == h.lastClickX && y == h.lastClickY &&
		regionID == h.lastClickRegion

	if double {
		h.haveLastClick = false
	} else {
		h.lastClickAt = now
		h.lastClickX = x
		h.lastClickY = y
		h.lastClickRegion = regionID
		h.haveLastClick = true
	}

	return ClickResult{Region: region, IsDoubleClick: double}
}

// StartDrag begins a drag anchored at the point, remembering the region
// and a caller-defined starting value.
func (h *Handler) StartDrag(x, y int, region string, startValue int) {
	h.dragging = true
	h.dragStartX = x
	h.dragStartY = y
	h.dragRegion = region
	h.dragStartValue = startValue
}

// EndDrag finishes the drag.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
}

// IsDragging reports whether a drag is active.
func (h *Handler) IsDragging() bool {
	return h.dragging
}

// DragRegion returns the active drag region ID.
func (h *Handler) DragRegion() string {
	return h.dragRegion
}

// DragStartValue returns the value captured at StartDrag.
func (h *Handler) DragStartValue() int {
	return h.dragStartValue
}

// DragDelta returns the offset from the drag anchor.
func (h *Handler) DragDelta(x, y int) (int, int) {
	return x - h.dragStartX, y - h.dragStartY
}

// HandleMouse turns a bubbletea mouse message into an Action.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			res := h.HandleClick(msg.X, msg.Y)
			if res.Region == nil {
				return Action{Type: ActionNone, X: msg.X, Y: msg.Y}
			}
			t := ActionClick
			if res.IsDoubleClick {
				t = ActionDoubleClick
			}
			return Action{Type: t, Region: res.Region, X: msg.X, Y: msg.Y}

		case tea.MouseButtonWheelUp:
			if msg.Shift {
				return Action{Type: ActionScrollLeft, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y, Delta: -3}
			}
			return Action{Type: ActionScrollUp, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y, Delta: -3}

		case tea.MouseButtonWheelDown:
			if msg.Shift {
				return Action{Type: ActionScrollRight, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y, Delta: 3}
			}
			return Action{Type: ActionScrollDown, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y, Delta: 3}

		case tea.MouseButtonWheelLeft:
			// Mac natural scrolling inverts the horizontal axis.
			return Action{Type: ActionScrollRight, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y, Delta: 3}

		case tea.MouseButtonWheelRight:
			return Action{Type: ActionScrollLeft, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y, Delta: -3}
		}

	case tea.MouseActionMotion:
		if h.dragging {
			dx, dy := h.DragDelta(msg.X, msg.Y)
			return Action{Type: ActionDrag, X: msg.X, Y: msg.Y, DragDX: dx, DragDY: dy}
		}
		return Action{Type: ActionHover, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y}

	case tea.MouseActionRelease:
		if h.dragging {
			h.EndDrag()
			return Action{Type: ActionDragEnd, X: msg.X, Y: msg.Y}
		}
	}

	return Action{Type: ActionNone, X: msg.X, Y: msg.Y}
}
