package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/gametools-console/internal/console"
	"github.com/atomicstack/gametools-console/internal/layout"
	"github.com/atomicstack/gametools-console/internal/logging/events"
)

func (m *Model) setEditing(enabled bool) {
	if m.editing == enabled {
		return
	}
	m.editing = enabled
	events.UI.LayoutMode(enabled)
	if m.ws == nil {
		return
	}
	if enabled {
		m.ws.Log(console.Debug, console.Client, "Editing layout")
	} else {
		m.ws.Log(console.Debug, console.Client, "Saved layout")
	}
}

// handleLayoutKey moves (arrows) or resizes (shift+arrows) the focused
// widget while layout editing is on. Every change goes through the
// widget store, which clamps it into the grid.
func (m *Model) handleLayoutKey(msg tea.KeyMsg) bool {
	dx, dy, dw, dh := 0, 0, 0, 0
	switch msg.String() {
	case "left", "h":
		dx = -1
	case "right", "l":
		dx = 1
	case "up", "k":
		dy = -1
	case "down", "j":
		dy = 1
	case "shift+left", "H":
		dw = -1
	case "shift+right", "L":
		dw = 1
	case "shift+up", "K":
		dh = -1
	case "shift+down", "J":
		dh = 1
	case "enter", "esc":
		m.setEditing(false)
		return true
	default:
		return false
	}
	w, ok := m.ws.Widgets.Widget(m.focus)
	if !ok {
		return true
	}
	r := w.View
	r.X = clampInt(r.X+dx, 0, layout.Grid-r.W)
	r.Y = clampInt(r.Y+dy, 0, layout.Grid-r.H)
	r.W += dw
	r.H += dh
	if err := m.ws.Widgets.SetView(m.focus, r); err != nil {
		m.errMsg = err.Error()
	}
	return true
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
