package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/gametools-console/internal/logging/events"
	"github.com/atomicstack/gametools-console/internal/menu"
	"github.com/atomicstack/gametools-console/internal/ui/command"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.String() == "ctrl+c" {
		return tea.Quit
	}
	switch m.mode {
	case ModePalette:
		return m.handlePaletteKey(keyMsg)
	case ModeDashboard:
		return m.handleDashboardKey(keyMsg)
	}
	return nil
}

func (m *Model) handleDashboardKey(msg tea.KeyMsg) tea.Cmd {
	if m.editing && m.handleLayoutKey(msg) {
		return nil
	}
	switch msg.String() {
	case "q":
		return tea.Quit
	case "ctrl+p", ":":
		m.openPalette()
	case "tab":
		m.moveFocus(1)
	case "shift+tab":
		m.moveFocus(-1)
	case "ctrl+e":
		m.setEditing(!m.editing)
	case "esc":
		m.errMsg = ""
		m.forceClearInfo()
	}
	return nil
}

func (m *Model) handlePaletteKey(msg tea.KeyMsg) tea.Cmd {
	if m.handleTextInput(msg) {
		return nil
	}
	switch msg.String() {
	case "esc":
		m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "up", "ctrl+k":
		m.moveCursor(-1)
	case "down", "ctrl+j":
		m.moveCursor(1)
	case "home":
		if current := m.currentLevel(); current != nil && current.MoveCursorHome() {
			events.UI.PaletteCursor(current.ID, current.Cursor)
		}
	case "end":
		if current := m.currentLevel(); current != nil && current.MoveCursorEnd() {
			events.UI.PaletteCursor(current.ID, current.Cursor)
		}
	}
	return nil
}

// moveFocus cycles widget focus by delta.
func (m *Model) moveFocus(delta int) {
	if m.ws == nil {
		return
	}
	n := m.ws.Widgets.Len()
	if n == 0 {
		return
	}
	m.focus = ((m.focus+delta)%n + n) % n
	events.UI.Focus(m.focus)
}

func (m *Model) clampFocus() {
	n := m.ws.Widgets.Len()
	if m.focus >= n {
		m.focus = n - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
}

func (m *Model) menuContext() menu.Context {
	return menu.NewContext(m.ws, m.focus, m.editing)
}

// openPalette shows the root palette level for the focused widget.
func (m *Model) openPalette() {
	ctx := m.menuContext()
	root := m.registry.Root()
	items, err := root.Loader(ctx)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	title := "palette"
	if ctx.HasSession {
		title = ctx.Session.Name
	}
	m.stack = []*level{newLevel(root.ID, title, items, root)}
	m.mode = ModePalette
	m.errMsg = ""
	m.forceClearInfo()
	events.UI.PaletteOpen(m.focus, ctx.SessionID)
}

func (m *Model) closePalette() {
	m.stack = nil
	m.mode = ModeDashboard
}

func (m *Model) currentLevel() *level {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

func (m *Model) handleEscapeKey() {
	current := m.currentLevel()
	if current == nil || len(m.stack) <= 1 {
		m.closePalette()
		return
	}
	m.stack = m.stack[:len(m.stack)-1]
	parent := m.currentLevel()
	if idx := parent.IndexOf(keyOf(current.ID)); idx >= 0 {
		parent.Cursor = idx
	}
	m.syncViewport(parent)
	m.errMsg = ""
}

// keyOf returns the last segment of a palette id, which is the item id the
// level was entered from.
func keyOf(id string) string {
	return id[strings.LastIndex(id, ":")+1:]
}

func (m *Model) handleEnterKey() tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	item, ok := current.Current()
	if !ok {
		return nil
	}
	events.UI.PaletteEnter(current.ID, item.ID, item.Label, current.Filter)
	node := current.Node
	if node == nil {
		node, _ = m.registry.Find(current.ID)
	}
	if node == nil {
		m.setInfo(fmt.Sprintf("Selected %s (no action defined)", item.Label))
		return nil
	}
	if child, ok := node.Children[item.ID]; ok {
		if child.Loader != nil {
			m.pushLevel(child, item.Label)
			return nil
		}
		if child.Action != nil {
			return m.execute(child, item)
		}
	}
	if node.Action != nil {
		return m.execute(node, item)
	}
	m.setInfo(fmt.Sprintf("Selected %s (no action defined)", item.Label))
	return nil
}

func (m *Model) pushLevel(node *menu.Node, title string) {
	items, err := node.Loader(m.menuContext())
	if err != nil {
		m.errMsg = err.Error()
		events.Action.Error(err)
		return
	}
	current := m.currentLevel()
	if current != nil && current.Filter != "" {
		current.SetFilter("", 0)
	}
	lvl := newLevel(node.ID, title, items, node)
	m.stack = append(m.stack, lvl)
	m.errMsg = ""
	m.syncViewport(lvl)
}

// execute closes the palette and runs node's action against item.
func (m *Model) execute(node *menu.Node, item menu.Item) tea.Cmd {
	ctx := m.menuContext()
	m.closePalette()
	m.errMsg = ""
	m.forceClearInfo()
	return m.bus.Execute(ctx, command.Request{ID: node.ID, Label: item.Label, Handler: node.Action, Item: item})
}

func (m *Model) moveCursor(delta int) {
	current := m.currentLevel()
	if current == nil {
		return
	}
	if current.MoveCursor(delta) {
		events.UI.PaletteCursor(current.ID, current.Cursor)
	}
	m.syncViewport(current)
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) paletteHeader() string {
	out := ""
	for i, l := range m.stack {
		if i > 0 {
			out += paletteHeaderSeparator
		}
		out += l.Title
	}
	return out
}
