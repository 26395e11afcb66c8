package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/gametools-console/internal/backend"
	"github.com/atomicstack/gametools-console/internal/menu"
)

func waitForBackendEvent(c *backend.Conn) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-c.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.conn != nil {
		return waitForBackendEvent(m.conn)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.conn = nil
	return nil
}

// applyBackendEvent hands evt to the workspace and refreshes the palette
// root, whose entries depend on link and connection state.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if m.ws == nil {
		return
	}
	m.ws.HandleEvent(evt)
	if m.mode != ModePalette || len(m.stack) == 0 {
		return
	}
	root := m.stack[0]
	root.UpdateItems(menu.RootItems(m.menuContext()))
	m.syncViewport(root)
}
