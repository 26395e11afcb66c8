package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/gametools-console/internal/logging/events"
	"github.com/atomicstack/gametools-console/internal/menu"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	m.errMsg = ""
	if result.Info != "" {
		m.setInfo(result.Info)
	}
	events.Action.Success(result.Info)
	return nil
}

func (m *Model) handleLayoutToggleMsg(msg tea.Msg) tea.Cmd {
	toggle, ok := msg.(menu.LayoutToggle)
	if !ok {
		return nil
	}
	m.setEditing(toggle.Enabled)
	return nil
}

func (m *Model) handleFocusWidgetMsg(msg tea.Msg) tea.Cmd {
	focus, ok := msg.(menu.FocusWidget)
	if !ok {
		return nil
	}
	m.focus = focus.Index
	events.UI.Focus(m.focus)
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	if m.form != nil {
		m.form.SetWidth(m.width - 4)
	}
	m.syncViewport(m.currentLevel())
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoLifetime)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}
