package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/gametools-console/internal/menu"
)

// handleActiveForm routes key presses to the open prompt. Other messages
// keep flowing through the handler registry so the transport is not
// starved while the operator types.
func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.mode != ModePrompt || m.form == nil {
		return false, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	if key.String() == "ctrl+c" {
		return true, tea.Quit
	}
	cmd, done, cancel := m.form.Update(msg)
	if cancel || done {
		m.form = nil
		m.mode = ModeDashboard
	}
	return true, cmd
}

func (m *Model) handlePromptMsg(msg tea.Msg) tea.Cmd {
	prompt, ok := msg.(menu.Prompt)
	if !ok {
		return nil
	}
	m.closePalette()
	m.errMsg = ""
	m.forceClearInfo()
	m.form = menu.NewForm(prompt)
	m.form.SetWidth(m.width - 4)
	m.mode = ModePrompt
	return nil
}
