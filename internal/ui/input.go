package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/gametools-console/internal/logging/events"
)

// handleTextInput applies filter editing keys to the current palette level.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	current := m.currentLevel()
	if current == nil {
		return false
	}
	switch msg.String() {
	case "ctrl+u":
		if current.Filter == "" {
			return false
		}
		current.SetFilter("", 0)
		m.errMsg = ""
		events.Filter.Cleared(current.ID)
		m.syncViewport(current)
		return true
	case "ctrl+w":
		if !current.DeleteFilterWordBackward() {
			return false
		}
		m.errMsg = ""
		events.Filter.WordBackspace(current.ID, current.Filter)
		m.syncViewport(current)
		return true
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.removeFilterRune()
	case tea.KeySpace:
		return m.appendToFilter(" ")
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
		}
		return m.appendToFilter(string(msg.Runes))
	}
	return false
}

func (m *Model) appendToFilter(text string) bool {
	current := m.currentLevel()
	if current == nil || !current.InsertFilterText(text) {
		return false
	}
	m.errMsg = ""
	events.Filter.Append(current.ID, current.Filter)
	m.syncViewport(current)
	return true
}

func (m *Model) removeFilterRune() bool {
	current := m.currentLevel()
	if current == nil || !current.DeleteFilterRuneBackward() {
		return false
	}
	m.errMsg = ""
	events.Filter.Backspace(current.ID, current.Filter)
	m.syncViewport(current)
	return true
}

// filterPrompt renders the palette filter with its cursor.
func (m *Model) filterPrompt() string {
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	current := m.currentLevel()
	if current == nil {
		return prompt
	}
	render := func(value string) string {
		if styles.Filter == nil || value == "" {
			return value
		}
		return styles.Filter.Render(value)
	}
	if current.Filter == "" {
		placeholder := "type to filter"
		if styles.FilterPlaceholder != nil {
			placeholder = styles.FilterPlaceholder.Render(placeholder)
		}
		return prompt + m.renderFilterCursor(" ") + placeholder
	}
	runes := []rune(current.Filter)
	pos := current.FilterCursorPos()
	caret := " "
	after := ""
	if pos < len(runes) {
		caret = string(runes[pos])
		after = string(runes[pos+1:])
	}
	return prompt + render(string(runes[:pos])) + m.renderFilterCursor(caret) + render(after)
}

func (m *Model) renderFilterCursor(char string) string {
	m.filterCursor.SetChar(char)
	return m.filterCursor.View()
}
