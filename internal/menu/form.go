package menu

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/gametools-console/internal/logging/events"
)

// Form collects a single line of input for a Prompt.
type Form struct {
	input  textinput.Model
	prompt Prompt
	err    string
}

// NewForm opens a form for prompt with its initial value selected.
func NewForm(prompt Prompt) *Form {
	ti := textinput.New()
	ti.CharLimit = 0
	ti.Prompt = "> "
	switch prompt.Action {
	case "rename":
		ti.Placeholder = "session name"
		ti.CharLimit = 64
	case "edit":
		ti.Placeholder = `{"Module": "..."}`
	case "settings:import":
		ti.Placeholder = "%7B%22consoles%22..."
	}
	ti.Focus()
	if prompt.Initial != "" {
		ti.SetValue(prompt.Initial)
		ti.CursorEnd()
	}
	events.Prompt.Open(prompt.Action, prompt.Target)
	f := &Form{input: ti, prompt: prompt}
	f.err = f.validate()
	return f
}

func (f *Form) Prompt() Prompt    { return f.prompt }
func (f *Form) Title() string     { return f.prompt.Title }
func (f *Form) Value() string     { return strings.TrimSpace(f.input.Value()) }
func (f *Form) InputView() string { return f.input.View() }
func (f *Form) Error() string     { return f.err }

func (f *Form) Help() string {
	return "Press Enter to confirm. Esc to cancel."
}

// SetWidth bounds the visible input.
func (f *Form) SetWidth(width int) {
	f.input.Width = width
}

// Update processes a message. done reports a submitted form, whose
// returned command carries the action result; cancel reports an
// abandoned one.
func (f *Form) Update(msg tea.Msg) (cmd tea.Cmd, done bool, cancel bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+u":
			if f.input.Value() != "" {
				f.input.SetValue("")
				f.input.CursorStart()
				f.err = f.validate()
			}
			return nil, false, false
		}
		switch key.Type {
		case tea.KeyEsc:
			events.Prompt.Cancel(f.prompt.Action, f.prompt.Target)
			return nil, false, true
		case tea.KeyEnter:
			if err := f.validate(); err != "" {
				f.err = err
				return nil, false, false
			}
			events.Prompt.Submit(f.prompt.Action, f.prompt.Target)
			return Submit(f.prompt, f.Value()), true, false
		}
	}
	updated, cmd := f.input.Update(msg)
	f.input = updated
	f.err = f.validate()
	return cmd, false, false
}

func (f *Form) validate() string {
	value := f.Value()
	switch f.prompt.Action {
	case "rename":
		if value == "" {
			return "name required"
		}
	case "edit":
		if _, err := parseObject(value); err != nil {
			return err.Error()
		}
	case "settings:import":
		if value == "" {
			return "settings required"
		}
	}
	return ""
}

func parseObject(value string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(value), &obj); err != nil {
		return nil, fmt.Errorf("invalid JSON: %v", err)
	}
	if obj == nil {
		return nil, fmt.Errorf("a JSON object is required")
	}
	return obj, nil
}

// Submit applies a completed prompt to the workspace.
func Submit(prompt Prompt, value string) tea.Cmd {
	ws := prompt.Context.Workspace
	if ws == nil {
		return result("", errNoWorkspace)
	}
	switch prompt.Action {
	case "rename":
		if err := ws.Sessions.RenameSession(prompt.Target, value); err != nil {
			return result("", err)
		}
		return result(fmt.Sprintf("Renamed to %s", value), nil)
	case "edit":
		obj, err := parseObject(value)
		if err != nil {
			return result("", err)
		}
		if err := ws.Sessions.EditData(prompt.Target, obj); err != nil {
			return result("", err)
		}
		return result("Saved", nil)
	case "settings:import":
		if err := ws.LoadSettings(value); err != nil {
			return result("", err)
		}
		return result("Settings imported", nil)
	}
	return result("", fmt.Errorf("unknown prompt action %q", prompt.Action))
}
