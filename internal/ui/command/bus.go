// Package command runs palette actions on behalf of the UI.
package command

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/gametools-console/internal/logging/events"
	"github.com/atomicstack/gametools-console/internal/menu"
)

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Label   string
	Handler menu.Action
	Item    menu.Item
}

// Bus coordinates the execution of palette actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute runs the action on the calling goroutine, where the workspace
// lives, and wraps the follow-up message it produces into a Bubble Tea
// command while emitting trace logs.
func (b *Bus) Execute(ctx menu.Context, req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	if req.Handler == nil {
		events.Command.Skip(req.ID, req.Label)
		return nil
	}
	cmd := req.Handler(ctx, req.Item)
	if cmd == nil {
		events.Command.NoOp(req.ID, req.Label)
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
