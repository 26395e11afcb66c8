package menu

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/gametools-console/internal/data/protocol"
	"github.com/atomicstack/gametools-console/internal/state"
)

// Palette ids of the "create a session" entries under Open and Split.
const (
	NewConsoleID = "+console"
	NewDataID    = "+data"
	NewOutputID  = "+output"
)

var errNoWorkspace = errors.New("no workspace")

func loadSessionMenu(ctx Context) ([]Item, error) {
	if ctx.Workspace == nil {
		return nil, errNoWorkspace
	}
	sessions := sortedSessions(ctx.Workspace)
	items := make([]Item, 0, len(sessions)+3)
	for _, sess := range sessions {
		label := fmt.Sprintf("%s (%s)", sess.Name, sess.Kind)
		if sess.ID == ctx.SessionID {
			label = "* " + label
		}
		items = append(items, Item{ID: sess.ID, Label: label})
	}
	items = append(items,
		Item{ID: NewConsoleID, Label: "New Console Session"},
		Item{ID: NewDataID, Label: "New Data Session"},
		Item{ID: NewOutputID, Label: "New Output Session"},
	)
	return items, nil
}

// resolveSession maps a session palette entry to a session id, creating
// the session for the "new" entries.
func resolveSession(ctx Context, id string) string {
	sessions := ctx.Workspace.Sessions
	switch id {
	case NewConsoleID:
		return sessions.CreateConsoleSession(sessions.NextName("Console"))
	case NewDataID:
		return sessions.CreateDataSession(sessions.NextName("Data"))
	case NewOutputID:
		return sessions.CreateOutputSession(sessions.NextName("Output"))
	}
	return id
}

// OpenAction shows the selected session in the focused widget.
func OpenAction(ctx Context, item Item) tea.Cmd {
	if ctx.Workspace == nil {
		return result("", errNoWorkspace)
	}
	id := resolveSession(ctx, item.ID)
	if err := ctx.Workspace.Widgets.SetSession(ctx.Widget, id); err != nil {
		return result("", err)
	}
	return result(fmt.Sprintf("Opened %s", sessionName(ctx, id)), nil)
}

// SplitAction halves the focused widget and shows the selected session in
// the new half.
func SplitAction(ctx Context, item Item) tea.Cmd {
	if ctx.Workspace == nil {
		return result("", errNoWorkspace)
	}
	id := resolveSession(ctx, item.ID)
	if err := ctx.Workspace.Widgets.Split(ctx.Widget, id); err != nil {
		return result("", err)
	}
	index := ctx.Workspace.Widgets.Len() - 1
	return func() tea.Msg { return FocusWidget{Index: index} }
}

// HelpAction splits the focused widget to show the help session.
func HelpAction(ctx Context, _ Item) tea.Cmd {
	return SplitAction(ctx, Item{ID: state.HelpID})
}

func sessionName(ctx Context, id string) string {
	if sess, ok := ctx.Workspace.Sessions.Session(id); ok {
		return sess.Name
	}
	return id
}

// RenameAction prompts for a new name for the focused session.
func RenameAction(ctx Context, _ Item) tea.Cmd {
	if !ctx.HasSession {
		return result("", fmt.Errorf("%w: %q", state.ErrSessionNotFound, ctx.SessionID))
	}
	prompt := Prompt{
		Context: ctx,
		Action:  "rename",
		Target:  ctx.SessionID,
		Title:   "Enter a new name",
		Initial: ctx.Session.Name,
	}
	return func() tea.Msg { return prompt }
}

// EditAction prompts for a replacement JSON document for the focused data
// or connection session.
func EditAction(ctx Context, _ Item) tea.Cmd {
	if !ctx.HasSession {
		return result("", fmt.Errorf("%w: %q", state.ErrSessionNotFound, ctx.SessionID))
	}
	switch ctx.Session.Kind {
	case state.KindData, state.KindConnection:
	case state.KindOutput:
		return result("", fmt.Errorf("%w: %q", state.ErrReadOnly, ctx.Session.Name))
	default:
		return result("", fmt.Errorf("%w: %q is a %s session", state.ErrWrongKind, ctx.Session.Name, ctx.Session.Kind))
	}
	obj := ctx.Session.Object()
	if ctx.Session.Kind == state.KindConnection {
		// Connected is runtime state and cannot be edited.
		delete(obj, "Connected")
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return result("", err)
	}
	prompt := Prompt{
		Context: ctx,
		Action:  "edit",
		Target:  ctx.SessionID,
		Title:   fmt.Sprintf("Edit %s (JSON)", ctx.Session.Name),
		Initial: string(data),
	}
	return func() tea.Msg { return prompt }
}

// CloseWidgetAction closes the focused widget, keeping its session.
func CloseWidgetAction(ctx Context, _ Item) tea.Cmd {
	if ctx.Workspace == nil {
		return result("", errNoWorkspace)
	}
	if err := ctx.Workspace.Widgets.CloseWidget(ctx.Widget); err != nil {
		return result("", err)
	}
	return result("Closed widget", nil)
}

// CloseSessionAction closes the focused session and every widget showing
// it.
func CloseSessionAction(ctx Context, _ Item) tea.Cmd {
	if ctx.Workspace == nil {
		return result("", errNoWorkspace)
	}
	if err := ctx.Workspace.Sessions.CloseSession(ctx.SessionID); err != nil {
		return result("", err)
	}
	return result(fmt.Sprintf("Closed %s", ctx.Session.Name), nil)
}

// CloseAllAction closes every closable session.
func CloseAllAction(ctx Context, _ Item) tea.Cmd {
	if ctx.Workspace == nil {
		return result("", errNoWorkspace)
	}
	ctx.Workspace.Sessions.CloseAllSessions()
	return result("Closed all sessions", nil)
}

func loadModuleMenu(Context) ([]Item, error) {
	names := protocol.ModuleNames()
	items := make([]Item, 0, len(names))
	for _, name := range names {
		items = append(items, Item{ID: name, Label: name})
	}
	return items, nil
}

// ActivateAction requests a remote module for the focused session. Data
// sessions name the module in their document; output sessions pick it
// from the module list.
func ActivateAction(ctx Context, item Item) tea.Cmd {
	if ctx.Workspace == nil {
		return result("", errNoWorkspace)
	}
	module := ""
	if ctx.Session.Kind == state.KindOutput {
		module = strings.TrimSpace(item.ID)
	}
	if err := ctx.Workspace.Activate(ctx.SessionID, module); err != nil {
		return result("", err)
	}
	return result("Activation requested", nil)
}

// DeactivateAction asks the peer to stop the focused session's module.
func DeactivateAction(ctx Context, _ Item) tea.Cmd {
	if ctx.Workspace == nil {
		return result("", errNoWorkspace)
	}
	if err := ctx.Workspace.Deactivate(ctx.SessionID); err != nil {
		return result("", err)
	}
	return result("Deactivation requested", nil)
}
