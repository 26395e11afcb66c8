// Package menu defines the command palette: the tree of entries offered
// for the focused widget, the loaders that populate nested levels and the
// actions that apply a selection to the workspace.
package menu

import (
	"sort"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/gametools-console/internal/state"
	"github.com/atomicstack/gametools-console/internal/workspace"
)

// Item represents a selectable palette entry.
type Item struct {
	ID    string
	Label string
}

// Context carries the workspace and the widget the palette was opened on.
type Context struct {
	Workspace *workspace.Workspace
	Widget    int
	SessionID string
	Session   state.Session
	// HasSession is false when the widget's session no longer resolves.
	HasSession bool
	Editing    bool
}

// NewContext resolves the focused widget's session.
func NewContext(ws *workspace.Workspace, widget int, editing bool) Context {
	ctx := Context{Workspace: ws, Widget: widget, Editing: editing}
	if ws == nil {
		return ctx
	}
	if w, ok := ws.Widgets.Widget(widget); ok {
		ctx.SessionID = w.SessionID
		ctx.Session, ctx.HasSession = ws.Sessions.Session(w.SessionID)
	}
	return ctx
}

// Loader populates submenu entries on demand.
type Loader func(Context) ([]Item, error)

type Action func(Context, Item) tea.Cmd

// ActionResult communicates the outcome of executing a palette action.
type ActionResult struct {
	Info string
	Err  error
}

// Prompt requests free-form input before an action can complete.
type Prompt struct {
	Context Context
	Action  string
	Target  string
	Title   string
	Initial string
}

// LayoutToggle switches layout editing on or off.
type LayoutToggle struct {
	Enabled bool
}

// FocusWidget moves focus to the widget at Index.
type FocusWidget struct {
	Index int
}

func result(info string, err error) tea.Cmd {
	return func() tea.Msg { return ActionResult{Info: info, Err: err} }
}

// RootItems returns the top-level entries for ctx, grouped the way the
// focused session supports them.
func RootItems(ctx Context) []Item {
	items := make([]Item, 0, 16)
	if ctx.HasSession {
		switch ctx.Session.Kind {
		case state.KindConsole:
			items = append(items,
				Item{ID: "level", Label: "Level"},
				Item{ID: "source", Label: "Source"},
				Item{ID: "clear", Label: "Clear Console"},
			)
		case state.KindData:
			items = append(items, activationItem(ctx.Session, "activate"))
			items = append(items, Item{ID: "edit", Label: "Edit Data..."})
		case state.KindOutput:
			items = append(items, activationItem(ctx.Session, "activate-module"))
		case state.KindConnection:
			items = append(items, Item{ID: "edit", Label: "Edit Connection..."})
		}
	}
	items = append(items,
		Item{ID: "open", Label: "Open"},
		Item{ID: "split", Label: "Split"},
	)
	if ctx.HasSession && ctx.Session.Kind != state.KindConnection && ctx.Session.Kind != state.KindHelp {
		items = append(items, Item{ID: "rename", Label: "Rename..."})
	}
	items = append(items,
		Item{ID: "close-widget", Label: "Close Widget"},
		Item{ID: "close-session", Label: "Close Session"},
		Item{ID: "theme", Label: "Theme"},
	)
	if ctx.Editing {
		items = append(items, Item{ID: "layout", Label: "Save Layout"})
	} else {
		items = append(items, Item{ID: "layout", Label: "Edit Layout"})
	}
	items = append(items,
		Item{ID: "settings", Label: "Settings"},
		Item{ID: "close-all", Label: "Close All Sessions"},
		Item{ID: "help", Label: "Help"},
	)
	return items
}

func activationItem(sess state.Session, activate string) Item {
	if sess.Linked() {
		return Item{ID: "deactivate", Label: "Deactivate"}
	}
	return Item{ID: activate, Label: "Activate"}
}

// CategoryLoaders lists submenu loaders keyed by root item ID.
func CategoryLoaders() map[string]Loader {
	return map[string]Loader{
		"open":            loadSessionMenu,
		"split":           loadSessionMenu,
		"level":           loadLevelMenu,
		"source":          loadSourceMenu,
		"theme":           loadThemeMenu,
		"activate-module": loadModuleMenu,
		"settings":        loadSettingsMenu,
	}
}

// ActionHandlers maps palette identifiers to their execution logic.
func ActionHandlers() map[string]Action {
	return map[string]Action{
		"open":            OpenAction,
		"split":           SplitAction,
		"rename":          RenameAction,
		"edit":            EditAction,
		"close-widget":    CloseWidgetAction,
		"close-session":   CloseSessionAction,
		"close-all":       CloseAllAction,
		"theme":           ThemeAction,
		"layout":          LayoutAction,
		"help":            HelpAction,
		"level":           LevelAction,
		"source":          SourceAction,
		"clear":           ClearAction,
		"activate":        ActivateAction,
		"activate-module": ActivateAction,
		"deactivate":      DeactivateAction,
		"settings:export": ExportAction,
		"settings:import": ImportAction,
	}
}

func menuItemsFromIDs(ids []string) []Item {
	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, Item{ID: id, Label: prettyLabel(id)})
	}
	return items
}

func prettyLabel(id string) string {
	if id == "" {
		return id
	}
	parts := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == ':'
	})
	for i, part := range parts {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func checked(label string, on bool) string {
	if on {
		return "[x] " + label
	}
	return "[ ] " + label
}

// sortedSessions orders sessions by display name, then id.
func sortedSessions(ws *workspace.Workspace) []state.Session {
	sessions := ws.Sessions.Sessions()
	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].Name != sessions[j].Name {
			return sessions[i].Name < sessions[j].Name
		}
		return sessions[i].ID < sessions[j].ID
	})
	return sessions
}
