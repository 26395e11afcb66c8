package menu

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/gametools-console/internal/console"
	"github.com/atomicstack/gametools-console/internal/state"
)

func consoleFilter(ctx Context) (console.Filter, error) {
	if !ctx.HasSession || ctx.Session.Kind != state.KindConsole || ctx.Session.Console == nil {
		return console.Filter{}, fmt.Errorf("%w: %q is not a console", state.ErrWrongKind, ctx.SessionID)
	}
	return ctx.Session.Console.Filter, nil
}

func loadLevelMenu(ctx Context) ([]Item, error) {
	filter, err := consoleFilter(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(console.Levels))
	for _, level := range console.Levels {
		items = append(items, Item{ID: level.String(), Label: checked(level.Label(), filter.MinLevel == level)})
	}
	return items, nil
}

func loadSourceMenu(ctx Context) ([]Item, error) {
	filter, err := consoleFilter(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(console.Sources))
	for _, source := range console.Sources {
		items = append(items, Item{ID: string(source), Label: checked(prettyLabel(string(source)), filter.Enabled[source])})
	}
	return items, nil
}

// LevelAction sets the focused console's minimum level.
func LevelAction(ctx Context, item Item) tea.Cmd {
	level, err := console.ParseLevel(item.ID)
	if err != nil {
		return result("", err)
	}
	if err := ctx.Workspace.Sessions.SetConsoleLogLevel(ctx.SessionID, level); err != nil {
		return result("", err)
	}
	return result(fmt.Sprintf("Level set to %s", level.Label()), nil)
}

// SourceAction toggles one source of the focused console.
func SourceAction(ctx Context, item Item) tea.Cmd {
	filter, err := consoleFilter(ctx)
	if err != nil {
		return result("", err)
	}
	source := console.Source(item.ID)
	if !source.Valid() {
		return result("", fmt.Errorf("unknown source %q", item.ID))
	}
	enabled := !filter.Enabled[source]
	if err := ctx.Workspace.Sessions.SetConsoleLogSource(ctx.SessionID, source, enabled); err != nil {
		return result("", err)
	}
	status := "disabled"
	if enabled {
		status = "enabled"
	}
	return result(fmt.Sprintf("Source %s %s", source, status), nil)
}

// ClearAction empties the focused console.
func ClearAction(ctx Context, _ Item) tea.Cmd {
	if err := ctx.Workspace.Sessions.ClearConsole(ctx.SessionID); err != nil {
		return result("", err)
	}
	return result("Console cleared", nil)
}
