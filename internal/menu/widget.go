package menu

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/gametools-console/internal/theme"
)

func loadThemeMenu(ctx Context) ([]Item, error) {
	current := ""
	if ctx.Workspace != nil {
		if w, ok := ctx.Workspace.Widgets.Widget(ctx.Widget); ok {
			current = w.Theme
		}
	}
	themes := theme.Widgets()
	items := make([]Item, 0, len(themes))
	for _, t := range themes {
		id := t.Name
		if id == "" {
			id = "default"
		}
		items = append(items, Item{ID: id, Label: checked(t.Label, t.Name == current)})
	}
	return items, nil
}

// ThemeAction applies the selected theme to the focused widget.
func ThemeAction(ctx Context, item Item) tea.Cmd {
	name := item.ID
	if name == "default" {
		name = ""
	}
	t, ok := theme.Lookup(name)
	if !ok {
		return result("", fmt.Errorf("unknown theme %q", item.ID))
	}
	if err := ctx.Workspace.Widgets.SetTheme(ctx.Widget, t.Name); err != nil {
		return result("", err)
	}
	return result(fmt.Sprintf("Theme set to %s", t.Label), nil)
}

// LayoutAction toggles layout editing.
func LayoutAction(ctx Context, _ Item) tea.Cmd {
	toggle := LayoutToggle{Enabled: !ctx.Editing}
	return func() tea.Msg { return toggle }
}
