package menu

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/gametools-console/internal/console"
)

func loadSettingsMenu(Context) ([]Item, error) {
	return []Item{
		{ID: "export", Label: "Export Settings"},
		{ID: "import", Label: "Import Settings..."},
	}, nil
}

// ExportAction writes the encoded settings document to the consoles so it
// can be copied and passed back with --settings.
func ExportAction(ctx Context, _ Item) tea.Cmd {
	if ctx.Workspace == nil {
		return result("", errNoWorkspace)
	}
	encoded, err := ctx.Workspace.ExportSettings()
	if err != nil {
		return result("", err)
	}
	ctx.Workspace.Log(console.Info, console.Client, "Exported settings: "+encoded)
	return result("Settings exported to the console", nil)
}

// ImportAction prompts for an encoded settings document.
func ImportAction(ctx Context, _ Item) tea.Cmd {
	prompt := Prompt{
		Context: ctx,
		Action:  "settings:import",
		Title:   "Paste encoded settings",
	}
	return func() tea.Msg { return prompt }
}
