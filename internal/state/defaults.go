package state

import "github.com/atomicstack/gametools-console/internal/layout"

// DefaultTheme is applied to the connection widget of a fresh layout.
const DefaultTheme = "monokai"

// NewDefault builds the initial stores: a console, the connection and help
// singletons, and two widgets showing the connection above the console.
func NewDefault() (*SessionStore, *WidgetStore) {
	sessions := NewSessionStore()
	consoleID := sessions.CreateConsoleSession("Console 1")
	widgets := NewWidgetStore(sessions, []Widget{
		{Theme: DefaultTheme, View: layout.Rect{X: 0, Y: 0, W: layout.Grid, H: 24}, SessionID: ConnectionID},
		{View: layout.Rect{X: 0, Y: 24, W: layout.Grid, H: 8}, SessionID: consoleID},
	})
	return sessions, widgets
}
