// Package ui contains the Bubble Tea program that draws the dashboard.
// The package is structured so the Model type focuses on message orchestration,
// while dedicated helpers own navigation, input, rendering, and layout editing.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - While a prompt is open, key presses go to the active menu.Form. Every
//     other message is routed through a typed handler registry so each
//     tea.Msg is handled by a focused function (for example, navigation for
//     key presses or transport events).
//   - Navigation helpers (navigation.go) manage focus between widgets and the
//     stack of palette levels. Filter helpers (input.go) keep palette text
//     entry apart from the event loop, and layout.go owns layout editing.
//   - After every message the workspace's settings are synced, so a changed
//     layout reaches the server and the settings file without any action
//     having to ask for it.
//
// State ownership:
//   - Sessions and widgets live in the workspace (internal/workspace), which
//     is only ever touched from Update.
//   - Palette level state lives in internal/ui/state.Level, which tracks
//     items, filtering, and viewport calculations.
//   - Palette actions run through the internal/ui/command bus on the Update
//     goroutine; the messages they return (results, prompts, focus changes)
//     come back through the handler registry.
//
// Transport:
//   - A backend.Conn streams connection events and inbound frames.
//     waitForBackendEvent turns each one into a message, and the handler
//     hands it to the workspace before waiting for the next.
package ui
