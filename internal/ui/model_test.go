package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/gametools-console/internal/backend"
	"github.com/atomicstack/gametools-console/internal/console"
	"github.com/atomicstack/gametools-console/internal/data/protocol"
	"github.com/atomicstack/gametools-console/internal/state"
	"github.com/atomicstack/gametools-console/internal/workspace"
)

// Widget indices of the default layout.
const (
	connectionWidget = 0
	consoleWidget    = 1
)

func newHarness(t *testing.T) *Harness {
	t.Helper()
	ws := workspace.NewDefault(nil)
	return NewHarness(NewModel(ws, nil, 80, 25))
}

func widgetSession(t *testing.T, h *Harness, index int) state.Session {
	t.Helper()
	ws := h.Model().Workspace()
	w, ok := ws.Widgets.Widget(index)
	if !ok {
		t.Fatalf("expected widget %d", index)
	}
	sess, ok := ws.Sessions.Session(w.SessionID)
	if !ok {
		t.Fatalf("expected session %q for widget %d", w.SessionID, index)
	}
	return sess
}

func TestTabCyclesFocus(t *testing.T) {
	h := newHarness(t)
	if got := h.Model().Focus(); got != connectionWidget {
		t.Fatalf("expected initial focus %d, got %d", connectionWidget, got)
	}
	h.Keys("tab")
	if got := h.Model().Focus(); got != consoleWidget {
		t.Fatalf("expected focus %d after tab, got %d", consoleWidget, got)
	}
	h.Keys("tab")
	if got := h.Model().Focus(); got != connectionWidget {
		t.Fatalf("expected focus to wrap to %d, got %d", connectionWidget, got)
	}
	h.Keys("shift+tab")
	if got := h.Model().Focus(); got != consoleWidget {
		t.Fatalf("expected shift+tab to wrap to %d, got %d", consoleWidget, got)
	}
}

func TestPaletteOpensAndEscapes(t *testing.T) {
	h := newHarness(t)
	h.Keys("ctrl+p")
	if h.Model().Mode() != ModePalette {
		t.Fatalf("expected palette mode, got %v", h.Model().Mode())
	}
	h.Keys("down", "enter")
	if depth := len(h.Model().stack); depth != 2 {
		t.Fatalf("expected open submenu, got depth %d", depth)
	}
	h.Keys("esc")
	if depth := len(h.Model().stack); depth != 1 {
		t.Fatalf("expected back at root, got depth %d", depth)
	}
	if cur := h.Model().currentLevel(); cur.Cursor != 1 {
		t.Fatalf("expected cursor restored to open entry, got %d", cur.Cursor)
	}
	h.Keys("esc")
	if h.Model().Mode() != ModeDashboard {
		t.Fatalf("expected dashboard mode, got %v", h.Model().Mode())
	}
}

func TestPaletteOpensNewConsoleInFocusedWidget(t *testing.T) {
	h := newHarness(t)
	// connection root: edit, open, ...
	h.Keys("ctrl+p", "down", "enter")
	// session list ends with new console, new data, new output
	h.Keys("end", "up", "up", "enter")
	if h.Model().Mode() != ModeDashboard {
		t.Fatalf("expected palette to close, got mode %v", h.Model().Mode())
	}
	sess := widgetSession(t, h, connectionWidget)
	if sess.Kind != state.KindConsole || sess.Name != "Console 2" {
		t.Fatalf("expected Console 2 in widget 0, got %s (%s)", sess.Name, sess.Kind)
	}
	if !strings.Contains(h.View(), "Opened Console 2") {
		t.Fatalf("expected info message in view:\n%s", h.View())
	}
}

func TestPaletteFilterSelectsEntry(t *testing.T) {
	h := newHarness(t)
	h.Keys("tab", "ctrl+p")
	h.Type("clear")
	cur := h.Model().currentLevel()
	item, ok := cur.Current()
	if !ok || item.ID != "clear" {
		t.Fatalf("expected clear entry under cursor, got %#v", item)
	}
	h.Keys("enter")
	sess := widgetSession(t, h, consoleWidget)
	if sess.Console.Buffer != "" {
		t.Fatalf("expected cleared console, got %q", sess.Console.Buffer)
	}
}

func TestRenamePromptFlow(t *testing.T) {
	h := newHarness(t)
	h.Keys("tab", "ctrl+p")
	// console root: level, source, clear, open, split, rename
	h.Keys("down", "down", "down", "down", "down", "enter")
	if h.Model().Mode() != ModePrompt {
		t.Fatalf("expected prompt mode, got %v", h.Model().Mode())
	}
	if !strings.Contains(h.View(), "Enter a new name") {
		t.Fatalf("expected prompt title in view:\n%s", h.View())
	}
	h.Keys("ctrl+u")
	h.Type("Logs")
	h.Keys("enter")
	if h.Model().Mode() != ModeDashboard {
		t.Fatalf("expected dashboard after submit, got %v", h.Model().Mode())
	}
	if name := widgetSession(t, h, consoleWidget).Name; name != "Logs" {
		t.Fatalf("expected renamed session, got %q", name)
	}
}

func TestRenamePromptCancel(t *testing.T) {
	h := newHarness(t)
	h.Keys("tab", "ctrl+p", "down", "down", "down", "down", "down", "enter")
	h.Type("x")
	h.Keys("esc")
	if h.Model().Mode() != ModeDashboard {
		t.Fatalf("expected dashboard after cancel, got %v", h.Model().Mode())
	}
	if name := widgetSession(t, h, consoleWidget).Name; name != "Console 1" {
		t.Fatalf("expected name unchanged, got %q", name)
	}
}

func TestLayoutEditMovesFocusedWidget(t *testing.T) {
	h := newHarness(t)
	h.Keys("ctrl+e")
	if !h.Model().Editing() {
		t.Fatalf("expected layout editing on")
	}
	h.Keys("down", "shift+left")
	w, _ := h.Model().Workspace().Widgets.Widget(connectionWidget)
	if w.View.Y != 1 || w.View.W != 31 {
		t.Fatalf("expected moved and narrowed view, got %v", w.View)
	}
	h.Keys("up", "up", "up")
	w, _ = h.Model().Workspace().Widgets.Widget(connectionWidget)
	if w.View.Y != 0 {
		t.Fatalf("expected view to stay inside the grid, got %v", w.View)
	}
	h.Keys("enter")
	if h.Model().Editing() {
		t.Fatalf("expected layout editing off")
	}
}

func TestLayoutToggleFromPalette(t *testing.T) {
	h := newHarness(t)
	h.Keys("ctrl+p")
	h.Type("edit layout")
	h.Keys("enter")
	if !h.Model().Editing() {
		t.Fatalf("expected layout editing on")
	}
	if !strings.Contains(h.View(), "LAYOUT") {
		t.Fatalf("expected layout badge in view")
	}
}

func TestBackendFrameReachesConsole(t *testing.T) {
	h := newHarness(t)
	frame, err := protocol.Encode(protocol.LogMessage{Source: console.Server, Level: console.Warn, Text: "target online"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindFrame, Frame: frame}})
	sess := widgetSession(t, h, consoleWidget)
	if !strings.Contains(sess.Console.Buffer, "target online") {
		t.Fatalf("expected log line in console, got %q", sess.Console.Buffer)
	}
	if !strings.Contains(h.View(), "target online") {
		t.Fatalf("expected log line in view:\n%s", h.View())
	}
}

func TestBackendOpenMarksConnected(t *testing.T) {
	h := newHarness(t)
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindOpen}})
	if !h.Model().Workspace().Sessions.ConnectionInfo().Connected {
		t.Fatalf("expected connected state")
	}
	if !strings.Contains(h.View(), "● connected") {
		t.Fatalf("expected status line to report connection")
	}
}

func TestCloseWidgetClampsFocus(t *testing.T) {
	h := newHarness(t)
	h.Keys("tab", "ctrl+p")
	h.Type("close widget")
	h.Keys("enter")
	if n := h.Model().Workspace().Widgets.Len(); n != 1 {
		t.Fatalf("expected one widget left, got %d", n)
	}
	if got := h.Model().Focus(); got != 0 {
		t.Fatalf("expected focus clamped to 0, got %d", got)
	}
}

func TestQuitKey(t *testing.T) {
	h := newHarness(t)
	h.Keys("q")
	if !h.Quit() {
		t.Fatalf("expected quit")
	}
}
