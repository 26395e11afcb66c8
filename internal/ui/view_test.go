package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/gametools-console/internal/console"
	"github.com/atomicstack/gametools-console/internal/layout"
	"github.com/atomicstack/gametools-console/internal/state"
)

func TestCellRectScalesGrid(t *testing.T) {
	tests := []struct {
		name string
		r    layout.Rect
		want cell
	}{
		{"full", layout.Full, cell{x: 0, y: 0, w: 80, h: 24}},
		{"top three quarters", layout.Rect{X: 0, Y: 0, W: 32, H: 24}, cell{x: 0, y: 0, w: 80, h: 18}},
		{"bottom quarter", layout.Rect{X: 0, Y: 24, W: 32, H: 8}, cell{x: 0, y: 18, w: 80, h: 6}},
		{"right half", layout.Rect{X: 16, Y: 0, W: 16, H: 32}, cell{x: 40, y: 0, w: 40, h: 24}},
	}
	for _, tt := range tests {
		if got := cellRect(tt.r, 80, 24); got != tt.want {
			t.Fatalf("%s: expected %+v, got %+v", tt.name, tt.want, got)
		}
	}
}

func TestCellRectAdjacentWidgetsShareEdge(t *testing.T) {
	left := cellRect(layout.Rect{X: 0, Y: 0, W: 11, H: 32}, 77, 23)
	right := cellRect(layout.Rect{X: 11, Y: 0, W: 21, H: 32}, 77, 23)
	if left.x+left.w != right.x {
		t.Fatalf("expected no gap, got %+v and %+v", left, right)
	}
	if right.x+right.w != 77 {
		t.Fatalf("expected right edge at 77, got %+v", right)
	}
}

func TestOverlayKeepsWidth(t *testing.T) {
	row := strings.Repeat(".", 10)
	got := overlay(row, "abc", 4, 10)
	if got != "....abc..." {
		t.Fatalf("unexpected overlay %q", got)
	}
	got = overlay(row, "abcdef", 7, 10)
	if got != ".......abc" {
		t.Fatalf("expected clipped overlay, got %q", got)
	}
}

func TestViewShowsSessionsAndStatus(t *testing.T) {
	h := newHarness(t)
	view := ansi.Strip(h.View())
	lines := strings.Split(view, "\n")
	if len(lines) != 25 {
		t.Fatalf("expected 25 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 80 {
			t.Fatalf("row %d: expected width 80, got %d: %q", i, w, line)
		}
	}
	for _, want := range []string{"Connection", "Console 1", "SwitchHost", "Welcome to the gametools console", "○ disconnected"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestViewShowsPaletteOverlay(t *testing.T) {
	h := newHarness(t)
	h.Keys("ctrl+p")
	view := ansi.Strip(h.View())
	for _, want := range []string{"Edit Connection...", "Open", "type to filter"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in palette view:\n%s", want, view)
		}
	}
	h.Type("zzzz")
	view = ansi.Strip(h.View())
	if !strings.Contains(view, `No matches for "zzzz"`) {
		t.Fatalf("expected empty filter message:\n%s", view)
	}
}

func TestWidgetContentPerKind(t *testing.T) {
	if got := widgetContent(state.Session{}, false, 4); len(got) != 1 || got[0] != "(Invalid Session)" {
		t.Fatalf("unexpected content for missing session: %v", got)
	}
	ws := newHarness(t).Model().Workspace()
	outputID := ws.Sessions.CreateOutputSession("Output 1")
	output, _ := ws.Sessions.Session(outputID)
	got := widgetContent(output, true, 4)
	if len(got) != 2 || got[1] != "(waiting for module data)" {
		t.Fatalf("unexpected output content: %v", got)
	}
	dataID := ws.Sessions.CreateDataSession("Data 1")
	if err := ws.Sessions.EditData(dataID, map[string]any{"Module": "Memory"}); err != nil {
		t.Fatalf("edit data: %v", err)
	}
	data, _ := ws.Sessions.Session(dataID)
	got = widgetContent(data, true, 4)
	if len(got) < 2 || got[0] != "○ not active" || !strings.Contains(got[1], `"Memory"`) {
		t.Fatalf("unexpected data content: %v", got)
	}
}

func TestConsoleContentKeepsTail(t *testing.T) {
	ws := newHarness(t).Model().Workspace()
	id, _ := ws.Sessions.FirstConsole()
	for i := 0; i < 10; i++ {
		ws.Log(console.Warn, console.Client, "line")
	}
	sess, _ := ws.Sessions.Session(id)
	got := widgetContent(sess, true, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(got))
	}
	for _, line := range got {
		if !strings.HasSuffix(line, "line") {
			t.Fatalf("expected tail lines, got %v", got)
		}
	}
}
