package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/gametools-console/internal/menu"
)

func TestExecuteRunsHandlerImmediately(t *testing.T) {
	ran := false
	handler := func(menu.Context, menu.Item) tea.Cmd {
		ran = true
		return func() tea.Msg { return menu.ActionResult{Info: "done"} }
	}
	cmd := New().Execute(menu.Context{}, Request{ID: "x", Handler: handler})
	if !ran {
		t.Fatalf("expected handler to run before the command is returned")
	}
	res, ok := cmd().(menu.ActionResult)
	if !ok || res.Info != "done" {
		t.Fatalf("expected action result, got %#v", res)
	}
}

func TestExecuteWithoutHandler(t *testing.T) {
	if cmd := New().Execute(menu.Context{}, Request{ID: "x"}); cmd != nil {
		t.Fatalf("expected nil command without a handler")
	}
	noop := func(menu.Context, menu.Item) tea.Cmd { return nil }
	if cmd := New().Execute(menu.Context{}, Request{ID: "x", Handler: noop}); cmd != nil {
		t.Fatalf("expected nil command for a no-op handler")
	}
}
