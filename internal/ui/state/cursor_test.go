package state

import (
	"testing"

	"github.com/atomicstack/gametools-console/internal/menu"
)

func newTestLevel(ids ...string) *Level {
	items := make([]menu.Item, len(ids))
	for i, id := range ids {
		items[i] = menu.Item{ID: id, Label: id}
	}
	return NewLevel("test", "Test", items, nil)
}

func TestMoveCursorHomeAndEnd(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	if !l.MoveCursorEnd() || l.Cursor != 2 {
		t.Fatalf("expected cursor at end, got %d", l.Cursor)
	}
	if !l.MoveCursorHome() || l.Cursor != 0 {
		t.Fatalf("expected cursor at start, got %d", l.Cursor)
	}

	empty := newTestLevel()
	empty.Cursor = 5
	if empty.MoveCursorHome() {
		t.Fatalf("expected no movement for empty level")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Cursor)
	}
}

func TestMoveCursorWraps(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	if !l.MoveCursor(-1) || l.Cursor != 2 {
		t.Fatalf("expected wrap to last item, got %d", l.Cursor)
	}
	if !l.MoveCursor(1) || l.Cursor != 0 {
		t.Fatalf("expected wrap to first item, got %d", l.Cursor)
	}
	if newTestLevel().MoveCursor(1) {
		t.Fatalf("expected no movement for empty level")
	}
}

func TestEnsureCursorVisibleScrolls(t *testing.T) {
	l := newTestLevel("a", "b", "c", "d", "e")
	l.Cursor = 4
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", l.ViewportOffset)
	}
	l.Cursor = 0
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected offset 0, got %d", l.ViewportOffset)
	}
}

func TestVisibleWindow(t *testing.T) {
	l := newTestLevel("a", "b", "c", "d")
	l.Cursor = 3
	idx, offset := l.Visible(2)
	if offset != 2 || len(idx) != 2 || idx[0] != 2 || idx[1] != 3 {
		t.Fatalf("expected items 2..3, got %v at %d", idx, offset)
	}
	idx, _ = l.Visible(0)
	if len(idx) != 4 {
		t.Fatalf("expected every item without a limit, got %v", idx)
	}
}

func TestCurrent(t *testing.T) {
	l := newTestLevel("a", "b")
	l.Cursor = 1
	if item, ok := l.Current(); !ok || item.ID != "b" {
		t.Fatalf("expected b, got %+v", item)
	}
	if _, ok := newTestLevel().Current(); ok {
		t.Fatalf("expected no current item")
	}
}
