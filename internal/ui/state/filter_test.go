package state

import (
	"testing"

	"github.com/atomicstack/gametools-console/internal/menu"
)

func TestSetFilterTracksCursorAndRestoresPosition(t *testing.T) {
	level := newTestLevel("one", "two", "three")
	level.Cursor = 2
	level.SetFilter("two", len("two"))

	if level.FilterCursor != len("two") {
		t.Fatalf("expected cursor at end, got %d", level.FilterCursor)
	}
	if len(level.Items) != 1 || level.Items[0].ID != "two" {
		t.Fatalf("expected filtered items to contain only 'two', got %#v", level.Items)
	}
	if level.Cursor != 0 {
		t.Fatalf("expected filtered cursor at 0, got %d", level.Cursor)
	}

	level.SetFilter("", 0)
	if level.Cursor != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", level.Cursor)
	}
	if level.LastCursor != -1 {
		t.Fatalf("expected last cursor reset, got %d", level.LastCursor)
	}
}

func TestInsertAndDeleteFilterText(t *testing.T) {
	level := newTestLevel("alpha")

	if !level.InsertFilterText("ab") {
		t.Fatal("expected insert to succeed")
	}
	level.FilterCursor = 1
	if !level.InsertFilterText("z") {
		t.Fatal("expected insert in middle to succeed")
	}
	if level.Filter != "azb" || level.FilterCursor != 2 {
		t.Fatalf("unexpected filter state %q/%d", level.Filter, level.FilterCursor)
	}
	if !level.DeleteFilterRuneBackward() {
		t.Fatal("expected rune deletion to succeed")
	}
	if level.Filter != "ab" || level.FilterCursor != 1 {
		t.Fatalf("unexpected filter state %q/%d", level.Filter, level.FilterCursor)
	}
	level.FilterCursor = 0
	if level.DeleteFilterRuneBackward() {
		t.Fatal("expected no deletion at start")
	}
}

func TestDeleteFilterWordBackward(t *testing.T) {
	level := newTestLevel("new console")
	level.SetFilter("new cons", len("new cons"))
	if !level.DeleteFilterWordBackward() {
		t.Fatal("expected word deletion")
	}
	if level.Filter != "new " {
		t.Fatalf("expected %q, got %q", "new ", level.Filter)
	}
}

func TestFilterItemsFuzzy(t *testing.T) {
	items := []menu.Item{
		{ID: "close-widget", Label: "Close Widget"},
		{ID: "open", Label: "Open"},
		{ID: "close-all", Label: "Close All Sessions"},
	}
	got := FilterItems(items, "clw")
	if len(got) != 1 || got[0].ID != "close-widget" {
		t.Fatalf("expected fuzzy match on Close Widget, got %#v", got)
	}
	if got := FilterItems(items, "  "); len(got) != 3 {
		t.Fatalf("expected blank filter to keep every item, got %d", len(got))
	}
}

func TestBestMatchPrefersPrefix(t *testing.T) {
	items := []menu.Item{
		{ID: "split", Label: "Split"},
		{ID: "settings", Label: "Settings"},
		{ID: "close-session", Label: "Close Session"},
	}
	if idx := BestMatchIndex(items, "se"); idx != 1 {
		t.Fatalf("expected prefix match at 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "split"); idx != 0 {
		t.Fatalf("expected exact match at 0, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "x"); idx != -1 {
		t.Fatalf("expected -1 for empty items, got %d", idx)
	}
}
