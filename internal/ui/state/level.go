// Package state holds the palette's per-level navigation state: the items
// a level offers, the fuzzy filter typed over them, and the cursor.
package state

import "github.com/atomicstack/gametools-console/internal/menu"

// Level encapsulates palette level state such as cursor position, filter, and viewport.
type Level struct {
	ID             string
	Title          string
	Items          []menu.Item
	Full           []menu.Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	Node           *menu.Node
	ViewportOffset int
}

// NewLevel constructs a Level using the provided items and palette node.
func NewLevel(id, title string, items []menu.Item, node *menu.Node) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		LastCursor: -1,
		Node:       node,
	}
	l.UpdateItems(items)
	return l
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []menu.Item) []menu.Item {
	dup := make([]menu.Item, len(items))
	copy(dup, items)
	return dup
}

// IndexOf returns the index for a given item identifier.
func (l *Level) IndexOf(id string) int {
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// UpdateItems replaces the level items, keeping the filter applied.
func (l *Level) UpdateItems(items []menu.Item) {
	l.Full = CloneItems(items)
	l.applyFilter()
}

// Current returns the item under the cursor.
func (l *Level) Current() (menu.Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return menu.Item{}, false
	}
	return l.Items[l.Cursor], true
}

// MoveCursor moves the cursor by delta, wrapping at either end.
func (l *Level) MoveCursor(delta int) bool {
	n := len(l.Items)
	if n == 0 || delta == 0 {
		return false
	}
	old := l.Cursor
	l.Cursor = ((l.Cursor+delta)%n + n) % n
	return old != l.Cursor
}
