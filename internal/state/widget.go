package state

import (
	"errors"
	"fmt"

	"github.com/atomicstack/gametools-console/internal/console"
	"github.com/atomicstack/gametools-console/internal/layout"
	"github.com/atomicstack/gametools-console/internal/logging/events"
)

var (
	// ErrInvalidWidget is returned for widget indices outside the list.
	ErrInvalidWidget = errors.New("invalid widget id")
	// ErrTooSmall is returned when splitting a widget of a single cell.
	ErrTooSmall = errors.New("widget too small to split")
)

// Widget is one panel of the dashboard.
type Widget struct {
	// Theme names the widget's colour theme; empty selects the default.
	Theme     string
	View      layout.Rect
	SessionID string
}

// WidgetStore owns the widget list. Every widget references a session in
// the bound SessionStore, and the list is never empty.
type WidgetStore struct {
	widgets  []Widget
	sessions *SessionStore
}

// NewWidgetStore binds a widget list to sessions. Removing a session
// prunes the widgets that referenced it.
func NewWidgetStore(sessions *SessionStore, initial []Widget) *WidgetStore {
	w := &WidgetStore{sessions: sessions}
	w.widgets = cloneWidgets(initial)
	sessions.OnRemove(func(string) { w.Reconcile() })
	w.Reconcile()
	return w
}

func cloneWidgets(widgets []Widget) []Widget {
	if len(widgets) == 0 {
		return nil
	}
	dup := make([]Widget, len(widgets))
	copy(dup, widgets)
	return dup
}

// Widgets returns a copy of the widget list.
func (w *WidgetStore) Widgets() []Widget {
	return cloneWidgets(w.widgets)
}

// Widget returns the widget at index.
func (w *WidgetStore) Widget(index int) (Widget, bool) {
	if index < 0 || index >= len(w.widgets) {
		return Widget{}, false
	}
	return w.widgets[index], true
}

// Len reports the number of widgets.
func (w *WidgetStore) Len() int {
	return len(w.widgets)
}

func (w *WidgetStore) check(index int, action string) error {
	if index < 0 || index >= len(w.widgets) {
		return w.sessions.fail(fmt.Errorf("%w: %d", ErrInvalidWidget, index), fmt.Sprintf("Cannot %s: invalid widget id %d", action, index))
	}
	return nil
}

func (w *WidgetStore) checkSession(id, action string) error {
	if !w.sessions.Has(id) {
		return w.sessions.fail(fmt.Errorf("%w: %q", ErrSessionNotFound, id), fmt.Sprintf("Cannot %s: %q is not a Session", action, id))
	}
	return nil
}

// SetSession binds widget index to session id.
func (w *WidgetStore) SetSession(index int, id string) error {
	if err := w.check(index, "set session"); err != nil {
		return err
	}
	if err := w.checkSession(id, "set session"); err != nil {
		return err
	}
	sess, _ := w.sessions.Session(id)
	w.sessions.AppendLog(console.Info, console.Client, fmt.Sprintf("Binding Widget %d to Session %q", index, sess.Name))
	w.widgets[index].SessionID = id
	events.Widget.Bind(index, id)
	return nil
}

// SetTheme sets the widget's theme. An empty theme selects the default.
func (w *WidgetStore) SetTheme(index int, theme string) error {
	if err := w.check(index, "set theme"); err != nil {
		return err
	}
	w.widgets[index].Theme = theme
	w.sessions.AppendLog(console.Debug, console.Client, fmt.Sprintf("Setting Widget %d theme = %q", index, theme))
	events.Widget.Theme(index, theme)
	return nil
}

// Split halves widget index along its longer axis. The original keeps the
// first half; a new widget with the second half, the same theme and
// session id is appended.
func (w *WidgetStore) Split(index int, id string) error {
	if err := w.check(index, "split widget"); err != nil {
		return err
	}
	if err := w.checkSession(id, "split widget"); err != nil {
		return err
	}
	first, second, ok := layout.Split(w.widgets[index].View)
	if !ok {
		view := w.widgets[index].View
		return w.sessions.fail(fmt.Errorf("%w: widget %d is %dx%d", ErrTooSmall, index, view.W, view.H), fmt.Sprintf("Cannot split widget %d: it is too small", index))
	}
	w.widgets[index].View = first
	w.widgets = append(w.widgets, Widget{
		Theme:     w.widgets[index].Theme,
		View:      second,
		SessionID: id,
	})
	events.Widget.Split(index, id, len(w.widgets))
	return nil
}

// CloseWidget removes widget index. Closing the last widget opens the
// default console widget in its place.
func (w *WidgetStore) CloseWidget(index int) error {
	if err := w.check(index, "close widget"); err != nil {
		return err
	}
	w.sessions.AppendLog(console.Info, console.Client, fmt.Sprintf("Closing Widget %d", index))
	w.widgets = append(w.widgets[:index], w.widgets[index+1:]...)
	events.Widget.Close(index, len(w.widgets))
	w.ensureNotEmpty()
	return nil
}

// SetView moves widget index to r after clamping it into the grid.
func (w *WidgetStore) SetView(index int, r layout.Rect) error {
	if err := w.check(index, "set layout"); err != nil {
		return err
	}
	r = layout.Clamp(r)
	w.widgets[index].View = r
	events.Widget.Layout(index, r.X, r.Y, r.W, r.H)
	return nil
}

// Layouts returns every widget's rectangle in the external grid format.
func (w *WidgetStore) Layouts() []layout.Item {
	items := make([]layout.Item, len(w.widgets))
	for i, widget := range w.widgets {
		items[i] = layout.ItemFor(i, widget.View)
	}
	return items
}

// SetLayouts writes external grid items back to the widgets they name.
// Rectangles are clamped; items with invalid keys are logged and skipped.
func (w *WidgetStore) SetLayouts(items []layout.Item) {
	for _, item := range items {
		index, err := item.Index()
		if err != nil || index >= len(w.widgets) {
			w.sessions.AppendLog(console.Warn, console.Client, fmt.Sprintf("Ignoring layout for unknown widget %q", item.Key))
			continue
		}
		r := item.Rect()
		w.widgets[index].View = r
		events.Widget.Layout(index, r.X, r.Y, r.W, r.H)
	}
}

// Replace swaps in a whole widget list. Rectangles are clamped and
// widgets bound to missing sessions are dropped.
func (w *WidgetStore) Replace(widgets []Widget) {
	next := make([]Widget, 0, len(widgets))
	for _, widget := range widgets {
		widget.View = layout.Clamp(widget.View)
		next = append(next, widget)
	}
	w.widgets = next
	w.Reconcile()
}

// Reconcile prunes widgets whose session no longer exists and keeps the
// list non-empty.
func (w *WidgetStore) Reconcile() {
	kept := w.widgets[:0]
	for i, widget := range w.widgets {
		if w.sessions.Has(widget.SessionID) {
			kept = append(kept, widget)
			continue
		}
		w.sessions.AppendLog(console.Info, console.Client, fmt.Sprintf("Closing Widget %d with expired Session %q", i, widget.SessionID))
		events.Widget.Prune(i, widget.SessionID)
	}
	w.widgets = kept
	w.ensureNotEmpty()
}

func (w *WidgetStore) ensureNotEmpty() {
	if len(w.widgets) > 0 {
		return
	}
	id, ok := w.sessions.FirstConsole()
	if !ok {
		id = w.sessions.CreateConsoleSession("")
	}
	w.widgets = []Widget{{View: layout.Full, SessionID: id}}
	w.sessions.AppendLog(console.Warn, console.Client, "You have closed all Widgets. The default Console is opened automatically so you can keep using the app.")
	events.Widget.Default(id)
}
