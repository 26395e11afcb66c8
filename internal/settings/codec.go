// Package settings serializes the session and widget graph into a single
// transportable string and restores it.
//
// The document is JSON, percent-encoded so it can travel in a uri wire
// field or a query parameter. Session ids are only meaningful within one
// process, so restoring remaps every stored id to a freshly created one.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/atomicstack/gametools-console/internal/console"
	"github.com/atomicstack/gametools-console/internal/data/wire"
	"github.com/atomicstack/gametools-console/internal/layout"
	"github.com/atomicstack/gametools-console/internal/logging/events"
	"github.com/atomicstack/gametools-console/internal/state"
)

// ErrInvalidDocument wraps every reason a document cannot be restored.
var ErrInvalidDocument = errors.New("invalid settings document")

// Document is the persisted form of the dashboard.
type Document struct {
	Consoles map[string]ConsoleEntry `json:"consoles"`
	Datas    map[string]DataEntry    `json:"datas"`
	Outputs  map[string]OutputEntry  `json:"outputs"`
	Widgets  []WidgetEntry           `json:"widgets"`
}

type ConsoleEntry struct {
	Name    string          `json:"name"`
	Level   string          `json:"level"`
	Enabled map[string]bool `json:"enabled"`
}

type DataEntry struct {
	Name string         `json:"name"`
	Obj  map[string]any `json:"obj"`
}

type OutputEntry struct {
	Name string `json:"name"`
}

type WidgetEntry struct {
	Theme   string `json:"theme,omitempty"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	W       int    `json:"w"`
	H       int    `json:"h"`
	Session string `json:"session"`
}

// Build captures the current stores as a document. The connection
// singleton is always written; help carries no state and is skipped.
func Build(sessions *state.SessionStore, widgets *state.WidgetStore) Document {
	doc := Document{
		Consoles: map[string]ConsoleEntry{},
		Datas:    map[string]DataEntry{},
		Outputs:  map[string]OutputEntry{},
		Widgets:  []WidgetEntry{},
	}
	for _, sess := range sessions.Sessions() {
		switch sess.Kind {
		case state.KindConsole:
			enabled := make(map[string]bool, len(console.Sources))
			for _, src := range console.Sources {
				enabled[string(src)] = sess.Console.Filter.Enabled[src]
			}
			doc.Consoles[sess.ID] = ConsoleEntry{
				Name:    sess.Name,
				Level:   sess.Console.Filter.MinLevel.String(),
				Enabled: enabled,
			}
		case state.KindData, state.KindConnection:
			obj := sess.Object()
			if obj == nil {
				obj = map[string]any{}
			}
			doc.Datas[sess.ID] = DataEntry{Name: sess.Name, Obj: obj}
		case state.KindOutput:
			doc.Outputs[sess.ID] = OutputEntry{Name: sess.Name}
		}
	}
	for _, w := range widgets.Widgets() {
		doc.Widgets = append(doc.Widgets, WidgetEntry{
			Theme:   w.Theme,
			X:       w.View.X,
			Y:       w.View.Y,
			W:       w.View.W,
			H:       w.View.H,
			Session: w.SessionID,
		})
	}
	return doc
}

// Marshal renders the current stores as compact JSON.
func Marshal(sessions *state.SessionStore, widgets *state.WidgetStore) (string, error) {
	data, err := json.Marshal(Build(sessions, widgets))
	if err != nil {
		return "", fmt.Errorf("marshal settings: %w", err)
	}
	return string(data), nil
}

// Serialize renders the current stores as a percent-encoded document.
func Serialize(sessions *state.SessionStore, widgets *state.WidgetStore) (string, error) {
	data, err := Marshal(sessions, widgets)
	if err != nil {
		return "", err
	}
	return wire.EscapeURIComponent(data), nil
}

// Parse decodes and validates a percent-encoded document without touching
// any store.
func Parse(encoded string) (Document, error) {
	text, err := wire.UnescapeURIComponent(encoded)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return ParseJSON([]byte(text))
}

// ParseJSON decodes and validates a plain JSON document.
func ParseJSON(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Validate checks everything Apply relies on so that a restore either
// applies completely or not at all.
func (d Document) Validate() error {
	for id, entry := range d.Consoles {
		if _, err := console.ParseLevel(entry.Level); err != nil {
			return fmt.Errorf("%w: console %q: %v", ErrInvalidDocument, id, err)
		}
	}
	if entry, ok := d.Datas[state.ConnectionID]; ok {
		if _, err := state.ApplyConnectionObject(state.Connection{}, entry.Obj); err != nil {
			return fmt.Errorf("%w: connection: %v", ErrInvalidDocument, err)
		}
	}
	return nil
}

// Deserialize restores the stores from a percent-encoded document. A
// document that fails to parse is logged and leaves the stores untouched.
func Deserialize(encoded string, sessions *state.SessionStore, widgets *state.WidgetStore) error {
	doc, err := Parse(encoded)
	if err != nil {
		events.Settings.LoadError(err)
		sessions.AppendLog(console.Error, console.Client, "Error when loading settings")
		return err
	}
	Apply(doc, sessions, widgets)
	return nil
}

// Apply replaces every closable session and the widget list with the
// contents of a validated document.
func Apply(doc Document, sessions *state.SessionStore, widgets *state.WidgetStore) {
	// Park the widgets on a singleton so closing sessions does not
	// synthesize a console.
	widgets.Replace([]state.Widget{{View: layout.Full, SessionID: state.ConnectionID}})
	sessions.CloseAllSessions()

	remap := map[string]string{
		state.ConnectionID: state.ConnectionID,
		state.HelpID:       state.HelpID,
	}
	for _, id := range sortedKeys(doc.Consoles) {
		entry := doc.Consoles[id]
		newID := sessions.CreateConsoleSession(entry.Name)
		remap[id] = newID
		level, _ := console.ParseLevel(entry.Level)
		_ = sessions.SetConsoleLogLevel(newID, level)
		for _, src := range console.Sources {
			_ = sessions.SetConsoleLogSource(newID, src, entry.Enabled[string(src)])
		}
	}
	for _, id := range sortedKeys(doc.Datas) {
		entry := doc.Datas[id]
		switch id {
		case state.HelpID:
			continue
		case state.ConnectionID:
			_ = sessions.EditData(state.ConnectionID, entry.Obj)
			continue
		}
		newID := sessions.CreateDataSession(entry.Name)
		remap[id] = newID
		_ = sessions.EditData(newID, entry.Obj)
	}
	for _, id := range sortedKeys(doc.Outputs) {
		remap[id] = sessions.CreateOutputSession(doc.Outputs[id].Name)
	}

	restored := make([]state.Widget, 0, len(doc.Widgets))
	for _, entry := range doc.Widgets {
		target, ok := remap[entry.Session]
		if !ok {
			continue
		}
		restored = append(restored, state.Widget{
			Theme:     entry.Theme,
			View:      layout.Rect{X: entry.X, Y: entry.Y, W: entry.W, H: entry.H},
			SessionID: target,
		})
	}
	widgets.Replace(restored)
	events.Settings.Load(len(doc.Consoles), len(doc.Datas), len(doc.Outputs), len(restored))
	sessions.AppendLog(console.Info, console.Client, "Loaded settings.")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
