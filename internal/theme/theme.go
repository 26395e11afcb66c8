// Package theme holds the Lip Gloss styles of the dashboard chrome and the
// named colour themes a widget can be switched to.
package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Item              *lipgloss.Style
	SelectedItem      *lipgloss.Style
	ItemIndicator     *lipgloss.Style
	SelectedIndicator *lipgloss.Style
	Error             *lipgloss.Style
	Info              *lipgloss.Style
	Header            *lipgloss.Style
	Footer            *lipgloss.Style
	Filter            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
	Status            *lipgloss.Style
	StatusOnline      *lipgloss.Style
	StatusOffline     *lipgloss.Style
	LayoutBadge       *lipgloss.Style
}

var defaultStyles = Styles{
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	StatusOnline: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	StatusOffline: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	LayoutBadge: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}

// Widget is a base16-style palette reduced to the slots a widget uses.
type Widget struct {
	Name       string
	Label      string
	Background lipgloss.TerminalColor
	Foreground lipgloss.TerminalColor
	Accent     lipgloss.TerminalColor
	Border     lipgloss.TerminalColor
}

// DefaultWidget is used when a widget names no theme or an unknown one.
var DefaultWidget = Widget{
	Name:       "",
	Label:      "Default",
	Background: lipgloss.NoColor{},
	Foreground: lipgloss.Color("252"),
	Accent:     lipgloss.Color("33"),
	Border:     lipgloss.Color("240"),
}

var widgets = []Widget{
	DefaultWidget,
	{Name: "monokai", Label: "Monokai", Background: lipgloss.Color("#272822"), Foreground: lipgloss.Color("#f9f8f5"), Accent: lipgloss.Color("#fd971f"), Border: lipgloss.Color("#75715e")},
	{Name: "ocean", Label: "Ocean", Background: lipgloss.Color("#2b303b"), Foreground: lipgloss.Color("#eff1f5"), Accent: lipgloss.Color("#d08770"), Border: lipgloss.Color("#65737e")},
	{Name: "solarized", Label: "Solarized", Background: lipgloss.Color("#002b36"), Foreground: lipgloss.Color("#fdf6e3"), Accent: lipgloss.Color("#cb4b16"), Border: lipgloss.Color("#657b83")},
	{Name: "tomorrow", Label: "Tomorrow", Background: lipgloss.Color("#1d1f21"), Foreground: lipgloss.Color("#ffffff"), Accent: lipgloss.Color("#de935f"), Border: lipgloss.Color("#969896")},
	{Name: "twilight", Label: "Twilight", Background: lipgloss.Color("#1e1e1e"), Foreground: lipgloss.Color("#ffffff"), Accent: lipgloss.Color("#cda869"), Border: lipgloss.Color("#838184")},
	{Name: "eighties", Label: "Eighties", Background: lipgloss.Color("#2d2d2d"), Foreground: lipgloss.Color("#f2f0ec"), Accent: lipgloss.Color("#f99157"), Border: lipgloss.Color("#a09f93")},
}

// Widgets lists the selectable widget themes, default first.
func Widgets() []Widget {
	dup := make([]Widget, len(widgets))
	copy(dup, widgets)
	return dup
}

// Lookup resolves a theme name. Unknown names fall back to DefaultWidget.
func Lookup(name string) (Widget, bool) {
	for _, w := range widgets {
		if w.Name == name {
			return w, true
		}
	}
	return DefaultWidget, false
}

// Body is the style of a widget's content area.
func (w Widget) Body() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(w.Foreground).Background(w.Background)
}

// Title is the style of a widget's title row.
func (w Widget) Title(focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(w.Accent).Background(w.Background).Bold(true)
	if focused {
		s = s.Reverse(true)
	}
	return s
}

// Frame is the style of a widget's border.
func (w Widget) Frame(focused bool) lipgloss.Style {
	if focused {
		return lipgloss.NewStyle().Foreground(w.Accent)
	}
	return lipgloss.NewStyle().Foreground(w.Border)
}
