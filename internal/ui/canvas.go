package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/gametools-console/internal/layout"
	"github.com/atomicstack/gametools-console/internal/state"
	"github.com/atomicstack/gametools-console/internal/theme"
)

// cell is a widget's placement in terminal cells.
type cell struct {
	x, y, w, h int
}

// cellRect scales a grid rectangle onto a width x height canvas. Edges are
// computed independently so adjacent widgets share a boundary.
func cellRect(r layout.Rect, width, height int) cell {
	x0 := r.X * width / layout.Grid
	x1 := (r.X + r.W) * width / layout.Grid
	y0 := r.Y * height / layout.Grid
	y1 := (r.Y + r.H) * height / layout.Grid
	return cell{x: x0, y: y0, w: x1 - x0, h: y1 - y0}
}

type boxChars struct {
	tl, tr, bl, br, hz, vt string
}

var (
	plainBox = boxChars{tl: "╭", tr: "╮", bl: "╰", br: "╯", hz: "─", vt: "│"}
	focusBox = boxChars{tl: "┏", tr: "┓", bl: "┗", br: "┛", hz: "━", vt: "┃"}
)

// renderDashboard draws every widget in list order onto a blank canvas;
// later widgets paint over earlier ones.
func (m *Model) renderDashboard(width, height int) []string {
	rows := make([]string, height)
	for i := range rows {
		rows[i] = strings.Repeat(" ", width)
	}
	if m.ws == nil || width <= 0 {
		return rows
	}
	widgets := m.ws.Widgets.Widgets()
	for i, w := range widgets {
		if i == m.focus {
			continue
		}
		m.paintWidget(rows, w, width, height, false)
	}
	if m.focus >= 0 && m.focus < len(widgets) {
		m.paintWidget(rows, widgets[m.focus], width, height, true)
	}
	return rows
}

func (m *Model) paintWidget(rows []string, w state.Widget, width, height int, focused bool) {
	c := cellRect(w.View, width, height)
	if c.w <= 0 || c.h <= 0 {
		return
	}
	sess, ok := m.ws.Sessions.Session(w.SessionID)
	title := "(Invalid Session)"
	if ok {
		title = sess.Name
	}
	box := renderBox(widgetTheme(w.Theme), title, widgetContent(sess, ok, c.h-2), c.w, c.h, focused, m.editing && focused)
	for i, line := range box {
		y := c.y + i
		if y < 0 || y >= len(rows) {
			continue
		}
		rows[y] = overlay(rows[y], line, c.x, width)
	}
}

func widgetTheme(name string) theme.Widget {
	t, _ := theme.Lookup(name)
	return t
}

// renderBox frames content lines inside a w x h border titled with title.
func renderBox(t theme.Widget, title string, content []string, w, h int, focused, editing bool) []string {
	body := t.Body()
	frame := t.Frame(focused)
	chars := plainBox
	if focused {
		chars = focusBox
	}
	if w < 2 || h < 2 {
		rows := make([]string, h)
		for i := range rows {
			rows[i] = body.Render(strings.Repeat(" ", w))
		}
		return rows
	}
	innerW := w - 2
	innerH := h - 2

	label := " " + title + " "
	if editing {
		label = " " + title + " [move] "
	}
	label = truncateText(label, innerW)
	dashes := innerW - lipgloss.Width(label)
	top := frame.Render(chars.tl) + t.Title(focused).Render(label) + frame.Render(strings.Repeat(chars.hz, dashes)+chars.tr)

	rows := make([]string, 0, h)
	rows = append(rows, top)
	for i := 0; i < innerH; i++ {
		var line string
		if i < len(content) {
			line = content[i]
		}
		rows = append(rows, frame.Render(chars.vt)+body.Render(padText(line, innerW))+frame.Render(chars.vt))
	}
	rows = append(rows, frame.Render(chars.bl+strings.Repeat(chars.hz, innerW)+chars.br))
	return rows
}

func padText(text string, width int) string {
	text = truncateText(text, width)
	if pad := width - lipgloss.Width(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return text
}

// overlay replaces the cells [x, x+width(box)) of row with box, keeping the
// escape sequences of both sides intact.
func overlay(row, box string, x, width int) string {
	boxW := ansi.StringWidth(box)
	if x >= width || boxW == 0 {
		return row
	}
	if x+boxW > width {
		box = ansi.Truncate(box, width-x, "")
		boxW = width - x
	}
	left := ansi.Truncate(row, x, "")
	right := ansi.TruncateLeft(row, x+boxW, "")
	return left + box + right
}
