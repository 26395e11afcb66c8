package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	paletteMaxItems = 10
	statusBarRows   = 1
	paletteFooter   = "↑/↓ move  enter select  esc back  ctrl+c quit"
	dashboardHints  = "ctrl+p palette  tab focus  ctrl+e layout  q quit"
)

// View implements tea.Model.
func (m *Model) View() string {
	bodyH := m.bodyHeight()
	rows := m.renderDashboard(m.width, bodyH)
	var overlay []string
	switch m.mode {
	case ModePalette:
		overlay = m.paletteLines()
	case ModePrompt:
		overlay = m.promptLines()
	}
	if len(overlay) > bodyH {
		overlay = overlay[len(overlay)-bodyH:]
	}
	start := bodyH - len(overlay)
	for i, line := range overlay {
		rows[start+i] = fitLine(line, m.width)
	}
	rows = append(rows, m.statusLine())
	return strings.Join(rows, "\n")
}

func (m *Model) bodyHeight() int {
	h := m.height - statusBarRows
	if h < 1 {
		h = 1
	}
	return h
}

// maxVisibleItems is the number of palette entries shown at once.
func (m *Model) maxVisibleItems() int {
	// header, filter prompt and footer share the overlay with the items.
	avail := m.bodyHeight() - 3
	if avail < 1 {
		avail = 1
	}
	if avail > paletteMaxItems {
		avail = paletteMaxItems
	}
	return avail
}

func (m *Model) paletteLines() []string {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	lines := make([]string, 0, paletteMaxItems+3)
	lines = append(lines, styles.Header.Render(m.paletteHeader()))
	if len(current.Items) == 0 {
		msg := "(no entries)"
		if current.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", current.Filter)
		}
		lines = append(lines, styles.Info.Render(msg))
	} else {
		visible, _ := current.Visible(m.maxVisibleItems())
		for _, idx := range visible {
			lines = append(lines, m.buildItemLine(current.Items[idx].Label, idx == current.Cursor))
		}
	}
	lines = append(lines, m.filterPrompt())
	lines = append(lines, styles.Footer.Render(paletteFooter))
	return lines
}

// buildItemLine renders one palette entry padded to the full width so the
// selected background spans the row.
func (m *Model) buildItemLine(label string, selected bool) string {
	indicatorStyle := styles.ItemIndicator
	lineStyle := styles.Item
	if selected {
		indicatorStyle = styles.SelectedIndicator
		lineStyle = styles.SelectedItem
	}
	text := " " + label
	if pad := m.width - 1 - lipgloss.Width(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return indicatorStyle.Render("▌") + lineStyle.Render(text)
}

func (m *Model) promptLines() []string {
	if m.form == nil {
		return nil
	}
	lines := []string{
		styles.Header.Render(m.form.Title()),
		m.form.InputView(),
	}
	if msg := m.form.Error(); msg != "" {
		lines = append(lines, styles.Error.Render(msg))
	}
	lines = append(lines, styles.Footer.Render(m.form.Help()))
	return lines
}

// statusLine reports the link state, the latest message and key hints.
func (m *Model) statusLine() string {
	var segments []string
	url := ""
	if m.conn != nil {
		url = m.conn.URL()
	}
	if m.ws != nil && m.ws.Sessions.ConnectionInfo().Connected {
		segments = append(segments, styles.StatusOnline.Render("● connected")+" "+styles.Status.Render(url))
	} else {
		segments = append(segments, styles.StatusOffline.Render("○ disconnected")+" "+styles.Status.Render(url))
	}
	if m.editing {
		segments = append(segments, styles.LayoutBadge.Render(" LAYOUT "))
	}
	switch {
	case m.errMsg != "":
		segments = append(segments, styles.Error.Render("Error: "+m.errMsg))
	case m.currentInfo() != "":
		segments = append(segments, styles.Info.Render(m.infoMsg))
	default:
		segments = append(segments, styles.Footer.Render(dashboardHints))
	}
	return fitLine(strings.Join(segments, "  "), m.width)
}

// fitLine pads or truncates line to exactly width visible cells.
func fitLine(line string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(line)
	if w > width {
		line = truncateText(line, width)
		w = lipgloss.Width(line)
	}
	if w < width {
		line += strings.Repeat(" ", width-w)
	}
	return line
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(text) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
