package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/gametools-console/internal/format/table"
	"github.com/atomicstack/gametools-console/internal/state"
)

var helpLines = []string{
	"ctrl+p or :   open the palette for the focused widget",
	"tab           focus next widget",
	"shift+tab     focus previous widget",
	"ctrl+e        edit layout",
	"  arrows/hjkl move the focused widget",
	"  shift+arrow resize the focused widget",
	"  enter/esc   save layout",
	"q / ctrl+c    quit",
	"",
	"Open or Split a widget to show another session.",
	"Data sessions naming a Module can be activated on the target;",
	"output sessions show the module's live data.",
}

// widgetContent returns the body lines for sess, keeping only the last
// rows lines where the content is a scrolling log.
func widgetContent(sess state.Session, ok bool, rows int) []string {
	if !ok {
		return []string{"(Invalid Session)"}
	}
	switch sess.Kind {
	case state.KindConsole:
		return consoleLines(sess, rows)
	case state.KindData:
		return dataLines(sess)
	case state.KindOutput:
		lines := []string{linkStatus(sess)}
		if live := table.Object(sess.Object()); len(live) > 0 {
			return append(lines, live...)
		}
		return append(lines, "(waiting for module data)")
	case state.KindConnection:
		return table.Object(sess.Object())
	case state.KindHelp:
		return helpLines
	}
	return nil
}

func consoleLines(sess state.Session, rows int) []string {
	if sess.Console == nil {
		return nil
	}
	buffer := strings.TrimRight(sess.Console.Buffer, "\n")
	if buffer == "" {
		return nil
	}
	lines := strings.Split(buffer, "\n")
	if rows > 0 && len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	return lines
}

func dataLines(sess state.Session) []string {
	lines := []string{linkStatus(sess)}
	if obj := table.Object(sess.Object()); len(obj) > 0 {
		lines = append(lines, obj...)
	} else {
		lines = append(lines, "(empty)")
	}
	if sess.Data != nil && len(sess.Data.Live) > 0 {
		lines = append(lines, "", "Live:")
		lines = append(lines, table.Object(sess.Data.Live)...)
	}
	return lines
}

func linkStatus(sess state.Session) string {
	if sess.Linked() {
		return fmt.Sprintf("● remote session %d", sess.RemoteIndex())
	}
	return "○ not active"
}
