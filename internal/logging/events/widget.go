package events

import "github.com/atomicstack/gametools-console/internal/logging"

type WidgetTracer struct{}

var Widget = WidgetTracer{}

func (WidgetTracer) Bind(index int, session string) {
	logging.Trace("widget.bind", map[string]interface{}{"index": index, "session": session})
}

func (WidgetTracer) Theme(index int, theme string) {
	logging.Trace("widget.theme", map[string]interface{}{"index": index, "theme": theme})
}

func (WidgetTracer) Split(index int, session string, total int) {
	logging.Trace("widget.split", map[string]interface{}{"index": index, "session": session, "total": total})
}

func (WidgetTracer) Close(index int, remaining int) {
	logging.Trace("widget.close", map[string]interface{}{"index": index, "remaining": remaining})
}

func (WidgetTracer) Prune(index int, session string) {
	logging.Trace("widget.prune", map[string]interface{}{"index": index, "session": session})
}

func (WidgetTracer) Layout(index, x, y, w, h int) {
	logging.Trace("widget.layout", map[string]interface{}{"index": index, "x": x, "y": y, "w": w, "h": h})
}

func (WidgetTracer) Default(session string) {
	logging.Trace("widget.default", map[string]interface{}{"session": session})
}
