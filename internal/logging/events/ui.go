package events

import "github.com/atomicstack/gametools-console/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

type PromptTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
	Prompt  = PromptTracer{}
)

func (UITracer) PaletteOpen(widget int, session string) {
	logging.Trace("palette.open", map[string]interface{}{"widget": widget, "session": session})
}

func (UITracer) PaletteEnter(levelID, itemID, label, filter string) {
	logging.Trace("palette.enter", map[string]interface{}{
		"level":  levelID,
		"item":   itemID,
		"label":  label,
		"filter": filter,
	})
}

func (UITracer) PaletteCursor(levelID string, cursor int) {
	logging.Trace("palette.cursor", map[string]interface{}{"level": levelID, "cursor": cursor})
}

func (UITracer) Focus(widget int) {
	logging.Trace("ui.focus", map[string]interface{}{"widget": widget})
}

func (UITracer) LayoutMode(enabled bool) {
	logging.Trace("ui.layout-mode", map[string]interface{}{"enabled": enabled})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Cleared(levelID string) {
	logging.Trace("filter.clear", map[string]interface{}{"level": levelID})
}

func (FilterTracer) WordBackspace(levelID, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) Append(levelID, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) Backspace(levelID, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"level": levelID, "filter": filter})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (PromptTracer) Open(action, target string) {
	logging.Trace("prompt.open", map[string]interface{}{"action": action, "target": target})
}

func (PromptTracer) Submit(action, target string) {
	logging.Trace("prompt.submit", map[string]interface{}{"action": action, "target": target})
}

func (PromptTracer) Cancel(action, target string) {
	logging.Trace("prompt.cancel", map[string]interface{}{"action": action, "target": target})
}
