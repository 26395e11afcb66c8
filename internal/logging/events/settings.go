package events

import "github.com/atomicstack/gametools-console/internal/logging"

type SettingsTracer struct{}

var Settings = SettingsTracer{}

func (SettingsTracer) Save(size int, target string) {
	logging.Trace("settings.save", map[string]interface{}{"size": size, "target": target})
}

func (SettingsTracer) Load(consoles, datas, outputs, widgets int) {
	logging.Trace("settings.load", map[string]interface{}{
		"consoles": consoles,
		"datas":    datas,
		"outputs":  outputs,
		"widgets":  widgets,
	})
}

func (SettingsTracer) LoadError(err error) {
	if err == nil {
		return
	}
	logging.Trace("settings.load.error", map[string]interface{}{"error": err.Error()})
}
