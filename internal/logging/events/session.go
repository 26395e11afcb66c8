package events

import "github.com/atomicstack/gametools-console/internal/logging"

type SessionTracer struct{}

var Session = SessionTracer{}

func (SessionTracer) Create(id, kind, name string) {
	logging.Trace("session.create", map[string]interface{}{"id": id, "kind": kind, "name": name})
}

func (SessionTracer) Rename(id, name string) {
	logging.Trace("session.rename", map[string]interface{}{"id": id, "name": name})
}

func (SessionTracer) Close(id string) {
	logging.Trace("session.close", map[string]interface{}{"id": id})
}

func (SessionTracer) CloseRejected(id, reason string) {
	logging.Trace("session.close.rejected", map[string]interface{}{"id": id, "reason": reason})
}

func (SessionTracer) EditData(id string, keys int) {
	logging.Trace("session.data.edit", map[string]interface{}{"id": id, "keys": keys})
}

func (SessionTracer) Filter(id, level string, enabled map[string]bool) {
	logging.Trace("session.console.filter", map[string]interface{}{"id": id, "level": level, "enabled": enabled})
}

func (SessionTracer) ActivationRequested(id string, serial int8, module string) {
	logging.Trace("session.activation.request", map[string]interface{}{"id": id, "serial": serial, "module": module})
}

func (SessionTracer) Link(id string, remote int8) {
	logging.Trace("session.link", map[string]interface{}{"id": id, "remote": remote})
}

func (SessionTracer) Unlink(id string, remote int8) {
	logging.Trace("session.unlink", map[string]interface{}{"id": id, "remote": remote})
}
