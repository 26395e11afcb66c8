package events

import "github.com/atomicstack/gametools-console/internal/logging"

type PacketTracer struct{}

var Packet = PacketTracer{}

func (PacketTracer) Decode(opcode uint16, kind string, size int) {
	logging.Trace("packet.decode", map[string]interface{}{"opcode": opcode, "kind": kind, "size": size})
}

func (PacketTracer) DecodeError(message string, size int) {
	logging.Trace("packet.decode.error", map[string]interface{}{"message": message, "size": size})
}

func (PacketTracer) Execute(kind string) {
	logging.Trace("packet.execute", map[string]interface{}{"kind": kind})
}

func (PacketTracer) Send(kind string, size int) {
	logging.Trace("packet.send", map[string]interface{}{"kind": kind, "size": size})
}

func (PacketTracer) SendError(kind string, err error) {
	payload := map[string]interface{}{"kind": kind}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("packet.send.error", payload)
}
