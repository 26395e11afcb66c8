package protocol

import "github.com/atomicstack/gametools-console/internal/data/wire"

// Decoder reads one command's payload. It returns ok=false when the payload
// is truncated or names something the catalog does not know.
type Decoder func(op Opcode, r *wire.Reader) (Command, bool)

var registry = map[Opcode]Decoder{
	OpDebugMessage:       decodeLogMessage,
	OpInfoMessage:        decodeLogMessage,
	OpWarnMessage:        decodeLogMessage,
	OpErrorMessage:       decodeLogMessage,
	OpSwitchDebugMessage: decodeLogMessage,
	OpSwitchInfoMessage:  decodeLogMessage,
	OpSwitchWarnMessage:  decodeLogMessage,
	OpSwitchErrorMessage: decodeLogMessage,

	OpActivateModule:         decodeActivateModuleRequest,
	OpActivateModuleResponse: decodeActivateModuleResponse,
	OpDeactivateModule:       decodeDeactivateModule,
	OpFreeSession:            decodeFreeSession,
	OpModuleData:             decodeModuleData,
	OpStorageRequest:         decodePersistStorage,
}

// Lookup returns the decoder registered for op.
func Lookup(op Opcode) (Decoder, bool) {
	d, ok := registry[op]
	return d, ok
}

func decodeLogMessage(op Opcode, r *wire.Reader) (Command, bool) {
	source, level := splitLogOpcode(op)
	text, ok := r.ReadASCII()
	if !ok {
		return nil, false
	}
	return LogMessage{Source: source, Level: level, Text: text}, true
}

// decodeActivateModuleRequest reads the header only; no module defines
// activation params yet, so nothing follows the module id.
func decodeActivateModuleRequest(_ Opcode, r *wire.Reader) (Command, bool) {
	serial, ok := r.ReadInt8()
	if !ok {
		return nil, false
	}
	id, ok := r.ReadInt16()
	if !ok {
		return nil, false
	}
	if !ModuleID(id).Known() {
		return nil, false
	}
	return ActivateModuleRequest{Serial: serial, Module: ModuleID(id), Params: map[string]any{}}, true
}

func decodeActivateModuleResponse(_ Opcode, r *wire.Reader) (Command, bool) {
	serial, ok := r.ReadInt8()
	if !ok {
		return nil, false
	}
	remote, ok := r.ReadInt8()
	if !ok {
		return nil, false
	}
	return ActivateModuleResponse{Serial: serial, RemoteSessionID: remote}, true
}

func decodeDeactivateModule(_ Opcode, r *wire.Reader) (Command, bool) {
	remote, ok := r.ReadInt8()
	if !ok {
		return nil, false
	}
	return DeactivateModule{RemoteSessionID: remote}, true
}

func decodeFreeSession(_ Opcode, r *wire.Reader) (Command, bool) {
	remote, ok := r.ReadInt8()
	if !ok {
		return nil, false
	}
	return FreeSession{RemoteSessionID: remote}, true
}

func decodeModuleData(_ Opcode, r *wire.Reader) (Command, bool) {
	remote, ok := r.ReadInt8()
	if !ok {
		return nil, false
	}
	id, ok := r.ReadInt16()
	if !ok {
		return nil, false
	}
	mod, known := modules[ModuleID(id)]
	if !known {
		return nil, false
	}
	data, ok := mod.unpackData(r)
	if !ok {
		return nil, false
	}
	return ModuleData{RemoteSessionID: remote, Module: ModuleID(id), Data: data}, true
}

func decodePersistStorage(_ Opcode, r *wire.Reader) (Command, bool) {
	data, ok := r.ReadURI()
	if !ok {
		return nil, false
	}
	return PersistStorage{Data: data}, true
}
