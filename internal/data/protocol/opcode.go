// Package protocol is the message catalog: the closed opcode set, the
// command values each opcode decodes into, and the per-kind encoders.
//
// Frames are [opcode uint16 LE][payload]. Log opcodes carry their source and
// level in the opcode itself; every other opcode is a literal value.
package protocol

import "github.com/atomicstack/gametools-console/internal/console"

// Opcode identifies a frame's message type.
type Opcode uint16

const (
	OpDebugMessage       Opcode = 0x0000
	OpInfoMessage        Opcode = 0x0100
	OpWarnMessage        Opcode = 0x0200
	OpErrorMessage       Opcode = 0x0300
	OpSwitchDebugMessage Opcode = 0x1000
	OpSwitchInfoMessage  Opcode = 0x1100
	OpSwitchWarnMessage  Opcode = 0x1200
	OpSwitchErrorMessage Opcode = 0x1300

	OpActivateModule         Opcode = 0x0001
	OpActivateModuleResponse Opcode = 0x0101
	OpDeactivateModule       Opcode = 0x0002
	OpFreeSession            Opcode = 0x0102
	OpModuleData             Opcode = 0x1202

	OpStorageRequest Opcode = 0x0014
)

// switchBit marks log messages that originate on the remote target.
const switchBit Opcode = 0x1000

var levelBits = map[console.Level]Opcode{
	console.Debug: 0x0000,
	console.Info:  0x0100,
	console.Warn:  0x0200,
	console.Error: 0x0300,
}

// logOpcode composes a log opcode from its source and level.
func logOpcode(source console.Source, level console.Level) Opcode {
	op := levelBits[level]
	if source == console.Switch {
		op |= switchBit
	}
	return op
}

// splitLogOpcode recovers source and level from a log opcode. A frame
// received here never originates from this client, so the non-switch
// family is attributed to the server.
func splitLogOpcode(op Opcode) (console.Source, console.Level) {
	source := console.Server
	if op&switchBit != 0 {
		source = console.Switch
	}
	switch op &^ switchBit {
	case 0x0100:
		return source, console.Info
	case 0x0200:
		return source, console.Warn
	case 0x0300:
		return source, console.Error
	default:
		return source, console.Debug
	}
}
