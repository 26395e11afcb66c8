package dispatcher

import (
	"fmt"

	"github.com/atomicstack/gametools-console/internal/console"
	"github.com/atomicstack/gametools-console/internal/data/protocol"
	"github.com/atomicstack/gametools-console/internal/data/wire"
	"github.com/atomicstack/gametools-console/internal/logging/events"
)

// Port is the set of side effects an executed command may request.
type Port interface {
	Log(level console.Level, source console.Source, text string)
	ActivateOutput(serial, remoteSessionID int8)
	DeactivateOutput(remoteSessionID int8)
	UpdateOutput(remoteSessionID int8, data map[string]any)
}

// Decode turns a raw frame into a command. It never fails: undecodable
// frames come back as protocol.ProtocolError values.
func Decode(frame []byte) protocol.Command {
	r := wire.NewReader(frame)
	raw, ok := r.ReadUint16()
	if !ok {
		return decodeFailed(len(frame), "cannot read opcode")
	}
	op := protocol.Opcode(raw)
	decode, ok := protocol.Lookup(op)
	if !ok {
		return decodeFailed(len(frame), fmt.Sprintf("invalid opcode 0x%x", raw))
	}
	cmd, ok := decode(op, r)
	if !ok {
		return decodeFailed(len(frame), "error reading packet")
	}
	events.Packet.Decode(uint16(op), cmd.Kind().String(), len(frame))
	return cmd
}

func decodeFailed(size int, message string) protocol.Command {
	events.Packet.DecodeError(message, size)
	return protocol.ProtocolError{Message: message}
}

// Execute applies cmd to port. Each variant results in exactly one port
// call; messages that should never arrive are reported at debug level.
func Execute(cmd protocol.Command, port Port) {
	if cmd == nil || port == nil {
		return
	}
	events.Packet.Execute(cmd.Kind().String())
	switch c := cmd.(type) {
	case protocol.LogMessage:
		port.Log(c.Level, c.Source, c.Text)
	case protocol.ActivateModuleResponse:
		port.ActivateOutput(c.Serial, c.RemoteSessionID)
	case protocol.DeactivateModule:
		port.DeactivateOutput(c.RemoteSessionID)
	case protocol.ModuleData:
		port.UpdateOutput(c.RemoteSessionID, c.Data)
	case protocol.ProtocolError:
		port.Log(console.Error, console.Client, "IO Error: "+c.Message)
	case protocol.ActivateModuleRequest:
		port.Log(console.Debug, console.Client, "Unexpected Activate Module Request")
	case protocol.FreeSession:
		port.Log(console.Debug, console.Client, "Unexpected Free Session Request")
	case protocol.PersistStorage:
		port.Log(console.Debug, console.Client, "Unexpected Storage Request")
	default:
		port.Log(console.Debug, console.Client, fmt.Sprintf("Unexpected command %s", cmd.Kind()))
	}
}

// Handle decodes frame and executes the result against port.
func Handle(frame []byte, port Port) protocol.Command {
	cmd := Decode(frame)
	Execute(cmd, port)
	return cmd
}
