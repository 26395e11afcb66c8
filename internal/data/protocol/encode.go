package protocol

import (
	"errors"
	"fmt"

	"github.com/atomicstack/gametools-console/internal/console"
	"github.com/atomicstack/gametools-console/internal/data/wire"
)

var (
	// ErrWrongDirection is returned when encoding a message that only the
	// peer may send.
	ErrWrongDirection = errors.New("message cannot be sent from this side")
	// ErrUnknownModule is returned for activation requests naming a module
	// the catalog does not know.
	ErrUnknownModule = errors.New("unknown module")
	// ErrInvalidLevel is returned for log messages with an unknown level.
	ErrInvalidLevel = errors.New("invalid log level")
)

type encoder func(w *wire.Writer, cmd Command) error

var encoders = map[Kind]encoder{
	KindLogMessage:             encodeLogMessage,
	KindActivateModuleRequest:  encodeActivateModuleRequest,
	KindActivateModuleResponse: refuse,
	KindDeactivateModule:       encodeDeactivateModule,
	KindFreeSession:            encodeFreeSession,
	KindModuleData:             refuse,
	KindPersistStorage:         encodePersistStorage,
	KindProtocolError:          refuse,
}

// Encode packs cmd into a frame. Nothing is produced when the command is
// invalid for the outbound direction.
func Encode(cmd Command) ([]byte, error) {
	if cmd == nil {
		return nil, errors.New("nil command")
	}
	enc, ok := encoders[cmd.Kind()]
	if !ok {
		return nil, fmt.Errorf("no encoder for %s", cmd.Kind())
	}
	w := wire.NewWriter()
	if err := enc(w, cmd); err != nil {
		return nil, fmt.Errorf("encode %s: %w", cmd.Kind(), err)
	}
	return w.Bytes(), nil
}

func refuse(*wire.Writer, Command) error {
	return ErrWrongDirection
}

// as narrows cmd to the value type its kind promises.
func as[T Command](cmd Command) (T, error) {
	v, ok := cmd.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("unexpected command type %T", cmd)
	}
	return v, nil
}

func encodeLogMessage(w *wire.Writer, cmd Command) error {
	msg, err := as[LogMessage](cmd)
	if err != nil {
		return err
	}
	if msg.Source == console.Switch {
		return ErrWrongDirection
	}
	if !msg.Level.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, int(msg.Level))
	}
	w.WriteUint16(uint16(logOpcode(msg.Source, msg.Level)))
	w.WriteASCII(msg.Text)
	return nil
}

func encodeActivateModuleRequest(w *wire.Writer, cmd Command) error {
	req, err := as[ActivateModuleRequest](cmd)
	if err != nil {
		return err
	}
	mod, ok := modules[req.Module]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownModule, int(req.Module))
	}
	w.WriteUint16(uint16(OpActivateModule))
	w.WriteInt8(req.Serial)
	w.WriteInt16(int16(req.Module))
	return mod.packParams(w, req.Params)
}

func encodeDeactivateModule(w *wire.Writer, cmd Command) error {
	msg, err := as[DeactivateModule](cmd)
	if err != nil {
		return err
	}
	w.WriteUint16(uint16(OpDeactivateModule))
	w.WriteInt8(msg.RemoteSessionID)
	return nil
}

func encodeFreeSession(w *wire.Writer, cmd Command) error {
	msg, err := as[FreeSession](cmd)
	if err != nil {
		return err
	}
	w.WriteUint16(uint16(OpFreeSession))
	w.WriteInt8(msg.RemoteSessionID)
	return nil
}

func encodePersistStorage(w *wire.Writer, cmd Command) error {
	msg, err := as[PersistStorage](cmd)
	if err != nil {
		return err
	}
	w.WriteUint16(uint16(OpStorageRequest))
	w.WriteURI(msg.Data)
	return nil
}
