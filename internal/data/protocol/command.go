package protocol

import (
	"fmt"

	"github.com/atomicstack/gametools-console/internal/console"
)

// Kind tags each command variant.
type Kind int

const (
	KindLogMessage Kind = iota + 1
	KindActivateModuleRequest
	KindActivateModuleResponse
	KindDeactivateModule
	KindFreeSession
	KindModuleData
	KindPersistStorage
	KindProtocolError
)

func (k Kind) String() string {
	switch k {
	case KindLogMessage:
		return "LogMessage"
	case KindActivateModuleRequest:
		return "ActivateModuleRequest"
	case KindActivateModuleResponse:
		return "ActivateModuleResponse"
	case KindDeactivateModule:
		return "DeactivateModule"
	case KindFreeSession:
		return "FreeSession"
	case KindModuleData:
		return "ModuleData"
	case KindPersistStorage:
		return "PersistStorage"
	case KindProtocolError:
		return "ProtocolError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Command is a decoded or to-be-encoded message. The set of variants is
// closed: only the types in this package implement it.
type Command interface {
	Kind() Kind
	sealed()
}

// LogMessage carries a line of text for the operator console.
type LogMessage struct {
	Source console.Source
	Level  console.Level
	Text   string
}

// ActivateModuleRequest asks the remote target to start a module instance.
// Serial correlates the eventual ActivateModuleResponse.
type ActivateModuleRequest struct {
	Serial int8
	Module ModuleID
	Params map[string]any
}

// ActivateModuleResponse reports the remote session assigned to a request.
type ActivateModuleResponse struct {
	Serial          int8
	RemoteSessionID int8
}

// DeactivateModule stops a remote module instance.
type DeactivateModule struct {
	RemoteSessionID int8
}

// FreeSession releases a remote session slot after deactivation.
type FreeSession struct {
	RemoteSessionID int8
}

// ModuleData carries a module instance's latest output.
type ModuleData struct {
	RemoteSessionID int8
	Module          ModuleID
	Data            map[string]any
}

// PersistStorage hands the encoded settings document to the server.
type PersistStorage struct {
	Data string
}

// ProtocolError stands in for a frame that could not be decoded.
type ProtocolError struct {
	Message string
}

func (LogMessage) Kind() Kind             { return KindLogMessage }
func (ActivateModuleRequest) Kind() Kind  { return KindActivateModuleRequest }
func (ActivateModuleResponse) Kind() Kind { return KindActivateModuleResponse }
func (DeactivateModule) Kind() Kind       { return KindDeactivateModule }
func (FreeSession) Kind() Kind            { return KindFreeSession }
func (ModuleData) Kind() Kind             { return KindModuleData }
func (PersistStorage) Kind() Kind         { return KindPersistStorage }
func (ProtocolError) Kind() Kind          { return KindProtocolError }

func (LogMessage) sealed()             {}
func (ActivateModuleRequest) sealed()  {}
func (ActivateModuleResponse) sealed() {}
func (DeactivateModule) sealed()       {}
func (FreeSession) sealed()            {}
func (ModuleData) sealed()             {}
func (PersistStorage) sealed()         {}
func (ProtocolError) sealed()          {}
