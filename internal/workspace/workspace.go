// Package workspace ties the session and widget stores to the transport.
// It is the port inbound commands act on and the place outbound commands
// are encoded and sent from.
package workspace

import (
	"fmt"
	"time"

	"github.com/atomicstack/gametools-console/internal/backend"
	"github.com/atomicstack/gametools-console/internal/console"
	"github.com/atomicstack/gametools-console/internal/data/dispatcher"
	"github.com/atomicstack/gametools-console/internal/data/protocol"
	"github.com/atomicstack/gametools-console/internal/logging"
	"github.com/atomicstack/gametools-console/internal/logging/events"
	"github.com/atomicstack/gametools-console/internal/settings"
	"github.com/atomicstack/gametools-console/internal/state"
)

// Sender writes encoded frames to the peer.
type Sender interface {
	Send(frame []byte) error
}

// Workspace owns the stores for the lifetime of the program. It is used
// from the UI event loop only.
type Workspace struct {
	Sessions *state.SessionStore
	Widgets  *state.WidgetStore

	sender Sender
	ready  bool

	file       *settings.FileStore
	lastSent   string
	lastStored string
}

var _ dispatcher.Port = (*Workspace)(nil)

// New wraps existing stores. sender may be nil until a transport exists.
func New(sessions *state.SessionStore, widgets *state.WidgetStore, sender Sender) *Workspace {
	return &Workspace{Sessions: sessions, Widgets: widgets, sender: sender}
}

// NewDefault builds a workspace around the default layout.
func NewDefault(sender Sender) *Workspace {
	sessions, widgets := state.NewDefault()
	return New(sessions, widgets, sender)
}

// SetSender attaches the transport.
func (w *Workspace) SetSender(sender Sender) {
	w.sender = sender
}

// SetSettingsFile mirrors every settings change to store.
func (w *Workspace) SetSettingsFile(store *settings.FileStore) {
	w.file = store
}

// Ready reports whether the transport is open.
func (w *Workspace) Ready() bool {
	return w.ready
}

// Log implements dispatcher.Port.
func (w *Workspace) Log(level console.Level, source console.Source, text string) {
	w.Sessions.AppendLog(level, source, text)
}

// ActivateOutput implements dispatcher.Port.
func (w *Workspace) ActivateOutput(serial, remote int8) {
	_ = w.Sessions.ActivateOutput(serial, remote)
}

// DeactivateOutput implements dispatcher.Port. The remote slot is released
// back to the peer once the local session is unlinked.
func (w *Workspace) DeactivateOutput(remote int8) {
	w.Sessions.Unlink(remote)
	w.Log(console.Info, console.Client, fmt.Sprintf("Freeing remote session %d...", remote))
	_ = w.Send(protocol.FreeSession{RemoteSessionID: remote})
}

// UpdateOutput implements dispatcher.Port.
func (w *Workspace) UpdateOutput(remote int8, data map[string]any) {
	_ = w.Sessions.UpdateRemoteData(remote, data)
}

// Send encodes cmd and writes it to the transport. Nothing is sent when
// encoding fails or the transport is not open.
func (w *Workspace) Send(cmd protocol.Command) error {
	frame, err := protocol.Encode(cmd)
	if err != nil {
		events.Packet.SendError(kindOf(cmd), err)
		w.Log(console.Error, console.Client, "Packet validation failed!")
		return err
	}
	if w.sender == nil || !w.ready {
		events.Packet.SendError(kindOf(cmd), backend.ErrNotConnected)
		w.Log(console.Error, console.Client, "Cannot send packet: WebSocket not ready")
		return backend.ErrNotConnected
	}
	if err := w.sender.Send(frame); err != nil {
		events.Packet.SendError(kindOf(cmd), err)
		logging.Error(err)
		w.Log(console.Error, console.Client, fmt.Sprintf("Cannot send packet: %v", err))
		return err
	}
	events.Packet.Send(kindOf(cmd), len(frame))
	return nil
}

func kindOf(cmd protocol.Command) string {
	if cmd == nil {
		return "nil"
	}
	return cmd.Kind().String()
}

// HandleFrame decodes and executes one inbound frame.
func (w *Workspace) HandleFrame(frame []byte) protocol.Command {
	return dispatcher.Handle(frame, w)
}

// HandleEvent applies a transport event.
func (w *Workspace) HandleEvent(evt backend.Event) {
	switch evt.Kind {
	case backend.KindConnecting:
		w.Log(console.Info, console.Client, fmt.Sprintf("Connecting to internal server at %s", evt.URL))
	case backend.KindOpen:
		w.ready = true
		w.Sessions.SetConnected(true)
		w.Log(console.Info, console.Client, "Internal server connected!")
		w.lastSent = ""
		w.SyncSettings()
	case backend.KindFrame:
		w.HandleFrame(evt.Frame)
	case backend.KindClosed:
		if evt.Err != nil {
			w.Log(console.Error, console.Client, "WebSocket error!")
			w.Log(console.Debug, console.Client, evt.Err.Error())
		}
		w.ready = false
		w.Sessions.SetConnected(false)
		w.Log(console.Info, console.Client, fmt.Sprintf("Disconnected from internal server. Will reconnect in %s...", formatDelay(evt.Delay)))
	}
}

func formatDelay(d time.Duration) string {
	if d <= 0 {
		d = backend.DefaultReconnectDelay
	}
	secs := d.Seconds()
	if secs == float64(int(secs)) {
		if secs == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", int(secs))
	}
	return d.String()
}
