package state

import (
	"fmt"

	"github.com/atomicstack/gametools-console/internal/console"
	"github.com/atomicstack/gametools-console/internal/data/protocol"
	"github.com/atomicstack/gametools-console/internal/logging/events"
)

const maxSerial = 127

// nextSerial advances the activation serial: 1..127, then wraps to 0.
func (s *SessionStore) nextSerial() int8 {
	if s.serial >= maxSerial {
		s.serial = 0
	} else {
		s.serial++
	}
	return s.serial
}

// RequestActivation records a pending activation for a data or output
// session and returns the serial to send with the request. The pending
// entry never expires; a later response resolves it.
func (s *SessionStore) RequestActivation(id string, module protocol.ModuleID) (int8, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return 0, s.fail(fmt.Errorf("%w: %q", ErrSessionNotFound, id), fmt.Sprintf("Error: Activating %q which is not a Session", id))
	}
	if sess.Kind != KindData && sess.Kind != KindOutput {
		return 0, s.fail(fmt.Errorf("%w: %q is %s", ErrWrongKind, sess.Name, sess.Kind), fmt.Sprintf("Error: %q cannot be activated", sess.Name))
	}
	if sess.Data.Linked {
		return 0, s.fail(fmt.Errorf("%w: %q already linked to remote session %d", ErrInvalidValue, sess.Name, sess.Data.Remote),
			fmt.Sprintf("Error: %q is already active", sess.Name))
	}
	if !module.Known() {
		return 0, s.fail(fmt.Errorf("%w: %d", protocol.ErrUnknownModule, int(module)), fmt.Sprintf("Error: unknown module %d", int(module)))
	}
	serial := s.nextSerial()
	s.pending[serial] = id
	events.Session.ActivationRequested(id, serial, module.String())
	return serial, nil
}

// Pending returns the session waiting on serial.
func (s *SessionStore) Pending(serial int8) (string, bool) {
	id, ok := s.pending[serial]
	return id, ok
}

// ActivateOutput resolves a pending activation and links the session to
// the remote slot.
func (s *SessionStore) ActivateOutput(serial, remote int8) error {
	id, ok := s.pending[serial]
	if !ok {
		s.AppendLog(console.Warn, console.Client, fmt.Sprintf("Received activation for unknown serial %d", serial))
		return fmt.Errorf("%w: %d", ErrUnknownSerial, serial)
	}
	delete(s.pending, serial)
	return s.SetRemoteLink(id, remote)
}

// SetRemoteLink binds session id to a remote module slot. A slot already
// bound to another session moves to id.
func (s *SessionStore) SetRemoteLink(id string, remote int8) error {
	sess, ok := s.sessions[id]
	if !ok {
		return s.fail(fmt.Errorf("%w: %q", ErrSessionNotFound, id), fmt.Sprintf("Error: Linking %q which is not a Session", id))
	}
	if sess.Data == nil {
		return s.fail(fmt.Errorf("%w: %q is %s", ErrWrongKind, sess.Name, sess.Kind), fmt.Sprintf("Error: %q cannot be linked", sess.Name))
	}
	if previous, taken := s.links[remote]; taken && previous != id {
		if prev, ok := s.sessions[previous]; ok {
			prev.Data.Linked = false
			events.Session.Unlink(previous, remote)
		}
	}
	if sess.Data.Linked {
		delete(s.links, sess.Data.Remote)
	}
	sess.Data.Linked = true
	sess.Data.Remote = remote
	s.links[remote] = id
	s.AppendLog(console.Info, console.Client, fmt.Sprintf("Session %q is now remote session %d", sess.Name, remote))
	events.Session.Link(id, remote)
	return nil
}

// Unlink releases the session bound to remote, if any, and returns its id.
func (s *SessionStore) Unlink(remote int8) (string, bool) {
	id, ok := s.links[remote]
	if !ok {
		return "", false
	}
	delete(s.links, remote)
	if sess, exists := s.sessions[id]; exists {
		sess.Data.Linked = false
		sess.Data.Remote = 0
	}
	events.Session.Unlink(id, remote)
	return id, true
}

// LinkedSession returns the id bound to remote.
func (s *SessionStore) LinkedSession(remote int8) (string, bool) {
	id, ok := s.links[remote]
	return id, ok
}

// UpdateRemoteData replaces the live output of the session bound to remote.
func (s *SessionStore) UpdateRemoteData(remote int8, data map[string]any) error {
	id, ok := s.links[remote]
	if !ok {
		s.AppendLog(console.Warn, console.Client, fmt.Sprintf("Received data for unknown remote session %d", remote))
		return fmt.Errorf("%w: remote session %d", ErrSessionNotFound, remote)
	}
	s.sessions[id].Data.Live = cloneObject(data)
	return nil
}
