package workspace

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/gametools-console/internal/backend"
	"github.com/atomicstack/gametools-console/internal/data/protocol"
	"github.com/atomicstack/gametools-console/internal/settings"
	"github.com/atomicstack/gametools-console/internal/state"
)

type recordingSender struct {
	frames [][]byte
	err    error
}

func (r *recordingSender) Send(frame []byte) error {
	if r.err != nil {
		return r.err
	}
	r.frames = append(r.frames, append([]byte(nil), frame...))
	return nil
}

func (r *recordingSender) opcodes() []uint16 {
	ops := make([]uint16, len(r.frames))
	for i, f := range r.frames {
		ops[i] = uint16(f[0]) | uint16(f[1])<<8
	}
	return ops
}

func connected(t *testing.T) (*Workspace, *recordingSender) {
	t.Helper()
	sender := &recordingSender{}
	w := NewDefault(sender)
	w.HandleEvent(backend.Event{Kind: backend.KindOpen, URL: "ws://localhost:8001"})
	sender.frames = nil
	return w, sender
}

func consoleText(t *testing.T, w *Workspace) string {
	t.Helper()
	id, ok := w.Sessions.FirstConsole()
	if !ok {
		t.Fatalf("expected a console session")
	}
	sess, _ := w.Sessions.Session(id)
	return sess.Console.Buffer
}

func TestOpenSendsSettings(t *testing.T) {
	sender := &recordingSender{}
	w := NewDefault(sender)
	w.HandleEvent(backend.Event{Kind: backend.KindOpen})
	if !w.Ready() {
		t.Fatalf("expected workspace ready after open")
	}
	if len(sender.frames) != 1 || sender.opcodes()[0] != uint16(protocol.OpStorageRequest) {
		t.Fatalf("expected one storage frame, got %v", sender.opcodes())
	}
	w.SyncSettings()
	if len(sender.frames) != 1 {
		t.Fatalf("expected unchanged settings not to be resent, got %d frames", len(sender.frames))
	}
	w.Sessions.CreateDataSession("")
	w.SyncSettings()
	if len(sender.frames) != 2 {
		t.Fatalf("expected changed settings to be sent, got %d frames", len(sender.frames))
	}
	if !strings.Contains(consoleText(t, w), "Saving Settings ...") {
		t.Fatalf("expected save message in console")
	}
}

func TestSendWhileDisconnectedIsDropped(t *testing.T) {
	sender := &recordingSender{}
	w := NewDefault(sender)
	err := w.Send(protocol.FreeSession{RemoteSessionID: 1})
	if !errors.Is(err, backend.ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
	if len(sender.frames) != 0 {
		t.Fatalf("expected nothing sent")
	}
	if !strings.Contains(consoleText(t, w), "WebSocket not ready") {
		t.Fatalf("expected not-ready error in console")
	}
}

func TestSendRejectsWrongDirection(t *testing.T) {
	w, sender := connected(t)
	err := w.Send(protocol.ActivateModuleResponse{Serial: 1, RemoteSessionID: 1})
	if !errors.Is(err, protocol.ErrWrongDirection) {
		t.Fatalf("expected ErrWrongDirection, got %v", err)
	}
	if len(sender.frames) != 0 {
		t.Fatalf("expected nothing sent")
	}
	if !strings.Contains(consoleText(t, w), "Packet validation failed!") {
		t.Fatalf("expected validation failure in console")
	}
}

func TestActivateDeactivateRoundTrip(t *testing.T) {
	w, sender := connected(t)
	out := w.Sessions.CreateOutputSession("spy")
	if err := w.Activate(out, "CookSpy"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if len(sender.frames) != 1 || sender.opcodes()[0] != uint16(protocol.OpActivateModule) {
		t.Fatalf("expected activation request, got %v", sender.opcodes())
	}
	serial := int8(sender.frames[0][2])

	w.HandleFrame([]byte{0x01, 0x01, byte(serial), 12})
	if w.Sessions.CanClose(out) {
		t.Fatalf("expected linked session to be non-closable")
	}
	if err := w.Sessions.CloseSession(out); !errors.Is(err, state.ErrNotClosable) {
		t.Fatalf("expected ErrNotClosable, got %v", err)
	}

	w.HandleFrame([]byte{0x02, 0x12, 12, 0x01, 0x00, 40})
	sess, _ := w.Sessions.Session(out)
	if sess.Object()["CritChance"] != int8(40) {
		t.Fatalf("expected live data, got %v", sess.Object())
	}

	sender.frames = nil
	if err := w.Deactivate(out); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if !bytes.Equal(sender.frames[0], []byte{0x02, 0x00, 12}) {
		t.Fatalf("expected deactivate frame, got %v", sender.frames[0])
	}

	sender.frames = nil
	w.HandleFrame([]byte{0x02, 0x00, 12})
	if len(sender.frames) != 1 || !bytes.Equal(sender.frames[0], []byte{0x02, 0x01, 12}) {
		t.Fatalf("expected free session frame, got %v", sender.frames)
	}
	if !strings.Contains(consoleText(t, w), "Freeing remote session 12...") {
		t.Fatalf("expected free message in console")
	}
	if err := w.Sessions.CloseSession(out); err != nil {
		t.Fatalf("expected close after deactivation, got %v", err)
	}
}

func TestActivateFromDataSessionUsesModuleKey(t *testing.T) {
	w, sender := connected(t)
	d := w.Sessions.CreateDataSession("cfg")
	if err := w.Activate(d, ""); err == nil {
		t.Fatalf("expected error without Module key")
	}
	if !strings.Contains(consoleText(t, w), "Please specify the Module") {
		t.Fatalf("expected module prompt in console")
	}
	_ = w.Sessions.EditData(d, map[string]any{"Module": "Nope"})
	if err := w.Activate(d, ""); !errors.Is(err, protocol.ErrUnknownModule) {
		t.Fatalf("expected ErrUnknownModule, got %v", err)
	}
	_ = w.Sessions.EditData(d, map[string]any{"Module": "CookSpy"})
	if err := w.Activate(d, ""); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if len(sender.frames) != 1 {
		t.Fatalf("expected one frame, got %d", len(sender.frames))
	}
}

func TestMalformedFrameIsLogged(t *testing.T) {
	w, _ := connected(t)
	cmd := w.HandleFrame([]byte{0xFF, 0xFF})
	if cmd.Kind() != protocol.KindProtocolError {
		t.Fatalf("expected protocol error, got %s", cmd.Kind())
	}
	if !strings.Contains(consoleText(t, w), "IO Error: invalid opcode 0xffff") {
		t.Fatalf("expected io error in console, got %q", consoleText(t, w))
	}
}

func TestClosedEventLogsReconnect(t *testing.T) {
	w, _ := connected(t)
	w.HandleEvent(backend.Event{Kind: backend.KindClosed, Delay: 5 * time.Second})
	if w.Ready() {
		t.Fatalf("expected not ready after close")
	}
	if w.Sessions.ConnectionInfo().Connected {
		t.Fatalf("expected connection marked disconnected")
	}
	if !strings.Contains(consoleText(t, w), "Will reconnect in 5 seconds...") {
		t.Fatalf("expected reconnect message, got %q", consoleText(t, w))
	}
}

func TestSettingsFileMirrorsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	w := NewDefault(nil)
	w.SetSettingsFile(&settings.FileStore{Path: path})
	w.Sessions.CreateDataSession("kept")
	w.SyncSettings()

	restored := NewDefault(nil)
	restored.SetSettingsFile(&settings.FileStore{Path: path})
	if err := restored.LoadSettingsFile(); err != nil {
		t.Fatalf("load: %v", err)
	}
	found := false
	for _, sess := range restored.Sessions.Sessions() {
		if sess.Name == "kept" && sess.Kind == state.KindData {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected data session restored from file")
	}
}

func TestFormatDelay(t *testing.T) {
	cases := map[time.Duration]string{
		0:                       "5 seconds",
		time.Second:             "1 second",
		10 * time.Second:        "10 seconds",
		1500 * time.Millisecond: "1.5s",
	}
	for in, want := range cases {
		if got := formatDelay(in); got != want {
			t.Fatalf("expected %q for %v, got %q", want, in, got)
		}
	}
}
