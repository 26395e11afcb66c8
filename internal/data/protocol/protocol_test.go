package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomicstack/gametools-console/internal/console"
	"github.com/atomicstack/gametools-console/internal/data/wire"
)

func decodeFrame(t *testing.T, frame []byte) (Command, bool) {
	t.Helper()
	r := wire.NewReader(frame)
	raw, ok := r.ReadUint16()
	require.True(t, ok)
	dec, ok := Lookup(Opcode(raw))
	require.True(t, ok, "opcode 0x%x not registered", raw)
	return dec(Opcode(raw), r)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cmds := []Command{
		LogMessage{Source: console.Server, Level: console.Debug, Text: "debug"},
		LogMessage{Source: console.Server, Level: console.Error, Text: "multi\nline"},
		ActivateModuleRequest{Serial: 127, Module: ModuleCookSpy, Params: map[string]any{}},
		DeactivateModule{RemoteSessionID: -1},
		FreeSession{RemoteSessionID: 42},
		PersistStorage{Data: `{"consoles":{},"name":"a b+c%"}`},
	}
	for _, cmd := range cmds {
		frame, err := Encode(cmd)
		require.NoError(t, err)
		got, ok := decodeFrame(t, frame)
		require.True(t, ok)
		require.Equal(t, cmd, got)
	}
}

func TestEncodeClientLogUsesBaseFamily(t *testing.T) {
	frame, err := Encode(LogMessage{Source: console.Client, Level: console.Warn, Text: "x"})
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x02, 'x', 0x00}, frame)
}

func TestEncodeSanitizesASCII(t *testing.T) {
	frame, err := Encode(LogMessage{Source: console.Server, Level: console.Info, Text: "a\tb\x00é"})
	require.NoError(t, err)
	got, ok := decodeFrame(t, frame)
	require.True(t, ok)
	require.Equal(t, "a?b???", got.(LogMessage).Text)
}

func TestEncodeRejectsWrongDirection(t *testing.T) {
	refused := []Command{
		LogMessage{Source: console.Switch, Level: console.Info, Text: "x"},
		ActivateModuleResponse{Serial: 1, RemoteSessionID: 2},
		ModuleData{RemoteSessionID: 1, Module: ModuleCookSpy, Data: map[string]any{}},
		ProtocolError{Message: "x"},
	}
	for _, cmd := range refused {
		frame, err := Encode(cmd)
		require.ErrorIs(t, err, ErrWrongDirection, cmd.Kind().String())
		require.Nil(t, frame)
	}
}

func TestEncodeRejectsUnknownModuleAndLevel(t *testing.T) {
	_, err := Encode(ActivateModuleRequest{Serial: 1, Module: 99})
	require.ErrorIs(t, err, ErrUnknownModule)

	_, err = Encode(LogMessage{Source: console.Client, Level: console.Level(9), Text: "x"})
	require.ErrorIs(t, err, ErrInvalidLevel)

	_, err = Encode(nil)
	require.Error(t, err)
}

func TestActivateRequestLayout(t *testing.T) {
	frame, err := Encode(ActivateModuleRequest{Serial: 3, Module: ModuleCookSpy})
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x00, 0x03, 0x01, 0x00}, frame)
}

func TestPersistStorageEscapesSpaces(t *testing.T) {
	frame, err := Encode(PersistStorage{Data: "a b"})
	require.NoError(t, err)
	require.Equal(t, []byte{0x14, 0x00, 'a', '%', '2', '0', 'b', 0x00}, frame)
}

func TestLogOpcodeSplit(t *testing.T) {
	for _, level := range console.Levels {
		for _, source := range []console.Source{console.Server, console.Switch} {
			gotSource, gotLevel := splitLogOpcode(logOpcode(source, level))
			require.Equal(t, source, gotSource)
			require.Equal(t, level, gotLevel)
		}
	}
}

func TestModuleCatalog(t *testing.T) {
	id, ok := ModuleByName("CookSpy")
	require.True(t, ok)
	require.Equal(t, ModuleCookSpy, id)
	require.Equal(t, "CookSpy", id.String())
	require.Equal(t, []string{"CookSpy"}, ModuleNames())

	_, ok = ModuleByName("Nope")
	require.False(t, ok)
	require.False(t, ModuleID(0).Known())
}

func TestUnknownOpcodeNotRegistered(t *testing.T) {
	_, ok := Lookup(0xffff)
	require.False(t, ok)
	_, ok = Lookup(0x0400)
	require.False(t, ok)
}
