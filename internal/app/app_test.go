package app

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/gametools-console/internal/settings"
	"github.com/atomicstack/gametools-console/internal/workspace"
)

func TestServerURL(t *testing.T) {
	cfg := Config{ServerHost: "10.0.0.2", ServerPort: 9000}
	if got := cfg.ServerURL(); got != "ws://10.0.0.2:9000" {
		t.Fatalf("unexpected url %q", got)
	}
}

func exportRenamed(t *testing.T, name string) string {
	t.Helper()
	ws := workspace.NewDefault(nil)
	id, _ := ws.Sessions.FirstConsole()
	if err := ws.Sessions.RenameSession(id, name); err != nil {
		t.Fatalf("rename: %v", err)
	}
	encoded, err := ws.ExportSettings()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	return encoded
}

func firstConsoleName(t *testing.T, ws *workspace.Workspace) string {
	t.Helper()
	id, ok := ws.Sessions.FirstConsole()
	if !ok {
		t.Fatalf("expected a console")
	}
	sess, _ := ws.Sessions.Session(id)
	return sess.Name
}

func TestNewWorkspaceRestoresSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := (settings.FileStore{Path: path}).Save(exportRenamed(t, "From File")); err != nil {
		t.Fatalf("save: %v", err)
	}
	ws, err := newWorkspace(Config{SettingsFile: path})
	if err != nil {
		t.Fatalf("newWorkspace: %v", err)
	}
	if got := firstConsoleName(t, ws); got != "From File" {
		t.Fatalf("expected console from file, got %q", got)
	}
}

func TestNewWorkspaceExplicitSettingsWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := (settings.FileStore{Path: path}).Save(exportRenamed(t, "From File")); err != nil {
		t.Fatalf("save: %v", err)
	}
	ws, err := newWorkspace(Config{SettingsFile: path, Settings: exportRenamed(t, "From Flag")})
	if err != nil {
		t.Fatalf("newWorkspace: %v", err)
	}
	if got := firstConsoleName(t, ws); got != "From Flag" {
		t.Fatalf("expected console from flag, got %q", got)
	}
}

func TestNewWorkspaceDefaultsWithoutSettings(t *testing.T) {
	ws, err := newWorkspace(Config{})
	if err != nil {
		t.Fatalf("newWorkspace: %v", err)
	}
	if got := firstConsoleName(t, ws); got != "Console 1" {
		t.Fatalf("expected default console, got %q", got)
	}
	if n := ws.Widgets.Len(); n != 2 {
		t.Fatalf("expected default widgets, got %d", n)
	}
}

func TestNewWorkspaceKeepsDefaultsOnBrokenSettings(t *testing.T) {
	ws, err := newWorkspace(Config{Settings: "%7Bnot-json"})
	if err != nil {
		t.Fatalf("expected broken settings to be non-fatal, got %v", err)
	}
	if ws == nil {
		t.Fatalf("expected a workspace")
	}
	if n := ws.Widgets.Len(); n != 2 {
		t.Fatalf("expected default widgets, got %d", n)
	}
	id, ok := ws.Sessions.FirstConsole()
	if !ok {
		t.Fatalf("expected the default console")
	}
	sess, _ := ws.Sessions.Session(id)
	if sess.Name != "Console 1" {
		t.Fatalf("expected default console, got %q", sess.Name)
	}
	if !strings.Contains(sess.Console.Buffer, "Error when loading settings") {
		t.Fatalf("expected error line in console, got %q", sess.Console.Buffer)
	}
}
