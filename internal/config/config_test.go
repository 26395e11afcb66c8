package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.ServerHost != "localhost" || cfg.App.ServerPort != 8001 {
		t.Fatalf("unexpected server %s:%d", cfg.App.ServerHost, cfg.App.ServerPort)
	}
	if cfg.App.ReconnectDelay != 5*time.Second {
		t.Fatalf("expected 5s reconnect delay, got %s", cfg.App.ReconnectDelay)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if got := cfg.App.ServerURL(); got != "ws://localhost:8001" {
		t.Fatalf("expected ws://localhost:8001, got %q", got)
	}
}

func TestLoadArgsPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "server_host: filehost\nserver_port: 7000\nreconnect_delay: 2s\nwidth: 90\ntrace: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	env := []string{
		"GAMETOOLS_CONFIG=" + path,
		"GAMETOOLS_SERVER_PORT=7100",
		"GAMETOOLS_SETTINGS_FILE=/tmp/s.json",
	}
	cfg, err := LoadArgs([]string{"--server-port", "7200", "--height=30"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.ServerHost != "filehost" {
		t.Fatalf("expected host from file, got %q", cfg.App.ServerHost)
	}
	if cfg.App.ServerPort != 7200 {
		t.Fatalf("expected port from flag, got %d", cfg.App.ServerPort)
	}
	if cfg.App.ReconnectDelay != 2*time.Second {
		t.Fatalf("expected 2s delay from file, got %s", cfg.App.ReconnectDelay)
	}
	if cfg.App.SettingsFile != "/tmp/s.json" {
		t.Fatalf("expected settings file from env, got %q", cfg.App.SettingsFile)
	}
	if cfg.App.Width != 90 || cfg.App.Height != 30 {
		t.Fatalf("unexpected size %dx%d", cfg.App.Width, cfg.App.Height)
	}
	if !cfg.Logging.Trace {
		t.Fatalf("expected trace enabled from file")
	}
	if cfg.Flags["server-port"] != "7200" {
		t.Fatalf("expected server-port flag 7200, got %q", cfg.Flags["server-port"])
	}
}

func TestLoadArgsEnvOverridesFile(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"GAMETOOLS_SERVER_PORT=7100", "GAMETOOLS_TRACE=1"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.ServerPort != 7100 || !cfg.Logging.Trace {
		t.Fatalf("expected env values, got port %d trace %v", cfg.App.ServerPort, cfg.Logging.Trace)
	}
}

func TestLoadArgsErrors(t *testing.T) {
	cases := []struct {
		args []string
		env  []string
	}{
		{args: []string{"--width", "-1"}},
		{args: []string{"--bogus"}},
		{env: []string{"GAMETOOLS_SERVER_PORT=abc"}},
		{env: []string{"GAMETOOLS_RECONNECT_DELAY=soon"}},
		{args: []string{"--config", "/does/not/exist.yaml"}},
	}
	for _, tc := range cases {
		if _, err := LoadArgs(tc.args, tc.env); err == nil {
			t.Fatalf("expected error for args %v env %v", tc.args, tc.env)
		}
	}
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg, err := LoadArgs([]string{"--server-port", "0"}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected validation error for port 0")
	}
}
