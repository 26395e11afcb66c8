package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/gametools-console/internal/backend"
	"github.com/atomicstack/gametools-console/internal/logging"
	"github.com/atomicstack/gametools-console/internal/logging/events"
	"github.com/atomicstack/gametools-console/internal/settings"
	"github.com/atomicstack/gametools-console/internal/ui"
	"github.com/atomicstack/gametools-console/internal/workspace"
)

// Config describes user-provided application options.
type Config struct {
	ServerHost     string
	ServerPort     int
	ReconnectDelay time.Duration
	Settings       string
	SettingsFile   string
	Width          int
	Height         int
}

// ServerURL is the websocket address of the intermediary server.
func (c Config) ServerURL() string {
	return fmt.Sprintf("ws://%s:%d", c.ServerHost, c.ServerPort)
}

// Run bootstraps the stores, connects the transport and executes the
// Bubble Tea program.
func Run(cfg Config) error {
	ws, err := newWorkspace(cfg)
	if err != nil {
		return err
	}
	conn := backend.Dial(cfg.ServerURL(), cfg.ReconnectDelay)
	defer conn.Stop()
	ws.SetSender(conn)

	model := ui.NewModel(ws, conn, cfg.Width, cfg.Height)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Stop("killed")
		return nil
	}
	if err != nil {
		events.App.Stop(err.Error())
		return err
	}
	events.App.Stop("quit")
	return nil
}

// newWorkspace builds the default stores and restores saved settings: the
// settings file first, then an explicit document on top of it. Broken
// documents are logged and leave the stores as they were.
func newWorkspace(cfg Config) (*workspace.Workspace, error) {
	ws := workspace.NewDefault(nil)
	if cfg.SettingsFile != "" {
		ws.SetSettingsFile(&settings.FileStore{Path: cfg.SettingsFile})
		if err := ws.LoadSettingsFile(); err != nil {
			// a broken file is logged and skipped
			logging.Error(fmt.Errorf("load settings file: %w", err))
		}
	}
	if err := ws.LoadSettings(cfg.Settings); err != nil {
		// the stores are untouched and the consoles carry the error line
		logging.Error(fmt.Errorf("load settings: %w", err))
	}
	return ws, nil
}
