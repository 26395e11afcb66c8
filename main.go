package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/gametools-console/internal/app"
	"github.com/atomicstack/gametools-console/internal/config"
	"github.com/atomicstack/gametools-console/internal/logging"
	"github.com/atomicstack/gametools-console/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	events.App.Start(startupPayload(cfg, int(os.Stdout.Fd())))

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupPayload records where the console connects, which settings it
// restores and the canvas it starts with.
func startupPayload(cfg config.Config, fd int) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	return map[string]interface{}{
		"argv":  cfg.Args,
		"flags": flags,
		"server": map[string]interface{}{
			"url":            cfg.App.ServerURL(),
			"reconnectDelay": cfg.App.ReconnectDelay.String(),
		},
		"settings": describeSettings(cfg.App),
		"viewport": detectViewport(cfg.App, fd),
	}
}

type settingsSource struct {
	Source        string `json:"source"`
	File          string `json:"file,omitempty"`
	DocumentBytes int    `json:"document_bytes,omitempty"`
}

// describeSettings names the document that wins at startup: an explicit
// document overrides the settings file, which overrides the default layout.
func describeSettings(cfg app.Config) settingsSource {
	s := settingsSource{Source: "default", File: cfg.SettingsFile, DocumentBytes: len(cfg.Settings)}
	switch {
	case cfg.Settings != "":
		s.Source = "flag"
	case cfg.SettingsFile != "":
		s.Source = "file"
	}
	return s
}

type viewport struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Fixed  bool   `json:"fixed"`
	Source string `json:"source"`
	Error  string `json:"error,omitempty"`
}

// detectViewport reports the canvas the dashboard starts with. Sizes given
// in the config are pinned; missing ones come from the terminal on fd.
func detectViewport(cfg app.Config, fd int) viewport {
	v := viewport{Width: cfg.Width, Height: cfg.Height}
	if cfg.Width > 0 && cfg.Height > 0 {
		v.Fixed = true
		v.Source = "config"
		return v
	}
	if fd < 0 || !term.IsTerminal(fd) {
		v.Source = "none"
		return v
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		v.Source = "none"
		v.Error = err.Error()
		return v
	}
	if v.Width <= 0 {
		v.Width = width
	}
	if v.Height <= 0 {
		v.Height = height
	}
	v.Source = "terminal"
	return v
}
