package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/atomicstack/gametools-console/internal/app"
	"github.com/atomicstack/gametools-console/internal/backend"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// File is the optional YAML configuration file. Values there sit below
// environment variables and flags.
type File struct {
	ServerHost     string `yaml:"server_host"`
	ServerPort     int    `yaml:"server_port"`
	ReconnectDelay string `yaml:"reconnect_delay"`
	Settings       string `yaml:"settings"`
	SettingsFile   string `yaml:"settings_file"`
	Width          int    `yaml:"width"`
	Height         int    `yaml:"height"`
	Trace          bool   `yaml:"trace"`
	LogFile        string `yaml:"log_file"`
}

const (
	envConfig         = "GAMETOOLS_CONFIG"
	envServerHost     = "GAMETOOLS_SERVER_HOST"
	envServerPort     = "GAMETOOLS_SERVER_PORT"
	envReconnectDelay = "GAMETOOLS_RECONNECT_DELAY"
	envSettings       = "GAMETOOLS_SETTINGS"
	envSettingsFile   = "GAMETOOLS_SETTINGS_FILE"
	envWidth          = "GAMETOOLS_WIDTH"
	envHeight         = "GAMETOOLS_HEIGHT"
	envTrace          = "GAMETOOLS_TRACE"
	envLogFile        = "GAMETOOLS_LOG_FILE"
)

const (
	defaultServerHost = "localhost"
	defaultServerPort = 8001
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := pflag.NewFlagSet("gametools-console", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configPath := fs.String("config", "", "path to a YAML configuration file")
	host := fs.String("server-host", defaultServerHost, "host of the internal server")
	port := fs.Int("server-port", defaultServerPort, "port of the internal server")
	delay := fs.Duration("reconnect-delay", backend.DefaultReconnectDelay, "pause before redialling a dropped connection")
	encoded := fs.String("settings", "", "percent-encoded settings document to restore at startup")
	settingsFile := fs.String("settings-file", "", "keep settings in this JSON file as well as on the server")
	width := fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)")
	trace := fs.Bool("trace", false, "enable verbose JSON trace logging")
	logFile := fs.String("log-file", "", "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	path := *configPath
	if !fs.Changed("config") {
		path = envOrDefault(env, envConfig, "")
	}
	var file File
	if path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		file = loaded
	}

	r := resolver{fs: fs, env: env}
	cfg := app.Config{
		ServerHost:   r.stringValue("server-host", *host, envServerHost, file.ServerHost),
		ServerPort:   r.intValue("server-port", *port, envServerPort, file.ServerPort),
		Settings:     r.stringValue("settings", *encoded, envSettings, file.Settings),
		SettingsFile: r.stringValue("settings-file", *settingsFile, envSettingsFile, file.SettingsFile),
		Width:        r.intValue("width", *width, envWidth, file.Width),
		Height:       r.intValue("height", *height, envHeight, file.Height),
	}
	reconnect, err := r.duration("reconnect-delay", *delay, envReconnectDelay, file.ReconnectDelay)
	if err != nil {
		return Config{}, err
	}
	cfg.ReconnectDelay = reconnect
	logging := Logging{
		FilePath: r.stringValue("log-file", *logFile, envLogFile, file.LogFile),
		Trace:    r.boolValue("trace", *trace, envTrace, file.Trace),
	}
	if r.err != nil {
		return Config{}, r.err
	}

	if cfg.Width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", cfg.Width)
	}
	if cfg.Height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", cfg.Height)
	}

	return Config{
		App:     cfg,
		Logging: logging,
		Flags: map[string]string{
			"config":          path,
			"server-host":     cfg.ServerHost,
			"server-port":     strconv.Itoa(cfg.ServerPort),
			"reconnect-delay": cfg.ReconnectDelay.String(),
			"settings-file":   cfg.SettingsFile,
			"width":           strconv.Itoa(cfg.Width),
			"height":          strconv.Itoa(cfg.Height),
			"trace":           strconv.FormatBool(logging.Trace),
			"logFile":         logging.FilePath,
		},
		Args: append([]string(nil), args...),
	}, nil
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return file, nil
}

// resolver picks each setting from, in order: an explicit flag, the
// environment, the config file, then the flag default.
type resolver struct {
	fs  *pflag.FlagSet
	env map[string]string
	err error
}

func (r *resolver) stringValue(flag, value, envKey, fileValue string) string {
	if r.fs.Changed(flag) {
		return value
	}
	if v, ok := r.env[envKey]; ok {
		return v
	}
	if fileValue != "" {
		return fileValue
	}
	return value
}

func (r *resolver) intValue(flag string, value int, envKey string, fileValue int) int {
	if r.fs.Changed(flag) {
		return value
	}
	if v, ok := r.env[envKey]; ok && strings.TrimSpace(v) != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			r.fail(fmt.Errorf("%s: invalid integer %q", envKey, v))
			return value
		}
		return parsed
	}
	if fileValue != 0 {
		return fileValue
	}
	return value
}

func (r *resolver) boolValue(flag string, value bool, envKey string, fileValue bool) bool {
	if r.fs.Changed(flag) {
		return value
	}
	if v, ok := r.env[envKey]; ok && strings.TrimSpace(v) != "" {
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			r.fail(fmt.Errorf("%s: invalid boolean %q", envKey, v))
			return value
		}
		return parsed
	}
	return value || fileValue
}

func (r *resolver) duration(flag string, value time.Duration, envKey, fileValue string) (time.Duration, error) {
	if r.fs.Changed(flag) {
		return value, nil
	}
	raw := fileValue
	source := "config file reconnect_delay"
	if v, ok := r.env[envKey]; ok && strings.TrimSpace(v) != "" {
		raw, source = v, envKey
	}
	if raw == "" {
		return value, nil
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", source, err)
	}
	return parsed, nil
}

func (r *resolver) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.ServerHost) == "" {
		return errors.New("server host must not be empty")
	}
	if cfg.App.ServerPort < 1 || cfg.App.ServerPort > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535 (got %d)", cfg.App.ServerPort)
	}
	if cfg.App.ReconnectDelay <= 0 {
		return fmt.Errorf("reconnect delay must be positive (got %s)", cfg.App.ReconnectDelay)
	}
	return nil
}
