package config

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Settings configure the drawing service and the batch command.
type Settings struct {
	Server  ServerSettings  `yaml:"server"`
	Render  RenderSettings  `yaml:"render"`
	Logging LoggingSettings `yaml:"logging"`
}

type ServerSettings struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"` // debug, release, test

	// MaxBodyBytes limits the size of a posted document.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

type RenderSettings struct {
	Backend string `yaml:"backend"` // default backend of the batch command
	Workers int    `yaml:"workers"`
	OutDir  string `yaml:"out_dir"`
}

type LoggingSettings struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Addr:         ":8080",
			Mode:         "release",
			MaxBodyBytes: 1 << 20,
		},
		Render: RenderSettings{
			Backend: "lisp",
			Workers: runtime.GOMAXPROCS(0),
			OutDir:  ".",
		},
		Logging: LoggingSettings{Level: "info"},
	}
}

// LoadSettings returns the default settings overlaid with the YAML file at
// path and then with environment variables. An empty path falls back to
// DRAFT_CONFIG; a missing file is not an error when the path came from
// neither.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	explicit := path != ""
	if !explicit {
		path = os.Getenv("DRAFT_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = "draft.yaml"
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("config: decode settings %s: %w", path, err)
		}
	case explicit || !os.IsNotExist(err):
		return s, fmt.Errorf("config: read settings: %w", err)
	}

	// Environment variables take precedence over the file.
	if v := os.Getenv("DRAFT_ADDR"); v != "" {
		s.Server.Addr = v
	}
	if v := os.Getenv("DRAFT_MODE"); v != "" {
		s.Server.Mode = v
	}
	if v := os.Getenv("DRAFT_LOG_LEVEL"); v != "" {
		s.Logging.Level = v
	}
	if v := os.Getenv("DRAFT_BACKEND"); v != "" {
		s.Render.Backend = v
	}
	if v := os.Getenv("DRAFT_OUT_DIR"); v != "" {
		s.Render.OutDir = v
	}
	if v := os.Getenv("DRAFT_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return s, fmt.Errorf("config: DRAFT_WORKERS: %w", err)
		}
		s.Render.Workers = n
	}

	if s.Render.Workers <= 0 {
		s.Render.Workers = 1
	}
	return s, nil
}

// LogLevel returns the configured slog level, defaulting to info.
func (s Settings) LogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s.Logging.Level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
