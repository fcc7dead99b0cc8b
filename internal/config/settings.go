package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultBaseURL       = "http://localhost:4000"
	defaultServerAddress = "127.0.0.1:4000"
	defaultTimeout       = 10 * time.Second
	defaultLogLevel      = "info"

	EnvBaseURL  = "QUIRKNOTES_BASE_URL"
	EnvLogLevel = "QUIRKNOTES_LOG_LEVEL"
)

const (
	StorageFile  = "file"
	StorageBbolt = "bbolt"
)

type Config struct {
	Backend BackendConfig `toml:"backend"`
	Logging LoggingConfig `toml:"logging"`
	UI      UIConfig      `toml:"ui"`
	Notes   NotesConfig   `toml:"notes"`
	Server  ServerConfig  `toml:"server"`
}

type BackendConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type UIConfig struct {
	RenderMarkdown   *bool `toml:"render_markdown"`
	ConfirmDeleteAll *bool `toml:"confirm_delete_all"`
}

type NotesConfig struct {
	RollbackFailedDeletes *bool `toml:"rollback_failed_deletes"`
}

type ServerConfig struct {
	Address  string `toml:"address"`
	Storage  string `toml:"storage"`
	DataPath string `toml:"data_path"`
}

func DefaultConfig() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL: defaultBaseURL,
			Timeout: defaultTimeout.String(),
		},
		Logging: LoggingConfig{
			Level: defaultLogLevel,
		},
		Server: ServerConfig{
			Address: defaultServerAddress,
			Storage: StorageFile,
		},
	}
}

// Load reads the config file from the data directory and applies
// environment overrides. A missing or empty file yields the defaults.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadFromPath(path)
}

func LoadFromPath(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	cfg.applyEnv(os.Getenv)
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if getenv == nil {
		return
	}
	if value := strings.TrimSpace(getenv(EnvBaseURL)); value != "" {
		c.Backend.BaseURL = value
	}
	if value := strings.TrimSpace(getenv(EnvLogLevel)); value != "" {
		c.Logging.Level = value
	}
}

func (c Config) BaseURL() string {
	raw := strings.TrimSpace(c.Backend.BaseURL)
	if raw == "" {
		return defaultBaseURL
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "http://" + raw
	}
	raw = strings.TrimRight(raw, "/")
	if raw == "http:" || raw == "https:" {
		return defaultBaseURL
	}
	return raw
}

func (c Config) RequestTimeout() time.Duration {
	raw := strings.TrimSpace(c.Backend.Timeout)
	if raw == "" {
		return defaultTimeout
	}
	timeout, err := time.ParseDuration(raw)
	if err != nil || timeout <= 0 {
		return defaultTimeout
	}
	return timeout
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return defaultLogLevel
	}
	return level
}

func (c Config) RenderMarkdown() bool {
	return boolOrDefault(c.UI.RenderMarkdown, true)
}

func (c Config) ConfirmDeleteAll() bool {
	return boolOrDefault(c.UI.ConfirmDeleteAll, true)
}

func (c Config) RollbackFailedDeletes() bool {
	return boolOrDefault(c.Notes.RollbackFailedDeletes, true)
}

func (c Config) ServerAddress() string {
	addr := strings.TrimSpace(c.Server.Address)
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "https://")
	addr = strings.TrimRight(addr, "/")
	if addr == "" {
		return defaultServerAddress
	}
	return addr
}

func (c Config) ServerStorage() string {
	switch strings.ToLower(strings.TrimSpace(c.Server.Storage)) {
	case StorageBbolt, "bolt":
		return StorageBbolt
	default:
		return StorageFile
	}
}

// ServerDataPath resolves the storage path for the configured backend.
// Relative paths are resolved against the data directory.
func (c Config) ServerDataPath() (string, error) {
	path := strings.TrimSpace(c.Server.DataPath)
	if path == "" {
		if c.ServerStorage() == StorageBbolt {
			return NotesDBPath()
		}
		return NotesPath()
	}
	return resolveConfigPath(path)
}

func boolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

func resolveConfigPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, path), nil
}
