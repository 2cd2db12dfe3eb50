package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the command line settings stored in ~/.habitly/config.toml.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	User    UserConfig    `toml:"user"`
	Logging LoggingConfig `toml:"logging"`
}

type StorageConfig struct {
	Dir string `toml:"dir"`
}

type UserConfig struct {
	Default string `toml:"default"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

func DefaultConfig() Config {
	user := os.Getenv("USER")
	if user == "" {
		user = "me"
	}

	return Config{
		Storage: StorageConfig{Dir: habitlyHome()},
		User:    UserConfig{Default: user},
		Logging: LoggingConfig{Level: "warn"},
	}
}

// LoadConfig reads the config at path, or at the default location when path
// is empty. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = filepath.Join(habitlyHome(), "config.toml")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to path, creating its directory.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

func habitlyHome() string {
	if env := os.Getenv("HABITLY_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".habitly")
}
