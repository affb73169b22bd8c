package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "tarea.db"
)

type Keymap struct {
	Quit           string `toml:"quit"`
	Add            string `toml:"add"`
	Up             string `toml:"up"`
	Down           string `toml:"down"`
	Toggle         string `toml:"toggle"`
	Delete         string `toml:"delete"`
	Edit           string `toml:"edit"`
	Search         string `toml:"search"`
	Filter         string `toml:"filter"`
	Sort           string `toml:"sort"`
	Theme          string `toml:"theme"`
	Export         string `toml:"export"`
	Import         string `toml:"import"`
	ClearCompleted string `toml:"clear_completed"`
	Confirm        string `toml:"confirm"`
	Cancel         string `toml:"cancel"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	ExportDir     string `toml:"export_dir"`
	DefaultFilter string `toml:"default_filter"`
	DefaultSort   string `toml:"default_sort"`
	Keys          Keymap `toml:"keys"`
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
	}
	return cfg, nil
}

// ResolveConfigPath prefers a config next to the binary's working directory,
// falling back to the user config dir when one exists there.
func ResolveConfigPath() string {
	if _, err := os.Stat(DefaultConfigFileName); err == nil {
		return DefaultConfigFileName
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	candidate := filepath.Join(base, "tarea", DefaultConfigFileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return DefaultConfigFileName
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:        DefaultDBName,
		ExportDir:     ".",
		DefaultFilter: "all",
		DefaultSort:   "date",
		Keys: Keymap{
			Quit:           "q",
			Add:            "a",
			Up:             "k",
			Down:           "j",
			Toggle:         " ",
			Delete:         "d",
			Edit:           "e",
			Search:         "/",
			Filter:         "f",
			Sort:           "s",
			Theme:          "t",
			Export:         "x",
			Import:         "i",
			ClearCompleted: "c",
			Confirm:        "enter",
			Cancel:         "esc",
		},
	}
}
