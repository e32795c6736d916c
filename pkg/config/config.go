// Package config loads pkgender settings from an optional INI file, with
// environment overrides.
//
// Example pkgender.ini:
//
//	[log]
//	level = debug
//	json  = false
//
//	[backup]
//	infix = __bak_
//
//	[save]
//	extension = .sav
//	game      = hgss
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/provide-io/pkgender/pkg/logging"
	"github.com/provide-io/pkgender/pkg/save/gen4"
	"github.com/provide-io/pkgender/pkg/save/txn"
	"gopkg.in/ini.v1"
)

const (
	EnvConfigPath = "PKGENDER_CONFIG"

	FileName         = "pkgender.ini"
	DefaultExtension = ".sav"
)

// Config holds the resolved settings
type Config struct {
	Path string // File the settings were read from, empty for defaults

	LogLevel string
	JSONLog  bool

	BackupInfix string

	ExpectedExtension string
	Game              *gen4.Layout // Forced layout, nil to detect
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		LogLevel:          logging.DefaultLevel,
		BackupInfix:       txn.DefaultBackupInfix,
		ExpectedExtension: DefaultExtension,
	}
}

// DefaultPath returns the per-user config file location, or "" if the user
// config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pkgender", FileName)
}

// Load reads settings. An explicit path (argument, then PKGENDER_CONFIG) must
// exist; the per-user default file is optional.
func Load(path string) (*Config, error) {
	explicit := true
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		explicit = false
		path = DefaultPath()
	}

	cfg := Default()
	if path == "" {
		applyEnv(cfg)
		return cfg, nil
	}

	file, err := ini.LoadSources(ini.LoadOptions{Loose: !explicit}, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if _, statErr := os.Stat(path); statErr == nil {
		cfg.Path = path
	}

	if err := apply(cfg, file); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	applyEnv(cfg)
	return cfg, nil
}

// Parse reads settings from INI data, without environment overrides
func Parse(data []byte) (*Config, error) {
	file, err := ini.Load(data)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := apply(cfg, file); err != nil {
		return nil, err
	}
	return cfg, nil
}

func apply(cfg *Config, file *ini.File) error {
	logSection := file.Section("log")
	cfg.LogLevel = logSection.Key("level").MustString(cfg.LogLevel)
	cfg.JSONLog = logSection.Key("json").MustBool(cfg.JSONLog)

	cfg.BackupInfix = file.Section("backup").Key("infix").MustString(cfg.BackupInfix)
	if strings.ContainsAny(cfg.BackupInfix, `/\`) {
		return fmt.Errorf("backup infix %q must not contain path separators", cfg.BackupInfix)
	}

	saveSection := file.Section("save")
	ext := saveSection.Key("extension").MustString(cfg.ExpectedExtension)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	cfg.ExpectedExtension = ext

	if game := strings.TrimSpace(saveSection.Key("game").String()); game != "" {
		layout, err := gen4.ParseLayout(game)
		if err != nil {
			return err
		}
		cfg.Game = &layout
	}
	return nil
}

func applyEnv(cfg *Config) {
	if level := os.Getenv(logging.EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}
	if os.Getenv(logging.EnvJSONLog) == "1" {
		cfg.JSONLog = true
	}
}
