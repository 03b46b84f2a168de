package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

var v *viper.Viper

// Initialize sets up runtime configuration. Values come from an
// optional config.yaml in the user config directory and from
// DEVLOG_-prefixed environment variables, env taking precedence.
func Initialize() error {
	v = viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, AppName))
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(homeDir, "."+AppName))
	}

	// DEVLOG_DB_PATH and DEVLOG_DATA_DIR map to db-path and data-dir.
	v.SetEnvPrefix("DEVLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("db-path", "")
	v.SetDefault("data-dir", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

func getString(key string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(v.GetString(key))
}

// DataRoot resolves the application data directory: the configured
// data-dir if set, otherwise the platform-specific application data
// location joined with the app identifier.
func DataRoot() (string, error) {
	if dir := getString("data-dir"); dir != "" {
		return dir, nil
	}

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to resolve home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", AppIdentifier), nil
	case "windows":
		appData := strings.TrimSpace(os.Getenv("APPDATA"))
		if appData == "" {
			return "", fmt.Errorf("APPDATA environment variable is missing")
		}
		return filepath.Join(appData, AppIdentifier), nil
	default:
		if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
			return filepath.Join(base, AppIdentifier), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to resolve home directory: %w", err)
		}
		return filepath.Join(home, ".local", "share", AppIdentifier), nil
	}
}

// DBPath resolves the SQLite database file location.
func DBPath() (string, error) {
	if path := getString("db-path"); path != "" {
		return path, nil
	}
	root, err := DataRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, DBFileName), nil
}

// LegacyPath is the fixed location of the legacy JSON snapshot.
func LegacyPath() (string, error) {
	root, err := DataRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, LegacyFileName), nil
}

// ReportsDir is where generated reports are written.
func ReportsDir() (string, error) {
	root, err := DataRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ReportsDirName), nil
}

// LogPath is the rotating application log file.
func LogPath() (string, error) {
	root, err := DataRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, LogFileName), nil
}
