package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the portal configuration, loaded from config.toml next to
// the executable with environment overrides on top.
type AppConfig struct {
	Server    ServerConfig    `toml:"server"`
	Data      DataConfig      `toml:"data"`
	Business  BusinessConfig  `toml:"business"`
	Reference ReferenceConfig `toml:"reference"`
}

type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// BusinessConfig carries the reconciliation and accrual policy knobs.
type BusinessConfig struct {
	// ReminderThresholdDays is the exact closed-days value surfaced by
	// the reminder view.
	ReminderThresholdDays int `toml:"reminder_threshold_days"`
	// MonthlyAllowanceKm is the mileage entitlement per 30 elapsed days.
	MonthlyAllowanceKm int `toml:"monthly_allowance_km"`
	// CenturyPolicy is "window" (default: 25 -> 2025, 75 -> 1975) or
	// "literal" (two-digit years taken as-is).
	CenturyPolicy string `toml:"century_policy"`
}

// ReferenceConfig points at the published master registry.
type ReferenceConfig struct {
	// SheetURL is the CSV export URL of the reference sheet.
	SheetURL string `toml:"sheet_url"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Business: BusinessConfig{
			ReminderThresholdDays: 13,
			MonthlyAllowanceKm:    2500,
			CenturyPolicy:         "window",
		},
		Reference: ReferenceConfig{
			SheetURL: "",
		},
	}
}

// GetExeDir returns the directory holding the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig reads config.toml from the executable's directory, falling
// back to defaults when the file does not exist, then applies env
// overrides (OPSPORTAL_REFERENCE_URL, OPSPORTAL_PORT).
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	data, err := os.ReadFile(filepath.Join(exeDir, "config.toml"))
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(config)
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnv(config)
	return config, nil
}

func applyEnv(config *AppConfig) {
	if v := os.Getenv("OPSPORTAL_REFERENCE_URL"); v != "" {
		config.Reference.SheetURL = v
	}
	if v := os.Getenv("OPSPORTAL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
		}
	}
}

// SaveConfig writes config.toml next to the executable.
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(exeDir, "config.toml"), data, 0644)
}

// EnsureDataDir creates the data directory (with exports subdir) under
// the executable's directory and returns its path.
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(exeDir, dataDir)
	}
	if err := os.MkdirAll(filepath.Join(dataDir, "exports"), 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}
