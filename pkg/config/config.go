// Package config loads the run configuration: a YAML file for paths and
// run parameters, with database credentials taken from the environment
// (optionally via a .env file, which is how the production host stores
// them).
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/marlowpress/dailyfiles/pkg/recon"
)

// Input file names as they land in the drop directory.
const (
	DefaultMovementFile    = "IPS_INV.CDT"
	DefaultLockedFile      = "LOCKED.CDP"
	DefaultTransactionFile = "IPS_DAILY_NO_LINE_NUM.TXT"
)

// Config is the daily-run configuration.
type Config struct {
	// DropDir is where the day's extracts land.
	DropDir string `yaml:"drop_dir"`
	// OutputDir receives the dated output folder.
	OutputDir string `yaml:"output_dir"`

	MovementFile    string `yaml:"movement_file"`
	LockedFile      string `yaml:"locked_file"`
	TransactionFile string `yaml:"transaction_file"`

	// OrderIDBase seeds the order identifier allocator.
	OrderIDBase int64 `yaml:"order_id_base"`

	LogLevel string `yaml:"log_level"`

	Database Database `yaml:"database"`
}

// Database holds connection settings. User and password come from the
// DB_USER and DB_PASSWORD environment variables, never from the YAML file.
type Database struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	Name    string `yaml:"name"`

	user     string
	password string
}

// Load reads the YAML config at path and fills credentials from the
// environment. A missing .env file is not an error; missing credentials
// are, when the database is enabled.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := &Config{
		MovementFile:    DefaultMovementFile,
		LockedFile:      DefaultLockedFile,
		TransactionFile: DefaultTransactionFile,
		OrderIDBase:     recon.DefaultOrderIDBase,
		LogLevel:        "info",
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.DropDir == "" {
		return nil, fmt.Errorf("config %s: drop_dir is required", path)
	}
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("config %s: output_dir is required", path)
	}

	_ = godotenv.Load()
	cfg.Database.user = os.Getenv("DB_USER")
	cfg.Database.password = os.Getenv("DB_PASSWORD")

	if cfg.Database.Enabled {
		if cfg.Database.user == "" || cfg.Database.password == "" {
			return nil, fmt.Errorf("database enabled but DB_USER/DB_PASSWORD not set")
		}
		if cfg.Database.Host == "" || cfg.Database.Name == "" {
			return nil, fmt.Errorf("database enabled but host/name not configured")
		}
		if cfg.Database.Port == "" {
			cfg.Database.Port = "3306"
		}
	}

	return cfg, nil
}

// DSN returns the database connection string.
func (d *Database) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		d.user, d.password, d.Host, d.Port, d.Name)
}
