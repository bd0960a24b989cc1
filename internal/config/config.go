package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultPath is used when no -config flag is given. A missing file at this
// path falls back to built-in defaults instead of failing, so the CLI works
// out of the box in a directory with sleep.json and workouts.json.
const DefaultPath = "config.yaml"

type Config struct {
	Inputs    InputsConfig    `yaml:"inputs"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Database  DatabaseConfig  `yaml:"database"`
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type InputsConfig struct {
	Sleep    string `yaml:"sleep"`
	Workouts string `yaml:"workouts"`
}

// SnapshotConfig selects where the merged snapshot lives. Backend is "file"
// (Path), "sqlite" (StateDir), or "postgres" (Database section).
type SnapshotConfig struct {
	Backend  string `yaml:"backend"`
	Path     string `yaml:"path"`
	StateDir string `yaml:"state_dir"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Default returns the configuration used when no config file exists: read
// sleep.json and workouts.json from the working directory and write the
// snapshot to days.json beside them.
func Default() *Config {
	return &Config{
		Inputs:   InputsConfig{Sleep: "sleep.json", Workouts: "workouts.json"},
		Snapshot: SnapshotConfig{Backend: "file", Path: "days.json", StateDir: ".healthdays"},
		Server:   ServerConfig{Host: "127.0.0.1", Port: 8080},
	}
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file at DefaultPath yields Default(); a missing file
// anywhere else is an error. Env vars use the prefix HEALTHDAYS_ and
// underscore-separated paths:
//
//	HEALTHDAYS_SLEEP_PATH, HEALTHDAYS_WORKOUTS_PATH,
//	HEALTHDAYS_SNAPSHOT_BACKEND, HEALTHDAYS_SNAPSHOT_PATH,
//	HEALTHDAYS_STATE_DIR,
//	HEALTHDAYS_DB_HOST, HEALTHDAYS_DB_PORT, HEALTHDAYS_DB_NAME,
//	HEALTHDAYS_DB_USER, HEALTHDAYS_DB_PASSWORD, HEALTHDAYS_DB_SSLMODE,
//	HEALTHDAYS_SERVER_HOST, HEALTHDAYS_SERVER_PORT,
//	HEALTHDAYS_AUTH_API_KEY
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && path == DefaultPath {
		applyEnvOverrides(cfg)
		if err := cfg.validate(); err != nil {
			return nil, fmt.Errorf("config validation: %w", err)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HEALTHDAYS_SLEEP_PATH"); v != "" {
		cfg.Inputs.Sleep = v
	}
	if v := os.Getenv("HEALTHDAYS_WORKOUTS_PATH"); v != "" {
		cfg.Inputs.Workouts = v
	}
	if v := os.Getenv("HEALTHDAYS_SNAPSHOT_BACKEND"); v != "" {
		cfg.Snapshot.Backend = v
	}
	if v := os.Getenv("HEALTHDAYS_SNAPSHOT_PATH"); v != "" {
		cfg.Snapshot.Path = v
	}
	if v := os.Getenv("HEALTHDAYS_STATE_DIR"); v != "" {
		cfg.Snapshot.StateDir = v
	}
	if v := os.Getenv("HEALTHDAYS_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("HEALTHDAYS_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("HEALTHDAYS_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("HEALTHDAYS_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("HEALTHDAYS_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("HEALTHDAYS_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("HEALTHDAYS_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("HEALTHDAYS_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("HEALTHDAYS_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
}

func (c *Config) validate() error {
	if c.Inputs.Sleep == "" {
		return fmt.Errorf("inputs.sleep is required")
	}
	if c.Inputs.Workouts == "" {
		return fmt.Errorf("inputs.workouts is required")
	}
	switch c.Snapshot.Backend {
	case "file":
		if c.Snapshot.Path == "" {
			return fmt.Errorf("snapshot.path is required for the file backend")
		}
	case "sqlite":
		if c.Snapshot.StateDir == "" {
			return fmt.Errorf("snapshot.state_dir is required for the sqlite backend")
		}
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("database.host is required for the postgres backend")
		}
		if c.Database.Port == 0 {
			return fmt.Errorf("database.port is required for the postgres backend")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("database.name is required for the postgres backend")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database.user is required for the postgres backend")
		}
	default:
		return fmt.Errorf("snapshot.backend must be file, sqlite, or postgres (got %q)", c.Snapshot.Backend)
	}
	return nil
}
