// Package config loads seatsync settings from defaults, an optional
// seatsync.yaml, a .env file and SEATSYNC_ environment variables, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Local cache drivers.
const (
	LocalSQLite = "sqlite"
	LocalMemory = "memory"
)

// Remote record drivers. An empty driver means no remote is configured.
const (
	RemoteNone     = ""
	RemotePostgres = "postgres"
	RemoteS3       = "s3"
)

// Config holds application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Local  LocalConfig  `mapstructure:"local"`
	Remote RemoteConfig `mapstructure:"remote"`
	Plan   PlanConfig   `mapstructure:"plan"`
}

// ServerConfig holds RPC server settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// LocalConfig holds local cache settings.
type LocalConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	Key    string `mapstructure:"key"`
}

// RemoteConfig holds shared record settings.
type RemoteConfig struct {
	Driver   string         `mapstructure:"driver"`
	Key      string         `mapstructure:"key"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	S3       S3Config       `mapstructure:"s3"`
}

// PostgresConfig holds the Postgres remote settings.
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

// S3Config holds the S3 remote settings.
type S3Config struct {
	Bucket          string        `mapstructure:"bucket"`
	Region          string        `mapstructure:"region"`
	Endpoint        string        `mapstructure:"endpoint"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	PathStyle       bool          `mapstructure:"path_style"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
}

// PlanConfig points at the seating plan used when no record exists.
// An empty path selects the built-in plan.
type PlanConfig struct {
	Path string `mapstructure:"path"`
}

// Configured reports whether the remote driver has what it needs to connect.
// A remote that is named but not filled in counts as not configured, so the
// session runs in local mode.
func (r RemoteConfig) Configured() bool {
	switch r.Driver {
	case RemotePostgres:
		return r.Postgres.DSN != ""
	case RemoteS3:
		return r.S3.Bucket != ""
	default:
		return false
	}
}

// Validate reports unknown drivers and missing required values.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	switch c.Local.Driver {
	case LocalSQLite:
		if c.Local.Path == "" {
			errs = append(errs, errors.New("local.path required for sqlite"))
		}
	case LocalMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown local.driver %q", c.Local.Driver))
	}
	if c.Local.Key == "" {
		errs = append(errs, errors.New("local.key required"))
	}
	switch c.Remote.Driver {
	case RemoteNone, RemotePostgres, RemoteS3:
	default:
		errs = append(errs, fmt.Errorf("unknown remote.driver %q", c.Remote.Driver))
	}
	if c.Remote.Driver != RemoteNone && c.Remote.Key == "" {
		errs = append(errs, errors.New("remote.key required"))
	}
	return errors.Join(errs...)
}

// Load reads configuration. cfgPath names a config file that must exist; an
// empty cfgPath looks for an optional seatsync.yaml in the working directory.
// Env var overrides use prefix SEATSYNC_, e.g. SEATSYNC_REMOTE_POSTGRES_DSN.
func Load(cfgPath string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("local.driver", LocalSQLite)
	v.SetDefault("local.path", "./data/seating.db")
	v.SetDefault("local.key", "wedding_seating_data")
	v.SetDefault("remote.driver", RemoteNone)
	v.SetDefault("remote.key", "wedding/seating_chart")
	v.SetDefault("remote.postgres.dsn", "")
	v.SetDefault("remote.s3.bucket", "")
	v.SetDefault("remote.s3.region", "us-east-1")
	v.SetDefault("remote.s3.endpoint", "")
	v.SetDefault("remote.s3.access_key_id", "")
	v.SetDefault("remote.s3.secret_access_key", "")
	v.SetDefault("remote.s3.path_style", false)
	v.SetDefault("remote.s3.poll_interval", 2*time.Second)
	v.SetDefault("plan.path", "")

	v.SetConfigType("yaml")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("seatsync")
	}

	v.SetEnvPrefix("SEATSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Remote.Driver = strings.ToLower(strings.TrimSpace(c.Remote.Driver))
	c.Local.Driver = strings.ToLower(strings.TrimSpace(c.Local.Driver))
	return c, nil
}

// LoadDotEnv copies variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are skipped. With no paths it reads ./.env.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}
