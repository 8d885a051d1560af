// Package config loads service configuration from defaults, an optional YAML
// file and LODGIX_ prefixed environment variables, in that order of priority.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	PathEnvVar = "CONFIG_PATH"
	envPrefix  = "LODGIX_"

	DriverMemory = "memory"
	DriverBadger = "badger"
)

var ErrInvalidConfig = errors.New("invalid config")

var defaultPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/lodgix/config.yaml",
}

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Log     LogConfig     `koanf:"log"`
	Storage StorageConfig `koanf:"storage"`
	Notify  NotifyConfig  `koanf:"notify"`
	Booking BookingConfig `koanf:"booking"`
}

type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              string        `koanf:"port"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	LivenessEndpoint  string        `koanf:"liveness_endpoint"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	MaxUploadBytes    int64         `koanf:"max_upload_bytes"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type StorageConfig struct {
	Driver string `koanf:"driver"`
	Path   string `koanf:"path"`
}

type NotifyConfig struct {
	Enabled bool          `koanf:"enabled"`
	URL     string        `koanf:"url"`
	Token   string        `koanf:"token"`
	Timeout time.Duration `koanf:"timeout"`
}

type BookingConfig struct {
	DraftTTL           time.Duration `koanf:"draft_ttl"`
	DraftSweepInterval time.Duration `koanf:"draft_sweep_interval"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "localhost",
			Port:              "8092",
			ReadHeaderTimeout: 20 * time.Second, //nolint:gomnd
			ShutdownTimeout:   4 * time.Second,  //nolint:gomnd
			LivenessEndpoint:  "/liveness",
			CORSOrigins:       []string{"http://localhost:5173"},
			RateLimitRequests: 100, //nolint:gomnd
			RateLimitWindow:   time.Minute,
			MaxUploadBytes:    5 << 20, //nolint:gomnd
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Storage: StorageConfig{
			Driver: DriverMemory,
			Path:   "data/bookings",
		},
		Notify: NotifyConfig{
			Enabled: false,
			URL:     "http://localhost:3000/api/bookings",
			Timeout: 5 * time.Second, //nolint:gomnd
		},
		Booking: BookingConfig{
			DraftTTL:           24 * time.Hour,
			DraftSweepInterval: 10 * time.Minute, //nolint:gomnd
		},
	}
}

func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if origins, ok := k.Get("server.cors_origins").(string); ok {
		if err := k.Set("server.cors_origins", splitList(origins)); err != nil {
			return nil, fmt.Errorf("set cors origins: %w", err)
		}
	}

	conf := &Config{}
	if err := k.Unmarshal("", conf); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

// envKey maps LODGIX_NOTIFY__URL to notify.url.
func envKey(key string) string {
	key = strings.TrimPrefix(key, envPrefix)

	return strings.ReplaceAll(strings.ToLower(key), "__", ".")
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

func findFile() string {
	if path := os.Getenv(PathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	for _, path := range defaultPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port == "" {
		problems = append(problems, "server.port is required")
	}

	if c.Server.ReadHeaderTimeout <= 0 {
		problems = append(problems, "server.read_header_timeout must be positive")
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverBadger:
		if c.Storage.Path == "" {
			problems = append(problems, "storage.path is required for badger driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("storage.driver %q is not supported", c.Storage.Driver))
	}

	if c.Notify.Enabled {
		if u, err := url.Parse(c.Notify.URL); err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, "notify.url must be an absolute url")
		}

		if c.Notify.Timeout <= 0 {
			problems = append(problems, "notify.timeout must be positive")
		}
	}

	if c.Booking.DraftTTL <= 0 {
		problems = append(problems, "booking.draft_ttl must be positive")
	}

	if c.Booking.DraftSweepInterval <= 0 {
		problems = append(problems, "booking.draft_sweep_interval must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s: %w", strings.Join(problems, "; "), ErrInvalidConfig)
	}

	return nil
}
