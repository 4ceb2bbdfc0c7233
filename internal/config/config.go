package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fixture sources
const (
	SourceJSON   = "json"
	SourceSQLite = "sqlite"
)

const insecureSecret = "change-me-in-production"

// Config is the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Fixtures  FixturesConfig  `yaml:"fixtures" mapstructure:"fixtures"`
	Database  DatabaseConfig  `yaml:"database" mapstructure:"database"`
	Session   SessionConfig   `yaml:"session" mapstructure:"session"`
	RateLimit RateLimitConfig `yaml:"ratelimit" mapstructure:"ratelimit"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Map       MapConfig       `yaml:"map" mapstructure:"map"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Port int    `yaml:"port" mapstructure:"port"`
	Mode string `yaml:"mode" mapstructure:"mode"` // gin mode: debug, release, test
}

// FixturesConfig selects where fixtures are read from
type FixturesConfig struct {
	Source string `yaml:"source" mapstructure:"source"`
	Dir    string `yaml:"dir" mapstructure:"dir"`
}

// DatabaseConfig configures the SQLite fixture database
type DatabaseConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// SessionConfig configures dashboard sessions
type SessionConfig struct {
	Secret     string `yaml:"secret" mapstructure:"secret"`
	TTLMinutes int    `yaml:"ttl_minutes" mapstructure:"ttl_minutes"`
}

// RateLimitConfig configures per-client request limits
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps" mapstructure:"rps"`
	Burst int     `yaml:"burst" mapstructure:"burst"`
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// MapConfig is the initial map camera
type MapConfig struct {
	CenterLat float64 `yaml:"center_lat" mapstructure:"center_lat"`
	CenterLng float64 `yaml:"center_lng" mapstructure:"center_lng"`
	Zoom      int     `yaml:"zoom" mapstructure:"zoom"`
}

// Load reads configuration from an optional config.yaml and HEALTHMAP_* environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("HEALTHMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("fixtures.source", SourceJSON)
	v.SetDefault("fixtures.dir", "./data/synthetic")
	v.SetDefault("database.path", "./data/healthmap.db")
	v.SetDefault("session.secret", insecureSecret)
	v.SetDefault("session.ttl_minutes", 60)
	v.SetDefault("ratelimit.rps", 20)
	v.SetDefault("ratelimit.burst", 40)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("map.center_lat", 24.4869)
	v.SetDefault("map.center_lng", 54.3702)
	v.SetDefault("map.zoom", 11)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	return &cfg, nil
}

// Validate checks the settings a command depends on
func (c *Config) Validate(command string) error {
	switch command {
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			return eris.Errorf("config: invalid server.port %d", c.Server.Port)
		}
		if c.Session.TTLMinutes <= 0 {
			return eris.New("config: session.ttl_minutes must be positive")
		}
		if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
			return eris.New("config: ratelimit.rps and ratelimit.burst must be positive")
		}
		if c.Session.Secret == insecureSecret {
			zap.L().Warn("config: session.secret is the built-in default; set HEALTHMAP_SESSION_SECRET")
		}
		return c.validateFixtures()
	case "import":
		if c.Fixtures.Dir == "" {
			return eris.New("config: fixtures.dir is required")
		}
		if c.Database.Path == "" {
			return eris.New("config: database.path is required")
		}
	case "snapshot":
		return c.validateFixtures()
	}
	return nil
}

func (c *Config) validateFixtures() error {
	switch c.Fixtures.Source {
	case SourceJSON:
		if c.Fixtures.Dir == "" {
			return eris.New("config: fixtures.dir is required for the json source")
		}
	case SourceSQLite:
		if c.Database.Path == "" {
			return eris.New("config: database.path is required for the sqlite source")
		}
	default:
		return eris.Errorf("config: unknown fixtures.source %q", c.Fixtures.Source)
	}
	return nil
}

// InitLogger initializes the global zap logger
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
