// Package config loads configs/config.yml with viper. Every key has a
// default, and PLANT_<SECTION>_<KEY> environment variables override the file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port      string          `mapstructure:"port"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Seed      SeedConfig      `mapstructure:"seed"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Alarms    AlarmsConfig    `mapstructure:"alarms"`
	Anomalies AnomaliesConfig `mapstructure:"anomalies"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

type SeedConfig struct {
	Path string `mapstructure:"path"` // empty: embedded seed
}

type TelemetryConfig struct {
	KPIInterval     time.Duration `mapstructure:"kpi_interval"`
	MachineInterval time.Duration `mapstructure:"machine_interval"`
}

type AlarmsConfig struct {
	AckDelay    time.Duration `mapstructure:"ack_delay"`
	DefaultUser string        `mapstructure:"default_user"`
}

type AnomaliesConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Keep     int           `mapstructure:"keep"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

const envPrefix = "PLANT"

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "plant.db")
	v.SetDefault("auth.signing_key", "change-me")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("seed.path", "")
	v.SetDefault("telemetry.kpi_interval", 5*time.Second)
	v.SetDefault("telemetry.machine_interval", 30*time.Second)
	v.SetDefault("alarms.ack_delay", 1500*time.Millisecond)
	v.SetDefault("alarms.default_user", "Current User")
	v.SetDefault("anomalies.interval", 15*time.Second)
	v.SetDefault("anomalies.keep", 20)
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// Load reads config.yml from dir. A missing file is not an error; defaults
// and the environment still apply.
func Load(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config in %q: %w", dir, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Telemetry.KPIInterval <= 0 {
		errs = append(errs, errors.New("telemetry.kpi_interval must be positive"))
	}
	if c.Telemetry.MachineInterval <= 0 {
		errs = append(errs, errors.New("telemetry.machine_interval must be positive"))
	}
	if c.Alarms.AckDelay < 0 {
		errs = append(errs, errors.New("alarms.ack_delay must not be negative"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if strings.TrimSpace(c.Auth.SigningKey) == "" {
		errs = append(errs, errors.New("auth.signing_key is required"))
	}
	if c.Anomalies.Interval <= 0 {
		errs = append(errs, errors.New("anomalies.interval must be positive"))
	}
	if c.Anomalies.Keep <= 0 {
		errs = append(errs, errors.New("anomalies.keep must be positive"))
	}
	return errors.Join(errs...)
}
