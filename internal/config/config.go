// Package config resolves the simulator settings: a YAML file merged with
// WEBPULSE_* environment overrides, producing the value object the engine
// consumes. Percentage-form probabilities are normalized here.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"webpulse/internal/engine"
	"webpulse/internal/sink"
	"webpulse/internal/urlparams"
)

var ErrNotFound = errors.New("config: file not found")

// Duration parses YAML scalars like "90s" or "2m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("config: bad duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

type Bounds struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type DurationBounds struct {
	Min Duration `yaml:"min"`
	Max Duration `yaml:"max"`
}

type Kafka struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// Config mirrors the YAML file. All chance fields are percentages.
type Config struct {
	Target       string           `yaml:"target"`
	Method       string           `yaml:"method"`
	Concurrency  int              `yaml:"concurrency"`
	Timeout      Duration         `yaml:"timeout"`
	Rate         Bounds           `yaml:"rate"`
	Active       DurationBounds   `yaml:"active"`
	Idle         DurationBounds   `yaml:"idle"`
	IdleChance   float64          `yaml:"idle_chance"`
	UniqueChance float64          `yaml:"unique_chance"`
	DesktopShare float64          `yaml:"desktop_share"`
	Params       []urlparams.Rule `yaml:"params"`
	MetricsPort  int              `yaml:"metrics_port"`
	Kafka        Kafka            `yaml:"kafka"`
}

func defaults() Config {
	return Config{
		Method:       "GET",
		Concurrency:  3,
		Timeout:      Duration(10 * time.Second),
		Rate:         Bounds{Min: 30, Max: 90},
		Active:       DurationBounds{Min: Duration(30 * time.Second), Max: Duration(2 * time.Minute)},
		Idle:         DurationBounds{Min: Duration(15 * time.Second), Max: Duration(time.Minute)},
		IdleChance:   40,
		UniqueChance: 60,
		DesktopShare: 55,
		MetricsPort:  8090,
	}
}

// Load reads the file at path, applies environment overrides, and returns
// the merged configuration. A missing file yields ErrNotFound together
// with the defaults-plus-environment configuration, so the caller may
// treat it as non-fatal. Validation happens at engine construction.
func Load(path string) (Config, error) {
	cfg := defaults()

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	envString("WEBPULSE_TARGET", &c.Target)
	envString("WEBPULSE_METHOD", &c.Method)
	envInt("WEBPULSE_CONCURRENCY", &c.Concurrency)
	envDuration("WEBPULSE_TIMEOUT", &c.Timeout)
	envInt("WEBPULSE_RATE_MIN", &c.Rate.Min)
	envInt("WEBPULSE_RATE_MAX", &c.Rate.Max)
	envFloat("WEBPULSE_IDLE_CHANCE", &c.IdleChance)
	envFloat("WEBPULSE_UNIQUE_CHANCE", &c.UniqueChance)
	envFloat("WEBPULSE_DESKTOP_SHARE", &c.DesktopShare)
	envInt("WEBPULSE_METRICS_PORT", &c.MetricsPort)
	envString("WEBPULSE_KAFKA_TOPIC", &c.Kafka.Topic)

	if v, ok := os.LookupEnv("WEBPULSE_KAFKA_BROKERS"); ok {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v, ok := os.LookupEnv("WEBPULSE_KAFKA_ENABLED"); ok {
		c.Kafka.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
}

// Engine converts the file form into the engine's value object, turning
// the percentage chances into [0,1] fractions.
func (c *Config) Engine() engine.Config {
	return engine.Config{
		TargetURL:    c.Target,
		Method:       strings.ToUpper(c.Method),
		MinRate:      c.Rate.Min,
		MaxRate:      c.Rate.Max,
		Concurrency:  c.Concurrency,
		Timeout:      time.Duration(c.Timeout),
		DesktopShare: c.DesktopShare,
		ActiveMin:    time.Duration(c.Active.Min),
		ActiveMax:    time.Duration(c.Active.Max),
		IdleChance:   c.IdleChance / 100,
		IdleMin:      time.Duration(c.Idle.Min),
		IdleMax:      time.Duration(c.Idle.Max),
		UniqueChance: c.UniqueChance / 100,
		Params:       c.Params,
	}
}

// Sink returns the sink configuration; the second value reports whether
// the sink is enabled.
func (c *Config) Sink() (sink.Config, bool) {
	if !c.Kafka.Enabled {
		return sink.Config{}, false
	}
	return sink.Config{
		Brokers: c.Kafka.Brokers,
		Topic:   c.Kafka.Topic,
	}, true
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v, ok := os.LookupEnv(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			warnBadOverride(key, v)
			return
		}
		*dst = n
	}
}

func envFloat(key string, dst *float64) {
	if v, ok := os.LookupEnv(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			warnBadOverride(key, v)
			return
		}
		*dst = f
	}
}

func envDuration(key string, dst *Duration) {
	if v, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			warnBadOverride(key, v)
			return
		}
		*dst = Duration(d)
	}
}

func warnBadOverride(key, value string) {
	zap.L().Warn("ignoring malformed override",
		zap.String("var", key),
		zap.String("value", value),
	)
}
