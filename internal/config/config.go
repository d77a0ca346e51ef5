package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Render modes.
const (
	RenderNone   = "none"
	RenderPNG    = "png"
	RenderWindow = "window"
)

// Config holds all run settings, populated from environment variables.
// Defaults reproduce the reference setup: a 50x40 grid over [0, 2π]² at t = 1 s, ν = 0.1 m²/s.
type Config struct {
	GridNX int
	GridNY int
	XMin   float64
	XMax   float64
	YMin   float64
	YMax   float64

	// Physical parameters. Validated by the evaluator, not here.
	Time      float64
	Viscosity float64

	RenderMode string
	RenderDir  string
	Quiver     bool

	HTTPAddr        string
	PlotCacheSize   int
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Optional Kafka report publishing.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	quiver, err := strconv.ParseBool(sharedcfg.EnvOrDefault("QUIVER", "true"))
	if err != nil {
		return nil, errors.New("invalid QUIVER: must be a boolean")
	}

	brokers := sharedcfg.ParseBrokers(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	env := &envParser{}
	cfg := &Config{
		GridNX:    env.intVar("GRID_NX", 50),
		GridNY:    env.intVar("GRID_NY", 40),
		XMin:      env.floatVar("X_MIN", 0),
		XMax:      env.floatVar("X_MAX", 2*math.Pi),
		YMin:      env.floatVar("Y_MIN", 0),
		YMax:      env.floatVar("Y_MAX", 2*math.Pi),
		Time:      env.floatVar("FLOW_TIME", 1.0),
		Viscosity: env.floatVar("VISCOSITY", 0.1),

		RenderMode: sharedcfg.EnvOrDefault("RENDER_MODE", RenderNone),
		RenderDir:  sharedcfg.EnvOrDefault("RENDER_DIR", "plots"),
		Quiver:     quiver,

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		PlotCacheSize:   env.intVar("PLOT_CACHE_SIZE", 32),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaEnabled: kafkaEnabled,
		KafkaBrokers: brokers,
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "taylor-green-reports"),
	}

	if env.err != nil {
		return nil, env.err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that Load cannot check per variable. It is
// called again after command-line overrides are applied.
func (c *Config) Validate() error {
	if c.GridNX < 2 {
		return errors.New("invalid GRID_NX: must be at least 2")
	}
	if c.GridNY < 2 {
		return errors.New("invalid GRID_NY: must be at least 2")
	}
	if !(c.XMax > c.XMin) {
		return errors.New("invalid X_MAX: must be greater than X_MIN")
	}
	if !(c.YMax > c.YMin) {
		return errors.New("invalid Y_MAX: must be greater than Y_MIN")
	}
	if c.PlotCacheSize < 0 {
		return errors.New("invalid PLOT_CACHE_SIZE: must be non-negative")
	}
	switch c.RenderMode {
	case RenderNone, RenderPNG, RenderWindow:
	default:
		return fmt.Errorf("invalid RENDER_MODE %q: must be none, png, or window", c.RenderMode)
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if c.KafkaEnabled && c.KafkaTopic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	return nil
}

// envParser reads numeric variables and keeps the first parse error.
type envParser struct {
	err error
}

func (p *envParser) intVar(key string, def int) int {
	s := os.Getenv(key)
	if s == "" || p.err != nil {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		p.err = fmt.Errorf("invalid %s: must be an integer", key)
		return def
	}
	return n
}

func (p *envParser) floatVar(key string, def float64) float64 {
	s := os.Getenv(key)
	if s == "" || p.err != nil {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		p.err = fmt.Errorf("invalid %s: must be a finite number", key)
		return def
	}
	return f
}
