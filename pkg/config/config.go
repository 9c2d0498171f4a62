package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/tripsearch/pkg/tripquery"
	"github.com/travigo/tripsearch/pkg/util"
	"gopkg.in/yaml.v3"

	_ "time/tzdata"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Listen   string `yaml:"listen"`
	TimeZone string `yaml:"timezone"`

	Planner  PlannerConfig  `yaml:"planner"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Sessions SessionsConfig `yaml:"sessions"`
	Redis    RedisConfig    `yaml:"redis"`
}

type PlannerConfig struct {
	Endpoint   string `yaml:"endpoint"`
	ClientName string `yaml:"client_name"`

	Timeout         time.Duration `yaml:"timeout"`
	RetryMaxElapsed time.Duration `yaml:"retry_max_elapsed"`
}

// DefaultsConfig seeds every new search session
type DefaultsConfig struct {
	NumTripPatterns int `yaml:"num_trip_patterns"`
	// SearchWindow is an ISO-8601 duration, eg. PT2H
	SearchWindow string `yaml:"search_window"`
}

type SessionsConfig struct {
	Backend string        `yaml:"backend"`
	TTL     time.Duration `yaml:"ttl"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	Database int    `yaml:"database"`
}

func Default() *Config {
	return &Config{
		Listen:   ":8080",
		TimeZone: "Europe/Oslo",
		Planner: PlannerConfig{
			Endpoint:        "http://localhost:8080/otp/transmodel/v3",
			ClientName:      "travigo-tripsearch",
			Timeout:         30 * time.Second,
			RetryMaxElapsed: 10 * time.Second,
		},
		Sessions: SessionsConfig{
			Backend: SessionBackendMemory,
			TTL:     2 * time.Hour,
		},
		Redis: RedisConfig{
			Address: "localhost:6379",
		},
	}
}

// Load reads the YAML file at path (if any) over the defaults, then applies TRIPSEARCH_ environment overrides
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		contents, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}

		if err := yaml.Unmarshal(contents, config); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := config.applyEnvironment(util.GetEnvironmentVariables()); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) applyEnvironment(env map[string]string) error {
	if env["LISTEN"] != "" {
		c.Listen = env["LISTEN"]
	}
	if env["TIMEZONE"] != "" {
		c.TimeZone = env["TIMEZONE"]
	}
	if env["PLANNER_ENDPOINT"] != "" {
		c.Planner.Endpoint = env["PLANNER_ENDPOINT"]
	}
	if env["PLANNER_CLIENT_NAME"] != "" {
		c.Planner.ClientName = env["PLANNER_CLIENT_NAME"]
	}
	if env["SESSION_BACKEND"] != "" {
		c.Sessions.Backend = env["SESSION_BACKEND"]
	}
	if env["REDIS_ADDRESS"] != "" {
		c.Redis.Address = env["REDIS_ADDRESS"]
	}
	if env["REDIS_PASSWORD"] != "" {
		c.Redis.Password = env["REDIS_PASSWORD"]
	}

	if env["REDIS_DATABASE"] != "" {
		n, err := strconv.Atoi(env["REDIS_DATABASE"])
		if err != nil {
			return fmt.Errorf("%w: TRIPSEARCH_REDIS_DATABASE: %w", ErrInvalidConfig, err)
		}
		c.Redis.Database = n
	}

	if env["SESSION_TTL"] != "" {
		ttl, err := time.ParseDuration(env["SESSION_TTL"])
		if err != nil {
			return fmt.Errorf("%w: TRIPSEARCH_SESSION_TTL: %w", ErrInvalidConfig, err)
		}
		c.Sessions.TTL = ttl
	}

	return nil
}

func (c *Config) Validate() error {
	if c.Planner.Endpoint == "" {
		return fmt.Errorf("%w: planner endpoint is required", ErrInvalidConfig)
	}

	switch c.Sessions.Backend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("%w: unknown session backend %q", ErrInvalidConfig, c.Sessions.Backend)
	}

	if c.Defaults.NumTripPatterns < 0 {
		return fmt.Errorf("%w: defaults.num_trip_patterns must be positive", ErrInvalidConfig)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if _, err := c.DefaultSearchWindowMinutes(); err != nil {
		return err
	}

	return nil
}

func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}

	location, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone: %w", ErrInvalidConfig, err)
	}
	return location, nil
}

// DefaultSearchWindowMinutes converts the configured ISO-8601 window into whole minutes, nil when unset
func (c *Config) DefaultSearchWindowMinutes() (*int, error) {
	if c.Defaults.SearchWindow == "" {
		return nil, nil
	}

	window, err := iso8601.ParseISO8601(c.Defaults.SearchWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: defaults.search_window: %w", ErrInvalidConfig, err)
	}

	// Shift from a fixed instant so month and year components have a defined length
	reference := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	minutes := int(window.Shift(reference).Sub(reference).Minutes())
	if minutes <= 0 {
		return nil, fmt.Errorf("%w: defaults.search_window must be at least one minute", ErrInvalidConfig)
	}

	return &minutes, nil
}

// DefaultVariables is the query a new search session starts from
func (c *Config) DefaultVariables() tripquery.TripQueryVariables {
	variables := tripquery.TripQueryVariables{}

	if c.Defaults.NumTripPatterns > 0 {
		variables = variables.WithNumTripPatterns(tripquery.Int(c.Defaults.NumTripPatterns))
	}

	if searchWindow, err := c.DefaultSearchWindowMinutes(); err == nil && searchWindow != nil {
		variables = variables.WithSearchWindow(searchWindow)
	}

	return variables
}
