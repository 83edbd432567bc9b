package datasource

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"weather-dashboard/forecast"
	"weather-dashboard/models"
)

// RateLimitConfig configures request pacing towards the provider
type RateLimitConfig struct {
	Enabled     bool    `json:"enabled" yaml:"enabled" toml:"enabled"`
	WeatherRPS  float64 `json:"weatherRPS" yaml:"weatherRPS" toml:"weatherRPS"`
	ForecastRPS float64 `json:"forecastRPS" yaml:"forecastRPS" toml:"forecastRPS"`
	Burst       int     `json:"burst" yaml:"burst" toml:"burst"`
}

// OpenWeatherMapConfig configures the OpenWeatherMap client
type OpenWeatherMapConfig struct {
	APIKey      string          `json:"apiKey" yaml:"apiKey" toml:"apiKey"`
	BaseURL     string          `json:"baseURL" yaml:"baseURL" toml:"baseURL"`
	IconBaseURL string          `json:"iconBaseURL" yaml:"iconBaseURL" toml:"iconBaseURL"`
	DefaultIcon string          `json:"defaultIcon" yaml:"defaultIcon" toml:"defaultIcon"`
	Timeout     string          `json:"timeout" yaml:"timeout" toml:"timeout"`
	RateLimit   RateLimitConfig `json:"rateLimit" yaml:"rateLimit" toml:"rateLimit"`
}

// Config represents the application configuration
type Config struct {
	OpenWeatherMap OpenWeatherMapConfig `json:"openWeatherMap" yaml:"openWeatherMap" toml:"openWeatherMap"`

	// Shown when no location is available
	DefaultCity string `json:"defaultCity" yaml:"defaultCity" toml:"defaultCity"`
	// "metric" or "imperial"
	Units string `json:"units" yaml:"units" toml:"units"`
	// Spacing of forecast samples, e.g. "3h"
	SamplingInterval string `json:"samplingInterval" yaml:"samplingInterval" toml:"samplingInterval"`
	// "date" or "day-of-month"
	DayMatching string `json:"dayMatching" yaml:"dayMatching" toml:"dayMatching"`
	// How long to wait for a geolocation fix before falling back
	GeolocationTimeout string `json:"geolocationTimeout" yaml:"geolocationTimeout" toml:"geolocationTimeout"`
	// IANA zone used to decide what "today" is. Empty means the local zone.
	TimeZone string `json:"timeZone" yaml:"timeZone" toml:"timeZone"`

	// Parsed by Validate
	units      models.Units
	interval   time.Duration
	timeout    time.Duration
	geoTimeout time.Duration
	matchMode  forecast.MatchMode
	location   *time.Location
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	config := &Config{
		DefaultCity:        "Pune",
		Units:              string(models.Metric),
		SamplingInterval:   forecast.DefaultInterval.String(),
		DayMatching:        "date",
		GeolocationTimeout: "5s",
	}
	config.OpenWeatherMap.BaseURL = DefaultOpenWeatherMapURL
	config.OpenWeatherMap.Timeout = "10s"
	// OpenWeatherMap free tier allows 60 calls/minute = 1 call per second
	config.OpenWeatherMap.RateLimit = RateLimitConfig{
		Enabled:     true,
		WeatherRPS:  1.0,
		ForecastRPS: 1.0,
		Burst:       5,
	}
	return config
}

// LoadConfig loads configuration from a JSON, YAML or TOML file, chosen by extension.
// Values missing from the file keep their defaults. Environment overrides are applied
// and the result is validated.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration file extension: %s", ext)
	}

	config.ApplyEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides configuration values from environment variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv("OPENWEATHERMAP_API_KEY"); v != "" {
		c.OpenWeatherMap.APIKey = v
	}
	if v := os.Getenv("WEATHER_DEFAULT_CITY"); v != "" {
		c.DefaultCity = v
	}
	if v := os.Getenv("WEATHER_UNITS"); v != "" {
		c.Units = v
	}
}

// Validate checks the configuration and parses its derived values
func (c *Config) Validate() error {
	var err error

	if c.units, err = models.ParseUnits(c.Units); err != nil {
		return fmt.Errorf("invalid units: %w", err)
	}
	if c.interval, err = parseDuration("samplingInterval", c.SamplingInterval, forecast.DefaultInterval); err != nil {
		return err
	}
	if _, err = forecast.StrideFor(c.interval); err != nil {
		return fmt.Errorf("invalid samplingInterval: %w", err)
	}
	if c.timeout, err = parseDuration("openWeatherMap.timeout", c.OpenWeatherMap.Timeout, 10*time.Second); err != nil {
		return err
	}
	if c.geoTimeout, err = parseDuration("geolocationTimeout", c.GeolocationTimeout, 5*time.Second); err != nil {
		return err
	}

	mode, ok := forecast.ParseMatchMode(c.DayMatching)
	if !ok {
		return fmt.Errorf("invalid dayMatching %q: want \"date\" or \"day-of-month\"", c.DayMatching)
	}
	c.matchMode = mode

	c.location = time.Local
	if c.TimeZone != "" {
		if c.location, err = time.LoadLocation(c.TimeZone); err != nil {
			return fmt.Errorf("invalid timeZone: %w", err)
		}
	}

	if strings.TrimSpace(c.DefaultCity) == "" {
		return fmt.Errorf("defaultCity must not be empty")
	}
	if rl := c.OpenWeatherMap.RateLimit; rl.Enabled && (rl.WeatherRPS <= 0 || rl.ForecastRPS <= 0 || rl.Burst <= 0) {
		return fmt.Errorf("rate limits must be positive when enabled")
	}
	return nil
}

// UnitsValue returns the parsed default units
func (c *Config) UnitsValue() models.Units { return c.units }

// Interval returns the parsed forecast sampling interval
func (c *Config) Interval() time.Duration { return c.interval }

// HTTPTimeout returns the parsed provider request timeout
func (c *Config) HTTPTimeout() time.Duration { return c.timeout }

// GeolocationWait returns the parsed geolocation timeout
func (c *Config) GeolocationWait() time.Duration { return c.geoTimeout }

// MatchMode returns the parsed day matching mode
func (c *Config) MatchMode() forecast.MatchMode { return c.matchMode }

// Location returns the time zone used to determine the current day
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// NewProvider builds the OpenWeatherMap provider described by the configuration,
// wrapped with rate limiting when enabled
func (c *Config) NewProvider() (Provider, error) {
	owm := c.OpenWeatherMap
	if owm.APIKey == "" {
		return nil, fmt.Errorf("OpenWeatherMap API key not provided")
	}

	provider := NewOpenWeatherMapProvider(owm.APIKey).
		WithBaseURL(owm.BaseURL).
		WithTimeout(c.timeout).
		WithInterval(c.interval)

	if !owm.RateLimit.Enabled {
		return provider, nil
	}
	return NewRateLimitedProvider(provider, owm.RateLimit.WeatherRPS, owm.RateLimit.ForecastRPS, owm.RateLimit.Burst), nil
}

func parseDuration(name, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", name)
	}
	return d, nil
}
