package datasource

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/forecast"
	"weather-dashboard/models"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Setenv("OPENWEATHERMAP_API_KEY", "")
	t.Setenv("WEATHER_DEFAULT_CITY", "")
	t.Setenv("WEATHER_UNITS", "")
}

func TestLoadConfigFormats(t *testing.T) {
	clearEnv(t)

	files := map[string]string{
		"config.json": `{
  "openWeatherMap": {"apiKey": "abc", "rateLimit": {"enabled": false}},
  "defaultCity": "Mumbai",
  "units": "imperial",
  "samplingInterval": "1h",
  "dayMatching": "day-of-month",
  "timeZone": "Asia/Kolkata"
}`,
		"config.yaml": `
openWeatherMap:
  apiKey: abc
  rateLimit:
    enabled: false
defaultCity: Mumbai
units: imperial
samplingInterval: 1h
dayMatching: day-of-month
timeZone: Asia/Kolkata
`,
		"config.toml": `
defaultCity = "Mumbai"
units = "imperial"
samplingInterval = "1h"
dayMatching = "day-of-month"
timeZone = "Asia/Kolkata"

[openWeatherMap]
apiKey = "abc"

[openWeatherMap.rateLimit]
enabled = false
`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, name, content))
			require.NoError(t, err)

			assert.Equal(t, "abc", cfg.OpenWeatherMap.APIKey)
			assert.Equal(t, "Mumbai", cfg.DefaultCity)
			assert.Equal(t, models.Imperial, cfg.UnitsValue())
			assert.Equal(t, time.Hour, cfg.Interval())
			assert.Equal(t, forecast.MatchDayOfMonth, cfg.MatchMode())
			assert.Equal(t, "Asia/Kolkata", cfg.Location().String())
			// defaults survive partial files
			assert.Equal(t, DefaultOpenWeatherMapURL, cfg.OpenWeatherMap.BaseURL)
			assert.Equal(t, 5*time.Second, cfg.GeolocationWait())
			assert.Equal(t, 10*time.Second, cfg.HTTPTimeout())
			assert.False(t, cfg.OpenWeatherMap.RateLimit.Enabled)
		})
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("OPENWEATHERMAP_API_KEY", "from-env")
	t.Setenv("WEATHER_DEFAULT_CITY", "Nashik")
	t.Setenv("WEATHER_UNITS", "imperial")

	cfg, err := LoadConfig(writeConfig(t, "config.json", `{"openWeatherMap": {"apiKey": "from-file"}}`))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.OpenWeatherMap.APIKey)
	assert.Equal(t, "Nashik", cfg.DefaultCity)
	assert.Equal(t, models.Imperial, cfg.UnitsValue())
}

func TestLoadConfigErrors(t *testing.T) {
	clearEnv(t)

	tests := map[string]struct {
		name    string
		content string
	}{
		"unknown extension": {"config.ini", `apiKey=abc`},
		"bad json":          {"config.json", `{`},
		"bad units":         {"config.json", `{"units": "kelvin"}`},
		"uneven interval":   {"config.json", `{"samplingInterval": "5h"}`},
		"bad duration":      {"config.json", `{"geolocationTimeout": "soon"}`},
		"bad day matching":  {"config.json", `{"dayMatching": "weekly"}`},
		"bad time zone":     {"config.json", `{"timeZone": "Mars/Olympus"}`},
		"empty city":        {"config.json", `{"defaultCity": " "}`},
		"zero rate limit":   {"config.json", `{"openWeatherMap": {"rateLimit": {"enabled": true, "burst": 0}}}`},
	}

	for desc, tt := range tests {
		t.Run(desc, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.name, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Pune", cfg.DefaultCity)
	assert.Equal(t, models.Metric, cfg.UnitsValue())
	assert.Equal(t, forecast.DefaultInterval, cfg.Interval())
	assert.Equal(t, forecast.MatchFullDate, cfg.MatchMode())
	assert.Equal(t, time.Local, cfg.Location())
}

func TestConfigNewProvider(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	_, err := cfg.NewProvider()
	assert.Error(t, err)

	cfg.OpenWeatherMap.APIKey = "abc"
	p, err := cfg.NewProvider()
	require.NoError(t, err)
	assert.IsType(t, &RateLimitedProvider{}, p)

	cfg.OpenWeatherMap.RateLimit.Enabled = false
	p, err = cfg.NewProvider()
	require.NoError(t, err)
	assert.IsType(t, &OpenWeatherMapProvider{}, p)
}
