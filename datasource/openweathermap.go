package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weather-dashboard/forecast"
	"weather-dashboard/models"
)

// DefaultOpenWeatherMapURL is the base URL of the OpenWeatherMap 2.5 API
const DefaultOpenWeatherMapURL = "https://api.openweathermap.org/data/2.5"

// dtTxtLayout is the layout of the forecast "dt_txt" field, which is in UTC
const dtTxtLayout = "2006-01-02 15:04:05"

// OpenWeatherMapProvider implements both WeatherProvider and ForecastSource interfaces
type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	interval   time.Duration
	httpClient *http.Client
}

// NewOpenWeatherMapProvider creates a new OpenWeatherMap provider
func NewOpenWeatherMapProvider(apiKey string) *OpenWeatherMapProvider {
	return &OpenWeatherMapProvider{
		apiKey:   apiKey,
		baseURL:  DefaultOpenWeatherMapURL,
		interval: forecast.DefaultInterval,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithBaseURL points the provider at another API root
func (p *OpenWeatherMapProvider) WithBaseURL(baseURL string) *OpenWeatherMapProvider {
	if baseURL != "" {
		p.baseURL = baseURL
	}
	return p
}

// WithTimeout sets the HTTP client timeout
func (p *OpenWeatherMapProvider) WithTimeout(timeout time.Duration) *OpenWeatherMapProvider {
	if timeout > 0 {
		p.httpClient.Timeout = timeout
	}
	return p
}

// WithInterval sets the forecast sampling interval reported with each forecast
func (p *OpenWeatherMapProvider) WithInterval(interval time.Duration) *OpenWeatherMapProvider {
	if interval > 0 {
		p.interval = interval
	}
	return p
}

// Name returns the provider name
func (p *OpenWeatherMapProvider) Name() string {
	return "OpenWeatherMap"
}

// statusCode decodes the "cod" field, which the API sends as a number or a string
type statusCode int

func (c *statusCode) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*c = 0
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("invalid status code %q: %w", data, err)
	}
	*c = statusCode(n)
	return nil
}

type condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// GetWeather fetches current weather for a city or position
func (p *OpenWeatherMapProvider) GetWeather(ctx context.Context, query models.Query, units models.Units) (models.WeatherData, error) {
	body, err := p.get(ctx, "weather", query, units)
	if err != nil {
		return models.WeatherData{}, err
	}

	// Parse response
	var response struct {
		Cod  statusCode `json:"cod"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
			Pressure float64 `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
			Deg   int     `json:"deg"`
		} `json:"wind"`
		Weather []condition `json:"weather"`
		Name    string      `json:"name"`
		Dt      int64       `json:"dt"`
		Sys     struct {
			Country string `json:"country"`
		} `json:"sys"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return models.WeatherData{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if err := p.checkStatus(int(response.Cod), body); err != nil {
		return models.WeatherData{}, err
	}

	data := models.WeatherData{
		Provider:    p.Name(),
		City:        response.Name,
		Country:     response.Sys.Country,
		Temperature: response.Main.Temp,
		Humidity:    response.Main.Humidity,
		WindSpeed:   response.Wind.Speed,
		WindDeg:     response.Wind.Deg,
		Pressure:    response.Main.Pressure,
		Units:       units,
		Timestamp:   time.Now(),
	}
	if response.Dt > 0 {
		data.Timestamp = time.Unix(response.Dt, 0)
	}

	// Extract weather description and icon if available
	if len(response.Weather) > 0 {
		data.Description = response.Weather[0].Description
		data.Main = response.Weather[0].Main
		data.Icon = response.Weather[0].Icon
	}

	return data, nil
}

// FetchForecast fetches the 5 day forecast, which OpenWeatherMap returns in 3-hour steps
func (p *OpenWeatherMapProvider) FetchForecast(ctx context.Context, query models.Query, units models.Units) (models.ForecastData, error) {
	body, err := p.get(ctx, "forecast", query, units)
	if err != nil {
		return models.ForecastData{}, err
	}

	// Parse response
	var response struct {
		Cod  statusCode `json:"cod"`
		City struct {
			Name    string `json:"name"`
			Country string `json:"country"`
		} `json:"city"`
		List []struct {
			Dt    int64  `json:"dt"`
			DtTxt string `json:"dt_txt"`
			Main  struct {
				Temp     float64 `json:"temp"`
				Humidity float64 `json:"humidity"`
				Pressure float64 `json:"pressure"`
			} `json:"main"`
			Wind struct {
				Speed float64 `json:"speed"`
				Deg   int     `json:"deg"`
			} `json:"wind"`
			Weather []condition `json:"weather"`
		} `json:"list"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return models.ForecastData{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if err := p.checkStatus(int(response.Cod), body); err != nil {
		return models.ForecastData{}, err
	}

	location := response.City.Name
	if response.City.Country != "" {
		location = fmt.Sprintf("%s,%s", response.City.Name, response.City.Country)
	}

	data := models.ForecastData{
		Provider: p.Name(),
		Location: location,
		Units:    units,
		Interval: p.interval,
		Points:   make(models.ForecastSeries, 0, len(response.List)),
		Updated:  time.Now(),
	}

	for _, item := range response.List {
		timestamp, err := entryTime(item.Dt, item.DtTxt)
		if err != nil {
			return models.ForecastData{}, err
		}

		point := models.ForecastPoint{
			Timestamp:   timestamp,
			Temperature: item.Main.Temp,
			Humidity:    item.Main.Humidity,
			Pressure:    item.Main.Pressure,
			WindSpeed:   item.Wind.Speed,
			WindDeg:     item.Wind.Deg,
		}
		if len(item.Weather) > 0 {
			point.WeatherMain = item.Weather[0].Main
			point.Description = item.Weather[0].Description
			point.Icon = item.Weather[0].Icon
		}

		data.Points = append(data.Points, point)
	}

	return data, nil
}

// get performs a GET against endpoint and returns the body of a 200 response
func (p *OpenWeatherMapProvider) get(ctx context.Context, endpoint string, query models.Query, units models.Units) ([]byte, error) {
	params, err := p.params(query, units)
	if err != nil {
		return nil, err
	}

	// Create request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Execute request
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	// Read response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if err := p.checkStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *OpenWeatherMapProvider) params(query models.Query, units models.Units) (url.Values, error) {
	params := url.Values{}
	switch {
	case query.Coords != nil:
		params.Add("lat", strconv.FormatFloat(query.Coords.Lat, 'f', -1, 64))
		params.Add("lon", strconv.FormatFloat(query.Coords.Lon, 'f', -1, 64))
	case query.City != "":
		params.Add("q", query.City)
	default:
		return nil, ErrEmptyQuery
	}
	if units == "" {
		units = models.Metric
	}
	params.Add("appid", p.apiKey)
	params.Add("units", string(units))
	return params, nil
}

// checkStatus maps an HTTP status or an in-body "cod" to an error.
// A zero status means the body carried none.
func (p *OpenWeatherMapProvider) checkStatus(status int, body []byte) error {
	if status == 0 || status == http.StatusOK {
		return nil
	}
	if status == http.StatusNotFound {
		return ErrCityNotFound
	}

	var payload struct {
		Message string `json:"message"`
	}
	message := string(body)
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		message = payload.Message
	}
	return &APIError{Provider: p.Name(), Status: status, Message: message}
}

func entryTime(dt int64, dtTxt string) (time.Time, error) {
	if dt > 0 {
		return time.Unix(dt, 0), nil
	}
	t, err := time.ParseInLocation(dtTxtLayout, dtTxt, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse forecast time %q: %w", dtTxt, err)
	}
	return t, nil
}

// Ensure OpenWeatherMapProvider implements Provider
var _ Provider = (*OpenWeatherMapProvider)(nil)
