package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sync"
	"time"

	"weather-dashboard/datasource"
	"weather-dashboard/models"
)

// MockWeatherProvider is a simple mock that simulates latency and counts calls
type MockWeatherProvider struct {
	callCount  int
	mutex      sync.Mutex
	latency    time.Duration
	shouldFail bool
	failAfter  int
}

var _ datasource.Provider = (*MockWeatherProvider)(nil)

func NewMockWeatherProvider(latency time.Duration, shouldFail bool, failAfter int) *MockWeatherProvider {
	return &MockWeatherProvider{
		latency:    latency,
		shouldFail: shouldFail,
		failAfter:  failAfter,
	}
}

func (m *MockWeatherProvider) GetWeather(ctx context.Context, query models.Query, units models.Units) (models.WeatherData, error) {
	currentCount, err := m.serve(ctx, "weather", query)
	if err != nil {
		return models.WeatherData{}, err
	}

	return models.WeatherData{
		Provider:    m.Name(),
		City:        query.City,
		Temperature: 22.5,
		Humidity:    60,
		WindSpeed:   5.5,
		Description: fmt.Sprintf("Mocked weather data #%d", currentCount),
		Units:       units,
		Timestamp:   time.Now(),
	}, nil
}

func (m *MockWeatherProvider) FetchForecast(ctx context.Context, query models.Query, units models.Units) (models.ForecastData, error) {
	if _, err := m.serve(ctx, "forecast", query); err != nil {
		return models.ForecastData{}, err
	}

	start := time.Now().Truncate(3 * time.Hour)
	points := make(models.ForecastSeries, 40)
	for i := range points {
		points[i] = models.ForecastPoint{
			Timestamp:   start.Add(time.Duration(i) * 3 * time.Hour),
			Temperature: 20 + float64(i%8),
			Icon:        "01d",
		}
	}
	return models.ForecastData{
		Provider: m.Name(),
		Location: query.String(),
		Units:    units,
		Interval: 3 * time.Hour,
		Points:   points,
		Updated:  time.Now(),
	}, nil
}

// serve counts the call and simulates latency
func (m *MockWeatherProvider) serve(ctx context.Context, endpoint string, query models.Query) (int, error) {
	m.mutex.Lock()
	m.callCount++
	currentCount := m.callCount
	m.mutex.Unlock()

	now := time.Now()
	fmt.Printf("%s - Processing %s request #%d for %s\n", now.Format("15:04:05.000"), endpoint, currentCount, query)

	select {
	case <-time.After(m.latency):
	case <-ctx.Done():
		return currentCount, ctx.Err()
	}

	if m.shouldFail && currentCount > m.failAfter {
		return currentCount, fmt.Errorf("service unavailable (too many requests)")
	}
	return currentCount, nil
}

func (m *MockWeatherProvider) Name() string {
	return "MockProvider"
}

func (m *MockWeatherProvider) GetCallCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.callCount
}

func main() {
	// Parse command-line flags
	requestsPerSecond := flag.Float64("rps", 1.0, "Rate limit in requests per second")
	forecastEvery := flag.Int("forecast-every", 0, "Make every Nth request a forecast request (0 disables)")
	burstSize := flag.Int("burst", 3, "Maximum burst size")
	totalRequests := flag.Int("requests", 10, "Total number of requests to make")
	concurrentRequests := flag.Int("concurrent", 5, "Number of concurrent requests")
	failAfter := flag.Int("fail-after", 0, "Make the mock fail every request after the first N (0 disables)")
	flag.Parse()

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Create a mock provider with 200ms response time
	mockProvider := NewMockWeatherProvider(200*time.Millisecond, *failAfter > 0, *failAfter)

	// Wrap with rate limiter
	rateLimitedProvider := datasource.NewRateLimitedProvider(mockProvider, *requestsPerSecond, *requestsPerSecond, *burstSize)

	fmt.Printf("Testing rate limiter with:\n")
	fmt.Printf("- Rate limit: %.2f requests/second\n", *requestsPerSecond)
	fmt.Printf("- Burst size: %d\n", *burstSize)
	fmt.Printf("- Total requests: %d\n", *totalRequests)
	fmt.Printf("- Concurrent workers: %d\n", *concurrentRequests)
	fmt.Println("Starting test...")

	// Record start time
	startTime := time.Now()

	// Create wait group for concurrent requests
	var wg sync.WaitGroup

	// Launch concurrent goroutines
	for i := 0; i < *concurrentRequests; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			// Calculate how many requests this worker should make
			requestsPerWorker := *totalRequests / *concurrentRequests
			if workerID < *totalRequests%*concurrentRequests {
				requestsPerWorker++
			}

			// Make requests
			for j := 0; j < requestsPerWorker; j++ {
				query := models.CityQuery(fmt.Sprintf("TestLocation-%d-%d", workerID, j))
				before := time.Now()
				var err error
				if *forecastEvery > 0 && j%*forecastEvery == *forecastEvery-1 {
					_, err = rateLimitedProvider.FetchForecast(ctx, query, models.Metric)
				} else {
					_, err = rateLimitedProvider.GetWeather(ctx, query, models.Metric)
				}
				elapsed := time.Since(before)

				if err != nil {
					log.Printf("Worker %d - Request %d failed: %v", workerID, j, err)
				} else {
					log.Printf("Worker %d - Request %d completed in %v", workerID, j, elapsed)
				}

				// Small sleep to prevent tight loop
				time.Sleep(10 * time.Millisecond)
			}
		}(i)
	}

	// Wait for all goroutines to finish
	wg.Wait()

	// Calculate total time
	totalTime := time.Since(startTime)
	actualRPS := float64(*totalRequests) / totalTime.Seconds()

	fmt.Println("\nTest completed!")
	fmt.Printf("Total time: %.2f seconds\n", totalTime.Seconds())
	fmt.Printf("Actual requests per second: %.2f\n", actualRPS)
	fmt.Printf("Total requests processed: %d\n", mockProvider.GetCallCount())

	expectedMinTime := float64(*totalRequests-*burstSize) / *requestsPerSecond
	if expectedMinTime < 0 {
		expectedMinTime = 0
	}

	fmt.Printf("Expected minimum time (theoretical): %.2f seconds\n", expectedMinTime)

	if actualRPS > *requestsPerSecond*1.5 && *totalRequests > *burstSize {
		fmt.Println("\n⚠️ WARNING: Actual RPS significantly higher than configured rate limit!")
		fmt.Println("Rate limiting may not be working as expected.")
	} else {
		fmt.Println("\n✅ Rate limiting appears to be working correctly.")
	}
}
