package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"weather-dashboard/dashboard"
)

func main() {
	fmt.Println("Weather Dashboard API Client Example")
	fmt.Println("====================================")

	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the dashboard server")
	city := flag.String("city", "Chinchvad", "City to query")
	units := flag.String("units", "metric", "metric or imperial")
	flag.Parse()

	client := &http.Client{Timeout: 15 * time.Second}

	fmt.Println("\nChecking server health...")
	healthResp, err := client.Get(*baseURL + "/api/health")
	if err != nil {
		fmt.Printf("Error reaching server: %v\n", err)
		os.Exit(1)
	}
	healthResp.Body.Close()
	fmt.Printf("Health: %s\n", healthResp.Status)

	params := url.Values{}
	params.Set("city", *city)
	params.Set("units", *units)

	fmt.Printf("\nFetching dashboard for %s...\n", *city)
	resp, err := client.Get(fmt.Sprintf("%s/api/dashboard?%s", *baseURL, params.Encode()))
	if err != nil {
		fmt.Printf("Error fetching dashboard: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("Error reading response: %v\n", err)
		os.Exit(1)
	}

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (%s): %s\n", resp.Status, errorMessage(body))
		os.Exit(1)
	}

	var view dashboard.View
	if err := json.Unmarshal(body, &view); err != nil {
		fmt.Printf("Error decoding dashboard: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n%s: %s, %s\n", view.City, view.Temperature, view.Description)
	fmt.Printf("%s\n%s\n%s\n", view.Humidity, view.Wind, view.Pressure)
	fmt.Println(view.MinMax)
	fmt.Println("\nForecast:")
	for _, day := range view.Forecast {
		fmt.Printf("  %s  %-6s  %s\n", day.Weekday, day.Temperature, day.IconURL)
	}
}

// errorMessage extracts the "error" field of an API error body, or returns the raw body
func errorMessage(body []byte) string {
	var apiErr struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error == "" {
		return string(body)
	}
	return apiErr.Error
}
