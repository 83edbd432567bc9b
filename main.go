package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"weather-dashboard/api"
	"weather-dashboard/dashboard"
	"weather-dashboard/datasource"
	"weather-dashboard/presentation"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	port := flag.Int("port", 8080, "Port to run the server on")
	configFile := flag.String("config", "config.json", "Path to configuration file (.json, .yaml or .toml)")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable API rate limiting")
	flag.Parse()

	config, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if !*enableRateLimiting {
		config.OpenWeatherMap.RateLimit.Enabled = false
	}

	provider, err := config.NewProvider()
	if err != nil {
		log.Fatalf("Failed to create weather provider: %v", err)
	}
	log.Printf("Using %s (units %s, sampling every %s, default city %s)",
		provider.Name(), config.UnitsValue(), config.Interval(), config.DefaultCity)

	service := dashboard.NewService(provider, dashboard.Options{
		Interval:  config.Interval(),
		Location:  config.Location(),
		MatchMode: config.MatchMode(),
		Icons:     presentation.NewIconResolver(config.OpenWeatherMap.IconBaseURL, config.OpenWeatherMap.DefaultIcon),
	})

	server := api.NewServer(service, config.DefaultCity, config.UnitsValue(), *port)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	sig := <-shutdownChan
	log.Printf("Shutting down due to %s signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Shutdown complete")
}

// loadConfig reads the configuration file, or uses defaults when it does not exist
func loadConfig(filename string) (*datasource.Config, error) {
	config, err := datasource.LoadConfig(filename)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	log.Printf("Config file %s not found, using defaults", filename)
	config = datasource.DefaultConfig()
	config.ApplyEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
