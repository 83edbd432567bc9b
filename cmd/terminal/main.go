package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"weather-dashboard/dashboard"
	"weather-dashboard/datasource"
	"weather-dashboard/models"
	"weather-dashboard/presentation"
)

// terminalDisplay prints dashboard views as text
type terminalDisplay struct {
	out io.Writer
}

func (d terminalDisplay) Show(view *dashboard.View) {
	fmt.Fprintf(d.out, "\n%s  %s  %s\n", view.City, view.Temperature, view.Description)
	fmt.Fprintf(d.out, "%s | %s | %s\n", view.Humidity, view.Wind, view.Pressure)
	fmt.Fprintf(d.out, "Today: %s\n", view.MinMax)
	for _, day := range view.Forecast {
		fmt.Fprintf(d.out, "  %s %-6s %s\n", day.Weekday, day.Temperature, day.Icon)
	}
	fmt.Fprint(d.out, "> ")
}

func (d terminalDisplay) ShowError(err *dashboard.QueryError) {
	fmt.Fprintf(d.out, "\n%s\n> ", err.Message())
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	configFile := flag.String("config", "config.json", "Path to configuration file (.json, .yaml or .toml)")
	lat := flag.Float64("lat", 0, "Latitude reported as the current position")
	lon := flag.Float64("lon", 0, "Longitude reported as the current position")
	verbose := flag.Bool("v", false, "Print query logs")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	config, err := datasource.LoadConfig(*configFile)
	if errors.Is(err, fs.ErrNotExist) {
		config = datasource.DefaultConfig()
		config.ApplyEnv()
		err = config.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	provider, err := config.NewProvider()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create weather provider: %v\n", err)
		os.Exit(1)
	}

	service := dashboard.NewService(provider, dashboard.Options{
		Interval:  config.Interval(),
		Location:  config.Location(),
		MatchMode: config.MatchMode(),
		Icons:     presentation.NewIconResolver(config.OpenWeatherMap.IconBaseURL, config.OpenWeatherMap.DefaultIcon),
	})

	// without -lat/-lon there is no position and the default city is used
	var locator dashboard.Locator
	if flagSet("lat") && flagSet("lon") {
		locator = dashboard.StaticLocator(models.Coordinates{Lat: *lat, Lon: *lon})
	}

	session := dashboard.NewSession(service, terminalDisplay{out: os.Stdout}, dashboard.SessionConfig{
		Units:              config.UnitsValue(),
		Locator:            locator,
		FallbackCity:       config.DefaultCity,
		GeolocationTimeout: config.GeolocationWait(),
	})
	defer session.Close()

	ctx := context.Background()
	fmt.Println("Type a city name, :units to switch units, :locate for your position, :quit to exit")
	session.Locate(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case ":quit", ":q":
			return
		case ":units", ":u":
			session.ToggleUnits(ctx)
		case ":locate", ":l":
			session.Locate(ctx)
		case "":
			fmt.Print("> ")
		default:
			session.Search(ctx, line)
		}
	}
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
