package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"weather-dashboard/dashboard"
	"weather-dashboard/models"
)

// Server represents the API server
type Server struct {
	querier      dashboard.Querier
	defaultCity  string
	defaultUnits models.Units
	router       chi.Router
	server       *http.Server
}

// NewServer creates a new API server answering dashboard queries through querier.
// Requests without a city or coordinates are answered for defaultCity, requests
// without units in defaultUnits.
func NewServer(querier dashboard.Querier, defaultCity string, defaultUnits models.Units, port int) *Server {
	if defaultUnits == "" {
		defaultUnits = models.Metric
	}
	s := &Server{
		querier:      querier,
		defaultCity:  defaultCity,
		defaultUnits: defaultUnits,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealthCheck)
		r.Get("/dashboard", s.handleGetDashboard)
	})

	s.router = r
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router returns the HTTP handler serving the API
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins the API server. It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	log.Printf("Starting API server on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops accepting requests and waits for active ones to finish
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleGetDashboard runs one query. Parameters: city, or lat and lon; units.
func (s *Server) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	units := s.defaultUnits
	if raw := params.Get("units"); raw != "" {
		parsed, err := models.ParseUnits(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		units = parsed
	}

	query, err := s.parseTarget(params.Get("city"), params.Get("lat"), params.Get("lon"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := s.querier.Query(r.Context(), query, units)
	if err != nil {
		var qerr *dashboard.QueryError
		if errors.As(err, &qerr) && qerr.NotFound() {
			writeError(w, http.StatusNotFound, qerr.Message())
			return
		}
		writeError(w, http.StatusBadGateway, dashboard.MessageUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) parseTarget(city, lat, lon string) (models.Query, error) {
	if lat == "" && lon == "" {
		if q := models.CityQuery(city); !q.IsZero() {
			return q, nil
		}
		return models.CityQuery(s.defaultCity), nil
	}
	if lat == "" || lon == "" {
		return models.Query{}, errors.New("lat and lon must be given together")
	}

	latValue, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return models.Query{}, fmt.Errorf("invalid lat %q", lat)
	}
	lonValue, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return models.Query{}, fmt.Errorf("invalid lon %q", lon)
	}

	q := models.CoordsQuery(latValue, lonValue)
	if !q.Coords.Valid() {
		return models.Query{}, fmt.Errorf("coordinates %s out of range", q)
	}
	return q, nil
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
