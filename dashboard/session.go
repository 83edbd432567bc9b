package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"weather-dashboard/models"
)

// Display receives the outcome of session queries. Its methods are called
// with the session locked and must not call back into the session.
type Display interface {
	Show(view *View)
	ShowError(err *QueryError)
}

// Session holds one client's dashboard state: the selected units and the
// last target that was shown. Every action starts a new pipeline and cancels
// the previous one; a result is only displayed if no newer action was issued
// after it started.
type Session struct {
	querier      Querier
	display      Display
	locator      Locator
	fallbackCity string
	geoTimeout   time.Duration

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	units  models.Units
	target models.Query
	// pending is the target of the running pipeline; zero while it locates
	pending  models.Query
	inFlight bool
	wg       sync.WaitGroup
}

// SessionConfig configures a Session
type SessionConfig struct {
	Units              models.Units
	Locator            Locator
	FallbackCity       string
	GeolocationTimeout time.Duration
}

// NewSession creates a session that renders into display
func NewSession(querier Querier, display Display, cfg SessionConfig) *Session {
	if cfg.Units == "" {
		cfg.Units = models.Metric
	}
	return &Session{
		querier:      querier,
		display:      display,
		locator:      cfg.Locator,
		fallbackCity: cfg.FallbackCity,
		geoTimeout:   cfg.GeolocationTimeout,
		units:        cfg.Units,
	}
}

// Units returns the currently selected units
func (s *Session) Units() models.Units {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.units
}

// Target returns the last successfully displayed query target
func (s *Session) Target() models.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// Search queries a city. Blank input is ignored.
func (s *Session) Search(ctx context.Context, city string) {
	if strings.TrimSpace(city) == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.start(ctx, models.CityQuery(city))
}

// Locate queries the current position, falling back to the default city
func (s *Session) Locate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.start(ctx, models.Query{})
}

// ToggleUnits switches between metric and imperial and re-queries the most
// recently requested target. That is the running query's target when one is
// in flight, otherwise the last target shown. With neither it locates.
func (s *Session) ToggleUnits(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.units = s.units.Toggle()
	target := s.target
	if s.inFlight {
		target = s.pending
	}
	s.start(ctx, target)
}

// Wait blocks until all started pipelines have finished
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close cancels the running pipeline and waits for it. The canceled
// pipeline's result is not displayed.
func (s *Session) Close() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	s.inFlight = false
	s.mu.Unlock()
	s.Wait()
}

// start runs a pipeline for target, locating first when target is zero.
// Callers hold s.mu.
func (s *Session) start(parent context.Context, target models.Query) {
	ctx, cancel := context.WithCancel(parent)

	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	seq := s.seq
	s.cancel = cancel
	s.pending = target
	s.inFlight = true
	units := s.units

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		q := target
		if q.IsZero() {
			q = ResolveTarget(ctx, s.locator, s.geoTimeout, s.fallbackCity)
		}
		view, err := s.querier.Query(ctx, q, units)

		s.mu.Lock()
		defer s.mu.Unlock()
		if seq != s.seq {
			// a newer action owns the display
			return
		}
		s.inFlight = false
		if err != nil {
			var qerr *QueryError
			if !errors.As(err, &qerr) {
				qerr = &QueryError{Query: q, Err: err}
			}
			s.display.ShowError(qerr)
			return
		}
		s.target = q
		s.display.Show(view)
	}()
}
