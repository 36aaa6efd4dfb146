package dashboard

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	apperrors "github.com/lequoctrung8581/weather-app-group-project-asm3/pkg/errors"
)

// Service orchestrates user actions into geocoding, forecast fetching,
// projection and history updates, holding per-session dashboard state.
type Service interface {
	SubmitCity(ctx context.Context, sessionID, query string) (Snapshot, error)
	UseMyLocation(ctx context.Context, sessionID string, lat, lon float64) (Snapshot, error)
	ToggleUnits(ctx context.Context, sessionID string) (Snapshot, error)
	ToggleTheme(ctx context.Context, sessionID string) (Snapshot, error)
	Snapshot(ctx context.Context, sessionID string) (Snapshot, error)
	History(ctx context.Context, sessionID string) ([]string, error)
}

type service struct {
	cfg       Config
	geocoder  GeocodingClient
	forecasts ForecastClient
	places    PlaceCache
	prefs     PrefStore
	logger    *slog.Logger
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewService wires up the dashboard domain.
func NewService(cfg Config, geocoder GeocodingClient, forecasts ForecastClient, places PlaceCache, prefs PrefStore, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		geocoder:  geocoder,
		forecasts: forecasts,
		places:    places,
		prefs:     prefs,
		logger:    logger.With("component", "dashboard.service"),
		now:       time.Now,
		sessions:  make(map[string]*session),
	}
}

// session carries the transient controller state for one dashboard session.
// generation is the monotonic token guarding against stale completions: a
// network call started under an older generation must not overwrite state
// written by a newer one.
type session struct {
	mu         sync.Mutex
	generation uint64
	state      State
	units      UnitSystem
	message    string
	place      *Place
	coords     *Coordinates
	current    *CurrentConditions
	utcOffset  int
	hourly     []HourlyEntry
	daily      []DailyEntry
}

func (s *service) session(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{state: StateIdle, units: UnitsMetric}
		s.sessions[id] = sess
	}
	return sess
}

func (s *service) SubmitCity(ctx context.Context, sessionID, query string) (Snapshot, error) {
	sess := s.session(sessionID)
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		// empty input is ignored, no message
		return s.snapshot(ctx, sessionID, sess), nil
	}

	gen, units := sess.begin(StateResolving)

	place, err := s.resolvePlace(ctx, trimmed)
	if err != nil {
		s.logger.Warn("city resolution failed", "query", trimmed, "error", err)
		sess.fail(gen, "could not find the location")
		return s.snapshot(ctx, sessionID, sess), nil
	}

	sess.advance(gen, StateFetching)

	bundle, err := s.forecasts.FetchForecast(ctx, place.Coords.Latitude, place.Coords.Longitude, units)
	if err != nil {
		s.logger.Error("forecast fetch failed", "place", place.DisplayName, "error", err)
		sess.fail(gen, "could not fetch the forecast")
		return s.snapshot(ctx, sessionID, sess), nil
	}

	hourly, daily := s.project(bundle)
	if sess.complete(gen, place, place.Coords, bundle, hourly, daily) {
		s.recordHistory(ctx, sessionID, place.Tag())
	}
	return s.snapshot(ctx, sessionID, sess), nil
}

func (s *service) UseMyLocation(ctx context.Context, sessionID string, lat, lon float64) (Snapshot, error) {
	if err := validateCoordinates(lat, lon); err != nil {
		return Snapshot{}, apperrors.Wrap("invalid_input", "coordinates out of range", err)
	}
	sess := s.session(sessionID)
	gen, units := sess.begin(StateResolving)

	place, err := s.geocoder.ResolveByCoordinates(ctx, lat, lon)
	if err != nil {
		// reverse lookup is best effort, the forecast still proceeds
		s.logger.Warn("reverse geocoding failed", "lat", lat, "lon", lon, "error", err)
		place = nil
	}

	sess.advance(gen, StateFetching)

	bundle, err := s.forecasts.FetchForecast(ctx, lat, lon, units)
	if err != nil {
		s.logger.Error("forecast fetch failed", "lat", lat, "lon", lon, "error", err)
		sess.fail(gen, "could not fetch the forecast")
		return s.snapshot(ctx, sessionID, sess), nil
	}

	hourly, daily := s.project(bundle)
	if sess.complete(gen, place, Coordinates{Latitude: lat, Longitude: lon}, bundle, hourly, daily) && place != nil {
		s.recordHistory(ctx, sessionID, place.Tag())
	}
	return s.snapshot(ctx, sessionID, sess), nil
}

func (s *service) ToggleUnits(ctx context.Context, sessionID string) (Snapshot, error) {
	sess := s.session(sessionID)

	sess.mu.Lock()
	if sess.coords == nil {
		// nothing fetched yet, toggling has nothing to re-fetch
		sess.mu.Unlock()
		return s.snapshot(ctx, sessionID, sess), nil
	}
	sess.generation++
	gen := sess.generation
	prev := sess.units
	next := prev.Toggle()
	sess.units = next
	sess.state = StateFetching
	sess.message = ""
	coords := *sess.coords
	place := sess.place
	sess.mu.Unlock()

	bundle, err := s.forecasts.FetchForecast(ctx, coords.Latitude, coords.Longitude, next)
	if err != nil {
		s.logger.Error("forecast re-fetch failed", "units", next, "error", err)
		// revert the toggle so displayed values and the active system never mix
		sess.mu.Lock()
		if gen == sess.generation {
			sess.units = prev
			sess.state = StateError
			sess.message = "could not fetch the forecast"
		}
		sess.mu.Unlock()
		return s.snapshot(ctx, sessionID, sess), nil
	}

	hourly, daily := s.project(bundle)
	sess.complete(gen, place, coords, bundle, hourly, daily)
	return s.snapshot(ctx, sessionID, sess), nil
}

func (s *service) ToggleTheme(ctx context.Context, sessionID string) (Snapshot, error) {
	sess := s.session(sessionID)
	dark := s.darkMode(ctx, sessionID)
	if err := s.prefs.Set(ctx, themeKey(sessionID), strconv.FormatBool(!dark)); err != nil {
		return Snapshot{}, apperrors.Wrap("prefs_error", "failed to persist theme", err)
	}
	return s.snapshot(ctx, sessionID, sess), nil
}

func (s *service) Snapshot(ctx context.Context, sessionID string) (Snapshot, error) {
	return s.snapshot(ctx, sessionID, s.session(sessionID)), nil
}

func (s *service) History(ctx context.Context, sessionID string) ([]string, error) {
	return s.history(ctx, sessionID), nil
}

// resolvePlace consults the place cache before the geocoding upstream and
// writes successful resolutions through.
func (s *service) resolvePlace(ctx context.Context, query string) (*Place, error) {
	normalized := strings.ToLower(query)
	if cached, ok, err := s.places.Lookup(ctx, normalized); err != nil {
		s.logger.Warn("place cache lookup failed", "query", normalized, "error", err)
	} else if ok {
		return cached, nil
	}

	place, err := s.geocoder.ResolveByName(ctx, query)
	if err != nil {
		return nil, err
	}
	if err := s.places.Store(ctx, normalized, *place); err != nil {
		s.logger.Warn("place cache store failed", "query", normalized, "error", err)
	}
	return place, nil
}

func (s *service) project(bundle *ForecastBundle) ([]HourlyEntry, []DailyEntry) {
	return ProjectHourly(bundle.Hourly, s.now(), s.cfg.HourlyWindow),
		ProjectDaily(bundle.Daily, s.cfg.DailyWindow)
}

func (s *service) snapshot(ctx context.Context, sessionID string, sess *session) Snapshot {
	history := s.history(ctx, sessionID)
	dark := s.darkMode(ctx, sessionID)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	snap := Snapshot{
		State:            sess.state,
		Units:            sess.units,
		UnitLabels:       sess.units.Labels(),
		DarkMode:         dark,
		Message:          sess.message,
		Place:            sess.place,
		Current:          sess.current,
		UTCOffsetSeconds: sess.utcOffset,
		Hourly:           sess.hourly,
		Daily:            sess.daily,
		History:          history,
	}
	if snap.Hourly == nil {
		snap.Hourly = []HourlyEntry{}
	}
	if snap.Daily == nil {
		snap.Daily = []DailyEntry{}
	}
	return snap
}

func (s *service) history(ctx context.Context, sessionID string) []string {
	blob, ok, err := s.prefs.Get(ctx, historyKey(sessionID))
	if err != nil {
		s.logger.Warn("history load failed", "error", err)
		return []string{}
	}
	if !ok {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(blob), &tags); err != nil {
		// corrupt persisted state degrades to an empty list
		s.logger.Warn("history blob corrupt, resetting", "error", err)
		return []string{}
	}
	return tags
}

func (s *service) recordHistory(ctx context.Context, sessionID, tag string) {
	tags := pushTag(s.history(ctx, sessionID), tag, s.cfg.HistoryLimit)
	blob, err := json.Marshal(tags)
	if err != nil {
		s.logger.Warn("history marshal failed", "error", err)
		return
	}
	if err := s.prefs.Set(ctx, historyKey(sessionID), string(blob)); err != nil {
		s.logger.Warn("history persist failed", "error", err)
	}
}

func (s *service) darkMode(ctx context.Context, sessionID string) bool {
	blob, ok, err := s.prefs.Get(ctx, themeKey(sessionID))
	if err != nil || !ok {
		return false
	}
	dark, err := strconv.ParseBool(blob)
	if err != nil {
		return false
	}
	return dark
}

func historyKey(sessionID string) string {
	return "history:" + sessionID
}

func themeKey(sessionID string) string {
	return "theme:" + sessionID
}

func validateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return errNonFinite
	}
	if lat < -90 || lat > 90 {
		return errLatitudeRange
	}
	if lon < -180 || lon > 180 {
		return errLongitudeRange
	}
	return nil
}

// begin claims a new generation and moves the session into state.
func (sess *session) begin(state State) (uint64, UnitSystem) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.generation++
	sess.state = state
	sess.message = ""
	return sess.generation, sess.units
}

// advance moves the session forward only if gen is still current.
func (sess *session) advance(gen uint64, state State) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if gen == sess.generation {
		sess.state = state
	}
}

// fail records an error outcome for gen. The last successfully fetched
// weather and place stay displayed; only the pending resolution is dropped.
func (sess *session) fail(gen uint64, message string) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if gen != sess.generation {
		return
	}
	sess.state = StateError
	sess.message = message
}

// complete applies a finished fetch if gen is still current. It reports
// whether the result was applied; superseded completions are discarded.
func (sess *session) complete(gen uint64, place *Place, coords Coordinates, bundle *ForecastBundle, hourly []HourlyEntry, daily []DailyEntry) bool {
	current := bundle.Current
	current.Category = CategoryForCode(current.WeatherCode)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if gen != sess.generation {
		return false
	}
	sess.state = StateReady
	sess.message = ""
	sess.place = place
	sess.coords = &coords
	sess.current = &current
	sess.utcOffset = bundle.UTCOffsetSeconds
	sess.hourly = hourly
	sess.daily = daily
	return true
}
