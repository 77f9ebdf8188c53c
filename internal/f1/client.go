// Package f1 fetches session telemetry, weather and tyre data from an
// OpenF1-compatible HTTP API.
//
// The client is a thin mapping layer: it resolves a (season, event,
// session) tuple to a session key, pulls the driver's fastest-lap
// samples, and returns them as telemetry.Series. Caching is opt-in and
// explicit (see Cache); nothing is enabled at package load time.
package f1

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/apex-data/lap.report/internal/httputil"
	"github.com/apex-data/lap.report/internal/telemetry"
)

// DefaultBaseURL is the public API endpoint.
const DefaultBaseURL = "https://api.openlaps.io/v1"

// SessionRef identifies one session of one event.
type SessionRef struct {
	Season  int    // e.g. 2024
	Event   string // event name, e.g. "Imola"
	Session string // "practice", "qualifying" or "race"
}

func (r SessionRef) String() string {
	return fmt.Sprintf("%d %s %s", r.Season, r.Event, r.Session)
}

// Client talks to the telemetry API.
type Client struct {
	baseURL string
	http    httputil.HTTPClient
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the HTTP transport.
func WithHTTPClient(h httputil.HTTPClient) Option {
	return func(c *Client) { c.http = h }
}

// WithCache routes GET requests through an on-disk response cache.
// Apply after WithHTTPClient so the cache wraps the right transport.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.http = cache.Wrap(c.http) }
}

// NewClient creates a Client against DefaultBaseURL with the default
// HTTP transport unless overridden by options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    httputil.NewStandardClient(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) endpoint(path string, query url.Values) string {
	return c.baseURL + path + "?" + query.Encode()
}

type sessionResponse struct {
	SessionKey string `json:"session_key"`
}

// sessionKey resolves a SessionRef to the API's opaque session key.
func (c *Client) sessionKey(ctx context.Context, ref SessionRef) (string, error) {
	q := url.Values{}
	q.Set("season", strconv.Itoa(ref.Season))
	q.Set("event", ref.Event)
	q.Set("session", ref.Session)

	var resp sessionResponse
	if err := httputil.GetJSON(ctx, c.http, c.endpoint("/sessions", q), &resp); err != nil {
		return "", fmt.Errorf("resolve session %s: %w", ref, err)
	}
	if resp.SessionKey == "" {
		return "", fmt.Errorf("resolve session %s: empty session key", ref)
	}
	return resp.SessionKey, nil
}

type telemetryResponse struct {
	Driver  string `json:"driver"`
	Samples []struct {
		Distance float64 `json:"distance"`
		Speed    float64 `json:"speed"`
		Throttle float64 `json:"throttle"`
		Brake    float64 `json:"brake"`
		RPM      float64 `json:"rpm"`
		Gear     float64 `json:"gear"`
		DRS      float64 `json:"drs"`
	} `json:"samples"`
}

// FastestLapTelemetry returns one driver's fastest-lap telemetry for the
// session, already distance-sorted by the API.
func (c *Client) FastestLapTelemetry(ctx context.Context, ref SessionRef, driverCode string) (telemetry.Series, error) {
	key, err := c.sessionKey(ctx, ref)
	if err != nil {
		return telemetry.Series{}, err
	}

	q := url.Values{}
	q.Set("session_key", key)
	q.Set("driver", driverCode)
	q.Set("lap", "fastest")

	var resp telemetryResponse
	if err := httputil.GetJSON(ctx, c.http, c.endpoint("/telemetry", q), &resp); err != nil {
		return telemetry.Series{}, fmt.Errorf("telemetry for %s in %s: %w", driverCode, ref, err)
	}

	n := len(resp.Samples)
	s := telemetry.Series{
		Driver:   driverCode,
		Distance: make([]float64, n),
		Speed:    make([]float64, n),
		Throttle: make([]float64, n),
		Brake:    make([]float64, n),
		RPM:      make([]float64, n),
		Gear:     make([]float64, n),
		DRS:      make([]float64, n),
	}
	for i, sample := range resp.Samples {
		s.Distance[i] = sample.Distance
		s.Speed[i] = sample.Speed
		s.Throttle[i] = sample.Throttle
		s.Brake[i] = sample.Brake
		s.RPM[i] = sample.RPM
		s.Gear[i] = sample.Gear
		s.DRS[i] = sample.DRS
	}
	if err := s.Validate(); err != nil {
		return telemetry.Series{}, err
	}
	return s, nil
}

type weatherRecord struct {
	Time      time.Time `json:"time"`
	AirTemp   float64   `json:"air_temp"`
	TrackTemp float64   `json:"track_temp"`
	Humidity  float64   `json:"humidity"`
}

// Weather returns the session's time-indexed weather observations.
func (c *Client) Weather(ctx context.Context, ref SessionRef) ([]telemetry.WeatherSample, error) {
	key, err := c.sessionKey(ctx, ref)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("session_key", key)

	var records []weatherRecord
	if err := httputil.GetJSON(ctx, c.http, c.endpoint("/weather", q), &records); err != nil {
		return nil, fmt.Errorf("weather for %s: %w", ref, err)
	}

	samples := make([]telemetry.WeatherSample, len(records))
	for i, r := range records {
		samples[i] = telemetry.WeatherSample{
			Time:      r.Time,
			AirTemp:   r.AirTemp,
			TrackTemp: r.TrackTemp,
			Humidity:  r.Humidity,
		}
	}
	return samples, nil
}

type stintRecord struct {
	Driver   string  `json:"driver"`
	Lap      int     `json:"lap"`
	Compound string  `json:"compound"`
	TyreLife float64 `json:"tyre_life"`
}

// TyreStints returns per-lap tyre records for all drivers in the session.
func (c *Client) TyreStints(ctx context.Context, ref SessionRef) ([]telemetry.TyreStint, error) {
	key, err := c.sessionKey(ctx, ref)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("session_key", key)

	var records []stintRecord
	if err := httputil.GetJSON(ctx, c.http, c.endpoint("/laps", q), &records); err != nil {
		return nil, fmt.Errorf("tyre stints for %s: %w", ref, err)
	}

	stints := make([]telemetry.TyreStint, len(records))
	for i, r := range records {
		stints[i] = telemetry.TyreStint{
			Driver:   r.Driver,
			Lap:      r.Lap,
			Compound: r.Compound,
			TyreLife: r.TyreLife,
		}
	}
	return stints, nil
}
