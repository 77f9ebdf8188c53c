// Package report serves interactive HTML charts for a fetched session.
//
// The server holds the already-fetched session data and rebuilds the
// chart models on every request; it keeps no other state.
package report

import (
	"fmt"
	"net/http"

	"github.com/apex-data/lap.report/internal/httputil"
	"github.com/apex-data/lap.report/internal/telemetry"
)

// Server renders dashboard pages for one session's data.
type Server struct {
	title   string // e.g. "2024 Imola race"
	series  []telemetry.Series
	labels  []string
	weather []telemetry.WeatherSample
	stints  []telemetry.TyreStint
}

// NewServer creates a dashboard server over fetched session data.
// Label i annotates series i.
func NewServer(title string, series []telemetry.Series, labels []string,
	weather []telemetry.WeatherSample, stints []telemetry.TyreStint) *Server {
	return &Server{
		title:   title,
		series:  series,
		labels:  labels,
		weather: weather,
		stints:  stints,
	}
}

// ServeMux returns the dashboard routes.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/charts/telemetry", s.handleTelemetryChart)
	mux.HandleFunc("/charts/overview", s.handleOverviewChart)
	mux.HandleFunc("/api/turns", s.handleTurns)
	mux.HandleFunc("/", s.handleIndex)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexHTML, s.title)
}

// handleTurns returns per-driver turn markers as JSON.
func (s *Server) handleTurns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	type driverTurns struct {
		Driver string           `json:"driver"`
		Turns  []telemetry.Turn `json:"turns"`
	}
	out := make([]driverTurns, 0, len(s.series))
	for i, series := range s.series {
		turns, err := telemetry.DetectTurnsDefault(series)
		if err != nil {
			httputil.WriteJSONError(w, http.StatusInternalServerError,
				fmt.Sprintf("turn detection failed: %v", err))
			return
		}
		label := series.Driver
		if i < len(s.labels) {
			label = s.labels[i]
		}
		out = append(out, driverTurns{Driver: label, Turns: turns})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>%[1]s</title></head>
<body>
<h1>%[1]s</h1>
<ul>
<li><a href="/charts/telemetry">Telemetry panels</a> (add ?units=mph or ?units=mps to convert speed)</li>
<li><a href="/charts/overview">Weather and tyre degradation</a> (add ?drivers=VER,LEC to filter)</li>
<li><a href="/api/turns">Detected turns (JSON)</a></li>
</ul>
</body>
</html>
`
