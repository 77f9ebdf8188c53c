// Command lapreport fetches F1 session telemetry for a set of drivers,
// detects braking-zone turns on each fastest lap, and renders the
// comparison charts either as PNG files or as a live HTML dashboard.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/apex-data/lap.report/internal/chart"
	"github.com/apex-data/lap.report/internal/f1"
	"github.com/apex-data/lap.report/internal/report"
	"github.com/apex-data/lap.report/internal/telemetry"
)

var (
	season    = flag.Int("season", 2024, "Championship season")
	event     = flag.String("event", "Imola", "Event name")
	session   = flag.String("session", "race", "Session kind: practice, qualifying or race")
	drivers   = flag.String("drivers", "VER,NOR,LEC,HAM", "Comma-separated driver codes")
	outDir    = flag.String("out", "charts", "Output directory for PNG charts")
	cachePath = flag.String("cache", "lapdata.db", "Response cache database (empty disables caching)")
	apiBase   = flag.String("api", f1.DefaultBaseURL, "Telemetry API base URL")
	listen    = flag.String("listen", "", "Serve the HTML dashboard on this address instead of writing PNGs")
)

// parseDrivers splits a comma-separated driver list, trimming blanks.
func parseDrivers(s string) []string {
	var codes []string
	for _, code := range strings.Split(s, ",") {
		code = strings.TrimSpace(code)
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

func main() {
	flag.Parse()

	codes := parseDrivers(*drivers)
	if len(codes) == 0 {
		log.Fatal("at least one driver code is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []f1.Option{f1.WithBaseURL(*apiBase)}
	if *cachePath != "" {
		cache, err := f1.OpenCache(*cachePath)
		if err != nil {
			log.Fatalf("failed to open cache: %v", err)
		}
		defer cache.Close()
		opts = append(opts, f1.WithCache(cache))
	}
	client := f1.NewClient(opts...)

	ref := f1.SessionRef{Season: *season, Event: *event, Session: *session}

	seriesList := make([]telemetry.Series, 0, len(codes))
	for _, code := range codes {
		s, err := client.FastestLapTelemetry(ctx, ref, code)
		if err != nil {
			log.Fatalf("failed to fetch telemetry for %s: %v", code, err)
		}
		log.Printf("fetched %d samples for %s", s.Len(), code)
		seriesList = append(seriesList, s)
	}

	weather, err := client.Weather(ctx, ref)
	if err != nil {
		log.Fatalf("failed to fetch weather: %v", err)
	}
	stints, err := client.TyreStints(ctx, ref)
	if err != nil {
		log.Fatalf("failed to fetch tyre stints: %v", err)
	}

	if *listen != "" {
		serveDashboard(ctx, ref.String(), seriesList, codes, weather, stints)
		return
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("failed to create output dir: %v", err)
	}

	fig, err := chart.Compose(seriesList, codes)
	if err != nil {
		log.Fatalf("failed to compose telemetry figure: %v", err)
	}
	telemetryPath := filepath.Join(*outDir, "telemetry.png")
	if err := fig.SavePNG(telemetryPath); err != nil {
		log.Fatalf("failed to render %s: %v", telemetryPath, err)
	}

	overview, err := chart.ComposeOverview(weather, stints, nil)
	if err != nil {
		log.Fatalf("failed to compose session overview: %v", err)
	}
	overviewPath := filepath.Join(*outDir, "overview.png")
	if err := overview.SavePNG(overviewPath); err != nil {
		log.Fatalf("failed to render %s: %v", overviewPath, err)
	}

	log.Printf("wrote %s and %s", telemetryPath, overviewPath)
}

// serveDashboard runs the HTML dashboard until the context is cancelled.
func serveDashboard(ctx context.Context, title string, seriesList []telemetry.Series,
	labels []string, weather []telemetry.WeatherSample, stints []telemetry.TyreStint) {

	mux := report.NewServer(title, seriesList, labels, weather, stints).ServeMux()
	server := &http.Server{
		Addr:    *listen,
		Handler: mux,
	}

	go func() {
		log.Printf("dashboard listening on %s", *listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Printf("graceful shutdown complete")
}
