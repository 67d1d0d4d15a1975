// Command trackreport analyzes the synthetic race-track curve and reports
// geometric and physics-based safety metrics: track length, curvature,
// danger zones, maximum safe cornering speeds and crash likelihood for a set
// of candidate speeds.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/banshee-data/curvature.report/internal/analysis"
	"github.com/banshee-data/curvature.report/internal/api"
	"github.com/banshee-data/curvature.report/internal/config"
	"github.com/banshee-data/curvature.report/internal/db"
	"github.com/banshee-data/curvature.report/internal/monitor"
	"github.com/banshee-data/curvature.report/internal/report"
	"github.com/banshee-data/curvature.report/internal/units"
)

var (
	configPath   = flag.String("config", "", "Path to analysis config JSON (defaults to the survey track)")
	dbFile       = flag.String("db", "", "Record the run in this SQLite database")
	plotDir      = flag.String("plots", "", "Write PNG plots into this directory")
	pageFile     = flag.String("page", "", "Write the interactive HTML page to this file")
	animate      = flag.Bool("animate", false, "Include the marker-replay series in the HTML page")
	displayUnits = flag.String("units", units.KMPH, "Display units for speeds")
	serve        = flag.Bool("serve", false, "Serve the run over HTTP after printing the report")
	listen       = flag.String("listen", ":8080", "Listen address")
)

func main() {
	flag.Parse()

	if !units.IsValid(*displayUnits) {
		log.Fatalf("invalid units %q, valid units are: %s", *displayUnits, units.GetValidUnitsString())
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	result, err := analysis.Run(cfg)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	fmt.Print(report.Render(result, *displayUnits))

	if *plotDir != "" {
		written, err := monitor.GeneratePlots(result, *plotDir)
		if err != nil {
			log.Fatalf("failed to generate plots: %v", err)
		}
		log.Printf("wrote %d plots to %s", written, *plotDir)
	}

	if *pageFile != "" {
		f, err := os.Create(*pageFile)
		if err != nil {
			log.Fatalf("failed to create page file: %v", err)
		}
		if err := monitor.WritePage(result, cfg.GetAnimate() || *animate, f); err != nil {
			log.Fatalf("failed to render page: %v", err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("failed to close page file: %v", err)
		}
		log.Printf("wrote page to %s", *pageFile)
	}

	var database *db.DB
	if *dbFile != "" {
		database, err = db.NewDB(*dbFile)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer database.Close()

		if err := database.RecordRun(result); err != nil {
			log.Fatalf("failed to record run: %v", err)
		}
		log.Printf("recorded run %s in %s", result.RunID, *dbFile)
	}

	if !*serve {
		return
	}
	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	server := api.NewServer(result, database, *displayUnits)
	httpServer := &http.Server{
		Addr:    *listen,
		Handler: api.LoggingMiddleware(server.ServeMux()),
	}

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("serving run %s on %s", result.RunID, *listen)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("failed to shut down HTTP server: %v", err)
	}
	wg.Wait()
}
