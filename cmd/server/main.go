package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/poangtavla/internal/app"
	"github.com/shrimpsizemoose/poangtavla/internal/grid"
	"github.com/shrimpsizemoose/poangtavla/internal/handlers"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	var inputPath = flag.String("input", "", "Path to the fact dump (default stdin)")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to init service: %v", err)
	}
	defer service.Close()

	if service.Config.Server.Port == "" {
		logger.Error.Fatalf("Server port is not specified in config, use a value like :9999")
	}

	in := os.Stdin
	if *inputPath != "" {
		in, err = os.Open(*inputPath)
		if err != nil {
			logger.Error.Fatalf("Failed to open input: %v", err)
		}
	}
	if err := service.LoadFacts(in); err != nil {
		logger.Error.Fatalf("Failed to load facts: %v", err)
	}
	in.Close()

	banner, scoreboard, err := service.ComputeReport()
	if err != nil {
		logger.Error.Fatalf("Failed to compute standings: %v", err)
	}

	contest, err := service.Store.Contest()
	if err != nil {
		logger.Error.Fatalf("Failed to read contest: %v", err)
	}

	var report strings.Builder
	if err := grid.WriteReport(&report, banner, scoreboard); err != nil {
		logger.Error.Fatalf("Failed to serialize report: %v", err)
	}

	page := grid.BannerScript(contest) + "\n" + grid.TableHTML(scoreboard, contest.Code)

	if err := service.PublishReport(context.Background(), contest.Code, report.String()); err != nil {
		logger.Error.Printf("Failed to publish report: %v", err)
	}

	reportHandler := handlers.NewReportHandler(report.String(), page)

	http.HandleFunc("GET /scoreboard", reportHandler.HandleReport)
	http.HandleFunc("GET /scoreboard.html", reportHandler.HandleReportHTML)
	http.Handle("/metrics", promhttp.Handler())

	logger.Info.Printf("Serving %s standings for %s on %s", service.Ruleset.Name(), contest.Code, service.Config.Server.Port)
	if err := http.ListenAndServe(service.Config.Server.Port, nil); err != nil {
		logger.Error.Fatalf("Scoreboard server failed: %v", err)
	}
}
