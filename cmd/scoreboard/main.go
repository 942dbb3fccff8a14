package main

import (
	"flag"
	"os"
	"strings"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/poangtavla/internal/app"
	"github.com/shrimpsizemoose/poangtavla/internal/grid"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to init service: %v", err)
	}
	defer service.Close()

	// Process contract of the old judge: with no argument the dump arrives
	// on fd 0 and the report leaves on fd 6; with a path argument the dump
	// is that file and the report goes to stdout.
	in := os.Stdin
	out := os.NewFile(6, "report")
	if args := flag.Args(); len(args) > 0 {
		in, err = os.Open(args[0])
		if err != nil {
			logger.Error.Fatalf("Failed to open input: %v", err)
		}
		out = os.Stdout
	}

	if err := service.LoadFacts(in); err != nil {
		logger.Error.Fatalf("Failed to load facts: %v", err)
	}
	in.Close()

	banner, scoreboard, err := service.ComputeReport()
	if err != nil {
		logger.Error.Fatalf("Failed to compute standings: %v", err)
	}

	var report strings.Builder
	if err := grid.WriteReport(&report, banner, scoreboard); err != nil {
		logger.Error.Fatalf("Failed to serialize report: %v", err)
	}

	if _, err := out.WriteString(report.String()); err != nil {
		logger.Error.Fatalf("Failed to write report: %v", err)
	}
	out.Close()
}
