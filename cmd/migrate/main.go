package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/config"
	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/pipeline"
	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/store"

	"github.com/google/uuid"
)

func main() {
	configPath := flag.String("config", "pipeline_config.json", "Path to the pipeline configuration file")
	startFrom := flag.Int("start-from", 0, "Canonical stage index to resume from (0 = full run)")
	dbPath := flag.String("db", "migrate.db", "Path to the run tracking database")
	flag.Parse()

	// Init DB
	if err := store.InitDB(*dbPath); err != nil {
		fmt.Printf("❌ Failed to open run database: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Printf("❌ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	runID := uuid.New().String()
	if err := store.SaveRun(runID, cfg); err != nil {
		fmt.Printf("⚠️ Failed to record run: %v\n", err)
	}

	orch := pipeline.New(runID, cfg)
	result, err := orch.Run(context.Background(), *startFrom)
	if err != nil {
		os.Exit(1)
	}
	if result.Report != nil {
		if _, errors := result.Report.Counts(); errors > 0 {
			os.Exit(2)
		}
	}
}
