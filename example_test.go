package kmlnorm_test

import (
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/kmlnorm"
	"github.com/tsawler/kmlnorm/config"
)

// These examples document the public API. They have no Output sections
// since they need input files.

func Example_process() {
	h := kmlnorm.Load("track.kmz")
	if err := h.Process("normalized.kmz"); err != nil {
		log.Fatal(err)
	}
}

func Example_offset() {
	// TIMESTAMP entries were recorded in US Central daylight time
	h := kmlnorm.Load("track.kml")
	if !h.IsValid() {
		log.Fatalf("load failed (%v): %v", h.ErrorState(), h.Err())
	}
	if err := h.ProcessWithOffset("normalized.kml", -5*time.Hour); err != nil {
		log.Fatal(err)
	}
}

func Example_options() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cfg := config.Default()
	cfg.DefaultLineColor = "ff00ffff"
	cfg.DefaultLineWidth = 3

	h := kmlnorm.Load("track.kml",
		kmlnorm.WithConfig(cfg),
		kmlnorm.WithLogger(logger.Sugar()),
	)
	if err := h.Process("normalized.kml"); err != nil {
		log.Fatal(err)
	}
}

func Example_directoryMarker() {
	dir := kmlnorm.ReadDirectoryMarker("job.properties.xml")
	if dir == "" {
		fmt.Println("no job directory recorded")
		return
	}
	fmt.Println("job directory:", dir)
}
