// Package kmlnorm normalizes KML and KMZ files for time-based playback.
//
// Every placemark in the output gets a TimeSpan derived from its own
// timestamp and the timestamp of the next placemark that is later, a
// complete Style, and ExtendedData with the control keys (WIDTH, COLOR,
// TIMESTAMP) consumed.
//
// Basic usage:
//
//	h := kmlnorm.Load("track.kmz")
//	if err := h.Process("normalized.kmz"); err != nil {
//	    // handle error
//	}
//
// With options:
//
//	h := kmlnorm.Load("track.kml",
//	    kmlnorm.WithConfigFile("kmlnorm.yaml"),
//	    kmlnorm.WithLogger(logger.Sugar()),
//	)
//	if !h.IsValid() {
//	    log.Fatal(h.Err())
//	}
//	err := h.ProcessWithOffset("out.kml", -6*time.Hour)
//
// For lower-level control the source, resolver and target packages can be
// used directly.
package kmlnorm

import (
	"github.com/tsawler/kmlnorm/source"
)

// Load reads the KML or KMZ file at path. It never returns nil: a failed
// load yields a Handle whose Err and ErrorState describe the failure.
//
// Example:
//
//	h := kmlnorm.Load("track.kmz")
//	if err := h.Err(); err != nil {
//	    // handle error
//	}
func Load(path string, opts ...Option) *Handle {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	h := &Handle{
		path:     path,
		settings: s,
	}
	if s.err != nil {
		h.err = s.err
		return h
	}

	file, err := source.NewLoader(s.cfg, s.logger).Open(path)
	if err != nil {
		s.logger.Debugw("load failed", "path", path, "error", err)
		h.err = err
		return h
	}

	placemarks := 0
	if file.Document.Folder != nil {
		placemarks = len(file.Document.Folder.Placemarks)
	}
	s.logger.Debugw("loaded document", "path", path, "placemarks", placemarks)

	h.file = file
	return h
}

// Must returns h, panicking if it failed to load. It is intended for use in
// scripts or tests where error handling would be cumbersome.
//
// Example:
//
//	kmlnorm.Must(kmlnorm.Load("track.kml")).Process("out.kml")
func Must(h *Handle) *Handle {
	if err := h.Err(); err != nil {
		panic(err)
	}
	return h
}
