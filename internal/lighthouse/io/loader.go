package io

import (
	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l1pulse"
)

// Loader produces a bounded batch of raw events from some source: a
// file already on disk, a serial port streaming live, or a network
// socket relaying a remote capture. Load returns as many events as
// are currently available; callers drive repeated calls themselves
// for live sources.
type Loader interface {
	// Load returns the next batch of events, or io.EOF (the stdlib
	// sentinel, via errors.Is) once the source is exhausted.
	Load() ([]l1pulse.RawEvent, error)

	// Close releases any resources the loader holds open.
	Close() error
}
