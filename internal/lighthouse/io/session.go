package io

import (
	"github.com/google/uuid"
)

// DumpSession tags one Loader invocation with a unique run ID, the
// same way an analysis run is tagged before its results are persisted:
// every log line and written artifact for one decode pass can be
// correlated back to the run that produced it.
type DumpSession struct {
	RunID  string
	Loader Loader
}

// NewDumpSession wraps loader with a freshly generated run ID.
func NewDumpSession(loader Loader) *DumpSession {
	return &DumpSession{RunID: uuid.New().String(), Loader: loader}
}
