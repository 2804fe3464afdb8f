package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l1pulse"
)

// CSVDumpLoader reads a recorded capture from a CSV source: one row
// per event, columns "timestamp,sensor_id,length". It loads the
// entire file in one Load call; the second call returns io.EOF.
type CSVDumpLoader struct {
	r      *csv.Reader
	closer io.Closer
	done   bool
}

// NewCSVDumpLoader wraps src, closing it (if it implements io.Closer)
// on Close. The reader tolerates a variable field count per record
// only insofar as the first three columns are timestamp/sensor_id/length;
// extra trailing columns are ignored.
func NewCSVDumpLoader(src io.Reader) *CSVDumpLoader {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	closer, _ := src.(io.Closer)
	return &CSVDumpLoader{r: r, closer: closer}
}

func (l *CSVDumpLoader) Load() ([]l1pulse.RawEvent, error) {
	if l.done {
		return nil, io.EOF
	}
	l.done = true

	var events []l1pulse.RawEvent
	for {
		record, err := l.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("lighthouse io: reading csv dump: %w", err)
		}
		if len(record) < 3 {
			return nil, fmt.Errorf("lighthouse io: csv dump row has %d fields, want at least 3", len(record))
		}
		ts, err := strconv.ParseUint(record[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("lighthouse io: parsing timestamp %q: %w", record[0], err)
		}
		sensor, err := strconv.ParseUint(record[1], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("lighthouse io: parsing sensor_id %q: %w", record[1], err)
		}
		length, err := strconv.ParseUint(record[2], 10, 16)
		if err != nil {
			return nil, fmt.Errorf("lighthouse io: parsing length %q: %w", record[2], err)
		}
		events = append(events, l1pulse.RawEvent{
			Timestamp: uint32(ts),
			SensorID:  uint8(sensor),
			Length:    uint16(length),
		})
	}
	debugf("[io] csv dump loaded %d events", len(events))
	return events, nil
}

func (l *CSVDumpLoader) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
