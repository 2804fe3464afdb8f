package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.bug.st/serial"

	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l1pulse"
)

// SerialDumpLoader reads events streamed live off a base-station's
// serial port, one "timestamp,sensor_id,length" line per event, in the
// same wire shape a CSV dump uses.
type SerialDumpLoader struct {
	port serial.Port
	scan *bufio.Scanner
}

// OpenSerialDumpLoader opens portName at baud and returns a loader
// reading lines from it. baud is typically the base station's fixed
// UART rate; the caller is responsible for knowing it.
func OpenSerialDumpLoader(portName string, baud int) (*SerialDumpLoader, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("lighthouse io: opening serial port %s: %w", portName, err)
	}
	return newSerialDumpLoader(port), nil
}

// newSerialDumpLoader wraps an already-open port. Split out of
// OpenSerialDumpLoader so tests can inject a fake serial.Port.
func newSerialDumpLoader(port serial.Port) *SerialDumpLoader {
	return &SerialDumpLoader{port: port, scan: bufio.NewScanner(port)}
}

// Load blocks until one line arrives off the port and returns the
// single event it parses to. It returns a nil, nil result (never
// io.EOF) on a malformed line, since a live serial link has no
// natural end and the caller is expected to call Load again.
func (l *SerialDumpLoader) Load() ([]l1pulse.RawEvent, error) {
	if !l.scan.Scan() {
		if err := l.scan.Err(); err != nil {
			return nil, fmt.Errorf("lighthouse io: reading serial port: %w", err)
		}
		return nil, io.EOF
	}
	line := strings.TrimSpace(l.scan.Text())
	if line == "" {
		return nil, nil
	}
	event, err := parseEventLine(line)
	if err != nil {
		debugf("[io] serial loader: skipping malformed line %q: %v", line, err)
		return nil, nil
	}
	return []l1pulse.RawEvent{event}, nil
}

func (l *SerialDumpLoader) Close() error {
	return l.port.Close()
}

func parseEventLine(line string) (l1pulse.RawEvent, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 3 {
		return l1pulse.RawEvent{}, fmt.Errorf("expected 3 comma-separated fields, got %d", len(fields))
	}
	ts, err := strconv.ParseUint(strings.TrimSpace(fields[0]), 10, 32)
	if err != nil {
		return l1pulse.RawEvent{}, fmt.Errorf("timestamp: %w", err)
	}
	sensor, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 8)
	if err != nil {
		return l1pulse.RawEvent{}, fmt.Errorf("sensor_id: %w", err)
	}
	length, err := strconv.ParseUint(strings.TrimSpace(fields[2]), 10, 16)
	if err != nil {
		return l1pulse.RawEvent{}, fmt.Errorf("length: %w", err)
	}
	return l1pulse.RawEvent{Timestamp: uint32(ts), SensorID: uint8(sensor), Length: uint16(length)}, nil
}
