package io

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l1pulse"
)

// wireEvent is the JSON shape a relayed event arrives as over the
// socket: one object per event, mirroring the CSV column order; each
// message carries a JSON array of them.
type wireEvent struct {
	Timestamp uint32 `json:"timestamp"`
	SensorID  uint8  `json:"sensor_id"`
	Length    uint16 `json:"length"`
}

// WSEventSource relays a remote base station's events over a
// WebSocket connection, for decoding a capture that isn't local to
// this machine (e.g. a headset tethered to a different host).
type WSEventSource struct {
	conn        *websocket.Conn
	readTimeout time.Duration
}

// DialWSEventSource connects to a lighthouse relay server at addr
// (e.g. "events.example:8080") and path, and returns a ready
// WSEventSource. readTimeout bounds each individual Load call; zero
// disables the deadline.
func DialWSEventSource(addr, path string, readTimeout time.Duration) (*WSEventSource, error) {
	u := url.URL{Scheme: "ws", Host: addr, Path: path}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("lighthouse io: dialing %s: %w", u.String(), err)
	}
	return &WSEventSource{conn: conn, readTimeout: readTimeout}, nil
}

// Load reads one message and decodes it as a batch of wire events. A
// single message may carry several events batched by the relay.
func (s *WSEventSource) Load() ([]l1pulse.RawEvent, error) {
	if s.readTimeout > 0 {
		if err := s.conn.SetReadDeadline(time.Now().Add(s.readTimeout)); err != nil {
			return nil, fmt.Errorf("lighthouse io: setting read deadline: %w", err)
		}
	}

	_, raw, err := s.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("lighthouse io: reading websocket message: %w", err)
	}

	var wire []wireEvent
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("lighthouse io: decoding websocket payload: %w", err)
	}

	events := make([]l1pulse.RawEvent, len(wire))
	for i, w := range wire {
		events[i] = l1pulse.RawEvent{Timestamp: w.Timestamp, SensorID: w.SensorID, Length: w.Length}
	}
	debugf("[io] websocket source loaded %d events", len(events))
	return events, nil
}

func (s *WSEventSource) Close() error {
	return s.conn.Close()
}
