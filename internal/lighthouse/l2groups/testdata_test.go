package l2groups

import "github.com/banshee-data/lighthouse.decode/internal/lighthouse/l1pulse"

// pulseCluster builds n pulse events of the given nominal length,
// closely spaced around baseTS so they overlap and classify as one
// pulse set, one per sensor id starting at 0.
func pulseCluster(baseTS uint32, n int, length uint16) []l1pulse.RawEvent {
	events := make([]l1pulse.RawEvent, n)
	for i := 0; i < n; i++ {
		events[i] = l1pulse.RawEvent{
			Timestamp: baseTS + uint32(i),
			SensorID:  uint8(i),
			Length:    length,
		}
	}
	return events
}

// sweepCluster builds n sweep events (length < 2000) starting at ts,
// one per sensor id starting at 0, each SEP ticks apart.
func sweepCluster(ts uint32, n int, sep uint32, length uint16) []l1pulse.RawEvent {
	events := make([]l1pulse.RawEvent, n)
	for i := 0; i < n; i++ {
		events[i] = l1pulse.RawEvent{
			Timestamp: ts + uint32(i)*sep,
			SensorID:  uint8(i),
			Length:    length,
		}
	}
	return events
}
