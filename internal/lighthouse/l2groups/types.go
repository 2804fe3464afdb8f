package l2groups

import "github.com/banshee-data/lighthouse.decode/internal/lighthouse/l1pulse"

// MinPulseEvents is the minimum number of distinct events a pulse set
// must carry to be accepted as a real sync pulse rather than noise
// (spec §6).
const MinPulseEvents = 5

// LightGroup is the shared shape for both pulse-groups and
// sweep-groups (spec §3, §9). Rotor is decoded for pulses and
// inherited for sweeps; Skip is always 0 on an emitted group (skip=1
// pulses are never emitted, per spec §4.5 step 7).
type LightGroup struct {
	Channel l1pulse.Channel
	Rotor   l1pulse.Rotor
	Epoch   float64
	Skip    int
	Seq     uint32
	Samples []l1pulse.RawEvent
}

// eventInterval returns the closed timestamp interval [start, end]
// an event occupies.
func eventInterval(e l1pulse.RawEvent) (start, end uint32) {
	return e.Timestamp, e.Timestamp + uint32(e.Length)
}

// intervalsOverlap reports whether [aStart,aEnd] and [bStart,bEnd]
// intersect.
func intervalsOverlap(aStart, aEnd, bStart, bEnd uint32) bool {
	return aStart <= bEnd && bStart <= aEnd
}
