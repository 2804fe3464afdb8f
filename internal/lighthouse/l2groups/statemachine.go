package l2groups

import (
	"sort"

	"github.com/banshee-data/lighthouse.decode/internal/config"
	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l1pulse"
)

// negativeInfinityEpoch is the large-negative sentinel last-pulse
// epoch used before any pulse has been seen, so the first emitted
// pulse is always treated as the start of a new sequence (spec §4.4).
const negativeInfinityEpoch = -1e6

// medianTimestamp returns the median of the samples' timestamps, using
// floating point arithmetic; on an even count it's the mean of the two
// central elements (spec §4.5 step 1).
func medianTimestamp(samples []l1pulse.RawEvent) float64 {
	ts := make([]float64, len(samples))
	for i, s := range samples {
		ts[i] = float64(s.Timestamp)
	}
	sort.Float64s(ts)
	n := len(ts)
	if n == 0 {
		return 0
	}
	if n%2 == 0 {
		return (ts[n/2-1] + ts[n/2]) / 2
	}
	return ts[n/2]
}

// medianLength returns the median of the samples' lengths, using
// integer arithmetic (spec §4.5 step 1).
func medianLength(samples []l1pulse.RawEvent) uint16 {
	ls := make([]int, len(samples))
	for i, s := range samples {
		ls[i] = int(s.Length)
	}
	sort.Ints(ls)
	n := len(ls)
	if n == 0 {
		return 0
	}
	if n%2 == 0 {
		return uint16((ls[n/2-1] + ls[n/2]) / 2)
	}
	return uint16(ls[n/2])
}

// distinctSensorCount returns the number of distinct SensorIDs present
// in samples.
func distinctSensorCount(samples []l1pulse.RawEvent) int {
	seen := make(map[uint8]struct{}, len(samples))
	for _, s := range samples {
		seen[s.SensorID] = struct{}{}
	}
	return len(seen)
}

// StateMachine tracks the sweep-cycle context (spec §4.5): the
// last-seen pulse epoch, the in-progress current sweep, and the
// running cycle sequence number. It is single-threaded and owns
// exactly one invocation's worth of state (spec §5).
type StateMachine struct {
	cfg              config.Config
	lastPulseEpoch   float64
	currentSweep     *LightGroup
	seq              uint32
}

// NewStateMachine builds a StateMachine configured with the protocol
// constants in cfg. cfg is injected, never read from a package global
// (spec §9).
func NewStateMachine(cfg config.Config) *StateMachine {
	return &StateMachine{
		cfg:            cfg,
		lastPulseEpoch: negativeInfinityEpoch,
	}
}

// CurrentSweep returns the sweep context samples should be attributed
// to, or nil if none is active.
func (sm *StateMachine) CurrentSweep() *LightGroup {
	return sm.currentSweep
}

// Seq returns the running cycle sequence counter.
func (sm *StateMachine) Seq() uint32 {
	return sm.seq
}

// Step runs the per-pulse-set algorithm of spec §4.5 over one
// accumulated pulse set, updating lastPulseEpoch, currentSweep and seq
// as a side effect. It returns the completed pulse-group and true if
// one was emitted.
func (sm *StateMachine) Step(pulseSamples []l1pulse.RawEvent) (LightGroup, bool) {
	if distinctSensorCount(pulseSamples) < len(pulseSamples) {
		debugf("[l2groups] advisory: duplicate sensor in pulse set of %d samples", len(pulseSamples))
	}

	t := medianTimestamp(pulseSamples)
	length := medianLength(pulseSamples)

	class := l1pulse.ClassifyPulse(length)
	rotor := l1pulse.RotorOf(class.Rotor)

	channel := l1pulse.DetectChannel(sm.lastPulseEpoch, t, sm.cfg.Period())

	// Unconditional: the median time of this pulse set becomes the
	// epoch for the next channel-detect call, even on failure.
	sm.lastPulseEpoch = t

	if channel == l1pulse.ChannelErr || len(pulseSamples) < MinPulseEvents {
		debugf("[l2groups] recoverable: dropping pulse set (channel=%v samples=%d, min=%d)", channel, len(pulseSamples), MinPulseEvents)
		sm.currentSweep = nil
		return LightGroup{}, false
	}

	if class.Skip != l1pulse.BitZero {
		// Skip pulse (or an undecodable width paired with an
		// otherwise-valid channel gap): a timing marker only, current
		// sweep context is left untouched, nothing follows from this
		// station in this slot.
		return LightGroup{}, false
	}

	if (channel == l1pulse.ChannelA || channel == l1pulse.ChannelB) && rotor == l1pulse.RotorH {
		sm.seq++
	}

	group := LightGroup{
		Channel: channel,
		Rotor:   rotor,
		Epoch:   t,
		Skip:    0,
		Seq:     sm.seq,
		Samples: pulseSamples,
	}
	sm.currentSweep = &group
	return group, true
}
