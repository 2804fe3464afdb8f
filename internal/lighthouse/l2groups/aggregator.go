package l2groups

import (
	"github.com/banshee-data/lighthouse.decode/internal/config"
	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l1pulse"
)

// Aggregator is the streaming Pulse-Set Aggregator (spec §4.4): it
// consumes a sanitized event stream and partitions it into alternating
// pulse-groups and sweep-groups, driving a StateMachine to classify
// each completed pulse set.
type Aggregator struct {
	sm *StateMachine

	pulseBuf []l1pulse.RawEvent
	sweepBuf []l1pulse.RawEvent

	pulseRangeSet bool
	rangeStart    uint32
	rangeEnd      uint32

	Pulses []LightGroup
	Sweeps []LightGroup
}

// NewAggregator builds an Aggregator over a fresh StateMachine
// configured with cfg.
func NewAggregator(cfg config.Config) *Aggregator {
	return &Aggregator{sm: NewStateMachine(cfg)}
}

// Process feeds sanitized events through the aggregator in order,
// appending any completed groups to Pulses/Sweeps as they're emitted.
// Call Finish afterward to flush a trailing pulse set.
func (a *Aggregator) Process(events []l1pulse.RawEvent) {
	for _, e := range events {
		if e.IsSweepSample() {
			a.onSweepEvent(e)
		} else {
			a.onPulseEvent(e)
		}
	}
}

// onSweepEvent implements spec §4.4 transition 1.
func (a *Aggregator) onSweepEvent(e l1pulse.RawEvent) {
	if len(a.pulseBuf) > 0 {
		a.flushPulseBuf()
	}

	if a.sm.CurrentSweep() == nil {
		// Sweep with no identified station; its epoch/channel/rotor
		// can't be attributed, so it's dropped.
		return
	}

	a.sweepBuf = append(a.sweepBuf, e)
}

// onPulseEvent implements spec §4.4 transition 2.
func (a *Aggregator) onPulseEvent(e l1pulse.RawEvent) {
	if len(a.sweepBuf) > 0 {
		a.flushSweepBuf()
	}

	start, end := eventInterval(e)

	belongs := len(a.pulseBuf) == 0 || intervalsOverlap(start, end, a.rangeStart, a.rangeEnd)
	if belongs {
		a.pulseBuf = append(a.pulseBuf, e)
		a.extendPulseRange(start, end)
		return
	}

	if end < a.rangeStart {
		debugf("[l2groups] advisory: out-of-order pulse at ts=%d (current pulse-set range [%d,%d])", e.Timestamp, a.rangeStart, a.rangeEnd)
	}

	a.flushPulseBuf()
	a.pulseBuf = append(a.pulseBuf, e)
	a.extendPulseRange(start, end)
}

func (a *Aggregator) extendPulseRange(start, end uint32) {
	if !a.pulseRangeSet {
		a.rangeStart, a.rangeEnd = start, end
		a.pulseRangeSet = true
		return
	}
	if start < a.rangeStart {
		a.rangeStart = start
	}
	if end > a.rangeEnd {
		a.rangeEnd = end
	}
}

// flushSweepBuf materializes the buffered sweep samples into a
// sweep-group that inherits channel/rotor/epoch/seq from the current
// sweep context (spec §4.4 transition 2).
func (a *Aggregator) flushSweepBuf() {
	current := a.sm.CurrentSweep()
	if current == nil {
		// Should not happen: onSweepEvent refuses to buffer without a
		// current sweep. Guard defensively and drop silently.
		a.sweepBuf = nil
		return
	}

	sweep := LightGroup{
		Channel: current.Channel,
		Rotor:   current.Rotor,
		Epoch:   current.Epoch,
		Skip:    0,
		Seq:     current.Seq,
		Samples: a.sweepBuf,
	}
	a.Sweeps = append(a.Sweeps, sweep)
	a.sweepBuf = nil
}

// flushPulseBuf runs the buffered pulse set through the state machine
// and, if it produced a group, appends it to Pulses.
func (a *Aggregator) flushPulseBuf() {
	if group, ok := a.sm.Step(a.pulseBuf); ok {
		a.Pulses = append(a.Pulses, group)
	}
	a.pulseBuf = nil
	a.pulseRangeSet = false
	a.rangeStart, a.rangeEnd = 0, 0
}

// Finish flushes any remaining buffered pulse set. Per spec §4.4, a
// trailing buffered sweep has no following pulse to stamp it with a
// seq/channel, so it is discarded rather than emitted.
func (a *Aggregator) Finish() {
	if len(a.pulseBuf) > 0 {
		a.flushPulseBuf()
	}
	if len(a.sweepBuf) > 0 {
		debugf("[l2groups] advisory: discarding %d trailing sweep samples at end of stream", len(a.sweepBuf))
		a.sweepBuf = nil
	}
}
