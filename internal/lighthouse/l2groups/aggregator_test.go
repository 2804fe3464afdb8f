package l2groups

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l1pulse"
)

// buildStream concatenates an initial throwaway pulse (to seed
// lastPulseEpoch so later pulses land in a real channel window),
// followed by an H pulse + sweep, then a V pulse + sweep, all one
// period apart — a full scanning cycle, generalizing spec scenario S1.
func buildStream(period uint32) []l1pulse.RawEvent {
	var events []l1pulse.RawEvent
	events = append(events, pulseCluster(0, 8, 3000)...)
	events = append(events, pulseCluster(period, 8, 3000)...)               // H
	events = append(events, sweepCluster(period+20000, 8, 2, 500)...)       // sweep for H
	events = append(events, pulseCluster(2*period, 8, 3500)...)            // V
	events = append(events, sweepCluster(2*period+20000, 8, 2, 500)...)    // sweep for V
	return events
}

func TestAggregator_FullCycle(t *testing.T) {
	period := uint32(testConfig().Period())
	events := buildStream(period)

	agg := NewAggregator(testConfig())
	agg.Process(events)
	agg.Finish()

	// 3 pulse groups emitted: the seed (err, not emitted), H, V = 2 emitted.
	if len(agg.Pulses) != 2 {
		t.Fatalf("expected 2 emitted pulse groups, got %d", len(agg.Pulses))
	}
	// The V pulse flushes the H sweep; the V sweep has no pulse after it,
	// so Finish discards it and only 1 sweep group is emitted.
	if len(agg.Sweeps) != 1 {
		t.Fatalf("expected 1 emitted sweep group, got %d", len(agg.Sweeps))
	}

	if agg.Pulses[0].Rotor != l1pulse.RotorH || agg.Pulses[1].Rotor != l1pulse.RotorV {
		t.Fatalf("expected rotors [H V], got [%v %v]", agg.Pulses[0].Rotor, agg.Pulses[1].Rotor)
	}

	// Sweep inheritance invariant (testable property 4): every emitted
	// sweep-group's (channel, rotor, epoch, seq) matches some emitted
	// pulse-group's.
	for _, s := range agg.Sweeps {
		found := false
		for _, p := range agg.Pulses {
			if p.Channel == s.Channel && p.Rotor == s.Rotor && p.Epoch == s.Epoch && p.Seq == s.Seq {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("sweep %+v has no matching pulse group", s)
		}
	}

	// Sequence monotonicity (testable property 3).
	lastSeq := uint32(0)
	for _, p := range agg.Pulses {
		if p.Seq < lastSeq {
			t.Fatalf("seq decreased: %d after %d", p.Seq, lastSeq)
		}
		lastSeq = p.Seq
	}
}

// TestAggregator_SkipPulseSuppressesSweep covers S2 end-to-end through
// the aggregator: a skip pulse with no established current sweep drops
// the following sweep samples entirely.
func TestAggregator_SkipPulseSuppressesSweep(t *testing.T) {
	var events []l1pulse.RawEvent
	events = append(events, pulseCluster(0, 8, 5000)...) // skip=1, first pulse => channel err anyway
	events = append(events, sweepCluster(20000, 8, 2, 500)...)

	agg := NewAggregator(testConfig())
	agg.Process(events)
	agg.Finish()

	if len(agg.Pulses) != 0 {
		t.Fatalf("expected no pulse groups emitted, got %d", len(agg.Pulses))
	}
	if len(agg.Sweeps) != 0 {
		t.Fatalf("expected sweep samples to be dropped, got %d sweep groups", len(agg.Sweeps))
	}
}

// TestAggregator_SentinelEventNoOp covers S4: interleaving a sentinel
// event anywhere in the stream (after sanitizing) changes nothing.
func TestAggregator_SentinelEventNoOp(t *testing.T) {
	period := uint32(testConfig().Period())
	clean := buildStream(period)

	withSentinel := make([]l1pulse.RawEvent, 0, len(clean)+1)
	withSentinel = append(withSentinel, clean[:3]...)
	withSentinel = append(withSentinel, l1pulse.RawEvent{Timestamp: 0xFFFFFFFF, SensorID: 0xFF, Length: 0xFFFF})
	withSentinel = append(withSentinel, clean[3:]...)

	aggClean := NewAggregator(testConfig())
	aggClean.Process(l1pulse.Sanitize(clean))
	aggClean.Finish()

	aggSentinel := NewAggregator(testConfig())
	aggSentinel.Process(l1pulse.Sanitize(withSentinel))
	aggSentinel.Finish()

	// Compare channel/rotor/seq/epoch across both runs, ignoring the
	// underlying Samples slices: only the decoded shape is compared.
	diffOpts := cmpopts.IgnoreFields(LightGroup{}, "Samples")
	if diff := cmp.Diff(aggClean.Pulses, aggSentinel.Pulses, diffOpts); diff != "" {
		t.Fatalf("pulse groups differ with sentinel interleaved (-clean +sentinel):\n%s", diff)
	}
	if diff := cmp.Diff(aggClean.Sweeps, aggSentinel.Sweeps, diffOpts); diff != "" {
		t.Fatalf("sweep groups differ with sentinel interleaved (-clean +sentinel):\n%s", diff)
	}
}

// TestAggregator_LengthPartition covers testable property 2.
func TestAggregator_LengthPartition(t *testing.T) {
	period := uint32(testConfig().Period())
	agg := NewAggregator(testConfig())
	agg.Process(buildStream(period))
	agg.Finish()

	for _, p := range agg.Pulses {
		for _, e := range p.Samples {
			if e.Length < l1pulse.SweepLengthMax {
				t.Fatalf("pulse-group sample has sweep-class length %d", e.Length)
			}
		}
	}
	for _, s := range agg.Sweeps {
		for _, e := range s.Samples {
			if e.Length >= l1pulse.SweepLengthMax {
				t.Fatalf("sweep-group sample has pulse-class length %d", e.Length)
			}
		}
	}
}

// TestAggregator_TrailingSweepDiscarded covers the end-of-stream rule:
// a sweep with no following pulse is never emitted.
func TestAggregator_TrailingSweepDiscarded(t *testing.T) {
	period := uint32(testConfig().Period())
	var events []l1pulse.RawEvent
	events = append(events, pulseCluster(0, 8, 3000)...)
	events = append(events, pulseCluster(period, 8, 3000)...)
	events = append(events, sweepCluster(period+20000, 8, 2, 500)...)

	agg := NewAggregator(testConfig())
	agg.Process(events)

	if len(agg.Sweeps) != 0 {
		t.Fatalf("expected no sweep flushed before Finish, got %d", len(agg.Sweeps))
	}
	agg.Finish()
	if len(agg.Sweeps) != 0 {
		t.Fatalf("expected trailing sweep to be discarded, got %d sweep groups", len(agg.Sweeps))
	}
}

// TestAggregator_PulseSetCohesion covers testable property 6: a
// non-overlapping pulse sample starts a fresh pulse set rather than
// joining the existing one.
func TestAggregator_PulseSetCohesion(t *testing.T) {
	agg := NewAggregator(testConfig())

	first := pulseCluster(0, 8, 3000) // interval roughly [0,3007]
	farAway := pulseCluster(1_000_000, 8, 3000)

	var events []l1pulse.RawEvent
	events = append(events, first...)
	events = append(events, farAway...)
	agg.Process(events)
	agg.Finish()

	// Both sets individually satisfy MinPulseEvents and should each
	// attempt classification (even if channel ends up err for both,
	// since neither has a realistic predecessor).
	if len(agg.Pulses) > 2 {
		t.Fatalf("expected at most 2 pulse groups from 2 disjoint clusters, got %d", len(agg.Pulses))
	}
}
