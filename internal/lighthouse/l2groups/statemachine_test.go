package l2groups

import (
	"testing"

	"github.com/banshee-data/lighthouse.decode/internal/config"
	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l1pulse"
)

func testConfig() config.Config {
	return config.Default() // TickRate=48_000_000, RotorRPS=60 => period=400_000
}

// TestStateMachine_FirstPulseChannelErr covers the case where the very
// first pulse set is classified against the large-negative sentinel
// epoch: the resulting dt is far from every channel window, so the
// channel is err and nothing is emitted (spec §4.4 state init).
func TestStateMachine_FirstPulseChannelErr(t *testing.T) {
	sm := NewStateMachine(testConfig())
	samples := pulseCluster(100, 8, 3000)

	group, ok := sm.Step(samples)
	if ok {
		t.Fatalf("expected no group emitted for first pulse, got %+v", group)
	}
	if sm.CurrentSweep() != nil {
		t.Fatalf("expected current sweep to stay nil")
	}
}

// TestStateMachine_ChannelASequence exercises two sequential H/V
// pulses one period apart, which should classify as channel A once a
// plausible lastPulseEpoch has been seeded, and increments seq on the
// H pulse.
func TestStateMachine_ChannelASequence(t *testing.T) {
	sm := NewStateMachine(testConfig())
	period := testConfig().Period()

	// Seed lastPulseEpoch with a first pulse (channel will be err, as
	// above, but lastPulseEpoch is still updated unconditionally).
	sm.Step(pulseCluster(0, 8, 3000))

	hSamples := pulseCluster(uint32(period), 8, 3000) // skip=0 rotor=H
	group, ok := sm.Step(hSamples)
	if !ok {
		t.Fatalf("expected H pulse group to be emitted")
	}
	if group.Channel != l1pulse.ChannelA {
		t.Fatalf("expected channel A, got %v", group.Channel)
	}
	if group.Rotor != l1pulse.RotorH {
		t.Fatalf("expected rotor H, got %v", group.Rotor)
	}
	if group.Seq != 1 {
		t.Fatalf("expected seq=1 after first H pulse, got %d", group.Seq)
	}

	vSamples := pulseCluster(uint32(2*period), 8, 3500) // skip=0 rotor=V
	group2, ok := sm.Step(vSamples)
	if !ok {
		t.Fatalf("expected V pulse group to be emitted")
	}
	if group2.Rotor != l1pulse.RotorV {
		t.Fatalf("expected rotor V, got %v", group2.Rotor)
	}
	if group2.Seq != 1 {
		t.Fatalf("expected seq to stay 1 on V pulse, got %d", group2.Seq)
	}
}

// TestStateMachine_SkipPulseKeepsCurrentSweep covers S2: a skip pulse
// (median length ~5000) never starts a new sweep and leaves
// current_sweep exactly as it was.
func TestStateMachine_SkipPulseKeepsCurrentSweep(t *testing.T) {
	sm := NewStateMachine(testConfig())
	period := testConfig().Period()

	sm.Step(pulseCluster(0, 8, 3000))
	sm.Step(pulseCluster(uint32(period), 8, 3000)) // establishes a current sweep

	before := sm.CurrentSweep()
	if before == nil {
		t.Fatalf("expected a current sweep to be established")
	}
	beforeEpoch := before.Epoch

	group, ok := sm.Step(pulseCluster(uint32(2*period), 8, 5000)) // skip=1
	if ok {
		t.Fatalf("expected no group emitted for a skip pulse, got %+v", group)
	}
	after := sm.CurrentSweep()
	if after == nil {
		t.Fatalf("expected current sweep to survive a skip pulse")
	}
	if after.Epoch != beforeEpoch {
		t.Fatalf("expected current sweep to be unchanged, epoch before=%f after=%f", beforeEpoch, after.Epoch)
	}
}

// TestStateMachine_UnknownWidthClearsState covers S5: an unclassifiable
// median width on the very first pulse (so channel is also err) yields
// no emission and a nil current sweep.
func TestStateMachine_UnknownWidthClearsState(t *testing.T) {
	sm := NewStateMachine(testConfig())
	samples := pulseCluster(0, 8, 2700)

	group, ok := sm.Step(samples)
	if ok {
		t.Fatalf("expected no group for unclassifiable width, got %+v", group)
	}
	if sm.CurrentSweep() != nil {
		t.Fatalf("expected current sweep to be cleared")
	}
}

// TestStateMachine_TooFewEvents covers the MinPulseEvents gate.
func TestStateMachine_TooFewEvents(t *testing.T) {
	sm := NewStateMachine(testConfig())
	samples := pulseCluster(0, MinPulseEvents-1, 3000)

	group, ok := sm.Step(samples)
	if ok {
		t.Fatalf("expected no group for too-few-events pulse set, got %+v", group)
	}
}

// TestStateMachine_OutlierSensorTimestamp covers S3: one wildly
// off-timestamp sample does not perturb the median enough to change
// classification, because length classification uses a separate
// median that is unaffected by the timestamp outlier.
func TestStateMachine_OutlierSensorTimestamp(t *testing.T) {
	sm := NewStateMachine(testConfig())
	period := testConfig().Period()
	sm.Step(pulseCluster(0, 8, 3000))

	samples := []l1pulse.RawEvent{
		{Timestamp: uint32(period) + 100, SensorID: 0, Length: 3000},
		{Timestamp: uint32(period) + 101, SensorID: 1, Length: 3000},
		{Timestamp: uint32(period) + 100, SensorID: 2, Length: 3000},
		{Timestamp: uint32(period) + 102, SensorID: 3, Length: 3000},
		{Timestamp: uint32(period) + 99, SensorID: 4, Length: 3000},
		{Timestamp: uint32(period) + 100, SensorID: 5, Length: 3000},
		{Timestamp: uint32(period) + 101, SensorID: 6, Length: 3000},
		{Timestamp: uint32(period) + 100, SensorID: 7, Length: 3000},
		{Timestamp: uint32(period) + 99999, SensorID: 8, Length: 3000},
	}

	group, ok := sm.Step(samples)
	if !ok {
		t.Fatalf("expected pulse group to be emitted despite outlier timestamp")
	}
	if group.Channel == l1pulse.ChannelErr {
		t.Fatalf("expected outlier to not break channel detection, got err")
	}
	if group.Rotor != l1pulse.RotorH {
		t.Fatalf("expected rotor H, got %v", group.Rotor)
	}
}
