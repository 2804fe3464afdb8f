package l1pulse

import "math"

// Channel identifies which base station (or neither) emitted a pulse.
type Channel uint8

const (
	ChannelA Channel = iota
	ChannelB
	ChannelC
	ChannelErr
)

func (c Channel) String() string {
	switch c {
	case ChannelA:
		return "A"
	case ChannelB:
		return "B"
	case ChannelC:
		return "C"
	default:
		return "err"
	}
}

const (
	// ChannelSpace is the B/C pulse spacing within a cycle, in ticks
	// (spec §6).
	ChannelSpace = 20000
	// ChannelTolerance is the half-width of the channel-gap matching
	// window, in ticks (spec §6).
	ChannelTolerance = 4000
)

// DetectChannel labels a pulse's originating channel from the time
// delta since the previous pulse (spec §4.3). period is one full
// inter-sweep gap (config.Config.Period()). Stateless: the caller
// supplies lastPulseTime.
func DetectChannel(lastPulseTime, newPulseTime, period float64) Channel {
	dt := newPulseTime - lastPulseTime

	switch {
	case math.Abs(dt-period) < ChannelTolerance:
		return ChannelA
	case math.Abs(dt-(period-ChannelSpace)) < ChannelTolerance:
		return ChannelB
	case math.Abs(dt-ChannelSpace) < ChannelTolerance:
		return ChannelC
	default:
		debugf("[l1pulse] unrecognized channel gap: last=%.1f new=%.1f dt=%.1f period=%.1f", lastPulseTime, newPulseTime, dt, period)
		return ChannelErr
	}
}
