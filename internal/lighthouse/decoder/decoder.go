package decoder

import (
	"github.com/banshee-data/lighthouse.decode/internal/config"
	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l1pulse"
	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l2groups"
	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l3angles"
)

// Decoder is the top-level pure function over a raw event stream
// (spec §5): given its configured protocol constants it has no I/O
// wait points and no suspension, and is safe to run concurrently with
// other Decoders over independent streams.
type Decoder struct {
	cfg config.Config
}

// New builds a Decoder configured with cfg. cfg must be injected by
// the caller; there is no package-level default consulted implicitly.
func New(cfg config.Config) *Decoder {
	return &Decoder{cfg: cfg}
}

// Result holds the two ordered output lists of spec §6: the emitted
// pulse-groups and sweep-groups, in the order their defining events
// appeared in the input stream.
type Result struct {
	Pulses []l2groups.LightGroup
	Sweeps []l2groups.LightGroup
}

// Decode runs the full pipeline (sanitize, then segment) over events
// and returns the accumulated pulse/sweep lists.
func (d *Decoder) Decode(events []l1pulse.RawEvent) Result {
	clean := l1pulse.Sanitize(events)

	agg := l2groups.NewAggregator(d.cfg)
	agg.Process(clean)
	agg.Finish()

	return Result{Pulses: agg.Pulses, Sweeps: agg.Sweeps}
}

// Collate pairs H/V sweeps for station and returns the per-sensor
// angle-tick triples (spec §4.6). It is a pure post-pass over
// r.Sweeps and may be called repeatedly, for different stations,
// without re-decoding.
func (r Result) Collate(station l1pulse.Channel) map[uint8]*l3angles.SensorAngles {
	return l3angles.Collate(station, r.Sweeps)
}
