package l3angles

import (
	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l1pulse"
	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l2groups"
	"gonum.org/v1/gonum/stat"
)

// MaxSensors bounds the sensor_id space the collator searches (spec
// §4.6: "For each sensor_id s in [0, 32)").
const MaxSensors = 32

// SensorAngles accumulates the angle-tick samples observed for one
// sensor at one station. XTicks, YTicks and TTicks are parallel,
// non-decreasing in TTicks (spec §3).
//
// TTicks records the H-sweep's epoch for both axes: measurements on
// the H and V axes occur at different instants, and the collator
// deliberately ignores that delta because the downstream pose solver
// assumes an instantaneous rigid body (spec §4.6). Callers must not
// rely on sub-cycle temporal precision from TTicks.
type SensorAngles struct {
	SensorID uint8
	XTicks   []uint32
	YTicks   []uint32
	TTicks   []float64
}

// Summary reports the mean and standard deviation of the X and Y tick
// series, for quick QA of a collated station's spread.
type Summary struct {
	MeanX, StdDevX float64
	MeanY, StdDevY float64
	N              int
}

// Summary computes descriptive statistics over a's angle-tick series.
// With fewer than 2 samples only N is set; the means and standard
// deviations are left zero (stddev is undefined for n<2).
func (a *SensorAngles) Summary() Summary {
	n := len(a.XTicks)
	if n < 2 {
		return Summary{N: n}
	}
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range a.XTicks {
		xs[i] = float64(a.XTicks[i])
		ys[i] = float64(a.YTicks[i])
	}
	meanX, stdX := stat.MeanStdDev(xs, nil)
	meanY, stdY := stat.MeanStdDev(ys, nil)
	return Summary{MeanX: meanX, StdDevX: stdX, MeanY: meanY, StdDevY: stdY, N: n}
}

func maxSeq(sweeps []l2groups.LightGroup) uint32 {
	var max uint32
	for _, s := range sweeps {
		if s.Seq > max {
			max = s.Seq
		}
	}
	return max
}

func filterSweeps(sweeps []l2groups.LightGroup, station l1pulse.Channel, seq uint32, rotor l1pulse.Rotor) []l2groups.LightGroup {
	var out []l2groups.LightGroup
	for _, s := range sweeps {
		if s.Channel == station && s.Seq == seq && s.Rotor == rotor {
			out = append(out, s)
		}
	}
	return out
}

func sampleBySensor(samples []l1pulse.RawEvent, sensorID uint8) []l1pulse.RawEvent {
	var out []l1pulse.RawEvent
	for _, s := range samples {
		if s.SensorID == sensorID {
			out = append(out, s)
		}
	}
	return out
}

// angleTick centers sample on the middle of its lit period and
// subtracts the sweep epoch, using integer arithmetic on u32 as
// specified (spec §4.6): event.timestamp + event.length/2 - epoch.
func angleTick(sample l1pulse.RawEvent, epoch float64) uint32 {
	return sample.Timestamp + uint32(sample.Length)/2 - uint32(epoch)
}

// Collate pairs H and V sweeps per sequence number for station and
// produces per-sensor angle-tick triples (spec §4.6). Sequence numbers
// from 1 up to, but not including, the highest seq in sweeps are
// visited, so the sweeps of the highest seq are never collated. The
// returned map is keyed by sensor_id; sensors never observed by station
// are absent.
func Collate(station l1pulse.Channel, sweeps []l2groups.LightGroup) map[uint8]*SensorAngles {
	result := make(map[uint8]*SensorAngles)

	max := maxSeq(sweeps)
	for seq := uint32(1); seq < max; seq++ {
		xs := filterSweeps(sweeps, station, seq, l1pulse.RotorH)
		ys := filterSweeps(sweeps, station, seq, l1pulse.RotorV)

		if len(xs) == 0 || len(ys) == 0 {
			// The subsequent cycles are assumed truncated.
			break
		}
		if len(xs) > 1 || len(ys) > 1 {
			debugf("[l3angles] invariant violation: station %v seq %d has %d H sweeps and %d V sweeps, proceeding with index 0", station, seq, len(xs), len(ys))
		}

		hSweep := xs[0]
		vSweep := ys[0]

		for sensorID := uint8(0); sensorID < MaxSensors; sensorID++ {
			xSamples := sampleBySensor(hSweep.Samples, sensorID)
			ySamples := sampleBySensor(vSweep.Samples, sensorID)

			if len(xSamples) > 1 || len(ySamples) > 1 {
				debugf("[l3angles] invariant violation: sensor %d sampled multiple times in station %v seq %d sweep", sensorID, station, seq)
			}
			if len(xSamples) < 1 || len(ySamples) < 1 {
				continue
			}

			xAngle := angleTick(xSamples[0], hSweep.Epoch)
			yAngle := angleTick(ySamples[0], vSweep.Epoch)

			entry, ok := result[sensorID]
			if !ok {
				entry = &SensorAngles{SensorID: sensorID}
				result[sensorID] = entry
			}
			entry.XTicks = append(entry.XTicks, xAngle)
			entry.YTicks = append(entry.YTicks, yAngle)
			entry.TTicks = append(entry.TTicks, hSweep.Epoch)
		}
	}

	return result
}
