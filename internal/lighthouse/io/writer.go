package io

import (
	"encoding/csv"
	"fmt"
	stdio "io"
	"sort"
	"strconv"

	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l1pulse"
	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l2groups"
	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l3angles"
)

// WriteAngles serializes a station's collated angles to dst as CSV
// rows "sensor_id,x,y,t", one row per angle-tick triple, sensors in
// ascending order.
func WriteAngles(dst stdio.Writer, angles map[uint8]*l3angles.SensorAngles) error {
	w := csv.NewWriter(dst)

	ids := make([]uint8, 0, len(angles))
	for id := range angles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		a := angles[id]
		for i := range a.XTicks {
			row := []string{
				strconv.Itoa(int(id)),
				strconv.FormatUint(uint64(a.XTicks[i]), 10),
				strconv.FormatUint(uint64(a.YTicks[i]), 10),
				strconv.FormatFloat(a.TTicks[i], 'f', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("lighthouse io: writing angle row: %w", err)
			}
		}
	}
	w.Flush()
	return w.Error()
}

// WriteLightGroups serializes a list of pulse- or sweep-groups to dst
// as CSV rows "channel,rotor,epoch,seq,sample_count", one row per
// group, in the order they were decoded.
func WriteLightGroups(dst stdio.Writer, groups []l2groups.LightGroup) error {
	w := csv.NewWriter(dst)
	for _, g := range groups {
		row := []string{
			strconv.Itoa(int(g.Channel)),
			strconv.Itoa(int(g.Rotor)),
			strconv.FormatFloat(g.Epoch, 'f', -1, 64),
			strconv.FormatUint(uint64(g.Seq), 10),
			strconv.Itoa(len(g.Samples)),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("lighthouse io: writing light group row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteRawEvents serializes events to dst in the same
// "timestamp,sensor_id,length" shape CSVDumpLoader reads, so a sanitized
// or synthetic stream can be round-tripped through a dump file.
func WriteRawEvents(dst stdio.Writer, events []l1pulse.RawEvent) error {
	w := csv.NewWriter(dst)
	for _, e := range events {
		row := []string{
			strconv.FormatUint(uint64(e.Timestamp), 10),
			strconv.Itoa(int(e.SensorID)),
			strconv.FormatUint(uint64(e.Length), 10),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("lighthouse io: writing raw event row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
