// Package io adapts the pure decoder pipeline to the outside world:
// loading raw events from a recorded dump, a live serial link or a
// network stream, and writing collated angle series back out for
// downstream consumption. Nothing in this package participates in
// decoding itself; it only produces l1pulse.RawEvent values for the
// pipeline and serializes l3angles output once the pipeline is done.
//
// Dependency rule: io may depend on l1pulse, l2groups and l3angles for
// their exported types, never the reverse.
package io
