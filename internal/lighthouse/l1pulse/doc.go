// Package l1pulse owns the stateless building blocks the rest of the
// decoder is built on: the raw event type, the sentinel sanitizer, the
// pulse-width classifier and the inter-pulse channel detector.
//
// Responsibilities: dropping sentinel events, mapping a pulse's median
// width to (skip, rotor, databit), and labelling a pulse's originating
// base station from the time gap since the previous pulse. Nothing in
// this package buffers events across calls.
//
// Dependency rule: l1pulse has no dependency on l2groups or l3angles.
package l1pulse
