// Package decoder wires l1pulse, l2groups and l3angles into the single
// entry point external callers use: sanitize a raw event stream,
// segment it into pulse/sweep groups, and collate per-station angles
// on demand.
package decoder
