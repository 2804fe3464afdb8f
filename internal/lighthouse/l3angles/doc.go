// Package l3angles owns Layer 3 of the decoder: the post-pass Angle
// Collator that pairs horizontal and vertical sweeps per scanning
// cycle for a chosen station and produces per-sensor angle-tick
// triples.
//
// Responsibilities: filtering the accumulated sweep list by station,
// sequence and rotor; centering each sample on the middle of its lit
// period; and assembling the parallel (x,y,t) series consumed by the
// downstream pose solver.
//
// Dependency rule: l3angles may depend on l1pulse and l2groups.
package l3angles
