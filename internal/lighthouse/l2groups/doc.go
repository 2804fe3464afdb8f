// Package l2groups owns Layer 2 of the decoder: the streaming
// pulse/sweep segmenter (the Pulse-Set Aggregator) and the per-pulse
// classification step (the Sweep-Cycle State Machine) that together
// partition a sanitized event stream into alternating pulse-groups and
// sweep-groups.
//
// Responsibilities: buffering consecutive same-kind events, deciding
// pulse-set membership by timestamp-interval overlap, driving the
// state machine's median/classify/channel-detect/seq-increment step,
// and inheriting sweep metadata from the most recently accepted sync
// pulse. Key type: LightGroup.
//
// Dependency rule: l2groups may depend on l1pulse, never on l3angles.
package l2groups
