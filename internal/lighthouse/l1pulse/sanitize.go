package l1pulse

// Sanitize drops every sentinel-valued RawEvent from events, preserving
// order (spec §4.1). Pure; it has no failure modes and is idempotent:
// Sanitize(Sanitize(s)) == Sanitize(s) for all s.
func Sanitize(events []RawEvent) []RawEvent {
	out := make([]RawEvent, 0, len(events))
	for _, e := range events {
		if e.IsSentinel() {
			continue
		}
		out = append(out, e)
	}
	return out
}
