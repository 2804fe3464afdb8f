package l1pulse

// PulseClassTolerance is the half-width of the pulse-class matching
// window: an entry matches when |L - duration| < PulseClassTolerance
// (spec §6).
const PulseClassTolerance = 250

// Bit is a ternary decode bit: 0, 1, or -1 for "error/undefined"
// (spec §3).
type Bit int8

const (
	BitZero  Bit = 0
	BitOne   Bit = 1
	BitError Bit = -1
)

// Rotor identifies one of the two orthogonal sweep axes.
type Rotor uint8

const (
	RotorH Rotor = iota
	RotorV
	RotorErr
)

func (r Rotor) String() string {
	switch r {
	case RotorH:
		return "H"
	case RotorV:
		return "V"
	default:
		return "err"
	}
}

// PulseClass is one row of the eight-entry (plus two bracketing
// sentinel) sync-pulse width table (spec §3, §4.2).
type PulseClass struct {
	Duration uint16
	Skip     Bit
	Rotor    Bit
	Databit  Bit
}

// Invalid reports whether the class carries no usable decode (either
// it's a bracketing sentinel row or classification failed outright).
func (c PulseClass) Invalid() bool {
	return c.Skip == BitError || c.Rotor == BitError
}

// pulseTable is the static 3-bit Gray-like encoding documented in the
// Lighthouse light-emissions reference (spec §4.2), bracketed by two
// sentinel rows that always decode to "error".
var pulseTable = [10]PulseClass{
	{Duration: 2500, Skip: BitError, Rotor: BitError, Databit: BitError},
	{Duration: 3000, Skip: BitZero, Rotor: BitZero, Databit: BitZero},
	{Duration: 3500, Skip: BitZero, Rotor: BitOne, Databit: BitZero},
	{Duration: 4000, Skip: BitZero, Rotor: BitZero, Databit: BitOne},
	{Duration: 4500, Skip: BitZero, Rotor: BitOne, Databit: BitOne},
	{Duration: 5000, Skip: BitOne, Rotor: BitZero, Databit: BitZero},
	{Duration: 5500, Skip: BitOne, Rotor: BitOne, Databit: BitZero},
	{Duration: 6000, Skip: BitOne, Rotor: BitZero, Databit: BitOne},
	{Duration: 6500, Skip: BitOne, Rotor: BitOne, Databit: BitOne},
	{Duration: 7000, Skip: BitError, Rotor: BitError, Databit: BitError},
}

// errorClass is returned, fully -1, when no table entry matches.
var errorClass = PulseClass{Skip: BitError, Rotor: BitError, Databit: BitError}

// ClassifyPulse maps a nominal pulse length L, in ticks, to the
// matching PulseClass by linear scan, first match wins (spec §4.2).
// If nothing matches within the tolerance window, it logs and returns
// errorClass.
func ClassifyPulse(length uint16) PulseClass {
	for _, c := range pulseTable {
		delta := int32(length) - int32(c.Duration)
		if delta < 0 {
			delta = -delta
		}
		if delta < PulseClassTolerance {
			return c
		}
	}
	debugf("[l1pulse] no pulse class found for length %d", length)
	return errorClass
}

// RotorOf maps the classifier's raw Rotor bit to a Rotor axis
// identifier (spec §4.5: rotor_idx 0 => H, 1 => V, -1 => err).
func RotorOf(bit Bit) Rotor {
	switch bit {
	case BitZero:
		return RotorH
	case BitOne:
		return RotorV
	default:
		return RotorErr
	}
}
