package io

import (
	"errors"

	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l3angles"
)

// ErrPoseSolvingUnsupported is returned by every PoseSolver
// implementation in this package: translating a station's collated
// angles plus known sensor geometry into a 6-DoF pose is a PnP
// problem, solved out-of-process by an external computer-vision
// collaborator, not by this module.
var ErrPoseSolvingUnsupported = errors.New("lighthouse io: pose solving is out of scope, see PoseSolver")

// SensorPosition is a known sensor's position in the tracked object's
// own reference frame, keyed by sensor_id (a calibration input, never
// derived from decoded data).
type SensorPosition struct {
	X, Y, Z float64
}

// Pose is a rigid-body transform: translation plus rotation, in the
// station's reference frame.
type Pose struct {
	Translation [3]float64
	Rotation    [3][3]float64
}

// PoseSolver turns a station's collated angle-tick series, combined
// with known sensor geometry, into an estimated pose. No working
// implementation ships in this package (UnimplementedPoseSolver always
// fails); callers needing pose estimation must supply their own (e.g.
// wrapping a PnP library).
type PoseSolver interface {
	Solve(angles map[uint8]*l3angles.SensorAngles, geometry map[uint8]SensorPosition) (Pose, error)
}

// UnimplementedPoseSolver always returns ErrPoseSolvingUnsupported. It
// exists so callers can wire a PoseSolver dependency through their
// configuration before a real implementation is available.
type UnimplementedPoseSolver struct{}

func (UnimplementedPoseSolver) Solve(map[uint8]*l3angles.SensorAngles, map[uint8]SensorPosition) (Pose, error) {
	return Pose{}, ErrPoseSolvingUnsupported
}
