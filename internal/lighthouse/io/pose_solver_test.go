package io

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l3angles"
)

func TestUnimplementedPoseSolver(t *testing.T) {
	var solver PoseSolver = UnimplementedPoseSolver{}
	_, err := solver.Solve(map[uint8]*l3angles.SensorAngles{}, map[uint8]SensorPosition{})
	assert.ErrorIs(t, err, ErrPoseSolvingUnsupported)
}

func TestNewDumpSession_AssignsDistinctRunIDs(t *testing.T) {
	a := NewDumpSession(nil)
	b := NewDumpSession(nil)
	assert.NotEmpty(t, a.RunID)
	assert.NotEqual(t, a.RunID, b.RunID)
}
