package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAverageDuration(t *testing.T) {
	reps := []Rep{
		{Duration: 0.9},
		{Duration: 1.1},
		{Duration: 1.3},
	}
	require.InDelta(t, 1.1, averageDuration(reps), 1e-9)
}

func TestAverageEmptySequence(t *testing.T) {
	require.Zero(t, averageDuration(nil))
	require.Zero(t, averageVelocity([]Rep{}))
}

func TestAverageVelocity(t *testing.T) {
	reps := []Rep{
		{VelocityScore: 8},
		{VelocityScore: 6},
	}
	require.InDelta(t, 7.0, averageVelocity(reps), 1e-9)
}

func TestVelocityDropoff(t *testing.T) {
	reps := []Rep{
		{VelocityScore: 8},
		{VelocityScore: 7},
		{VelocityScore: 6},
		{VelocityScore: 4},
	}
	require.InDelta(t, 50.0, velocityDropoff(reps), 1e-9)
}

func TestVelocityDropoffShortSequences(t *testing.T) {
	require.Zero(t, velocityDropoff(nil))
	require.Zero(t, velocityDropoff([]Rep{{VelocityScore: 9}}))
}

func TestVelocityDropoffZeroFirstScore(t *testing.T) {
	reps := []Rep{
		{VelocityScore: 0},
		{VelocityScore: 5},
	}
	require.Zero(t, velocityDropoff(reps))
}

func TestVelocityDropoffIsPositional(t *testing.T) {
	// Order is array position, not repNumber.
	reps := []Rep{
		{RepNumber: 3, VelocityScore: 10},
		{RepNumber: 1, VelocityScore: 5},
	}
	require.InDelta(t, 50.0, velocityDropoff(reps), 1e-9)
}
