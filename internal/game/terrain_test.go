package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeightAtDeterministic(t *testing.T) {
	for x := -WorldBoundary; x <= WorldBoundary; x += 37.3 {
		for z := -WorldBoundary; z <= WorldBoundary; z += 41.7 {
			first := HeightAt(x, z)
			for i := 0; i < 3; i++ {
				assert.Equal(t, first, HeightAt(x, z), "height must be pure at (%v,%v)", x, z)
			}
		}
	}
}

func TestCraterFloorIsExactlyFlat(t *testing.T) {
	pts := [][2]float64{
		{0, 0},
		{CraterInnerRadius - 0.01, 0},
		{0, -CraterInnerRadius + 0.01},
		{10, 12},
		{-15, 8},
	}
	for _, p := range pts {
		require.Less(t, p[0]*p[0]+p[1]*p[1], float64(CraterInnerRadius*CraterInnerRadius))
		assert.Equal(t, float64(CraterFloorHeight), HeightAt(p[0], p[1]),
			"inside the inner radius the floor is exact, no noise")
	}
}

func TestHeightWithinClampBounds(t *testing.T) {
	lo := -2.0 * NoiseHeight
	hi := VolcanoPeak + 1.5*NoiseHeight
	for x := -WorldBoundary; x <= WorldBoundary; x += 11.1 {
		for z := -WorldBoundary; z <= WorldBoundary; z += 13.7 {
			h := HeightAt(x, z)
			assert.GreaterOrEqual(t, h, lo)
			assert.LessOrEqual(t, h, hi)
		}
	}
}

func TestCraterRimBlendsSmoothly(t *testing.T) {
	// Walking outward from the inner to the outer radius must stay between
	// the floor and the clamp ceiling, with no discontinuity at either edge.
	prev := HeightAt(CraterInnerRadius-0.5, 0)
	assert.Equal(t, float64(CraterFloorHeight), prev)
	for d := CraterInnerRadius + 0.5; d < CraterOuterRadius+4; d += 0.5 {
		h := HeightAt(d, 0)
		assert.InDelta(t, prev, h, 6.0, "no cliff at d=%v", d)
		prev = h
	}
}

func TestGroundAtUsesWaterLevel(t *testing.T) {
	// A trough of the low-frequency sinusoid far from the volcano dips well
	// below the water level.
	x, z := 235.6, 0.0
	require.Less(t, HeightAt(x, z), float64(WaterLevel))
	assert.Equal(t, float64(WaterLevel), GroundAt(x, z))

	// On the volcano flank the terrain itself is the floor.
	assert.Equal(t, HeightAt(60, 0), GroundAt(60, 0))
}

func TestScatterTreesRespectsConstraints(t *testing.T) {
	trees := ScatterTrees(42, TreeCount)
	require.NotEmpty(t, trees)
	for _, tr := range trees {
		assert.GreaterOrEqual(t, tr.Pos.Y, float64(TreeMinAltitude))
		sx := HeightAt(tr.Pos.X+1, tr.Pos.Z) - HeightAt(tr.Pos.X-1, tr.Pos.Z)
		sz := HeightAt(tr.Pos.X, tr.Pos.Z+1) - HeightAt(tr.Pos.X, tr.Pos.Z-1)
		assert.LessOrEqual(t, math.Hypot(sx, sz), float64(TreeMaxSlope))
	}
}

func TestScatterTreesDeterministicPerSeed(t *testing.T) {
	a := ScatterTrees(7, 100)
	b := ScatterTrees(7, 100)
	assert.Equal(t, a, b)
}
