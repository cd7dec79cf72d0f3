package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingBufferWraparoundOverwrites(t *testing.T) {
	rb := NewRingBuffer(8, true, trailLaw)
	for i := 0; i < 8; i++ {
		rb.Emit(Vec3{X: float64(i)}, Vec3{}, 1, float64(i))
	}
	require.Equal(t, 0, rb.WriteIndex(), "cursor wraps after capacity emissions")
	require.Equal(t, 0.0, rb.SpawnAt(0))

	// The capacity+1-th emission silently overwrites slot 0. Accepted
	// degradation under sustained peak load, not an error.
	rb.Emit(Vec3{X: 99}, Vec3{}, 1, 42.0)
	assert.Equal(t, 42.0, rb.SpawnAt(0))
	assert.Equal(t, float32(99), rb.XYZ[0])
	assert.Equal(t, 1, rb.WriteIndex())
}

func TestRetirementIsIdempotent(t *testing.T) {
	rb := NewRingBuffer(4, true, trailLaw)
	rb.Emit(Vec3{Y: 50}, Vec3{}, 1, 0)

	const lifetime = 1.0
	rb.Tick(2.0, lifetime)
	assert.Equal(t, spawnUnset, rb.SpawnAt(0))
	assert.Equal(t, float32(0), rb.Alpha[0])
	assert.Equal(t, float32(retiredY), rb.XYZ[1], "expired slot parked off-view")

	for now := 3.0; now < 10; now++ {
		rb.Tick(now, lifetime)
		assert.Equal(t, float32(0), rb.Alpha[0], "stays dead until re-emitted")
	}

	rb.Emit(Vec3{Y: 1}, Vec3{}, 1, 10)
	// Cursor advanced past slot 0 already; re-emit into slot 1 leaves 0 dead.
	assert.Equal(t, float32(0), rb.Alpha[0])
}

func TestExplosionBurstExactCount(t *testing.T) {
	tn := DefaultTuning()
	tn.ExplosionCount = 2400
	e := NewExplosionEmitter(1)
	require.Equal(t, 2500, e.Buf.Cap())

	const trigger = 7.5
	e.Burst(Vec3{X: 1, Y: 2, Z: 3}, trigger, tn)

	stamped := 0
	for i := 0; i < e.Buf.Cap(); i++ {
		switch e.Buf.SpawnAt(i) {
		case trigger:
			stamped++
		case spawnUnset:
		default:
			t.Fatalf("slot %d has unexpected timestamp %v", i, e.Buf.SpawnAt(i))
		}
	}
	assert.Equal(t, 2400, stamped)
	for i := 2400; i < 2500; i++ {
		assert.Equal(t, spawnUnset, e.Buf.SpawnAt(i), "tail slots untouched by the burst")
	}
}

func TestExplosionBurstCappedAtCapacity(t *testing.T) {
	tn := DefaultTuning()
	tn.ExplosionCount = MaxExplosionParticles + 500
	e := NewExplosionEmitter(1)
	e.Burst(Vec3{}, 1.0, tn)
	assert.Equal(t, MaxExplosionParticles, e.Buf.Live())
}

func TestFadeLaws(t *testing.T) {
	cases := []struct {
		name  string
		law   FadeLaw
		r     float64
		alpha float64
		size  float64
	}{
		{"trail fresh", trailLaw, 0, 1, 1},
		{"trail mid", trailLaw, 0.5, 0.5, 1},
		{"trail done", trailLaw, 1, 0, 1},
		{"smoke fresh", smokeLaw, 0, 1, 0},
		{"smoke mid", smokeLaw, 0.5, 0.75, 1},
		{"smoke done", smokeLaw, 1, 0, math.Sin(math.Pi)},
		{"engine mid", engineLaw, 0.5, 0.5, 0.75},
		{"explosion mid", explosionLaw, 0.5, 0.5, 0.5},
	}
	for _, c := range cases {
		alpha, size := c.law(c.r)
		assert.InDelta(t, c.alpha, alpha, 1e-9, "%s alpha", c.name)
		assert.InDelta(t, c.size, size, 1e-9, "%s size", c.name)
	}
}

func TestSpawnCountCeils(t *testing.T) {
	assert.Equal(t, 0, spawnCount(0, 0.016))
	assert.Equal(t, 0, spawnCount(100, 0))
	assert.Equal(t, 1, spawnCount(10, 0.016)) // 0.16 rounds up
	assert.Equal(t, 2, spawnCount(100, 0.016))
	assert.Equal(t, 5, spawnCount(300, 1.0/60))
}

func TestKinematicRenderPosition(t *testing.T) {
	rb := NewRingBuffer(4, true, explosionLaw)
	rb.Emit(Vec3{X: 10}, Vec3{X: 2}, 1, 0)
	rb.Tick(1.5, 10)
	assert.InDelta(t, 13.0, float64(rb.XYZ[0]), 1e-5, "render pos = stored + vel·age")
	// Stored position itself is untouched.
	assert.Equal(t, Vec3{X: 10}, rb.pos[0])
}

func TestTrailParticlesAreStatic(t *testing.T) {
	e := NewTrailEmitter()
	tn := DefaultTuning()
	a := levelAircraft()
	a.Vel = Vec3{Z: tn.TrailTrigSpeed + 5}

	e.Update(&a, true, 1.0/60, 0.5, tn)
	require.Greater(t, e.Left.Live(), 0)

	x0 := e.Left.XYZ[0]
	e.Update(&a, false, 1.0/60, 1.0, tn)
	assert.Equal(t, x0, e.Left.XYZ[0], "trail particles never move after emission")
}

func TestTrailTriggerConditions(t *testing.T) {
	tn := DefaultTuning()
	e := NewTrailEmitter()
	a := levelAircraft()

	// Slow and level: nothing.
	a.Vel = Vec3{Z: 0.3 * tn.TrailTrigSpeed}
	e.Update(&a, true, 1.0/60, 0.1, tn)
	assert.Equal(t, 0, e.Left.Live())

	// Moderately fast while turning hard: emits.
	a.Vel = Vec3{Z: 0.6 * tn.TrailTrigSpeed}
	a.AngVel = Vec3{Z: tn.TrailTrigAngVel * 1.5}
	e.Update(&a, true, 1.0/60, 0.2, tn)
	assert.Greater(t, e.Left.Live(), 0)
	assert.Equal(t, e.Left.Live(), e.Right.Live(), "both wingtips emit together")
}

func TestEngineAlternatesNozzles(t *testing.T) {
	tn := DefaultTuning()
	e := NewEngineEmitter(3)
	a := levelAircraft()

	e.Update(&a, ControlInput{Thrust: 1}, true, 1.0/60, 0.1, tn)
	n := e.Buf.Live()
	require.GreaterOrEqual(t, n, 2)
	// Consecutive slots come from opposite nozzles: stored X flips sign.
	assert.NotEqual(t, e.Buf.pos[0].X, e.Buf.pos[1].X)
	assert.InDelta(t, -e.Buf.pos[0].X, e.Buf.pos[1].X, 1e-9)
}

func TestEngineSilentWithoutThrust(t *testing.T) {
	tn := DefaultTuning()
	e := NewEngineEmitter(3)
	a := levelAircraft()
	e.Update(&a, ControlInput{Thrust: 0}, true, 1.0/60, 0.1, tn)
	assert.Equal(t, 0, e.Buf.Live())
}

func TestSmokeTurbulenceMutatesStoredVelocity(t *testing.T) {
	tn := DefaultTuning()
	e := NewSmokeEmitter(11)

	e.Update(1.0/60, 0.1, tn)
	require.Greater(t, e.Buf.Live(), 0)
	v0 := *e.Buf.VelAt(0)

	e.Update(1.0/60, 0.12, tn)
	v1 := *e.Buf.VelAt(0)
	assert.NotEqual(t, v0, v1, "smoke is the only system with post-emission velocity drift")
}

func TestSmokeRisesFromCrater(t *testing.T) {
	tn := DefaultTuning()
	e := NewSmokeEmitter(11)
	e.Update(1.0/60, 0.1, tn)
	e.Buf.forEachLive(func(i int, _ float64) {
		p := e.Buf.pos[i]
		assert.InDelta(t, CraterFloorHeight+1, p.Y, 1e-9)
		assert.Less(t, math.Hypot(p.X, p.Z), float64(CraterInnerRadius),
			"plume starts inside the crater")
		assert.Greater(t, e.Buf.vel[i].Y, 0.0, "plume rises")
	})
}
