package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func levelAircraft() Aircraft {
	return Aircraft{
		Pos:     Vec3{Y: 200},
		Orient:  QuatIdentity(),
		Visible: true,
	}
}

func TestSpeedCapHolds(t *testing.T) {
	tn := DefaultTuning()
	a := levelAircraft()
	in := ControlInput{Thrust: 1, Afterburner: true}

	for i := 0; i < 2000; i++ {
		stepFlight(&a, in, 1.0/60, tn)
		assert.LessOrEqual(t, a.Speed(), tn.MaxSpeed*tn.Afterburner+1e-6,
			"speed cap breached at tick %d", i)
	}
	// Sustained full burn should actually reach the cap, not just respect it.
	assert.InDelta(t, tn.MaxSpeed*tn.Afterburner, a.Speed(), 1.0)
}

func TestOrientationStaysUnit(t *testing.T) {
	tn := DefaultTuning()
	a := levelAircraft()
	r := NewRand(99)

	for i := 0; i < 3000; i++ {
		in := ControlInput{
			Pitch:  r.RangeF(-1, 1),
			Roll:   r.RangeF(-1, 1),
			Yaw:    r.RangeF(-1, 1),
			Thrust: r.Float64(),
		}
		stepFlight(&a, in, 1.0/60, tn)
		assert.InDelta(t, 1.0, a.Orient.Norm(), 1e-5)
	}
}

func TestIdleDecaySnapsToZero(t *testing.T) {
	tn := DefaultTuning()
	tn.DragFactor = 0 // isolate the idle branch
	a := levelAircraft()
	a.Vel = Vec3{X: 0.3}

	in := ControlInput{}
	stepFlight(&a, in, 1.0/60, tn)
	assert.InDelta(t, 0.3*tn.IdleDecay, a.Vel.Len(), 1e-12,
		"one tick decays speed by exactly the idle factor")

	for i := 0; i < 50; i++ {
		stepFlight(&a, in, 1.0/60, tn)
	}
	assert.Equal(t, Vec3{}, a.Vel, "sub-epsilon speed snaps to exact zero")
}

func TestIdleDecayLeavesAngularVelocity(t *testing.T) {
	tn := DefaultTuning()
	a := levelAircraft()
	a.Vel = Vec3{X: 0.3}
	a.AngVel = Vec3{Y: 0.2}

	stepFlight(&a, ControlInput{}, 1.0/60, tn)
	// Angular velocity is damped by the usual per-tick constant but is not
	// zeroed by the idle branch.
	assert.NotEqual(t, 0.0, a.AngVel.Y)
}

func TestWorldWrapTeleports(t *testing.T) {
	tn := DefaultTuning()

	a := levelAircraft()
	a.Pos.X = WorldBoundary + 5
	stepFlight(&a, ControlInput{}, 1.0/60, tn)
	assert.Equal(t, -WorldBoundary+1, a.Pos.X, "teleport, not clamp")

	a = levelAircraft()
	a.Pos.Z = -WorldBoundary - 2
	stepFlight(&a, ControlInput{}, 1.0/60, tn)
	assert.Equal(t, WorldBoundary-1, a.Pos.Z)
}

func TestBrakeOpposesVelocity(t *testing.T) {
	tn := DefaultTuning()
	a := levelAircraft()
	a.Vel = Vec3{X: 20}

	before := a.Speed()
	stepFlight(&a, ControlInput{Brake: true}, 1.0/60, tn)
	after := a.Speed()
	require.Less(t, after, before)
	// Direction is preserved while braking straight.
	assert.Greater(t, a.Vel.X, 0.0)
	assert.InDelta(t, 0.0, a.Vel.Z, 1e-9)
}

func TestAngularRateApproachesStick(t *testing.T) {
	tn := DefaultTuning()
	a := levelAircraft()
	in := ControlInput{Pitch: 1}

	for i := 0; i < 600; i++ {
		stepFlight(&a, in, 1.0/60, tn)
	}
	// Converges below the raw rate cap because of per-tick damping.
	assert.Greater(t, a.AngVel.X, 0.3*tn.PitchRate)
	assert.LessOrEqual(t, a.AngVel.X, tn.PitchRate+1e-9)
}

func TestDtClampBoundsIntegration(t *testing.T) {
	s := NewSimulation(1)
	s.Aircraft.Vel = Vec3{X: 50}
	x0 := s.Aircraft.Pos.X

	s.Tick(ControlInput{}, 10.0) // hitch: ten seconds between frames
	moved := s.Aircraft.Pos.X - x0
	assert.LessOrEqual(t, moved, 50*0.1+1e-9, "dt is clamped to 100ms")
}

func TestTuningChangeTakesEffectNextTick(t *testing.T) {
	tn := DefaultTuning()
	a := levelAircraft()
	in := ControlInput{Thrust: 1}

	stepFlight(&a, in, 1.0/60, tn)
	v1 := a.Speed()

	tn.ThrustAccel *= 10
	stepFlight(&a, in, 1.0/60, tn)
	gained := a.Speed() - v1
	assert.Greater(t, gained, v1*5, "live tuning write applies immediately")
}
