package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// crater center: HeightAt(0,0) is the flat crater floor, so the collision
// floor there is exactly CraterFloorHeight + GroundBuffer.
const craterFloor = CraterFloorHeight + GroundBuffer

func TestSoftContactBounce(t *testing.T) {
	s := NewSimulation(1)
	s.Aircraft.Pos = Vec3{X: 0, Y: craterFloor - 2, Z: 0}
	s.Aircraft.Vel = Vec3{X: 10, Y: -5, Z: -4}
	s.Aircraft.AngVel = Vec3{X: 1, Z: 0.6}

	s.resolveGround()

	assert.Equal(t, StateFlying, s.State, "gentle contact is not a crash")
	assert.Equal(t, craterFloor, s.Aircraft.Pos.Y)
	assert.InDelta(t, 1.0, s.Aircraft.Vel.Y, 1e-9, "vertical velocity reflected and damped")
	assert.InDelta(t, 8.0, s.Aircraft.Vel.X, 1e-9)
	assert.InDelta(t, -3.2, s.Aircraft.Vel.Z, 1e-9)
	assert.InDelta(t, 0.5, s.Aircraft.AngVel.X, 1e-9)
}

func TestContactAboveFloorIsIgnored(t *testing.T) {
	s := NewSimulation(1)
	s.Aircraft.Pos = Vec3{Y: craterFloor + 3}
	s.Aircraft.Vel = Vec3{Y: -50}
	s.resolveGround()
	assert.Equal(t, StateFlying, s.State)
	assert.Equal(t, -50.0, s.Aircraft.Vel.Y, "no contact, no correction")
}

func TestSteepImpactCrashesOnce(t *testing.T) {
	s := NewSimulation(1)
	crashes := 0
	s.Events.Subscribe(EventCrashed, func(Event) { crashes++ })

	s.Aircraft.Pos = Vec3{Y: craterFloor + 0.1}
	s.Aircraft.Vel = Vec3{Y: -30}

	for i := 0; i < 20; i++ {
		s.Tick(ControlInput{}, 1.0/60)
	}

	require.Equal(t, StateCrashing, s.State)
	assert.Equal(t, 1, crashes, "crash event fires exactly once per crash")
	assert.False(t, s.Aircraft.Visible)
	assert.Equal(t, Vec3{}, s.Aircraft.Vel)
	assert.Equal(t, Vec3{}, s.Aircraft.AngVel)
	assert.Equal(t, s.Tun.ExplosionCount, s.Explosion.Buf.Live())
}

func TestPhysicsFrozenWhileCrashingParticlesStillAge(t *testing.T) {
	s := NewSimulation(1)
	s.ResetDelay = time.Hour // keep the pending reset out of this test
	s.Aircraft.Pos = Vec3{Y: craterFloor + 0.1}
	s.Aircraft.Vel = Vec3{Y: -30}
	s.Tick(ControlInput{}, 1.0/60)
	require.Equal(t, StateCrashing, s.State)

	pos := s.Aircraft.Pos
	a0 := s.Explosion.Buf.Alpha[0]
	for i := 0; i < 30; i++ {
		s.Tick(ControlInput{Thrust: 1, Pitch: 1}, 1.0/60)
	}
	assert.Equal(t, pos, s.Aircraft.Pos, "wreck does not respond to input")
	assert.Less(t, s.Explosion.Buf.Alpha[0], a0, "explosion keeps fading")
	assert.Equal(t, 0, s.Engine.Buf.Live(), "hidden airframe emits nothing")
}

func TestDelayedResetRestoresInitialFlight(t *testing.T) {
	s := NewSimulation(1)
	s.ResetDelay = 20 * time.Millisecond
	resets := 0
	s.Events.Subscribe(EventReset, func(Event) { resets++ })

	initial := s.Aircraft
	s.Aircraft.Pos = Vec3{Y: craterFloor + 0.1}
	s.Aircraft.Vel = Vec3{Y: -30}
	s.Tick(ControlInput{}, 1.0/60)
	require.Equal(t, StateCrashing, s.State)

	// Before the timer fires the wreck stays down.
	s.Tick(ControlInput{}, 1.0/60)
	assert.Equal(t, StateCrashing, s.State)

	time.Sleep(100 * time.Millisecond)
	s.Tick(ControlInput{}, 1.0/60)

	assert.Equal(t, StateFlying, s.State)
	assert.Equal(t, 1, resets)
	assert.Equal(t, initial.Pos, s.Aircraft.Pos)
	assert.InDelta(t, initial.Orient.W, s.Aircraft.Orient.W, 1e-9)
	assert.InDelta(t, initial.Orient.Y, s.Aircraft.Orient.Y, 1e-9)
	assert.True(t, s.Aircraft.Visible)
}

func TestManualResetCancelsPendingTimer(t *testing.T) {
	s := NewSimulation(1)
	s.ResetDelay = 20 * time.Millisecond
	resets := 0
	s.Events.Subscribe(EventReset, func(Event) { resets++ })

	s.Aircraft.Pos = Vec3{Y: craterFloor + 0.1}
	s.Aircraft.Vel = Vec3{Y: -30}
	s.Tick(ControlInput{}, 1.0/60)
	require.Equal(t, StateCrashing, s.State)

	s.Reset()
	assert.Equal(t, StateFlying, s.State)
	require.Equal(t, 1, resets)

	// The stale timer must not fire a second reset into the new flight.
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 5; i++ {
		s.Tick(ControlInput{}, 1.0/60)
	}
	assert.Equal(t, 1, resets)
}

func TestTickIgnoresNonPositiveDt(t *testing.T) {
	s := NewSimulation(1)
	s.Tick(ControlInput{}, 0)
	s.Tick(ControlInput{}, -1)
	assert.Equal(t, 0.0, s.Clock)
}

func TestHUDSnapshot(t *testing.T) {
	s := NewSimulation(1)
	s.Aircraft.Pos = Vec3{X: 0, Y: CraterFloorHeight + 25, Z: 0}
	s.Aircraft.Vel = Vec3{Z: 40}

	hud := s.HUD()
	assert.InDelta(t, 40.0, hud.Speed, 1e-9)
	assert.InDelta(t, 25.0, hud.Altitude, 1e-9)
	assert.False(t, hud.Crashing)

	// Below ground (mid-crash frame) the altitude readout clamps at zero.
	s.Aircraft.Pos.Y = CraterFloorHeight - 5
	s.State = StateCrashing
	hud = s.HUD()
	assert.Equal(t, 0.0, hud.Altitude)
	assert.True(t, hud.Crashing)
}

func TestHUDAltitudeOverWater(t *testing.T) {
	s := NewSimulation(1)
	// Point where the terrain dips below the water line; altitude is
	// measured to the water surface, not the submerged bed.
	x, z := 235.6, 0.0
	require.Less(t, HeightAt(x, z), WaterLevel)
	s.Aircraft.Pos = Vec3{X: x, Y: 12, Z: z}
	assert.InDelta(t, 12.0, s.HUD().Altitude, 1e-9)
}
