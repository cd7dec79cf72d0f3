package game

import "math"

// ControlInput is one frame of normalized pilot input. Keyboard and any other
// source are adapted into this form before the dynamics ever run; the flight
// model never inspects where it came from.
type ControlInput struct {
	Pitch float64 // [-1,1], positive = nose up
	Roll  float64 // [-1,1], positive = right wing down
	Yaw   float64 // [-1,1], positive = nose left

	Thrust      float64 // [0,1]
	Brake       bool
	Afterburner bool
}

// Aircraft is the authoritative airframe state, owned by the Simulation and
// mutated only inside the tick (reset overwrites it unconditionally).
type Aircraft struct {
	Pos     Vec3
	Orient  Quat // unit norm after every mutation
	Vel     Vec3 // world space
	AngVel  Vec3 // body-rate proxy, rad/s per axis (X=pitch, Y=yaw, Z=roll)
	Visible bool
}

// NewAircraft spawns at the default start pose: level flight attitude at a
// fixed offset from the volcano, facing it.
func NewAircraft() Aircraft {
	start := Vec3{X: -WorldBoundary * 0.4, Z: -WorldBoundary * 0.4}
	start.Y = GroundAt(start.X, start.Z) + StartAltitudeAbove
	return Aircraft{
		Pos:     start,
		Orient:  QuatAxisAngle(Vec3{Y: 1}, math.Pi/4),
		Visible: true,
	}
}

// Forward returns the world-space nose direction (+Z in body space).
func (a *Aircraft) Forward() Vec3 {
	return a.Orient.Rotate(Vec3{Z: 1})
}

// Speed is the velocity magnitude in world units/s.
func (a *Aircraft) Speed() float64 { return a.Vel.Len() }

// stepFlight advances the flight model by dt seconds. dt is assumed already
// clamped by the caller. The aircraft is untouched while crashing; the
// Simulation skips this call entirely in that state.
func stepFlight(a *Aircraft, in ControlInput, dt float64, tn *Tuning) {
	// Target body rates from stick deflection, approached first-order.
	target := Vec3{
		X: in.Pitch * tn.PitchRate,
		Y: in.Yaw * tn.YawRate,
		Z: in.Roll * tn.RollRate,
	}
	a.AngVel = a.AngVel.Add(target.Sub(a.AngVel).Mul(tn.AdjustFactor * dt))

	// Damping constant is defined per 60 Hz tick; exponentiate so behavior is
	// frame-rate independent.
	damp := math.Pow(tn.AngularDamp, dt*60)
	a.AngVel = a.AngVel.Mul(damp)

	// Compose incremental body-axis rotations in fixed order: yaw, pitch, roll.
	a.Orient = a.Orient.
		Mul(QuatAxisAngle(Vec3{Y: 1}, a.AngVel.Y*dt)).
		Mul(QuatAxisAngle(Vec3{X: 1}, a.AngVel.X*dt)).
		Mul(QuatAxisAngle(Vec3{Z: 1}, a.AngVel.Z*dt)).
		Normalized()

	// Thrust along the nose.
	thrust := in.Thrust * tn.ThrustAccel
	if in.Afterburner {
		thrust *= tn.Afterburner
	}
	a.Vel = a.Vel.Add(a.Forward().Mul(thrust * dt))

	// Braking opposes the current velocity direction.
	speed := a.Vel.Len()
	if in.Brake && speed > tn.SnapEpsilon {
		a.Vel = a.Vel.Sub(a.Vel.Normalized().Mul(tn.BrakeForce * dt))
	}

	// Proportional drag.
	a.Vel = a.Vel.Sub(a.Vel.Mul(tn.DragFactor * dt))

	// Speed cap, afterburner-scaled; rescale preserves direction.
	maxSpeed := tn.MaxSpeed
	if in.Afterburner {
		maxSpeed *= tn.Afterburner
	}
	speed = a.Vel.Len()
	if speed > maxSpeed {
		a.Vel = a.Vel.Mul(maxSpeed / speed)
	}

	// Idle decay: with no thrust and no brake at low speed, bleed velocity to
	// a dead stop instead of creeping forever. Angular velocity is left alone
	// here on purpose, so a slow attitude drift at standstill is possible.
	if in.Thrust < tn.ThrustEpsilon && !in.Brake && speed < tn.MinSpeed {
		a.Vel = a.Vel.Mul(tn.IdleDecay)
		if a.Vel.Len() < tn.SnapEpsilon {
			a.Vel = Vec3{}
		}
	}

	a.Pos = a.Pos.Add(a.Vel.Mul(dt))

	// Horizontal wraparound: teleport to the opposite boundary, one unit in.
	if a.Pos.X > WorldBoundary {
		a.Pos.X = -WorldBoundary + 1
	} else if a.Pos.X < -WorldBoundary {
		a.Pos.X = WorldBoundary - 1
	}
	if a.Pos.Z > WorldBoundary {
		a.Pos.Z = -WorldBoundary + 1
	} else if a.Pos.Z < -WorldBoundary {
		a.Pos.Z = WorldBoundary - 1
	}
}
