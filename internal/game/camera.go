package game

import "math"

const (
	cameraBack      = 20.0
	cameraUp        = 7.0
	cameraLookAhead = 12.0
	cameraLag       = 4.0 // 1/s exponential follow rate
)

// Camera is a lagged chase camera with crash shake.
type Camera struct {
	Pos  Vec3
	look Vec3

	shakeTimer     float64
	shakeIntensity float64
	shake          Vec3
}

func NewCamera(a *Aircraft) *Camera {
	fwd := a.Forward()
	return &Camera{
		Pos:  a.Pos.Sub(fwd.Mul(cameraBack)).Add(Vec3{Y: cameraUp}),
		look: a.Pos,
	}
}

// AddShake triggers shake; stronger/longer requests win over pending ones.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.shakeIntensity {
		c.shakeIntensity = intensity
	}
	if duration > c.shakeTimer {
		c.shakeTimer = duration
	}
}

// Update lerps toward the chase pose and decays shake. The camera keeps
// moving while the aircraft is frozen in a crash, which is what sells the
// pause.
func (c *Camera) Update(a *Aircraft, dt float64, seed uint64) {
	fwd := a.Forward()
	desired := a.Pos.Sub(fwd.Mul(cameraBack)).Add(Vec3{Y: cameraUp})

	// Keep the eye out of the terrain.
	floor := GroundAt(desired.X, desired.Z) + 2.0
	if desired.Y < floor {
		desired.Y = floor
	}

	k := 1 - math.Exp(-cameraLag*dt)
	c.Pos = c.Pos.Add(desired.Sub(c.Pos).Mul(k))
	c.look = c.look.Add(a.Pos.Add(fwd.Mul(cameraLookAhead)).Sub(c.look).Mul(k))

	if c.shakeTimer <= 0 {
		c.shake = Vec3{}
		c.shakeIntensity = 0
		return
	}
	c.shakeTimer -= dt
	if c.shakeTimer < 0 {
		c.shakeTimer = 0
	}
	t := c.shakeTimer
	rr := NewRand(seed ^ uint64(t*10000))
	mag := c.shakeIntensity * (t / (t + 0.08))
	c.shake = Vec3{
		X: rr.RangeF(-mag, mag),
		Y: rr.RangeF(-mag, mag),
		Z: rr.RangeF(-mag, mag),
	}
}

// View returns the view matrix with shake applied.
func (c *Camera) View() Mat4 {
	return LookAtMat4(c.Pos.Add(c.shake), c.look, Vec3{Y: 1})
}
