package game

import "math"

// Fade laws, one per particle system. r is age/lifetime in [0,1].

func trailLaw(r float64) (float64, float64) {
	return math.Max(0, 1-r), 1
}

func smokeLaw(r float64) (float64, float64) {
	// Smoke swells mid-life and thins out quadratically.
	return math.Max(0, 1-r*r), math.Sin(math.Pi * r)
}

func engineLaw(r float64) (float64, float64) {
	return math.Max(0, 1-r), math.Max(0, 1-r*r)
}

func explosionLaw(r float64) (float64, float64) {
	return math.Max(0, 1-r), math.Max(0, 1-r)
}

// spawnCount converts an emission rate into this frame's particle count.
func spawnCount(rate, dt float64) int {
	if rate <= 0 || dt <= 0 {
		return 0
	}
	return int(math.Ceil(rate * dt))
}

// TrailEmitter drives the two wingtip condensation trails. Trail particles
// are frozen at their emit position and only fade, so the buffers are
// non-kinematic.
type TrailEmitter struct {
	Left  *RingBuffer
	Right *RingBuffer
}

func NewTrailEmitter() *TrailEmitter {
	return &TrailEmitter{
		Left:  NewRingBuffer(MaxTrailParticles, false, trailLaw),
		Right: NewRingBuffer(MaxTrailParticles, false, trailLaw),
	}
}

// Update emits at the wingtips when the aircraft is fast, or moderately fast
// and turning hard, then ages both pools. active is false while crashing.
func (e *TrailEmitter) Update(a *Aircraft, active bool, dt, now float64, tn *Tuning) {
	if active {
		speed := a.Speed()
		turning := a.AngVel.Len() > tn.TrailTrigAngVel
		if speed > tn.TrailTrigSpeed || (speed > 0.5*tn.TrailTrigSpeed && turning) {
			n := spawnCount(tn.TrailRate, dt)
			lTip := a.Pos.Add(a.Orient.Rotate(Vec3{X: -WingSpan / 2, Z: -0.4}))
			rTip := a.Pos.Add(a.Orient.Rotate(Vec3{X: WingSpan / 2, Z: -0.4}))
			for i := 0; i < n; i++ {
				e.Left.Emit(lTip, Vec3{}, tn.TrailSize, now)
				e.Right.Emit(rTip, Vec3{}, tn.TrailSize, now)
			}
		}
	}
	e.Left.Tick(now, tn.TrailLifetime)
	e.Right.Tick(now, tn.TrailLifetime)
}

// SmokeEmitter is the volcano plume: a continuous column out of the crater
// with buoyant turbulence stirred into the stored velocities every tick.
// This is the only system that mutates particle velocity after emission.
type SmokeEmitter struct {
	Buf *RingBuffer
	rng *Rand
}

func NewSmokeEmitter(seed uint64) *SmokeEmitter {
	return &SmokeEmitter{
		Buf: NewRingBuffer(MaxSmokeParticles, true, smokeLaw),
		rng: NewRand(seed ^ 0x5A0CE),
	}
}

func (e *SmokeEmitter) Update(dt, now float64, tn *Tuning) {
	n := spawnCount(tn.SmokeRate, dt)
	vent := Vec3{Y: CraterFloorHeight + 1}
	for i := 0; i < n; i++ {
		pos := vent.Add(Vec3{
			X: e.rng.RangeF(-CraterInnerRadius*0.6, CraterInnerRadius*0.6),
			Z: e.rng.RangeF(-CraterInnerRadius*0.6, CraterInnerRadius*0.6),
		})
		vel := Vec3{
			X: e.rng.RangeF(-tn.SmokeSpread, tn.SmokeSpread),
			Y: tn.SmokeRiseSpeed + e.rng.RangeF(-2, 2),
			Z: e.rng.RangeF(-tn.SmokeSpread, tn.SmokeSpread),
		}
		e.Buf.Emit(pos, vel, tn.SmokeSize, now)
	}

	// Turbulence drift on everything still alive.
	jit := tn.SmokeTurbulence * dt
	if jit > 0 {
		e.Buf.forEachLive(func(i int, _ float64) {
			v := e.Buf.VelAt(i)
			v.X += e.rng.RangeF(-jit, jit)
			v.Y += e.rng.RangeF(-jit*0.5, jit)
			v.Z += e.rng.RangeF(-jit, jit)
		})
	}

	e.Buf.Tick(now, tn.SmokeLifetime)
}

// EngineEmitter is the dual-nozzle afterburner flame. One shared pool;
// emission alternates nozzles by loop parity.
type EngineEmitter struct {
	Buf *RingBuffer
	rng *Rand
}

func NewEngineEmitter(seed uint64) *EngineEmitter {
	return &EngineEmitter{
		Buf: NewRingBuffer(MaxEngineParticles, true, engineLaw),
		rng: NewRand(seed ^ 0xE4914E),
	}
}

func (e *EngineEmitter) Update(a *Aircraft, in ControlInput, active bool, dt, now float64, tn *Tuning) {
	if active && in.Thrust > tn.ThrustEpsilon {
		n := spawnCount(tn.EngineRate, dt)
		fwd := a.Forward()
		left := a.Pos.Add(a.Orient.Rotate(Vec3{X: -NozzleOffset, Z: -NozzleBack}))
		right := a.Pos.Add(a.Orient.Rotate(Vec3{X: NozzleOffset, Z: -NozzleBack}))
		bodyRight := a.Orient.Rotate(Vec3{X: 1})
		bodyUp := a.Orient.Rotate(Vec3{Y: 1})
		for i := 0; i < n; i++ {
			pos := left
			if i%2 == 1 {
				pos = right
			}
			vel := fwd.Mul(-tn.EngineBackSpeed).
				Add(bodyRight.Mul(e.rng.RangeF(-tn.EngineSpread, tn.EngineSpread))).
				Add(bodyUp.Mul(e.rng.RangeF(-tn.EngineSpread, tn.EngineSpread)))
			e.Buf.Emit(pos, vel, tn.EngineSize, now)
		}
	}
	e.Buf.Tick(now, tn.EngineLifetime)
}

// ExplosionEmitter is the one-shot crash burst.
type ExplosionEmitter struct {
	Buf *RingBuffer
	rng *Rand
}

func NewExplosionEmitter(seed uint64) *ExplosionEmitter {
	return &ExplosionEmitter{
		Buf: NewRingBuffer(MaxExplosionParticles, true, explosionLaw),
		rng: NewRand(seed ^ 0xB0057),
	}
}

// Burst emits the whole explosion in one call, isotropic random directions.
// The count is capped at the pool capacity; slots beyond it are untouched.
func (e *ExplosionEmitter) Burst(at Vec3, now float64, tn *Tuning) {
	count := tn.ExplosionCount
	if count > e.Buf.Cap() {
		count = e.Buf.Cap()
	}
	for i := 0; i < count; i++ {
		dir := e.rng.UnitVec3()
		speed := tn.ExplosionSpeed + e.rng.RangeF(-tn.ExplosionSpread, tn.ExplosionSpread)
		e.Buf.Emit(at, dir.Mul(speed), tn.ExplosionSize, now)
	}
}

func (e *ExplosionEmitter) Update(now float64, tn *Tuning) {
	e.Buf.Tick(now, tn.ExplosionLifetime)
}
