package game

import (
	"time"

	"github.com/rs/zerolog/log"
)

// CrashState is the aircraft lifecycle. There is no separate reset-pending
// state; a pending reset is the owned timer handle below.
type CrashState int

const (
	StateFlying CrashState = iota
	StateCrashing
)

// HUDSnapshot is the read-only per-frame readout for the host UI.
type HUDSnapshot struct {
	Speed    float64
	Altitude float64 // above effective ground (terrain or water), never negative
	Crashing bool
}

// Simulation owns all mutable simulation state: the airframe, the crash
// state machine, the four particle systems and the simulation clock. All
// mutation happens inside Tick or Reset; the crash-reset timer is drained
// from the tick so there is no cross-goroutine write.
type Simulation struct {
	Tun      *Tuning
	Aircraft Aircraft
	State    CrashState
	Clock    float64 // elapsed simulation seconds

	Trail     *TrailEmitter
	Smoke     *SmokeEmitter
	Engine    *EngineEmitter
	Explosion *ExplosionEmitter

	Events *EventBus

	// Pending delayed reset. Scheduling always stops the previous handle
	// first, so at most one reset can ever be in flight.
	resetTimer *time.Timer
	ResetDelay time.Duration

	initial Aircraft
}

func NewSimulation(seed uint64) *Simulation {
	a := NewAircraft()
	return &Simulation{
		Tun:        DefaultTuning(),
		Aircraft:   a,
		initial:    a,
		State:      StateFlying,
		Trail:      NewTrailEmitter(),
		Smoke:      NewSmokeEmitter(seed),
		Engine:     NewEngineEmitter(seed),
		Explosion:  NewExplosionEmitter(seed),
		Events:     NewEventBus(),
		ResetDelay: CrashResetDelayMS * time.Millisecond,
	}
}

// Tick advances the whole simulation by dt seconds. dt is clamped to 0.1 s
// so frame hitches can't blow up the integration. Each sub-step is isolated:
// a panic in one is logged and that step skipped for this frame, the rest of
// the tick still runs.
func (s *Simulation) Tick(in ControlInput, dt float64) {
	if dt <= 0 {
		return
	}
	if dt > 0.1 {
		dt = 0.1
	}

	s.drainReset()
	s.Clock += dt

	if s.State == StateFlying {
		s.step("flight", func() { stepFlight(&s.Aircraft, in, dt, s.Tun) })
		s.step("collision", s.resolveGround)
	}

	// Particle systems age regardless of crash state; emission from the
	// airframe stops while it is hidden.
	active := s.State == StateFlying
	s.step("trail", func() { s.Trail.Update(&s.Aircraft, active, dt, s.Clock, s.Tun) })
	s.step("smoke", func() { s.Smoke.Update(dt, s.Clock, s.Tun) })
	s.step("engine", func() { s.Engine.Update(&s.Aircraft, in, active, dt, s.Clock, s.Tun) })
	s.step("explosion", func() { s.Explosion.Update(s.Clock, s.Tun) })
}

func (s *Simulation) step(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("step", name).Interface("panic", r).Msg("tick step failed, skipped this frame")
		}
	}()
	fn()
}

// resolveGround handles terrain/water contact: a steep descent is a crash,
// anything gentler is a clamped touch with a damped bounce.
func (s *Simulation) resolveGround() {
	a := &s.Aircraft
	floor := GroundAt(a.Pos.X, a.Pos.Z) + GroundBuffer
	if a.Pos.Y >= floor {
		return
	}
	if a.Vel.Y < CrashVelThreshold {
		s.enterCrash()
		return
	}
	a.Pos.Y = floor
	if a.Vel.Y < 0 {
		a.Vel.Y *= -0.2
		a.Vel.X *= 0.8
		a.Vel.Z *= 0.8
		a.AngVel = a.AngVel.Mul(0.5)
	}
}

// enterCrash fires exactly once per crash; repeated contact frames while
// already crashing fall through the state guard.
func (s *Simulation) enterCrash() {
	if s.State == StateCrashing {
		return
	}
	s.State = StateCrashing
	a := &s.Aircraft
	a.Vel = Vec3{}
	a.AngVel = Vec3{}
	a.Visible = false

	s.Explosion.Burst(a.Pos, s.Clock, s.Tun)
	s.Events.Emit(Event{Type: EventCrashed, Pos: a.Pos})
	s.scheduleReset()
}

// scheduleReset arms the wall-clock reset timer, replacing any pending one.
func (s *Simulation) scheduleReset() {
	if s.resetTimer != nil {
		s.resetTimer.Stop()
	}
	s.resetTimer = time.NewTimer(s.ResetDelay)
}

// drainReset applies a fired reset timer. The timer channel is consumed here,
// on the tick path, so the deferred callback can never race the frame loop.
func (s *Simulation) drainReset() {
	if s.resetTimer == nil {
		return
	}
	select {
	case <-s.resetTimer.C:
		s.resetTimer = nil
		s.applyReset()
	default:
	}
}

// Reset restores the initial flight immediately, canceling any pending
// delayed reset so a stale timer can't fire into the fresh session.
func (s *Simulation) Reset() {
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
	s.applyReset()
}

func (s *Simulation) applyReset() {
	s.Aircraft = s.initial
	s.State = StateFlying
	s.Events.Emit(Event{Type: EventReset, Pos: s.Aircraft.Pos})
}

// HUD returns the current speed/altitude readout.
func (s *Simulation) HUD() HUDSnapshot {
	a := &s.Aircraft
	alt := a.Pos.Y - GroundAt(a.Pos.X, a.Pos.Z)
	if alt < 0 {
		alt = 0
	}
	return HUDSnapshot{
		Speed:    a.Speed(),
		Altitude: alt,
		Crashing: s.State == StateCrashing,
	}
}
