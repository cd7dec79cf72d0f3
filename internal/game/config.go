package game

// World extents (world units). The aircraft wraps at ±WorldBoundary.
const (
	WorldBoundary = 600.0
	WaterLevel    = 0.0
)

// Window defaults.
const (
	WindowWidth  = 1024
	WindowHeight = 768
)

// Terrain shape. HeightAt is a pure function of these; they are compile-time
// constants so the generated mesh and the collision samples can never diverge.
const (
	NoiseHeight       = 8.0
	NoiseFreqLow      = 0.02
	NoiseFreqHigh     = 0.07
	NoiseHighScale    = 0.35
	VolcanoPeak       = 110.0
	VolcanoFalloff    = 3200.0 // squared-distance divisor of the cone
	CraterDepth       = 30.0
	CraterInnerRadius = 24.0
	CraterOuterRadius = 40.0
)

// Terrain mesh / vegetation.
const (
	TerrainStep     = 10.0 // grid spacing of the render mesh
	TreeCount       = 450
	TreeMaxSlope    = 2.2 // finite-difference rise over 2 units
	TreeMinAltitude = WaterLevel + 2.0
)

// Particle pool capacities. Sized for peak emission rate times lifetime with
// headroom; exceeding that wraps the write cursor onto live particles, which
// shows as early truncation rather than an error.
const (
	MaxTrailParticles     = 500 // per wingtip
	MaxSmokeParticles     = 600
	MaxEngineParticles    = 700
	MaxExplosionParticles = 2500
)

// Aircraft geometry (body space: +Z forward, +Y up).
const (
	WingSpan     = 7.0
	NozzleOffset = 1.1 // lateral distance of each engine nozzle
	NozzleBack   = 3.2 // nozzles sit this far behind the body origin
)

// Crash handling.
const (
	GroundBuffer       = 1.5
	CrashVelThreshold  = -10.0
	CrashResetDelayMS  = 500
	StartAltitudeAbove = 40.0
)

// Tuning is the flat set of live-adjustable simulation parameters. One
// instance is owned by the Simulation; writes between ticks take effect on
// the next tick without a restart.
type Tuning struct {
	// Flight dynamics.
	PitchRate     float64 // rad/s at full stick
	RollRate      float64
	YawRate       float64
	AdjustFactor  float64 // 1/s approach rate toward target angular velocity
	AngularDamp   float64 // per-60Hz-tick damping constant
	ThrustAccel   float64
	Afterburner   float64 // thrust and speed-cap multiplier
	BrakeForce    float64
	DragFactor    float64 // 1/s proportional drag
	MaxSpeed      float64
	MinSpeed      float64 // below this, idle decay kicks in
	IdleDecay     float64
	SnapEpsilon   float64 // speed below which idle decay snaps to zero
	ThrustEpsilon float64

	// Wingtip trails.
	TrailRate       float64 // particles/s
	TrailLifetime   float64
	TrailTrigSpeed  float64
	TrailTrigAngVel float64
	TrailSize       float64

	// Volcano smoke.
	SmokeRate       float64
	SmokeLifetime   float64
	SmokeRiseSpeed  float64
	SmokeSpread     float64
	SmokeTurbulence float64 // per-second velocity jitter on live particles
	SmokeSize       float64

	// Engine burn.
	EngineRate      float64
	EngineLifetime  float64
	EngineBackSpeed float64
	EngineSpread    float64
	EngineSize      float64

	// Crash explosion.
	ExplosionCount    int
	ExplosionLifetime float64
	ExplosionSpeed    float64
	ExplosionSpread   float64
	ExplosionSize     float64

	// Particle colors.
	TrailColor     RGB
	SmokeColor     RGB
	EngineColor    RGB
	ExplosionColor RGB
}

// DefaultTuning returns the hand-tuned stock parameters.
func DefaultTuning() *Tuning {
	return &Tuning{
		PitchRate:     1.3,
		RollRate:      2.2,
		YawRate:       0.9,
		AdjustFactor:  5.0,
		AngularDamp:   0.92,
		ThrustAccel:   45.0,
		Afterburner:   2.0,
		BrakeForce:    35.0,
		DragFactor:    0.35,
		MaxSpeed:      65.0,
		MinSpeed:      0.5,
		IdleDecay:     0.9,
		SnapEpsilon:   0.1,
		ThrustEpsilon: 0.1,

		TrailRate:       140.0,
		TrailLifetime:   1.6,
		TrailTrigSpeed:  30.0,
		TrailTrigAngVel: 0.9,
		TrailSize:       1.4,

		SmokeRate:       55.0,
		SmokeLifetime:   6.0,
		SmokeRiseSpeed:  9.0,
		SmokeSpread:     2.6,
		SmokeTurbulence: 2.4,
		SmokeSize:       6.0,

		EngineRate:      320.0,
		EngineLifetime:  0.45,
		EngineBackSpeed: 14.0,
		EngineSpread:    2.2,
		EngineSize:      1.8,

		ExplosionCount:    2000,
		ExplosionLifetime: 2.4,
		ExplosionSpeed:    22.0,
		ExplosionSpread:   14.0,
		ExplosionSize:     2.6,

		TrailColor:     RGB{R: 235, G: 240, B: 248},
		SmokeColor:     RGB{R: 95, G: 88, B: 86},
		EngineColor:    RGB{R: 255, G: 168, B: 48},
		ExplosionColor: RGB{R: 255, G: 120, B: 32},
	}
}
