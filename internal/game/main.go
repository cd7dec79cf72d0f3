package game

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog/log"
)

// RunConfig is everything the host needs to start a session.
type RunConfig struct {
	Seed   uint64
	Width  int
	Height int
	Mute   bool
	Tun    *Tuning // nil = stock tuning
}

// RunDesktop owns the window and the frame loop: one synchronous
// update-and-render tick per swap, everything on the main OS thread.
func RunDesktop(cfg RunConfig) error {
	runtime.LockOSThread()

	if cfg.Width <= 0 {
		cfg.Width = WindowWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = WindowHeight
	}

	window, err := initWindow(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	if !cfg.Mute {
		if err := InitAudio(); err != nil {
			log.Warn().Err(err).Msg("audio init failed, continuing without sound")
		} else {
			StartEngineHum()
		}
	}

	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	sim := NewSimulation(cfg.Seed)
	if cfg.Tun != nil {
		sim.Tun = cfg.Tun
	}

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()
	rend.UploadScene(cfg.Seed)

	cam := NewCamera(&sim.Aircraft)
	input := NewInput()

	sim.Events.Subscribe(EventCrashed, func(e Event) {
		PlayExplosion()
		cam.AddShake(3.0, 0.8)
	})

	hudAcc := 0.0
	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}
		if input.JustPressed(window, glfw.KeyR) {
			sim.Reset()
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		in := input.Poll(window, dt)
		sim.Tick(in, dt)
		cam.Update(&sim.Aircraft, dt, cfg.Seed^uint64(now*1000))

		level := in.Thrust
		if in.Afterburner {
			level *= 1.4
		}
		SetEngineLevel(level)

		// Window-title HUD, throttled so the WM isn't hammered.
		hudAcc += dt
		if hudAcc >= 0.25 {
			hudAcc = 0
			window.SetTitle(FormatHUD(sim.HUD()))
		}

		rend.BeginFrame(fbW, fbH, cam)
		rend.DrawTerrain()
		rend.DrawTrees()
		rend.DrawAircraft(&sim.Aircraft)
		rend.DrawWater()

		// Soft smoke and trails alpha-blend; hot systems are additive.
		rend.DrawParticles(sim.Smoke.Buf, sim.Tun.SmokeColor, false)
		rend.DrawParticles(sim.Trail.Left, sim.Tun.TrailColor, false)
		rend.DrawParticles(sim.Trail.Right, sim.Tun.TrailColor, false)
		rend.DrawParticles(sim.Engine.Buf, sim.Tun.EngineColor, true)
		rend.DrawParticles(sim.Explosion.Buf, sim.Tun.ExplosionColor, true)

		window.SwapBuffers()
	}
	return nil
}
