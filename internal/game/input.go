package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Input adapts raw keyboard state into one normalized ControlInput per frame.
// Throttle is the only stateful part: it ramps toward held/released instead
// of stepping, which reads as a spooling engine.
type Input struct {
	thrust   float64
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Poll reads the current key state. Controls: arrows or WASD pitch/roll,
// Q/E yaw, Shift throttle up (released throttle bleeds off), Space
// afterburner, B brake.
func (in *Input) Poll(window *glfw.Window, dt float64) ControlInput {
	held := func(keys ...glfw.Key) bool {
		for _, k := range keys {
			if window.GetKey(k) == glfw.Press {
				return true
			}
		}
		return false
	}

	var c ControlInput

	if held(glfw.KeyDown, glfw.KeyS) {
		c.Pitch += 1
	}
	if held(glfw.KeyUp, glfw.KeyW) {
		c.Pitch -= 1
	}
	if held(glfw.KeyRight, glfw.KeyD) {
		c.Roll += 1
	}
	if held(glfw.KeyLeft, glfw.KeyA) {
		c.Roll -= 1
	}
	if held(glfw.KeyQ) {
		c.Yaw += 1
	}
	if held(glfw.KeyE) {
		c.Yaw -= 1
	}

	if held(glfw.KeyLeftShift, glfw.KeyRightShift) {
		in.thrust += 1.5 * dt
	} else {
		in.thrust -= 1.0 * dt
	}
	in.thrust = clampF(in.thrust, 0, 1)
	c.Thrust = in.thrust

	c.Brake = held(glfw.KeyB)
	c.Afterburner = held(glfw.KeySpace)
	return c
}
