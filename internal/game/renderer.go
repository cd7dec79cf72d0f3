package game

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

const (
	fovDegrees = 60.0
	nearPlane  = 0.5
	farPlane   = 2600.0
	fogDensity = 0.00075
	waterAlpha = 0.72
)

type staticMesh struct {
	vao   uint32
	vbo   uint32
	count int32
}

// Renderer owns the GL programs and buffers. Static geometry (terrain, water,
// trees, aircraft) is uploaded once; particle buffers are small and get
// re-uploaded every frame, which beats dirty-range tracking.
type Renderer struct {
	meshProg   uint32
	mUModel    int32
	mUView     int32
	mUProj     int32
	mUFogColor int32
	mUFogDens  int32
	mUAlpha    int32

	spriteProg uint32
	sUView     int32
	sUProj     int32
	sUPointScl int32
	sUColor    int32

	glowProg   uint32
	gUView     int32
	gUProj     int32
	gUPointScl int32
	gUColor    int32

	particleVAO uint32
	particleVBO uint32
	scratch     []float32

	terrain  staticMesh
	water    staticMesh
	trees    staticMesh
	aircraft staticMesh

	view       Mat4
	proj       Mat4
	pointScale float32
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{}

	var err error
	if r.meshProg, err = newProgram(meshVertSrc, meshFragSrc); err != nil {
		return nil, err
	}
	r.mUModel = gl.GetUniformLocation(r.meshProg, gl.Str("uModel\x00"))
	r.mUView = gl.GetUniformLocation(r.meshProg, gl.Str("uView\x00"))
	r.mUProj = gl.GetUniformLocation(r.meshProg, gl.Str("uProj\x00"))
	r.mUFogColor = gl.GetUniformLocation(r.meshProg, gl.Str("uFogColor\x00"))
	r.mUFogDens = gl.GetUniformLocation(r.meshProg, gl.Str("uFogDensity\x00"))
	r.mUAlpha = gl.GetUniformLocation(r.meshProg, gl.Str("uAlpha\x00"))

	if r.spriteProg, err = newProgram(particleVertSrc, particleFragSrc); err != nil {
		return nil, err
	}
	r.sUView = gl.GetUniformLocation(r.spriteProg, gl.Str("uView\x00"))
	r.sUProj = gl.GetUniformLocation(r.spriteProg, gl.Str("uProj\x00"))
	r.sUPointScl = gl.GetUniformLocation(r.spriteProg, gl.Str("uPointScale\x00"))
	r.sUColor = gl.GetUniformLocation(r.spriteProg, gl.Str("uColor\x00"))

	if r.glowProg, err = newProgram(particleVertSrc, glowFragSrc); err != nil {
		return nil, err
	}
	r.gUView = gl.GetUniformLocation(r.glowProg, gl.Str("uView\x00"))
	r.gUProj = gl.GetUniformLocation(r.glowProg, gl.Str("uProj\x00"))
	r.gUPointScl = gl.GetUniformLocation(r.glowProg, gl.Str("uPointScale\x00"))
	r.gUColor = gl.GetUniformLocation(r.glowProg, gl.Str("uColor\x00"))

	// Dynamic particle buffer: [x y z size alpha] per vertex.
	gl.GenVertexArrays(1, &r.particleVAO)
	gl.BindVertexArray(r.particleVAO)
	gl.GenBuffers(1, &r.particleVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.particleVBO)
	const stride = 5 * 4
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 1, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, stride, 4*4)
	gl.BindVertexArray(0)

	return r, nil
}

func uploadStatic(verts []float32) staticMesh {
	var m staticMesh
	if len(verts) == 0 {
		return m
	}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	const stride = 6 * 4
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.BindVertexArray(0)
	m.count = int32(len(verts) / 6)
	return m
}

// UploadScene builds and uploads all static geometry for the given seed.
func (r *Renderer) UploadScene(seed uint64) {
	r.terrain = uploadStatic(BuildTerrainMesh(seed))
	r.water = uploadStatic(BuildWaterMesh())
	r.trees = uploadStatic(BuildTreeMesh(ScatterTrees(seed, TreeCount)))
	r.aircraft = uploadStatic(BuildAircraftMesh())
}

// BeginFrame sets up viewport, projection and clears to the fog/sky color.
func (r *Renderer) BeginFrame(fbW, fbH int, cam *Camera) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	skyR, skyG, skyB := Palette.Sky.GL()
	gl.ClearColor(skyR, skyG, skyB, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)

	aspect := float64(fbW) / float64(fbH)
	r.proj = PerspectiveMat4(fovDegrees, aspect, nearPlane, farPlane)
	r.view = cam.View()
	// Projection f-term times half the framebuffer height: perspective point
	// size attenuation matches mesh perspective.
	r.pointScale = float32(r.proj[5]) * float32(fbH) * 0.5
}

func (r *Renderer) drawMesh(m staticMesh, model Mat4, alpha float32) {
	if m.count == 0 {
		return
	}
	gl.UseProgram(r.meshProg)
	mm := model.F32()
	vm := r.view.F32()
	pm := r.proj.F32()
	gl.UniformMatrix4fv(r.mUModel, 1, false, &mm[0])
	gl.UniformMatrix4fv(r.mUView, 1, false, &vm[0])
	gl.UniformMatrix4fv(r.mUProj, 1, false, &pm[0])
	fr, fg, fb := Palette.Sky.GL()
	gl.Uniform3f(r.mUFogColor, fr, fg, fb)
	gl.Uniform1f(r.mUFogDens, fogDensity)
	gl.Uniform1f(r.mUAlpha, alpha)
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	gl.BindVertexArray(0)
}

func (r *Renderer) DrawTerrain() { r.drawMesh(r.terrain, IdentityMat4(), 1) }
func (r *Renderer) DrawTrees()   { r.drawMesh(r.trees, IdentityMat4(), 1) }

// DrawWater renders the translucent water plane; depth writes stay off so
// particles behind the surface still resolve.
func (r *Renderer) DrawWater() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	r.drawMesh(r.water, IdentityMat4(), waterAlpha)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

// DrawAircraft renders the airframe at its world pose.
func (r *Renderer) DrawAircraft(a *Aircraft) {
	if !a.Visible {
		return
	}
	model := TranslationMat4(a.Pos).Mul(RotationMat4(a.Orient))
	r.drawMesh(r.aircraft, model, 1)
}

// DrawParticles streams one ring buffer's GPU views and draws it as point
// sprites. Retired slots ride along at alpha 0, parked out of the frustum.
func (r *Renderer) DrawParticles(rb *RingBuffer, col RGB, additive bool) {
	n := rb.Cap()
	need := n * 5
	if cap(r.scratch) < need {
		r.scratch = make([]float32, need)
	}
	buf := r.scratch[:need]
	for i := 0; i < n; i++ {
		buf[i*5] = rb.XYZ[i*3]
		buf[i*5+1] = rb.XYZ[i*3+1]
		buf[i*5+2] = rb.XYZ[i*3+2]
		buf[i*5+3] = rb.Size[i]
		buf[i*5+4] = rb.Alpha[i]
	}

	prog, uView, uProj, uScale, uColor := r.spriteProg, r.sUView, r.sUProj, r.sUPointScl, r.sUColor
	if additive {
		prog, uView, uProj, uScale, uColor = r.glowProg, r.gUView, r.gUProj, r.gUPointScl, r.gUColor
	}
	gl.UseProgram(prog)
	vm := r.view.F32()
	pm := r.proj.F32()
	gl.UniformMatrix4fv(uView, 1, false, &vm[0])
	gl.UniformMatrix4fv(uProj, 1, false, &pm[0])
	gl.Uniform1f(uScale, r.pointScale)
	cr, cg, cb := col.GL()
	gl.Uniform3f(uColor, cr, cg, cb)

	gl.Enable(gl.BLEND)
	if additive {
		gl.BlendFunc(gl.ONE, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	gl.DepthMask(false)

	gl.BindVertexArray(r.particleVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.particleVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(buf)*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(n))
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

func (r *Renderer) Destroy() {
	gl.DeleteProgram(r.meshProg)
	gl.DeleteProgram(r.spriteProg)
	gl.DeleteProgram(r.glowProg)
	for _, m := range []staticMesh{r.terrain, r.water, r.trees, r.aircraft} {
		if m.vao != 0 {
			gl.DeleteVertexArrays(1, &m.vao)
			gl.DeleteBuffers(1, &m.vbo)
		}
	}
	gl.DeleteVertexArrays(1, &r.particleVAO)
	gl.DeleteBuffers(1, &r.particleVBO)
}
