package game

// spawnUnset marks an empty ring-buffer slot.
const spawnUnset = -1.0

// retiredY parks expired particles far below the frustum so a stale GPU
// upload can never show them.
const retiredY = -100000.0

// FadeLaw maps the age ratio r = age/lifetime (0..1 while alive) to an alpha
// and a size multiplier. Each emitter supplies its own law.
type FadeLaw func(r float64) (alpha, size float64)

// RingBuffer is a fixed-capacity particle pool with a single write cursor.
// Emission writes at the cursor and advances it mod capacity; there is no
// occupancy check, so sustained emission beyond capacity/lifetime overwrites
// the oldest live particle. That truncation is accepted behavior, never an
// error; after construction no operation here can fail or allocate.
//
// Authoritative per-slot state is position/velocity/spawn time/base size;
// alpha is derived every tick from age. The flat float32 views are what the
// renderer uploads.
type RingBuffer struct {
	capacity int
	write    int

	pos   []Vec3
	vel   []Vec3
	spawn []float64 // simulation seconds; spawnUnset = empty
	base  []float64 // per-particle size factor set at emit time

	law       FadeLaw
	kinematic bool // true: render pos = stored pos + vel·age

	// GPU-facing views, refreshed by Tick.
	XYZ   []float32 // 3 floats per slot
	Alpha []float32
	Size  []float32
}

// NewRingBuffer builds a pool of the given capacity with all slots retired.
func NewRingBuffer(capacity int, kinematic bool, law FadeLaw) *RingBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	rb := &RingBuffer{
		capacity:  capacity,
		pos:       make([]Vec3, capacity),
		vel:       make([]Vec3, capacity),
		spawn:     make([]float64, capacity),
		base:      make([]float64, capacity),
		law:       law,
		kinematic: kinematic,
		XYZ:       make([]float32, capacity*3),
		Alpha:     make([]float32, capacity),
		Size:      make([]float32, capacity),
	}
	for i := range rb.spawn {
		rb.spawn[i] = spawnUnset
		rb.XYZ[i*3+1] = retiredY
	}
	return rb
}

func (rb *RingBuffer) Cap() int        { return rb.capacity }
func (rb *RingBuffer) WriteIndex() int { return rb.write }

// Live counts slots holding an unexpired timestamp. Linear scan; used by the
// HUD and tests, not per-emission.
func (rb *RingBuffer) Live() int {
	n := 0
	for _, s := range rb.spawn {
		if s != spawnUnset {
			n++
		}
	}
	return n
}

// Emit claims the slot under the write cursor and advances it. The slot
// becomes immediately visible at full alpha; Tick refines it next frame.
func (rb *RingBuffer) Emit(pos, vel Vec3, size, now float64) {
	i := rb.write
	rb.pos[i] = pos
	rb.vel[i] = vel
	rb.spawn[i] = now
	rb.base[i] = size

	rb.XYZ[i*3] = float32(pos.X)
	rb.XYZ[i*3+1] = float32(pos.Y)
	rb.XYZ[i*3+2] = float32(pos.Z)
	rb.Alpha[i] = 1
	rb.Size[i] = float32(size)

	rb.write++
	if rb.write >= rb.capacity {
		rb.write = 0
	}
}

// SpawnAt reports the timestamp of slot i, or spawnUnset. Test hook.
func (rb *RingBuffer) SpawnAt(i int) float64 { return rb.spawn[i] }

// VelAt returns a pointer to slot i's stored velocity so an emitter can
// integrate drift into it (volcano turbulence does this every tick).
func (rb *RingBuffer) VelAt(i int) *Vec3 { return &rb.vel[i] }

// Tick ages every live slot against the given lifetime. Expired slots are
// retired: sentinel timestamp, zero alpha, parked off-view. Live slots get
// alpha/size from the fade law and, for kinematic buffers, a render position
// of stored position + velocity·age. Retirement is idempotent; a retired
// slot stays at alpha 0 until re-emitted.
func (rb *RingBuffer) Tick(now, lifetime float64) {
	if lifetime <= 0 {
		return
	}
	for i := 0; i < rb.capacity; i++ {
		ts := rb.spawn[i]
		if ts == spawnUnset {
			continue
		}
		age := now - ts
		if age > lifetime {
			rb.spawn[i] = spawnUnset
			rb.Alpha[i] = 0
			rb.XYZ[i*3+1] = retiredY
			continue
		}
		r := age / lifetime
		if r < 0 {
			r = 0
		}
		alpha, sizeMul := rb.law(r)
		rb.Alpha[i] = float32(clampF(alpha, 0, 1))
		rb.Size[i] = float32(rb.base[i] * sizeMul)

		p := rb.pos[i]
		if rb.kinematic {
			p = p.Add(rb.vel[i].Mul(age))
		}
		rb.XYZ[i*3] = float32(p.X)
		rb.XYZ[i*3+1] = float32(p.Y)
		rb.XYZ[i*3+2] = float32(p.Z)
	}
}

// forEachLive visits live slots with their index and timestamp.
func (rb *RingBuffer) forEachLive(fn func(i int, spawn float64)) {
	for i := 0; i < rb.capacity; i++ {
		if rb.spawn[i] != spawnUnset {
			fn(i, rb.spawn[i])
		}
	}
}
