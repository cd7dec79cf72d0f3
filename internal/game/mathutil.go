package game

import "math"

// splitmix64 is a fast, high-quality 64-bit mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// hash2D returns a deterministic 64-bit hash for (x,y) under the given seed.
func hash2D(seed uint64, x, y int) uint64 {
	ux := uint64(uint32(x))
	uy := uint64(uint32(y))
	h := seed
	h ^= ux * 0x9E3779B185EBCA87
	h ^= uy * 0xC2B2AE3D27D4EB4F
	return splitmix64(h)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// smoothstep maps t through the classic 3t²−2t³ curve after clamping to [0,1].
func smoothstep(t float64) float64 {
	t = clampF(t, 0, 1)
	return t * t * (3 - 2*t)
}

func lerpF(a, b, t float64) float64 { return a + (b-a)*t }

// Vec3 is a 3D vector in world units (Y up).
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3    { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3    { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) LenSq() float64     { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }
func (v Vec3) Len() float64       { return math.Sqrt(v.LenSq()) }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Normalized returns the unit vector, or zero when the squared length is
// below epsilon (avoids NaN propagation from near-zero divisions).
func (v Vec3) Normalized() Vec3 {
	l2 := v.LenSq()
	if l2 < 1e-12 {
		return Vec3{}
	}
	inv := 1.0 / math.Sqrt(l2)
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// Quat is a rotation quaternion (W scalar part).
type Quat struct {
	W, X, Y, Z float64
}

func QuatIdentity() Quat { return Quat{W: 1} }

// QuatAxisAngle builds a rotation of angle radians about the given unit axis.
func QuatAxisAngle(axis Vec3, angle float64) Quat {
	half := angle * 0.5
	s := math.Sin(half)
	return Quat{
		W: math.Cos(half),
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
	}
}

func (q Quat) Mul(o Quat) Quat {
	return Quat{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

func (q Quat) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalized rescales to unit norm; identity is returned for degenerate input.
func (q Quat) Normalized() Quat {
	n2 := q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z
	if n2 < 1e-12 {
		return QuatIdentity()
	}
	inv := 1.0 / math.Sqrt(n2)
	return Quat{W: q.W * inv, X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv}
}

// Rotate applies the rotation to v (q must be unit norm).
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2w(u×v) + 2(u×(u×v)) with u the vector part.
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(u.Cross(t))
}

// Mat4 is a 4x4 matrix in column-major order (OpenGL convention).
type Mat4 [16]float64

func IdentityMat4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// PerspectiveMat4 builds a right-handed projection; fovy in degrees.
func PerspectiveMat4(fovy, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fovy*math.Pi/360.0)
	nf := 1.0 / (near - far)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// LookAtMat4 creates a right-handed view matrix.
func LookAtMat4(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalized()
	s := f.Cross(up)
	if s.LenSq() < 1e-12 {
		alt := Vec3{X: 1}
		if math.Abs(f.X) >= 0.9 {
			alt = Vec3{Y: 1}
		}
		s = f.Cross(alt)
	}
	s = s.Normalized()
	u := s.Cross(f)
	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

func TranslationMat4(v Vec3) Mat4 {
	m := IdentityMat4()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// RotationMat4 converts a unit quaternion to a rotation matrix.
func RotationMat4(q Quat) Mat4 {
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, yy, zz := q.X*x2, q.Y*y2, q.Z*z2
	xy, xz, yz := q.X*y2, q.X*z2, q.Y*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2
	return Mat4{
		1 - (yy + zz), xy + wz, xz - wy, 0,
		xy - wz, 1 - (xx + zz), yz + wx, 0,
		xz + wy, yz - wx, 1 - (xx + yy), 0,
		0, 0, 0, 1,
	}
}

// Mul performs column-major matrix multiplication: result = m * other.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * o[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// F32 converts to the float32 layout gl.UniformMatrix4fv expects.
func (m Mat4) F32() [16]float32 {
	var out [16]float32
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}

// Rand is a tiny deterministic RNG (xorshift64*).
type Rand struct {
	s uint64
}

func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = 1
	}
	return &Rand{s: seed}
}

func (r *Rand) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.NextU64() % uint64(n))
}

func (r *Rand) Float64() float64 {
	return float64(r.NextU64()>>11) * (1.0 / (1 << 53))
}

func (r *Rand) RangeF(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + (max-min)*r.Float64()
}

// UnitVec3 returns a uniformly distributed random unit vector.
func (r *Rand) UnitVec3() Vec3 {
	// Marsaglia: uniform on the sphere from two uniforms.
	z := r.RangeF(-1, 1)
	a := r.RangeF(0, 2*math.Pi)
	s := math.Sqrt(1 - z*z)
	return Vec3{X: s * math.Cos(a), Y: s * math.Sin(a), Z: z}
}
