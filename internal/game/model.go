package game

// BuildAircraftMesh returns a small procedural delta-wing in body space
// (+Z nose, +Y up), interleaved [x y z r g b]. Triangles are wound loosely;
// the renderer draws it with culling off like everything else.
func BuildAircraftMesh() []float32 {
	verts := make([]float32, 0, 30*6)
	push := func(p Vec3, c RGB) {
		r, g, b := c.GL()
		verts = append(verts, float32(p.X), float32(p.Y), float32(p.Z), r, g, b)
	}
	tri := func(a, b, c Vec3, col RGB) {
		push(a, col)
		push(b, col)
		push(c, col)
	}

	nose := Vec3{Z: 4.2}
	tailL := Vec3{X: -1.0, Z: -3.4}
	tailR := Vec3{X: 1.0, Z: -3.4}
	spineT := Vec3{Y: 0.8, Z: -0.6}
	belly := Vec3{Y: -0.5, Z: 0.2}

	// Fuselage: four panels around the spine.
	tri(nose, spineT, tailL, Palette.Fuselage)
	tri(nose, spineT, tailR, Palette.Fuselage)
	tri(nose, belly, tailL, Palette.Fuselage.Add(-24, -24, -24))
	tri(nose, belly, tailR, Palette.Fuselage.Add(-24, -24, -24))
	tri(spineT, tailL, tailR, Palette.Fuselage.Add(-12, -12, -12))
	tri(belly, tailL, tailR, Palette.Fuselage.Add(-32, -32, -32))

	// Delta wings out to the tips used by the trail emitter.
	wingL := Vec3{X: -WingSpan / 2, Z: -2.2}
	wingR := Vec3{X: WingSpan / 2, Z: -2.2}
	rootF := Vec3{Z: 1.6}
	rootB := Vec3{Z: -2.6}
	tri(rootF, rootB, wingL, Palette.Wing)
	tri(rootF, rootB, wingR, Palette.Wing)

	// Tail fin.
	finBase := Vec3{Z: -2.6}
	finBack := Vec3{Z: -3.4}
	finTip := Vec3{Y: 1.6, Z: -3.3}
	tri(finBase, finBack, finTip, Palette.Wing.Add(-18, -18, -18))

	return verts
}
