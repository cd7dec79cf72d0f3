package game

import "math"

// CraterFloorHeight is the flat elevation inside the inner crater radius.
const CraterFloorHeight = VolcanoPeak - CraterDepth

// HeightAt returns the terrain elevation at world (x,z). It is pure and
// deterministic: collision, particle placement, the mesh builder and the tree
// scatterer all sample it freely with no shared state and no allocation.
func HeightAt(x, z float64) float64 {
	base := math.Sin(x*NoiseFreqLow)*math.Cos(z*NoiseFreqLow)*NoiseHeight +
		math.Sin(x*NoiseFreqHigh)*math.Cos(z*NoiseFreqHigh)*NoiseHeight*NoiseHighScale

	d2 := x*x + z*z
	cone := VolcanoPeak * math.Exp(-d2/VolcanoFalloff)

	const inner2 = CraterInnerRadius * CraterInnerRadius
	const outer2 = CraterOuterRadius * CraterOuterRadius

	var h float64
	switch {
	case d2 < inner2:
		// Flat crater floor: left exactly at the floor elevation so lava and
		// smoke emission sit on a stable plane.
		return CraterFloorHeight
	case d2 < outer2:
		t := smoothstep((d2 - inner2) / (outer2 - inner2))
		h = lerpF(CraterFloorHeight, base+cone, t)
	default:
		h = base + cone
	}

	return clampF(h, -2*NoiseHeight, VolcanoPeak+1.5*NoiseHeight)
}

// GroundAt is the effective collision floor: terrain or water, whichever is
// higher.
func GroundAt(x, z float64) float64 {
	h := HeightAt(x, z)
	if h < WaterLevel {
		return WaterLevel
	}
	return h
}

// terrainColor picks the vertex color for an elevation, with a little
// per-vertex jitter so large flats don't band.
func terrainColor(x, z, h float64, jitter int) RGB {
	d2 := x*x + z*z
	const rimBand = CraterOuterRadius * CraterOuterRadius * 4
	var col RGB
	switch {
	case d2 < CraterInnerRadius*CraterInnerRadius:
		col = Palette.Lava
	case d2 < rimBand:
		t := clampF((d2-CraterInnerRadius*CraterInnerRadius)/rimBand, 0, 1)
		col = lerpRGB(Palette.CraterRim, Palette.Rock, t)
	case h < WaterLevel+2.0:
		col = Palette.Sand
	case h < NoiseHeight*1.6:
		t := clampF((h-WaterLevel-2.0)/(NoiseHeight*1.6), 0, 1)
		col = lerpRGB(Palette.Sand, Palette.Grass, t)
	case h < VolcanoPeak*0.55:
		t := clampF((h-NoiseHeight*1.6)/(VolcanoPeak*0.55-NoiseHeight*1.6), 0, 1)
		col = lerpRGB(Palette.Grass, Palette.Rock, t)
	default:
		t := clampF((h-VolcanoPeak*0.55)/(VolcanoPeak*0.45), 0, 1)
		col = lerpRGB(Palette.Rock, Palette.Snow, t)
	}
	return col.Add(jitter, jitter, jitter)
}

// BuildTerrainMesh samples HeightAt on a regular grid and returns interleaved
// [x y z r g b] vertices, two triangles per cell. Built once per run; the
// height function itself stays the collision authority.
func BuildTerrainMesh(seed uint64) []float32 {
	cells := int(2 * WorldBoundary / TerrainStep)
	verts := make([]float32, 0, cells*cells*6*6)

	at := func(ix, iz int) (float64, float64, float64, RGB) {
		x := -WorldBoundary + float64(ix)*TerrainStep
		z := -WorldBoundary + float64(iz)*TerrainStep
		h := HeightAt(x, z)
		j := int(hash2D(seed, ix, iz)%13) - 6
		return x, h, z, terrainColor(x, z, h, j)
	}

	push := func(x, y, z float64, c RGB) {
		r, g, b := c.GL()
		verts = append(verts, float32(x), float32(y), float32(z), r, g, b)
	}

	for iz := 0; iz < cells; iz++ {
		for ix := 0; ix < cells; ix++ {
			x0, y00, z0, c00 := at(ix, iz)
			x1, y10, _, c10 := at(ix+1, iz)
			_, y01, z1, c01 := at(ix, iz+1)
			_, y11, _, c11 := at(ix+1, iz+1)

			push(x0, y00, z0, c00)
			push(x1, y10, z0, c10)
			push(x1, y11, z1, c11)

			push(x0, y00, z0, c00)
			push(x1, y11, z1, c11)
			push(x0, y01, z1, c01)
		}
	}
	return verts
}

// BuildWaterMesh returns a single large quad at the water level.
func BuildWaterMesh() []float32 {
	r, g, b := Palette.Water.GL()
	const s = WorldBoundary
	quad := [][3]float64{
		{-s, WaterLevel, -s}, {s, WaterLevel, -s}, {s, WaterLevel, s},
		{-s, WaterLevel, -s}, {s, WaterLevel, s}, {-s, WaterLevel, s},
	}
	verts := make([]float32, 0, 36)
	for _, p := range quad {
		verts = append(verts, float32(p[0]), float32(p[1]), float32(p[2]), r, g, b)
	}
	return verts
}

// Tree is a scattered vegetation instance.
type Tree struct {
	Pos    Vec3
	Height float64
}

// ScatterTrees places trees at deterministic random points, rejecting water,
// steep ground (central-difference slope over ±1 unit) and the volcano cone.
func ScatterTrees(seed uint64, count int) []Tree {
	r := NewRand(seed ^ 0x7EE5)
	trees := make([]Tree, 0, count)
	const volcanoClear = CraterOuterRadius * 4

	for attempts := 0; attempts < count*8 && len(trees) < count; attempts++ {
		x := r.RangeF(-WorldBoundary+10, WorldBoundary-10)
		z := r.RangeF(-WorldBoundary+10, WorldBoundary-10)
		if x*x+z*z < volcanoClear*volcanoClear {
			continue
		}
		h := HeightAt(x, z)
		if h < TreeMinAltitude {
			continue
		}
		sx := HeightAt(x+1, z) - HeightAt(x-1, z)
		sz := HeightAt(x, z+1) - HeightAt(x, z-1)
		if math.Hypot(sx, sz) > TreeMaxSlope {
			continue
		}
		trees = append(trees, Tree{
			Pos:    Vec3{X: x, Y: h, Z: z},
			Height: r.RangeF(4.0, 8.0),
		})
	}
	return trees
}

// BuildTreeMesh bakes all trees into one static triangle mesh: a short trunk
// pyramid and a cone crown per tree.
func BuildTreeMesh(trees []Tree) []float32 {
	verts := make([]float32, 0, len(trees)*8*6*6)
	push := func(p Vec3, c RGB) {
		r, g, b := c.GL()
		verts = append(verts, float32(p.X), float32(p.Y), float32(p.Z), r, g, b)
	}
	cone := func(center Vec3, radius, height float64, sides int, c RGB) {
		top := center.Add(Vec3{Y: height})
		for i := 0; i < sides; i++ {
			a0 := 2 * math.Pi * float64(i) / float64(sides)
			a1 := 2 * math.Pi * float64(i+1) / float64(sides)
			p0 := center.Add(Vec3{X: radius * math.Cos(a0), Z: radius * math.Sin(a0)})
			p1 := center.Add(Vec3{X: radius * math.Cos(a1), Z: radius * math.Sin(a1)})
			push(p0, c)
			push(p1, c)
			push(top, c)
		}
	}
	for _, t := range trees {
		trunkTop := t.Height * 0.35
		cone(t.Pos, 0.5, trunkTop, 4, Palette.TreeTrunk)
		cone(t.Pos.Add(Vec3{Y: trunkTop * 0.8}), t.Height*0.32, t.Height*0.75, 6, Palette.TreeCrown)
	}
	return verts
}
