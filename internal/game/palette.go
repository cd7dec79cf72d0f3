package game

type RGB struct {
	R, G, B uint8
}

func (c RGB) Add(dr, dg, db int) RGB {
	cl := func(v int) uint8 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return RGB{cl(int(c.R) + dr), cl(int(c.G) + dg), cl(int(c.B) + db)}
}

// GL returns the color as 0..1 float components.
func (c RGB) GL() (float32, float32, float32) {
	return float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0
}

func lerpU8(a, b uint8, t float64) uint8 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func lerpRGB(a, b RGB, t float64) RGB {
	return RGB{R: lerpU8(a.R, b.R, t), G: lerpU8(a.G, b.G, t), B: lerpU8(a.B, b.B, t)}
}

// Palette holds the scene colors. Terrain vertices pick an elevation band and
// blend toward the next one.
var Palette = struct {
	Sky       RGB
	Water     RGB
	Sand      RGB
	Grass     RGB
	Rock      RGB
	Snow      RGB
	Lava      RGB
	CraterRim RGB
	TreeTrunk RGB
	TreeCrown RGB
	Fuselage  RGB
	Wing      RGB
}{
	Sky:       RGB{R: 148, G: 190, B: 228},
	Water:     RGB{R: 38, G: 92, B: 150},
	Sand:      RGB{R: 202, G: 188, B: 126},
	Grass:     RGB{R: 78, G: 132, B: 58},
	Rock:      RGB{R: 108, G: 100, B: 96},
	Snow:      RGB{R: 235, G: 238, B: 242},
	Lava:      RGB{R: 225, G: 84, B: 22},
	CraterRim: RGB{R: 64, G: 52, B: 48},
	TreeTrunk: RGB{R: 92, G: 64, B: 38},
	TreeCrown: RGB{R: 46, G: 98, B: 44},
	Fuselage:  RGB{R: 208, G: 212, B: 218},
	Wing:      RGB{R: 160, G: 168, B: 178},
}
