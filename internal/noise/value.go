package noise

// Deterministic value noise built on integer hashing rather than a gradient
// permutation table. Used where a cheap, seedable field is needed per call
// (ore density, cave tests, biome temperature/humidity) without allocating
// a permutation-table generator per salt.

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// hash2 is a splitmix64-style integer hash of (x, z, seed).
func hash2(x, z, seed int64) uint64 {
	v := uint64(x) + (uint64(z) << 1) + uint64(seed)*0x9E3779B97F4A7C15
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return v
}

// hash3 extends hash2 to three dimensions by folding y and z into the mix
// with left shifts of 1 and 2, and uses a different additive constant and
// shift amounts than hash2.
func hash3(x, y, z, seed int64) uint64 {
	v := uint64(x) + (uint64(y) << 1) + (uint64(z) << 2) + uint64(seed)*0x9E3779B97F4A7C15
	v += 0xC2B2AE3D27D4EB4F
	v = (v ^ (v >> 29)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 32)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return v
}

func latticeValue2D(x, z, seed int64) float64 {
	h := hash2(x, z, seed)
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

func latticeValue3D(x, y, z, seed int64) float64 {
	h := hash3(x, y, z, seed)
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

// ValueNoise2D returns a smoothly interpolated value in [0,1] at (x,z).
func ValueNoise2D(x, z float64, seed int64) float64 {
	x0, z0 := floorF(x), floorF(z)
	x1, z1 := x0+1, z0+1

	fx, fz := fade(x-x0), fade(z-z0)

	v00 := latticeValue2D(int64(x0), int64(z0), seed)
	v10 := latticeValue2D(int64(x1), int64(z0), seed)
	v01 := latticeValue2D(int64(x0), int64(z1), seed)
	v11 := latticeValue2D(int64(x1), int64(z1), seed)

	i0 := lerp(v00, v10, fx)
	i1 := lerp(v01, v11, fx)
	return lerp(i0, i1, fz)
}

// ValueNoise3D returns a smoothly interpolated value in [0,1] at (x,y,z),
// trilinearly interpolating the 8 surrounding lattice corners.
func ValueNoise3D(x, y, z float64, seed int64) float64 {
	x0, y0, z0 := floorF(x), floorF(y), floorF(z)
	x1, y1, z1 := x0+1, y0+1, z0+1

	fx, fy, fz := fade(x-x0), fade(y-y0), fade(z-z0)

	v000 := latticeValue3D(int64(x0), int64(y0), int64(z0), seed)
	v100 := latticeValue3D(int64(x1), int64(y0), int64(z0), seed)
	v010 := latticeValue3D(int64(x0), int64(y1), int64(z0), seed)
	v110 := latticeValue3D(int64(x1), int64(y1), int64(z0), seed)
	v001 := latticeValue3D(int64(x0), int64(y0), int64(z1), seed)
	v101 := latticeValue3D(int64(x1), int64(y0), int64(z1), seed)
	v011 := latticeValue3D(int64(x0), int64(y1), int64(z1), seed)
	v111 := latticeValue3D(int64(x1), int64(y1), int64(z1), seed)

	i00 := lerp(v000, v100, fx)
	i10 := lerp(v010, v110, fx)
	i01 := lerp(v001, v101, fx)
	i11 := lerp(v011, v111, fx)

	j0 := lerp(i00, i10, fy)
	j1 := lerp(i01, i11, fy)
	return lerp(j0, j1, fz)
}

func floorF(v float64) float64 {
	i := float64(int64(v))
	if v < i {
		i--
	}
	return i
}

// OctaveNoise2D sums several octaves of ValueNoise2D, each with a distinct
// per-octave salt offset so octaves never correlate, and normalizes the
// result back into [0,1].
func OctaveNoise2D(x, z float64, seed int64, octaves int, persistence, lacunarity float64) float64 {
	amplitude, frequency := 1.0, 1.0
	sum, norm := 0.0, 0.0
	for i := 0; i < octaves; i++ {
		sum += ValueNoise2D(x*frequency, z*frequency, seed+int64(i*131)) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// OctaveNoise3D is the 3D analogue of OctaveNoise2D, used by the cave and
// ore-density layers.
func OctaveNoise3D(x, y, z float64, seed int64, octaves int, persistence, lacunarity float64) float64 {
	amplitude, frequency := 1.0, 1.0
	sum, norm := 0.0, 0.0
	for i := 0; i < octaves; i++ {
		sum += ValueNoise3D(x*frequency, y*frequency, z*frequency, seed+int64(i*131)) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}
