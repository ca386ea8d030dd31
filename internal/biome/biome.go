// Package biome selects a surface biome from a temperature/humidity noise
// pair, deciding grass+dirt vs sand+sandstone surfacing for the terrain
// generator.
package biome

import "voxelcore/internal/noise"

type Biome int

const (
	Plains Biome = iota
	Desert
)

const (
	temperatureSalt = 9001
	humiditySalt    = 9002
	biomeScale      = 1.0 / 256.0
)

// At selects a biome deterministically from world (x,z) and seed, using a
// pair of independent low-frequency noise fields (temperature, humidity) as
// described by the terrain generator's heightmap layer.
func At(x, z int, seed int64) Biome {
	temp := noise.OctaveNoise2D(float64(x)*biomeScale, float64(z)*biomeScale, seed+temperatureSalt, 2, 0.5, 2.0)
	humidity := noise.OctaveNoise2D(float64(x)*biomeScale, float64(z)*biomeScale, seed+humiditySalt, 2, 0.5, 2.0)

	// Hot and dry => desert; everything else is plains. Both fields are in
	// [0,1]; thresholds chosen so deserts form coherent but not dominant
	// patches.
	if temp > 0.62 && humidity < 0.4 {
		return Desert
	}
	return Plains
}

func (b Biome) String() string {
	switch b {
	case Desert:
		return "desert"
	default:
		return "plains"
	}
}
