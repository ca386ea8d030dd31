// Package engineconfig holds the tunables a voxelcore engine instance is
// constructed with. Unlike the teacher's global settings singleton, this is
// a plain value owned by the engine instance: tests build a fresh Config
// per case, and two engines in the same process never share state.
package engineconfig

// Config bundles every tunable an engine.Engine needs at construction time.
type Config struct {
	// Seed drives the terrain generator.
	Seed int64

	// LoadRadius is how many chunks out (a 3D sphere in chunk space) the
	// streaming scheduler keeps generated and meshed around the current
	// focus point.
	LoadRadius int

	// EvictMargin is clamped by Normalize but is not passed to the
	// scheduler: eviction always uses LoadRadius plus a fixed margin of 2
	// chunks, whatever this field holds.
	EvictMargin int

	// PersistDir is the root directory for region files and player
	// records. Empty disables persistence.
	PersistDir string
}

// Default returns reasonable settings for the given world seed.
func Default(seed int64) Config {
	return Config{
		Seed:        seed,
		LoadRadius:  8,
		EvictMargin: 2,
		PersistDir:  "",
	}
}

func (c Config) clamp() Config {
	if c.LoadRadius < 1 {
		c.LoadRadius = 1
	}
	if c.LoadRadius > 64 {
		c.LoadRadius = 64
	}
	if c.EvictMargin < 0 {
		c.EvictMargin = 0
	}
	return c
}

// Normalize returns a copy of c with out-of-range fields clamped to sane
// bounds; the engine constructor calls this so a caller-supplied Config
// can't wedge the scheduler with a zero or negative radius.
func Normalize(c Config) Config {
	return c.clamp()
}
