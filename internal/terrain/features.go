package terrain

import (
	"voxelcore/internal/block"
	"voxelcore/internal/chunk"
	"voxelcore/internal/coords"
	"voxelcore/internal/noise"
)

// featuresPerChunk bounds how many candidate tree origins are tested per
// world column of the padded search region; keeps generation cost bounded
// regardless of seed.
const featuresPerChunk = 4

// treeSearchPadding is how far past this chunk's XZ bounds a tree's trunk
// origin may sit and still have its canopy reach into this chunk.
const treeSearchPadding = 3

// placeFeatures implements layer 5 / §4.4: candidate tree origins are
// computed in a padded region around the chunk (origin may lie in an
// adjacent chunk); each chunk deterministically recomputes the same
// candidates and writes only the voxels landing inside its own bounds, so
// no cross-chunk communication is needed at generation time.
func placeFeatures(cfg Config, c coords.Chunk, out *chunk.Chunk) {
	logID, hasLog := block.ByName("log_oak")
	leavesID, hasLeaves := block.ByName("leaves_oak")
	if !hasLog || !hasLeaves {
		return
	}

	baseX, baseZ := c.X*coords.ChunkSize, c.Z*coords.ChunkSize

	minCX := baseX - treeSearchPadding
	maxCX := baseX + coords.ChunkSize + treeSearchPadding
	minCZ := baseZ - treeSearchPadding
	maxCZ := baseZ + coords.ChunkSize + treeSearchPadding

	for ox := minCX; ox < maxCX; ox++ {
		for oz := minCZ; oz < maxCZ; oz++ {
			for idx := 0; idx < featuresPerChunk; idx++ {
				if !treeOriginHere(cfg, ox, oz, idx) {
					continue
				}
				groundY := HeightAt(cfg, ox, oz)
				if groundY <= SeaLevel {
					continue // no trees in water/beach columns
				}
				writeTree(c, out, ox, groundY, oz, logID, leavesID)
			}
		}
	}
}

// treeOriginHere hashes (x, z, featureIdx, seed) to decide deterministically
// whether a tree trunk originates at this column; same inputs always agree
// across whichever chunk recomputes them.
func treeOriginHere(cfg Config, x, z, idx int) bool {
	h := noise.OctaveNoise2D(float64(x)*977.0, float64(z)*977.0, cfg.Seed+saltFeaturePlace+int64(idx)*17, 1, 0.5, 2.0)
	return h > 0.992
}

const trunkHeight = 5

// writeTree writes the voxels of one tree (trunk + a simple spherical-ish
// canopy) that fall within out's owned bounds; the origin (ox, groundY, oz)
// may lie outside out's chunk entirely, in which case only the voxels that
// reach into out's chunk are written.
func writeTree(c coords.Chunk, out *chunk.Chunk, ox, groundY, oz int, logID, leavesID block.ID) {
	write := func(wx, wy, wz int, id block.ID) {
		cc := coords.WorldToChunk(coords.World{X: wx, Y: wy, Z: wz})
		if cc != c {
			return
		}
		l := coords.WorldToLocal(coords.World{X: wx, Y: wy, Z: wz})
		if out.Get(l.X, l.Y, l.Z) == block.Air {
			out.Set(l.X, l.Y, l.Z, id)
		}
	}

	for h := 1; h <= trunkHeight; h++ {
		write(ox, groundY+h, oz, logID)
	}

	canopyBaseY := groundY + trunkHeight - 2
	for dx := -2; dx <= 2; dx++ {
		for dz := -2; dz <= 2; dz++ {
			for dy := 0; dy <= 3; dy++ {
				if dx == 0 && dz == 0 && dy < 3 {
					continue // trunk continues through the canopy's core
				}
				r := dx*dx + dz*dz + (dy-1)*(dy-1)
				if r <= 5 {
					write(ox+dx, canopyBaseY+dy, oz+dz, leavesID)
				}
			}
		}
	}
}
