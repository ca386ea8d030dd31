// Package voxelquery implements read-only spatial queries over a world
// store: solidity lookups, AABB sweeps, and ray casting, the primitives a
// physics or interaction layer built on top of this engine needs.
package voxelquery

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/internal/block"
	"voxelcore/internal/coords"
	"voxelcore/internal/profiling"
	"voxelcore/internal/store"
)

// Source is the minimal read interface queries need from the world store.
type Source interface {
	GetBlock(p coords.World) (block.ID, bool)
}

var _ Source = (*store.Store)(nil)

// IsSolid reports whether the block at the given integer world position is
// solid. An unloaded position is treated as solid, matching the "can't walk
// off the edge of loaded terrain" convention.
func IsSolid(src Source, x, y, z int) bool {
	id, ok := src.GetBlock(coords.World{X: x, Y: y, Z: z})
	if !ok {
		return true
	}
	return block.IsSolid(id)
}

// SweepAABB reports whether an axis-aligned box of the given width (X/Z)
// and height (Y), centered at pos on X/Z and resting at pos.Y on Y, overlaps
// any solid block.
func SweepAABB(src Source, pos mgl32.Vec3, width, height float32) bool {
	defer profiling.Track("voxelquery.SweepAABB")()

	minX := int(math.Floor(float64(pos.X() - width/2)))
	maxX := int(math.Floor(float64(pos.X() + width/2)))
	minY := int(math.Floor(float64(pos.Y())))
	maxY := int(math.Floor(float64(pos.Y() + height)))
	minZ := int(math.Floor(float64(pos.Z() - width/2)))
	maxZ := int(math.Floor(float64(pos.Z() + width/2)))

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				if !IsSolid(src, x, y, z) {
					continue
				}
				blockMinX, blockMaxX := float32(x), float32(x)+1.0
				blockMinY, blockMaxY := float32(y), float32(y)+1.0
				blockMinZ, blockMaxZ := float32(z), float32(z)+1.0

				if pos.X()-width/2 < blockMaxX && pos.X()+width/2 > blockMinX &&
					pos.Y() < blockMaxY && pos.Y()+height > blockMinY &&
					pos.Z()-width/2 < blockMaxZ && pos.Z()+width/2 > blockMinZ {
					return true
				}
			}
		}
	}
	return false
}

// RaycastResult is the outcome of a Raycast call.
type RaycastResult struct {
	Hit      bool
	Block    [3]int // the solid block that was hit
	Adjacent [3]int // the empty cell immediately before the hit, where a new block would be placed
	Distance float32
}

const raycastStep = float32(0.02)

// Raycast marches a ray from start in direction, in fixed steps, returning
// the first solid block hit between minDist and maxDist.
func Raycast(src Source, start, direction mgl32.Vec3, minDist, maxDist float32) RaycastResult {
	defer profiling.Track("voxelquery.Raycast")()

	steps := int(maxDist / raycastStep)
	var lastEmpty [3]int
	haveLastEmpty := false

	for i := 0; i <= steps; i++ {
		dist := float32(i) * raycastStep
		if dist < minDist {
			continue
		}

		pos := start.Add(direction.Mul(dist))
		bx := int(math.Floor(float64(pos.X())))
		by := int(math.Floor(float64(pos.Y())))
		bz := int(math.Floor(float64(pos.Z())))

		if IsSolid(src, bx, by, bz) {
			result := RaycastResult{Hit: true, Block: [3]int{bx, by, bz}, Distance: dist}
			if haveLastEmpty {
				result.Adjacent = lastEmpty
			} else {
				result.Adjacent = [3]int{bx, by, bz}
			}
			return result
		}

		lastEmpty = [3]int{bx, by, bz}
		haveLastEmpty = true
	}

	return RaycastResult{}
}
