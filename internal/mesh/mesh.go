// Package mesh builds a packed triangle list for one chunk via per-direction
// greedy meshing over a padded snapshot (the chunk's own blocks plus a
// 1-block-thick slab copied from each of its six neighbors).
package mesh

import (
	"voxelcore/internal/block"
	"voxelcore/internal/coords"
	"voxelcore/internal/store"
)

// VertexStride is the number of uint32 words per vertex.
const VertexStride = 2

// Build returns the packed vertex buffer for snap. Each vertex packs into
// two words:
// V1: X(5) Y(9) Z(5) Normal(3) Brightness(8)
// V2: TextureID(16) Tint(16, RGB565)
func Build(snap *store.Snapshot) []uint32 {
	if snap == nil {
		return nil
	}
	vertices := make([]uint32, 0, 1024)
	vertices = append(vertices, buildDirection(snap, +1, 0, 0)...)
	vertices = append(vertices, buildDirection(snap, -1, 0, 0)...)
	vertices = append(vertices, buildDirection(snap, 0, +1, 0)...)
	vertices = append(vertices, buildDirection(snap, 0, -1, 0)...)
	vertices = append(vertices, buildDirection(snap, 0, 0, +1)...)
	vertices = append(vertices, buildDirection(snap, 0, 0, -1)...)
	vertices = append(vertices, buildCrosses(snap)...)
	return vertices
}

const size = 16

func get(snap *store.Snapshot, x, y, z int) block.ID {
	if x >= 0 && x < size && y >= 0 && y < size && z >= 0 && z < size {
		return snap.Blocks[coords.BlockIndexLocal(coords.Local{X: x, Y: y, Z: z})]
	}
	switch {
	case x == -1:
		return snap.Neighbor[1].At(y, z) // -X neighbor
	case x == size:
		return snap.Neighbor[0].At(y, z) // +X neighbor
	case y == -1:
		return snap.Neighbor[3].At(x, z) // -Y neighbor
	case y == size:
		return snap.Neighbor[2].At(x, z) // +Y neighbor
	case z == -1:
		return snap.Neighbor[5].At(x, y) // -Z neighbor
	case z == size:
		return snap.Neighbor[4].At(x, y) // +Z neighbor
	}
	return block.Air
}

// visible reports whether a cube face between self and neighbor should be
// drawn: air never occludes, an opaque neighbor always occludes, and a
// transparent neighbor of the identical id is treated as merged (no face
// between two adjacent water blocks) while any other transparent/cross/
// invisible neighbor lets the face show through.
func visible(self, neighbor block.ID) bool {
	if block.IsAir(neighbor) {
		return true
	}
	switch block.KindOf(neighbor) {
	case block.KindOpaqueCube:
		return false
	case block.KindTransparentCube:
		return neighbor != self
	default:
		return true
	}
}

func packVertex(x, y, z int, normal byte, texID int, brightness byte, tint uint16) (uint32, uint32) {
	v1 := uint32(x) | (uint32(y) << 5) | (uint32(z) << 14) | (uint32(normal) << 19) | (uint32(brightness) << 22)
	v2 := uint32(texID) | (uint32(tint) << 16)
	return v1, v2
}

func brightnessFor(normal byte) byte {
	switch normal {
	case 4: // top
		return 255
	case 5: // bottom
		return 128
	default: // sides
		return 204
	}
}

func encodeNormal(nx, ny, nz int) byte {
	switch {
	case nz > 0:
		return 0
	case nz < 0:
		return 1
	case nx > 0:
		return 2
	case nx < 0:
		return 3
	case ny > 0:
		return 4
	case ny < 0:
		return 5
	}
	return 6
}

func faceForNormal(nx, ny, nz int) block.Face {
	switch {
	case nz > 0:
		return block.FaceNorth
	case nz < 0:
		return block.FaceSouth
	case nx > 0:
		return block.FaceEast
	case nx < 0:
		return block.FaceWest
	case ny > 0:
		return block.FaceTop
	case ny < 0:
		return block.FaceBottom
	}
	return block.FaceNorth
}

func emitQuad(vertices *[]uint32, corners [4][3]int, nx, ny, nz int, texID int, tint uint16) {
	normal := encodeNormal(nx, ny, nz)
	brightness := brightnessFor(normal)

	v1a, v2a := packVertex(corners[0][0], corners[0][1], corners[0][2], normal, texID, brightness, tint)
	v1b, v2b := packVertex(corners[1][0], corners[1][1], corners[1][2], normal, texID, brightness, tint)
	v1c, v2c := packVertex(corners[2][0], corners[2][1], corners[2][2], normal, texID, brightness, tint)
	v1d, v2d := packVertex(corners[3][0], corners[3][1], corners[3][2], normal, texID, brightness, tint)

	*vertices = append(*vertices, v1a, v2a, v1b, v2b, v1c, v2c)
	*vertices = append(*vertices, v1c, v2c, v1d, v2d, v1a, v2a)
}

// maskCell packs tint (high 16 bits) and texture id (low 16 bits), offset by
// one so zero means "no face here".
func maskCell(id block.ID, face block.Face) int {
	tex := int(block.FaceTexture(id, face))
	tint := block.Tint(id, face)
	return (int(tint)<<16 | tex) + 1
}

// buildDirection greedy-meshes every opaque/transparent cube face pointing
// along (nx,ny,nz) across the snapshot's 16^3 volume. Cross-billboard blocks
// never contribute cube faces; see buildCrosses.
func buildDirection(snap *store.Snapshot, nx, ny, nz int) []uint32 {
	var vertices []uint32
	face := faceForNormal(nx, ny, nz)

	// axis holds the layer coordinate; u,v are the in-plane coordinates.
	for layer := 0; layer < size; layer++ {
		mask := make([]int, size*size)
		for u := 0; u < size; u++ {
			for v := 0; v < size; v++ {
				x, y, z := axisToXYZ(nx, ny, nz, layer, u, v)
				id := get(snap, x, y, z)
				if block.IsAir(id) || block.KindOf(id) == block.KindCross || block.KindOf(id) == block.KindInvisible {
					continue
				}
				nxp, nyp, nzp := x+nx, y+ny, z+nz
				neighbor := get(snap, nxp, nyp, nzp)
				if !visible(id, neighbor) {
					continue
				}
				mask[u*size+v] = maskCell(id, face)
			}
		}

		i := 0
		for i < size*size {
			if mask[i] == 0 {
				i++
				continue
			}
			val := mask[i] - 1
			texID := val & 0xFFFF
			tint := uint16(val >> 16)

			u0 := i / size
			v0 := i % size

			width := 1
			for v1 := v0 + 1; v1 < size && mask[u0*size+v1] == mask[i]; v1++ {
				width++
			}
			height := 1
		outer:
			for u1 := u0 + 1; u1 < size; u1++ {
				for v1 := v0; v1 < v0+width; v1++ {
					if mask[u1*size+v1] != mask[i] {
						break outer
					}
				}
				height++
			}

			layerCoord := layer
			if nx > 0 || ny > 0 || nz > 0 {
				layerCoord = layer + 1
			}

			corners := quadCorners(nx, ny, nz, layerCoord, u0, v0, width, height)
			emitQuad(&vertices, corners, nx, ny, nz, texID, tint)

			for uu := u0; uu < u0+height; uu++ {
				for vv := v0; vv < v0+width; vv++ {
					mask[uu*size+vv] = 0
				}
			}
		}
	}
	return vertices
}

// axisToXYZ maps a (layer, u, v) triple back to chunk-local (x,y,z) for the
// plane perpendicular to the given face normal.
func axisToXYZ(nx, ny, nz, layer, u, v int) (int, int, int) {
	switch {
	case nx != 0:
		return layer, u, v
	case ny != 0:
		return u, layer, v
	default:
		return u, v, layer
	}
}

// quadCorners returns the four corners (CCW, viewed from outside the face)
// of a merged rectangle of the given width/height at the given layer coord.
func quadCorners(nx, ny, nz, layerCoord, u0, v0, width, height int) [4][3]int {
	switch {
	case nx != 0:
		if nx > 0 {
			return [4][3]int{
				{layerCoord, u0, v0},
				{layerCoord, u0 + height, v0},
				{layerCoord, u0 + height, v0 + width},
				{layerCoord, u0, v0 + width},
			}
		}
		return [4][3]int{
			{layerCoord, u0, v0},
			{layerCoord, u0, v0 + width},
			{layerCoord, u0 + height, v0 + width},
			{layerCoord, u0 + height, v0},
		}
	case ny != 0:
		if ny > 0 {
			return [4][3]int{
				{u0, layerCoord, v0},
				{u0, layerCoord, v0 + width},
				{u0 + height, layerCoord, v0 + width},
				{u0 + height, layerCoord, v0},
			}
		}
		return [4][3]int{
			{u0, layerCoord, v0},
			{u0 + height, layerCoord, v0},
			{u0 + height, layerCoord, v0 + width},
			{u0, layerCoord, v0 + width},
		}
	default:
		if nz > 0 {
			return [4][3]int{
				{u0, v0, layerCoord},
				{u0 + height, v0, layerCoord},
				{u0 + height, v0 + width, layerCoord},
				{u0, v0 + width, layerCoord},
			}
		}
		return [4][3]int{
			{u0, v0, layerCoord},
			{u0, v0 + width, layerCoord},
			{u0 + height, v0 + width, layerCoord},
			{u0 + height, v0, layerCoord},
		}
	}
}

// buildCrosses emits two crossed quads, unconditionally, for every
// cross-billboard block in the chunk's own volume (neighbors never affect a
// cross block's visibility, it has no occluding faces to cull).
func buildCrosses(snap *store.Snapshot) []uint32 {
	var vertices []uint32
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			for z := 0; z < size; z++ {
				id := snap.Blocks[coords.BlockIndexLocal(coords.Local{X: x, Y: y, Z: z})]
				if block.IsAir(id) || block.KindOf(id) != block.KindCross {
					continue
				}
				emitCross(&vertices, x, y, z, id)
			}
		}
	}
	return vertices
}

func emitCross(vertices *[]uint32, x, y, z int, id block.ID) {
	texID := int(block.FaceTexture(id, block.FaceNorth))
	tint := block.Tint(id, block.FaceNorth)
	normal := byte(6)
	brightness := byte(224)

	// diagonal 1: corners of the XZ square's main diagonal, standing up in Y
	quad1 := [4][3]int{
		{x, y, z}, {x + 1, y, z + 1}, {x + 1, y + 1, z + 1}, {x, y + 1, z},
	}
	// diagonal 2: the other diagonal
	quad2 := [4][3]int{
		{x + 1, y, z}, {x, y, z + 1}, {x, y + 1, z + 1}, {x + 1, y + 1, z},
	}

	for _, quad := range [][4][3]int{quad1, quad2} {
		v1a, v2a := packVertex(quad[0][0], quad[0][1], quad[0][2], normal, texID, brightness, tint)
		v1b, v2b := packVertex(quad[1][0], quad[1][1], quad[1][2], normal, texID, brightness, tint)
		v1c, v2c := packVertex(quad[2][0], quad[2][1], quad[2][2], normal, texID, brightness, tint)
		v1d, v2d := packVertex(quad[3][0], quad[3][1], quad[3][2], normal, texID, brightness, tint)
		*vertices = append(*vertices, v1a, v2a, v1b, v2b, v1c, v2c)
		*vertices = append(*vertices, v1c, v2c, v1d, v2d, v1a, v2a)
		*vertices = append(*vertices, v1a, v2a, v1c, v2c, v1b, v2b)
		*vertices = append(*vertices, v1a, v2a, v1d, v2d, v1c, v2c)
	}
}
