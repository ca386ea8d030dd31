// Package chunk implements the fixed 16x16x16 block storage unit described
// in the data model: a flat YZX-indexed array plus the dirty/generated/
// version bookkeeping the rest of the engine depends on.
package chunk

import (
	"voxelcore/internal/block"
	"voxelcore/internal/coords"
)

const (
	Size      = coords.ChunkSize
	BlockCount = Size * Size * Size
)

// Chunk owns a [4096]BlockId array laid out y*256 + z*16 + x (YZX).
type Chunk struct {
	Coord coords.Chunk

	blocks [BlockCount]block.ID

	// Generated is true once the terrain generator has populated this
	// chunk (as opposed to it being a bare placeholder awaiting generation).
	Generated bool

	// Dirty is true when this chunk has unapplied edits relative to the
	// last meshed version (i.e. its displayed mesh may be stale).
	Dirty bool

	// Version is bumped on every edit; the mesher snapshot records it so
	// stale async mesh results can be detected and discarded at install
	// time.
	Version uint64
}

// New allocates a fresh, all-air chunk at the given chunk coordinate.
func New(c coords.Chunk) *Chunk {
	return &Chunk{Coord: c}
}

// Get returns the block at a local position, 0 if out of [0,16) range.
func (c *Chunk) Get(x, y, z int) block.ID {
	if x < 0 || x >= Size || y < 0 || y >= Size || z < 0 || z >= Size {
		return block.Air
	}
	return c.blocks[coords.BlockIndex(x, y, z)]
}

// GetLocal is the coords.Local-typed convenience form of Get.
func (c *Chunk) GetLocal(l coords.Local) block.ID {
	return c.Get(l.X, l.Y, l.Z)
}

// Set writes a block at a local position without touching Dirty/Version;
// callers performing bulk generation use this directly, while edits go
// through Store.SetLoadedBlock, which bumps Version itself.
func (c *Chunk) Set(x, y, z int, id block.ID) {
	if x < 0 || x >= Size || y < 0 || y >= Size || z < 0 || z >= Size {
		return
	}
	c.blocks[coords.BlockIndex(x, y, z)] = id
}

// IsAir reports whether the block at a local position is air (or out of
// chunk bounds, which is treated as air for meshing purposes).
func (c *Chunk) IsAir(x, y, z int) bool {
	return c.Get(x, y, z) == block.Air
}

// Snapshot returns a copy of the raw block array, used when handing the
// chunk to a mesher task so the task never references live store state.
func (c *Chunk) Snapshot() [BlockCount]block.ID {
	return c.blocks
}

// LoadBlocks overwrites the entire block array from a raw snapshot, used
// when restoring a chunk from persisted storage.
func (c *Chunk) LoadBlocks(blocks [BlockCount]block.ID) {
	c.blocks = blocks
}

// Clone returns an independent copy of the chunk's current state.
func (c *Chunk) Clone() *Chunk {
	cp := &Chunk{Coord: c.Coord, Generated: c.Generated, Dirty: c.Dirty, Version: c.Version}
	cp.blocks = c.blocks
	return cp
}
