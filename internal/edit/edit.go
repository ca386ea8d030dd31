// Package edit implements the edit coordinator: the single entry point for
// player block writes. It enforces bedrock invulnerability and triggers a
// re-mesh of the edited chunk and any neighbor sharing the edited boundary
// face (§4.7).
package edit

import (
	"errors"

	"voxelcore/internal/block"
	"voxelcore/internal/coords"
	"voxelcore/internal/engineerr"
	"voxelcore/internal/terrain"
)

// ErrUnbreakable is returned when SetBlock targets a block with a negative
// break time (bedrock, by default).
var ErrUnbreakable = errors.New("edit: block is unbreakable")

// Store is the subset of the world store the coordinator writes through.
type Store interface {
	GetBlock(p coords.World) (block.ID, bool)
	RecordEdit(p coords.World, id block.ID)
	SetLoadedBlock(p coords.World, id block.ID)
}

// Remesher is notified when a chunk's content changed and needs a new mesh.
type Remesher interface {
	MarkDirty(c coords.Chunk)
}

// Coordinator is the only path through which blocks are written.
type Coordinator struct {
	store    Store
	remesher Remesher
}

func New(store Store, remesher Remesher) *Coordinator {
	return &Coordinator{store: store, remesher: remesher}
}

// GetBlock reads a block through the store, exposed here so callers that
// only have a Coordinator in hand don't also need a Store reference.
func (c *Coordinator) GetBlock(p coords.World) (block.ID, bool) {
	return c.store.GetBlock(p)
}

// SetBlock writes id at p. A position outside the world's representable
// vertical range is rejected with engineerr.ErrOutOfRange and has no side
// effect. Bedrock (or any block with a negative break time) refuses to be
// overwritten by ErrUnbreakable, unless id itself is the same unbreakable
// block (a no-op write some callers may still issue). A successful write
// records the edit overlay, updates the live chunk, and marks the edited
// chunk plus any neighbor sharing the edited boundary face dirty for
// re-meshing.
func (c *Coordinator) SetBlock(p coords.World, id block.ID) error {
	if p.Y < terrain.MinWorldY || p.Y > terrain.MaxWorldY {
		return engineerr.ErrOutOfRange
	}

	current, loaded := c.store.GetBlock(p)
	if loaded && block.BreakTime(current) < 0 && current != id {
		return ErrUnbreakable
	}
	// The generator always places bedrock at world y=0, so an edit buffered
	// there for a not-yet-loaded chunk would overwrite it at generation time.
	if !loaded && p.Y == 0 {
		if bedrockID, _ := block.ByName("bedrock"); id != bedrockID {
			return ErrUnbreakable
		}
	}

	c.store.RecordEdit(p, id)
	c.store.SetLoadedBlock(p, id)

	if c.remesher == nil {
		return nil
	}
	for _, dirty := range affectedChunks(p) {
		c.remesher.MarkDirty(dirty)
	}
	return nil
}

// affectedChunks returns the chunk containing p, plus any neighbor chunk
// that shares a face with p because p sits on a chunk boundary (local
// coordinate 0 or 15 on one or more axes).
func affectedChunks(p coords.World) []coords.Chunk {
	center := coords.WorldToChunk(p)
	local := coords.WorldToLocal(p)

	out := []coords.Chunk{center}
	const last = coords.ChunkSize - 1

	if local.X == 0 {
		out = append(out, coords.Chunk{X: center.X - 1, Y: center.Y, Z: center.Z})
	} else if local.X == last {
		out = append(out, coords.Chunk{X: center.X + 1, Y: center.Y, Z: center.Z})
	}
	if local.Y == 0 {
		out = append(out, coords.Chunk{X: center.X, Y: center.Y - 1, Z: center.Z})
	} else if local.Y == last {
		out = append(out, coords.Chunk{X: center.X, Y: center.Y + 1, Z: center.Z})
	}
	if local.Z == 0 {
		out = append(out, coords.Chunk{X: center.X, Y: center.Y, Z: center.Z - 1})
	} else if local.Z == last {
		out = append(out, coords.Chunk{X: center.X, Y: center.Y, Z: center.Z + 1})
	}
	return out
}
