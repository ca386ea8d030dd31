// Package store implements the world store: the concurrent mapping from
// chunk coordinate to loaded chunk, and the separate edit overlay mapping
// absolute block position to player-written block id. The two mappings use
// independent reader-writer locks, matching the read-heavy/write-light
// policy difference the concurrency model calls for.
package store

import (
	"sync"

	"voxelcore/internal/block"
	"voxelcore/internal/chunk"
	"voxelcore/internal/coords"
)

// Store owns every live chunk exclusively: callers never hold a reference
// into a chunk across a lock release except via Snapshot, which copies.
type Store struct {
	mu     sync.RWMutex
	loaded map[coords.Chunk]*chunk.Chunk

	editsMu sync.RWMutex
	edits   map[coords.World]block.ID
}

func New() *Store {
	return &Store{
		loaded: make(map[coords.Chunk]*chunk.Chunk),
		edits:  make(map[coords.World]block.ID),
	}
}

// Get returns the chunk at c, or nil if not loaded.
func (s *Store) Get(c coords.Chunk) *chunk.Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded[c]
}

// Has reports whether c is currently loaded.
func (s *Store) Has(c coords.Chunk) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.loaded[c]
	return ok
}

// Install stores a generated or edited chunk, replacing any previous
// version at the same coordinate.
func (s *Store) Install(ch *chunk.Chunk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded[ch.Coord] = ch
}

// Unload removes a chunk from the loaded set. Returns the removed chunk (or
// nil) so the caller can persist its edits before it's gone.
func (s *Store) Unload(c coords.Chunk) *chunk.Chunk {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := s.loaded[c]
	delete(s.loaded, c)
	return ch
}

// LoadedCoords returns a snapshot slice of every currently loaded chunk
// coordinate.
func (s *Store) LoadedCoords() []coords.Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]coords.Chunk, 0, len(s.loaded))
	for c := range s.loaded {
		out = append(out, c)
	}
	return out
}

// Count returns the number of currently loaded chunks.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.loaded)
}

// GetBlock resolves a world block through the edit overlay first, then the
// loaded chunk, per §3's "reads consult edits first" rule. ok is false if
// neither the edit overlay nor a loaded chunk has an answer ("not loaded").
func (s *Store) GetBlock(p coords.World) (id block.ID, ok bool) {
	if id, ok := s.getEdit(p); ok {
		return id, true
	}
	c := coords.WorldToChunk(p)
	ch := s.Get(c)
	if ch == nil {
		return block.Air, false
	}
	l := coords.WorldToLocal(p)
	return ch.GetLocal(l), true
}

func (s *Store) getEdit(p coords.World) (block.ID, bool) {
	s.editsMu.RLock()
	defer s.editsMu.RUnlock()
	id, ok := s.edits[p]
	return id, ok
}

// RecordEdit stores a player edit in the overlay. It does not touch the
// loaded chunk; callers that also need the live chunk updated call
// SetLoadedBlock separately (this split is what lets the edit coordinator
// buffer an edit for a not-yet-loaded chunk).
func (s *Store) RecordEdit(p coords.World, id block.ID) {
	s.editsMu.Lock()
	defer s.editsMu.Unlock()
	s.edits[p] = id
}

// At implements terrain.EditSource by exposing the overlay read path.
func (s *Store) At(x, y, z int) (block.ID, bool) {
	return s.getEdit(coords.World{X: x, Y: y, Z: z})
}

// EditsInChunk returns a snapshot of every edit overlay entry whose
// position falls inside chunk coordinate c.
func (s *Store) EditsInChunk(c coords.Chunk) map[coords.World]block.ID {
	s.editsMu.RLock()
	defer s.editsMu.RUnlock()
	out := make(map[coords.World]block.ID)
	for p, id := range s.edits {
		if coords.WorldToChunk(p) == c {
			out[p] = id
		}
	}
	return out
}

// SetLoadedBlock writes directly into a loaded chunk's block array and
// bumps its version, marking it dirty. Does nothing if the chunk is not
// loaded; an edit recorded with RecordEdit still reaches that chunk when it
// is generated.
func (s *Store) SetLoadedBlock(p coords.World, id block.ID) {
	c := coords.WorldToChunk(p)
	ch := s.Get(c)
	if ch == nil {
		return
	}
	l := coords.WorldToLocal(p)
	ch.Set(l.X, l.Y, l.Z, id)
	ch.Version++
	ch.Dirty = true
}

// Snapshot copies a chunk's block array plus 1-block-thick slabs from each
// of its six neighbors (nil slab slices mean "treat as all-air", i.e. the
// neighbor isn't loaded yet). This is the only representation meshing
// tasks ever see; the store lock is held only for the duration of the
// copies, never during meshing itself.
type Snapshot struct {
	Coord    coords.Chunk
	Version  uint64
	Blocks   [chunk.BlockCount]block.ID
	Neighbor [6]*NeighborSlab // indexed +X,-X,+Y,-Y,+Z,-Z (the offsets order in TakeSnapshot)
}

// NeighborSlab is a single 16x16 face of blocks copied from a neighbor
// chunk at the boundary shared with the center chunk.
type NeighborSlab struct {
	Present bool
	Blocks  [chunk.Size * chunk.Size]block.ID
}

// TakeSnapshot builds a Snapshot for c. If c is not loaded, returns nil.
func (s *Store) TakeSnapshot(c coords.Chunk) *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ch, ok := s.loaded[c]
	if !ok {
		return nil
	}

	snap := &Snapshot{Coord: c, Version: ch.Version, Blocks: ch.Snapshot()}

	offsets := [6]coords.Chunk{
		{X: c.X + 1, Y: c.Y, Z: c.Z}, // +X
		{X: c.X - 1, Y: c.Y, Z: c.Z}, // -X
		{X: c.X, Y: c.Y + 1, Z: c.Z}, // +Y
		{X: c.X, Y: c.Y - 1, Z: c.Z}, // -Y
		{X: c.X, Y: c.Y, Z: c.Z + 1}, // +Z
		{X: c.X, Y: c.Y, Z: c.Z - 1}, // -Z
	}

	for i, nc := range offsets {
		nch, ok := s.loaded[nc]
		if !ok {
			continue
		}
		slab := &NeighborSlab{Present: true}
		fillSlab(slab, nch, i)
		snap.Neighbor[i] = slab
	}

	return snap
}

// fillSlab copies the 16x16 face of neighbor nch that touches the center
// chunk from direction dir (using the same 6-direction order as offsets
// above: 0=+X,1=-X,2=+Y,3=-Y,4=+Z,5=-Z).
func fillSlab(slab *NeighborSlab, nch *chunk.Chunk, dir int) {
	idx := 0
	switch dir {
	case 0: // neighbor is at +X, we need its x=0 face
		for y := 0; y < chunk.Size; y++ {
			for z := 0; z < chunk.Size; z++ {
				slab.Blocks[idx] = nch.Get(0, y, z)
				idx++
			}
		}
	case 1: // neighbor at -X, need its x=15 face
		for y := 0; y < chunk.Size; y++ {
			for z := 0; z < chunk.Size; z++ {
				slab.Blocks[idx] = nch.Get(chunk.Size-1, y, z)
				idx++
			}
		}
	case 2: // neighbor at +Y, need its y=0 face
		for x := 0; x < chunk.Size; x++ {
			for z := 0; z < chunk.Size; z++ {
				slab.Blocks[idx] = nch.Get(x, 0, z)
				idx++
			}
		}
	case 3: // neighbor at -Y, need its y=15 face
		for x := 0; x < chunk.Size; x++ {
			for z := 0; z < chunk.Size; z++ {
				slab.Blocks[idx] = nch.Get(x, chunk.Size-1, z)
				idx++
			}
		}
	case 4: // neighbor at +Z, need its z=0 face
		for x := 0; x < chunk.Size; x++ {
			for y := 0; y < chunk.Size; y++ {
				slab.Blocks[idx] = nch.Get(x, y, 0)
				idx++
			}
		}
	case 5: // neighbor at -Z, need its z=15 face
		for x := 0; x < chunk.Size; x++ {
			for y := 0; y < chunk.Size; y++ {
				slab.Blocks[idx] = nch.Get(x, y, chunk.Size-1)
				idx++
			}
		}
	}
}

// At returns the block at in-plane position (u,v) of the slab's 16x16 face,
// in the axis order fillSlab copied it (y,z for X slabs; x,z for Y slabs;
// x,y for Z slabs). A nil or absent slab reads as air.
func (n *NeighborSlab) At(u, v int) block.ID {
	if n == nil || !n.Present {
		return block.Air
	}
	return n.Blocks[u*chunk.Size+v]
}
