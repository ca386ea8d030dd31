package store

import (
	"testing"

	"voxelcore/internal/block"
	"voxelcore/internal/chunk"
	"voxelcore/internal/coords"
)

func init() {
	block.Init()
}

func TestInstallAndGet(t *testing.T) {
	s := New()
	c := coords.Chunk{X: 1, Y: 0, Z: -2}
	ch := chunk.New(c)
	s.Install(ch)
	if !s.Has(c) {
		t.Fatal("expected chunk to be loaded after Install")
	}
	if got := s.Get(c); got != ch {
		t.Errorf("Get returned a different chunk than installed")
	}
}

func TestGetBlockNotLoaded(t *testing.T) {
	s := New()
	_, ok := s.GetBlock(coords.World{X: 0, Y: 0, Z: 0})
	if ok {
		t.Errorf("expected ok=false for a block in an unloaded chunk")
	}
}

func TestGetBlockPrefersEditOverlay(t *testing.T) {
	s := New()
	stoneID, _ := block.ByName("stone")
	grassID, _ := block.ByName("grass")

	c := coords.Chunk{X: 0, Y: 0, Z: 0}
	ch := chunk.New(c)
	ch.Set(3, 3, 3, grassID)
	s.Install(ch)

	p := coords.World{X: 3, Y: 3, Z: 3}
	s.RecordEdit(p, stoneID)

	id, ok := s.GetBlock(p)
	if !ok || id != stoneID {
		t.Errorf("expected edit overlay (stone) to win over loaded block (grass), got %v ok=%v", id, ok)
	}
}

func TestUnloadRemovesChunk(t *testing.T) {
	s := New()
	c := coords.Chunk{X: 0, Y: 0, Z: 0}
	ch := chunk.New(c)
	s.Install(ch)
	removed := s.Unload(c)
	if removed != ch {
		t.Errorf("Unload should return the removed chunk")
	}
	if s.Has(c) {
		t.Errorf("expected chunk to no longer be loaded after Unload")
	}
}

func TestTakeSnapshotNilWhenNotLoaded(t *testing.T) {
	s := New()
	if snap := s.TakeSnapshot(coords.Chunk{X: 9, Y: 9, Z: 9}); snap != nil {
		t.Errorf("expected nil snapshot for an unloaded chunk")
	}
}

func TestTakeSnapshotIncludesNeighborSlab(t *testing.T) {
	s := New()
	center := coords.Chunk{X: 0, Y: 0, Z: 0}
	east := coords.Chunk{X: 1, Y: 0, Z: 0}

	stoneID, _ := block.ByName("stone")

	cc := chunk.New(center)
	s.Install(cc)

	ec := chunk.New(east)
	ec.Set(0, 4, 4, stoneID)
	s.Install(ec)

	snap := s.TakeSnapshot(center)
	if snap == nil {
		t.Fatal("expected a snapshot")
	}
	if snap.Neighbor[0] == nil || !snap.Neighbor[0].Present {
		t.Fatal("expected +X neighbor slab to be present")
	}
	if got := snap.Neighbor[0].At(4, 4); got != stoneID {
		t.Errorf("expected neighbor slab to carry the east chunk's x=0 face, got %v", got)
	}
}

func TestSnapshotIsIndependentOfLiveChunk(t *testing.T) {
	s := New()
	c := coords.Chunk{X: 0, Y: 0, Z: 0}
	ch := chunk.New(c)
	s.Install(ch)

	snap := s.TakeSnapshot(c)
	stoneID, _ := block.ByName("stone")
	s.SetLoadedBlock(coords.World{X: 1, Y: 1, Z: 1}, stoneID)

	idx := coords.BlockIndexLocal(coords.Local{X: 1, Y: 1, Z: 1})
	if snap.Blocks[idx] == stoneID {
		t.Errorf("snapshot should not observe writes made after it was taken")
	}
}

func TestEditsInChunkFiltersByCoordinate(t *testing.T) {
	s := New()
	stoneID, _ := block.ByName("stone")
	s.RecordEdit(coords.World{X: 1, Y: 1, Z: 1}, stoneID)
	s.RecordEdit(coords.World{X: 100, Y: 1, Z: 1}, stoneID)

	edits := s.EditsInChunk(coords.Chunk{X: 0, Y: 0, Z: 0})
	if len(edits) != 1 {
		t.Errorf("expected exactly one edit in chunk (0,0,0), got %d", len(edits))
	}
}
