package mesh

import (
	"testing"

	"voxelcore/internal/block"
	"voxelcore/internal/chunk"
	"voxelcore/internal/coords"
	"voxelcore/internal/store"
)

func init() {
	block.Init()
}

func singleBlockSnapshot(id block.ID, x, y, z int) *store.Snapshot {
	s := store.New()
	c := chunk.New(coords.Chunk{X: 0, Y: 0, Z: 0})
	c.Set(x, y, z, id)
	s.Install(c)
	return s.TakeSnapshot(coords.Chunk{X: 0, Y: 0, Z: 0})
}

func TestBuildEmptyChunkHasNoVertices(t *testing.T) {
	snap := singleBlockSnapshot(block.Air, 0, 0, 0)
	if v := Build(snap); len(v) != 0 {
		t.Errorf("expected no vertices for an all-air chunk, got %d words", len(v))
	}
}

func TestBuildSingleCubeEmitsSixFaces(t *testing.T) {
	stoneID, _ := block.ByName("stone")
	snap := singleBlockSnapshot(stoneID, 8, 8, 8)
	v := Build(snap)
	// 6 faces * 2 triangles * 3 vertices * VertexStride words
	want := 6 * 2 * 3 * VertexStride
	if len(v) != want {
		t.Errorf("expected %d words for one exposed cube, got %d", want, len(v))
	}
}

func TestBuildCrossAlwaysEmitsTwoQuads(t *testing.T) {
	tallgrassID, _ := block.ByName("tallgrass")
	snap := singleBlockSnapshot(tallgrassID, 8, 8, 8)
	v := Build(snap)
	// emitCross writes 4 triangles per quad (2 front-wound, 2 back-wound),
	// 2 quads total, 3 vertices per triangle, VertexStride words per vertex.
	want := 2 * 4 * 3 * VertexStride
	if len(v) != want {
		t.Errorf("expected %d words for one cross block, got %d", want, len(v))
	}
}

func TestAdjacentOpaqueCubesShareNoInteriorFace(t *testing.T) {
	stoneID, _ := block.ByName("stone")
	s := store.New()
	c := chunk.New(coords.Chunk{X: 0, Y: 0, Z: 0})
	c.Set(5, 5, 5, stoneID)
	c.Set(6, 5, 5, stoneID)
	s.Install(c)
	snap := s.TakeSnapshot(coords.Chunk{X: 0, Y: 0, Z: 0})
	v := Build(snap)
	// Two adjacent cubes: 10 exposed faces total (6+6-2 shared). Greedy
	// merging joins the top, bottom, +Z and -Z pairs into 1x2 quads, leaving
	// 6 quads.
	want := 6 * 2 * 3 * VertexStride
	if len(v) != want {
		t.Errorf("expected %d words for two adjacent cubes, got %d", want, len(v))
	}
}

func TestWaterDoesNotFaceItself(t *testing.T) {
	waterID, _ := block.ByName("water")
	s := store.New()
	c := chunk.New(coords.Chunk{X: 0, Y: 0, Z: 0})
	c.Set(5, 5, 5, waterID)
	c.Set(6, 5, 5, waterID)
	s.Install(c)
	snap := s.TakeSnapshot(coords.Chunk{X: 0, Y: 0, Z: 0})
	v := Build(snap)
	// No face between the two water blocks; the 10 outer faces merge into
	// 6 quads as for two stone blocks.
	want := 6 * 2 * 3 * VertexStride
	if len(v) != want {
		t.Errorf("expected %d words for two adjacent water blocks, got %d", want, len(v))
	}
}

func TestBuildNilSnapshotReturnsNil(t *testing.T) {
	if v := Build(nil); v != nil {
		t.Errorf("expected nil for a nil snapshot, got %v", v)
	}
}

func fullStoneSnapshot(t *testing.T, includeNeighbors bool) *store.Snapshot {
	t.Helper()
	stoneID, _ := block.ByName("stone")
	s := store.New()
	center := coords.Chunk{X: 0, Y: 0, Z: 0}
	fill := func(c coords.Chunk) {
		ch := chunk.New(c)
		for x := 0; x < chunk.Size; x++ {
			for y := 0; y < chunk.Size; y++ {
				for z := 0; z < chunk.Size; z++ {
					ch.Set(x, y, z, stoneID)
				}
			}
		}
		s.Install(ch)
	}
	fill(center)
	if includeNeighbors {
		offsets := []coords.Chunk{
			{X: 1, Y: 0, Z: 0}, {X: -1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0}, {X: 0, Y: -1, Z: 0},
			{X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: -1},
		}
		for _, o := range offsets {
			fill(o)
		}
	}
	return s.TakeSnapshot(center)
}

func TestAllStoneWithAllStoneNeighborsEmitsNoQuads(t *testing.T) {
	snap := fullStoneSnapshot(t, true)
	if v := Build(snap); len(v) != 0 {
		t.Errorf("expected zero quads for an all-stone chunk fully surrounded by stone, got %d words", len(v))
	}
}

func TestAllStoneWithNoNeighborsEmitsSixFullFaces(t *testing.T) {
	snap := fullStoneSnapshot(t, false)
	v := Build(snap)
	// 6 faces, each one 16x16 merged quad: 2 triangles * 3 vertices * VertexStride.
	want := 6 * 2 * 3 * VertexStride
	if len(v) != want {
		t.Errorf("expected %d words (six merged 16x16 faces), got %d", want, len(v))
	}
}
