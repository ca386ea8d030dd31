package terrain

import (
	"testing"

	"voxelcore/internal/block"
	"voxelcore/internal/chunk"
	"voxelcore/internal/coords"
)

func init() {
	block.Init()
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultConfig(42)
	c := coords.Chunk{X: 0, Y: 3, Z: 0}
	a := Generate(cfg, c, nil)
	b := Generate(cfg, c, nil)
	if a.Snapshot() != b.Snapshot() {
		t.Errorf("Generate is not deterministic for the same seed and coord")
	}
}

func TestBedrockAtWorldYZero(t *testing.T) {
	cfg := DefaultConfig(42)
	c := coords.Chunk{X: 0, Y: 0, Z: 0}
	out := Generate(cfg, c, nil)
	bedrockID, _ := block.ByName("bedrock")
	if got := out.Get(8, 0, 8); got != bedrockID {
		t.Errorf("expected bedrock at world y=0, got %d", got)
	}
}

func TestSurfaceBlockAtSeed42IsGrassOrSand(t *testing.T) {
	cfg := DefaultConfig(42)
	c := coords.Chunk{X: 0, Y: 3, Z: 0}
	out := Generate(cfg, c, nil)

	grassID, _ := block.ByName("grass")
	sandID, _ := block.ByName("sand")
	got := out.Get(8, 15, 8)
	if got != grassID && got != sandID {
		t.Errorf("expected grass or sand at local (8,15,8) in chunk (0,3,0), got %d", got)
	}
}

func TestEditOverlayAppliedLast(t *testing.T) {
	cfg := DefaultConfig(42)
	c := coords.Chunk{X: 0, Y: 4, Z: 0}
	stoneID, _ := block.ByName("stone")

	edits := fakeEdits{70: stoneID}
	out := Generate(cfg, c, edits)

	wantWorld := coords.World{X: 5, Y: 70, Z: 5}
	l := coords.WorldToLocal(wantWorld)
	if got := out.GetLocal(l); got != stoneID {
		t.Errorf("expected edit overlay to force Stone at (5,70,5), got %d", got)
	}
}

type fakeEdits map[int]block.ID

func (f fakeEdits) At(x, y, z int) (block.ID, bool) {
	if x == 5 && z == 5 {
		if id, ok := f[y]; ok {
			return id, true
		}
	}
	return 0, false
}

func TestHeightAtWithinSpecRange(t *testing.T) {
	cfg := DefaultConfig(1)
	for x := -500; x <= 500; x += 97 {
		for z := -500; z <= 500; z += 83 {
			h := HeightAt(cfg, x, z)
			if h < 40 || h > 100 {
				t.Errorf("HeightAt(%d,%d)=%d out of [40,100]", x, z, h)
			}
		}
	}
}

func TestGenerateProducesAFullChunk(t *testing.T) {
	cfg := DefaultConfig(7)
	out := Generate(cfg, coords.Chunk{X: 1, Y: 4, Z: -2}, nil)
	if !out.Generated {
		t.Errorf("expected Generated=true after Generate")
	}
	_ = chunk.Size
}
