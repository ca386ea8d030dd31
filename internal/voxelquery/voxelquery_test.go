package voxelquery

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/internal/block"
	"voxelcore/internal/chunk"
	"voxelcore/internal/coords"
	"voxelcore/internal/store"
)

func init() {
	block.Init()
}

func TestIsSolidUnloadedTreatedAsSolid(t *testing.T) {
	s := store.New()
	if !IsSolid(s, 0, 0, 0) {
		t.Errorf("expected an unloaded position to be treated as solid")
	}
}

func TestIsSolidAirIsNotSolid(t *testing.T) {
	s := store.New()
	c := chunk.New(coords.Chunk{X: 0, Y: 0, Z: 0})
	s.Install(c)
	if IsSolid(s, 5, 5, 5) {
		t.Errorf("expected air to not be solid")
	}
}

func TestSweepAABBDetectsGroundCollision(t *testing.T) {
	s := store.New()
	stoneID, _ := block.ByName("stone")
	c := chunk.New(coords.Chunk{X: 0, Y: 0, Z: 0})
	c.Set(5, 4, 5, stoneID)
	s.Install(c)

	pos := mgl32.Vec3{5.5, 4.0, 5.5}
	if !SweepAABB(s, pos, 0.6, 1.8) {
		t.Errorf("expected the box overlapping the stone block's cell to collide")
	}
}

func TestSweepAABBNoCollisionInOpenAir(t *testing.T) {
	s := store.New()
	c := chunk.New(coords.Chunk{X: 0, Y: 0, Z: 0})
	s.Install(c)
	pos := mgl32.Vec3{5.5, 10.0, 5.5}
	if SweepAABB(s, pos, 0.6, 1.8) {
		t.Errorf("expected no collision floating in open air")
	}
}

func TestRaycastHitsNearestBlock(t *testing.T) {
	s := store.New()
	stoneID, _ := block.ByName("stone")
	c := chunk.New(coords.Chunk{X: 0, Y: 0, Z: 0})
	c.Set(5, 5, 10, stoneID)
	s.Install(c)

	start := mgl32.Vec3{5.5, 5.5, 0}
	dir := mgl32.Vec3{0, 0, 1}
	res := Raycast(s, start, dir, 0, 20)
	if !res.Hit {
		t.Fatal("expected a hit")
	}
	if res.Block != [3]int{5, 5, 10} {
		t.Errorf("expected hit block (5,5,10), got %v", res.Block)
	}
	if res.Adjacent != [3]int{5, 5, 9} {
		t.Errorf("expected adjacent cell (5,5,9), got %v", res.Adjacent)
	}
}

func TestRaycastMissesWhenNothingInRange(t *testing.T) {
	s := store.New()
	c := chunk.New(coords.Chunk{X: 0, Y: 0, Z: 0})
	s.Install(c)
	start := mgl32.Vec3{5.5, 5.5, 0}
	dir := mgl32.Vec3{0, 0, 1}
	res := Raycast(s, start, dir, 0, 5)
	if res.Hit {
		t.Errorf("expected no hit in an empty chunk")
	}
}
